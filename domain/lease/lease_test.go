package lease_test

import (
	"testing"

	"github.com/apops/apops/domain/lease"
)

func TestEndDate(t *testing.T) {
	tests := []struct {
		start  string
		months int
		want   string
	}{
		{"2024-01-01", 6, "2024-07-01"},
		{"2024-03-15", 12, "2025-03-15"},
		{"2024-01-31", 1, "2024-03-02"}, // normalizes past short February
		{"2023-01-31", 1, "2023-03-03"},
		{"2024-11-30", 3, "2025-03-02"},
	}

	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			got, err := lease.EndDate(tt.start, tt.months)
			if err != nil {
				t.Fatalf("EndDate error: %v", err)
			}
			if got != tt.want {
				t.Errorf("EndDate(%s, %d) = %s, want %s", tt.start, tt.months, got, tt.want)
			}
		})
	}
}

func TestEndDate_BadStart(t *testing.T) {
	if _, err := lease.EndDate("01/02/2024", 6); err == nil {
		t.Error("expected error for non-ISO start date")
	}
}

func validLease() lease.Lease {
	return lease.Lease{
		ID:          "l1",
		UnitID:      "u1",
		TenantID:    "t1",
		StartDate:   "2024-01-01",
		Months:      6,
		EndDate:     "2024-07-01",
		Deposit:     5000000,
		RentMonthly: 5000000,
		Adults:      2,
		Children:    1,
		Status:      lease.StatusActive,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*lease.Lease)
		wantErr bool
	}{
		{"valid", func(l *lease.Lease) {}, false},
		{"missing unit", func(l *lease.Lease) { l.UnitID = "" }, true},
		{"missing tenant", func(l *lease.Lease) { l.TenantID = "" }, true},
		{"bad start date", func(l *lease.Lease) { l.StartDate = "2024-13-40" }, true},
		{"zero months", func(l *lease.Lease) { l.Months = 0 }, true},
		{"negative rent", func(l *lease.Lease) { l.RentMonthly = -1 }, true},
		{"negative adults", func(l *lease.Lease) { l.Adults = -1 }, true},
		{"bogus status", func(l *lease.Lease) { l.Status = "Paused" }, true},
		{"ended ok", func(l *lease.Lease) { l.Status = lease.StatusEnded }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLease()
			tt.mutate(&l)
			err := l.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestActive(t *testing.T) {
	leases := []lease.Lease{
		{ID: "a", Status: lease.StatusActive},
		{ID: "b", Status: lease.StatusEnded},
		{ID: "c", Status: lease.StatusActive},
	}

	active := lease.Active(leases)
	if len(active) != 2 {
		t.Fatalf("expected 2 active leases, got %d", len(active))
	}
	if active[0].ID != "a" || active[1].ID != "c" {
		t.Errorf("unexpected active set: %v", active)
	}
}

func TestActiveForUnit(t *testing.T) {
	leases := []lease.Lease{
		{ID: "a", UnitID: "u1", Status: lease.StatusActive},
		{ID: "b", UnitID: "u1", Status: lease.StatusEnded},
		{ID: "c", UnitID: "u2", Status: lease.StatusActive},
	}

	if _, found := lease.ActiveForUnit(leases, "u1", ""); !found {
		t.Error("expected to find active lease on u1")
	}
	// Excluding the lease itself (editing in place) finds nothing.
	if _, found := lease.ActiveForUnit(leases, "u1", "a"); found {
		t.Error("exclusion should hide the lease being edited")
	}
	if _, found := lease.ActiveForUnit(leases, "u3", ""); found {
		t.Error("u3 has no leases")
	}
}
