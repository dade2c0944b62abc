package app_test

import (
	"errors"
	"testing"

	"github.com/apops/apops/app"
	"github.com/apops/apops/domain/meter"
)

func TestCreateReading(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	r, err := f.svc.CreateReading(f.ctx, testWS, meter.Reading{
		UnitID: "u1", Month: "2026-08", StartValue: 1200, EndValue: 1350,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.KWH != 150 {
		t.Errorf("KWH = %d, want derived 150", r.KWH)
	}
	if r.ID == "" {
		t.Error("reading should get an id")
	}
}

func TestCreateReadingValidation(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	tests := []struct {
		name string
		r    meter.Reading
	}{
		{"end below start", meter.Reading{UnitID: "u1", Month: "2026-08", StartValue: 100, EndValue: 50}},
		{"negative start", meter.Reading{UnitID: "u1", Month: "2026-08", StartValue: -1, EndValue: 50}},
		{"bad month", meter.Reading{UnitID: "u1", Month: "08-2026", StartValue: 0, EndValue: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateReading(f.ctx, testWS, tt.r)
			var verr app.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestCreateReadingDuplicateMonth(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	if _, err := f.svc.CreateReading(f.ctx, testWS, meter.Reading{
		UnitID: "u1", Month: "2026-08", StartValue: 0, EndValue: 10,
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := f.svc.CreateReading(f.ctx, testWS, meter.Reading{
		UnitID: "u1", Month: "2026-08", StartValue: 10, EndValue: 20,
	})
	var verr app.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for duplicate month, got %v", err)
	}
}

func TestUpdateReading(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	r, err := f.svc.CreateReading(f.ctx, testWS, meter.Reading{
		UnitID: "u1", Month: "2026-08", StartValue: 0, EndValue: 10,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	r.EndValue = 90
	updated, err := f.svc.UpdateReading(f.ctx, testWS, r)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.KWH != 90 {
		t.Errorf("KWH = %d, want re-derived 90", updated.KWH)
	}

	// Updating a reading onto another reading's (unit, month) is a
	// duplicate; keeping its own slot is not.
	if _, err := f.svc.CreateReading(f.ctx, testWS, meter.Reading{
		UnitID: "u1", Month: "2026-09", StartValue: 90, EndValue: 100,
	}); err != nil {
		t.Fatalf("create second: %v", err)
	}
	r.Month = "2026-09"
	_, err = f.svc.UpdateReading(f.ctx, testWS, r)
	var verr app.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestDeleteReading(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	r, _ := f.svc.CreateReading(f.ctx, testWS, meter.Reading{
		UnitID: "u1", Month: "2026-08", StartValue: 0, EndValue: 10,
	})
	if err := f.svc.DeleteReading(f.ctx, testWS, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	err := f.svc.DeleteReading(f.ctx, testWS, r.ID)
	var nerr app.NotFoundError
	if !errors.As(err, &nerr) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestListReadingsByMonth(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	f.addReading(t, "u1", "2026-07", 0, 10)
	f.addReading(t, "u1", "2026-08", 10, 30)

	got, err := f.svc.ListReadings(f.ctx, testWS, "2026-08")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Month != "2026-08" {
		t.Errorf("got %+v, want just the August reading", got)
	}
}
