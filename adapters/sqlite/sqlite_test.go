package sqlite_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/apops/apops/adapters/sqlite"
	"github.com/apops/apops/domain/invoice"
	"github.com/apops/apops/domain/unit"
	"github.com/apops/apops/domain/workspace"
	"github.com/apops/apops/ports"
)

func setupTestDB(t *testing.T) (*sqlite.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "apops-test-*.db")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	path := f.Name()
	f.Close()

	db, err := sqlite.Open(path)
	if err != nil {
		os.Remove(path)
		t.Fatalf("open database: %v", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		os.Remove(path)
		t.Fatalf("migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(path)
	}

	return db, cleanup
}

func TestWorkspaceStore_SaveAndLoad(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := sqlite.NewWorkspaceStore(db)
	ctx := context.Background()

	state := workspace.Empty()
	state.Units = append(state.Units, unit.Unit{
		ID:       "u1",
		Name:     "P101",
		BaseRent: 5000000,
		Status:   unit.StatusOccupied,
	})
	state.Invoices = append(state.Invoices, invoice.Invoice{
		ID:        "inv1",
		LeaseID:   "l1",
		UnitID:    "u1",
		Month:     "2026-08",
		DueDate:   "2026-08-05",
		Lines:     []invoice.Line{{Label: "Rent", Amount: 5000000}},
		Total:     5000000,
		Paid:      0,
		Remaining: 5000000,
		Status:    invoice.StatusUnpaid,
	})

	if err := store.Save(ctx, "A", state); err != nil {
		t.Fatalf("save workspace: %v", err)
	}

	got, err := store.Load(ctx, "A")
	if err != nil {
		t.Fatalf("load workspace: %v", err)
	}

	if len(got.Units) != 1 || got.Units[0].Name != "P101" {
		t.Errorf("Units = %+v, want one unit P101", got.Units)
	}
	if len(got.Invoices) != 1 {
		t.Fatalf("Invoices len = %d, want 1", len(got.Invoices))
	}
	inv := got.Invoices[0]
	if inv.Total != 5000000 || inv.Remaining != 5000000 {
		t.Errorf("Total = %d, Remaining = %d, want 5000000", inv.Total, inv.Remaining)
	}
	if len(inv.Lines) != 1 || inv.Lines[0].Label != "Rent" {
		t.Errorf("Lines = %+v, want one line Rent", inv.Lines)
	}
	if got.Settings.ElectricityPrice != state.Settings.ElectricityPrice {
		t.Errorf("ElectricityPrice = %d, want %d", got.Settings.ElectricityPrice, state.Settings.ElectricityPrice)
	}
}

func TestWorkspaceStore_Upsert(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := sqlite.NewWorkspaceStore(db)
	ctx := context.Background()

	first := workspace.Empty()
	if err := store.Save(ctx, "A", first); err != nil {
		t.Fatalf("save first: %v", err)
	}

	second := workspace.Empty()
	second.Units = append(second.Units, unit.Unit{ID: "u1", Name: "P202"})
	if err := store.Save(ctx, "A", second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := store.Load(ctx, "A")
	if err != nil {
		t.Fatalf("load workspace: %v", err)
	}
	if len(got.Units) != 1 || got.Units[0].Name != "P202" {
		t.Errorf("Units = %+v, want one unit P202", got.Units)
	}
}

func TestWorkspaceStore_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := sqlite.NewWorkspaceStore(db)
	ctx := context.Background()

	_, err := store.Load(ctx, "nonexistent")
	if !errors.Is(err, ports.ErrWorkspaceNotFound) {
		t.Errorf("expected ErrWorkspaceNotFound, got %v", err)
	}
}

func TestWorkspaceStore_List(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := sqlite.NewWorkspaceStore(db)
	ctx := context.Background()

	for _, id := range []string{"B", "A", "C"} {
		if err := store.Save(ctx, id, workspace.Empty()); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list workspaces: %v", err)
	}
	want := []string{"A", "B", "C"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}

func TestMigration_Idempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if err := db.Migrate(); err != nil {
		t.Fatalf("second migration: %v", err)
	}
}
