package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/apops/apops/adapters/memory"
	"github.com/apops/apops/domain/unit"
	"github.com/apops/apops/domain/workspace"
	"github.com/apops/apops/ports"
)

func TestWorkspaceStoreLoadMissing(t *testing.T) {
	store := memory.NewWorkspaceStore()
	_, err := store.Load(context.Background(), "A")
	if !errors.Is(err, ports.ErrWorkspaceNotFound) {
		t.Fatalf("expected ErrWorkspaceNotFound, got %v", err)
	}
}

func TestWorkspaceStoreSaveLoad(t *testing.T) {
	store := memory.NewWorkspaceStore()
	ctx := context.Background()

	state := workspace.Empty()
	state.Units = append(state.Units, unit.Unit{ID: "u1", Name: "P101", BaseRent: 5000000, Status: unit.StatusVacant})

	if err := store.Save(ctx, "A", state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, "A")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Units) != 1 || got.Units[0].Name != "P101" {
		t.Fatalf("unexpected state: %+v", got.Units)
	}
}

func TestWorkspaceStoreIsolation(t *testing.T) {
	store := memory.NewWorkspaceStore()
	ctx := context.Background()

	state := workspace.Empty()
	state.Units = append(state.Units, unit.Unit{ID: "u1", Name: "P101"})
	if err := store.Save(ctx, "A", state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Mutating the loaded copy must not leak into the store.
	loaded, _ := store.Load(ctx, "A")
	loaded.Units[0].Name = "mutated"

	again, _ := store.Load(ctx, "A")
	if again.Units[0].Name != "P101" {
		t.Fatalf("store snapshot mutated through loaded copy: %q", again.Units[0].Name)
	}

	// Mutating the saved input after Save must not leak either.
	state.Units[0].Name = "mutated-after-save"
	final, _ := store.Load(ctx, "A")
	if final.Units[0].Name != "P101" {
		t.Fatalf("store snapshot mutated through saved input: %q", final.Units[0].Name)
	}
}

func TestWorkspaceStoreList(t *testing.T) {
	store := memory.NewWorkspaceStore()
	ctx := context.Background()

	for _, id := range []string{"C", "A", "B"} {
		if err := store.Save(ctx, id, workspace.Empty()); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"A", "B", "C"}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got %v, want %v", ids, want)
		}
	}
}
