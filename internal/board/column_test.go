package board

import (
	"testing"
	"time"
)

func fixedClock() Clock {
	ts := time.Date(2022, 3, 22, 10, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func TestColumn_Add(t *testing.T) {
	col := newColumn("New", fixedClock())
	task := newTask(0, "a")

	if !col.Add(task) {
		t.Fatal("Expected first add to succeed")
	}
	if len(task.History()) != 1 {
		t.Fatalf("Expected 1 history entry after placement, got %d", len(task.History()))
	}

	// Adding the same id again is a no-op and must not touch the history.
	if col.Add(task) {
		t.Error("Expected duplicate add to fail")
	}
	if len(task.History()) != 1 {
		t.Errorf("Duplicate add mutated history: %d entries", len(task.History()))
	}
	if col.Len() != 1 {
		t.Errorf("Expected 1 task in column, got %d", col.Len())
	}
}

func TestColumn_Remove(t *testing.T) {
	col := newColumn("New", fixedClock())
	a := newTask(0, "a")
	b := newTask(1, "b")
	col.Add(a)
	col.Add(b)

	got := col.Remove(0)
	if got == nil || got.ID() != 0 {
		t.Fatalf("Expected to remove task 0, got %v", got)
	}
	if col.Contains(0) {
		t.Error("Removed task still present")
	}
	if !col.Contains(1) {
		t.Error("Unrelated task disappeared")
	}

	if col.Remove(99) != nil {
		t.Error("Expected nil for unknown id")
	}
}

func TestColumn_Snapshot(t *testing.T) {
	col := newColumn("Dev", fixedClock())
	col.Add(newTask(2, "b"))
	col.Add(newTask(1, "a"))

	snap := col.Snapshot()
	if snap.Name != "Dev" {
		t.Errorf("Expected name Dev, got %s", snap.Name)
	}
	// Insertion order, not id order.
	if len(snap.Tasks) != 2 || snap.Tasks[0] != "2. b" || snap.Tasks[1] != "1. a" {
		t.Errorf("Unexpected snapshot tasks: %v", snap.Tasks)
	}
}
