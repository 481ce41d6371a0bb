package board

import (
	"fmt"
	"time"
)

// TaskID identifies a task for the lifetime of a board. IDs are assigned in
// creation order and never reused.
type TaskID int64

// HistoryTimeFormat is the fixed-width, lexically sortable timestamp layout
// used in task history entries.
const HistoryTimeFormat = "20060102 15:04:05"

// Clock supplies the current time for history entries. Injectable so tests
// can pin timestamps.
type Clock func() time.Time

// IDAllocator hands out strictly increasing task ids. It is owned by the
// board and travels with the persisted state, so a restored board continues
// the sequence instead of restarting it.
type IDAllocator struct {
	next TaskID
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// RestoreIDAllocator resumes an allocator at the given next id.
func RestoreIDAllocator(next TaskID) *IDAllocator {
	return &IDAllocator{next: next}
}

// Next returns the current id and advances the sequence.
func (a *IDAllocator) Next() TaskID {
	id := a.next
	a.next++
	return id
}

// NextID reports the id the next allocation would return, without consuming it.
func (a *IDAllocator) NextID() TaskID {
	return a.next
}

// Task is a unit of work: an identity, a display name and an append-only
// log of every column it has entered.
type Task struct {
	id      TaskID
	name    string
	history []string
}

func newTask(id TaskID, name string) *Task {
	return &Task{id: id, name: name}
}

func (t *Task) ID() TaskID {
	return t.id
}

func (t *Task) Name() string {
	return t.name
}

// History returns a copy of the task's placement log, oldest first.
func (t *Task) History() []string {
	out := make([]string, len(t.history))
	copy(out, t.history)
	return out
}

// RecordEntry appends a placement entry for the named column. Entries are
// never removed or rewritten.
func (t *Task) RecordEntry(column string, ts time.Time) {
	t.history = append(t.history, fmt.Sprintf("> %s : %s", column, ts.Format(HistoryTimeFormat)))
}

// Display renders the task's one-line form, "{id}. {name}".
func (t *Task) Display() string {
	return fmt.Sprintf("%d. %s", t.id, t.name)
}
