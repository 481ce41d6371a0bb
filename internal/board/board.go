package board

import (
	"fmt"
	"log/slog"
	"time"
)

// CompletedSink receives tasks that advance past the last column. It is
// invoked exactly once per completion, with the task's display line and its
// full history; after the call the board no longer holds the task.
type CompletedSink interface {
	TaskCompleted(display string, history []string) error
}

type nopSink struct{}

func (nopSink) TaskCompleted(string, []string) error { return nil }

// Board is the ordered pipeline of columns. Column order defines the advance
// direction: index 0 is where new tasks enter, the last index is the exit.
//
// The board itself is not safe for concurrent use; callers that share it
// across goroutines must serialize whole-board operations (see engine).
type Board struct {
	columns []*Column
	alloc   *IDAllocator
	clock   Clock
	sink    CompletedSink
}

type Option func(*Board)

// WithClock overrides the history timestamp source.
func WithClock(c Clock) Option {
	return func(b *Board) {
		b.clock = c
	}
}

// New creates an empty board. Columns are added with AddColumn before any
// task operation; sink may be nil when completions need no recording.
func New(sink CompletedSink, opts ...Option) *Board {
	if sink == nil {
		sink = nopSink{}
	}
	b := &Board{
		alloc: NewIDAllocator(),
		clock: time.Now,
		sink:  sink,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddColumn appends a column and returns its index. Columns are never
// removed, renamed or reordered afterwards.
func (b *Board) AddColumn(name string) int {
	b.columns = append(b.columns, newColumn(name, b.clock))
	return len(b.columns) - 1
}

// ColumnCount reports the number of columns on the board.
func (b *Board) ColumnCount() int {
	return len(b.columns)
}

// CreateTask allocates a new task and places it in the first column.
func (b *Board) CreateTask(name string) TaskID {
	if len(b.columns) == 0 {
		panic("board: CreateTask on a board with no columns")
	}
	t := newTask(b.alloc.Next(), name)
	b.columns[0].Add(t)
	return t.ID()
}

// AddTask places an existing task in the column at index. Returns false if
// the index is out of range or the column already holds the task.
func (b *Board) AddTask(index int, t *Task) bool {
	if index < 0 || index >= len(b.columns) {
		return false
	}
	return b.columns[index].Add(t)
}

// owner returns the index of the column holding the task, or false if no
// column does. A task present in more than one column means a mutation
// bypassed the board; that is a defect, not a recoverable condition.
func (b *Board) owner(id TaskID) (int, bool) {
	found := -1
	for i, c := range b.columns {
		if c.Contains(id) {
			if found >= 0 {
				panic(fmt.Sprintf("board: task %d present in columns %d and %d", id, found, i))
			}
			found = i
		}
	}
	return found, found >= 0
}

// Locate reports the index of the column currently holding the task.
func (b *Board) Locate(id TaskID) (int, bool) {
	return b.owner(id)
}

// MoveTask relocates the task to the column at index, wherever it currently
// is. The destination is validated before anything is removed, so a failed
// move never detaches the task. Moving a task onto its own column re-adds it
// (one new history entry, no duplicate).
func (b *Board) MoveTask(index int, id TaskID) bool {
	if index < 0 || index >= len(b.columns) {
		return false
	}
	from, ok := b.owner(id)
	if !ok {
		return false
	}
	t := b.columns[from].Remove(id)
	b.columns[index].Add(t)
	return true
}

// Advance moves the task one column to the right. From the last column the
// task leaves the board: its display line and history go to the completed
// sink and it is not retained anywhere. Returns true whenever an owning
// column was found.
func (b *Board) Advance(id TaskID) bool {
	from, ok := b.owner(id)
	if !ok {
		return false
	}
	t := b.columns[from].Remove(id)
	next := from + 1
	if next < len(b.columns) {
		b.columns[next].Add(t)
		return true
	}
	if err := b.sink.TaskCompleted(t.Display(), t.History()); err != nil {
		slog.Warn("failed to record completed task", "task_id", id, "error", err)
	}
	return true
}

// RemoveTask deletes the task from whichever column holds it. Unlike a
// terminal Advance, nothing is exported. Returns false for an unknown id.
func (b *Board) RemoveTask(id TaskID) bool {
	from, ok := b.owner(id)
	if !ok {
		return false
	}
	b.columns[from].Remove(id)
	return true
}

// CleanCompleted advances every task out of the last column. The ids are
// captured up front so the iteration is not over a list being mutated.
// Returns the number of tasks that were in the last column when cleaning
// started.
func (b *Board) CleanCompleted() int {
	if len(b.columns) == 0 {
		return 0
	}
	ids := b.columns[len(b.columns)-1].taskIDs()
	for _, id := range ids {
		b.Advance(id)
	}
	return len(ids)
}

// Contents returns a snapshot of every column in board order. Columns that
// share a name each keep their own entry; the renderer shows them in order.
func (b *Board) Contents() []ColumnSnapshot {
	out := make([]ColumnSnapshot, len(b.columns))
	for i, c := range b.columns {
		out[i] = c.Snapshot()
	}
	return out
}
