// Package engine is the public surface of the workflow: it owns the board,
// serializes access to it, and handles persistence and event publication.
package engine

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/fernandezgh/kanban/internal/board"
	"github.com/fernandezgh/kanban/internal/eventbus"
	"github.com/fernandezgh/kanban/pkg/cerr"
)

// Engine wraps the board with a single coarse-grained lock. Cross-column
// operations read then write across several columns, so they must never
// interleave; one mutex around every whole-board operation keeps the board's
// single-caller assumption intact even with the watcher running.
type Engine struct {
	mu      sync.Mutex
	board   *board.Board
	repo    board.Repository
	sink    board.CompletedSink
	bus     *eventbus.Bus
	columns []string
	opts    []board.Option
}

// New creates an engine with a fresh board laid out from the given column
// names, left to right. bus may be nil when nobody listens.
func New(columns []string, repo board.Repository, sink board.CompletedSink, bus *eventbus.Bus, opts ...board.Option) *Engine {
	e := &Engine{
		repo:    repo,
		sink:    sink,
		bus:     bus,
		columns: columns,
		opts:    opts,
	}
	e.board = e.freshBoard()
	return e
}

func (e *Engine) freshBoard() *board.Board {
	b := board.New(e.sink, e.opts...)
	for _, name := range e.columns {
		b.AddColumn(name)
	}
	return b
}

// Load replaces the board with the persisted state. A missing state is not
// an error; the engine keeps its fresh board.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.repo.Load(ctx)
	if err != nil {
		if cerr.IsCode(err, cerr.NotFound) {
			return nil
		}
		return err
	}
	b, err := board.Restore(s, e.sink, e.opts...)
	if err != nil {
		return cerr.NewError(cerr.DataLoss, "board state is corrupt", err)
	}
	e.board = b
	return nil
}

// Save persists the current board state.
func (e *Engine) Save(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.repo.Save(ctx, e.board.State())
}

// Reset discards the persisted state and starts over with an empty board.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.repo.Reset(ctx); err != nil && !cerr.IsCode(err, cerr.NotFound) {
		return err
	}
	e.board = e.freshBoard()
	return nil
}

// CreateTask creates a task in the first column and returns its id.
func (e *Engine) CreateTask(name string) board.TaskID {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.board.CreateTask(name)
	e.publish(eventbus.TypeTaskCreated, id, name)
	return id
}

// AdvanceTask moves the task one column forward, or out of the board if it
// sits in the last column.
func (e *Engine) AdvanceTask(id board.TaskID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	from, ok := e.board.Locate(id)
	if !ok {
		return false
	}
	terminal := from == e.board.ColumnCount()-1
	if !e.board.Advance(id) {
		return false
	}
	if terminal {
		e.publish(eventbus.TypeTaskCompleted, id, "")
	} else {
		e.publish(eventbus.TypeTaskAdvanced, id, fmt.Sprintf("column %d", from+1))
	}
	return true
}

// MoveTask relocates the task to the column at index.
func (e *Engine) MoveTask(index int, id board.TaskID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.board.MoveTask(index, id) {
		return false
	}
	e.publish(eventbus.TypeTaskMoved, id, fmt.Sprintf("column %d", index))
	return true
}

// RemoveTask deletes the task from the board without archiving it.
func (e *Engine) RemoveTask(id board.TaskID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.board.RemoveTask(id) {
		return false
	}
	e.publish(eventbus.TypeTaskRemoved, id, "")
	return true
}

// CleanCompleted advances everything out of the last column and returns how
// many tasks were there when cleaning started.
func (e *Engine) CleanCompleted() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := e.board.CleanCompleted()
	e.publish(eventbus.TypeBoardCleaned, -1, strconv.Itoa(n))
	return n
}

// Contents returns the renderable snapshot of every column in order.
func (e *Engine) Contents() []board.ColumnSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board.Contents()
}

func (e *Engine) publish(t eventbus.Type, id board.TaskID, payload string) {
	if e.bus == nil {
		return
	}
	e.bus.PublishNew(t, id, payload)
}
