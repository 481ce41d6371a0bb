package board

import "fmt"

// State is the persisted form of a board: the id allocator position plus
// every column with its tasks and their histories. Restoring a State yields
// a board whose behavior is indistinguishable from one that never stopped.
type State struct {
	NextID  TaskID        `yaml:"next_id"`
	Columns []ColumnState `yaml:"columns"`
}

type ColumnState struct {
	Name  string      `yaml:"name"`
	Tasks []TaskState `yaml:"tasks"`
}

type TaskState struct {
	ID      TaskID   `yaml:"id"`
	Name    string   `yaml:"name"`
	History []string `yaml:"history"`
}

// State captures the board for persistence.
func (b *Board) State() *State {
	s := &State{
		NextID:  b.alloc.NextID(),
		Columns: make([]ColumnState, len(b.columns)),
	}
	for i, c := range b.columns {
		cs := ColumnState{Name: c.name, Tasks: make([]TaskState, len(c.tasks))}
		for j, t := range c.tasks {
			cs.Tasks[j] = TaskState{ID: t.id, Name: t.name, History: t.History()}
		}
		s.Columns[i] = cs
	}
	return s
}

// Restore rebuilds a board from a persisted State. Placement happens without
// recording history entries; the restored histories already contain them.
// A task id appearing in more than one column is rejected.
func Restore(s *State, sink CompletedSink, opts ...Option) (*Board, error) {
	b := New(sink, opts...)
	b.alloc = RestoreIDAllocator(s.NextID)
	seen := make(map[TaskID]string)
	for _, cs := range s.Columns {
		c := newColumn(cs.Name, b.clock)
		for _, ts := range cs.Tasks {
			if prev, ok := seen[ts.ID]; ok {
				return nil, fmt.Errorf("task %d present in both %q and %q", ts.ID, prev, cs.Name)
			}
			seen[ts.ID] = cs.Name
			t := newTask(ts.ID, ts.Name)
			t.history = append(t.history, ts.History...)
			c.tasks = append(c.tasks, t)
		}
		b.columns = append(b.columns, c)
	}
	return b, nil
}
