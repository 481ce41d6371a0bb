package board

// Column is a named stage holding tasks in insertion order. A task id appears
// at most once within a column.
type Column struct {
	name  string
	clock Clock
	tasks []*Task
}

func newColumn(name string, clock Clock) *Column {
	return &Column{name: name, clock: clock}
}

func (c *Column) Name() string {
	return c.name
}

// Add appends the task and records a history entry for entering this column.
// Returns false without touching the task if its id is already present.
func (c *Column) Add(t *Task) bool {
	if c.Contains(t.ID()) {
		return false
	}
	c.tasks = append(c.tasks, t)
	t.RecordEntry(c.name, c.clock())
	return true
}

// Remove detaches and returns the task with the given id, or nil if the
// column does not hold it.
func (c *Column) Remove(id TaskID) *Task {
	for i, t := range c.tasks {
		if t.ID() == id {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			return t
		}
	}
	return nil
}

func (c *Column) Contains(id TaskID) bool {
	for _, t := range c.tasks {
		if t.ID() == id {
			return true
		}
	}
	return false
}

// Len reports how many tasks the column holds.
func (c *Column) Len() int {
	return len(c.tasks)
}

func (c *Column) taskIDs() []TaskID {
	ids := make([]TaskID, len(c.tasks))
	for i, t := range c.tasks {
		ids[i] = t.ID()
	}
	return ids
}

// ColumnSnapshot is a read-only projection of a column for rendering.
type ColumnSnapshot struct {
	Name  string
	Tasks []string
}

// Snapshot returns the column name and the display strings of its tasks in
// order.
func (c *Column) Snapshot() ColumnSnapshot {
	tasks := make([]string, len(c.tasks))
	for i, t := range c.tasks {
		tasks[i] = t.Display()
	}
	return ColumnSnapshot{Name: c.name, Tasks: tasks}
}
