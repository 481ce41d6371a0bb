package eventbus

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/fernandezgh/kanban/internal/board"
)

type Type string

const (
	TypeTaskCreated   Type = "TASK_CREATED"
	TypeTaskAdvanced  Type = "TASK_ADVANCED"
	TypeTaskMoved     Type = "TASK_MOVED"
	TypeTaskRemoved   Type = "TASK_REMOVED"
	TypeTaskCompleted Type = "TASK_COMPLETED"
	TypeBoardCleaned  Type = "BOARD_CLEANED"
)

// Event describes one board mutation.
type Event struct {
	ID        string
	Type      Type
	TaskID    board.TaskID
	Payload   string
	CreatedAt time.Time
}

// Bus is an in-process publish/subscribe fan-out for board events.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]chan *Event
}

func New() *Bus {
	return &Bus{
		subscribers: make(map[string]chan *Event),
	}
}

func (b *Bus) Subscribe(bufSize int) (string, <-chan *Event) {
	id := ulid.Make().String()
	ch := make(chan *Event, bufSize)
	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()
	return id, ch
}

func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

func (b *Bus) Publish(event *Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// buffer full, drop event for this subscriber
		}
	}
}

func (b *Bus) PublishNew(eventType Type, taskID board.TaskID, payload string) {
	b.Publish(&Event{
		ID:        ulid.Make().String(),
		Type:      eventType,
		TaskID:    taskID,
		Payload:   payload,
		CreatedAt: time.Now(),
	})
}
