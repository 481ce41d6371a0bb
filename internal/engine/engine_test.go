package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernandezgh/kanban/internal/archive"
	"github.com/fernandezgh/kanban/internal/board"
	"github.com/fernandezgh/kanban/internal/board/repositoryimpl"
	"github.com/fernandezgh/kanban/internal/eventbus"
	"github.com/fernandezgh/kanban/pkg/storage"
)

var testColumns = []string{"New", "Dev", "Done"}

func fixedClock() board.Clock {
	ts := time.Date(2022, 3, 22, 10, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func newTestEngine(t *testing.T, bus *eventbus.Bus) (*Engine, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	repo := repositoryimpl.NewYAMLRepository(store)
	return New(testColumns, repo, archive.New(store), bus, board.WithClock(fixedClock())), store
}

func TestEngine_Workflow(t *testing.T) {
	eng, store := newTestEngine(t, nil)

	id := eng.CreateTask("A")
	assert.Equal(t, board.TaskID(0), id)

	require.True(t, eng.AdvanceTask(id))
	require.True(t, eng.AdvanceTask(id))
	contents := eng.Contents()
	assert.Equal(t, []string{"0. A"}, contents[2].Tasks)

	// Terminal advance: off the board and into the finished-task log.
	require.True(t, eng.AdvanceTask(id))
	assert.False(t, eng.AdvanceTask(id))

	data, err := store.Read(context.Background(), archive.LogPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "0. A\n")
	assert.Contains(t, string(data), "\t> Done : 20220322 10:00:00\n")
}

func TestEngine_SaveLoadEquivalence(t *testing.T) {
	ctx := context.Background()
	eng, store := newTestEngine(t, nil)

	a := eng.CreateTask("A")
	eng.CreateTask("B")
	eng.AdvanceTask(a)
	require.NoError(t, eng.Save(ctx))

	repo := repositoryimpl.NewYAMLRepository(store)
	eng2 := New(testColumns, repo, archive.New(store), nil, board.WithClock(fixedClock()))
	require.NoError(t, eng2.Load(ctx))

	assert.Equal(t, eng.Contents(), eng2.Contents())

	// Ids keep increasing across the restart.
	assert.Equal(t, board.TaskID(2), eng2.CreateTask("C"))
}

func TestEngine_LoadMissingStateIsFresh(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	require.NoError(t, eng.Load(context.Background()))

	contents := eng.Contents()
	require.Len(t, contents, 3)
	for _, col := range contents {
		assert.Empty(t, col.Tasks)
	}
}

func TestEngine_CleanCompleted(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	for _, name := range []string{"B", "C"} {
		id := eng.CreateTask(name)
		require.True(t, eng.MoveTask(2, id))
	}

	assert.Equal(t, 2, eng.CleanCompleted())
	assert.Empty(t, eng.Contents()[2].Tasks)
	assert.Equal(t, 0, eng.CleanCompleted())
}

func TestEngine_PublishesEvents(t *testing.T) {
	bus := eventbus.New()
	subID, events := bus.Subscribe(16)
	defer bus.Unsubscribe(subID)

	eng, _ := newTestEngine(t, bus)

	id := eng.CreateTask("A")
	eng.MoveTask(2, id)
	eng.AdvanceTask(id)
	eng.RemoveTask(999)
	eng.CleanCompleted()

	var got []eventbus.Type
	for len(got) < 4 {
		ev := <-events
		got = append(got, ev.Type)
	}
	assert.Equal(t, []eventbus.Type{
		eventbus.TypeTaskCreated,
		eventbus.TypeTaskMoved,
		eventbus.TypeTaskCompleted,
		eventbus.TypeBoardCleaned,
	}, got)
}

func TestEngine_Reset(t *testing.T) {
	ctx := context.Background()
	eng, store := newTestEngine(t, nil)

	eng.CreateTask("A")
	require.NoError(t, eng.Save(ctx))
	require.NoError(t, eng.Reset(ctx))

	for _, col := range eng.Contents() {
		assert.Empty(t, col.Tasks)
	}
	exists, err := store.Exists(ctx, repositoryimpl.StatePath)
	require.NoError(t, err)
	assert.False(t, exists)

	// Resetting again, with nothing saved, is fine.
	require.NoError(t, eng.Reset(ctx))
}
