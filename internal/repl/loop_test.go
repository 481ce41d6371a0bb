package repl

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernandezgh/kanban/internal/archive"
	"github.com/fernandezgh/kanban/internal/board"
	"github.com/fernandezgh/kanban/internal/board/repositoryimpl"
	"github.com/fernandezgh/kanban/internal/engine"
	"github.com/fernandezgh/kanban/pkg/storage"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	repo := repositoryimpl.NewYAMLRepository(store)
	ts := time.Date(2022, 3, 22, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return ts }
	return engine.New([]string{"New", "Dev", "Done"}, repo, archive.New(store), nil, board.WithClock(clock))
}

func runScript(t *testing.T, eng *engine.Engine, script string) string {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var out bytes.Buffer
	loop := New(eng, strings.NewReader(script), &out)
	require.NoError(t, loop.Run(context.Background()))
	return out.String()
}

func TestLoop_AddListQuit(t *testing.T) {
	eng := newTestEngine(t)
	out := runScript(t, eng, "ADD\nTask A\nLIST\nQUIT\n")

	assert.Contains(t, out, "Task created with id 0.")
	assert.Contains(t, out, "*** New")
	assert.Contains(t, out, "- 0. Task A")
	assert.Contains(t, out, "Goodbye.")
}

func TestLoop_AdvanceAndClean(t *testing.T) {
	eng := newTestEngine(t)
	out := runScript(t, eng, "ADD\nA\nADVANCE\n0\nADVANCE\n0\nCLEAN\nQUIT\n")

	assert.Contains(t, out, "1 tasks cleaned.")
	for _, col := range eng.Contents() {
		assert.Empty(t, col.Tasks)
	}
}

func TestLoop_MoveAndRemove(t *testing.T) {
	eng := newTestEngine(t)
	out := runScript(t, eng, "ADD\nA\nMOVE\n2\n0\nREMOVE\n0\nCLEAN\nQUIT\n")

	assert.Contains(t, out, "No tasks to be cleaned.")
	assert.NotContains(t, out, "Error")
}

func TestLoop_Errors(t *testing.T) {
	eng := newTestEngine(t)
	out := runScript(t, eng, "bogus\nADVANCE\nnope\nADVANCE\n42\nMOVE\n9\n0\nQUIT\n")

	assert.Contains(t, out, `Error: Cannot understand "bogus". Type HELP.`)
	assert.Contains(t, out, "Error: Number expected.")
	assert.Contains(t, out, "Error: No task with id 42.")
	assert.Contains(t, out, "Error: Cannot move task 0 to column 9.")
}

func TestLoop_EOFEndsSession(t *testing.T) {
	eng := newTestEngine(t)
	out := runScript(t, eng, "ADD\nA\n")

	assert.Contains(t, out, "Task created with id 0.")
}

func TestLoop_Help(t *testing.T) {
	eng := newTestEngine(t)
	out := runScript(t, eng, "HELP\nQUIT\n")

	for _, cmd := range []string{"HELP", "LIST", "ADD", "ADVANCE", "MOVE", "REMOVE", "CLEAN", "QUIT"} {
		assert.Contains(t, out, "* "+cmd)
	}
}

func TestRenderBoard(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var out bytes.Buffer
	RenderBoard(&out, []board.ColumnSnapshot{
		{Name: "New", Tasks: []string{"0. A", "1. B"}},
		{Name: "Done", Tasks: nil},
	})

	assert.Equal(t, "\t*** New\n\t\t- 0. A\n\t\t- 1. B\n\t*** Done\n", out.String())
}
