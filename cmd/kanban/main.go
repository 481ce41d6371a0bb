package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/sourcegraph/conc"

	"github.com/fernandezgh/kanban/internal/archive"
	"github.com/fernandezgh/kanban/internal/board"
	"github.com/fernandezgh/kanban/internal/board/repositoryimpl"
	"github.com/fernandezgh/kanban/internal/config"
	"github.com/fernandezgh/kanban/internal/engine"
	"github.com/fernandezgh/kanban/internal/eventbus"
	"github.com/fernandezgh/kanban/internal/repl"
	"github.com/fernandezgh/kanban/pkg/clog"
	"github.com/fernandezgh/kanban/pkg/storage"
)

var (
	app = kingpin.New("kanban", "Minimalistic kanban board")

	runCmd = app.Command("run", "Start the interactive board").Default()

	addCmd  = app.Command("add", "Create a task in the first column")
	addName = addCmd.Arg("name", "Task name").Required().String()

	listCmd = app.Command("list", "Print the board")

	advanceCmd = app.Command("advance", "Advance a task one column to the right")
	advanceID  = advanceCmd.Arg("id", "Task ID").Required().Int64()

	moveCmd    = app.Command("move", "Move a task to a column")
	moveColumn = moveCmd.Arg("column", "Destination column index").Required().Int()
	moveID     = moveCmd.Arg("id", "Task ID").Required().Int64()

	removeCmd = app.Command("remove", "Remove a task from the board")
	removeID  = removeCmd.Arg("id", "Task ID").Required().Int64()

	cleanCmd = app.Command("clean", "Archive every task in the last column")

	resetCmd = app.Command("reset", "Delete the saved board and start over")

	watchCmd = app.Command("watch", "Re-render the board whenever the saved state changes")
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("failed to load env", "error", err)
		os.Exit(1)
	}

	// Setup logger
	level := env.SlogLevel()
	var handler slog.Handler
	if env.Env == "local" {
		handler = clog.NewTextHandler(os.Stderr, clog.WithLevel(level))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))

	// Setup storage
	var store storage.Storage
	switch env.StorageEnv.Type {
	case "s3":
		store, err = storage.NewS3Storage(context.Background(), env.StorageEnv.S3Bucket, env.StorageEnv.S3Prefix, env.StorageEnv.S3Region)
		if err != nil {
			slog.Error("failed to create S3 storage", "error", err)
			os.Exit(1)
		}
	default:
		store, err = storage.NewLocalStorage(env.StorageEnv.BaseDir)
		if err != nil {
			slog.Error("failed to create local storage", "error", err)
			os.Exit(1)
		}
	}

	bus := eventbus.New()
	repo := repositoryimpl.NewYAMLRepository(store)
	sink := archive.New(store)
	eng := engine.New(env.Columns, repo, sink, bus)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if command != resetCmd.FullCommand() {
		if err := eng.Load(ctx); err != nil {
			slog.Error("failed to load board", "error", err)
			os.Exit(1)
		}
	}

	switch command {
	case runCmd.FullCommand():
		err = runInteractive(ctx, eng, bus)
	case addCmd.FullCommand():
		id := eng.CreateTask(*addName)
		fmt.Printf("Task created with id %d.\n", id)
		err = eng.Save(ctx)
	case listCmd.FullCommand():
		repl.RenderBoard(os.Stdout, eng.Contents())
	case advanceCmd.FullCommand():
		err = saveIf(ctx, eng, eng.AdvanceTask(board.TaskID(*advanceID)), fmt.Sprintf("no task with id %d", *advanceID))
	case moveCmd.FullCommand():
		err = saveIf(ctx, eng, eng.MoveTask(*moveColumn, board.TaskID(*moveID)), fmt.Sprintf("cannot move task %d to column %d", *moveID, *moveColumn))
	case removeCmd.FullCommand():
		err = saveIf(ctx, eng, eng.RemoveTask(board.TaskID(*removeID)), fmt.Sprintf("no task with id %d", *removeID))
	case cleanCmd.FullCommand():
		n := eng.CleanCompleted()
		fmt.Printf("%d tasks cleaned.\n", n)
		err = eng.Save(ctx)
	case resetCmd.FullCommand():
		err = eng.Reset(ctx)
	case watchCmd.FullCommand():
		err = runWatch(ctx, eng, store)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// saveIf persists the board after a successful operation and turns a failed
// one into an error for the exit code.
func saveIf(ctx context.Context, eng *engine.Engine, ok bool, failMsg string) error {
	if !ok {
		return errors.New(failMsg)
	}
	return eng.Save(ctx)
}

// runInteractive runs the command loop with a subscriber mirroring board
// events into the debug log.
func runInteractive(ctx context.Context, eng *engine.Engine, bus *eventbus.Bus) error {
	subID, events := bus.Subscribe(64)
	wg := conc.NewWaitGroup()
	wg.Go(func() {
		for ev := range events {
			slog.Debug("board event",
				"event_id", ev.ID,
				"type", ev.Type,
				"task_id", ev.TaskID,
				"payload", ev.Payload,
			)
		}
	})

	loop := repl.New(eng, os.Stdin, os.Stdout)
	loopErr := loop.Run(ctx)

	bus.Unsubscribe(subID)
	wg.Wait()

	// Save even when the loop ended by signal; losing the session is worse.
	if err := eng.Save(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	if loopErr != nil && ctx.Err() == nil {
		return loopErr
	}
	return nil
}
