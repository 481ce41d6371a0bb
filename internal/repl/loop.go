// Package repl implements the interactive command loop: one blocking
// read-eval step at a time, which is what lets the board go without internal
// locking of its own.
package repl

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/fernandezgh/kanban/internal/board"
	"github.com/fernandezgh/kanban/internal/engine"
)

type Loop struct {
	engine *engine.Engine
	in     *bufio.Scanner
	out    io.Writer

	prompt *color.Color
	errc   *color.Color
}

func New(e *engine.Engine, in io.Reader, out io.Writer) *Loop {
	return &Loop{
		engine: e,
		in:     bufio.NewScanner(in),
		out:    out,
		prompt: color.New(color.FgBlue),
		errc:   color.New(color.FgRed),
	}
}

// Run reads commands until QUIT, EOF or context cancellation.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.prompt.Fprint(l.out, "> ")
		line, ok := l.readLine()
		if !ok {
			return nil
		}
		cmd, ok := ParseCommand(line)
		if !ok {
			l.errc.Fprintf(l.out, "Error: Cannot understand %q. Type HELP.\n", line)
			continue
		}
		if l.dispatch(cmd) {
			return nil
		}
	}
}

// dispatch runs one command and reports whether the loop should finish.
func (l *Loop) dispatch(cmd Command) bool {
	switch cmd {
	case CommandHelp:
		l.showMenu()
	case CommandList:
		RenderBoard(l.out, l.engine.Contents())
	case CommandAdd:
		l.addTask()
	case CommandAdvance:
		l.advanceTask()
	case CommandMove:
		l.moveTask()
	case CommandRemove:
		l.removeTask()
	case CommandClean:
		l.cleanCompleted()
	case CommandQuit:
		l.prompt.Fprint(l.out, "Goodbye.\n")
		return true
	}
	return false
}

func (l *Loop) readLine() (string, bool) {
	if !l.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(l.in.Text()), true
}

func (l *Loop) showMenu() {
	for _, c := range menu {
		l.prompt.Fprintf(l.out, "\t* %s\n", c)
	}
}

func (l *Loop) addTask() {
	l.prompt.Fprint(l.out, "\tName: ")
	name, ok := l.readLine()
	if !ok {
		return
	}
	id := l.engine.CreateTask(name)
	l.prompt.Fprintf(l.out, "\tTask created with id %d.\n", id)
}

func (l *Loop) advanceTask() {
	id, ok := l.readTaskID()
	if !ok {
		return
	}
	if !l.engine.AdvanceTask(id) {
		l.errc.Fprintf(l.out, "\tError: No task with id %d.\n", id)
	}
}

func (l *Loop) moveTask() {
	l.prompt.Fprint(l.out, "\tColumn: ")
	line, ok := l.readLine()
	if !ok {
		return
	}
	index, err := strconv.Atoi(line)
	if err != nil {
		l.errc.Fprint(l.out, "\tError: Number expected.\n")
		return
	}
	id, ok := l.readTaskID()
	if !ok {
		return
	}
	if !l.engine.MoveTask(index, id) {
		l.errc.Fprintf(l.out, "\tError: Cannot move task %d to column %d.\n", id, index)
	}
}

func (l *Loop) removeTask() {
	id, ok := l.readTaskID()
	if !ok {
		return
	}
	if !l.engine.RemoveTask(id) {
		l.errc.Fprintf(l.out, "\tError: No task with id %d.\n", id)
	}
}

func (l *Loop) cleanCompleted() {
	n := l.engine.CleanCompleted()
	if n > 0 {
		l.prompt.Fprintf(l.out, "%d tasks cleaned.\n", n)
	} else {
		l.prompt.Fprint(l.out, "No tasks to be cleaned.\n")
	}
}

func (l *Loop) readTaskID() (board.TaskID, bool) {
	l.prompt.Fprint(l.out, "\tTask ID: ")
	line, ok := l.readLine()
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		l.errc.Fprint(l.out, "\tError: Number expected.\n")
		return 0, false
	}
	return board.TaskID(id), true
}
