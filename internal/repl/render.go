package repl

import (
	"io"

	"github.com/fatih/color"

	"github.com/fernandezgh/kanban/internal/board"
)

// palette cycles across columns so each stage gets its own color.
var palette = []color.Attribute{
	color.FgCyan,
	color.FgGreen,
	color.FgYellow,
	color.FgMagenta,
	color.FgBlue,
	color.FgRed,
}

// RenderBoard writes every column with its tasks, one color per column.
func RenderBoard(w io.Writer, contents []board.ColumnSnapshot) {
	for i, col := range contents {
		c := color.New(palette[i%len(palette)])
		c.Fprintf(w, "\t*** %s\n", col.Name)
		for _, task := range col.Tasks {
			c.Fprintf(w, "\t\t- %s\n", task)
		}
	}
}
