// Package archive records tasks that have left the board through the end of
// the pipeline. Finished tasks are appended to a plain-text log: the task's
// display line followed by its history, one indented line per entry.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/fernandezgh/kanban/pkg/cerr"
	"github.com/fernandezgh/kanban/pkg/storage"
)

// LogPath is where the finished-task log lives inside the storage root.
const LogPath = "archive/finished_tasks.txt"

type Archive struct {
	storage storage.Storage
}

func New(s storage.Storage) *Archive {
	return &Archive{storage: s}
}

// TaskCompleted appends one finished task to the log. The storage layer has
// no append primitive, so this is a read-modify-write; a missing log is
// treated as empty.
func (a *Archive) TaskCompleted(display string, history []string) error {
	ctx := context.Background()
	data, err := a.storage.Read(ctx, LogPath)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return cerr.WrapStorageReadError("finished-task log", err)
	}

	buf := bytes.NewBuffer(data)
	fmt.Fprintf(buf, "%s\n", display)
	for _, entry := range history {
		fmt.Fprintf(buf, "\t%s\n", entry)
	}

	if err := a.storage.Write(ctx, LogPath, buf.Bytes()); err != nil {
		return cerr.WrapStorageWriteError("finished-task log", err)
	}
	return nil
}
