package repositoryimpl

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/fernandezgh/kanban/internal/board"
	"github.com/fernandezgh/kanban/pkg/cerr"
	"github.com/fernandezgh/kanban/pkg/storage"
)

// StatePath is where the board state lives inside the storage root.
const StatePath = "board/board.yaml"

type YAMLRepository struct {
	storage storage.Storage
}

func NewYAMLRepository(s storage.Storage) *YAMLRepository {
	return &YAMLRepository{storage: s}
}

func (r *YAMLRepository) Load(ctx context.Context) (*board.State, error) {
	data, err := r.storage.Read(ctx, StatePath)
	if err != nil {
		return nil, cerr.WrapStorageReadError("board", err)
	}
	var s board.State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, cerr.NewError(cerr.DataLoss, "board state is corrupt", fmt.Errorf("failed to unmarshal board: %w", err))
	}
	return &s, nil
}

func (r *YAMLRepository) Save(ctx context.Context, s *board.State) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return cerr.NewError(cerr.Internal, "storage error", fmt.Errorf("failed to marshal board: %w", err))
	}
	if err := r.storage.Write(ctx, StatePath, data); err != nil {
		return cerr.WrapStorageWriteError("board", err)
	}
	return nil
}

func (r *YAMLRepository) Reset(ctx context.Context) error {
	if err := r.storage.Delete(ctx, StatePath); err != nil {
		return cerr.WrapStorageDeleteError("board", err)
	}
	return nil
}
