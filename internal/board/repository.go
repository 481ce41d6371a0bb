package board

import "context"

// Repository persists the board state. Load returns a cerr NotFound error
// when no state has been saved yet.
type Repository interface {
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, s *State) error
	Reset(ctx context.Context) error
}
