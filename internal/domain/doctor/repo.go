package doctor

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("doctor not found")
	ErrDuplicateID = errors.New("doctor id already in use")
)

type Repository interface {
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, id int) (*Record, error)
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]*Record, error)
	// Snapshot returns the full collection keyed by doctor ID, for
	// whole-file rewrites.
	Snapshot(ctx context.Context) (map[int]Record, error)
}
