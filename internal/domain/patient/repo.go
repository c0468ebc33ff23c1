package patient

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("patient not found")
	ErrDuplicateID = errors.New("patient id already in use")
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]*Patient, error)
	// Snapshot returns the full collection keyed by patient ID, for
	// whole-file rewrites.
	Snapshot(ctx context.Context) (map[int]Patient, error)
}
