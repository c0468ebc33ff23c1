package auditevent

import "context"

type Repository interface {
	Append(ctx context.Context, e *Event) error
	List(ctx context.Context) ([]*Event, error)
}
