package auditevent

import "context"

// MemoryRepository keeps the session's audit trail in append order.
type MemoryRepository struct {
	events []*Event
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Append(_ context.Context, e *Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Event, error) {
	out := make([]*Event, len(r.events))
	copy(out, r.events)
	return out, nil
}
