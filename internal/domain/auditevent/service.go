package auditevent

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends one event to the trail, stamping id and time.
func (s *Service) Record(ctx context.Context, action Action, entity Entity, entityID int) error {
	return s.repo.Append(ctx, &Event{
		ID:       uuid.New(),
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Recorded: time.Now(),
	})
}

func (s *Service) List(ctx context.Context) ([]*Event, error) {
	return s.repo.List(ctx)
}
