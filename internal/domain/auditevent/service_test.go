package auditevent

import (
	"context"
	"testing"
)

func TestRecordAndList(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if err := svc.Record(ctx, ActionCreated, EntityPatient, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Record(ctx, ActionBooked, EntityAppointment, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	first := events[0]
	if first.Action != ActionCreated || first.Entity != EntityPatient || first.EntityID != 1 {
		t.Errorf("unexpected first event: %+v", first)
	}
	if first.ID == events[1].ID {
		t.Error("expected distinct event ids")
	}
	if first.Recorded.IsZero() {
		t.Error("expected recorded timestamp to be stamped")
	}
}

func TestList_Empty(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	events, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected empty trail, got %d events", len(events))
	}
}
