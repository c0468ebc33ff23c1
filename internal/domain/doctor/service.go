package doctor

import (
	"context"
	"fmt"
)

type Service struct {
	doctors Repository
}

func NewService(doctors Repository) *Service {
	return &Service{doctors: doctors}
}

func (s *Service) CreateDoctor(ctx context.Context, rec *Record) error {
	if rec.ID <= 0 {
		return fmt.Errorf("doctor id must be a positive integer, got %d", rec.ID)
	}
	return s.doctors.Create(ctx, rec)
}

func (s *Service) GetDoctor(ctx context.Context, id int) (*Record, error) {
	return s.doctors.GetByID(ctx, id)
}

// UpdateField edits a single attribute of the doctor header in place. The
// appointment sequence is untouched.
func (s *Service) UpdateField(ctx context.Context, id int, field Field, value string) error {
	rec, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return err
	}

	switch field {
	case FieldDepartment:
		rec.Info.Department = value
	case FieldName:
		rec.Info.Name = value
	case FieldAddress:
		rec.Info.Address = value
	default:
		return fmt.Errorf("unknown doctor field: %q", field)
	}

	return s.doctors.Update(ctx, rec)
}

// DeleteDoctor removes the doctor record together with every appointment it
// owns.
func (s *Service) DeleteDoctor(ctx context.Context, id int) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context) ([]*Record, error) {
	return s.doctors.List(ctx)
}

func (s *Service) Exists(ctx context.Context, id int) bool {
	_, err := s.doctors.GetByID(ctx, id)
	return err == nil
}
