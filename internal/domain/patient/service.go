package patient

import (
	"context"
	"fmt"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.ID <= 0 {
		return fmt.Errorf("patient id must be a positive integer, got %d", p.ID)
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id int) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

// UpdateField edits a single attribute of an existing patient in place.
func (s *Service) UpdateField(ctx context.Context, id int, field Field, value string) error {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return err
	}

	switch field {
	case FieldDepartment:
		p.Department = value
	case FieldDoctorName:
		p.DoctorName = value
	case FieldName:
		p.Name = value
	case FieldAge:
		p.Age = value
	case FieldGender:
		p.Gender = value
	case FieldAddress:
		p.Address = value
	case FieldRoomNumber:
		p.RoomNumber = value
	default:
		return fmt.Errorf("unknown patient field: %q", field)
	}

	return s.patients.Update(ctx, p)
}

// DeletePatient removes the patient record. Appointments referencing the
// patient are NOT cascaded: a booked appointment stays on its doctor after
// the patient record is gone.
func (s *Service) DeletePatient(ctx context.Context, id int) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context) ([]*Patient, error) {
	return s.patients.List(ctx)
}

func (s *Service) Exists(ctx context.Context, id int) bool {
	_, err := s.patients.GetByID(ctx, id)
	return err == nil
}
