package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hms/hms/internal/domain/doctor"
)

var (
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrInvalidTimeWindow = errors.New("session start outside working hours")
	ErrConflict          = errors.New("session start falls inside an existing appointment")
	ErrNoAppointment     = errors.New("no appointment for this patient")
)

// blockedStartPrefixes rejects appointment start tokens beginning with these
// two characters. The rule is a literal prefix test, not a time-range check:
// it turns away "11:xx" and "12:xx" while letting both earlier and later
// tokens through.
var blockedStartPrefixes = []string{"11", "12"}

// Service books, edits, and cancels appointments on the doctor collection.
// Appointment start tokens are compared lexicographically by default, which
// mis-orders tokens of unequal width ("9:00" sorts after "10:00"); that rule
// is observable legacy behavior and stays the default. clockAware switches
// the conflict check to a parsed HH:MM comparison for callers that opt in.
type Service struct {
	doctors    doctor.Repository
	clockAware bool
}

func NewService(doctors doctor.Repository, clockAware bool) *Service {
	return &Service{doctors: doctors, clockAware: clockAware}
}

// BookAppointment validates the start token and appends a new appointment to
// the doctor's sequence. The end token is accepted without any range or
// conflict validation; only start is checked.
func (s *Service) BookAppointment(ctx context.Context, doctorID, patientID int, start, end string) error {
	rec, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, doctor.ErrNotFound) {
			return ErrDoctorNotFound
		}
		return err
	}

	if err := s.validateStart(rec, start); err != nil {
		return err
	}

	rec.Appointments = append(rec.Appointments, doctor.Appointment{
		PatientID: patientID,
		Start:     start,
		End:       end,
	})
	return s.doctors.Update(ctx, rec)
}

// FindAppointmentByPatient scans every doctor's appointment sequence and
// returns the location of the first entry booked for the patient. With
// duplicate bookings across doctors the result depends on collection
// iteration order; which duplicate wins is not part of the contract.
func (s *Service) FindAppointmentByPatient(ctx context.Context, patientID int) (doctorID, index int, err error) {
	records, err := s.doctors.List(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, rec := range records {
		for i, a := range rec.Appointments {
			if a.PatientID == patientID {
				return rec.ID, i, nil
			}
		}
	}
	return 0, 0, ErrNoAppointment
}

// EditAppointment locates the patient's appointment, re-runs the booking
// validation for the new start token against the located doctor's full
// sequence (the entry being replaced included), and swaps the entry in place.
func (s *Service) EditAppointment(ctx context.Context, patientID int, newStart, newEnd string) error {
	doctorID, index, err := s.FindAppointmentByPatient(ctx, patientID)
	if err != nil {
		return err
	}

	rec, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}

	if err := s.validateStart(rec, newStart); err != nil {
		return err
	}

	rec.Appointments[index] = doctor.Appointment{
		PatientID: patientID,
		Start:     newStart,
		End:       newEnd,
	}
	return s.doctors.Update(ctx, rec)
}

// ValidateStart runs the booking checks for a candidate start token without
// mutating anything, so an interactive caller can re-prompt on rejection.
func (s *Service) ValidateStart(ctx context.Context, doctorID int, start string) error {
	rec, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, doctor.ErrNotFound) {
			return ErrDoctorNotFound
		}
		return err
	}
	return s.validateStart(rec, start)
}

// CancelAppointment removes the first appointment found for the patient.
func (s *Service) CancelAppointment(ctx context.Context, patientID int) error {
	doctorID, index, err := s.FindAppointmentByPatient(ctx, patientID)
	if err != nil {
		return err
	}

	rec, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}

	rec.Appointments = append(rec.Appointments[:index], rec.Appointments[index+1:]...)
	return s.doctors.Update(ctx, rec)
}

func (s *Service) validateStart(rec *doctor.Record, start string) error {
	for _, prefix := range blockedStartPrefixes {
		if strings.HasPrefix(start, prefix) {
			return fmt.Errorf("%w: %q", ErrInvalidTimeWindow, start)
		}
	}

	for _, a := range rec.Appointments {
		if s.compare(start, a.Start) >= 0 && s.compare(start, a.End) < 0 {
			return fmt.Errorf("%w: %s-%s", ErrConflict, a.Start, a.End)
		}
	}
	return nil
}

// compare orders two time tokens. Lexicographic by default; clock-aware mode
// parses HH:MM into minutes and falls back to the string rule when a token
// does not parse.
func (s *Service) compare(a, b string) int {
	if s.clockAware {
		am, aok := parseClock(a)
		bm, bok := parseClock(b)
		if aok && bok {
			switch {
			case am < bm:
				return -1
			case am > bm:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(a, b)
}

func parseClock(token string) (minutes int, ok bool) {
	h, m, found := strings.Cut(token, ":")
	if !found {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}
	mins, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return hours*60 + mins, true
}
