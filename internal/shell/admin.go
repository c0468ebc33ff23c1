package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/hms/hms/internal/domain/auditevent"
	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/scheduling"
)

// adminMode is the password-gated branch. Every completed action is followed
// by a whole-file rewrite of both collections, so changes survive even if
// the process dies between actions.
func (s *Session) adminMode(ctx context.Context) error {
	fmt.Fprintln(s.out, "*****************************************")
	fmt.Fprintln(s.out, "|         Welcome to admin mode         |")
	fmt.Fprintln(s.out, "*****************************************")

	ok, err := s.checkPassword()
	if err != nil || !ok {
		return err
	}

	for !s.closed {
		fmt.Fprintln(s.out, "-----------------------------------------")
		fmt.Fprintln(s.out, "| To manage patients enter 1            |")
		fmt.Fprintln(s.out, "| To manage doctors enter 2             |")
		fmt.Fprintln(s.out, "| To manage appointments enter 3        |")
		fmt.Fprintln(s.out, "| To view the audit trail enter 4       |")
		fmt.Fprintln(s.out, "| To go back enter E                    |")
		fmt.Fprintln(s.out, "-----------------------------------------")
		choice, err := s.promptUpper("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = s.managePatients(ctx)
		case "2":
			err = s.manageDoctors(ctx)
		case "3":
			err = s.manageAppointments(ctx)
		case "4":
			err = s.showAuditTrail(ctx)
		case "E":
			return nil
		default:
			fmt.Fprintln(s.out, "Please enter a correct option")
			continue
		}
		if err != nil {
			return err
		}

		if err := s.saveAll(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) managePatients(ctx context.Context) error {
	fmt.Fprintln(s.out, "-----------------------------------------")
	fmt.Fprintln(s.out, "| To add a new patient enter 1          |")
	fmt.Fprintln(s.out, "| To display a patient enter 2          |")
	fmt.Fprintln(s.out, "| To delete patient data enter 3        |")
	fmt.Fprintln(s.out, "| To edit patient data enter 4          |")
	fmt.Fprintln(s.out, "| To go back enter B                    |")
	fmt.Fprintln(s.out, "-----------------------------------------")
	choice, err := s.promptUpper("Enter your choice: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return s.addPatient(ctx)
	case "2":
		return s.displayPatient(ctx)
	case "3":
		return s.deletePatient(ctx)
	case "4":
		return s.editPatient(ctx)
	case "B":
		return nil
	default:
		fmt.Fprintln(s.out, "Please enter a correct choice")
		return nil
	}
}

func (s *Session) addPatient(ctx context.Context) error {
	id, err := s.promptIntWhere(
		"Enter patient ID: ",
		"This ID is unavailable, please try another ID: ",
		func(id int) bool { return id > 0 && !s.patients.Exists(ctx, id) },
	)
	if err != nil {
		return err
	}

	p := patient.Patient{ID: id}
	fields := []struct {
		label string
		dst   *string
	}{
		{"Enter patient department: ", &p.Department},
		{"Enter name of doctor following the case: ", &p.DoctorName},
		{"Enter patient name: ", &p.Name},
		{"Enter patient age: ", &p.Age},
		{"Enter patient gender: ", &p.Gender},
		{"Enter patient address: ", &p.Address},
		{"Enter patient room number: ", &p.RoomNumber},
	}
	for _, f := range fields {
		if *f.dst, err = s.prompt(f.label); err != nil {
			return err
		}
	}

	if err := s.patients.CreatePatient(ctx, &p); err != nil {
		fmt.Fprintln(s.out, "Could not add patient:", err)
		return nil
	}
	s.recordAudit(ctx, auditevent.ActionCreated, auditevent.EntityPatient, id)
	fmt.Fprintln(s.out, "---------------------- Patient added successfully ----------------------")
	return nil
}

func (s *Session) displayPatient(ctx context.Context) error {
	id, err := s.promptIntWhere(
		"Enter patient ID: ",
		"Incorrect ID, please enter patient ID: ",
		func(id int) bool { return s.patients.Exists(ctx, id) },
	)
	if err != nil {
		return err
	}

	p, err := s.patients.GetPatient(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "patient name        :", p.Name)
	fmt.Fprintln(s.out, "patient age         :", p.Age)
	fmt.Fprintln(s.out, "patient gender      :", p.Gender)
	fmt.Fprintln(s.out, "patient address     :", p.Address)
	fmt.Fprintln(s.out, "patient room number :", p.RoomNumber)
	fmt.Fprintf(s.out, "patient is in %s department\n", p.Department)
	fmt.Fprintf(s.out, "patient is followed by doctor: %s\n", p.DoctorName)
	return nil
}

func (s *Session) deletePatient(ctx context.Context) error {
	id, err := s.promptIntWhere(
		"Enter patient ID: ",
		"Incorrect ID, please enter patient ID: ",
		func(id int) bool { return s.patients.Exists(ctx, id) },
	)
	if err != nil {
		return err
	}

	// Appointments booked for this patient stay on their doctors.
	if err := s.patients.DeletePatient(ctx, id); err != nil {
		return err
	}
	s.recordAudit(ctx, auditevent.ActionDeleted, auditevent.EntityPatient, id)
	fmt.Fprintln(s.out, "---------------------- Patient data deleted successfully ----------------------")
	return nil
}

var patientEditFields = map[string]patient.Field{
	"1": patient.FieldDepartment,
	"2": patient.FieldDoctorName,
	"3": patient.FieldName,
	"4": patient.FieldAge,
	"5": patient.FieldGender,
	"6": patient.FieldAddress,
	"7": patient.FieldRoomNumber,
}

func (s *Session) editPatient(ctx context.Context) error {
	id, err := s.promptIntWhere(
		"Enter patient ID: ",
		"Incorrect ID, please enter patient ID: ",
		func(id int) bool { return s.patients.Exists(ctx, id) },
	)
	if err != nil {
		return err
	}

	for {
		fmt.Fprintln(s.out, "-----------------------------------------")
		fmt.Fprintln(s.out, "| To edit patient department enter 1    |")
		fmt.Fprintln(s.out, "| To edit following doctor enter 2      |")
		fmt.Fprintln(s.out, "| To edit patient name enter 3          |")
		fmt.Fprintln(s.out, "| To edit patient age enter 4           |")
		fmt.Fprintln(s.out, "| To edit patient gender enter 5        |")
		fmt.Fprintln(s.out, "| To edit patient address enter 6       |")
		fmt.Fprintln(s.out, "| To edit patient room number enter 7   |")
		fmt.Fprintln(s.out, "| To go back enter B                    |")
		fmt.Fprintln(s.out, "-----------------------------------------")
		choice, err := s.promptUpper("Enter your choice: ")
		if err != nil {
			return err
		}
		if choice == "B" {
			return nil
		}

		field, ok := patientEditFields[choice]
		if !ok {
			fmt.Fprintln(s.out, "Please enter a correct choice")
			continue
		}

		value, err := s.prompt(fmt.Sprintf("Enter new %s: ", field))
		if err != nil {
			return err
		}
		if err := s.patients.UpdateField(ctx, id, field, value); err != nil {
			return err
		}
		s.recordAudit(ctx, auditevent.ActionUpdated, auditevent.EntityPatient, id)
		fmt.Fprintf(s.out, "---------------------- Patient %s edited successfully ----------------------\n", field)
	}
}

func (s *Session) manageDoctors(ctx context.Context) error {
	fmt.Fprintln(s.out, "-----------------------------------------")
	fmt.Fprintln(s.out, "| To add a new doctor enter 1           |")
	fmt.Fprintln(s.out, "| To display a doctor enter 2           |")
	fmt.Fprintln(s.out, "| To delete doctor data enter 3         |")
	fmt.Fprintln(s.out, "| To edit doctor data enter 4           |")
	fmt.Fprintln(s.out, "| To go back enter B                    |")
	fmt.Fprintln(s.out, "-----------------------------------------")
	choice, err := s.promptUpper("Enter your choice: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return s.addDoctor(ctx)
	case "2":
		return s.displayDoctor(ctx)
	case "3":
		return s.deleteDoctor(ctx)
	case "4":
		return s.editDoctor(ctx)
	case "B":
		return nil
	default:
		fmt.Fprintln(s.out, "Please enter a correct choice")
		return nil
	}
}

func (s *Session) addDoctor(ctx context.Context) error {
	id, err := s.promptIntWhere(
		"Enter doctor ID: ",
		"This ID is unavailable, please try another ID: ",
		func(id int) bool { return id > 0 && !s.doctors.Exists(ctx, id) },
	)
	if err != nil {
		return err
	}

	rec := doctor.Record{ID: id}
	if rec.Info.Department, err = s.prompt("Enter doctor department: "); err != nil {
		return err
	}
	if rec.Info.Name, err = s.prompt("Enter doctor name: "); err != nil {
		return err
	}
	if rec.Info.Address, err = s.prompt("Enter doctor address: "); err != nil {
		return err
	}

	if err := s.doctors.CreateDoctor(ctx, &rec); err != nil {
		fmt.Fprintln(s.out, "Could not add doctor:", err)
		return nil
	}
	s.recordAudit(ctx, auditevent.ActionCreated, auditevent.EntityDoctor, id)
	fmt.Fprintln(s.out, "---------------------- Doctor added successfully ----------------------")
	return nil
}

func (s *Session) displayDoctor(ctx context.Context) error {
	id, err := s.promptIntWhere(
		"Enter doctor ID: ",
		"Incorrect ID, please enter doctor ID: ",
		func(id int) bool { return s.doctors.Exists(ctx, id) },
	)
	if err != nil {
		return err
	}

	rec, err := s.doctors.GetDoctor(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Doctor name    :", rec.Info.Name)
	fmt.Fprintln(s.out, "Doctor address :", rec.Info.Address)
	fmt.Fprintf(s.out, "Doctor is in %s department\n", rec.Info.Department)
	return nil
}

func (s *Session) deleteDoctor(ctx context.Context) error {
	id, err := s.promptIntWhere(
		"Enter doctor ID: ",
		"Incorrect ID, please enter doctor ID: ",
		func(id int) bool { return s.doctors.Exists(ctx, id) },
	)
	if err != nil {
		return err
	}

	// The whole appointment sequence goes with the doctor.
	if err := s.doctors.DeleteDoctor(ctx, id); err != nil {
		return err
	}
	s.recordAudit(ctx, auditevent.ActionDeleted, auditevent.EntityDoctor, id)
	fmt.Fprintln(s.out, "---------------------- Doctor data deleted successfully ----------------------")
	return nil
}

var doctorEditFields = map[string]doctor.Field{
	"1": doctor.FieldDepartment,
	"2": doctor.FieldName,
	"3": doctor.FieldAddress,
}

func (s *Session) editDoctor(ctx context.Context) error {
	id, err := s.promptIntWhere(
		"Enter doctor ID: ",
		"Incorrect ID, please enter doctor ID: ",
		func(id int) bool { return s.doctors.Exists(ctx, id) },
	)
	if err != nil {
		return err
	}

	for {
		fmt.Fprintln(s.out, "-----------------------------------------")
		fmt.Fprintln(s.out, "| To edit doctor department enter 1     |")
		fmt.Fprintln(s.out, "| To edit doctor name enter 2           |")
		fmt.Fprintln(s.out, "| To edit doctor address enter 3        |")
		fmt.Fprintln(s.out, "| To go back enter B                    |")
		fmt.Fprintln(s.out, "-----------------------------------------")
		choice, err := s.promptUpper("Enter your choice: ")
		if err != nil {
			return err
		}
		if choice == "B" {
			return nil
		}

		field, ok := doctorEditFields[choice]
		if !ok {
			fmt.Fprintln(s.out, "Please enter a correct choice")
			continue
		}

		value, err := s.prompt(fmt.Sprintf("Enter new doctor %s: ", field))
		if err != nil {
			return err
		}
		if err := s.doctors.UpdateField(ctx, id, field, value); err != nil {
			return err
		}
		s.recordAudit(ctx, auditevent.ActionUpdated, auditevent.EntityDoctor, id)
		fmt.Fprintf(s.out, "---------------------- Doctor %s edited successfully ----------------------\n", field)
	}
}

func (s *Session) manageAppointments(ctx context.Context) error {
	fmt.Fprintln(s.out, "-----------------------------------------")
	fmt.Fprintln(s.out, "| To book an appointment enter 1        |")
	fmt.Fprintln(s.out, "| To edit an appointment enter 2        |")
	fmt.Fprintln(s.out, "| To cancel an appointment enter 3      |")
	fmt.Fprintln(s.out, "| To go back enter B                    |")
	fmt.Fprintln(s.out, "-----------------------------------------")
	choice, err := s.promptUpper("Enter your choice: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return s.bookAppointment(ctx)
	case "2":
		return s.editAppointment(ctx)
	case "3":
		return s.cancelAppointment(ctx)
	case "B":
		return nil
	default:
		fmt.Fprintln(s.out, "Please enter a correct choice")
		return nil
	}
}

func (s *Session) bookAppointment(ctx context.Context) error {
	doctorID, err := s.promptIntWhere(
		"Enter the ID of the doctor: ",
		"Doctor ID incorrect, please enter a correct doctor ID: ",
		func(id int) bool { return s.doctors.Exists(ctx, id) },
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "---------------------------------------------------------")
	fmt.Fprintln(s.out, "| To book for an existing patient enter 1               |")
	fmt.Fprintln(s.out, "| To book for a new patient enter 2                     |")
	fmt.Fprintln(s.out, "| To go back enter B                                    |")
	fmt.Fprintln(s.out, "---------------------------------------------------------")
	choice, err := s.promptUpper("Enter your choice: ")
	if err != nil {
		return err
	}

	var patientID int
	switch choice {
	case "1":
		patientID, err = s.promptIntWhere(
			"Enter patient ID: ",
			"Incorrect ID, please enter a correct patient ID: ",
			func(id int) bool { return s.patients.Exists(ctx, id) },
		)
		if err != nil {
			return err
		}
	case "2":
		patientID, err = s.bookNewPatient(ctx, doctorID)
		if err != nil {
			return err
		}
	case "B":
		return nil
	default:
		fmt.Fprintln(s.out, "Please enter a correct choice")
		return nil
	}

	start, err := s.promptValidStart(ctx, doctorID, "Session starts at: ")
	if err != nil {
		return err
	}
	end, err := s.prompt("Session ends at: ")
	if err != nil {
		return err
	}

	if err := s.scheduler.BookAppointment(ctx, doctorID, patientID, start, end); err != nil {
		fmt.Fprintln(s.out, "Could not book appointment:", err)
		return nil
	}
	s.recordAudit(ctx, auditevent.ActionBooked, auditevent.EntityAppointment, patientID)
	fmt.Fprintln(s.out, "/---------------------- Appointment booked successfully ----------------------/")
	return nil
}

// bookNewPatient registers a walk-in during booking. The patient inherits the
// doctor's department and name, with no room number (outpatient).
func (s *Session) bookNewPatient(ctx context.Context, doctorID int) (int, error) {
	patientID, err := s.promptIntWhere(
		"Enter patient ID: ",
		"This ID is unavailable, please try another ID: ",
		func(id int) bool { return id > 0 && !s.patients.Exists(ctx, id) },
	)
	if err != nil {
		return 0, err
	}

	rec, err := s.doctors.GetDoctor(ctx, doctorID)
	if err != nil {
		return 0, err
	}

	p := patient.Patient{
		ID:         patientID,
		Department: rec.Info.Department,
		DoctorName: rec.Info.Name,
	}
	if p.Name, err = s.prompt("Enter patient name: "); err != nil {
		return 0, err
	}
	if p.Age, err = s.prompt("Enter patient age: "); err != nil {
		return 0, err
	}
	if p.Gender, err = s.prompt("Enter patient gender: "); err != nil {
		return 0, err
	}
	if p.Address, err = s.prompt("Enter patient address: "); err != nil {
		return 0, err
	}

	if err := s.patients.CreatePatient(ctx, &p); err != nil {
		return 0, err
	}
	s.recordAudit(ctx, auditevent.ActionCreated, auditevent.EntityPatient, patientID)
	return patientID, nil
}

// promptValidStart re-prompts until the start token passes the working-hours
// and conflict checks for the given doctor.
func (s *Session) promptValidStart(ctx context.Context, doctorID int, label string) (string, error) {
	start, err := s.prompt(label)
	if err != nil {
		return "", err
	}
	for {
		verr := s.scheduler.ValidateStart(ctx, doctorID, start)
		if verr == nil {
			return start, nil
		}
		switch {
		case errors.Is(verr, scheduling.ErrInvalidTimeWindow):
			start, err = s.prompt("Appointments should be between 01:00PM and 10:00PM, please enter a time between working hours: ")
		case errors.Is(verr, scheduling.ErrConflict):
			start, err = s.prompt("This session is already booked, please enter another time for the start of the session: ")
		default:
			return "", verr
		}
		if err != nil {
			return "", err
		}
	}
}

func (s *Session) editAppointment(ctx context.Context) error {
	patientID, err := s.promptIntWhere(
		"Enter patient ID: ",
		"Incorrect ID, please enter a correct patient ID: ",
		func(id int) bool { return s.patients.Exists(ctx, id) },
	)
	if err != nil {
		return err
	}

	doctorID, _, err := s.scheduler.FindAppointmentByPatient(ctx, patientID)
	if errors.Is(err, scheduling.ErrNoAppointment) {
		fmt.Fprintln(s.out, "No appointment for this patient")
		return nil
	}
	if err != nil {
		return err
	}

	start, err := s.promptValidStart(ctx, doctorID, "Please enter the new start time: ")
	if err != nil {
		return err
	}
	end, err := s.prompt("Please enter the new end time: ")
	if err != nil {
		return err
	}

	if err := s.scheduler.EditAppointment(ctx, patientID, start, end); err != nil {
		fmt.Fprintln(s.out, "Could not edit appointment:", err)
		return nil
	}
	s.recordAudit(ctx, auditevent.ActionEdited, auditevent.EntityAppointment, patientID)
	fmt.Fprintln(s.out, "/---------------------- Appointment edited successfully ----------------------/")
	return nil
}

func (s *Session) cancelAppointment(ctx context.Context) error {
	patientID, err := s.promptIntWhere(
		"Enter patient ID: ",
		"Incorrect ID, please enter a correct patient ID: ",
		func(id int) bool { return s.patients.Exists(ctx, id) },
	)
	if err != nil {
		return err
	}

	if err := s.scheduler.CancelAppointment(ctx, patientID); err != nil {
		if errors.Is(err, scheduling.ErrNoAppointment) {
			fmt.Fprintln(s.out, "No appointment for this patient")
			return nil
		}
		return err
	}
	s.recordAudit(ctx, auditevent.ActionCancelled, auditevent.EntityAppointment, patientID)
	fmt.Fprintln(s.out, "/---------------------- Appointment cancelled successfully ----------------------/")
	return nil
}

func (s *Session) showAuditTrail(ctx context.Context) error {
	events, err := s.audit.List(ctx)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(s.out, "No admin actions recorded this session")
		return nil
	}
	fmt.Fprintln(s.out, "Admin actions this session:")
	for _, e := range events {
		fmt.Fprintf(s.out, "  %s  %s %s %d\n", e.Recorded.Format("15:04:05"), e.Action, e.Entity, e.EntityID)
	}
	return nil
}

// recordAudit never blocks an admin action; a failed append is only logged.
func (s *Session) recordAudit(ctx context.Context, action auditevent.Action, entity auditevent.Entity, entityID int) {
	if err := s.audit.Record(ctx, action, entity, entityID); err != nil {
		s.log.Error().Err(err).Msg("failed to record audit event")
	}
}
