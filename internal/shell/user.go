package shell

import (
	"context"
	"fmt"
)

// userMode is the read-only branch. No password, no saves.
func (s *Session) userMode(ctx context.Context) error {
	fmt.Fprintln(s.out, "*****************************************")
	fmt.Fprintln(s.out, "|         Welcome to user mode          |")
	fmt.Fprintln(s.out, "*****************************************")

	for {
		fmt.Fprintln(s.out, "-------------------------------------------------")
		fmt.Fprintln(s.out, "| To view hospital departments enter 1          |")
		fmt.Fprintln(s.out, "| To view hospital doctors enter 2              |")
		fmt.Fprintln(s.out, "| To view patient residents enter 3             |")
		fmt.Fprintln(s.out, "| To view a patient's details enter 4           |")
		fmt.Fprintln(s.out, "| To view a doctor's appointments enter 5       |")
		fmt.Fprintln(s.out, "| To go back enter B                            |")
		fmt.Fprintln(s.out, "-------------------------------------------------")
		choice, err := s.promptUpper("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = s.viewDepartments(ctx)
		case "2":
			err = s.viewDoctors(ctx)
		case "3":
			err = s.viewResidents(ctx)
		case "4":
			err = s.viewPatientDetails(ctx)
		case "5":
			err = s.viewDoctorAppointments(ctx)
		case "B":
			return nil
		default:
			fmt.Fprintln(s.out, "Please enter a correct choice")
			continue
		}
		if err != nil {
			return err
		}
	}
}

// viewDepartments lists one line per doctor, duplicates included; it is a
// roster by doctor, not a distinct set of departments.
func (s *Session) viewDepartments(ctx context.Context) error {
	records, err := s.doctors.ListDoctors(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Hospital departments:")
	for _, rec := range records {
		fmt.Fprintln(s.out, " ", rec.Info.Department)
	}
	return nil
}

func (s *Session) viewDoctors(ctx context.Context) error {
	records, err := s.doctors.ListDoctors(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Hospital doctors:")
	for _, rec := range records {
		fmt.Fprintf(s.out, "  %s in %s department, from %s\n", rec.Info.Name, rec.Info.Department, rec.Info.Address)
	}
	return nil
}

func (s *Session) viewResidents(ctx context.Context) error {
	patients, err := s.patients.ListPatients(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Patient residents:")
	for _, p := range patients {
		fmt.Fprintf(s.out, "  %s in %s department, room %s\n", p.Name, p.Department, p.RoomNumber)
	}
	return nil
}

func (s *Session) viewPatientDetails(ctx context.Context) error {
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

func (s *Session) viewDoctorAppointments(ctx context.Context) error {
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
	if len(rec.Appointments) == 0 {
		fmt.Fprintf(s.out, "Doctor %s has no appointments\n", rec.Info.Name)
		return nil
	}
	fmt.Fprintf(s.out, "Appointments for doctor %s:\n", rec.Info.Name)
	for _, a := range rec.Appointments {
		fmt.Fprintf(s.out, "  patient %d from %s to %s\n", a.PatientID, a.Start, a.End)
	}
	return nil
}
