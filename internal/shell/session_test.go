package shell

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/storage"
)

// newTestSession wires a session against a throwaway directory. The script is
// the full stdin of the run, one answer per line.
func newTestSession(t *testing.T, script string) (*Session, *bytes.Buffer, *storage.Store) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		PatientsFile:  filepath.Join(dir, "Patients_DataBase.csv"),
		DoctorsFile:   filepath.Join(dir, "Doctors_DataBase.csv"),
		AdminPassword: "1234",
		PasswordTries: 3,
	}
	store := storage.NewStore(cfg.PatientsFile, cfg.DoctorsFile, zerolog.Nop())
	out := &bytes.Buffer{}
	return New(cfg, store, zerolog.Nop(), strings.NewReader(script), out), out, store
}

func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestRun_AdminAddPatientPersists(t *testing.T) {
	sess, out, store := newTestSession(t, script(
		"1",    // admin mode
		"1234", // password
		"1",    // manage patients
		"1",    // add
		"10",   // patient ID
		"Cardiology",
		"Dr. House",
		"John Doe",
		"42",
		"M",
		"123 Main St",
		"14",
		"4", // audit trail
		"E", // back out of admin
	))

	if err := sess.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	patients, err := store.LoadPatients()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, ok := patients[10]
	if !ok {
		t.Fatalf("patient 10 not persisted, got %+v", patients)
	}
	if p.Name != "John Doe" || p.Department != "Cardiology" || p.RoomNumber != "14" {
		t.Errorf("persisted patient mismatch: %+v", p)
	}
	if !strings.Contains(out.String(), "Patient added successfully") {
		t.Errorf("missing success banner in output")
	}
	if !strings.Contains(out.String(), "created patient 10") {
		t.Errorf("audit trail missing created event:\n%s", out.String())
	}
}

func TestRun_PasswordGateClosesSession(t *testing.T) {
	sess, out, _ := newTestSession(t, script(
		"1",
		"wrong",
		"still wrong",
		"nope",
	))

	if err := sess.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Incorrect password, no more tries") {
		t.Errorf("expected lockout message, got:\n%s", out.String())
	}
	if !sess.closed {
		t.Errorf("session should be closed after exhausted tries")
	}
}

func TestRun_PasswordRetryWithinBudget(t *testing.T) {
	sess, out, _ := newTestSession(t, script(
		"1",
		"wrong",
		"1234", // second try succeeds
		"E",
	))

	if err := sess.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Welcome to admin mode") {
		t.Errorf("expected admin banner, got:\n%s", out.String())
	}
	if sess.closed {
		t.Errorf("session should stay open after a successful retry")
	}
}

func TestRun_UserModeListsDoctors(t *testing.T) {
	sess, out, store := newTestSession(t, script(
		"2", // user mode
		"2", // view doctors
		"B",
	))
	if err := store.SaveDoctors(map[int]doctor.Record{
		7: {ID: 7, Info: doctor.DoctorInfo{Department: "Cardiology", Name: "Dr. House", Address: "221B Baker St"}},
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := sess.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Dr. House in Cardiology department, from 221B Baker St") {
		t.Errorf("doctor listing missing, got:\n%s", out.String())
	}
}

func TestRun_BookingRepromptsOnRejectedStart(t *testing.T) {
	sess, out, store := newTestSession(t, script(
		"1",     // admin
		"1234",  // password
		"3",     // appointments
		"1",     // book
		"7",     // doctor
		"1",     // existing patient
		"5",     // patient ID
		"11:30", // blocked working-hours prefix
		"14:30", // inside existing 14:00-15:00 booking
		"15:00", // end-exclusive, accepted
		"16:00", // session end
		"E",
	))
	if err := store.SaveDoctors(map[int]doctor.Record{
		7: {
			ID:   7,
			Info: doctor.DoctorInfo{Department: "Cardiology", Name: "Dr. House", Address: "221B Baker St"},
			Appointments: []doctor.Appointment{
				{PatientID: 2, Start: "14:00", End: "15:00"},
			},
		},
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := store.SavePatients(map[int]patient.Patient{
		5: {ID: 5, Name: "John Doe"},
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := sess.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), "please enter a time between working hours") {
		t.Errorf("expected working-hours re-prompt, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "This session is already booked") {
		t.Errorf("expected conflict re-prompt, got:\n%s", out.String())
	}

	doctors, err := store.LoadDoctors()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	appts := doctors[7].Appointments
	if len(appts) != 2 {
		t.Fatalf("expected 2 appointments, got %+v", appts)
	}
	want := doctor.Appointment{PatientID: 5, Start: "15:00", End: "16:00"}
	if appts[1] != want {
		t.Errorf("booked appointment = %+v, want %+v", appts[1], want)
	}
}

func TestRun_CancelAppointmentForPatientWithoutOne(t *testing.T) {
	sess, out, store := newTestSession(t, script(
		"1",
		"1234",
		"3", // appointments
		"3", // cancel
		"5", // patient with no booking
		"E",
	))
	if err := store.SavePatients(map[int]patient.Patient{
		5: {ID: 5, Name: "John Doe"},
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := sess.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No appointment for this patient") {
		t.Errorf("expected no-appointment message, got:\n%s", out.String())
	}
}

func TestRun_AdminEditsAreVisibleAfterReload(t *testing.T) {
	// First session edits; the mode loop then reloads, and user mode must see
	// the edited value.
	sess, out, store := newTestSession(t, script(
		"1",          // admin
		"1234",       //
		"1",          // patients
		"4",          // edit
		"5",          // patient ID
		"3",          // name field
		"Jane Roe",   //
		"B",          // leave field menu
		"E",          // leave admin
		"2",          // user mode, fresh reload behind the scenes
		"4",          // patient details
		"5",          //
		"B",          //
	))
	if err := store.SavePatients(map[int]patient.Patient{
		5: {ID: 5, Name: "John Doe", Department: "ER"},
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := sess.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "patient name        : Jane Roe") {
		t.Errorf("expected edited name in user view, got:\n%s", out.String())
	}
}

func TestRun_InvalidIDReprompts(t *testing.T) {
	sess, out, store := newTestSession(t, script(
		"2",
		"4",          // patient details
		"not-an-int", // parse retry
		"99",         // unknown ID retry
		"5",
		"B",
	))
	if err := store.SavePatients(map[int]patient.Patient{
		5: {ID: 5, Name: "John Doe"},
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := sess.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "The ID should be an integer number") {
		t.Errorf("expected integer re-prompt, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "patient name        : John Doe") {
		t.Errorf("expected patient details after retries, got:\n%s", out.String())
	}
}
