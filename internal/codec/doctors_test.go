package codec

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hms/hms/internal/domain/doctor"
)

// =========== Sample Files ===========

const sampleDoctors = "7;Cardiology;Dr. A;123 St;5;09:00;09:30;9;10:00;10:30;\n" +
	"3;Neurology;Dr. B;456 Ave;\n"

func TestDecodeDoctors(t *testing.T) {
	got, err := DecodeDoctors([]byte(sampleDoctors))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 doctors, got %d", len(got))
	}

	d7 := got[7]
	want := doctor.DoctorInfo{Department: "Cardiology", Name: "Dr. A", Address: "123 St"}
	if d7.Info != want {
		t.Errorf("unexpected header: %+v", d7.Info)
	}
	wantAppts := []doctor.Appointment{
		{PatientID: 5, Start: "09:00", End: "09:30"},
		{PatientID: 9, Start: "10:00", End: "10:30"},
	}
	if !reflect.DeepEqual(d7.Appointments, wantAppts) {
		t.Errorf("unexpected appointments: %+v", d7.Appointments)
	}

	d3 := got[3]
	if d3.Info.Name != "Dr. B" {
		t.Errorf("unexpected header: %+v", d3.Info)
	}
	if len(d3.Appointments) != 0 {
		t.Errorf("expected no appointments, got %+v", d3.Appointments)
	}
}

func TestDecodeDoctors_Empty(t *testing.T) {
	got, err := DecodeDoctors(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty collection, got %d records", len(got))
	}
}

func TestDecodeDoctors_BadDoctorIDToken(t *testing.T) {
	_, err := DecodeDoctors([]byte("seven;Cardiology;Dr. A;123 St;\n"))

	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FormatError, got %v", err)
	}
	if fe.Collection != "doctors" || fe.Token != "seven" {
		t.Errorf("unexpected error detail: %+v", fe)
	}
}

func TestDecodeDoctors_BadPatientIDToken(t *testing.T) {
	_, err := DecodeDoctors([]byte("7;Cardiology;Dr. A;123 St;five;09:00;09:30;\n"))

	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FormatError, got %v", err)
	}
	if fe.Field != "patient id" || fe.Token != "five" {
		t.Errorf("unexpected error detail: %+v", fe)
	}
}

func TestDecodeDoctors_DoubledSeparatorCollapse(t *testing.T) {
	// ";;" collapses to ";" before scanning, so a doubled separator after
	// the address does not produce a phantom appointment triple.
	got, err := DecodeDoctors([]byte("7;Cardiology;Dr. A;123 St;;5;09:00;09:30;\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got[7].Appointments) != 1 {
		t.Fatalf("expected 1 appointment, got %+v", got[7].Appointments)
	}
}

func TestDecodeDoctors_CollapseMergesEmptyFields(t *testing.T) {
	// The flip side of the collapse: a genuinely empty department eats one
	// separator, so every later field shifts left. Here the first
	// appointment triple's patient id ends up as the address. Lossy, kept.
	got, err := DecodeDoctors([]byte("7;;Dr. A;123 St;5;09:00;09:30;\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := got[7]
	if d.Info.Department != "Dr. A" || d.Info.Name != "123 St" || d.Info.Address != "5" {
		t.Errorf("expected shifted header, got %+v", d.Info)
	}
	if len(d.Appointments) != 0 {
		t.Errorf("expected shifted triples to be lost, got %+v", d.Appointments)
	}
}

func TestDecodeDoctors_CollapseCanLoseWholeRecord(t *testing.T) {
	// With nothing after the header, the shifted line runs out before the
	// address-terminating ';' and the record never commits.
	got, err := DecodeDoctors([]byte("7;;Dr. A;123 St;\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no committed record, got %+v", got)
	}
}

func TestDecodeDoctors_TripleWithoutTrailingSeparatorIsDropped(t *testing.T) {
	// The append transition fires on ';', so a final triple that runs
	// straight into the newline never lands.
	got, err := DecodeDoctors([]byte("7;Cardiology;Dr. A;123 St;5;09:00;09:30\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got[7].Appointments) != 0 {
		t.Errorf("expected dropped triple, got %+v", got[7].Appointments)
	}
}

func TestDecodeDoctors_HeaderCommitsWithoutNewline(t *testing.T) {
	// The header commits at its trailing ';', not at end of line.
	got, err := DecodeDoctors([]byte("7;Cardiology;Dr. A;123 St;"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[7].Info.Name != "Dr. A" {
		t.Errorf("expected committed header, got %+v", got[7])
	}
}

func TestEncodeDoctors_RoundTrip(t *testing.T) {
	original := map[int]doctor.Record{
		7: {
			ID:   7,
			Info: doctor.DoctorInfo{Department: "Cardiology", Name: "Dr. A", Address: "123 St"},
			Appointments: []doctor.Appointment{
				{PatientID: 5, Start: "09:00", End: "09:30"},
				{PatientID: 9, Start: "10:00", End: "10:30"},
			},
		},
		3: {
			ID:   3,
			Info: doctor.DoctorInfo{Department: "Neurology", Name: "Dr. B", Address: "456 Ave"},
		},
	}

	decoded, err := DecodeDoctors(EncodeDoctors(original))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Errorf("round trip mismatch:\noriginal: %+v\ndecoded:  %+v", original, decoded)
	}
}

func TestEncodeDoctors_ReproducesSampleLine(t *testing.T) {
	line := "7;Cardiology;Dr. A;123 St;5;09:00;09:30;9;10:00;10:30;\n"

	decoded, err := DecodeDoctors([]byte(line))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := string(EncodeDoctors(decoded)); got != line {
		t.Errorf("re-encoding mismatch:\nwant %q\ngot  %q", line, got)
	}
}
