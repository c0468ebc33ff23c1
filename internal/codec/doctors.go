package codec

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hms/hms/internal/domain/doctor"
)

// Doctor record grammar, one doctor per line:
//
//	DoctorID;Department;Name;Address;[PatientID;Start;End;]...\n
//
// The header commits as soon as its trailing ';' is seen; each complete
// PatientID;Start;End; triple then appends one appointment. An appointment
// missing its trailing ';' before the newline is dropped, which the encoder
// never produces.
type doctorState int

const (
	stateDoctorID doctorState = iota
	stateDepartment
	stateName
	stateAddress
	statePatientID
	stateStart
	stateEnd
)

// DecodeDoctors parses the doctors flat file into a collection keyed by
// doctor ID. A non-integer doctor-ID or patient-ID token fails the whole
// decode with a *FormatError.
//
// Before scanning, every ";;" is collapsed to ";" until none remain. The
// pass tolerates accidentally doubled separators at the cost of silently
// merging two genuinely adjacent empty fields, shifting everything after
// them. Downstream appointment-by-triple accounting depends on this exact
// collapse, so it stays as-is rather than becoming real empty-field support.
func DecodeDoctors(data []byte) (map[int]doctor.Record, error) {
	doctors := make(map[int]doctor.Record)

	text := string(data)
	for strings.Contains(text, ";;") {
		text = strings.ReplaceAll(text, ";;", ";")
	}

	var doctorID, department, name, address strings.Builder
	var patientID, start, end strings.Builder
	state := stateDoctorID
	currentID := 0

	resetHeader := func() {
		doctorID.Reset()
		department.Reset()
		name.Reset()
		address.Reset()
	}

	for _, c := range text {
		switch state {
		case stateDoctorID:
			if c == ';' {
				state = stateDepartment
			} else {
				doctorID.WriteRune(c)
			}
		case stateDepartment:
			if c == ';' {
				state = stateName
			} else {
				department.WriteRune(c)
			}
		case stateName:
			if c == ';' {
				state = stateAddress
			} else {
				name.WriteRune(c)
			}
		case stateAddress:
			if c == ';' {
				idToken := doctorID.String()
				id, err := strconv.Atoi(idToken)
				if err != nil {
					return nil, &FormatError{Collection: "doctors", Field: "doctor id", Token: idToken, Err: err}
				}
				doctors[id] = doctor.Record{
					ID: id,
					Info: doctor.DoctorInfo{
						Department: department.String(),
						Name:       name.String(),
						Address:    address.String(),
					},
				}
				currentID = id
				state = statePatientID
			} else {
				address.WriteRune(c)
			}
		case statePatientID:
			switch c {
			case ';':
				state = stateStart
			case '\n':
				// End of line. Only the header accumulators reset here;
				// in-flight appointment accumulators are deliberately left
				// alone, mirroring the original automaton. Well-formed
				// input never reaches this branch with a non-empty buffer.
				state = stateDoctorID
				resetHeader()
			default:
				patientID.WriteRune(c)
			}
		case stateStart:
			if c == ';' {
				state = stateEnd
			} else {
				start.WriteRune(c)
			}
		case stateEnd:
			switch c {
			case ';':
				idToken := patientID.String()
				pid, err := strconv.Atoi(idToken)
				if err != nil {
					return nil, &FormatError{Collection: "doctors", Field: "patient id", Token: idToken, Err: err}
				}
				rec := doctors[currentID]
				rec.Appointments = append(rec.Appointments, doctor.Appointment{
					PatientID: pid,
					Start:     start.String(),
					End:       end.String(),
				})
				doctors[currentID] = rec
				patientID.Reset()
				start.Reset()
				end.Reset()
				state = statePatientID
			case '\n':
				// A triple without its trailing ';' dies here un-appended.
				state = stateDoctorID
				resetHeader()
			default:
				end.WriteRune(c)
			}
		}
	}

	return doctors, nil
}

// EncodeDoctors serializes the collection, one doctor per line, in
// ascending-ID order. The map key is the authoritative ID token. Every
// appointment triple gets a trailing ';' so the decoder's append transition
// fires before end of line.
func EncodeDoctors(doctors map[int]doctor.Record) []byte {
	ids := make([]int, 0, len(doctors))
	for id := range doctors {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var buf bytes.Buffer
	for _, id := range ids {
		rec := doctors[id]
		fmt.Fprintf(&buf, "%d;", id)
		fmt.Fprintf(&buf, "%s;%s;%s;", rec.Info.Department, rec.Info.Name, rec.Info.Address)
		for _, a := range rec.Appointments {
			fmt.Fprintf(&buf, "%d;%s;%s;", a.PatientID, a.Start, a.End)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
