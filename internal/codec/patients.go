package codec

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hms/hms/internal/domain/patient"
)

// Patient record grammar: exactly eight fields separated by ';', record
// terminated by '\n':
//
//	PatientID;Department;DoctorName;Name;Age;Gender;Address;RoomNumber\n
//
// The scanner walks one state per field. Every state accumulates characters
// until its terminator: ';' advances to the next field, and '\n' in the
// final field commits the record. A ';' inside the room-number field is
// therefore accumulated, and a '\n' inside any earlier field is too.
type patientField int

const (
	fieldPatientID patientField = iota
	fieldDepartment
	fieldDoctorName
	fieldName
	fieldAge
	fieldGender
	fieldAddress
	fieldRoomNumber
)

// DecodePatients parses the patients flat file into a collection keyed by
// patient ID. Input without a trailing newline drops its final record, and a
// record whose ID token is not an integer fails the whole decode with a
// *FormatError.
func DecodePatients(data []byte) (map[int]patient.Patient, error) {
	patients := make(map[int]patient.Patient)

	var fields [fieldRoomNumber + 1]strings.Builder
	state := fieldPatientID

	for _, c := range string(data) {
		switch {
		case state < fieldRoomNumber && c == ';':
			state++
		case state == fieldRoomNumber && c == '\n':
			idToken := fields[fieldPatientID].String()
			id, err := strconv.Atoi(idToken)
			if err != nil {
				return nil, &FormatError{Collection: "patients", Field: "patient id", Token: idToken, Err: err}
			}
			patients[id] = patient.Patient{
				ID:         id,
				Department: fields[fieldDepartment].String(),
				DoctorName: fields[fieldDoctorName].String(),
				Name:       fields[fieldName].String(),
				Age:        fields[fieldAge].String(),
				Gender:     fields[fieldGender].String(),
				Address:    fields[fieldAddress].String(),
				RoomNumber: fields[fieldRoomNumber].String(),
			}
			for i := range fields {
				fields[i].Reset()
			}
			state = fieldPatientID
		default:
			fields[state].WriteRune(c)
		}
	}

	return patients, nil
}

// EncodePatients serializes the collection, one record per line, in
// ascending-ID order. The map key is the authoritative ID token. Values
// containing ';' or '\n' round-trip incorrectly; see the package comment.
func EncodePatients(patients map[int]patient.Patient) []byte {
	ids := make([]int, 0, len(patients))
	for id := range patients {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var buf bytes.Buffer
	for _, id := range ids {
		p := patients[id]
		fmt.Fprintf(&buf, "%d;%s;%s;%s;%s;%s;%s;%s\n",
			id, p.Department, p.DoctorName, p.Name, p.Age, p.Gender, p.Address, p.RoomNumber)
	}
	return buf.Bytes()
}
