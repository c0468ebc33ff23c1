package doctor

// DoctorInfo is the identity portion of a doctor's record (the line header
// in the doctors flat file), kept structurally separate from the appointment
// entries. The kind of an entry is never inferred from whether a field
// parses as an integer.
type DoctorInfo struct {
	Department string `json:"department"`
	Name       string `json:"name"`
	Address    string `json:"address"`
}

// Appointment is a booked session on a doctor's calendar. PatientID is an
// unvalidated reference: the patient record it names may have been deleted,
// and a dangling reference is expected, surfacing only on explicit lookup.
// Start and End are lexicographically comparable time tokens ("HH:MM").
type Appointment struct {
	PatientID int    `json:"patient_id"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

// Record is one doctor with their appointment sequence. Appointments are
// owned by the record and kept in insertion order; order only matters for
// lookup tie-breaking.
type Record struct {
	ID           int           `json:"id"`
	Info         DoctorInfo    `json:"info"`
	Appointments []Appointment `json:"appointments,omitempty"`
}

// Field identifies a single editable doctor attribute.
type Field string

const (
	FieldDepartment Field = "department"
	FieldName       Field = "name"
	FieldAddress    Field = "address"
)
