package patient

// Patient maps to one record of the patients flat file.
//
// Age is stored and displayed verbatim, never parsed. DoctorName is free
// text, not a reference into the doctor collection. RoomNumber may be empty
// for outpatients.
type Patient struct {
	ID         int    `json:"id"`
	Department string `json:"department"`
	DoctorName string `json:"doctor_name"`
	Name       string `json:"name"`
	Age        string `json:"age"`
	Gender     string `json:"gender"`
	Address    string `json:"address"`
	RoomNumber string `json:"room_number,omitempty"`
}

// Field identifies a single editable patient attribute.
type Field string

const (
	FieldDepartment Field = "department"
	FieldDoctorName Field = "doctor_name"
	FieldName       Field = "name"
	FieldAge        Field = "age"
	FieldGender     Field = "gender"
	FieldAddress    Field = "address"
	FieldRoomNumber Field = "room_number"
)
