// Package codec encodes and decodes the two semicolon-delimited flat files
// holding the patient and doctor collections. Decoding is a single
// left-to-right scan with an explicit per-field state machine. The format
// supports no quoting or escaping: a ';' or '\n' inside a field value shifts
// every field after it, and the decoders will not notice. That is a property
// of the format, not a defect of this package.
package codec

import "fmt"

// FormatError reports a malformed record encountered during decode. The
// scanners accumulate field bytes permissively, so the only failure point is
// the integer parse of an ID token.
type FormatError struct {
	Collection string // "patients" or "doctors"
	Field      string // name of the token that failed to parse
	Token      string
	Err        error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("codec: %s: bad %s token %q: %v", e.Collection, e.Field, e.Token, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
