package wire

import "fmt"

// DecodeError reports a malformed snapshot or trace frame. The offending
// input must be dropped; nothing has been applied.
type DecodeError struct {
	Field  string // Field being decoded, empty for the frame as a whole
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	msg := "decode"
	if e.Field != "" {
		msg += " " + e.Field
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func fieldError(field, format string, args ...any) *DecodeError {
	return &DecodeError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
