package config

import "fmt"

// Error reports a malformed balance value. A round never starts with one:
// a corrupted balance value is rejected instead of silently defaulted.
type Error struct {
	Field  string // Dotted path into the YAML document
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
