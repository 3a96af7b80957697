package event

import (
	"errors"
	"fmt"
)

// ErrorKind classifies decode failures.
type ErrorKind int

const (
	// UnknownType means the type name is not in the type table.
	UnknownType ErrorKind = iota + 1
	// MalformedField means a required key is missing or has the wrong JSON type.
	MalformedField
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownType:
		return "unknown type"
	case MalformedField:
		return "malformed field"
	}
	return "unknown error"
}

// Sentinels for errors.Is.
var (
	ErrUnknownType    = errors.New("event: unknown type")
	ErrMalformedField = errors.New("event: malformed field")
)

// DecodeError is returned by Decode, DecodeMessage and DecodeLog.
type DecodeError struct {
	Kind  ErrorKind
	Type  string // wire type name, if known
	Field string // offending key for MalformedField
	Err   error  // underlying cause, may be nil
}

func (e *DecodeError) Error() string {
	var msg string
	switch e.Kind {
	case UnknownType:
		msg = fmt.Sprintf("decode event: unknown type %q", e.Type)
	case MalformedField:
		subject := "event"
		if e.Type != "" {
			subject = e.Type
		}
		if e.Field == "" {
			msg = fmt.Sprintf("decode %s: malformed message", subject)
		} else {
			msg = fmt.Sprintf("decode %s: malformed field %q", subject, e.Field)
		}
	default:
		msg = "decode event: " + e.Kind.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the sentinel for the error's kind.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrUnknownType:
		return e.Kind == UnknownType
	case ErrMalformedField:
		return e.Kind == MalformedField
	}
	return false
}

func (e *DecodeError) Unwrap() error { return e.Err }

func unknownType(name string) *DecodeError {
	return &DecodeError{Kind: UnknownType, Type: name}
}

func malformed(typ, field string, err error) *DecodeError {
	return &DecodeError{Kind: MalformedField, Type: typ, Field: field, Err: err}
}
