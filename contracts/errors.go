package contracts

import "fmt"

// ErrorKind classifies conversion rejections. All of them are recovered
// locally and surfaced to the user as a transient notice.
type ErrorKind int

const (
	// TypeMismatch: the uploaded file's declared type is not the active
	// preset's expected input type.
	TypeMismatch ErrorKind = iota
	// UnsupportedConversion: the preset needs processing beyond an
	// in-process bitmap re-encode.
	UnsupportedConversion
	// EnvironmentUnavailable: the decode/encode machinery itself failed.
	EnvironmentUnavailable
	// BadImage: the declared type matched but the bytes did not decode.
	BadImage
)

func (k ErrorKind) String() string {
	switch k {
	case TypeMismatch:
		return "type_mismatch"
	case UnsupportedConversion:
		return "unsupported_conversion"
	case EnvironmentUnavailable:
		return "environment_unavailable"
	case BadImage:
		return "bad_image"
	}
	return "unknown"
}

// ConvertError is a user-facing rejection with a classified kind.
type ConvertError struct {
	Kind    ErrorKind
	Message string
}

func (e *ConvertError) Error() string {
	return e.Message
}

// NewConvertError builds a ConvertError with a formatted message.
func NewConvertError(kind ErrorKind, format string, args ...any) *ConvertError {
	return &ConvertError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
