package ihex

import (
	"fmt"
)

// ErrorKind identifies the failure class of an Error. The values mirror the
// decode pipeline: record grammar and checksum problems surface from parsing,
// AddressOutOfRange and DataOverlap from materialization, IOFailure from the
// file entry point.
type ErrorKind uint

const (
	// IncorrectChecksum means a record's fields do not sum to zero modulo
	// 256 together with its checksum byte.
	IncorrectChecksum ErrorKind = iota + 1

	// NoEOF means the input was exhausted without an end-of-file record.
	NoEOF

	// SyntaxError means a record line is not well-formed hex text: a
	// missing ':' lead-in or a character outside 0-9A-Fa-f.
	SyntaxError

	// WrongRecordLength means the byte count of a record contradicts its
	// length field or the payload size its type demands.
	WrongRecordLength

	// NoInput means the input contained no record lines at all.
	NoInput

	// UnknownRecordType means a record declared a type code outside the
	// six defined by the format.
	UnknownRecordType

	// PrematureEOF means the input stopped in the middle of the final
	// record. Inputs that merely lack a terminating record report NoEOF.
	PrematureEOF

	// AddressOutOfRange means a data record resolved to an address beyond
	// the destination buffer during materialization.
	AddressOutOfRange

	// IOFailure wraps an operating system error from opening, sizing or
	// mapping an input file.
	IOFailure

	// InvalidArgument means an API parameter was outside its contract,
	// such as a word width other than 1, 2, 4 or 8.
	InvalidArgument

	// DataOverlap means two data records claim the same resolved address,
	// so a contiguous segment view cannot be built.
	DataOverlap
)

// String returns a short lower-case label for the kind.
func (k ErrorKind) String() string {
	switch k {
	case IncorrectChecksum:
		return "incorrect checksum"
	case NoEOF:
		return "no end-of-file record"
	case SyntaxError:
		return "syntax error"
	case WrongRecordLength:
		return "wrong record length"
	case NoInput:
		return "no input"
	case UnknownRecordType:
		return "unknown record type"
	case PrematureEOF:
		return "premature end of input"
	case AddressOutOfRange:
		return "address out of range"
	case IOFailure:
		return "input failure"
	case InvalidArgument:
		return "invalid argument"
	case DataOverlap:
		return "data overlap"
	}
	return "unknown error"
}

// Error describes a single decode or materialization failure. Every fallible
// operation in this package returns *Error behind the error interface, so
// callers can recover the kind, the input line and any wrapped cause.
type Error struct {
	Kind ErrorKind
	Line uint // 1-based input line, 0 when the failure is not line-bound

	msg       string
	err       error // underlying cause, set for IOFailure
	truncated bool  // record line ended before its declared length
}

func newError(kind ErrorKind, line uint, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: line, msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind ErrorKind, err error, msg string) *Error {
	return &Error{Kind: kind, msg: msg, err: err}
}

// at stamps the input line on an error built by a lower layer.
func (e *Error) at(line uint) *Error {
	e.Line = line
	return e
}

func (e *Error) Error() string {
	s := e.Kind.String() + ": " + e.msg
	if e.err != nil {
		s += ": " + e.err.Error()
	}
	if e.Line > 0 {
		s += fmt.Sprintf(" at line %d", e.Line)
	}
	return s
}

// Unwrap returns the underlying cause, if any, so that errors.Is can see
// through IOFailure to the operating system error.
func (e *Error) Unwrap() error {
	return e.err
}
