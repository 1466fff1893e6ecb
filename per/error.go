package per

import "fmt"

// ErrorKind classifies a packed-format codec failure.
type ErrorKind uint8

const (
	// KindEndOfInput means a read passed the end of the input span.
	KindEndOfInput ErrorKind = iota + 1
	// KindMalformedLength means a length determinant violated its form.
	KindMalformedLength
	// KindOutOfRange means a value fell outside its declared constraint.
	KindOutOfRange
	// KindStructure means the input violated a structural rule of the
	// format, such as invalid UTF-8 or a malformed object identifier.
	KindStructure
	// KindCustom carries a message from format-agnostic blanket code.
	KindCustom
)

func (k ErrorKind) String() string {
	switch k {
	case KindEndOfInput:
		return "end of input"
	case KindMalformedLength:
		return "malformed length determinant"
	case KindOutOfRange:
		return "value out of range"
	case KindStructure:
		return "structural violation"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Error is the packed format's error representation. Every failure in
// this package is an *Error; callers classify with errors.As and Kind.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("per: %s: %s", e.Kind, e.Msg)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
