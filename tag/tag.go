// Package tag provides the ASN.1 tag model: a (class, number) pair that
// identifies an encoded value's type independently of its representation.
//
// Tags are totally ordered by (class, number), which makes them usable as
// keys for tag-ordered containers such as the unknown-field preservation
// map in the value package. Tag values are immutable once constructed.
package tag

import "fmt"

// Class identifies the tagging class of an ASN.1 tag.
type Class uint8

const (
	ClassUniversal       Class = 0 // ClassUniversal tags are defined by X.680 for the built-in types.
	ClassApplication     Class = 1 // ClassApplication tags are scoped to one application.
	ClassContextSpecific Class = 2 // ClassContextSpecific tags are scoped to the enclosing type.
	ClassPrivate         Class = 3 // ClassPrivate tags are scoped to one enterprise.
)

func (c Class) String() string {
	switch c {
	case ClassUniversal:
		return "Universal"
	case ClassApplication:
		return "Application"
	case ClassContextSpecific:
		return "ContextSpecific"
	case ClassPrivate:
		return "Private"
	default:
		return "Unknown"
	}
}

// Tag identifies an ASN.1 value's class and number.
//
// The zero value is Universal tag number 0, which no built-in type uses;
// it serves as the "no tag" sentinel where one is needed.
type Tag struct {
	Class  Class
	Number uint32
}

// New creates a tag with the given class and number.
func New(class Class, number uint32) Tag {
	return Tag{Class: class, Number: number}
}

// Context creates a context-specific tag with the given number.
//
// Context-specific tags are what implicit and explicit tagging almost
// always use, so this shorthand keeps generated field codecs readable.
func Context(number uint32) Tag {
	return Tag{Class: ClassContextSpecific, Number: number}
}

// Application creates an application-class tag with the given number.
func Application(number uint32) Tag {
	return Tag{Class: ClassApplication, Number: number}
}

// Private creates a private-class tag with the given number.
func Private(number uint32) Tag {
	return Tag{Class: ClassPrivate, Number: number}
}

// Universal tags assigned by X.680 for the built-in types supported by
// this framework.
var (
	Boolean          = Tag{ClassUniversal, 1}
	Integer          = Tag{ClassUniversal, 2}
	BitString        = Tag{ClassUniversal, 3}
	OctetString      = Tag{ClassUniversal, 4}
	Null             = Tag{ClassUniversal, 5}
	ObjectIdentifier = Tag{ClassUniversal, 6}
	Enumerated       = Tag{ClassUniversal, 10}
	UTF8String       = Tag{ClassUniversal, 12}
	Sequence         = Tag{ClassUniversal, 16}
	Set              = Tag{ClassUniversal, 17}
	UTCTime          = Tag{ClassUniversal, 23}
	GeneralizedTime  = Tag{ClassUniversal, 24}
)

// Compare returns -1, 0 or 1 according to the total order over tags,
// which is lexicographic on (class, number).
func (t Tag) Compare(other Tag) int {
	switch {
	case t.Class < other.Class:
		return -1
	case t.Class > other.Class:
		return 1
	case t.Number < other.Number:
		return -1
	case t.Number > other.Number:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether t is the zero "no tag" sentinel.
func (t Tag) IsZero() bool {
	return t == Tag{}
}

func (t Tag) String() string {
	return fmt.Sprintf("%s(%d)", t.Class, t.Number)
}
