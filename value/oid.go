package value

import (
	"errors"
	"fmt"
	"strings"
)

// ObjectIdentifier is a sequence of non-negative integer arcs identifying
// an object in the OID tree, e.g. 1.2.840.113549.
type ObjectIdentifier []uint32

// Validate checks the structural rules every OID must satisfy: at least
// two arcs, the first arc at most 2, and the second arc at most 39 when
// the first is 0 or 1.
func (o ObjectIdentifier) Validate() error {
	if len(o) < 2 {
		return errors.New("object identifier needs at least two arcs")
	}
	if o[0] > 2 {
		return fmt.Errorf("object identifier first arc %d exceeds 2", o[0])
	}
	if o[0] < 2 && o[1] > 39 {
		return fmt.Errorf("object identifier second arc %d exceeds 39 under root %d", o[1], o[0])
	}

	return nil
}

// Equal reports whether two object identifiers have identical arcs.
func (o ObjectIdentifier) Equal(other ObjectIdentifier) bool {
	if len(o) != len(other) {
		return false
	}
	for i := range o {
		if o[i] != other[i] {
			return false
		}
	}

	return true
}

func (o ObjectIdentifier) String() string {
	parts := make([]string, len(o))
	for i, arc := range o {
		parts[i] = fmt.Sprintf("%d", arc)
	}

	return strings.Join(parts, ".")
}
