package value

import (
	"iter"
	"sort"

	"github.com/arloliu/asnpack/tag"
)

// FieldMap is an ordered mapping from Tag to an Open (undecoded) value.
//
// It preserves the members of an aggregate the reader does not recognize:
// each member is decoded as an opaque span keyed by its discovered tag,
// iterated in tag order so re-encoding is deterministic regardless of the
// order fields arrived in. The zero value is an empty, ready-to-use map.
type FieldMap struct {
	fields []Open
}

// Insert adds or replaces the entry for v.Tag.
func (m *FieldMap) Insert(v Open) {
	i := sort.Search(len(m.fields), func(i int) bool {
		return m.fields[i].Tag.Compare(v.Tag) >= 0
	})
	if i < len(m.fields) && m.fields[i].Tag == v.Tag {
		m.fields[i] = v
		return
	}

	m.fields = append(m.fields, Open{})
	copy(m.fields[i+1:], m.fields[i:])
	m.fields[i] = v
}

// Get returns the entry for t, if present.
func (m *FieldMap) Get(t tag.Tag) (Open, bool) {
	i := sort.Search(len(m.fields), func(i int) bool {
		return m.fields[i].Tag.Compare(t) >= 0
	})
	if i < len(m.fields) && m.fields[i].Tag == t {
		return m.fields[i], true
	}

	return Open{}, false
}

// Len returns the number of entries.
func (m *FieldMap) Len() int {
	return len(m.fields)
}

// All iterates the entries in ascending tag order.
func (m *FieldMap) All() iter.Seq2[tag.Tag, Open] {
	return func(yield func(tag.Tag, Open) bool) {
		for _, f := range m.fields {
			if !yield(f.Tag, f) {
				return
			}
		}
	}
}

// Equal reports whether two maps hold identical entries.
func (m *FieldMap) Equal(other *FieldMap) bool {
	if len(m.fields) != len(other.fields) {
		return false
	}
	for i := range m.fields {
		if !m.fields[i].Equal(other.fields[i]) {
			return false
		}
	}

	return true
}
