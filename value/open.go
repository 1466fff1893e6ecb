package value

import "github.com/arloliu/asnpack/tag"

// Open is a raw, undecoded value span: the tag discovered on the wire
// plus the encoded contents exactly as read. It is how a reader retains
// values whose type it does not know, and re-encodes them unchanged.
type Open struct {
	Tag      tag.Tag
	Contents []byte
}

// Equal reports whether two open values carry the same tag and contents.
func (o Open) Equal(other Open) bool {
	if o.Tag != other.Tag || len(o.Contents) != len(other.Contents) {
		return false
	}
	for i := range o.Contents {
		if o.Contents[i] != other.Contents[i] {
			return false
		}
	}

	return true
}
