package sfv

import (
	"bytes"
	"encoding/base64"
	"io"

	"braces.dev/errtrace"
)

// ByteSequence represents a Byte Sequence bare item.
// It is rendered as base64 between colons.
type ByteSequence []byte

func (ByteSequence) Kind() Kind { return KindByteSequence }

func (ByteSequence) bareItem() {}

// Bytes returns the underlying bytes.
func (bs ByteSequence) Bytes() []byte { return bs }

// Validate always returns nil, any payload is allowed.
func (ByteSequence) Validate() error { return nil }

// IsValid always returns true.
func (ByteSequence) IsValid() bool { return true }

func (bs ByteSequence) appendTo(b []byte) []byte {
	b = append(b, ':')
	b = base64.StdEncoding.AppendEncode(b, bs)
	return append(b, ':')
}

// RenderTo writes ":base64:" to w.
func (bs ByteSequence) RenderTo(w io.Writer) (int, error) {
	return errtrace.Wrap2(w.Write(bs.appendTo(make([]byte, 0, base64.StdEncoding.EncodedLen(len(bs))+2))))
}

// Render returns ":base64:".
func (bs ByteSequence) Render() string { return render(bs) }

func (bs ByteSequence) String() string { return bs.Render() }

// Clone returns a copy of the byte sequence.
func (bs ByteSequence) Clone() BareItem { return ByteSequence(bytes.Clone(bs)) }

// Equal compares the payload with another [ByteSequence] or *[ByteSequence].
func (bs ByteSequence) Equal(val any) bool {
	switch v := val.(type) {
	case ByteSequence:
		return bytes.Equal(bs, v)
	case *ByteSequence:
		return v != nil && bytes.Equal(bs, *v)
	default:
		return false
	}
}
