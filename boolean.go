package sfv

import (
	"io"

	"braces.dev/errtrace"
)

// Boolean represents a Boolean bare item, rendered as "?1" or "?0".
type Boolean bool

func (Boolean) Kind() Kind { return KindBoolean }

func (Boolean) bareItem() {}

func (Boolean) Validate() error { return nil }

func (Boolean) IsValid() bool { return true }

// RenderTo writes "?1" or "?0" to w.
func (v Boolean) RenderTo(w io.Writer) (int, error) {
	return errtrace.Wrap2(io.WriteString(w, v.Render()))
}

func (v Boolean) Render() string {
	if v {
		return "?1"
	}
	return "?0"
}

func (v Boolean) String() string { return v.Render() }

func (v Boolean) Clone() BareItem { return v }

func (v Boolean) Equal(val any) bool {
	switch o := val.(type) {
	case Boolean:
		return v == o
	case *Boolean:
		return o != nil && v == *o
	default:
		return false
	}
}
