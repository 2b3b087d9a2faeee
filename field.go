package sfv

import (
	"encoding/json"
	"io"
	"strings"

	"braces.dev/errtrace"
)

// FieldType is a top-level structured field type.
type FieldType uint8

const (
	FieldItem FieldType = iota + 1
	FieldList
	FieldDictionary
)

func (t FieldType) String() string {
	switch t {
	case FieldItem:
		return "item"
	case FieldList:
		return "list"
	case FieldDictionary:
		return "dictionary"
	default:
		return "unknown"
	}
}

// ParseFieldType parses a field type name: "item", "list" or "dictionary".
// Names are case-insensitive.
func ParseFieldType(s string) (FieldType, error) {
	switch strings.ToLower(s) {
	case "item":
		return FieldItem, nil
	case "list":
		return FieldList, nil
	case "dictionary", "dict":
		return FieldDictionary, nil
	default:
		return 0, errtrace.Wrap(newInvalidArgErr("unknown field type %q", s))
	}
}

// Field is a top-level structured field value: an *[Item], a [List] or a *[Dictionary].
type Field interface {
	Validate() error
	IsValid() bool
	RenderTo(w io.Writer) (int, error)
	Render() string
	Equal(val any) bool
	json.Marshaler
}

var (
	_ Field = (*Item)(nil)
	_ Field = List(nil)
	_ Field = (*Dictionary)(nil)

	_ Member = (*Item)(nil)
	_ Member = (*InnerList)(nil)
)
