package sfv

import "braces.dev/errtrace"

// EncodeItem returns the canonical form of an item.
// It fails if the item or any of its values is invalid.
func EncodeItem(it *Item) (string, error) {
	if it == nil {
		return "", errtrace.Wrap(newInvalidArgErr("item must not be nil"))
	}
	return errtrace.Wrap2(renderErr(it))
}

// EncodeList returns the canonical form of a list. An empty list encodes to an empty string.
func EncodeList(l List) (string, error) {
	return errtrace.Wrap2(renderErr(l))
}

// EncodeDictionary returns the canonical form of a dictionary.
// An empty dictionary encodes to an empty string.
func EncodeDictionary(d *Dictionary) (string, error) {
	return errtrace.Wrap2(renderErr(d))
}

// Encode returns the canonical form of any top-level field.
func Encode(f Field) (string, error) {
	switch f := f.(type) {
	case nil:
		return "", errtrace.Wrap(newInvalidArgErr("field must not be nil"))
	case *Item:
		return errtrace.Wrap2(EncodeItem(f))
	default:
		return errtrace.Wrap2(renderErr(f))
	}
}
