package sfv

import (
	"io"
	"math"
	"time"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sfv/internal/util"
)

// Kind identifies the type of a [BareItem].
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInteger
	KindDecimal
	KindString
	KindToken
	KindByteSequence
	KindBoolean
	KindDate
	KindDisplayString
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindToken:
		return "token"
	case KindByteSequence:
		return "byte sequence"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindDisplayString:
		return "display string"
	default:
		return "invalid"
	}
}

// BareItem is an atomic value carried by an [Item] or a parameter.
// The set of implementations is closed: [Integer], [Decimal], [String], [Token],
// [ByteSequence], [Boolean], [Date] and [DisplayString].
type BareItem interface {
	// Kind returns the item type.
	Kind() Kind
	// Validate returns an error if the value violates its type invariants.
	Validate() error
	// IsValid reports whether Validate returns nil.
	IsValid() bool
	// RenderTo writes the canonical form to w.
	RenderTo(w io.Writer) (int, error)
	// Render returns the canonical form, or an empty string if the value is invalid.
	Render() string
	// Clone returns a copy that shares no memory with the original.
	Clone() BareItem
	// Equal reports whether val holds the same kind and value.
	Equal(val any) bool

	bareItem()
}

type renderer interface {
	RenderTo(w io.Writer) (int, error)
}

func render(r renderer) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if _, err := r.RenderTo(sb); err != nil {
		return ""
	}
	return sb.String()
}

func renderErr(r renderer) (string, error) {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if _, err := r.RenderTo(sb); err != nil {
		return "", errtrace.Wrap(err)
	}
	return sb.String(), nil
}

func writeValid(w io.Writer, v interface{ Validate() error }, b []byte) (int, error) {
	if err := v.Validate(); err != nil {
		return 0, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(w.Write(b))
}

// BareItemOf converts a Go value to a validated [BareItem].
//
// Integer types map to [Integer], float types to [Decimal], string to [String],
// []byte to [ByteSequence], bool to [Boolean] and [time.Time] to [Date].
// Values that already implement [BareItem] are validated and returned as is.
func BareItemOf(v any) (BareItem, error) {
	switch v := v.(type) {
	case nil:
		return nil, errtrace.Wrap(newInvalidArgErr("bare item must not be nil"))
	case BareItem:
		if err := v.Validate(); err != nil {
			return nil, errtrace.Wrap(err)
		}
		return v, nil
	case int:
		return errtrace.Wrap2(asBareItem(NewInteger(int64(v))))
	case int8:
		return errtrace.Wrap2(asBareItem(NewInteger(int64(v))))
	case int16:
		return errtrace.Wrap2(asBareItem(NewInteger(int64(v))))
	case int32:
		return errtrace.Wrap2(asBareItem(NewInteger(int64(v))))
	case int64:
		return errtrace.Wrap2(asBareItem(NewInteger(v)))
	case uint:
		return errtrace.Wrap2(asBareItem(integerFromUint(uint64(v))))
	case uint8:
		return errtrace.Wrap2(asBareItem(NewInteger(int64(v))))
	case uint16:
		return errtrace.Wrap2(asBareItem(NewInteger(int64(v))))
	case uint32:
		return errtrace.Wrap2(asBareItem(NewInteger(int64(v))))
	case uint64:
		return errtrace.Wrap2(asBareItem(integerFromUint(v)))
	case float32:
		return errtrace.Wrap2(asBareItem(NewDecimal(float64(v))))
	case float64:
		return errtrace.Wrap2(asBareItem(NewDecimal(v)))
	case string:
		return errtrace.Wrap2(asBareItem(NewString(v)))
	case []byte:
		return ByteSequence(v).Clone(), nil
	case bool:
		return Boolean(v), nil
	case time.Time:
		return errtrace.Wrap2(asBareItem(DateFromTime(v)))
	default:
		return nil, errtrace.Wrap(newInvalidArgErr("unsupported bare item type %T", v))
	}
}

func integerFromUint(v uint64) (Integer, error) {
	if v > math.MaxInt64 {
		return 0, errtrace.Wrap(newOutOfRangeErr(errIntegerRange))
	}
	return errtrace.Wrap2(NewInteger(int64(v)))
}

// asBareItem converts a constructor result to a BareItem.
// On error the value is nil, not the typed zero value.
func asBareItem[T BareItem](v T, err error) (BareItem, error) {
	if err != nil {
		return nil, err //errtrace:skip
	}
	return v, nil
}

func isTrue(v BareItem) bool {
	b, ok := v.(Boolean)
	return ok && bool(b)
}

func cloneBareItem(v BareItem) BareItem {
	if v == nil {
		return nil
	}
	return v.Clone()
}

func equalBareItems(v1, v2 BareItem) bool {
	if v1 == nil || v2 == nil {
		return v1 == nil && v2 == nil
	}
	return v1.Equal(v2)
}
