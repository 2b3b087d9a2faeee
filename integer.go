package sfv

import (
	"io"
	"math"
	"strconv"

	"braces.dev/errtrace"
)

// Integer bounds.
const (
	MaxInteger = 999_999_999_999_999
	MinInteger = -MaxInteger
)

const errIntegerRange = "value must be between -999999999999999 and 999999999999999"

// Integer represents an Integer bare item: a signed number with at most 15 decimal digits.
type Integer int64

// NewInteger returns an [Integer] or an [ErrOutOfRange] error if v has more than 15 digits.
func NewInteger(v int64) (Integer, error) {
	i := Integer(v)
	if err := i.Validate(); err != nil {
		return 0, errtrace.Wrap(err)
	}
	return i, nil
}

// IntegerFromFloat converts a float with an integral value to an [Integer].
// NaN, infinities and fractional values fail with [ErrInvalidArgument].
func IntegerFromFloat(f float64) (Integer, error) {
	if math.IsNaN(f) {
		return 0, errtrace.Wrap(newInvalidArgErr("value must be a number"))
	}
	if math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, errtrace.Wrap(newInvalidArgErr("value must be an integer"))
	}
	if f < MinInteger || f > MaxInteger {
		return 0, errtrace.Wrap(newOutOfRangeErr(errIntegerRange))
	}
	return Integer(f), nil
}

func (Integer) Kind() Kind { return KindInteger }

func (Integer) bareItem() {}

// Int64 returns the integer value.
func (i Integer) Int64() int64 { return int64(i) }

// Validate checks the integer bounds.
func (i Integer) Validate() error {
	if i < MinInteger || i > MaxInteger {
		return errtrace.Wrap(newOutOfRangeErr(errIntegerRange))
	}
	return nil
}

// IsValid checks whether the integer is within bounds.
func (i Integer) IsValid() bool { return i.Validate() == nil }

func (i Integer) appendTo(b []byte) []byte { return strconv.AppendInt(b, int64(i), 10) }

// RenderTo writes the canonical form of the integer to w.
func (i Integer) RenderTo(w io.Writer) (int, error) {
	var buf [20]byte
	return errtrace.Wrap2(writeValid(w, i, i.appendTo(buf[:0])))
}

// Render returns the canonical form of the integer.
func (i Integer) Render() string { return render(i) }

func (i Integer) String() string { return i.Render() }

// Clone returns the integer itself.
func (i Integer) Clone() BareItem { return i }

// Equal compares the integer with another [Integer] or *[Integer].
func (i Integer) Equal(val any) bool {
	switch v := val.(type) {
	case Integer:
		return i == v
	case *Integer:
		return v != nil && i == *v
	default:
		return false
	}
}
