package sfv

import (
	"io"
	"math"
	"strconv"

	"braces.dev/errtrace"
)

const (
	maxDecimalMilli = 999_999_999_999_999
	errDecimalRange = "value must be between -999999999999.999 and 999999999999.999"
)

// Decimal represents a Decimal bare item: a signed fixed-point number with
// at most 12 integer and 3 fractional digits.
//
// The value is stored as an integral number of thousandths, so the zero value is 0.0
// and two decimals that render the same are equal.
type Decimal struct {
	milli int64
}

// NewDecimal rounds f to three fractional digits using round-half-to-even.
// NaN and infinities fail with [ErrInvalidArgument], values that do not fit
// after rounding fail with [ErrOutOfRange].
func NewDecimal(f float64) (Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Decimal{}, errtrace.Wrap(newInvalidArgErr("value must be a number"))
	}
	if math.Abs(f) >= 1e12 {
		return Decimal{}, errtrace.Wrap(newOutOfRangeErr(errDecimalRange))
	}
	return errtrace.Wrap2(DecimalFromMilli(int64(math.RoundToEven(f * 1000))))
}

// DecimalFromMilli returns a [Decimal] holding m thousandths.
func DecimalFromMilli(m int64) (Decimal, error) {
	d := Decimal{m}
	if err := d.Validate(); err != nil {
		return Decimal{}, errtrace.Wrap(err)
	}
	return d, nil
}

func (Decimal) Kind() Kind { return KindDecimal }

func (Decimal) bareItem() {}

// Milli returns the value in thousandths.
func (d Decimal) Milli() int64 { return d.milli }

// Float64 returns the value as float.
func (d Decimal) Float64() float64 { return float64(d.milli) / 1000 }

// Validate checks the decimal bounds.
func (d Decimal) Validate() error {
	if d.milli < -maxDecimalMilli || d.milli > maxDecimalMilli {
		return errtrace.Wrap(newOutOfRangeErr(errDecimalRange))
	}
	return nil
}

// IsValid checks whether the decimal is within bounds.
func (d Decimal) IsValid() bool { return d.Validate() == nil }

// appendTo writes the integer part, a dot and the fraction without trailing zeros,
// keeping at least one fractional digit.
func (d Decimal) appendTo(b []byte) []byte {
	m := d.milli
	if m < 0 {
		b = append(b, '-')
		m = -m
	}
	b = strconv.AppendInt(b, m/1000, 10)
	frac := m % 1000
	digits := [3]byte{byte('0' + frac/100), byte('0' + frac/10%10), byte('0' + frac%10)}
	n := len(digits)
	for n > 1 && digits[n-1] == '0' {
		n--
	}
	b = append(b, '.')
	return append(b, digits[:n]...)
}

// RenderTo writes the canonical form of the decimal to w.
func (d Decimal) RenderTo(w io.Writer) (int, error) {
	var buf [24]byte
	return errtrace.Wrap2(writeValid(w, d, d.appendTo(buf[:0])))
}

// Render returns the canonical form of the decimal.
func (d Decimal) Render() string { return render(d) }

func (d Decimal) String() string { return d.Render() }

// Clone returns the decimal itself.
func (d Decimal) Clone() BareItem { return d }

// Equal compares the decimal with another [Decimal] or *[Decimal].
func (d Decimal) Equal(val any) bool {
	switch v := val.(type) {
	case Decimal:
		return d == v
	case *Decimal:
		return v != nil && d == *v
	default:
		return false
	}
}
