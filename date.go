package sfv

import (
	"io"
	"strconv"
	"time"

	"braces.dev/errtrace"
)

const errDateRange = "date must be between -999999999999999 and 999999999999999 seconds"

// Date represents a Date bare item (RFC 9651): whole seconds since the Unix epoch,
// rendered as "@" followed by an integer.
type Date int64

// NewDate returns a [Date] or an [ErrOutOfRange] error if sec has more than 15 digits.
func NewDate(sec int64) (Date, error) {
	d := Date(sec)
	if err := d.Validate(); err != nil {
		return 0, errtrace.Wrap(err)
	}
	return d, nil
}

// DateFromTime truncates t to whole seconds.
func DateFromTime(t time.Time) (Date, error) {
	return errtrace.Wrap2(NewDate(t.Unix()))
}

func (Date) Kind() Kind { return KindDate }

func (Date) bareItem() {}

// Unix returns the number of seconds since the Unix epoch.
func (d Date) Unix() int64 { return int64(d) }

// Time returns the date as UTC time.
func (d Date) Time() time.Time { return time.Unix(int64(d), 0).UTC() }

func (d Date) Validate() error {
	if d < MinInteger || d > MaxInteger {
		return errtrace.Wrap(newOutOfRangeErr(errDateRange))
	}
	return nil
}

func (d Date) IsValid() bool { return d.Validate() == nil }

func (d Date) appendTo(b []byte) []byte {
	b = append(b, '@')
	return strconv.AppendInt(b, int64(d), 10)
}

// RenderTo writes "@seconds" to w.
func (d Date) RenderTo(w io.Writer) (int, error) {
	var buf [21]byte
	return errtrace.Wrap2(writeValid(w, d, d.appendTo(buf[:0])))
}

func (d Date) Render() string { return render(d) }

func (d Date) String() string { return d.Render() }

func (d Date) Clone() BareItem { return d }

func (d Date) Equal(val any) bool {
	switch v := val.(type) {
	case Date:
		return d == v
	case *Date:
		return v != nil && d == *v
	default:
		return false
	}
}
