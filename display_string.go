package sfv

import (
	"io"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sfv/internal/grammar"
)

// DisplayString represents a Display String bare item (RFC 9651): Unicode text
// rendered as %"..." with percent-encoded UTF-8.
type DisplayString string

// NewDisplayString returns a [DisplayString] or an [ErrInvalidArgument] error
// if s is not valid UTF-8.
func NewDisplayString(s string) (DisplayString, error) {
	ds := DisplayString(s)
	if err := ds.Validate(); err != nil {
		return "", errtrace.Wrap(err)
	}
	return ds, nil
}

func (DisplayString) Kind() Kind { return KindDisplayString }

func (DisplayString) bareItem() {}

// Validate checks that the text is valid UTF-8.
func (ds DisplayString) Validate() error {
	if !utf8.ValidString(string(ds)) {
		return errtrace.Wrap(newInvalidArgErr("display string must be valid UTF-8"))
	}
	return nil
}

func (ds DisplayString) IsValid() bool { return utf8.ValidString(string(ds)) }

func (ds DisplayString) appendTo(b []byte) []byte {
	b = append(b, '%', '"')
	b = grammar.AppendPercentEncoded(b, ds)
	return append(b, '"')
}

// RenderTo writes the percent-encoded form to w.
func (ds DisplayString) RenderTo(w io.Writer) (int, error) {
	return errtrace.Wrap2(writeValid(w, ds, ds.appendTo(make([]byte, 0, len(ds)+3))))
}

func (ds DisplayString) Render() string { return render(ds) }

func (ds DisplayString) String() string { return ds.Render() }

func (ds DisplayString) Clone() BareItem { return ds }

func (ds DisplayString) Equal(val any) bool {
	switch v := val.(type) {
	case DisplayString:
		return ds == v
	case *DisplayString:
		return v != nil && ds == *v
	default:
		return false
	}
}
