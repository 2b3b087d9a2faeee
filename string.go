package sfv

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sfv/internal/grammar"
)

// String represents a String bare item: printable ASCII text (%x20-7E).
type String string

// NewString returns a [String] or an [ErrInvalidGrammar] error if s contains
// characters outside of the printable ASCII range.
func NewString(s string) (String, error) {
	str := String(s)
	if err := str.Validate(); err != nil {
		return "", errtrace.Wrap(err)
	}
	return str, nil
}

func (String) Kind() Kind { return KindString }

func (String) bareItem() {}

// Validate checks that the string contains only printable ASCII.
func (s String) Validate() error {
	if !grammar.IsString(s) {
		return errtrace.Wrap(newInvalidGrammarErr("string must contain only printable ASCII characters"))
	}
	return nil
}

// IsValid checks whether the string contains only printable ASCII.
func (s String) IsValid() bool { return grammar.IsString(s) }

func (s String) appendTo(b []byte) []byte {
	b = append(b, '"')
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' || s[i] == '"' {
			b = append(b, '\\')
		}
		b = append(b, s[i])
	}
	return append(b, '"')
}

// RenderTo writes the quoted and escaped string to w.
func (s String) RenderTo(w io.Writer) (int, error) {
	return errtrace.Wrap2(writeValid(w, s, s.appendTo(make([]byte, 0, len(s)+2))))
}

// Render returns the quoted and escaped string.
func (s String) Render() string { return render(s) }

// String returns the quoted form. Use a plain conversion to get the raw text.
func (s String) String() string { return s.Render() }

// Clone returns the string itself.
func (s String) Clone() BareItem { return s }

// Equal compares the string with another [String] or *[String].
func (s String) Equal(val any) bool {
	switch v := val.(type) {
	case String:
		return s == v
	case *String:
		return v != nil && s == *v
	default:
		return false
	}
}
