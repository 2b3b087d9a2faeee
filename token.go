package sfv

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sfv/internal/grammar"
)

// Token represents a Token bare item, e.g. "sugar", "text/html" or "*".
type Token string

// NewToken returns a [Token] or an [ErrInvalidGrammar] error if s is not a valid token.
func NewToken(s string) (Token, error) {
	t := Token(s)
	if err := t.Validate(); err != nil {
		return "", errtrace.Wrap(err)
	}
	return t, nil
}

func (Token) Kind() Kind { return KindToken }

func (Token) bareItem() {}

// Validate checks the token grammar.
func (t Token) Validate() error {
	if !grammar.IsToken(t) {
		return errtrace.Wrap(newInvalidGrammarErr("invalid token %q", string(t)))
	}
	return nil
}

// IsValid checks the token grammar.
func (t Token) IsValid() bool { return grammar.IsToken(t) }

// RenderTo writes the token to w.
func (t Token) RenderTo(w io.Writer) (int, error) {
	if err := t.Validate(); err != nil {
		return 0, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(io.WriteString(w, string(t)))
}

// Render returns the token, or an empty string if it is invalid.
func (t Token) Render() string {
	if !t.IsValid() {
		return ""
	}
	return string(t)
}

func (t Token) String() string { return t.Render() }

// Clone returns the token itself.
func (t Token) Clone() BareItem { return t }

// Equal compares the token with another [Token] or *[Token].
// Tokens are case-sensitive.
func (t Token) Equal(val any) bool {
	switch v := val.(type) {
	case Token:
		return t == v
	case *Token:
		return v != nil && t == *v
	default:
		return false
	}
}
