package sfv

import (
	"fmt"

	"github.com/ghettovoice/sfv/internal/errorutil"
)

// Error kinds. Every error returned by the package matches one of them with [errors.Is].
const (
	// ErrInvalidArgument reports a value of the wrong kind, e.g. NaN for a number
	// or a nil bare item.
	ErrInvalidArgument = errorutil.ErrInvalidArgument
	// ErrOutOfRange reports a value of the right kind that exceeds a numeric bound.
	ErrOutOfRange = errorutil.ErrOutOfRange
	// ErrInvalidGrammar reports a string, token or key with forbidden characters.
	ErrInvalidGrammar = errorutil.ErrInvalidGrammar
	// ErrSyntax reports a malformed field value. The concrete error is a [*SyntaxError].
	ErrSyntax = errorutil.ErrSyntax
)

// SyntaxError is returned by the decoder when the input does not match
// the structured field grammar.
type SyntaxError struct {
	// Msg describes what was wrong.
	Msg string
	// Offset is the zero-based byte offset in the joined input where parsing stopped.
	Offset int
}

func (e *SyntaxError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s at position %d", ErrSyntax, e.Msg, e.Offset)
}

// Pos returns the offset where parsing stopped.
func (e *SyntaxError) Pos() int { return e.Offset }

func (*SyntaxError) Unwrap() error { return ErrSyntax }

// Grammar marks the error as a grammar error.
func (*SyntaxError) Grammar() bool { return true }

func newOutOfRangeErr(args ...any) error {
	return errorutil.NewOutOfRangeError(args...) //errtrace:skip
}

func newInvalidArgErr(args ...any) error {
	return errorutil.NewInvalidArgumentError(args...) //errtrace:skip
}

func newInvalidGrammarErr(args ...any) error {
	return errorutil.NewInvalidGrammarError(args...) //errtrace:skip
}
