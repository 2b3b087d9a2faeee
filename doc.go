// Package sfv implements Structured Field Values for HTTP as defined by
// RFC 8941, including the Date and Display String types added by RFC 9651.
//
// A field value is decoded into one of three top-level structures: an [Item],
// a [List] or a [Dictionary]. Items carry one of eight bare item types
// ([Integer], [Decimal], [String], [Token], [ByteSequence], [Boolean], [Date],
// [DisplayString]) plus ordered [Parameters]. Lists and dictionaries hold
// items and [InnerList] values.
//
// Decoding is strict and all-or-nothing:
//
//	d, err := sfv.DecodeDictionary("a=?0, b, c;foo=bar")
//	if err != nil {
//		// the field value is malformed
//	}
//
// Encoding always produces the canonical form:
//
//	s, err := sfv.EncodeDictionary(d) // "a=?0, b, c;foo=bar"
//
// Errors match [ErrInvalidArgument], [ErrOutOfRange], [ErrInvalidGrammar]
// or [ErrSyntax] with [errors.Is]. Decoding errors are [*SyntaxError] values
// carrying the position where parsing stopped.
package sfv

//go:generate go tool errtrace -w .
