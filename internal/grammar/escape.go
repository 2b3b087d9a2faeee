package grammar

import "github.com/ghettovoice/sfv/internal/constraints"

// AppendPercentEncoded appends s to b, replacing "%", DQUOTE and every byte
// outside %x20-7E with "%" followed by two lowercase hex digits.
func AppendPercentEncoded[T constraints.Byteseq](b []byte, s T) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' || c == '"' || !IsVisible(c) {
			b = append(b, '%', lowerhex[c>>4], lowerhex[c&15])
			continue
		}
		b = append(b, c)
	}
	return b
}

const lowerhex = "0123456789abcdef"

// IsLCHex reports whether c is a lowercase hex digit.
func IsLCHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f')
}

// Unhex returns the value of the lowercase hex digit c.
func Unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	}
	return 0
}
