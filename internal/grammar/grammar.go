// Package grammar provides character classes and small lexical helpers
// for Structured Field Values (RFC 8941, RFC 9651).
package grammar

import "github.com/ghettovoice/sfv/internal/constraints"

const (
	clsDigit uint8 = 1 << iota
	clsAlpha
	clsLCAlpha
	clsTChar
	clsKey
	clsBase64
)

var classes = func() [256]uint8 {
	var t [256]uint8
	for c := '0'; c <= '9'; c++ {
		t[c] |= clsDigit | clsTChar | clsKey | clsBase64
	}
	for c := 'A'; c <= 'Z'; c++ {
		t[c] |= clsAlpha | clsTChar | clsBase64
	}
	for c := 'a'; c <= 'z'; c++ {
		t[c] |= clsAlpha | clsLCAlpha | clsTChar | clsKey | clsBase64
	}
	for _, c := range "!#$%&'*+-.^_`|~" {
		t[c] |= clsTChar
	}
	for _, c := range "_-.*" {
		t[c] |= clsKey
	}
	for _, c := range "+/=" {
		t[c] |= clsBase64
	}
	return t
}()

// IsDigit reports whether c is DIGIT.
func IsDigit(c byte) bool { return classes[c]&clsDigit != 0 }

// IsAlpha reports whether c is ALPHA.
func IsAlpha(c byte) bool { return classes[c]&clsAlpha != 0 }

// IsTChar reports whether c is tchar as defined by RFC 9110.
func IsTChar(c byte) bool { return classes[c]&clsTChar != 0 }

// IsKeyStart reports whether c can start a key: lcalpha or "*".
func IsKeyStart(c byte) bool { return classes[c]&clsLCAlpha != 0 || c == '*' }

// IsKeyChar reports whether c can appear in a key after the first character.
func IsKeyChar(c byte) bool { return classes[c]&clsKey != 0 }

// IsTokenStart reports whether c can start a token: ALPHA or "*".
func IsTokenStart(c byte) bool { return classes[c]&clsAlpha != 0 || c == '*' }

// IsTokenChar reports whether c can appear in a token after the first character.
func IsTokenChar(c byte) bool { return classes[c]&clsTChar != 0 || c == ':' || c == '/' }

// IsBase64Char reports whether c belongs to the standard base64 alphabet or is padding.
func IsBase64Char(c byte) bool { return classes[c]&clsBase64 != 0 }

// IsVisible reports whether c is in the printable ASCII range %x20-7E.
func IsVisible(c byte) bool { return c >= 0x20 && c <= 0x7e }

// IsKey reports whether s is a valid dictionary or parameter key.
func IsKey[T constraints.Byteseq](s T) bool {
	if len(s) == 0 || !IsKeyStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !IsKeyChar(s[i]) {
			return false
		}
	}
	return true
}

// IsToken reports whether s is a valid token.
func IsToken[T constraints.Byteseq](s T) bool {
	if len(s) == 0 || !IsTokenStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !IsTokenChar(s[i]) {
			return false
		}
	}
	return true
}

// IsString reports whether every byte of s is printable ASCII.
func IsString[T constraints.Byteseq](s T) bool {
	for i := 0; i < len(s); i++ {
		if !IsVisible(s[i]) {
			return false
		}
	}
	return true
}
