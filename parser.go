package sfv

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sfv/internal/grammar"
)

const eof = -1

// parser is a cursor over a joined field value.
type parser struct {
	in     string
	pos    int
	limits Limits
}

func (p *parser) peek() int {
	if p.pos >= len(p.in) {
		return eof
	}
	return int(p.in[p.pos])
}

func (p *parser) atEnd() bool { return p.pos >= len(p.in) }

func (p *parser) skipSP() {
	for p.pos < len(p.in) && p.in[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) skipOWS() {
	for p.pos < len(p.in) && (p.in[p.pos] == ' ' || p.in[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Offset: p.pos} //errtrace:skip
}

func (p *parser) unexpected() error {
	if p.atEnd() {
		return errtrace.Wrap(p.errorf("unexpected end of input"))
	}
	return errtrace.Wrap(p.errorf("unexpected character %q", p.in[p.pos]))
}

// next consumes the separator between members of a list or a dictionary.
// It reports false when the input is over.
func (p *parser) next() (bool, error) {
	p.skipOWS()
	if p.atEnd() {
		return false, nil
	}
	if p.in[p.pos] != ',' {
		return false, errtrace.Wrap(p.errorf(`expected "," after member, got %q`, p.in[p.pos]))
	}
	p.pos++
	p.skipOWS()
	if p.atEnd() {
		return false, errtrace.Wrap(p.errorf("trailing comma"))
	}
	return true, nil
}

func (p *parser) parseList() (List, error) {
	l := List{}
	for !p.atEnd() {
		m, err := p.parseMember()
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		l = append(l, m)
		if p.limits.MaxMembers > 0 && len(l) > p.limits.MaxMembers {
			return nil, errtrace.Wrap(p.errorf("too many list members"))
		}

		if ok, err := p.next(); err != nil {
			return nil, errtrace.Wrap(err)
		} else if !ok {
			break
		}
	}
	return l, nil
}

func (p *parser) parseDictionary() (*Dictionary, error) {
	d := NewDictionary()
	for !p.atEnd() {
		key, err := p.parseKey()
		if err != nil {
			return nil, errtrace.Wrap(err)
		}

		var m Member
		if p.peek() == '=' {
			p.pos++
			m, err = p.parseMember()
		} else {
			var params *Parameters
			params, err = p.parseParameters()
			m = &Item{Value: Boolean(true), Params: params}
		}
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		d.set(key, m)
		if p.limits.MaxMembers > 0 && d.Len() > p.limits.MaxMembers {
			return nil, errtrace.Wrap(p.errorf("too many dictionary members"))
		}

		if ok, err := p.next(); err != nil {
			return nil, errtrace.Wrap(err)
		} else if !ok {
			break
		}
	}
	return d, nil
}

func (p *parser) parseMember() (Member, error) {
	if p.peek() == '(' {
		return errtrace.Wrap2(p.parseInnerList())
	}
	return errtrace.Wrap2(p.parseItem())
}

func (p *parser) parseInnerList() (*InnerList, error) {
	p.pos++ // (
	il := &InnerList{Items: []*Item{}}
	for {
		p.skipSP()
		switch p.peek() {
		case eof:
			return nil, errtrace.Wrap(p.errorf("unterminated inner list"))
		case ')':
			p.pos++
			params, err := p.parseParameters()
			if err != nil {
				return nil, errtrace.Wrap(err)
			}
			il.Params = params
			return il, nil
		}

		it, err := p.parseItem()
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		il.Items = append(il.Items, it)
		if p.limits.MaxInnerListMembers > 0 && len(il.Items) > p.limits.MaxInnerListMembers {
			return nil, errtrace.Wrap(p.errorf("too many inner list members"))
		}

		if c := p.peek(); c != ' ' && c != ')' {
			return nil, errtrace.Wrap(p.unexpected())
		}
	}
}

func (p *parser) parseItem() (*Item, error) {
	v, err := p.parseBareItem()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &Item{Value: v, Params: params}, nil
}

// parseParameters returns nil when there are no parameters.
func (p *parser) parseParameters() (*Parameters, error) {
	var params *Parameters
	for p.peek() == ';' {
		p.pos++
		p.skipSP()
		key, err := p.parseKey()
		if err != nil {
			return nil, errtrace.Wrap(err)
		}

		var v BareItem = Boolean(true)
		if p.peek() == '=' {
			p.pos++
			if v, err = p.parseBareItem(); err != nil {
				return nil, errtrace.Wrap(err)
			}
		}

		if params == nil {
			params = NewParameters()
		}
		params.set(key, v)
		if p.limits.MaxParameters > 0 && params.Len() > p.limits.MaxParameters {
			return nil, errtrace.Wrap(p.errorf("too many parameters"))
		}
	}
	return params, nil
}

func (p *parser) parseKey() (string, error) {
	if c := p.peek(); c == eof || !grammar.IsKeyStart(byte(c)) {
		if c == eof {
			return "", errtrace.Wrap(p.errorf("unexpected end of input, expected key"))
		}
		return "", errtrace.Wrap(p.errorf(`key must start with lowercase letter or "*", got %q`, byte(c)))
	}
	start := p.pos
	p.pos++
	for p.pos < len(p.in) && grammar.IsKeyChar(p.in[p.pos]) {
		p.pos++
	}
	if p.limits.MaxKeyLength > 0 && p.pos-start > p.limits.MaxKeyLength {
		return "", errtrace.Wrap(p.errorf("key is too long"))
	}
	return p.in[start:p.pos], nil
}

func (p *parser) parseBareItem() (BareItem, error) {
	c := p.peek()
	switch {
	case c == '-' || (c != eof && grammar.IsDigit(byte(c))):
		return errtrace.Wrap2(p.parseNumber())
	case c == '"':
		return errtrace.Wrap2(p.parseString())
	case c != eof && grammar.IsTokenStart(byte(c)):
		return p.parseToken(), nil
	case c == ':':
		return errtrace.Wrap2(p.parseByteSequence())
	case c == '?':
		return errtrace.Wrap2(p.parseBoolean())
	case c == '@':
		return errtrace.Wrap2(p.parseDate())
	case c == '%':
		return errtrace.Wrap2(p.parseDisplayString())
	default:
		return nil, errtrace.Wrap(p.unexpected())
	}
}

func (p *parser) parseNumber() (BareItem, error) {
	neg := p.peek() == '-'
	if neg {
		p.pos++
	}
	if c := p.peek(); c == eof || !grammar.IsDigit(byte(c)) {
		return nil, errtrace.Wrap(p.errorf("expected digit"))
	}

	start, dot := p.pos, -1
loop:
	for p.pos < len(p.in) {
		c := p.in[p.pos]
		switch {
		case grammar.IsDigit(c):
			if (dot < 0 && p.pos-start >= 15) || (dot >= 0 && p.pos-dot > 3) {
				return nil, errtrace.Wrap(p.errorf("number is too long"))
			}
		case c == '.' && dot < 0:
			if p.pos-start > 12 {
				return nil, errtrace.Wrap(p.errorf("number is too long"))
			}
			dot = p.pos
		default:
			break loop
		}
		p.pos++
	}

	if dot < 0 {
		n, _ := strconv.ParseInt(p.in[start:p.pos], 10, 64)
		if neg {
			n = -n
		}
		return Integer(n), nil
	}

	frac := p.in[dot+1 : p.pos]
	if len(frac) == 0 {
		return nil, errtrace.Wrap(p.errorf(`decimal must not end in "."`))
	}
	ip, _ := strconv.ParseInt(p.in[start:dot], 10, 64)
	fp, _ := strconv.ParseInt(frac, 10, 64)
	for i := len(frac); i < 3; i++ {
		fp *= 10
	}
	milli := ip*1000 + fp
	if neg {
		milli = -milli
	}
	return Decimal{milli: milli}, nil
}

func (p *parser) parseString() (BareItem, error) {
	p.pos++ // "
	var b []byte
	for {
		c := p.peek()
		switch {
		case c == eof:
			return nil, errtrace.Wrap(p.errorf("unterminated string"))
		case c == '\\':
			p.pos++
			if c = p.peek(); c != '"' && c != '\\' {
				if c == eof {
					return nil, errtrace.Wrap(p.errorf("unterminated string"))
				}
				return nil, errtrace.Wrap(p.errorf("invalid escape sequence %q", `\`+string(rune(c))))
			}
		case c == '"':
			p.pos++
			return String(b), nil
		case !grammar.IsVisible(byte(c)):
			return nil, errtrace.Wrap(p.errorf("invalid string character %q", byte(c)))
		}
		b = append(b, byte(c))
		p.pos++
	}
}

func (p *parser) parseToken() BareItem {
	start := p.pos
	p.pos++
	for p.pos < len(p.in) && grammar.IsTokenChar(p.in[p.pos]) {
		p.pos++
	}
	return Token(p.in[start:p.pos])
}

func (p *parser) parseByteSequence() (BareItem, error) {
	p.pos++ // :
	start := p.pos
	for {
		c := p.peek()
		if c == eof {
			return nil, errtrace.Wrap(p.errorf("unterminated byte sequence"))
		}
		if c == ':' {
			break
		}
		if !grammar.IsBase64Char(byte(c)) {
			return nil, errtrace.Wrap(p.errorf("invalid byte sequence character %q", byte(c)))
		}
		p.pos++
	}

	b, err := base64.StdEncoding.DecodeString(p.in[start:p.pos])
	if err != nil {
		return nil, errtrace.Wrap(p.errorf("invalid base64 in byte sequence: %v", err))
	}
	p.pos++
	return ByteSequence(b), nil
}

func (p *parser) parseBoolean() (BareItem, error) {
	p.pos++ // ?
	switch p.peek() {
	case '1':
		p.pos++
		return Boolean(true), nil
	case '0':
		p.pos++
		return Boolean(false), nil
	default:
		return nil, errtrace.Wrap(p.errorf(`boolean must be "?0" or "?1"`))
	}
}

func (p *parser) parseDate() (BareItem, error) {
	p.pos++ // @
	v, err := p.parseNumber()
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	i, ok := v.(Integer)
	if !ok {
		return nil, errtrace.Wrap(p.errorf("date must be an integer"))
	}
	return Date(i), nil
}

func (p *parser) parseDisplayString() (BareItem, error) {
	p.pos++ // %
	if p.peek() != '"' {
		return nil, errtrace.Wrap(p.errorf(`expected '"' after "%%"`))
	}
	p.pos++

	var b []byte
	for {
		c := p.peek()
		switch {
		case c == eof:
			return nil, errtrace.Wrap(p.errorf("unterminated display string"))
		case c == '"':
			if !utf8.Valid(b) {
				return nil, errtrace.Wrap(p.errorf("invalid UTF-8 in display string"))
			}
			p.pos++
			return DisplayString(b), nil
		case c == '%':
			if p.pos+2 >= len(p.in) || !grammar.IsLCHex(p.in[p.pos+1]) || !grammar.IsLCHex(p.in[p.pos+2]) {
				return nil, errtrace.Wrap(p.errorf("invalid percent escape in display string"))
			}
			b = append(b, grammar.Unhex(p.in[p.pos+1])<<4|grammar.Unhex(p.in[p.pos+2]))
			p.pos += 3
		case !grammar.IsVisible(byte(c)):
			return nil, errtrace.Wrap(p.errorf("invalid display string character %q", byte(c)))
		default:
			b = append(b, byte(c))
			p.pos++
		}
	}
}
