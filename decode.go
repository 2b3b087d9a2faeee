package sfv

import (
	"context"
	"log/slog"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sfv/internal/constraints"
	"github.com/ghettovoice/sfv/internal/log"
)

// Limits bound the size of decoded values. Zero means unlimited.
// A breached limit fails decoding with a [*SyntaxError].
type Limits struct {
	// MaxInputLength is the maximum length of the joined input in bytes.
	MaxInputLength int
	// MaxMembers is the maximum number of list or dictionary members.
	MaxMembers int
	// MaxInnerListMembers is the maximum number of items in an inner list.
	MaxInnerListMembers int
	// MaxParameters is the maximum number of parameters of a single item or inner list.
	MaxParameters int
	// MaxKeyLength is the maximum length of a dictionary or parameter key.
	MaxKeyLength int
}

// DecoderOptions configure a [Decoder].
type DecoderOptions struct {
	Limits Limits
	// Logger receives decoding failures at debug level.
	// Defaults to a logger that discards everything.
	Logger *slog.Logger
}

func (o *DecoderOptions) limits() Limits {
	if o == nil {
		return Limits{}
	}
	return o.Limits
}

func (o *DecoderOptions) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Noop
	}
	return o.Logger
}

// Decoder parses field values. It is immutable and safe for concurrent use.
type Decoder struct {
	limits Limits
	log    *slog.Logger
}

// NewDecoder returns a decoder configured with opts. Nil opts means defaults.
func NewDecoder(opts *DecoderOptions) *Decoder {
	return &Decoder{
		limits: opts.limits(),
		log:    opts.logger(),
	}
}

// DecodeItem parses values as an item.
// Multiple values are treated as repeated field lines and joined with commas.
func (d *Decoder) DecodeItem(values ...string) (*Item, error) {
	return errtrace.Wrap2(decode(d, FieldItem, values, (*parser).parseItem))
}

// DecodeList parses values as a list. An empty input gives an empty list.
func (d *Decoder) DecodeList(values ...string) (List, error) {
	return errtrace.Wrap2(decode(d, FieldList, values, (*parser).parseList))
}

// DecodeDictionary parses values as a dictionary. An empty input gives an empty dictionary.
// A repeated key replaces the earlier value and keeps its position.
func (d *Decoder) DecodeDictionary(values ...string) (*Dictionary, error) {
	return errtrace.Wrap2(decode(d, FieldDictionary, values, (*parser).parseDictionary))
}

// Decode parses values as a field of the given type.
func (d *Decoder) Decode(typ FieldType, values ...string) (Field, error) {
	switch typ {
	case FieldItem:
		return errtrace.Wrap2(d.DecodeItem(values...))
	case FieldList:
		return errtrace.Wrap2(d.DecodeList(values...))
	case FieldDictionary:
		return errtrace.Wrap2(d.DecodeDictionary(values...))
	default:
		return nil, errtrace.Wrap(newInvalidArgErr("unknown field type %v", typ))
	}
}

func decode[V any](d *Decoder, typ FieldType, values []string, rule func(*parser) (V, error)) (V, error) {
	p := &parser{in: strings.Join(values, ","), limits: d.limits}

	v, err := parseField(p, rule)
	if err != nil {
		d.log.LogAttrs(context.Background(), slog.LevelDebug, "failed to decode structured field",
			slog.String("type", typ.String()),
			slog.Any("input", log.StringValue(p.in)),
			slog.Any("error", err),
		)
		var zero V
		return zero, errtrace.Wrap(err)
	}
	return v, nil
}

func parseField[V any](p *parser, rule func(*parser) (V, error)) (V, error) {
	var zero V
	if p.limits.MaxInputLength > 0 && len(p.in) > p.limits.MaxInputLength {
		p.pos = p.limits.MaxInputLength
		return zero, errtrace.Wrap(p.errorf("input is too long"))
	}

	p.skipSP()
	v, err := rule(p)
	if err != nil {
		return zero, errtrace.Wrap(err)
	}
	p.skipSP()
	if !p.atEnd() {
		return zero, errtrace.Wrap(p.errorf("unexpected input %q", p.in[p.pos:]))
	}
	return v, nil
}

var defDecoder = NewDecoder(nil)

// DecodeItem parses values as an item using default options.
func DecodeItem[T constraints.Byteseq](values ...T) (*Item, error) {
	return errtrace.Wrap2(defDecoder.DecodeItem(toStrings(values)...))
}

// DecodeList parses values as a list using default options.
func DecodeList[T constraints.Byteseq](values ...T) (List, error) {
	return errtrace.Wrap2(defDecoder.DecodeList(toStrings(values)...))
}

// DecodeDictionary parses values as a dictionary using default options.
func DecodeDictionary[T constraints.Byteseq](values ...T) (*Dictionary, error) {
	return errtrace.Wrap2(defDecoder.DecodeDictionary(toStrings(values)...))
}

// Decode parses values as a field of the given type using default options.
func Decode[T constraints.Byteseq](typ FieldType, values ...T) (Field, error) {
	return errtrace.Wrap2(defDecoder.Decode(typ, toStrings(values)...))
}

func toStrings[T constraints.Byteseq](values []T) []string {
	ss := make([]string, len(values))
	for i, v := range values {
		ss[i] = string(v)
	}
	return ss
}
