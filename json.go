package sfv

import (
	"bytes"
	"encoding/base32"
	"encoding/json"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sfv/internal/errorutil"
)

// JSON representation follows the format of the HTTP WG structured field tests:
//
//	item        [bare, params]
//	inner list  [[item, ...], params]
//	list        [member, ...]
//	dictionary  [[key, member], ...]
//	params      [[key, bare], ...]
//
// Integers and decimals are JSON numbers, strings and booleans map to JSON strings and booleans.
// Tokens, byte sequences, dates and display strings are objects with "__type" and "value" keys:
// {"__type": "token", "value": "foo"}, {"__type": "binary", "value": "<base32>"},
// {"__type": "date", "value": 1659578233}, {"__type": "displaystring", "value": "füü"}.

const (
	jsonTypeKey  = "__type"
	jsonValueKey = "value"

	jsonTypeToken         = "token"
	jsonTypeBinary        = "binary"
	jsonTypeDate          = "date"
	jsonTypeDisplayString = "displaystring"
)

func bareItemToJSON(v BareItem) (any, error) {
	if v == nil {
		return nil, errtrace.Wrap(newInvalidArgErr("bare item must not be nil"))
	}
	if err := v.Validate(); err != nil {
		return nil, errtrace.Wrap(err)
	}

	switch v := v.(type) {
	case Integer:
		return json.Number(strconv.FormatInt(int64(v), 10)), nil
	case Decimal:
		return json.Number(v.Render()), nil
	case String:
		return string(v), nil
	case Boolean:
		return bool(v), nil
	case Token:
		return typedJSON(jsonTypeToken, string(v)), nil
	case ByteSequence:
		return typedJSON(jsonTypeBinary, base32.StdEncoding.EncodeToString(v)), nil
	case Date:
		return typedJSON(jsonTypeDate, json.Number(strconv.FormatInt(int64(v), 10))), nil
	case DisplayString:
		return typedJSON(jsonTypeDisplayString, string(v)), nil
	default:
		return nil, errtrace.Wrap(newInvalidArgErr("unsupported bare item type %T", v))
	}
}

func typedJSON(typ string, val any) map[string]any {
	return map[string]any{jsonTypeKey: typ, jsonValueKey: val}
}

func paramsToJSON(p *Parameters) ([]any, error) {
	out := make([]any, 0, p.Len())
	for k, v := range p.All() {
		jv, err := bareItemToJSON(v)
		if err != nil {
			return nil, errtrace.Wrap(errorutil.JoinPrefix("parameter "+k, err))
		}
		out = append(out, []any{k, jv})
	}
	return out, nil
}

func itemToJSON(it *Item) (any, error) {
	if it == nil {
		return nil, errtrace.Wrap(newInvalidArgErr("item must not be nil"))
	}
	bare, err := bareItemToJSON(it.Value)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	params, err := paramsToJSON(it.Params)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return []any{bare, params}, nil
}

func innerListToJSON(il *InnerList) (any, error) {
	if il == nil {
		return nil, errtrace.Wrap(newInvalidArgErr("inner list must not be nil"))
	}
	items := make([]any, 0, len(il.Items))
	for _, it := range il.Items {
		v, err := itemToJSON(it)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		items = append(items, v)
	}
	params, err := paramsToJSON(il.Params)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return []any{items, params}, nil
}

func memberToJSON(m Member) (any, error) {
	switch m := m.(type) {
	case *Item:
		return errtrace.Wrap2(itemToJSON(m))
	case *InnerList:
		return errtrace.Wrap2(innerListToJSON(m))
	default:
		return nil, errtrace.Wrap(newInvalidArgErr("member must not be nil"))
	}
}

func listToJSON(l List) (any, error) {
	out := make([]any, 0, len(l))
	for _, m := range l {
		v, err := memberToJSON(m)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		out = append(out, v)
	}
	return out, nil
}

func dictionaryToJSON(d *Dictionary) (any, error) {
	out := make([]any, 0, d.Len())
	for k, m := range d.All() {
		v, err := memberToJSON(m)
		if err != nil {
			return nil, errtrace.Wrap(errorutil.JoinPrefix("member "+k, err))
		}
		out = append(out, []any{k, v})
	}
	return out, nil
}

func marshalJSON[T any](v T, conv func(T) (any, error)) ([]byte, error) {
	jv, err := conv(v)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(json.Marshal(jv))
}

// MarshalJSON implements [json.Marshaler].
func (it *Item) MarshalJSON() ([]byte, error) { return errtrace.Wrap2(marshalJSON(it, itemToJSON)) }

// MarshalJSON implements [json.Marshaler].
func (il *InnerList) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(marshalJSON(il, innerListToJSON))
}

// MarshalJSON implements [json.Marshaler]. A nil list is written as an empty array.
func (l List) MarshalJSON() ([]byte, error) { return errtrace.Wrap2(marshalJSON(l, listToJSON)) }

// MarshalJSON implements [json.Marshaler].
func (d *Dictionary) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(marshalJSON(d, dictionaryToJSON))
}

// MarshalJSON implements [json.Marshaler].
func (p *Parameters) MarshalJSON() ([]byte, error) {
	jv, err := paramsToJSON(p)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(json.Marshal(jv))
}

func unmarshalJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errtrace.Wrap(newInvalidArgErr(err))
	}
	if dec.More() {
		return nil, errtrace.Wrap(newInvalidArgErr("unexpected data after JSON value"))
	}
	return v, nil
}

func bareItemFromJSON(v any) (BareItem, error) {
	switch v := v.(type) {
	case json.Number:
		if strings.ContainsAny(v.String(), ".eE") {
			f, err := v.Float64()
			if err != nil {
				return nil, errtrace.Wrap(newInvalidArgErr(err))
			}
			return errtrace.Wrap2(asBareItem(NewDecimal(f)))
		}
		n, err := v.Int64()
		if err != nil {
			return nil, errtrace.Wrap(newOutOfRangeErr(errIntegerRange))
		}
		return errtrace.Wrap2(asBareItem(NewInteger(n)))
	case string:
		return errtrace.Wrap2(asBareItem(NewString(v)))
	case bool:
		return Boolean(v), nil
	case map[string]any:
		return errtrace.Wrap2(typedBareItemFromJSON(v))
	default:
		return nil, errtrace.Wrap(newInvalidArgErr("unsupported JSON bare item %T", v))
	}
}

func typedBareItemFromJSON(obj map[string]any) (BareItem, error) {
	typ, _ := obj[jsonTypeKey].(string)
	switch typ {
	case jsonTypeToken:
		s, ok := obj[jsonValueKey].(string)
		if !ok {
			break
		}
		return errtrace.Wrap2(asBareItem(NewToken(s)))
	case jsonTypeBinary:
		s, ok := obj[jsonValueKey].(string)
		if !ok {
			break
		}
		b, err := base32.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, errtrace.Wrap(newInvalidArgErr(err))
		}
		return ByteSequence(b), nil
	case jsonTypeDate:
		n, ok := obj[jsonValueKey].(json.Number)
		if !ok {
			break
		}
		i, err := n.Int64()
		if err != nil {
			return nil, errtrace.Wrap(newInvalidArgErr("date must be an integer"))
		}
		return errtrace.Wrap2(asBareItem(NewDate(i)))
	case jsonTypeDisplayString:
		s, ok := obj[jsonValueKey].(string)
		if !ok {
			break
		}
		return errtrace.Wrap2(asBareItem(NewDisplayString(s)))
	default:
		return nil, errtrace.Wrap(newInvalidArgErr("unknown JSON bare item type %q", typ))
	}
	return nil, errtrace.Wrap(newInvalidArgErr("invalid JSON %s value", typ))
}

func pairFromJSON(v any) (string, any, error) {
	pair, ok := v.([]any)
	if !ok || len(pair) != 2 {
		return "", nil, errtrace.Wrap(newInvalidArgErr("expected [key, value] pair"))
	}
	key, ok := pair[0].(string)
	if !ok {
		return "", nil, errtrace.Wrap(newInvalidArgErr("key must be a string"))
	}
	return key, pair[1], nil
}

func paramsFromJSON(v any) (*Parameters, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, errtrace.Wrap(newInvalidArgErr("parameters must be an array"))
	}
	if len(arr) == 0 {
		return nil, nil
	}
	params := NewParameters()
	for _, e := range arr {
		key, jv, err := pairFromJSON(e)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		bare, err := bareItemFromJSON(jv)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		if err := params.Set(key, bare); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	return params, nil
}

func itemFromJSON(v any) (*Item, error) {
	arr, ok := v.([]any)
	if !ok || len(arr) != 2 {
		return nil, errtrace.Wrap(newInvalidArgErr("item must be a [bare item, parameters] array"))
	}
	bare, err := bareItemFromJSON(arr[0])
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	params, err := paramsFromJSON(arr[1])
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &Item{Value: bare, Params: params}, nil
}

func memberFromJSON(v any) (Member, error) {
	arr, ok := v.([]any)
	if !ok || len(arr) != 2 {
		return nil, errtrace.Wrap(newInvalidArgErr("member must be a two-element array"))
	}
	items, ok := arr[0].([]any)
	if !ok {
		return errtrace.Wrap2(itemFromJSON(v))
	}

	il := &InnerList{Items: make([]*Item, 0, len(items))}
	for _, e := range items {
		it, err := itemFromJSON(e)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		il.Items = append(il.Items, it)
	}
	params, err := paramsFromJSON(arr[1])
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	il.Params = params
	return il, nil
}

func listFromJSON(v any) (List, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, errtrace.Wrap(newInvalidArgErr("list must be an array"))
	}
	l := make(List, 0, len(arr))
	for _, e := range arr {
		m, err := memberFromJSON(e)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		l = append(l, m)
	}
	return l, nil
}

func dictionaryFromJSON(v any) (*Dictionary, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, errtrace.Wrap(newInvalidArgErr("dictionary must be an array"))
	}
	d := NewDictionary()
	for _, e := range arr {
		key, jv, err := pairFromJSON(e)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		m, err := memberFromJSON(jv)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		if err := d.Set(key, m); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	return d, nil
}

func fromJSON[T any](data []byte, conv func(any) (T, error)) (T, error) {
	v, err := unmarshalJSON(data)
	if err != nil {
		var zero T
		return zero, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(conv(v))
}

// ItemFromJSON builds an item from its JSON representation.
func ItemFromJSON(data []byte) (*Item, error) { return errtrace.Wrap2(fromJSON(data, itemFromJSON)) }

// ListFromJSON builds a list from its JSON representation.
func ListFromJSON(data []byte) (List, error) { return errtrace.Wrap2(fromJSON(data, listFromJSON)) }

// DictionaryFromJSON builds a dictionary from its JSON representation.
func DictionaryFromJSON(data []byte) (*Dictionary, error) {
	return errtrace.Wrap2(fromJSON(data, dictionaryFromJSON))
}

// FieldFromJSON builds a field of the given type from its JSON representation.
func FieldFromJSON(typ FieldType, data []byte) (Field, error) {
	switch typ {
	case FieldItem:
		return errtrace.Wrap2(ItemFromJSON(data))
	case FieldList:
		return errtrace.Wrap2(ListFromJSON(data))
	case FieldDictionary:
		return errtrace.Wrap2(DictionaryFromJSON(data))
	default:
		return nil, errtrace.Wrap(newInvalidArgErr("unknown field type %v", typ))
	}
}

// UnmarshalJSON implements [json.Unmarshaler].
func (it *Item) UnmarshalJSON(data []byte) error {
	v, err := ItemFromJSON(data)
	if err != nil {
		return errtrace.Wrap(err)
	}
	*it = *v
	return nil
}

// UnmarshalJSON implements [json.Unmarshaler].
func (il *InnerList) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, memberFromJSON)
	if err != nil {
		return errtrace.Wrap(err)
	}
	v2, ok := v.(*InnerList)
	if !ok {
		return errtrace.Wrap(newInvalidArgErr("expected inner list"))
	}
	*il = *v2
	return nil
}

// UnmarshalJSON implements [json.Unmarshaler].
func (l *List) UnmarshalJSON(data []byte) error {
	v, err := ListFromJSON(data)
	if err != nil {
		return errtrace.Wrap(err)
	}
	*l = v
	return nil
}

// UnmarshalJSON implements [json.Unmarshaler].
func (d *Dictionary) UnmarshalJSON(data []byte) error {
	v, err := DictionaryFromJSON(data)
	if err != nil {
		return errtrace.Wrap(err)
	}
	*d = *v
	return nil
}

// UnmarshalJSON implements [json.Unmarshaler].
func (p *Parameters) UnmarshalJSON(data []byte) error {
	v, err := fromJSON(data, paramsFromJSON)
	if err != nil {
		return errtrace.Wrap(err)
	}
	*p = Parameters{}
	if v != nil {
		*p = *v
	}
	return nil
}
