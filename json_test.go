package sfv_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/sfv"
)

func TestItem_MarshalJSON(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		item *sfv.Item
		want string
	}{
		{"integer", sfv.NewItem(sfv.Integer(1), nil), `[1,[]]`},
		{"decimal", sfv.NewItem(mustDecimalFromMilli(t, 1500), nil), `[1.5,[]]`},
		{"whole decimal", sfv.NewItem(mustDecimalFromMilli(t, 2000), nil), `[2.0,[]]`},
		{"string", sfv.NewItem(sfv.String("a"), nil), `["a",[]]`},
		{"boolean", sfv.NewItem(sfv.Boolean(false), nil), `[false,[]]`},
		{"token", sfv.NewItem(sfv.Token("tok"), nil), `[{"__type":"token","value":"tok"},[]]`},
		{"binary", sfv.NewItem(sfv.ByteSequence("hello"), nil), `[{"__type":"binary","value":"NBSWY3DP"},[]]`},
		{"date", sfv.NewItem(sfv.Date(1659578233), nil), `[{"__type":"date","value":1659578233},[]]`},
		{"display string", sfv.NewItem(sfv.DisplayString("ü"), nil), `[{"__type":"displaystring","value":"ü"},[]]`},
		{"params", sfv.NewItem(sfv.Integer(1), params(t, "b", 2, "a", true)), `[1,[["b",2],["a",true]]]`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := json.Marshal(c.item)
			if err != nil {
				t.Fatalf("json.Marshal(item) error = %v, want nil", err)
			}
			if string(got) != c.want {
				t.Errorf("json.Marshal(item) = %s, want %s", got, c.want)
			}

			back, err := sfv.ItemFromJSON(got)
			if err != nil {
				t.Fatalf("sfv.ItemFromJSON(%s) error = %v, want nil", got, err)
			}
			if diff := cmp.Diff(back, c.item); diff != "" {
				t.Errorf("sfv.ItemFromJSON(%s) mismatch (-got +want):\n%v", got, diff)
			}
		})
	}
}

func TestList_MarshalJSON(t *testing.T) {
	t.Parallel()

	l, err := sfv.DecodeList(`a;x=1, ("b" 2);y, ()`)
	if err != nil {
		t.Fatalf("sfv.DecodeList() error = %v, want nil", err)
	}
	want := `[[{"__type":"token","value":"a"},[["x",1]]],[[["b",[]],[2,[]]],[["y",true]]],[[],[]]]`

	got, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("json.Marshal(list) error = %v, want nil", err)
	}
	if string(got) != want {
		t.Errorf("json.Marshal(list) = %s, want %s", got, want)
	}

	var back sfv.List
	if err := json.Unmarshal(got, &back); err != nil {
		t.Fatalf("json.Unmarshal(%s) error = %v, want nil", got, err)
	}
	if diff := cmp.Diff(back, l); diff != "" {
		t.Errorf("json.Unmarshal(%s) mismatch (-got +want):\n%v", got, diff)
	}

	if got, _ := json.Marshal(sfv.List(nil)); string(got) != "[]" {
		t.Errorf("json.Marshal(nil list) = %s, want []", got)
	}
}

func TestDictionary_MarshalJSON(t *testing.T) {
	t.Parallel()

	d, err := sfv.DecodeDictionary(`a=?0, b, c;foo=bar, d=(1 2)`)
	if err != nil {
		t.Fatalf("sfv.DecodeDictionary() error = %v, want nil", err)
	}
	want := `[["a",[false,[]]],["b",[true,[]]],["c",[true,[["foo",{"__type":"token","value":"bar"}]]]],["d",[[[1,[]],[2,[]]],[]]]]`

	got, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal(dict) error = %v, want nil", err)
	}
	if string(got) != want {
		t.Errorf("json.Marshal(dict) = %s, want %s", got, want)
	}

	back := sfv.NewDictionary()
	if err := json.Unmarshal(got, back); err != nil {
		t.Fatalf("json.Unmarshal(%s) error = %v, want nil", got, err)
	}
	if !back.Equal(d) {
		t.Errorf("json.Unmarshal(%s) = %v, want %v", got, back, d)
	}
}

func TestFromJSON_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		typ     sfv.FieldType
		in      string
		wantErr error
	}{
		{"malformed", sfv.FieldItem, `[1,`, sfv.ErrInvalidArgument},
		{"trailing data", sfv.FieldItem, `[1,[]] [2,[]]`, sfv.ErrInvalidArgument},
		{"item not array", sfv.FieldItem, `1`, sfv.ErrInvalidArgument},
		{"integer too big", sfv.FieldItem, `[1000000000000000,[]]`, sfv.ErrOutOfRange},
		{"decimal too big", sfv.FieldItem, `[1e12,[]]`, sfv.ErrOutOfRange},
		{"string not ascii", sfv.FieldItem, `["ü",[]]`, sfv.ErrInvalidGrammar},
		{"unknown type", sfv.FieldItem, `[{"__type":"uuid","value":"x"},[]]`, sfv.ErrInvalidArgument},
		{"bad base32", sfv.FieldItem, `[{"__type":"binary","value":"!!"},[]]`, sfv.ErrInvalidArgument},
		{"bad token", sfv.FieldItem, `[{"__type":"token","value":"1"},[]]`, sfv.ErrInvalidGrammar},
		{"token value type", sfv.FieldItem, `[{"__type":"token","value":1},[]]`, sfv.ErrInvalidArgument},
		{"params key", sfv.FieldItem, `[1,[["A",1]]]`, sfv.ErrInvalidGrammar},
		{"list not array", sfv.FieldList, `{}`, sfv.ErrInvalidArgument},
		{"dictionary pair", sfv.FieldDictionary, `[["a"]]`, sfv.ErrInvalidArgument},
		{"field type", sfv.FieldType(9), `[]`, sfv.ErrInvalidArgument},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if _, err := sfv.FieldFromJSON(c.typ, []byte(c.in)); !errors.Is(err, c.wantErr) {
				t.Errorf("sfv.FieldFromJSON(%v, %s) error = %v, want %v", c.typ, c.in, err, c.wantErr)
			}
		})
	}
}
