package sfv_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/mock/gomock"

	"github.com/ghettovoice/sfv"
	"github.com/ghettovoice/sfv/internal/testutils/iomock"
)

func TestItem_Render(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		item *sfv.Item
		want string
	}{
		{"nil", nil, ""},
		{"nil value", &sfv.Item{}, ""},
		{"no params", sfv.NewItem(sfv.Integer(5), nil), "5"},
		{"empty params", sfv.NewItem(sfv.Token("a"), sfv.NewParameters()), "a"},
		{"params", sfv.NewItem(sfv.String("x"), params(t, "a", 1, "b", true)), `"x";a=1;b`},
		{"invalid value", sfv.NewItem(sfv.Token("1"), nil), ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.item.Render(); got != c.want {
				t.Errorf("item.Render() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestItem_RenderTo_WriterError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	w := iomock.NewMockWriter(ctrl)
	errWrite := errors.New("write failed")
	w.EXPECT().Write(gomock.Any()).Return(0, errWrite)

	item := sfv.NewItem(sfv.Integer(1), params(t, "a", 2))
	_, err := item.RenderTo(w)
	if !errors.Is(err, errWrite) {
		t.Errorf("item.RenderTo(w) error = %v, want %v", err, errWrite)
	}
}

func TestItem_Validate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		item    *sfv.Item
		wantErr error
	}{
		{"nil", nil, sfv.ErrInvalidArgument},
		{"nil value", &sfv.Item{}, sfv.ErrInvalidArgument},
		{"valid", sfv.NewItem(sfv.Boolean(true), nil), nil},
		{"invalid value", sfv.NewItem(sfv.String("\n"), nil), sfv.ErrInvalidGrammar},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(c.item.Validate(), c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("item.Validate() error mismatch (-got +want):\n%v", diff)
			}
		})
	}
}

func TestItem_Format(t *testing.T) {
	t.Parallel()

	item := sfv.NewItem(sfv.Token("a"), params(t, "q", 1))
	if got, want := fmt.Sprintf("%s", item), "a;q=1"; got != want {
		t.Errorf("fmt.Sprintf(\"%%s\", item) = %q, want %q", got, want)
	}
	if got, want := fmt.Sprintf("%q", item), `"a;q=1"`; got != want {
		t.Errorf("fmt.Sprintf(\"%%q\", item) = %q, want %q", got, want)
	}
}

func TestItem_CloneEqual(t *testing.T) {
	t.Parallel()

	item := sfv.NewItem(sfv.ByteSequence("xyz"), params(t, "a", "b"))
	clone := item.Clone()
	if !item.Equal(clone) {
		t.Fatal("item.Equal(item.Clone()) = false, want true")
	}
	if !item.Equal(*clone) {
		t.Error("item.Equal(*clone) = false, want true")
	}

	clone.Parameters().Delete("a")
	if item.Equal(clone) {
		t.Error("item.Equal(clone) = true after changing clone params, want false")
	}
	if !item.Params.Has("a") {
		t.Error("item lost parameter after changing clone")
	}

	if sfv.NewItem(sfv.Integer(1), nil).Equal(sfv.NewItem(sfv.Date(1), nil)) {
		t.Error("integer item equals date item")
	}
	if !sfv.NewItem(sfv.Integer(1), nil).Equal(sfv.NewItem(sfv.Integer(1), sfv.NewParameters())) {
		t.Error("item without params does not equal item with empty params")
	}
	var nilItem *sfv.Item
	if nilItem.Clone() != nil {
		t.Error("nil.Clone() != nil")
	}
}

func TestInnerList_Render(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		il   *sfv.InnerList
		want string
	}{
		{"nil", nil, ""},
		{"empty", sfv.NewInnerList(nil, nil), "()"},
		{"empty with params", sfv.NewInnerList(nil, params(t, "a", 1)), "();a=1"},
		{
			"items",
			sfv.NewInnerList([]*sfv.Item{
				sfv.NewItem(sfv.String("foo"), params(t, "a", 1)),
				sfv.NewItem(sfv.Token("bar"), nil),
			}, params(t, "lvl", 5)),
			`("foo";a=1 bar);lvl=5`,
		},
		{"nil item", sfv.NewInnerList([]*sfv.Item{nil}, nil), ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.il.Render(); got != c.want {
				t.Errorf("il.Render() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestInnerList_CloneEqual(t *testing.T) {
	t.Parallel()

	il := sfv.NewInnerList([]*sfv.Item{sfv.NewItem(sfv.Integer(1), nil)}, nil)
	il.Append(sfv.NewItem(sfv.Integer(2), nil))
	if got, want := il.Len(), 2; got != want {
		t.Errorf("il.Len() = %d, want %d", got, want)
	}

	clone := il.Clone()
	if !il.Equal(clone) {
		t.Fatal("il.Equal(il.Clone()) = false, want true")
	}
	clone.Items[0].Value = sfv.Integer(100)
	if il.Equal(clone) {
		t.Error("il.Equal(clone) = true after changing clone, want false")
	}
	if il.Equal(sfv.NewItem(sfv.Integer(1), nil)) {
		t.Error("inner list equals item")
	}
}

func TestList_Render(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		list sfv.List
		want string
	}{
		{"nil", nil, ""},
		{
			"tokens",
			sfv.List{
				sfv.NewItem(sfv.Token("sugar"), nil),
				sfv.NewItem(sfv.Token("tea"), nil),
				sfv.NewItem(sfv.Token("rum"), nil),
			},
			"sugar, tea, rum",
		},
		{
			"mixed",
			sfv.List{
				sfv.NewInnerList([]*sfv.Item{sfv.NewItem(sfv.Integer(1), nil), sfv.NewItem(sfv.Integer(2), nil)}, nil),
				sfv.NewItem(sfv.Decimal{}, params(t, "x", true)),
			},
			"(1 2), 0.0;x",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.list.Render(); got != c.want {
				t.Errorf("list.Render() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestList_RenderTo_NilMember(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := sfv.List{sfv.NewItem(sfv.Integer(1), nil), nil}
	if _, err := l.RenderTo(&buf); !errors.Is(err, sfv.ErrInvalidArgument) {
		t.Errorf("l.RenderTo(buf) error = %v, want %v", err, sfv.ErrInvalidArgument)
	}
	if err := l.Validate(); !errors.Is(err, sfv.ErrInvalidArgument) {
		t.Errorf("l.Validate() error = %v, want %v", err, sfv.ErrInvalidArgument)
	}
}

func TestList_CloneEqual(t *testing.T) {
	t.Parallel()

	l := sfv.List{
		sfv.NewItem(sfv.Token("a"), nil),
		sfv.NewInnerList([]*sfv.Item{sfv.NewItem(sfv.Integer(1), nil)}, nil),
	}
	clone := l.Clone()
	if !l.Equal(clone) {
		t.Fatal("l.Equal(l.Clone()) = false, want true")
	}
	if !l.Equal(&clone) {
		t.Error("l.Equal(&clone) = false, want true")
	}
	clone[1].(*sfv.InnerList).Items[0].Value = sfv.Integer(2) //nolint:forcetypeassert
	if l.Equal(clone) {
		t.Error("l.Equal(clone) = true after changing clone, want false")
	}
	if sfv.List(nil).Clone() != nil {
		t.Error("nil.Clone() != nil")
	}
	if !sfv.List(nil).Equal(sfv.List{}) {
		t.Error("nil list does not equal empty list")
	}
}

// params builds parameters from key-value pairs.
func params(t *testing.T, kvs ...any) *sfv.Parameters {
	t.Helper()

	p := sfv.NewParameters()
	for i := 0; i < len(kvs); i += 2 {
		v, err := sfv.BareItemOf(kvs[i+1])
		if err != nil {
			t.Fatalf("sfv.BareItemOf(%v) error = %v, want nil", kvs[i+1], err)
		}
		if err := p.Set(kvs[i].(string), v); err != nil { //nolint:forcetypeassert
			t.Fatalf("p.Set(%v, %v) error = %v, want nil", kvs[i], v, err)
		}
	}
	return p
}
