package sfv_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/sfv"
)

func TestDictionary_Render(t *testing.T) {
	t.Parallel()

	d := sfv.NewDictionary()
	mustSet(t, d.Set, "a", sfv.Member(sfv.NewItem(sfv.Boolean(false), nil)))
	mustSet(t, d.Set, "b", sfv.Member(sfv.NewItem(sfv.Boolean(true), nil)))
	mustSet(t, d.Set, "c", sfv.Member(sfv.NewItem(sfv.Boolean(true), params(t, "foo", sfv.Token("bar")))))
	mustSet(t, d.Set, "d", sfv.Member(sfv.NewInnerList([]*sfv.Item{sfv.NewItem(sfv.Integer(1), nil)}, nil)))
	mustSet(t, d.Set, "e", sfv.Member(sfv.NewItem(sfv.DisplayString("é"), nil)))

	if got, want := d.Render(), `a=?0, b, c;foo=bar, d=(1), e=%"%c3%a9"`; got != want {
		t.Errorf("d.Render() = %q, want %q", got, want)
	}
}

func TestDictionary_Set(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		key     string
		member  sfv.Member
		wantErr error
	}{
		{"item", "a", sfv.NewItem(sfv.Integer(1), nil), nil},
		{"inner list", "a", sfv.NewInnerList(nil, nil), nil},
		{"bad key", "A", sfv.NewItem(sfv.Integer(1), nil), sfv.ErrInvalidGrammar},
		{"nil member", "a", nil, sfv.ErrInvalidArgument},
		{"nil item", "a", (*sfv.Item)(nil), sfv.ErrInvalidArgument},
		{"invalid item", "a", sfv.NewItem(sfv.Integer(sfv.MaxInteger+1), nil), sfv.ErrOutOfRange},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			d := sfv.NewDictionary()
			if diff := cmp.Diff(d.Set(c.key, c.member), c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("d.Set(%q, member) error mismatch (-got +want):\n%v", c.key, diff)
			}
		})
	}
}

func TestDictionary_Order(t *testing.T) {
	t.Parallel()

	d := sfv.NewDictionary()
	for i, k := range []string{"x", "y", "z"} {
		mustSet(t, d.Set, k, sfv.Member(sfv.NewItem(sfv.Integer(i), nil)))
	}
	mustSet(t, d.Set, "x", sfv.Member(sfv.NewItem(sfv.Integer(10), nil)))

	if got, want := slices.Collect(d.Keys()), []string{"x", "y", "z"}; !slices.Equal(got, want) {
		t.Errorf("d.Keys() = %v, want %v", got, want)
	}
	if got, want := d.Render(), "x=10, y=1, z=2"; got != want {
		t.Errorf("d.Render() = %q, want %q", got, want)
	}

	k, m, err := d.At(2)
	if err != nil {
		t.Fatalf("d.At(2) error = %v, want nil", err)
	}
	if k != "z" || !m.Equal(sfv.NewItem(sfv.Integer(2), nil)) {
		t.Errorf("d.At(2) = (%q, %v), want (%q, %v)", k, m, "z", 2)
	}
	if _, _, err := d.At(3); !errors.Is(err, sfv.ErrOutOfRange) {
		t.Errorf("d.At(3) error = %v, want %v", err, sfv.ErrOutOfRange)
	}

	d.Delete("y")
	if got, want := d.Render(), "x=10, z=2"; got != want {
		t.Errorf("d.Render() after delete = %q, want %q", got, want)
	}
	if !d.Has("z") || d.Has("y") {
		t.Errorf("d.Has: z = %v, y = %v, want true, false", d.Has("z"), d.Has("y"))
	}
}

func TestDictionary_Nil(t *testing.T) {
	t.Parallel()

	var d *sfv.Dictionary
	if got := d.Len(); got != 0 {
		t.Errorf("d.Len() = %d, want 0", got)
	}
	if got := d.Render(); got != "" {
		t.Errorf("d.Render() = %q, want \"\"", got)
	}
	if _, _, err := d.At(0); !errors.Is(err, sfv.ErrOutOfRange) {
		t.Errorf("d.At(0) error = %v, want %v", err, sfv.ErrOutOfRange)
	}
	if !d.Equal(sfv.NewDictionary()) {
		t.Error("nil.Equal(empty) = false, want true")
	}
	if err := d.Validate(); err != nil {
		t.Errorf("d.Validate() error = %v, want nil", err)
	}
}

func TestDictionary_CloneEqual(t *testing.T) {
	t.Parallel()

	d := sfv.NewDictionary()
	mustSet(t, d.Set, "a", sfv.Member(sfv.NewItem(sfv.Token("t"), params(t, "p", 1))))
	mustSet(t, d.Set, "b", sfv.Member(sfv.NewInnerList([]*sfv.Item{sfv.NewItem(sfv.String("s"), nil)}, nil)))

	clone := d.Clone()
	if !d.Equal(clone) {
		t.Fatal("d.Equal(d.Clone()) = false, want true")
	}

	m, _ := clone.Get("b")
	m.(*sfv.InnerList).Append(sfv.NewItem(sfv.Integer(1), nil)) //nolint:forcetypeassert
	if d.Equal(clone) {
		t.Error("d.Equal(clone) = true after changing clone, want false")
	}
	if m, _ := d.Get("b"); m.(*sfv.InnerList).Len() != 1 { //nolint:forcetypeassert
		t.Error("original inner list changed after changing clone")
	}
	if d.Equal(sfv.List{}) {
		t.Error("dictionary equals list")
	}
}
