package sfv

import (
	"io"
	"iter"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sfv/internal/errorutil"
	"github.com/ghettovoice/sfv/internal/ioutil"
)

// Dictionary is an ordered map of keys to members.
//
// Keys are unique and keep their insertion order; setting an existing key
// updates the member without moving it. A nil *Dictionary reads as empty.
type Dictionary struct {
	entries[Member]
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary { return &Dictionary{} }

// Set adds or updates a member.
func (d *Dictionary) Set(key string, m Member) error {
	if err := validateKey(key); err != nil {
		return errtrace.Wrap(err)
	}
	if isNilMember(m) {
		return errtrace.Wrap(newInvalidArgErr("dictionary member %q must not be nil", key))
	}
	if err := m.Validate(); err != nil {
		return errtrace.Wrap(err)
	}
	d.set(key, m)
	return nil
}

// Get returns the member stored under key.
func (d *Dictionary) Get(key string) (Member, bool) {
	if d == nil {
		return nil, false
	}
	return d.get(key)
}

// Has reports whether key is present.
func (d *Dictionary) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Delete removes key. Missing keys are ignored.
func (d *Dictionary) Delete(key string) {
	if d != nil {
		d.del(key)
	}
}

// At returns the key and member at the zero-based position i in insertion order.
func (d *Dictionary) At(i int) (string, Member, error) {
	if d == nil {
		return "", nil, errtrace.Wrap(newOutOfRangeErr(errIndexRange))
	}
	k, m, ok := d.at(i)
	if !ok {
		return "", nil, errtrace.Wrap(newOutOfRangeErr(errIndexRange))
	}
	return k, m, nil
}

// All returns an iterator over key-member pairs in insertion order.
func (d *Dictionary) All() iter.Seq2[string, Member] {
	if d == nil {
		return func(func(string, Member) bool) {}
	}
	return d.all()
}

// Keys returns an iterator over keys in insertion order.
func (d *Dictionary) Keys() iter.Seq[string] {
	if d == nil {
		return func(func(string) bool) {}
	}
	return d.keys()
}

// Len returns the number of members.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return d.len()
}

func (d *Dictionary) Validate() error {
	var errs []error
	for k, m := range d.All() {
		if err := validateMember(m); err != nil {
			errs = append(errs, errorutil.JoinPrefix("member "+k, err))
		}
	}
	return errtrace.Wrap(errorutil.Join(errs...))
}

func (d *Dictionary) IsValid() bool { return d.Validate() == nil }

// RenderTo writes "key=member" pairs separated by ", ".
// A member that is an item with Boolean true value is written as the key
// followed by the item parameters.
func (d *Dictionary) RenderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	i := 0
	for k, m := range d.All() {
		if i > 0 {
			cw.WriteString(", ") //nolint:errcheck
		}
		i++
		if cw.Fail(validateMember(m)).Err() != nil {
			break
		}
		cw.WriteString(k) //nolint:errcheck
		if it, ok := m.(*Item); ok && isTrue(it.Value) {
			cw.Call(it.Params.RenderTo)
		} else {
			cw.WriteByte('=') //nolint:errcheck
			cw.Call(m.RenderTo)
		}
	}
	return errtrace.Wrap2(cw.Result())
}

func (d *Dictionary) Render() string { return render(d) }

func (d *Dictionary) String() string { return d.Render() }

// Clone returns a deep copy of the dictionary.
func (d *Dictionary) Clone() *Dictionary {
	if d == nil {
		return nil
	}
	return &Dictionary{d.clone(cloneMember)}
}

// Equal compares dictionaries including their order.
// A nil *Dictionary is equal to an empty one.
func (d *Dictionary) Equal(val any) bool {
	var other *Dictionary
	switch v := val.(type) {
	case *Dictionary:
		other = v
	case nil:
	default:
		return false
	}

	if d.Len() == 0 || other.Len() == 0 {
		return d.Len() == other.Len()
	}
	return d.equal(&other.entries, equalMembers)
}
