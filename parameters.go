package sfv

import (
	"io"
	"iter"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sfv/internal/errorutil"
	"github.com/ghettovoice/sfv/internal/grammar"
	"github.com/ghettovoice/sfv/internal/ioutil"
)

// Parameters is an ordered map of keys to bare items attached to an [Item] or an [InnerList].
//
// Keys are unique and keep their insertion order; setting an existing key
// updates the value without moving it. A nil *Parameters reads as empty.
type Parameters struct {
	entries[BareItem]
}

// NewParameters returns empty parameters.
func NewParameters() *Parameters { return &Parameters{} }

// Set adds or updates a parameter.
// It fails with [ErrInvalidGrammar] for a malformed key, [ErrInvalidArgument]
// for a nil value and with the value validation error for an invalid value.
func (p *Parameters) Set(key string, val BareItem) error {
	if err := validateKey(key); err != nil {
		return errtrace.Wrap(err)
	}
	if val == nil {
		return errtrace.Wrap(newInvalidArgErr("parameter %q value must not be nil", key))
	}
	if err := val.Validate(); err != nil {
		return errtrace.Wrap(err)
	}
	p.set(key, val)
	return nil
}

// Get returns the value stored under key.
func (p *Parameters) Get(key string) (BareItem, bool) {
	if p == nil {
		return nil, false
	}
	return p.get(key)
}

// Has reports whether key is present.
func (p *Parameters) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Delete removes key. Missing keys are ignored.
func (p *Parameters) Delete(key string) {
	if p != nil {
		p.del(key)
	}
}

// At returns the key and value at the zero-based position i in insertion order.
func (p *Parameters) At(i int) (string, BareItem, error) {
	if p == nil {
		return "", nil, errtrace.Wrap(newOutOfRangeErr(errIndexRange))
	}
	k, v, ok := p.at(i)
	if !ok {
		return "", nil, errtrace.Wrap(newOutOfRangeErr(errIndexRange))
	}
	return k, v, nil
}

// All returns an iterator over key-value pairs in insertion order.
func (p *Parameters) All() iter.Seq2[string, BareItem] {
	if p == nil {
		return func(func(string, BareItem) bool) {}
	}
	return p.all()
}

// Keys returns an iterator over keys in insertion order.
func (p *Parameters) Keys() iter.Seq[string] {
	if p == nil {
		return func(func(string) bool) {}
	}
	return p.keys()
}

// Len returns the number of parameters.
func (p *Parameters) Len() int {
	if p == nil {
		return 0
	}
	return p.len()
}

// Validate validates every value.
func (p *Parameters) Validate() error {
	var errs []error
	for k, v := range p.All() {
		if err := v.Validate(); err != nil {
			errs = append(errs, errorutil.JoinPrefix("parameter "+k, err))
		}
	}
	return errtrace.Wrap(errorutil.Join(errs...))
}

// IsValid checks whether all values are valid.
func (p *Parameters) IsValid() bool { return p.Validate() == nil }

// RenderTo writes ";key=value" pairs to w. Boolean true values are written as bare keys.
func (p *Parameters) RenderTo(w io.Writer) (num int, err error) {
	if p.Len() == 0 {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for k, v := range p.All() {
		cw.WriteByte(';') //nolint:errcheck
		cw.WriteString(k) //nolint:errcheck
		if isTrue(v) {
			continue
		}
		cw.WriteByte('=') //nolint:errcheck
		cw.Call(v.RenderTo)
		if cw.Err() != nil {
			break
		}
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the rendered parameters.
func (p *Parameters) Render() string { return render(p) }

func (p *Parameters) String() string { return p.Render() }

// Clone returns a deep copy of the parameters.
func (p *Parameters) Clone() *Parameters {
	if p == nil {
		return nil
	}
	return &Parameters{p.clone(cloneBareItem)}
}

// Equal compares parameters including their order.
// A nil *Parameters is equal to empty parameters.
func (p *Parameters) Equal(val any) bool {
	var other *Parameters
	switch v := val.(type) {
	case *Parameters:
		other = v
	case nil:
	default:
		return false
	}

	if p.Len() == 0 || other.Len() == 0 {
		return p.Len() == other.Len()
	}
	return p.equal(&other.entries, equalBareItems)
}

const errIndexRange = "index out of range"

func validateKey(key string) error {
	if !grammar.IsKey(key) {
		return errtrace.Wrap(newInvalidGrammarErr("invalid key %q", key))
	}
	return nil
}
