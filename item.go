package sfv

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sfv/internal/ioutil"
)

// Member is a member of a [List] or a value of a [Dictionary] entry:
// either an *[Item] or an *[InnerList].
type Member interface {
	Validate() error
	IsValid() bool
	RenderTo(w io.Writer) (int, error)
	Render() string
	Equal(val any) bool

	cloneMember() Member
}

// Item is a bare item with parameters.
type Item struct {
	Value  BareItem
	Params *Parameters
}

// NewItem returns an item holding val and params. A nil params means no parameters.
func NewItem(val BareItem, params *Parameters) *Item {
	return &Item{Value: val, Params: params}
}

// Parameters returns the item parameters, allocating them on first use.
func (it *Item) Parameters() *Parameters {
	if it.Params == nil {
		it.Params = NewParameters()
	}
	return it.Params
}

// Validate checks the value and the parameters.
func (it *Item) Validate() error {
	if it == nil {
		return errtrace.Wrap(newInvalidArgErr("item must not be nil"))
	}
	if it.Value == nil {
		return errtrace.Wrap(newInvalidArgErr("item value must not be nil"))
	}
	if err := it.Value.Validate(); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(it.Params.Validate())
}

// IsValid checks whether the item is valid.
func (it *Item) IsValid() bool { return it.Validate() == nil }

// RenderTo writes the bare item followed by its parameters.
func (it *Item) RenderTo(w io.Writer) (num int, err error) {
	if it == nil || it.Value == nil {
		return 0, errtrace.Wrap(newInvalidArgErr("item value must not be nil"))
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Call(it.Value.RenderTo).Call(it.Params.RenderTo)
	return errtrace.Wrap2(cw.Result())
}

// Render returns the canonical form of the item.
func (it *Item) Render() string { return render(it) }

func (it *Item) String() string { return it.Render() }

// Format implements fmt.Formatter for custom formatting of the item.
func (it *Item) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			it.RenderTo(f) //nolint:errcheck
			return
		}
		fmt.Fprint(f, it.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(it.String()))
		return
	default:
		type hideMethods Item
		type Item hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Item)(it))
		return
	}
}

// Clone returns a deep copy of the item.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	return &Item{
		Value:  cloneBareItem(it.Value),
		Params: it.Params.Clone(),
	}
}

func (it *Item) cloneMember() Member { return it.Clone() }

// Equal compares the item with another *[Item] or [Item].
func (it *Item) Equal(val any) bool {
	var other *Item
	switch v := val.(type) {
	case Item:
		other = &v
	case *Item:
		other = v
	default:
		return false
	}

	if it == other {
		return true
	} else if it == nil || other == nil {
		return false
	}

	return equalBareItems(it.Value, other.Value) && it.Params.Equal(other.Params)
}
