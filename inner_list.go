package sfv

import (
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sfv/internal/errorutil"
	"github.com/ghettovoice/sfv/internal/ioutil"
)

// InnerList is a parenthesized list of items with its own parameters.
// The parameters belong to the list as a whole, not to its members.
type InnerList struct {
	Items  []*Item
	Params *Parameters
}

// NewInnerList returns an inner list of items with params.
func NewInnerList(items []*Item, params *Parameters) *InnerList {
	return &InnerList{Items: items, Params: params}
}

// Parameters returns the list parameters, allocating them on first use.
func (il *InnerList) Parameters() *Parameters {
	if il.Params == nil {
		il.Params = NewParameters()
	}
	return il.Params
}

// Append adds items to the end of the list.
func (il *InnerList) Append(items ...*Item) { il.Items = append(il.Items, items...) }

// Len returns the number of items.
func (il *InnerList) Len() int {
	if il == nil {
		return 0
	}
	return len(il.Items)
}

// Validate checks every item and the list parameters.
func (il *InnerList) Validate() error {
	if il == nil {
		return errtrace.Wrap(newInvalidArgErr("inner list must not be nil"))
	}
	var errs []error
	for i, it := range il.Items {
		if err := it.Validate(); err != nil {
			errs = append(errs, errorutil.JoinPrefix("item "+strconv.Itoa(i), err))
		}
	}
	if err := il.Params.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errtrace.Wrap(errorutil.Join(errs...))
}

func (il *InnerList) IsValid() bool { return il.Validate() == nil }

// RenderTo writes "(item1 item2);params" to w.
func (il *InnerList) RenderTo(w io.Writer) (num int, err error) {
	if il == nil {
		return 0, errtrace.Wrap(newInvalidArgErr("inner list must not be nil"))
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteByte('(') //nolint:errcheck
	for i, it := range il.Items {
		if i > 0 {
			cw.WriteByte(' ') //nolint:errcheck
		}
		cw.Call(it.RenderTo)
	}
	cw.WriteByte(')') //nolint:errcheck
	cw.Call(il.Params.RenderTo)
	return errtrace.Wrap2(cw.Result())
}

func (il *InnerList) Render() string { return render(il) }

func (il *InnerList) String() string { return il.Render() }

// Clone returns a deep copy of the list.
func (il *InnerList) Clone() *InnerList {
	if il == nil {
		return nil
	}
	il2 := &InnerList{Params: il.Params.Clone()}
	if il.Items != nil {
		il2.Items = make([]*Item, len(il.Items))
		for i := range il.Items {
			il2.Items[i] = il.Items[i].Clone()
		}
	}
	return il2
}

func (il *InnerList) cloneMember() Member { return il.Clone() }

// Equal compares the list with another *[InnerList] or [InnerList].
func (il *InnerList) Equal(val any) bool {
	var other *InnerList
	switch v := val.(type) {
	case InnerList:
		other = &v
	case *InnerList:
		other = v
	default:
		return false
	}

	if il == other {
		return true
	} else if il == nil || other == nil {
		return false
	}

	if len(il.Items) != len(other.Items) {
		return false
	}
	for i := range il.Items {
		if !il.Items[i].Equal(other.Items[i]) {
			return false
		}
	}
	return il.Params.Equal(other.Params)
}
