package sfv

import (
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sfv/internal/errorutil"
	"github.com/ghettovoice/sfv/internal/ioutil"
)

// List is an ordered sequence of members, each an *[Item] or an *[InnerList].
type List []Member

// Validate checks every member.
func (l List) Validate() error {
	var errs []error
	for i, m := range l {
		if err := validateMember(m); err != nil {
			errs = append(errs, errorutil.JoinPrefix("member "+strconv.Itoa(i), err))
		}
	}
	return errtrace.Wrap(errorutil.Join(errs...))
}

func (l List) IsValid() bool { return l.Validate() == nil }

// RenderTo writes members separated by ", ".
// An empty list renders nothing.
func (l List) RenderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for i, m := range l {
		if i > 0 {
			cw.WriteString(", ") //nolint:errcheck
		}
		cw.Fail(validateMember(m))
		if cw.Err() != nil {
			break
		}
		cw.Call(m.RenderTo)
	}
	return errtrace.Wrap2(cw.Result())
}

func (l List) Render() string { return render(l) }

func (l List) String() string { return l.Render() }

// Clone returns a deep copy of the list.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	l2 := make(List, len(l))
	for i, m := range l {
		l2[i] = cloneMember(m)
	}
	return l2
}

// Equal compares the list with another [List] or *[List] member by member.
func (l List) Equal(val any) bool {
	var other List
	switch v := val.(type) {
	case List:
		other = v
	case *List:
		if v != nil {
			other = *v
		}
	default:
		return false
	}

	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if !equalMembers(l[i], other[i]) {
			return false
		}
	}
	return true
}

func validateMember(m Member) error {
	if isNilMember(m) {
		return errtrace.Wrap(newInvalidArgErr("member must not be nil"))
	}
	return errtrace.Wrap(m.Validate())
}

func isNilMember(m Member) bool {
	switch m := m.(type) {
	case nil:
		return true
	case *Item:
		return m == nil
	case *InnerList:
		return m == nil
	default:
		return false
	}
}

func cloneMember(m Member) Member {
	if isNilMember(m) {
		return nil
	}
	return m.cloneMember()
}

func equalMembers(m1, m2 Member) bool {
	if isNilMember(m1) || isNilMember(m2) {
		return isNilMember(m1) && isNilMember(m2)
	}
	return m1.Equal(m2)
}
