package signature

import (
	"strconv"
	"strings"

	"github.com/cottand/genrew/rewriting"
	"github.com/cottand/genrew/util"
	"github.com/pkg/errors"
)

// Label is one member step in a type path. Protocol is the optional
// explicit qualifier, as in "P:Element"; unqualified labels lower to
// unresolved name atoms and are resolved during completion.
type Label struct {
	Protocol string
	Name     string
}

func (l Label) String() string {
	if l.Protocol == "" {
		return l.Name
	}
	return l.Protocol + ":" + l.Name
}

// TypePath is a dotted member path rooted at a generic parameter, the
// textual form of a term: "T.Element.Index" or "T.P:Element".
type TypePath struct {
	Param  string
	Labels []Label
}

func (p TypePath) String() string {
	var sb strings.Builder
	sb.WriteString(p.Param)
	for _, label := range p.Labels {
		sb.WriteByte('.')
		sb.WriteString(label.String())
	}
	return sb.String()
}

// ParseTypePath parses the dotted form: a parameter name followed by
// member labels, each optionally protocol qualified.
func ParseTypePath(s string) (TypePath, error) {
	if s == "" {
		return TypePath{}, errors.New("empty type path")
	}
	segments := strings.Split(s, ".")
	path := TypePath{Param: segments[0]}
	if path.Param == "" {
		return TypePath{}, errors.Errorf("type path %q has no parameter", s)
	}
	for _, segment := range segments[1:] {
		head, tail := util.StringTakeUntil(segment, ':')
		label := Label{Name: head}
		if tail != "" {
			label = Label{Protocol: head, Name: tail}
		}
		if label.Name == "" || (strings.ContainsRune(segment, ':') && label.Protocol == "") {
			return TypePath{}, errors.Errorf("malformed label %q in type path %q", segment, s)
		}
		path.Labels = append(path.Labels, label)
	}
	return path, nil
}

// ParseLayout parses the textual form of a layout constraint: a bare kind
// name, or a sized trivial kind such as "Trivial(64)".
func ParseLayout(s string) (rewriting.Layout, error) {
	head, tail := util.StringTakeUntil(s, '(')
	if strings.ContainsRune(s, '(') && tail == "" {
		return rewriting.Layout{}, errors.Errorf("malformed layout %q", s)
	}
	var size int
	if tail != "" {
		digits, rest := util.StringTakeUntil(tail, ')')
		if rest != "" || digits == "" {
			return rewriting.Layout{}, errors.Errorf("malformed layout %q", s)
		}
		parsed, err := strconv.Atoi(digits)
		if err != nil || parsed <= 0 {
			return rewriting.Layout{}, errors.Errorf("malformed layout size in %q", s)
		}
		size = parsed
	}
	switch {
	case head == "AnyObject" && size == 0:
		return rewriting.Layout{Kind: rewriting.LayoutAnyObject}, nil
	case head == "Class" && size == 0:
		return rewriting.Layout{Kind: rewriting.LayoutClass}, nil
	case head == "NativeClass" && size == 0:
		return rewriting.Layout{Kind: rewriting.LayoutNativeClass}, nil
	case head == "Trivial" && size == 0:
		return rewriting.Layout{Kind: rewriting.LayoutTrivial}, nil
	case head == "Trivial" && size > 0:
		return rewriting.Layout{Kind: rewriting.LayoutTrivialOfExactSize, Size: size}, nil
	case head == "TrivialAtMost" && size > 0:
		return rewriting.Layout{Kind: rewriting.LayoutTrivialOfAtMostSize, Size: size}, nil
	}
	return rewriting.Layout{}, errors.Errorf("unknown layout %q", s)
}
