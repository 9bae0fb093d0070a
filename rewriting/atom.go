package rewriting

import (
	"cmp"
	"fmt"
	"hash/fnv"
	"slices"
	"strings"
)

// ProtocolOracle is the engine's only window into protocol declarations:
// a total order (stable for the lifetime of the oracle) used to break ties
// between atoms, and the inheritance relation. The oracle is borrowed; it
// must outlive every System holding it.
type ProtocolOracle interface {
	ProtocolOrder(proto string) int
	// Inherits reports whether p is a non-strict refinement of q.
	Inherits(p, q string) bool
}

// AtomKind discriminates the five atom variants. Declaration order is
// comparison order: protocol atoms sort first so that conformance prefixes
// reduce earliest.
type AtomKind uint8

const (
	KindProtocol AtomKind = iota
	KindAssociatedType
	KindGenericParam
	KindName
	KindLayout
)

func (k AtomKind) String() string {
	switch k {
	case KindProtocol:
		return "protocol"
	case KindAssociatedType:
		return "associated type"
	case KindGenericParam:
		return "generic param"
	case KindName:
		return "name"
	case KindLayout:
		return "layout"
	default:
		return "invalid"
	}
}

// GenericParam identifies a canonical generic parameter by position.
type GenericParam struct {
	Depth int
	Index int
}

func (p GenericParam) String() string {
	return fmt.Sprintf("τ_%d_%d", p.Depth, p.Index)
}

// Atom is one symbol of a rewrite term. Exactly one of five variants,
// discriminated by Kind:
//
//   - a protocol conformance symbol [P]
//   - a resolved associated type [P:A], carrying every protocol the
//     associated type is visible through (never empty)
//   - a canonical generic parameter τ_d_i
//   - an unresolved member name
//   - a layout constraint
//
// Atoms are immutable values and cheap to copy; the protocol list of the
// common single-protocol case is the only allocation they carry.
type Atom struct {
	kind   AtomKind
	name   string
	protos []string
	param  GenericParam
	layout Layout
}

func NameAtom(name string) Atom {
	if name == "" {
		panic("name atom with empty identifier")
	}
	return Atom{kind: KindName, name: name}
}

func ProtocolAtom(proto string) Atom {
	if proto == "" {
		panic("protocol atom with empty protocol")
	}
	return Atom{kind: KindProtocol, protos: []string{proto}}
}

func AssociatedTypeAtom(protos []string, name string) Atom {
	if len(protos) == 0 {
		panic("associated type atom with no protocols")
	}
	if name == "" {
		panic("associated type atom with empty identifier")
	}
	return Atom{kind: KindAssociatedType, protos: slices.Clone(protos), name: name}
}

func GenericParamAtom(depth, index int) Atom {
	if depth < 0 || index < 0 {
		panic(fmt.Sprintf("generic param atom (%d, %d) is not canonical", depth, index))
	}
	return Atom{kind: KindGenericParam, param: GenericParam{Depth: depth, Index: index}}
}

func LayoutAtom(layout Layout) Atom {
	if !layout.known() {
		panic(fmt.Sprintf("layout atom with unknown layout %d", layout.Kind))
	}
	return Atom{kind: KindLayout, layout: layout}
}

func (a Atom) Kind() AtomKind { return a.kind }

// Name returns the identifier of a name or associated type atom.
func (a Atom) Name() string {
	if a.kind != KindName && a.kind != KindAssociatedType {
		panic(fmt.Sprintf("Name() on %s atom", a.kind))
	}
	return a.name
}

// Protocol returns the single protocol of a protocol atom.
func (a Atom) Protocol() string {
	if a.kind != KindProtocol {
		panic(fmt.Sprintf("Protocol() on %s atom", a.kind))
	}
	return a.protos[0]
}

// Protocols returns the protocol list of a protocol or associated type atom.
// The returned slice must not be mutated.
func (a Atom) Protocols() []string {
	if a.kind != KindProtocol && a.kind != KindAssociatedType {
		panic(fmt.Sprintf("Protocols() on %s atom", a.kind))
	}
	return a.protos
}

func (a Atom) GenericParam() GenericParam {
	if a.kind != KindGenericParam {
		panic(fmt.Sprintf("GenericParam() on %s atom", a.kind))
	}
	return a.param
}

func (a Atom) Layout() Layout {
	if a.kind != KindLayout {
		panic(fmt.Sprintf("Layout() on %s atom", a.kind))
	}
	return a.layout
}

func (a Atom) Equal(other Atom) bool {
	return a.kind == other.kind &&
		a.name == other.name &&
		slices.Equal(a.protos, other.protos) &&
		a.param == other.param &&
		a.layout == other.layout
}

func (a Atom) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte{byte(a.kind)})
	_, _ = h.Write([]byte(a.name))
	for _, proto := range a.protos {
		_, _ = h.Write([]byte(proto))
		_, _ = h.Write([]byte{0})
	}
	hash := h.Sum64()
	hash = hash*31 + uint64(a.param.Depth)
	hash = hash*37 + uint64(a.param.Index)
	hash = hash*41 + uint64(a.layout.Kind)
	hash = hash*43 + uint64(a.layout.Size)
	return hash
}

// Compare is the total order on atoms, the tiebreak of the shortlex term
// order. Atoms of different kinds compare by kind; within a kind:
//
//   - protocols by the oracle's protocol order
//   - associated types lexicographically by protocol list (oracle order),
//     then by identifier
//   - generic params by (depth, index)
//   - names by identifier
//   - layouts by the fixed enumeration order
func (a Atom) Compare(other Atom, oracle ProtocolOracle) int {
	if a.kind != other.kind {
		return cmp.Compare(a.kind, other.kind)
	}
	switch a.kind {
	case KindProtocol:
		return cmp.Compare(oracle.ProtocolOrder(a.protos[0]), oracle.ProtocolOrder(other.protos[0]))
	case KindAssociatedType:
		if c := slices.CompareFunc(a.protos, other.protos, func(p, q string) int {
			return cmp.Compare(oracle.ProtocolOrder(p), oracle.ProtocolOrder(q))
		}); c != 0 {
			return c
		}
		return strings.Compare(a.name, other.name)
	case KindGenericParam:
		if c := cmp.Compare(a.param.Depth, other.param.Depth); c != 0 {
			return c
		}
		return cmp.Compare(a.param.Index, other.param.Index)
	case KindName:
		return strings.Compare(a.name, other.name)
	case KindLayout:
		return a.layout.compare(other.layout)
	}
	panic(fmt.Sprintf("unhandled atom kind %d", a.kind))
}

func (a Atom) String() string {
	switch a.kind {
	case KindProtocol:
		return "[" + a.protos[0] + "]"
	case KindAssociatedType:
		return "[" + strings.Join(a.protos, "&") + ":" + a.name + "]"
	case KindGenericParam:
		return a.param.String()
	case KindName:
		return a.name
	case KindLayout:
		return "[" + a.layout.String() + "]"
	default:
		return "<invalid atom>"
	}
}
