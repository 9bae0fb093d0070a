// Package protograph precomputes the relation over protocol declarations
// that term rewriting consumes as an oracle: a total order on protocols and
// inheritance closures.
package protograph

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/genrew/internal/log"
	"github.com/cottand/genrew/util"
	goset "github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"
	xset "github.com/xtgo/set"
)

var logger = log.DefaultLogger.With("section", "protograph")

// Decl is a protocol declaration: its name, the protocols it directly
// refines, and the associated type names it declares.
type Decl struct {
	Name            string
	Inherits        []string
	AssociatedTypes []string
}

// Graph is the precomputed protocol relation. It is immutable once built
// and safe to share across rewrite systems.
type Graph struct {
	decls    map[string]Decl
	order    map[string]int
	ordered  []string
	closures map[string]closureInfo
}

type closureInfo struct {
	// closure names sorted lexicographically, the declared protocol
	// included
	sorted  []string
	members immutable.Set[string]
}

// New validates the declarations and precomputes inheritance closures and
// the protocol order. The order sorts by closure size then name, so base
// protocols come before their refinements; that is the direction the atom
// order needs for conformance prefixes to reduce towards base protocols.
func New(decls []Decl) (*Graph, error) {
	g := &Graph{
		decls:    make(map[string]Decl, len(decls)),
		order:    make(map[string]int, len(decls)),
		closures: make(map[string]closureInfo, len(decls)),
	}
	for _, decl := range decls {
		if decl.Name == "" {
			return nil, errors.New("protocol declaration with empty name")
		}
		if _, dup := g.decls[decl.Name]; dup {
			return nil, errors.Errorf("protocol %s declared twice", decl.Name)
		}
		g.decls[decl.Name] = decl
	}
	for _, decl := range g.decls {
		for _, parent := range decl.Inherits {
			if _, ok := g.decls[parent]; !ok {
				return nil, errors.Errorf("protocol %s inherits unknown protocol %s", decl.Name, parent)
			}
		}
	}

	inProgress := goset.New[string](len(decls))
	for _, decl := range decls {
		if _, err := g.closureOf(decl.Name, inProgress); err != nil {
			return nil, err
		}
	}

	g.ordered = make([]string, 0, len(g.decls))
	for name := range g.decls {
		g.ordered = append(g.ordered, name)
	}
	slices.SortFunc(g.ordered, func(p, q string) int {
		if c := len(g.closures[p].sorted) - len(g.closures[q].sorted); c != 0 {
			return c
		}
		return strings.Compare(p, q)
	})
	for i, name := range g.ordered {
		g.order[name] = i
	}

	logger.Debug("built protocol graph", "protocols", len(g.ordered))
	return g, nil
}

func (g *Graph) closureOf(name string, inProgress *goset.Set[string]) ([]string, error) {
	if cl, ok := g.closures[name]; ok {
		return cl.sorted, nil
	}
	if !inProgress.Insert(name) {
		return nil, errors.Errorf("inheritance cycle through protocol %s", name)
	}
	sorted := []string{name}
	for _, parent := range g.decls[name].Inherits {
		parentClosure, err := g.closureOf(parent, inProgress)
		if err != nil {
			return nil, err
		}
		sorted = unionSorted(sorted, parentClosure)
	}
	inProgress.Remove(name)
	g.closures[name] = closureInfo{
		sorted:  sorted,
		members: immutable.NewSet[string](nil, sorted...),
	}
	return sorted, nil
}

// unionSorted merges two ascending string slices into one, dropping
// duplicates.
func unionSorted(a, b []string) []string {
	merged := make([]string, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	n := xset.Union(sort.StringSlice(merged), len(a))
	return merged[:n]
}

func (g *Graph) Known(proto string) bool {
	_, ok := g.decls[proto]
	return ok
}

// Protocols lists every protocol in protocol order.
func (g *Graph) Protocols() []string {
	return slices.Clone(g.ordered)
}

// ProtocolOrder is the oracle order: a total order stable for the lifetime
// of the graph. Asking about an unknown protocol is a programmer error.
func (g *Graph) ProtocolOrder(proto string) int {
	position, ok := g.order[proto]
	if !ok {
		panic(fmt.Sprintf("protocol order of unknown protocol %s", proto))
	}
	return position
}

// Inherits reports whether p is a non-strict refinement of q.
func (g *Graph) Inherits(p, q string) bool {
	cl, ok := g.closures[p]
	if !ok {
		panic(fmt.Sprintf("inheritance query for unknown protocol %s", p))
	}
	return cl.members.Has(q)
}

// InheritanceClosure lists p and everything p refines, in protocol order.
func (g *Graph) InheritanceClosure(proto string) []string {
	cl, ok := g.closures[proto]
	if !ok {
		panic(fmt.Sprintf("inheritance closure of unknown protocol %s", proto))
	}
	closure := slices.Clone(cl.sorted)
	g.sortByOrder(closure)
	return closure
}

// VisibleAssociatedTypes lists the associated type names declared anywhere
// in proto's inheritance closure, sorted.
func (g *Graph) VisibleAssociatedTypes(proto string) []string {
	cl, ok := g.closures[proto]
	if !ok {
		panic(fmt.Sprintf("associated types of unknown protocol %s", proto))
	}
	names := util.NewEmptySet[string]()
	for _, member := range cl.sorted {
		names.Add(g.decls[member].AssociatedTypes...)
	}
	visible := names.AsSlice()
	slices.Sort(visible)
	return visible
}

// AssociatedTypeProtocols is the protocol list an associated type atom
// carries when name is referenced through proto: every protocol whose
// closure reaches a declarer of name visible in proto's closure. The list
// includes every refinement of the declaring protocol, so the same
// associated type names the same atom whichever protocol it is reached
// through. Sorted by protocol order; empty when name is not visible in
// proto's closure.
func (g *Graph) AssociatedTypeProtocols(proto, name string) []string {
	cl, ok := g.closures[proto]
	if !ok {
		panic(fmt.Sprintf("associated types of unknown protocol %s", proto))
	}
	declarers := util.NewEmptySet[string]()
	for _, member := range cl.sorted {
		if slices.Contains(g.decls[member].AssociatedTypes, name) {
			declarers.Add(member)
		}
	}
	if declarers.Len() == 0 {
		return nil
	}
	carriers := util.NewEmptySet[string]()
	for other := range g.decls {
		for declarer := range declarers.All() {
			if g.closures[other].members.Has(declarer) {
				carriers.Add(other)
				break
			}
		}
	}
	protos := carriers.AsSlice()
	g.sortByOrder(protos)
	return protos
}

func (g *Graph) sortByOrder(protos []string) {
	slices.SortFunc(protos, func(p, q string) int {
		return g.order[p] - g.order[q]
	})
}
