// Package signature models generic signatures — parameters plus
// requirements over them — and lowers requirements to the initial rewrite
// rules the term rewriting engine completes.
package signature

import (
	"fmt"

	"github.com/cottand/genrew/protograph"
	"github.com/cottand/genrew/rewriting"
)

// Requirement is one generic requirement over the signature's parameters.
type Requirement interface {
	fmt.Stringer
	requirement()
}

var (
	_ Requirement = Conformance{}
	_ Requirement = SameType{}
	_ Requirement = LayoutRequirement{}
)

// Conformance is `T : P` for a subject type path and a protocol.
type Conformance struct {
	Subject  TypePath
	Protocol string
}

func (Conformance) requirement() {}
func (r Conformance) String() string {
	return r.Subject.String() + " : " + r.Protocol
}

// SameType is `T.X == U.Y` between two type paths.
type SameType struct {
	Left  TypePath
	Right TypePath
}

func (SameType) requirement() {}
func (r SameType) String() string {
	return r.Left.String() + " == " + r.Right.String()
}

// LayoutRequirement is `T : L` for a layout constraint L.
type LayoutRequirement struct {
	Subject TypePath
	Layout  rewriting.Layout
}

func (LayoutRequirement) requirement() {}
func (r LayoutRequirement) String() string {
	return r.Subject.String() + " : " + r.Layout.String()
}

// Signature is a generic signature: parameters at depth 0, requirements
// over them, and the protocol graph the requirements draw from.
type Signature struct {
	Params       []string
	Requirements []Requirement
	Graph        *protograph.Graph
}
