package rewriting

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testOracle orders protocols by their position in order; unknown
// protocols panic like the real graph does.
type testOracle struct {
	order []string
}

func (o testOracle) ProtocolOrder(proto string) int {
	i := slices.Index(o.order, proto)
	if i < 0 {
		panic("unknown protocol " + proto)
	}
	return i
}

func (o testOracle) Inherits(p, q string) bool {
	return p == q
}

var oraclePQ = testOracle{order: []string{"P", "Q"}}

func TestAtomKindOrder(t *testing.T) {
	oracle := oraclePQ
	ascending := []Atom{
		ProtocolAtom("P"),
		AssociatedTypeAtom([]string{"P"}, "A"),
		GenericParamAtom(0, 0),
		NameAtom("A"),
		LayoutAtom(Layout{Kind: LayoutAnyObject}),
	}
	for i, smaller := range ascending {
		for _, larger := range ascending[i+1:] {
			assert.Negative(t, smaller.Compare(larger, oracle), "%s < %s", smaller, larger)
			assert.Positive(t, larger.Compare(smaller, oracle), "%s > %s", larger, smaller)
		}
		assert.Zero(t, smaller.Compare(smaller, oracle), "%s == %s", smaller, smaller)
	}
}

func TestAtomCompareWithinKind(t *testing.T) {
	oracle := oraclePQ
	testCases := []struct {
		smaller, larger Atom
	}{
		{ProtocolAtom("P"), ProtocolAtom("Q")},
		{AssociatedTypeAtom([]string{"P"}, "A"), AssociatedTypeAtom([]string{"Q"}, "A")},
		{AssociatedTypeAtom([]string{"P"}, "A"), AssociatedTypeAtom([]string{"P"}, "B")},
		{AssociatedTypeAtom([]string{"P"}, "A"), AssociatedTypeAtom([]string{"P", "Q"}, "A")},
		{GenericParamAtom(0, 0), GenericParamAtom(0, 1)},
		{GenericParamAtom(0, 1), GenericParamAtom(1, 0)},
		{NameAtom("A"), NameAtom("B")},
		{LayoutAtom(Layout{Kind: LayoutAnyObject}), LayoutAtom(Layout{Kind: LayoutTrivial})},
		{LayoutAtom(Layout{Kind: LayoutTrivialOfExactSize, Size: 32}), LayoutAtom(Layout{Kind: LayoutTrivialOfExactSize, Size: 64})},
	}
	for _, testCase := range testCases {
		t.Run(testCase.smaller.String()+"<"+testCase.larger.String(), func(t *testing.T) {
			assert.Negative(t, testCase.smaller.Compare(testCase.larger, oracle))
			assert.Positive(t, testCase.larger.Compare(testCase.smaller, oracle))
		})
	}
}

func TestAtomEquality(t *testing.T) {
	testCases := []struct {
		left, right Atom
		equal       bool
	}{
		{NameAtom("A"), NameAtom("A"), true},
		{NameAtom("A"), NameAtom("B"), false},
		{ProtocolAtom("P"), ProtocolAtom("P"), true},
		{ProtocolAtom("P"), AssociatedTypeAtom([]string{"P"}, "P"), false},
		{AssociatedTypeAtom([]string{"P", "Q"}, "A"), AssociatedTypeAtom([]string{"P", "Q"}, "A"), true},
		{AssociatedTypeAtom([]string{"P", "Q"}, "A"), AssociatedTypeAtom([]string{"Q", "P"}, "A"), false},
		{GenericParamAtom(1, 2), GenericParamAtom(1, 2), true},
		{GenericParamAtom(1, 2), GenericParamAtom(2, 1), false},
		{LayoutAtom(Layout{Kind: LayoutAnyObject}), LayoutAtom(Layout{Kind: LayoutAnyObject}), true},
		{LayoutAtom(Layout{Kind: LayoutAnyObject}), LayoutAtom(Layout{Kind: LayoutClass}), false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.left.String()+"="+testCase.right.String(), func(t *testing.T) {
			assert.Equal(t, testCase.equal, testCase.left.Equal(testCase.right))
			assert.Equal(t, testCase.equal, testCase.right.Equal(testCase.left))
			if testCase.equal {
				assert.Equal(t, testCase.left.Hash(), testCase.right.Hash())
				assert.Zero(t, testCase.left.Compare(testCase.right, oraclePQ))
			} else {
				assert.NotZero(t, testCase.left.Compare(testCase.right, oraclePQ))
			}
		})
	}
}

func TestAtomConstructorInvariants(t *testing.T) {
	assert.Panics(t, func() { NameAtom("") })
	assert.Panics(t, func() { ProtocolAtom("") })
	assert.Panics(t, func() { AssociatedTypeAtom(nil, "A") })
	assert.Panics(t, func() { AssociatedTypeAtom([]string{"P"}, "") })
	assert.Panics(t, func() { GenericParamAtom(-1, 0) })
	assert.Panics(t, func() { LayoutAtom(Layout{Kind: layoutKindCount}) })
	assert.Panics(t, func() { LayoutAtom(Layout{Kind: LayoutTrivialOfExactSize}) })
	assert.Panics(t, func() { LayoutAtom(Layout{Kind: LayoutAnyObject, Size: 8}) })
}

func TestAtomAccessorVariants(t *testing.T) {
	assert.Equal(t, "A", NameAtom("A").Name())
	assert.Equal(t, "A", AssociatedTypeAtom([]string{"P"}, "A").Name())
	assert.Equal(t, "P", ProtocolAtom("P").Protocol())
	assert.Equal(t, []string{"P", "Q"}, AssociatedTypeAtom([]string{"P", "Q"}, "A").Protocols())
	assert.Equal(t, GenericParam{Depth: 1, Index: 3}, GenericParamAtom(1, 3).GenericParam())
	assert.Equal(t, Layout{Kind: LayoutTrivial}, LayoutAtom(Layout{Kind: LayoutTrivial}).Layout())

	assert.Panics(t, func() { ProtocolAtom("P").Name() })
	assert.Panics(t, func() { NameAtom("A").Protocol() })
	assert.Panics(t, func() { GenericParamAtom(0, 0).Protocols() })
	assert.Panics(t, func() { NameAtom("A").GenericParam() })
	assert.Panics(t, func() { NameAtom("A").Layout() })
}

func TestAtomString(t *testing.T) {
	testCases := []struct {
		atom     Atom
		expected string
	}{
		{ProtocolAtom("P"), "[P]"},
		{AssociatedTypeAtom([]string{"P"}, "A"), "[P:A]"},
		{AssociatedTypeAtom([]string{"P", "Q"}, "A"), "[P&Q:A]"},
		{GenericParamAtom(0, 1), "τ_0_1"},
		{NameAtom("Element"), "Element"},
		{LayoutAtom(Layout{Kind: LayoutAnyObject}), "[AnyObject]"},
		{LayoutAtom(Layout{Kind: LayoutTrivialOfExactSize, Size: 64}), "[Trivial(64)]"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, testCase.atom.String())
	}
}
