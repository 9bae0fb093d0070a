package rewriting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nameTerm(names ...string) Term {
	term := NewTerm()
	for _, name := range names {
		term.Append(NameAtom(name))
	}
	return term
}

func TestTermFindSubterm(t *testing.T) {
	testCases := []struct {
		haystack, needle Term
		expected         int
	}{
		{nameTerm("a", "b", "c"), nameTerm("a"), 0},
		{nameTerm("a", "b", "c"), nameTerm("b", "c"), 1},
		{nameTerm("a", "b", "c"), nameTerm("a", "b", "c"), 0},
		{nameTerm("a", "b", "a", "b"), nameTerm("a", "b"), 0},
		{nameTerm("a", "b", "c"), nameTerm("c", "a"), -1},
		{nameTerm("a"), nameTerm("a", "b"), -1},
	}
	for _, testCase := range testCases {
		t.Run(testCase.haystack.String()+"/"+testCase.needle.String(), func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.haystack.FindSubterm(testCase.needle))
			assert.Equal(t, testCase.expected >= 0, testCase.haystack.ContainsSubterm(testCase.needle))
		})
	}
}

func TestTermRewriteSubtermFirstOccurrenceOnly(t *testing.T) {
	term := nameTerm("a", "b", "a", "b")
	changed := term.RewriteSubterm(nameTerm("a", "b"), nameTerm("c"))
	require.True(t, changed)
	assert.True(t, term.Equal(nameTerm("c", "a", "b")), "got %s", term)

	changed = term.RewriteSubterm(nameTerm("a", "b"), nameTerm("c"))
	require.True(t, changed)
	assert.True(t, term.Equal(nameTerm("c", "c")), "got %s", term)

	assert.False(t, term.RewriteSubterm(nameTerm("a", "b"), nameTerm("c")))
}

func TestTermRewriteSubtermGrowsAndShrinks(t *testing.T) {
	term := nameTerm("a", "b", "c")
	require.True(t, term.RewriteSubterm(nameTerm("b"), nameTerm("x", "y")))
	assert.True(t, term.Equal(nameTerm("a", "x", "y", "c")), "got %s", term)

	require.True(t, term.RewriteSubterm(nameTerm("a", "x", "y"), nameTerm("z")))
	assert.True(t, term.Equal(nameTerm("z", "c")), "got %s", term)
}

func TestTermOverlaps(t *testing.T) {
	testCases := []struct {
		name          string
		left, right   Term
		superposition Term
		overlaps      bool
	}{{
		name:          "inclusion",
		left:          nameTerm("a", "b", "c"),
		right:         nameTerm("b"),
		superposition: nameTerm("a", "b", "c"),
		overlaps:      true,
	}, {
		name:          "proper suffix-prefix",
		left:          nameTerm("a", "b"),
		right:         nameTerm("b", "c"),
		superposition: nameTerm("a", "b", "c"),
		overlaps:      true,
	}, {
		name:          "single atom seam",
		left:          nameTerm("x", "a"),
		right:         nameTerm("a", "y", "z"),
		superposition: nameTerm("x", "a", "y", "z"),
		overlaps:      true,
	}, {
		name:          "identical terms",
		left:          nameTerm("a", "b"),
		right:         nameTerm("a", "b"),
		superposition: nameTerm("a", "b"),
		overlaps:      true,
	}, {
		name:     "disjoint",
		left:     nameTerm("a", "b"),
		right:    nameTerm("c", "d"),
		overlaps: false,
	}, {
		name:     "wrong direction",
		left:     nameTerm("b", "c"),
		right:    nameTerm("a", "b"),
		overlaps: false,
	}}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			superposition, ok := testCase.left.OverlapsWith(testCase.right)
			require.Equal(t, testCase.overlaps, ok)
			if ok {
				assert.True(t, testCase.superposition.Equal(superposition),
					"expected %s, got %s", testCase.superposition, superposition)
			}
		})
	}
}

func TestTermCompareShortlex(t *testing.T) {
	oracle := oraclePQ
	shorter := NewTerm(NameAtom("z"))
	longer := NewTerm(NameAtom("a"), NameAtom("a"))
	assert.Negative(t, shorter.Compare(longer, oracle), "length dominates")

	left := NewTerm(NameAtom("a"), NameAtom("b"))
	right := NewTerm(NameAtom("a"), NameAtom("c"))
	assert.Negative(t, left.Compare(right, oracle))
	assert.Positive(t, right.Compare(left, oracle))
	assert.Zero(t, left.Compare(left.Copy(), oracle))
}

func TestTermCompareMonotoneUnderJuxtaposition(t *testing.T) {
	// shortlex survives wrapping both sides in the same context
	oracle := oraclePQ
	smaller := NewTerm(ProtocolAtom("P"))
	larger := NewTerm(ProtocolAtom("Q"))
	prefix := NewTerm(GenericParamAtom(0, 0))
	suffix := NewTerm(NameAtom("A"))

	wrappedSmaller := prefix.Concat(smaller).Concat(suffix)
	wrappedLarger := prefix.Concat(larger).Concat(suffix)
	assert.Negative(t, smaller.Compare(larger, oracle))
	assert.Negative(t, wrappedSmaller.Compare(wrappedLarger, oracle))
}

func TestTermCopyIsExclusive(t *testing.T) {
	original := nameTerm("a", "b")
	copied := original.Copy()
	copied.Append(NameAtom("c"))
	assert.Equal(t, 2, original.Len())
	assert.Equal(t, 3, copied.Len())
}

func TestTermEqualityConsistentWithHash(t *testing.T) {
	left := NewTerm(GenericParamAtom(0, 0), AssociatedTypeAtom([]string{"P"}, "A"))
	right := NewTerm(GenericParamAtom(0, 0), AssociatedTypeAtom([]string{"P"}, "A"))
	assert.True(t, left.Equal(right))
	assert.Equal(t, left.Hash(), right.Hash())

	different := NewTerm(GenericParamAtom(0, 0), AssociatedTypeAtom([]string{"Q"}, "A"))
	assert.False(t, left.Equal(different))
}

func TestTermString(t *testing.T) {
	term := NewTerm(
		GenericParamAtom(0, 0),
		ProtocolAtom("P"),
		AssociatedTypeAtom([]string{"P"}, "A"),
		NameAtom("Element"),
	)
	assert.Equal(t, "τ_0_0.[P].[P:A].Element", term.String())
}
