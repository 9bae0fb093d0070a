package rewriting

import (
	"cmp"
	"iter"
	"slices"
	"strings"

	"github.com/cottand/genrew/util"
)

// Term is a finite ordered sequence of atoms, read left to right as a path
// through nested type members: T.Element.Index is
//
//	[τ_0_0, [P:Element], [Q:Index]]
//
// Concatenation is juxtaposition; there are no algebraic identities. A term
// owns its atoms exclusively; Copy before sharing.
type Term struct {
	atoms []Atom
}

var _ util.Copyable[Term] = Term{}

func NewTerm(atoms ...Atom) Term {
	return Term{atoms: slices.Clone(atoms)}
}

func (t *Term) Append(atom Atom) {
	t.atoms = append(t.atoms, atom)
}

func (t Term) Len() int { return len(t.atoms) }

func (t Term) At(i int) Atom { return t.atoms[i] }

func (t Term) Atoms() iter.Seq[Atom] {
	return func(yield func(Atom) bool) {
		for _, atom := range t.atoms {
			if !yield(atom) {
				return
			}
		}
	}
}

func (t Term) Copy() Term {
	return Term{atoms: slices.Clone(t.atoms)}
}

func (t Term) Equal(other Term) bool {
	return slices.EqualFunc(t.atoms, other.atoms, Atom.Equal)
}

func (t Term) Hash() uint64 {
	hash := uint64(len(t.atoms))
	for _, atom := range t.atoms {
		hash = hash*31 + atom.Hash()
	}
	return hash
}

// Compare is the shortlex reduction order: shorter terms sort first, and
// equal-length terms compare atom by atom. Shortlex is well founded and
// monotone under juxtaposition, which is what makes every rewrite step
// strictly decreasing.
func (t Term) Compare(other Term, oracle ProtocolOracle) int {
	if c := cmp.Compare(len(t.atoms), len(other.atoms)); c != 0 {
		return c
	}
	for i := range t.atoms {
		if c := t.atoms[i].Compare(other.atoms[i], oracle); c != 0 {
			return c
		}
	}
	return 0
}

// FindSubterm returns the leftmost index at which other occurs inside t,
// or -1 if it does not occur. Terms are short (median well under ten
// atoms), so the naive scan wins over anything cleverer.
func (t Term) FindSubterm(other Term) int {
	if other.Len() == 0 || other.Len() > t.Len() {
		return -1
	}
	for i := 0; i+other.Len() <= t.Len(); i++ {
		if t.matchesAt(other, i, other.Len()) {
			return i
		}
	}
	return -1
}

func (t Term) ContainsSubterm(other Term) bool {
	return t.FindSubterm(other) >= 0
}

func (t Term) matchesAt(other Term, at, n int) bool {
	for k := 0; k < n; k++ {
		if !t.atoms[at+k].Equal(other.atoms[k]) {
			return false
		}
	}
	return true
}

// RewriteSubterm replaces the leftmost occurrence of lhs inside t with rhs,
// in place, reporting whether anything changed. Only one occurrence is
// replaced per call; callers iterate to a fixed point.
func (t *Term) RewriteSubterm(lhs, rhs Term) bool {
	i := t.FindSubterm(lhs)
	if i < 0 {
		return false
	}
	replaced := make([]Atom, 0, t.Len()-lhs.Len()+rhs.Len())
	replaced = append(replaced, t.atoms[:i]...)
	replaced = append(replaced, rhs.atoms...)
	replaced = append(replaced, t.atoms[i+lhs.Len():]...)
	t.atoms = replaced
	return true
}

// OverlapsWith detects a critical overlap between t and other:
//
//   - inclusion: other occurs somewhere inside t, in which case the
//     superposition is t itself;
//   - proper: a non-empty suffix of t equals a non-empty prefix of other,
//     in which case t = u·v and other = v·w and the superposition is u·v·w.
//
// The leftmost overlap wins. The returned superposition is the term both
// rules rewrite when forming a critical pair.
func (t Term) OverlapsWith(other Term) (Term, bool) {
	for i := range t.atoms {
		n := min(t.Len()-i, other.Len())
		if !t.matchesAt(other, i, n) {
			continue
		}
		if i+other.Len() <= t.Len() {
			return t.Copy(), true
		}
		superposition := t.Copy()
		superposition.atoms = append(superposition.atoms, other.atoms[n:]...)
		return superposition, true
	}
	return Term{}, false
}

// Concat returns the juxtaposition t·other as a new term.
func (t Term) Concat(other Term) Term {
	joined := make([]Atom, 0, t.Len()+other.Len())
	joined = append(joined, t.atoms...)
	joined = append(joined, other.atoms...)
	return Term{atoms: joined}
}

func (t Term) String() string {
	if len(t.atoms) == 0 {
		return "ε"
	}
	parts := make([]string, len(t.atoms))
	for i, atom := range t.atoms {
		parts[i] = atom.String()
	}
	return strings.Join(parts, ".")
}
