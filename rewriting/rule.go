package rewriting

// Rule is an oriented rewrite lhs → rhs. The System keeps the invariant
// lhs > rhs under the shortlex order for every rule it stores, so applying
// a rule always strictly decreases a term.
//
// Rules are never removed from a System, only tombstoned, so that worklist
// indices stay stable. A deleted rule is never applied and never
// participates in overlap detection.
type Rule struct {
	lhs     Term
	rhs     Term
	deleted bool
}

func NewRule(lhs, rhs Term) Rule {
	if lhs.Len() == 0 || rhs.Len() == 0 {
		panic("rewrite rule with an empty side")
	}
	return Rule{lhs: lhs, rhs: rhs}
}

func (r Rule) LHS() Term { return r.lhs }
func (r Rule) RHS() Term { return r.rhs }

// Apply rewrites the leftmost occurrence of the rule's LHS inside term,
// reporting whether the rule fired.
func (r Rule) Apply(term *Term) bool {
	if r.deleted {
		panic("applied a deleted rewrite rule")
	}
	return term.RewriteSubterm(r.lhs, r.rhs)
}

// OverlapsWith reports a critical overlap between the two rules' left-hand
// sides; the returned superposition is reducible by both rules.
func (r Rule) OverlapsWith(other Rule) (Term, bool) {
	return r.lhs.OverlapsWith(other.lhs)
}

// CanReduceLeftHandSide reports whether other's LHS occurs inside this
// rule's LHS, meaning this rule's LHS is not in normal form and the rule is
// redundant as stored.
func (r Rule) CanReduceLeftHandSide(other Rule) bool {
	return r.lhs.ContainsSubterm(other.lhs)
}

// Depth is the completion depth bound of the rule: the length of its LHS.
func (r Rule) Depth() int { return r.lhs.Len() }

func (r Rule) IsDeleted() bool { return r.deleted }

func (r *Rule) MarkDeleted() {
	if r.deleted {
		panic("rewrite rule deleted twice")
	}
	r.deleted = true
}

// replaceRHS swaps in a further-simplified right-hand side. Simplification
// only ever decreases the RHS under shortlex, so orientation is preserved.
func (r *Rule) replaceRHS(rhs Term) {
	r.rhs = rhs
}

func (r Rule) Compare(other Rule, oracle ProtocolOracle) int {
	return r.lhs.Compare(other.lhs, oracle)
}

func (r Rule) String() string {
	s := r.lhs.String() + " => " + r.rhs.String()
	if r.deleted {
		s += " [deleted]"
	}
	return s
}
