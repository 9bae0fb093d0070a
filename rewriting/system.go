package rewriting

import (
	"iter"
	"log/slog"

	"github.com/cottand/genrew/internal/log"
)

var logger = log.DefaultLogger.With("section", "rewriting")

// RulePair is an unoriented candidate rule as produced by requirement
// lowering; the System orients it when it is added.
type RulePair struct {
	LHS Term
	RHS Term
}

func (p RulePair) Hash() uint64 {
	return p.LHS.Hash()*31 + p.RHS.Hash()*37
}

// System owns a set of rewrite rules over terms and reduces terms to their
// normal form under those rules. Once initialized it must not be copied:
// the worklist references rules by index.
//
// A System is single threaded. Callers wanting parallelism build one
// System per generic signature.
type System struct {
	rules    []Rule
	worklist []rulePair
	oracle   ProtocolOracle

	initialized bool

	// DebugAdd and DebugSimplify trace rule addition and term
	// simplification through the rewriting log section.
	DebugAdd      bool
	DebugSimplify bool

	logger *slog.Logger
}

// rulePair is an unordered worklist entry (i < j) that has not yet been
// checked for overlaps.
type rulePair struct {
	i, j int
}

func NewSystem() *System {
	return &System{
		logger: logger,
	}
}

// Initialize seeds the system with the lowered requirement rules and the
// protocol oracle. Must be called exactly once, before any other operation.
func (s *System) Initialize(pairs []RulePair, oracle ProtocolOracle) {
	if s.initialized {
		panic("rewrite system initialized twice")
	}
	if oracle == nil {
		panic("rewrite system initialized without a protocol oracle")
	}
	s.oracle = oracle
	s.initialized = true
	for _, pair := range pairs {
		s.AddRule(pair.LHS, pair.RHS)
	}
}

func (s *System) mustBeInitialized() {
	if !s.initialized {
		panic("rewrite system used before Initialize")
	}
}

func (s *System) Oracle() ProtocolOracle {
	s.mustBeInitialized()
	return s.oracle
}

// RuleCount is the number of stored rules, tombstones included. Rule
// indices below RuleCount stay valid for the lifetime of the system.
func (s *System) RuleCount() int { return len(s.rules) }

func (s *System) Rule(i int) Rule { return s.rules[i] }

// Rules iterates over stored rules in index order, tombstones included.
func (s *System) Rules() iter.Seq2[int, Rule] {
	return func(yield func(int, Rule) bool) {
		for i := range s.rules {
			if !yield(i, s.rules[i]) {
				return
			}
		}
	}
}

// AddRule simplifies both sides against the current rule set, orients the
// result under shortlex, and stores it, reporting whether the rule set
// changed. A pair whose sides reduce to the same normal form is trivial
// and dropped.
//
// Adding a rule enqueues overlap checks against every live rule and
// inter-reduces the rule set: older rules whose LHS the new rule rewrites
// are tombstoned and re-added in simplified form, and every remaining RHS
// is brought back to normal form.
func (s *System) AddRule(lhs, rhs Term) bool {
	s.mustBeInitialized()

	s.Simplify(&lhs)
	s.Simplify(&rhs)

	ordering := lhs.Compare(rhs, s.oracle)
	if ordering == 0 {
		if s.DebugAdd {
			s.logger.Debug("dropping trivial rule", "lhs", lhs, "rhs", rhs)
		}
		return false
	}
	if ordering < 0 {
		lhs, rhs = rhs, lhs
	}
	if s.DebugAdd {
		s.logger.Debug("adding rule", "lhs", lhs, "rhs", rhs, "index", len(s.rules))
	}

	added := len(s.rules)
	s.rules = append(s.rules, NewRule(lhs, rhs))
	for j := 0; j < added; j++ {
		if s.rules[j].IsDeleted() {
			continue
		}
		s.worklist = append(s.worklist, rulePair{i: j, j: added})
	}

	s.interReduce(added)
	return true
}

// interReduce restores inter-reduction after rule added arrived: any older
// live rule whose LHS contains the new LHS is no longer in normal form, so
// it is retired and its sides re-enter through AddRule; afterwards every
// live RHS is re-simplified in place.
func (s *System) interReduce(added int) {
	for j := 0; j < added; j++ {
		if s.rules[j].IsDeleted() {
			continue
		}
		if !s.rules[j].CanReduceLeftHandSide(s.rules[added]) {
			continue
		}
		lhs := s.rules[j].LHS().Copy()
		rhs := s.rules[j].RHS().Copy()
		s.rules[j].MarkDeleted()
		if s.DebugAdd {
			s.logger.Debug("retired rule for inter-reduction", "index", j, "rule", s.rules[j])
		}
		s.AddRule(lhs, rhs)
	}

	for j := range s.rules {
		if j == added || s.rules[j].IsDeleted() {
			continue
		}
		rhs := s.rules[j].RHS().Copy()
		if s.Simplify(&rhs) {
			s.rules[j].replaceRHS(rhs)
		}
	}
}

// Simplify rewrites term in place to its normal form under the live rule
// set, reporting whether anything changed.
//
// Live rules are scanned in index order and the first rule that fires ends
// the scan; the scan restarts until a full pass fires nothing. Together
// with leftmost matching in RewriteSubterm this makes Simplify a pure
// function of the term and the live rule set. Termination comes from
// shortlex: every step strictly decreases the term.
func (s *System) Simplify(term *Term) bool {
	s.mustBeInitialized()

	changed := false
	for {
		fired := false
		for i := range s.rules {
			if s.rules[i].IsDeleted() {
				continue
			}
			if s.rules[i].Apply(term) {
				if s.DebugSimplify {
					s.logger.Debug("applied rule", "index", i, "rule", s.rules[i], "term", *term)
				}
				fired = true
				changed = true
				break
			}
		}
		if !fired {
			return changed
		}
	}
}
