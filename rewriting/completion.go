package rewriting

import "github.com/cottand/genrew/internal/log"

var completionLogger = log.DefaultLogger.With("section", "completion")

// CompletionResult is the outcome of ComputeConfluentCompletion.
type CompletionResult uint8

const (
	// CompletionSuccess: the worklist drained; the rule set is locally
	// confluent, and with shortlex termination (Newman) confluent, so
	// normal forms are unique.
	CompletionSuccess CompletionResult = iota
	// CompletionMaxIterations: the iteration budget ran out. The rule set
	// is not guaranteed confluent; Simplify remains usable best effort.
	CompletionMaxIterations
	// CompletionMaxDepth: some critical pair produced a rule whose LHS
	// exceeds the depth cap. Usually the signature's word problem needs a
	// bigger budget, or has none that terminates.
	CompletionMaxDepth
)

func (r CompletionResult) String() string {
	switch r {
	case CompletionSuccess:
		return "success"
	case CompletionMaxIterations:
		return "max iterations"
	case CompletionMaxDepth:
		return "max depth"
	default:
		return "invalid"
	}
}

// ComputeConfluentCompletion runs Knuth–Bendix-style critical pair closure
// over the worklist: for every unprocessed pair of rules whose left-hand
// sides overlap, both single-step reducts of the superposition are derived
// and their oriented difference is added as a new rule, until no pair
// remains or a budget runs out.
func (s *System) ComputeConfluentCompletion(maxIterations, maxDepth int) CompletionResult {
	s.mustBeInitialized()

	iterations := 0
	for len(s.worklist) > 0 {
		iterations++
		if iterations > maxIterations {
			completionLogger.Debug("completion ran out of iterations", "maxIterations", maxIterations)
			return CompletionMaxIterations
		}
		pair := s.worklist[0]
		s.worklist = s.worklist[1:]
		if s.rules[pair.i].IsDeleted() || s.rules[pair.j].IsDeleted() {
			continue
		}

		// either LHS may supply the head of the superposition, so the
		// unordered pair is checked in both directions
		if !s.resolveOverlap(pair.i, pair.j, maxDepth) {
			return CompletionMaxDepth
		}
		if !s.resolveOverlap(pair.j, pair.i, maxDepth) {
			return CompletionMaxDepth
		}
	}
	return CompletionSuccess
}

// resolveOverlap closes the critical pair between rules i and j, where rule
// i's LHS supplies the head of the superposition. Reports false if closing
// the pair introduced a rule deeper than maxDepth.
func (s *System) resolveOverlap(i, j, maxDepth int) bool {
	if s.rules[i].IsDeleted() || s.rules[j].IsDeleted() {
		return true
	}
	superposition, ok := s.rules[i].OverlapsWith(s.rules[j])
	if !ok {
		return true
	}

	first := superposition.Copy()
	s.rules[i].Apply(&first)
	second := superposition.Copy()
	s.rules[j].Apply(&second)

	completionLogger.Debug("critical pair",
		"i", i, "j", j,
		"superposition", superposition,
		"first", first, "second", second)

	before := len(s.rules)
	if !s.AddRule(first, second) {
		// both reducts share a normal form: locally confluent here
		return true
	}
	for added := before; added < len(s.rules); added++ {
		if s.rules[added].Depth() > maxDepth {
			completionLogger.Debug("completion exceeded depth bound",
				"rule", s.rules[added], "maxDepth", maxDepth)
			return false
		}
	}
	return true
}
