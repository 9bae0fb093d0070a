package signature

import (
	"slices"

	"github.com/cottand/genrew/internal/log"
	"github.com/cottand/genrew/rewriting"
	goset "github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"
)

var logger = log.DefaultLogger.With("section", "signature")

// Lower translates the signature into the initial rewrite rules for a
// rewriting.System, unoriented (the system orients on AddRule):
//
//   - for every protocol P and strict ancestor Q, the inheritance rule
//     [P]·[Q] → [P]: a term known to conform to P conforms to Q;
//   - for every protocol P and associated type name A visible in its
//     closure, the introduction rule [P]·A → [P:A] resolving the bare
//     member name;
//   - T : P lowers to term(T)·[P] → term(T), likewise layout constraints;
//   - T.X == U.Y lowers to the unoriented pair (term(T.X), term(U.Y)).
//
// Duplicate pairs (a requirement listed twice, for instance) are
// dropped; the remaining pairs keep generation
// order so that rule indices are deterministic.
func (s *Signature) Lower() ([]rewriting.RulePair, error) {
	lowered := make([]rewriting.RulePair, 0, len(s.Requirements))
	seen := goset.NewHashSet[rewriting.RulePair, uint64](len(s.Requirements))
	emit := func(pair rewriting.RulePair) {
		if seen.Insert(pair) {
			lowered = append(lowered, pair)
		}
	}

	for _, proto := range s.Graph.Protocols() {
		self := rewriting.ProtocolAtom(proto)
		for _, ancestor := range s.Graph.InheritanceClosure(proto) {
			if ancestor == proto {
				continue
			}
			emit(rewriting.RulePair{
				LHS: rewriting.NewTerm(self, rewriting.ProtocolAtom(ancestor)),
				RHS: rewriting.NewTerm(self),
			})
		}
		for _, name := range s.Graph.VisibleAssociatedTypes(proto) {
			emit(rewriting.RulePair{
				LHS: rewriting.NewTerm(self, rewriting.NameAtom(name)),
				RHS: rewriting.NewTerm(rewriting.AssociatedTypeAtom(s.Graph.AssociatedTypeProtocols(proto, name), name)),
			})
		}
	}

	for _, requirement := range s.Requirements {
		switch requirement := requirement.(type) {
		case Conformance:
			if !s.Graph.Known(requirement.Protocol) {
				return nil, errors.Errorf("requirement %s names unknown protocol %s", requirement, requirement.Protocol)
			}
			subject, err := s.Term(requirement.Subject)
			if err != nil {
				return nil, errors.Wrapf(err, "lowering %s", requirement)
			}
			lhs := subject.Copy()
			lhs.Append(rewriting.ProtocolAtom(requirement.Protocol))
			emit(rewriting.RulePair{LHS: lhs, RHS: subject})
		case LayoutRequirement:
			subject, err := s.Term(requirement.Subject)
			if err != nil {
				return nil, errors.Wrapf(err, "lowering %s", requirement)
			}
			lhs := subject.Copy()
			lhs.Append(rewriting.LayoutAtom(requirement.Layout))
			emit(rewriting.RulePair{LHS: lhs, RHS: subject})
		case SameType:
			left, err := s.Term(requirement.Left)
			if err != nil {
				return nil, errors.Wrapf(err, "lowering %s", requirement)
			}
			right, err := s.Term(requirement.Right)
			if err != nil {
				return nil, errors.Wrapf(err, "lowering %s", requirement)
			}
			emit(rewriting.RulePair{LHS: left, RHS: right})
		default:
			return nil, errors.Errorf("unknown requirement %s", requirement)
		}
	}

	logger.Debug("lowered signature", "requirements", len(s.Requirements), "rules", len(lowered))
	return lowered, nil
}

// Term builds the rewrite term for a type path: the canonical generic
// parameter atom followed by one atom per member label. Qualified labels
// resolve to associated type atoms through the protocol graph; bare labels
// stay unresolved name atoms for completion to resolve.
func (s *Signature) Term(path TypePath) (rewriting.Term, error) {
	index := slices.Index(s.Params, path.Param)
	if index < 0 {
		return rewriting.Term{}, errors.Errorf("unknown generic parameter %s", path.Param)
	}
	term := rewriting.NewTerm(rewriting.GenericParamAtom(0, index))
	for _, label := range path.Labels {
		if label.Protocol == "" {
			term.Append(rewriting.NameAtom(label.Name))
			continue
		}
		if !s.Graph.Known(label.Protocol) {
			return rewriting.Term{}, errors.Errorf("label %s names unknown protocol %s", label, label.Protocol)
		}
		protos := s.Graph.AssociatedTypeProtocols(label.Protocol, label.Name)
		if len(protos) == 0 {
			return rewriting.Term{}, errors.Errorf("protocol %s has no associated type %s", label.Protocol, label.Name)
		}
		term.Append(rewriting.AssociatedTypeAtom(protos, label.Name))
	}
	return term, nil
}
