package sieve

import (
	"strconv"

	"github.com/google/uuid"
)

// Rule is an ordered tuple of condition sentences (premises) plus an
// ordered tuple of consequence sentences (conclusions). Conditions and
// consequences may contain universally quantified variables; every
// variable mentioned in a consequence must also appear in at least one
// condition (checked by NewRule). Rules are immutable once constructed — the engine
// never mutates Conditions or Consequences, it builds new Rule values when
// specializing (see engine.go).
type Rule struct {
	// ID uniquely identifies this rule value, including every specialized
	// rule derived from a user-told one. It is visible on the rules
	// KnowledgeBase.Rules returns; the "adding rule" log line does not
	// include it.
	ID uuid.UUID

	Conditions   []Sentence
	Consequences []Sentence
}

// NewRule constructs a rule from its conditions and consequences, rejecting
// malformed shapes before any part of it reaches a knowledge base: zero
// conditions (a rule with no premises should be told as facts instead), or
// a consequence that mentions a variable no condition binds. When more than
// one consequence is unsafe, all of the failures are reported together.
func NewRule(conditions, consequences []Sentence) (*Rule, error) {
	if len(conditions) == 0 {
		return nil, newMalformedRule("rule has zero conditions; tell its consequences as facts instead")
	}
	conditionVars := make(map[Syntagm]struct{})
	for _, c := range conditions {
		for _, p := range c.Paths() {
			if v, ok := p.Variable(); ok {
				conditionVars[v] = struct{}{}
			}
		}
	}
	var reasons []string
	for ci, c := range consequences {
		for _, p := range c.Paths() {
			v, ok := p.Variable()
			if !ok {
				continue
			}
			if _, bound := conditionVars[v]; !bound {
				reasons = append(reasons, "consequence "+strconv.Itoa(ci)+" (\""+c.String()+"\") uses variable \""+v.Display()+"\" that no condition binds")
			}
		}
	}
	if len(reasons) > 0 {
		return nil, newMalformedRule(reasons...)
	}
	return &Rule{
		ID:           uuid.New(),
		Conditions:   conditions,
		Consequences: consequences,
	}, nil
}
