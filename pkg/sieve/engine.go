package sieve

import "github.com/google/uuid"

func newActivationID() uuid.UUID {
	return uuid.New()
}

// drain processes activations to fixpoint, in strict FIFO order: a
// cascade's consequences and specializations are appended to the tail of
// the same queue they were discovered from, so the emitted order (and log
// order) is deterministic and reproducible across runs (§8's order-
// determinism property).
func (kb *KnowledgeBase) drain(q *activationQueue) error {
	for {
		a, ok := q.dequeue()
		if !ok {
			return nil
		}
		kb.stats.RecordActivationProcessed()
		if err := kb.process(a, q); err != nil {
			return err
		}
	}
}

// process implements §4.4's per-activation algorithm. A bare fact
// activation (match == nil) is deduped, broadly matched against the whole
// rules tree, and installed. An activation carrying a pre-computed
// rules-tree match (produced by a rule's facts-tree pre-population, see
// tellRuleInternal) skips straight to handling that one (rule, condition)
// pairing — the fact is already installed, re-matching it broadly would
// re-discover nothing new and would re-log nothing, but would cost an
// entire extra tree walk for no benefit.
func (kb *KnowledgeBase) process(a *activation, q *activationQueue) error {
	if a.match != nil {
		return kb.handleRuleMatch(a.match.rule, a.match.condIndex, a.match.assignment, q)
	}

	if kb.facts.has(a.sentence) {
		kb.stats.RecordFactDeduped()
		return nil
	}

	factPaths := CanonicalPaths(a.sentence)
	matches := kb.rules.queryMatches(factPaths)
	for _, m := range matches {
		for _, ref := range m.payload {
			// The tree dispatch above is a coarse structural filter: two
			// different rule conditions with the same ground/variable shape
			// (e.g. "X1 is X2" and "X2 is X3") share tree edges, so the
			// traversal's own assignment may carry the wrong condition's
			// variable names. Recompute the authoritative assignment
			// directly from the matched condition's own canonical paths.
			// This fails when the condition binds one of its variables to
			// two different values of the fact (e.g. "X1 is X1" against
			// "a is b"); such a pairing is skipped.
			asg, ok := Matches(CanonicalPaths(ref.rule.Conditions[ref.condIndex]), factPaths)
			if !ok {
				continue
			}
			if err := kb.handleRuleMatch(ref.rule, ref.condIndex, asg, q); err != nil {
				return err
			}
		}
	}

	logAddingFact(kb.logger, a.sentence)
	kb.facts.insert(a.sentence, kb.interner)
	kb.stats.RecordFactInstalled()
	return nil
}

// handleRuleMatch resolves one (rule, condition) pairing matched by
// assignment: if every other condition is already accounted for
// (remaining is empty), the rule fires and its substituted consequences are
// enqueued as new facts; otherwise a specialized rule is built from the
// remaining conditions and consequences and told, which itself walks the
// facts tree to pre-populate further activations.
func (kb *KnowledgeBase) handleRuleMatch(rule *Rule, condIndex int, asg Assignment, q *activationQueue) error {
	remaining := make([]Sentence, 0, len(rule.Conditions)-1)
	for i, c := range rule.Conditions {
		if i == condIndex {
			continue
		}
		sub, err := Substitute(kb.grammar, c, asg)
		if err != nil {
			return &GrammarViolation{Paths: c.Paths(), Cause: err}
		}
		remaining = append(remaining, sub)
	}

	consequences := make([]Sentence, len(rule.Consequences))
	for i, c := range rule.Consequences {
		sub, err := Substitute(kb.grammar, c, asg)
		if err != nil {
			return &GrammarViolation{Paths: c.Paths(), Cause: err}
		}
		consequences[i] = sub
	}

	if len(remaining) == 0 {
		for _, c := range consequences {
			if !isGround(c.Paths()) {
				return newMalformedRule("consequence \"" + c.String() + "\" still has an unbound variable once every condition is satisfied")
			}
		}
		kb.stats.RecordRuleFired()
		for _, c := range consequences {
			q.enqueue(&activation{id: newActivationID(), sentence: c})
		}
		return nil
	}

	specialized, err := NewRule(remaining, consequences)
	if err != nil {
		return err
	}
	kb.stats.RecordRuleSpecialized()
	return kb.tellRuleInternal(specialized, q)
}

// tellRuleInternal inserts every condition of rule into the rules tree and
// pre-populates activations from facts already stored, in condition order.
// Both TellRule (for a user-told rule) and handleRuleMatch (for an
// engine-derived specialization) route through this, and both log through
// the same line — per the design note, a reader of the log cannot and
// should not distinguish the two.
func (kb *KnowledgeBase) tellRuleInternal(rule *Rule, q *activationQueue) error {
	logAddingRule(kb.logger, rule)
	for i := range rule.Conditions {
		kb.rules.insert(rule, i, kb.interner)
	}
	for i, c := range rule.Conditions {
		matches := kb.facts.queryMatches(CanonicalPaths(c))
		for _, m := range matches {
			for _, fact := range m.payload {
				q.enqueue(&activation{
					id:       newActivationID(),
					sentence: fact,
					match: &activationMatch{
						rule:       rule,
						condIndex:  i,
						assignment: m.assignment,
					},
				})
			}
		}
	}
	return nil
}
