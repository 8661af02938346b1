package sieve

import (
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/sieve/internal/telemetry"
)

// Config bundles the knobs a KnowledgeBase is constructed with, following
// the teacher's plain-struct-of-knobs convention (ParallelConfig,
// DynamicConfig) rather than functional options — every field has a usable
// zero value.
type Config struct {
	// Logger receives the "adding fact"/"adding rule" lines the library
	// contract specifies. A nil Logger defaults to hclog's null logger, so
	// a KnowledgeBase can be constructed with a zero Config.
	Logger hclog.Logger

	// InternSize bounds the syntagm/path interning arena. Zero disables
	// interning.
	InternSize int
}

// KnowledgeBase owns both discrimination trees and the activation queue; it
// is the engine's only exported entry point. A KnowledgeBase is not safe
// for concurrent Tell calls — see the concurrency design notes — but
// Query, Facts, Rules, and Stats are read-only and safe to call between
// Tell calls (never concurrently with one, since nothing here takes a
// lock: the engine assumes a single mutator, and an embedder wanting
// parallel access must serialize externally).
type KnowledgeBase struct {
	grammar Grammar
	logger  hclog.Logger

	rules *rulesTree
	facts *factsTree

	interner *Interner
	stats    telemetry.Counters
}

// Stats is a point-in-time snapshot of engine activity, for debugging.
type Stats struct {
	ActivationsProcessed int64
	FactsInstalled       int64
	FactsDeduped         int64
	RulesSpecialized     int64
	RulesFired           int64
}

// NewKnowledgeBase constructs an empty knowledge base over the given
// grammar plug-in.
func NewKnowledgeBase(grammar Grammar, cfg Config) (*KnowledgeBase, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	interner, err := NewInterner(cfg.InternSize)
	if err != nil {
		return nil, err
	}
	return &KnowledgeBase{
		grammar:  grammar,
		logger:   logger,
		rules:    newRulesTree(),
		facts:    newFactsTree(),
		interner: interner,
	}, nil
}

// Stats returns a snapshot of the engine's activation-processing counters.
func (kb *KnowledgeBase) Stats() Stats {
	snap := kb.stats.Snapshot()
	return Stats{
		ActivationsProcessed: snap.ActivationsProcessed,
		FactsInstalled:       snap.FactsInstalled,
		FactsDeduped:         snap.FactsDeduped,
		RulesSpecialized:     snap.RulesSpecialized,
		RulesFired:           snap.RulesFired,
	}
}

// Facts returns every fact currently in the knowledge base. Debug use only
// — it walks the whole facts tree and allocates a slice, defeating the
// point of the index.
func (kb *KnowledgeBase) Facts() []Sentence {
	var out []Sentence
	collectPayloads(kb.facts.t.root, func(facts []Sentence) {
		out = append(out, facts...)
	})
	return out
}

// Rules returns every rule with at least one outstanding (unsatisfied)
// condition, deduped across the several leaves a single rule's conditions
// are scattered over.
func (kb *KnowledgeBase) Rules() []*Rule {
	seen := make(map[*Rule]struct{})
	var out []*Rule
	collectPayloads(kb.rules.t.root, func(refs []conditionRef) {
		for _, ref := range refs {
			if _, ok := seen[ref.rule]; ok {
				continue
			}
			seen[ref.rule] = struct{}{}
			out = append(out, ref.rule)
		}
	})
	return out
}

// collectPayloads walks every node of a tree (ground and variable branches
// alike) in a deterministic order and visits each node's payload.
func collectPayloads[P any](n *node[P], visit func([]P)) {
	if n == nil {
		return
	}
	if len(n.payload) > 0 {
		visit(n.payload)
	}
	var ground []*edge[P]
	for _, edges := range n.groundChildren {
		ground = append(ground, edges...)
	}
	sort.Slice(ground, func(i, j int) bool { return comparePaths(ground[i].path, ground[j].path) < 0 })
	for _, e := range ground {
		collectPayloads(e.child, visit)
	}
	for _, e := range n.varChildren {
		collectPayloads(e.child, visit)
	}
}

// Query returns every stored fact that unifies with pattern, paired with
// the assignment that makes it so. Unlike Tell, Query never enqueues
// activations: it is a pure read against the facts tree.
func (kb *KnowledgeBase) Query(pattern Sentence) []QueryResult {
	matches := kb.facts.queryMatches(CanonicalPaths(pattern))
	var out []QueryResult
	for _, m := range matches {
		for _, fact := range m.payload {
			out = append(out, QueryResult{Fact: fact, Assignment: m.assignment})
		}
	}
	return out
}

// QueryResult pairs a matched fact with the assignment that unifies the
// query pattern with it.
type QueryResult struct {
	Fact       Sentence
	Assignment Assignment
}

// TellFact asserts a ground fact. It blocks until the full cascade of
// activations it triggers has drained — the knowledge base is always at a
// fixpoint between calls, per the concurrency design notes. If the cascade
// encounters a malformed derived rule, the knowledge base is left exactly
// as it was before this call (see §7's rollback requirement and
// tellAndDrain below).
func (kb *KnowledgeBase) TellFact(fact Sentence) error {
	return kb.tellAndDrain(func(q *activationQueue) error {
		q.enqueue(&activation{id: newActivationID(), sentence: fact})
		return nil
	})
}

// TellRule validates and asserts a rule: each condition is indexed into the
// rules tree, then pre-queried against the facts tree so facts already on
// hand immediately produce activations, exactly as if they had just been
// told. A malformed rule (see MalformedRule) is rejected before any
// mutation, leaving the knowledge base unchanged.
func (kb *KnowledgeBase) TellRule(rule *Rule) error {
	if err := checkRuleShape(rule); err != nil {
		return err
	}
	return kb.tellAndDrain(func(q *activationQueue) error {
		return kb.tellRuleInternal(rule, q)
	})
}

// tellAndDrain snapshots both trees, runs seed (which stages the initial
// tree mutations and enqueues the seed activation(s)), drains the queue to
// fixpoint, and restores the snapshot if anything along the way fails. This
// is the atomic-commit boundary §7 requires: a failing Tell leaves the
// knowledge base in the state it had before the call.
func (kb *KnowledgeBase) tellAndDrain(seed func(q *activationQueue) error) error {
	snapshotRules, snapshotFacts := kb.rules.clone(), kb.facts.clone()
	q := &activationQueue{}
	if err := seed(q); err != nil {
		kb.rules, kb.facts = snapshotRules, snapshotFacts
		return err
	}
	if err := kb.drain(q); err != nil {
		kb.rules, kb.facts = snapshotRules, snapshotFacts
		return err
	}
	return nil
}

// checkRuleShape re-validates the shape invariants NewRule already checked.
// Re-checking here costs little and protects callers that build a Rule
// value by hand instead of through NewRule.
func checkRuleShape(rule *Rule) error {
	if _, err := NewRule(rule.Conditions, rule.Consequences); err != nil {
		return err
	}
	return nil
}
