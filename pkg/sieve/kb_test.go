package sieve_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/gitrdm/sieve/pkg/sieve"
	"github.com/gitrdm/sieve/pkg/sieve/triples"
)

func newKB(t *testing.T) *sieve.KnowledgeBase {
	t.Helper()
	kb, err := sieve.NewKnowledgeBase(triples.Grammar, sieve.Config{})
	if err != nil {
		t.Fatalf("unexpected error constructing a knowledge base: %v", err)
	}
	return kb
}

func mustRule(t *testing.T, conditions, consequences []sieve.Sentence) *sieve.Rule {
	t.Helper()
	rule, err := sieve.NewRule(conditions, consequences)
	if err != nil {
		t.Fatalf("unexpected error constructing rule: %v", err)
	}
	return rule
}

func factStrings(kb *sieve.KnowledgeBase) []string {
	facts := kb.Facts()
	out := make([]string, len(facts))
	for i, f := range facts {
		out[i] = f.String()
	}
	sort.Strings(out)
	return out
}

// TestTransitiveSubset is §8 scenario 1: telling both transitive rules and
// five base facts must derive exactly the ten additional facts the scenario
// names, no more and no fewer.
func TestTransitiveSubset(t *testing.T) {
	kb := newKB(t)

	isRule := mustRule(t,
		[]sieve.Sentence{
			triples.New("X1", "is", "X2"),
			triples.New("X2", "is", "X3"),
		},
		[]sieve.Sentence{triples.New("X1", "is", "X3")},
	)
	isaRule := mustRule(t,
		[]sieve.Sentence{
			triples.New("X1", "isa", "X2"),
			triples.New("X2", "is", "X3"),
		},
		[]sieve.Sentence{triples.New("X1", "isa", "X3")},
	)
	if err := kb.TellRule(isRule); err != nil {
		t.Fatalf("unexpected error telling the 'is' transitive rule: %v", err)
	}
	if err := kb.TellRule(isaRule); err != nil {
		t.Fatalf("unexpected error telling the 'isa' transitive rule: %v", err)
	}

	baseFacts := []sieve.Sentence{
		triples.New("animal", "is", "thing"),
		triples.New("mammal", "is", "animal"),
		triples.New("primate", "is", "mammal"),
		triples.New("human", "is", "primate"),
		triples.New("susan", "isa", "human"),
	}
	for _, f := range baseFacts {
		if err := kb.TellFact(f); err != nil {
			t.Fatalf("unexpected error telling fact %s: %v", f.String(), err)
		}
	}

	want := []string{
		"animal is thing",
		"human is animal",
		"human is mammal",
		"human is primate",
		"human is thing",
		"mammal is animal",
		"mammal is thing",
		"primate is animal",
		"primate is mammal",
		"primate is thing",
		"susan isa animal",
		"susan isa human",
		"susan isa mammal",
		"susan isa primate",
		"susan isa thing",
	}

	got := factStrings(kb)
	if len(got) != len(want) {
		t.Fatalf("expected exactly %d facts, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fact set mismatch at %d: want %q, got %q (full: %v)", i, want[i], got[i], got)
		}
	}
}

// TestDedup is §8 scenario 2: re-telling an identical fact is a no-op.
func TestDedup(t *testing.T) {
	kb := newKB(t)
	f := triples.New("a", "is", "b")

	if err := kb.TellFact(f); err != nil {
		t.Fatalf("unexpected error on first tell: %v", err)
	}
	if err := kb.TellFact(f); err != nil {
		t.Fatalf("unexpected error on duplicate tell: %v", err)
	}

	if got := len(kb.Facts()); got != 1 {
		t.Fatalf("expected exactly 1 fact after telling the same fact twice, got %d", got)
	}

	stats := kb.Stats()
	if stats.FactsInstalled != 1 {
		t.Errorf("expected 1 fact installed, got %d", stats.FactsInstalled)
	}
	if stats.FactsDeduped != 1 {
		t.Errorf("expected 1 fact deduped, got %d", stats.FactsDeduped)
	}
}

// TestSpecializationBeforeFact is §8 scenario 3: telling the rule first,
// then a partially-satisfying fact, must leave a specialized rule in place
// that only fires once the remaining condition's fact arrives.
func TestSpecializationBeforeFact(t *testing.T) {
	kb := newKB(t)
	rule := mustRule(t,
		[]sieve.Sentence{
			triples.New("X1", "is", "X2"),
			triples.New("X2", "is", "X3"),
		},
		[]sieve.Sentence{triples.New("X1", "is", "X3")},
	)
	if err := kb.TellRule(rule); err != nil {
		t.Fatalf("unexpected error telling rule: %v", err)
	}
	if err := kb.TellFact(triples.New("a", "is", "b")); err != nil {
		t.Fatalf("unexpected error telling fact: %v", err)
	}

	foundSpecialized := false
	for _, r := range kb.Rules() {
		if len(r.Conditions) == 1 && r.Conditions[0].String() == triples.New("b", "is", "X3").String() {
			foundSpecialized = true
		}
	}
	if !foundSpecialized {
		t.Fatal("expected a specialized rule \"b is X3 -> a is X3\" to be present in the rules tree")
	}

	if err := kb.TellFact(triples.New("b", "is", "c")); err != nil {
		t.Fatalf("unexpected error telling fact: %v", err)
	}
	results := kb.Query(triples.New("a", "is", "c"))
	if len(results) != 1 {
		t.Fatalf("expected the derived fact \"a is c\" to be queryable, got %d results", len(results))
	}
}

// TestFactBeforeSpecialization is §8 scenario 4: telling the fact first,
// then the rule, must produce the identical specialization with no
// derivation until the remaining condition's fact arrives.
func TestFactBeforeSpecialization(t *testing.T) {
	kb := newKB(t)
	if err := kb.TellFact(triples.New("a", "is", "b")); err != nil {
		t.Fatalf("unexpected error telling fact: %v", err)
	}
	rule := mustRule(t,
		[]sieve.Sentence{
			triples.New("X1", "is", "X2"),
			triples.New("X2", "is", "X3"),
		},
		[]sieve.Sentence{triples.New("X1", "is", "X3")},
	)
	if err := kb.TellRule(rule); err != nil {
		t.Fatalf("unexpected error telling rule: %v", err)
	}

	if got := factStrings(kb); len(got) != 1 || got[0] != "a is b" {
		t.Fatalf("expected no derivation before the remaining condition is satisfied, got facts %v", got)
	}

	foundSpecialized := false
	for _, r := range kb.Rules() {
		if len(r.Conditions) == 1 && r.Conditions[0].String() == triples.New("b", "is", "X3").String() {
			foundSpecialized = true
		}
	}
	if !foundSpecialized {
		t.Fatal("expected the same specialized rule regardless of fact/rule telling order")
	}
}

// TestMalformedRule is §8 scenario 5: a rule whose consequence mentions an
// unbound variable is rejected and leaves the knowledge base untouched.
func TestMalformedRule(t *testing.T) {
	kb := newKB(t)
	conditions := []sieve.Sentence{triples.New("X1", "is", "X2")}
	consequences := []sieve.Sentence{triples.New("X1", "is", "X3")}

	_, err := sieve.NewRule(conditions, consequences)
	if err == nil {
		t.Fatal("expected NewRule to reject the unsafe rule")
	}
	var malformed *sieve.MalformedRule
	if !errors.As(err, &malformed) {
		t.Errorf("expected a *sieve.MalformedRule, got %T", err)
	}

	if got := len(kb.Facts()); got != 0 {
		t.Errorf("expected the knowledge base to remain empty, got %d facts", got)
	}
	if got := len(kb.Rules()); got != 0 {
		t.Errorf("expected the knowledge base to remain empty, got %d rules", got)
	}
}

// TestQueryWithVariable is §8 scenario 6: querying scenario 1's knowledge
// base for "X1 isa thing" returns exactly susan, bound via X1.
func TestQueryWithVariable(t *testing.T) {
	kb := newKB(t)
	isRule := mustRule(t,
		[]sieve.Sentence{triples.New("X1", "is", "X2"), triples.New("X2", "is", "X3")},
		[]sieve.Sentence{triples.New("X1", "is", "X3")},
	)
	isaRule := mustRule(t,
		[]sieve.Sentence{triples.New("X1", "isa", "X2"), triples.New("X2", "is", "X3")},
		[]sieve.Sentence{triples.New("X1", "isa", "X3")},
	)
	_ = kb.TellRule(isRule)
	_ = kb.TellRule(isaRule)
	for _, f := range []sieve.Sentence{
		triples.New("animal", "is", "thing"),
		triples.New("mammal", "is", "animal"),
		triples.New("primate", "is", "mammal"),
		triples.New("human", "is", "primate"),
		triples.New("susan", "isa", "human"),
	} {
		if err := kb.TellFact(f); err != nil {
			t.Fatalf("unexpected error telling fact %s: %v", f.String(), err)
		}
	}

	results := kb.Query(triples.New("X1", "isa", "thing"))
	if len(results) != 1 {
		t.Fatalf("expected exactly one result for \"X1 isa thing\", got %d", len(results))
	}
	if results[0].Fact.String() != "susan isa thing" {
		t.Errorf("expected the matched fact to be \"susan isa thing\", got %q", results[0].Fact.String())
	}
	bound, ok := results[0].Assignment.Lookup(triples.Var("X1"))
	if !ok || bound.Display() != "susan" {
		t.Errorf("expected X1 bound to susan, got %v, %v", bound, ok)
	}
}

// TestTellRuleLeavesKBUnchangedOnRejection: telling a hand-built rule whose
// consequence uses a variable no condition binds must fail and leave the
// knowledge base exactly as it was before the Tell call.
func TestTellRuleLeavesKBUnchangedOnRejection(t *testing.T) {
	kb := newKB(t)
	if err := kb.TellFact(triples.New("seed", "is", "value")); err != nil {
		t.Fatalf("unexpected error seeding a fact: %v", err)
	}
	before := factStrings(kb)

	badRule := &sieve.Rule{
		Conditions:   []sieve.Sentence{triples.New("X1", "is", "X2")},
		Consequences: []sieve.Sentence{triples.New("X1", "is", "X3")},
	}
	if err := kb.TellRule(badRule); err == nil {
		t.Fatal("expected telling a malformed rule to fail")
	}

	after := factStrings(kb)
	if len(before) != len(after) {
		t.Fatalf("expected fact count unchanged after a rejected tell, before=%v after=%v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("expected facts unchanged after a rejected tell, before=%v after=%v", before, after)
		}
	}
	if got := len(kb.Rules()); got != 0 {
		t.Errorf("expected no rule to have been installed, got %d", got)
	}
}
