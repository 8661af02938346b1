// Package main demonstrates basic sieve usage patterns.
package main

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/sieve/pkg/sieve"
	"github.com/gitrdm/sieve/pkg/sieve/triples"
)

func main() {
	fmt.Println("=== Sieve Examples ===")
	fmt.Println()

	basicFacts()
	transitiveRule()
	dedupAndStats()
	querying()
}

func newDemoKB() *sieve.KnowledgeBase {
	logger := hclog.New(&hclog.LoggerOptions{Name: "sieve-demo", Level: hclog.Info})
	kb, err := sieve.NewKnowledgeBase(triples.Grammar, sieve.Config{Logger: logger, InternSize: 1024})
	if err != nil {
		panic(err)
	}
	return kb
}

// basicFacts demonstrates telling ground facts and reading them back.
func basicFacts() {
	fmt.Println("1. Basic Facts:")

	kb := newDemoKB()
	_ = kb.TellFact(triples.New("alice", "likes", "pizza"))
	_ = kb.TellFact(triples.New("bob", "likes", "burgers"))

	fmt.Printf("   facts on hand: %d\n", len(kb.Facts()))
	fmt.Println()
}

// transitiveRule demonstrates a rule whose consequence re-enters the engine
// as a new fact, triggering further matches: the classic transitive-closure
// shape (a is_a b, b is_a c |- a is_a c).
func transitiveRule() {
	fmt.Println("2. Transitive Rule:")

	kb := newDemoKB()
	rule, err := sieve.NewRule(
		[]sieve.Sentence{
			triples.New("X", "is_a", "Y"),
			triples.New("Y", "is_a", "Z"),
		},
		[]sieve.Sentence{
			triples.New("X", "is_a", "Z"),
		},
	)
	if err != nil {
		panic(err)
	}

	if err := kb.TellRule(rule); err != nil {
		panic(err)
	}
	_ = kb.TellFact(triples.New("sparrow", "is_a", "bird"))
	_ = kb.TellFact(triples.New("bird", "is_a", "animal"))

	results := kb.Query(triples.New("sparrow", "is_a", "Whatever"))
	fmt.Printf("   sparrow is_a ? => %d result(s)\n", len(results))
	for _, r := range results {
		fmt.Printf("     %s\n", r.Fact.String())
	}
	fmt.Println()
}

// dedupAndStats demonstrates that re-telling an identical fact is a no-op,
// and reads the engine's activation counters.
func dedupAndStats() {
	fmt.Println("3. Dedup and Stats:")

	kb := newDemoKB()
	fact := triples.New("alice", "likes", "pizza")
	_ = kb.TellFact(fact)
	_ = kb.TellFact(fact)
	_ = kb.TellFact(fact)

	stats := kb.Stats()
	fmt.Printf("   facts installed: %d, facts deduped: %d\n", stats.FactsInstalled, stats.FactsDeduped)
	fmt.Println()
}

// querying demonstrates a pattern query with a free variable over a small
// knowledge base.
func querying() {
	fmt.Println("4. Querying:")

	kb := newDemoKB()
	_ = kb.TellFact(triples.New("alice", "likes", "pizza"))
	_ = kb.TellFact(triples.New("alice", "likes", "salad"))
	_ = kb.TellFact(triples.New("bob", "likes", "burgers"))

	results := kb.Query(triples.New("alice", "likes", "What"))
	fmt.Printf("   what does alice like? => %d result(s)\n", len(results))
	for _, r := range results {
		what, _ := r.Assignment.Lookup(triples.Var("What"))
		fmt.Printf("     %s\n", what.Display())
	}
	fmt.Println()
}
