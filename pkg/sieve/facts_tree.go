package sieve

// factsTree indexes every asserted, ground fact. It never admits a variable
// path: insertion always comes from a ground Sentence, so queryMatches
// (used to pre-populate activations for a newly told rule's premises) is the
// only place a variable appears — in the query, not the tree.
type factsTree struct {
	t *tree[Sentence]
}

func newFactsTree() *factsTree {
	return &factsTree{t: newTree[Sentence]()}
}

func sentenceEqual(a, b Sentence) bool {
	return a.String() == b.String()
}

// insert installs a ground fact. Re-inserting an identical fact is a no-op
// (set semantics at the leaf).
func (ft *factsTree) insert(fact Sentence, interner *Interner) {
	paths := internPaths(CanonicalPaths(fact), interner)
	ft.t.insert(paths, fact, sentenceEqual)
}

// has reports whether an exactly equal fact has already been asserted —
// the dedup check the activation engine runs before matching rules.
func (ft *factsTree) has(fact Sentence) bool {
	return len(ft.t.lookupExact(CanonicalPaths(fact))) > 0
}

// queryMatches finds every stored fact that unifies with a pattern
// (possibly containing variables), used both to pre-populate activations
// for a freshly told rule's premises and to serve KnowledgeBase.Query.
func (ft *factsTree) queryMatches(patternPaths []Path) []match[Sentence] {
	return ft.t.queryPattern(patternPaths)
}

func (ft *factsTree) clone() *factsTree {
	return &factsTree{t: ft.t.clone()}
}
