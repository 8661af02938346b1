package sieve

// conditionRef identifies one condition of one rule: the rules tree's leaf
// payload is a set of these, per the data model (a leaf may be shared by
// several rules whose i-th condition happens to decompose into the same
// path sequence).
type conditionRef struct {
	rule      *Rule
	condIndex int
}

func conditionRefEqual(a, b conditionRef) bool {
	return a.rule == b.rule && a.condIndex == b.condIndex
}

// rulesTree indexes every outstanding rule condition, admitting variable
// paths. Querying it with a ground fact (queryMatches) returns every
// (rule, condition) pair whose pattern unifies with the fact, possibly
// alongside pairs that do not; the attached assignment is not reliable per
// pair (see tree.queryGround), so callers confirm each pair with Matches.
type rulesTree struct {
	t *tree[conditionRef]
}

func newRulesTree() *rulesTree {
	return &rulesTree{t: newTree[conditionRef]()}
}

// insert adds (rule, condIndex) as a leaf under rule.Conditions[condIndex]'s
// canonical path sequence.
func (rt *rulesTree) insert(rule *Rule, condIndex int, interner *Interner) {
	paths := CanonicalPaths(rule.Conditions[condIndex])
	paths = internPaths(paths, interner)
	rt.t.insert(paths, conditionRef{rule: rule, condIndex: condIndex}, conditionRefEqual)
}

// queryMatches finds every rule condition that may unify with a ground fact.
func (rt *rulesTree) queryMatches(factPaths []Path) []match[conditionRef] {
	return rt.t.queryGround(factPaths)
}

func (rt *rulesTree) clone() *rulesTree {
	return &rulesTree{t: rt.t.clone()}
}

func internPaths(paths []Path, interner *Interner) []Path {
	if interner == nil {
		return paths
	}
	out := make([]Path, len(paths))
	for i, p := range paths {
		out[i] = interner.InternPath(p)
	}
	return out
}
