package sieve

// Assignment is a finite mapping from variable syntagms to their bound
// images, produced by unification and consumed by substitution. Assignments
// are treated as immutable once handed to a caller: Bind always returns a
// new Assignment rather than mutating the receiver, so a partially explored
// match branch in the discrimination tree never leaks bindings into a
// sibling branch.
type Assignment struct {
	m map[Syntagm]Syntagm
}

// NewAssignment returns an empty assignment.
func NewAssignment() Assignment {
	return Assignment{m: make(map[Syntagm]Syntagm)}
}

// Lookup returns the image bound to v, if any.
func (a Assignment) Lookup(v Syntagm) (Syntagm, bool) {
	if a.m == nil {
		return nil, false
	}
	s, ok := a.m[v]
	return s, ok
}

// Len reports how many variables are bound.
func (a Assignment) Len() int {
	return len(a.m)
}

// Bind returns a new Assignment with v mapped to val. If v is already bound
// to a different syntagm, Bind fails (ok is false) and the original
// assignment is returned unchanged — this is the cross-path consistency
// check §4.1 requires when merging per-path assignments into a whole
// sentence's assignment. Binding v to the value it is already bound to is a
// no-op success.
func (a Assignment) Bind(v, val Syntagm) (Assignment, bool) {
	if existing, ok := a.m[v]; ok {
		return a, existing.Equal(val)
	}
	next := make(map[Syntagm]Syntagm, len(a.m)+1)
	for k, val2 := range a.m {
		next[k] = val2
	}
	next[v] = val
	return Assignment{m: next}, true
}

// Variables returns the bound variables in no particular order.
func (a Assignment) Variables() []Syntagm {
	vars := make([]Syntagm, 0, len(a.m))
	for v := range a.m {
		vars = append(vars, v)
	}
	return vars
}

// Unify matches a single pattern path against a single ground fact path of
// identical length. At every position: a non-variable pattern syntagm must
// equal the fact syntagm; a variable pattern syntagm contributes a binding,
// or — if already bound in the supplied assignment — the existing binding
// must equal the fact syntagm. Unify returns the extended assignment, or
// false if the path does not unify (length mismatch, a ground clash, or an
// inconsistent rebinding).
func Unify(pattern, fact Path, asg Assignment) (Assignment, bool) {
	if len(pattern) != len(fact) {
		return asg, false
	}
	for i := range pattern {
		ps, fs := pattern[i], fact[i]
		if ps.IsVariable() {
			var ok bool
			asg, ok = asg.Bind(ps, fs)
			if !ok {
				return asg, false
			}
			continue
		}
		if !ps.Equal(fs) {
			return asg, false
		}
	}
	return asg, true
}

// Matches unifies every path of a pattern sentence against the
// correspondingly-ordered path of a ground fact sentence (both sorted via
// CanonicalPaths by the caller), merging the per-path assignments into one
// whole-sentence Assignment. It succeeds only when every path unifies and
// the merged bindings are mutually consistent.
func Matches(patternPaths, factPaths []Path) (Assignment, bool) {
	if len(patternPaths) != len(factPaths) {
		return Assignment{}, false
	}
	asg := NewAssignment()
	for i := range patternPaths {
		var ok bool
		asg, ok = Unify(patternPaths[i], factPaths[i], asg)
		if !ok {
			return Assignment{}, false
		}
	}
	return asg, true
}

// Substitute applies asg to every path of a pattern sentence and
// reconstructs a Sentence through the grammar's FromPaths. Substituting with
// an empty assignment, or over a sentence with no variables, returns the
// sentence's own paths unchanged.
func Substitute(g Grammar, s Sentence, asg Assignment) (Sentence, error) {
	paths := s.Paths()
	if asg.Len() == 0 {
		return g.FromPaths(paths)
	}
	out := make([]Path, len(paths))
	for i, p := range paths {
		out[i] = substitutePath(p, asg)
	}
	return g.FromPaths(out)
}

// isGround reports whether a sentence's paths contain no variables, i.e.
// every terminal syntagm is concrete.
func isGround(paths []Path) bool {
	for _, p := range paths {
		if p.IsVariable() {
			return false
		}
	}
	return true
}
