package sieve

import (
	"sort"
	"strings"
)

// CanonicalPaths returns a sentence's paths sorted into the engine's
// canonical order: ground-terminal paths before variable-terminal paths
// that share a prefix with them, and otherwise a deterministic
// lexicographic order. Both tree insertion and tree querying sort through
// this function, so the same sentence always produces the same path
// sequence regardless of the order the grammar happened to emit it in.
func CanonicalPaths(s Sentence) []Path {
	paths := append([]Path(nil), s.Paths()...)
	sort.SliceStable(paths, func(i, j int) bool {
		return comparePaths(paths[i], paths[j]) < 0
	})
	return paths
}

// comparePaths implements the canonical total order over paths described in
// the discrimination-tree design notes: positions are compared left to
// right; a ground syntagm always sorts before a variable syntagm at the
// first position the two paths differ; ties between two variables at a
// position are broken by continuing to the next position, then by path
// length, then by a full-string fallback so the order is total.
func comparePaths(a, b Path) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		sa, sb := a[i], b[i]
		if sa.IsVariable() != sb.IsVariable() {
			if sa.IsVariable() {
				return 1
			}
			return -1
		}
		if !sa.IsVariable() {
			if c := strings.Compare(sa.Display(), sb.Display()); c != 0 {
				return c
			}
		}
	}
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a.String(), b.String())
}
