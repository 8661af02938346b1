package sieve

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Path is an ordered, non-empty sequence of syntagms from a sentence's tree
// root to one of its leaves. A path is variable iff its final syntagm is a
// variable; construction elsewhere in this package never produces a path
// with a variable in a non-terminal position. Paths supplied by a grammar
// are not checked for one; GrammarViolation is only returned when the
// grammar's FromPaths rejects a path set.
type Path []Syntagm

// IsVariable reports whether the path's terminal syntagm is a variable.
func (p Path) IsVariable() bool {
	if len(p) == 0 {
		return false
	}
	return p[len(p)-1].IsVariable()
}

// Variable returns the path's terminal syntagm when it is a variable, and
// false otherwise.
func (p Path) Variable() (Syntagm, bool) {
	if len(p) == 0 {
		return nil, false
	}
	last := p[len(p)-1]
	return last, last.IsVariable()
}

// Equal reports whether two paths have the same length and equal syntagms
// at every position.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if !p[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Hash returns a 64-bit digest of the path's display form, position by
// position. Two equal paths hash equal; the conserve is not guaranteed
// (hash collisions are possible and are resolved by Equal at every child
// lookup, see tree.go).
func (p Path) Hash() uint64 {
	d := xxhash.New()
	for _, s := range p {
		d.WriteString(s.Display())
		d.WriteString("\x1f") // unit separator: disambiguates "ab","c" from "a","bc"
	}
	return d.Sum64()
}

// String renders a path for debug output as "[a/b/c]".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.Display()
	}
	return "[" + strings.Join(parts, "/") + "]"
}

// rolePrefixEqual reports whether two paths of equal length agree on every
// position except the last. This is the "matching shape" test §4.2 and §4.3
// of the design ask for when deciding whether a variable-terminal path at a
// tree node can stand in for a ground path's non-terminal positions.
func rolePrefixEqual(a, b Path) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a)-1; i++ {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// substitutePath replaces every syntagm in the path that is bound in asg by its
// image, leaving all other syntagms untouched. The result is a fresh Path;
// paths are otherwise immutable once constructed.
func substitutePath(p Path, asg Assignment) Path {
	out := make(Path, len(p))
	changed := false
	for i, s := range p {
		if s.IsVariable() {
			if img, ok := asg.Lookup(s); ok {
				out[i] = img
				changed = true
				continue
			}
		}
		out[i] = s
	}
	if !changed {
		return p
	}
	return out
}
