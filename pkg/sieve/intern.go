package sieve

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// internKey disambiguates a ground syntagm from a variable with the same
// display text — the two must never be folded into the same cache entry.
type internKey struct {
	display  string
	variable bool
}

// Interner deduplicates syntagm allocations across facts and rules that
// repeat the same ground symbols (predicates like "is" or "isa" in the
// design's end-to-end scenarios appear in nearly every fact). It is the
// arena the design notes recommend for the engine's "chief space problem";
// bounded by an LRU so a long-running knowledge base that churns through
// many distinct symbols doesn't grow the cache without limit.
//
// A nil *Interner is valid and simply disables interning (Intern and
// InternPath become no-ops), so KnowledgeBase can be constructed without one.
type Interner struct {
	cache *lru.Cache[internKey, Syntagm]
}

// NewInterner creates an Interner bounded to size distinct syntagms. A size
// of zero or less disables interning (returns a nil *Interner, no error).
func NewInterner(size int) (*Interner, error) {
	if size <= 0 {
		return nil, nil
	}
	c, err := lru.New[internKey, Syntagm](size)
	if err != nil {
		return nil, err
	}
	return &Interner{cache: c}, nil
}

// Intern returns the canonical instance previously seen for a syntagm with
// this display text and variable-ness, caching s itself the first time one
// is seen.
func (in *Interner) Intern(s Syntagm) Syntagm {
	if in == nil || s == nil {
		return s
	}
	key := internKey{display: s.Display(), variable: s.IsVariable()}
	if existing, ok := in.cache.Get(key); ok {
		return existing
	}
	in.cache.Add(key, s)
	return s
}

// InternPath interns every syntagm of p, returning a path built from the
// canonical instances. A nil receiver returns p unchanged.
func (in *Interner) InternPath(p Path) Path {
	if in == nil {
		return p
	}
	out := make(Path, len(p))
	for i, s := range p {
		out[i] = in.Intern(s)
	}
	return out
}
