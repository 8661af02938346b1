package sieve

// Syntagm is an atomic, hashable element of a sentence's syntactic tree.
// The engine never inspects a syntagm beyond these four capabilities: it
// hashes it, compares it for equality, displays it in log output, and asks
// whether it stands for a universally quantified variable.
//
// Concrete Syntagm implementations (supplied by a grammar plug-in, see
// Grammar) must be comparable in the Go sense: usable as a map key. Equal
// values must also be == to each other and hash equal, since Assignment
// relies on native map lookups in addition to the Equal method.
type Syntagm interface {
	// Display renders the syntagm the way it should appear in logs and in
	// Sentence.String() output.
	Display() string

	// Hash returns a 64-bit digest such that Equal syntagms hash equal.
	Hash() uint64

	// Equal reports whether two syntagms denote the same symbol.
	Equal(other Syntagm) bool

	// IsVariable reports whether this syntagm stands for a universally
	// quantified variable rather than a concrete symbol. Variables are
	// themselves syntagms: they hash, display, and compare like any other.
	IsVariable() bool
}

// Sentence is a set of Paths that together reconstruct one syntax tree: a
// fact (when every syntagm is ground) or a pattern (when some paths end in
// a variable). Grammars supply Sentence implementations; the engine only
// ever calls Paths and String.
type Sentence interface {
	// Paths decomposes the sentence into its root-to-leaf path set.
	Paths() []Path

	// String renders the sentence for log and debug output.
	String() string
}

// Grammar is the capability record a plug-in supplies to NewKnowledgeBase.
// It is deliberately a struct of function values rather than an interface
// with a single large method set, so a plug-in can be assembled from plain
// functions without a wrapper type — the same "capability record, not
// subclassing" shape as the discrimination-network design notes call for.
type Grammar struct {
	// FromPaths reconstructs a Sentence from a path set, the inverse of
	// Sentence.Paths. It must round-trip: FromPaths(s.Paths()) == s for
	// every sentence s the grammar produces. A path set that cannot be
	// reconstructed (malformed shape, wrong arity, ...) returns an error,
	// which the engine surfaces as GrammarViolation.
	FromPaths func(paths []Path) (Sentence, error)
}
