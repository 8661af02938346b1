package sieve

// testSym is a minimal Syntagm used across this package's tests: a plain
// string, variable iff flagged explicitly (tests never rely on a
// capitalization convention — that belongs to a grammar plug-in, not the
// core engine).
type testSym struct {
	name     string
	variable bool
}

func sym(name string) testSym { return testSym{name: name} }
func vari(name string) testSym { return testSym{name: name, variable: true} }

func (s testSym) Display() string { return s.name }

func (s testSym) Hash() uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s.name); i++ {
		h ^= uint64(s.name[i])
		h *= 1099511628211
	}
	if s.variable {
		h ^= 1
	}
	return h
}

func (s testSym) Equal(other Syntagm) bool {
	o, ok := other.(testSym)
	return ok && o.name == s.name && o.variable == s.variable
}

func (s testSym) IsVariable() bool { return s.variable }

// testSentence is a minimal Sentence: a fixed set of paths with no internal
// grammar structure, for exercising the tree and assignment machinery
// without pulling in the triples package.
type testSentence struct {
	paths []Path
	text  string
}

func (s testSentence) Paths() []Path { return s.paths }
func (s testSentence) String() string { return s.text }

func fact(pred, subj, obj string) testSentence {
	return testSentence{
		paths: []Path{{sym(pred)}, {sym(subj)}, {sym(obj)}},
		text:  pred + "(" + subj + ", " + obj + ")",
	}
}

func pattern(pred string, subj, obj Syntagm) testSentence {
	return testSentence{
		paths: []Path{{sym(pred)}, {subj}, {obj}},
		text:  pred + "(pattern)",
	}
}
