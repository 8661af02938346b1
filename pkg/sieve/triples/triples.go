// Package triples is a reference grammar plug-in: subject-predicate-object
// facts and patterns over plain strings, with the convention (borrowed from
// Prolog-family logic languages, same as the teacher's parser) that a symbol
// beginning with an uppercase letter is a variable. It exists to exercise
// pkg/sieve end to end and to give the package's tests and the demo command
// something concrete to tell and query.
package triples

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/gitrdm/sieve/pkg/sieve"
)

// Symbol is the triples grammar's only Syntagm: a string plus a variable
// flag, set by constructing it with Var (New sets it for fields that start
// with an uppercase ASCII letter).
type Symbol struct {
	name     string
	variable bool
}

// Sym constructs a ground symbol. Passing a capitalized name still produces
// a non-variable Symbol — use Var for variables — so a caller can't
// accidentally create a variable by typo; New below is what applies the
// capitalization convention when parsing a triple's three fields.
func Sym(name string) Symbol { return Symbol{name: name} }

// Var constructs a variable symbol.
func Var(name string) Symbol { return Symbol{name: name, variable: true} }

func (s Symbol) Display() string { return s.name }

func (s Symbol) Hash() uint64 {
	d := xxhash.New()
	d.WriteString(s.name)
	if s.variable {
		d.WriteByte('?')
	}
	return d.Sum64()
}

func (s Symbol) Equal(other sieve.Syntagm) bool {
	o, ok := other.(Symbol)
	return ok && o.name == s.name && o.variable == s.variable
}

func (s Symbol) IsVariable() bool { return s.variable }

// symbolFromField applies the grammar's capitalization convention: a field
// starting with an uppercase ASCII letter is a variable.
func symbolFromField(field string) Symbol {
	if field != "" && field[0] >= 'A' && field[0] <= 'Z' {
		return Var(field)
	}
	return Sym(field)
}

// Triple is a single subject-predicate-object sentence: a fact when all
// three fields are ground, a pattern when one or more is a variable.
type Triple struct {
	Subject, Predicate, Object Symbol
}

// New builds a Triple from three plain field strings, applying the
// capitalization-means-variable convention to each.
func New(subject, predicate, object string) Triple {
	return Triple{
		Subject:   symbolFromField(subject),
		Predicate: symbolFromField(predicate),
		Object:    symbolFromField(object),
	}
}

// subjTag, predTag, objTag mark each field's position with a fixed ground
// symbol, prefixed onto that field's path. Without a positional marker, a
// field's bare path carries no information about which role it plays, so
// the canonical ground-before-variable ordering (order.go) can reorder a
// fact's and a matching pattern's paths independently of each other: two
// sentences that should unify can sort into misaligned path sequences (a
// ground subject and a ground predicate compare only by text, so which one
// sorts first depends on their values, not their role). Tagging every path
// with its role gives every sentence's subject path, predicate path, and
// object path the same discriminator regardless of which fields happen to
// be ground or variable, so canonical order always groups "same role
// together" and a fact lines up position-for-position with any pattern
// that should match it. It also keeps "a is b" and "b is a" from
// decomposing into the same path multiset, since the role tag travels with
// each field, not just its text.
var (
	subjTag = Sym("subj")
	predTag = Sym("pred")
	objTag  = Sym("obj")
)

// Paths decomposes a Triple into its three role-tagged, two-syntagm
// root-to-leaf paths: a fixed ground tag identifying the field's role,
// followed by the field's own (possibly variable) symbol.
func (t Triple) Paths() []sieve.Path {
	return []sieve.Path{
		{subjTag, t.Subject},
		{predTag, t.Predicate},
		{objTag, t.Object},
	}
}

func (t Triple) String() string {
	return strings.Join([]string{t.Subject.Display(), t.Predicate.Display(), t.Object.Display()}, " ")
}

// Grammar is the capability record for the triples language, ready to pass
// to sieve.NewKnowledgeBase.
var Grammar = sieve.Grammar{FromPaths: fromPaths}

// fromPaths reassembles a Triple from its three role-tagged paths,
// dispatching on each path's tag rather than its position in the slice:
// CanonicalPaths may reorder paths relative to the order Paths() emitted
// them in, so the tag — not the index — is the only reliable way to tell
// which field a path belongs to.
func fromPaths(paths []sieve.Path) (sieve.Sentence, error) {
	if len(paths) != 3 {
		return nil, &malformedTriple{got: len(paths)}
	}
	var subject, predicate, object Symbol
	var haveSubject, havePredicate, haveObject bool
	for _, p := range paths {
		if len(p) != 2 {
			return nil, &malformedTriple{got: len(paths), detail: "each field must be a role tag followed by one syntagm"}
		}
		tag, ok := p[0].(Symbol)
		if !ok {
			return nil, &malformedTriple{got: len(paths), detail: "role tag is not a triples.Symbol"}
		}
		field, ok := p[1].(Symbol)
		if !ok {
			return nil, &malformedTriple{got: len(paths), detail: "field is not a triples.Symbol"}
		}
		switch tag {
		case subjTag:
			subject, haveSubject = field, true
		case predTag:
			predicate, havePredicate = field, true
		case objTag:
			object, haveObject = field, true
		default:
			return nil, &malformedTriple{got: len(paths), detail: "unrecognized role tag " + tag.Display()}
		}
	}
	if !haveSubject || !havePredicate || !haveObject {
		return nil, &malformedTriple{got: len(paths), detail: "missing subject, predicate, or object role"}
	}
	return Triple{Subject: subject, Predicate: predicate, Object: object}, nil
}

type malformedTriple struct {
	got    int
	detail string
}

func (e *malformedTriple) Error() string {
	if e.detail != "" {
		return e.detail
	}
	return "triples: a triple has exactly 3 fields, got " + strconv.Itoa(e.got)
}
