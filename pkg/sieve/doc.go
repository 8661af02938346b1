// Package sieve implements a forward-chaining production rule engine built
// around a pair of hash-indexed discrimination trees: one indexing the
// premises of outstanding rules, one indexing every asserted fact. Telling
// the knowledge base a new fact walks the rules tree and either produces new
// facts (when a rule's premises are now all satisfied) or a more specialized
// rule (when only some premises are satisfied); telling it a new rule walks
// the facts tree to pre-populate activations for facts already on hand.
//
// The engine never inspects the content of a sentence directly. Sentence and
// Syntagm are supplied by a grammar plug-in (see Grammar); sieve only hashes,
// compares, and displays them through that contract. A reference grammar for
// subject-predicate-object triples lives in the triples subpackage.
package sieve
