package sieve

import "sort"

// edge is one outgoing branch of a node: the path that must be matched to
// take it, and the node it leads to.
type edge[P any] struct {
	path  Path
	child *node[P]
}

// node is one internal (or leaf, or both) position in a discrimination
// tree. Ground branching uses groundChildren, a hash table keyed by the
// full 64-bit digest of the branch's path — the "single hash-table lookup"
// the design promises for every concrete step. Collisions (two distinct
// paths sharing a digest) are resolved by falling back to Path.Equal across
// the (normally single-element) bucket slice.
//
// Variable branches cannot be hashed this way, because two rules can use
// different variable symbols at the same tree position: a lookup there
// compares by "matching shape" (rolePrefixEqual) rather than by hash, so
// varChildren is kept as a small ordered slice instead. The order is
// insertion order, which is also activation emission order for ties among
// variable branches (see the design's tie-break note).
//
// A node may carry both children (if some sentence extends past this point)
// and a payload (if some other sentence's path sequence ends exactly here)
// — payload is not exclusive to leaves in the usual trie sense.
type node[P any] struct {
	groundChildren map[uint64][]*edge[P]
	varChildren    []*edge[P]
	payload        []P
}

func newNode[P any]() *node[P] {
	return &node[P]{groundChildren: make(map[uint64][]*edge[P])}
}

// tree is the generic n-ary discrimination tree shared by the rules tree
// and the facts tree. Each level of the tree consumes one whole Path from a
// sentence's canonically-ordered path set; the tree's depth at any point
// equals the number of paths consumed so far.
type tree[P any] struct {
	root *node[P]
}

func newTree[P any]() *tree[P] {
	return &tree[P]{root: newNode[P]()}
}

// childFor returns the child reached by path p from n, creating it (and the
// edge leading to it) if create is true and no matching child exists yet.
func (n *node[P]) childFor(p Path, create bool) *node[P] {
	if p.IsVariable() {
		for _, e := range n.varChildren {
			if rolePrefixEqual(e.path, p) {
				return e.child
			}
		}
		if !create {
			return nil
		}
		child := newNode[P]()
		n.varChildren = append(n.varChildren, &edge[P]{path: p, child: child})
		return child
	}
	h := p.Hash()
	for _, e := range n.groundChildren[h] {
		if e.path.Equal(p) {
			return e.child
		}
	}
	if !create {
		return nil
	}
	child := newNode[P]()
	n.groundChildren[h] = append(n.groundChildren[h], &edge[P]{path: p, child: child})
	return child
}

// insert walks (creating nodes as needed) the path sequence of a sentence
// and appends payload to the terminal node, unless payload is already
// present there (Equal, via eq) — insertion is monotone and idempotent at
// the leaf, matching the set semantics the design requires.
func (t *tree[P]) insert(paths []Path, payload P, eq func(a, b P) bool) {
	n := t.root
	for _, p := range paths {
		n = n.childFor(p, true)
	}
	for _, existing := range n.payload {
		if eq(existing, payload) {
			return
		}
	}
	n.payload = append(n.payload, payload)
}

// lookupExact descends the tree along the exact ground path sequence with
// no variable-branch fan-out, returning the terminal node's payload, or nil
// if no such sentence was ever inserted. Used for exact-match dedup queries
// against the facts tree.
func (t *tree[P]) lookupExact(paths []Path) []P {
	n := t.root
	for _, p := range paths {
		n = n.childFor(p, false)
		if n == nil {
			return nil
		}
	}
	return n.payload
}

// match pairs a leaf's payload with the assignment accumulated along the
// branch that reached it.
type match[P any] struct {
	payload    []P
	assignment Assignment
}

// queryGround walks the tree with a ground sentence's path sequence,
// following both exact ground-hash matches and any variable-branch edges
// whose shape fits, extending the assignment with variable -> concrete-
// syntagm bindings as it goes. This is §4.2's rules-tree query: the
// variables live in the tree, the query is ground. Variable branches at one
// node are explored in their insertion order (see node's doc comment).
//
// Caller note: since distinct (rule, condition) pairs with the same
// ground/variable shape share tree edges, the returned assignment's
// variable names come from whichever edge was created first and are not
// reliable for a specific matched payload — a caller that needs the real
// per-payload bindings should re-derive them from the matched payload's own
// condition (see engine.go's process). For the same reason a variable edge
// whose name is already bound to a different value on this branch is still
// followed, without adding the clashing binding, so the result can include
// payloads whose own condition does not unify with the query.
func (t *tree[P]) queryGround(paths []Path) []match[P] {
	var out []match[P]
	var walk func(n *node[P], idx int, asg Assignment)
	walk = func(n *node[P], idx int, asg Assignment) {
		if idx == len(paths) {
			if len(n.payload) > 0 {
				out = append(out, match[P]{payload: n.payload, assignment: asg})
			}
			return
		}
		qp := paths[idx]
		if edges, ok := n.groundChildren[qp.Hash()]; ok {
			for _, e := range edges {
				if e.path.Equal(qp) {
					walk(e.child, idx+1, asg)
				}
			}
		}
		for _, e := range n.varChildren {
			if !rolePrefixEqual(e.path, qp) {
				continue
			}
			v, _ := e.path.Variable()
			val := qp[len(qp)-1]
			next, ok := asg.Bind(v, val)
			if !ok {
				next = asg
			}
			walk(e.child, idx+1, next)
		}
	}
	walk(t.root, 0, NewAssignment())
	return out
}

// queryPattern walks a ground-only tree (the facts tree) with a pattern's
// path sequence, where the variables live in the query instead of the tree.
// A variable pattern path at a node matches every ground child whose
// non-terminal positions agree with the pattern's own non-terminal
// positions, binding the pattern's variable to each candidate's terminal
// syntagm in turn (candidates are visited in canonical path order, so the
// result order does not depend on map iteration) and fanning out. This is
// §4.3's pre-population query used
// when a new rule premise is told against facts already on hand.
func (t *tree[P]) queryPattern(paths []Path) []match[P] {
	var out []match[P]
	var walk func(n *node[P], idx int, asg Assignment)
	walk = func(n *node[P], idx int, asg Assignment) {
		if idx == len(paths) {
			if len(n.payload) > 0 {
				out = append(out, match[P]{payload: n.payload, assignment: asg})
			}
			return
		}
		pp := paths[idx]
		if !pp.IsVariable() {
			if edges, ok := n.groundChildren[pp.Hash()]; ok {
				for _, e := range edges {
					if e.path.Equal(pp) {
						walk(e.child, idx+1, asg)
					}
				}
			}
			return
		}
		v, _ := pp.Variable()
		var cands []*edge[P]
		for _, edges := range n.groundChildren {
			for _, e := range edges {
				if rolePrefixEqual(e.path, pp) {
					cands = append(cands, e)
				}
			}
		}
		sort.Slice(cands, func(i, j int) bool { return comparePaths(cands[i].path, cands[j].path) < 0 })
		for _, e := range cands {
			val := e.path[len(e.path)-1]
			next, ok := asg.Bind(v, val)
			if !ok {
				continue
			}
			walk(e.child, idx+1, next)
		}
	}
	walk(t.root, 0, NewAssignment())
	return out
}

// clone deep-copies the tree so a cascade that needs to roll back (see
// errors.go and kb.go) can restore a snapshot taken before it started
// mutating. This mirrors the teacher's persistent, copy-on-write storage
// idiom (pldb.go's Database), applied here as an explicit checkpoint rather
// than structural sharing, since the engine mutates a tree far more often
// than it needs to branch it.
func (t *tree[P]) clone() *tree[P] {
	return &tree[P]{root: cloneNode(t.root)}
}

func cloneNode[P any](n *node[P]) *node[P] {
	if n == nil {
		return nil
	}
	cp := &node[P]{
		groundChildren: make(map[uint64][]*edge[P], len(n.groundChildren)),
		varChildren:    make([]*edge[P], len(n.varChildren)),
		payload:        append([]P(nil), n.payload...),
	}
	for h, edges := range n.groundChildren {
		newEdges := make([]*edge[P], len(edges))
		for i, e := range edges {
			newEdges[i] = &edge[P]{path: e.path, child: cloneNode(e.child)}
		}
		cp.groundChildren[h] = newEdges
	}
	for i, e := range n.varChildren {
		cp.varChildren[i] = &edge[P]{path: e.path, child: cloneNode(e.child)}
	}
	return cp
}
