package sieve

import "github.com/google/uuid"

// activationMatch carries a pre-computed rules-tree leaf hit: the specific
// (rule, condition) pair an activation resolves, and the assignment induced
// by that match. It is set when the activation was produced by a newly
// told rule's facts-tree pre-population (§4.4's "tell(rule)" path); it is
// nil for a bare fact insertion, which must still be matched broadly
// against the whole rules tree when it is processed.
type activationMatch struct {
	rule      *Rule
	condIndex int
	assignment Assignment
}

// activation is a single unit of pending work in the engine's FIFO queue:
// "this sentence needs to be matched and installed." Activations are
// ephemeral — created when enqueued, discarded once processed.
type activation struct {
	id       uuid.UUID
	sentence Sentence
	match    *activationMatch
}

// activationQueue is a plain FIFO queue. The engine is single-threaded and
// synchronous (see the concurrency design notes), so this is an explicit
// slice-backed deque rather than a channel: there is exactly one producer
// and one consumer, both running on the caller's goroutine inside one Tell
// call, and a channel would add synchronization this loop never needs.
type activationQueue struct {
	items []*activation
}

func (q *activationQueue) enqueue(a *activation) {
	q.items = append(q.items, a)
}

func (q *activationQueue) dequeue() (*activation, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	a := q.items[0]
	q.items = q.items[1:]
	return a, true
}
