// Package telemetry provides a small set of atomic counters for the
// activation engine, in the spirit of the teacher's worker-pool
// ExecutionStats: a handful of int64 counters behind a Snapshot() method,
// sized down here to exactly what a single-threaded, synchronous engine
// needs to report (there are no queue-depth or worker-count gauges to track
// — sieve has no pool of workers, just one drain loop per Tell call).
package telemetry

import "sync/atomic"

// Counters tracks activation-engine activity for debug and logging
// purposes. All fields are updated with atomic operations so a Counters
// value can be shared safely by a knowledge base's read-only Stats() call
// even though engine mutation itself is confined to a single goroutine.
type Counters struct {
	activationsProcessed int64
	factsInstalled       int64
	factsDeduped         int64
	rulesSpecialized     int64
	rulesFired           int64
}

// Snapshot is a point-in-time copy of Counters safe to hand to a caller.
type Snapshot struct {
	ActivationsProcessed int64
	FactsInstalled       int64
	FactsDeduped         int64
	RulesSpecialized     int64
	RulesFired           int64
}

func (c *Counters) RecordActivationProcessed() { atomic.AddInt64(&c.activationsProcessed, 1) }
func (c *Counters) RecordFactInstalled()        { atomic.AddInt64(&c.factsInstalled, 1) }
func (c *Counters) RecordFactDeduped()          { atomic.AddInt64(&c.factsDeduped, 1) }
func (c *Counters) RecordRuleSpecialized()      { atomic.AddInt64(&c.rulesSpecialized, 1) }
func (c *Counters) RecordRuleFired()            { atomic.AddInt64(&c.rulesFired, 1) }

// Snapshot returns a consistent-enough copy of the current counts. Exact
// cross-field consistency isn't promised (each field is read with its own
// atomic load), which is fine for debug reporting.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		ActivationsProcessed: atomic.LoadInt64(&c.activationsProcessed),
		FactsInstalled:       atomic.LoadInt64(&c.factsInstalled),
		FactsDeduped:         atomic.LoadInt64(&c.factsDeduped),
		RulesSpecialized:     atomic.LoadInt64(&c.rulesSpecialized),
		RulesFired:           atomic.LoadInt64(&c.rulesFired),
	}
}
