package sieve

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// GrammarViolation reports that the grammar plug-in's FromPaths rejected a
// path-set reconstruction — the plug-in's round-trip invariant
// (FromPaths(s.Paths()) == s) doesn't hold for whatever paths the engine
// just tried to rebuild a sentence from. It is always returned synchronously
// from the Tell call that triggered the reconstruction.
type GrammarViolation struct {
	Paths []Path
	Cause error
}

func (e *GrammarViolation) Error() string {
	return fmt.Sprintf("sieve: grammar rejected reconstruction of %d path(s): %v", len(e.Paths), e.Cause)
}

func (e *GrammarViolation) Unwrap() error { return e.Cause }

// MalformedRule reports that a rule failed validation: either it has zero
// conditions (facts should be told directly instead), or one of its
// consequences mentions a variable that no condition binds. Detected at
// TellRule time for a user-told rule, and — defensively — when a derived
// specialization's consequence still carries an unbound variable after its
// last condition has been consumed.
type MalformedRule struct {
	Reason string
}

func (e *MalformedRule) Error() string {
	return "sieve: malformed rule: " + e.Reason
}

// InvariantViolation reports that an internal consistency check failed —
// the discrimination tree's hash-table bookkeeping disagreed with itself.
// This should be unreachable; its presence here is a bug report, not a
// recoverable condition a caller can act on.
type InvariantViolation struct {
	Detail string
}

func (e *InvariantViolation) Error() string {
	return "sieve: invariant violation: " + e.Detail
}

// newMalformedRule aggregates one or more malformed-rule causes into a
// single MalformedRule-compatible error using go-multierror, so a rule with
// several unsafe consequences reports all of them instead of only the
// first one found.
func newMalformedRule(reasons ...string) error {
	if len(reasons) == 0 {
		return nil
	}
	if len(reasons) == 1 {
		return &MalformedRule{Reason: reasons[0]}
	}
	var merr *multierror.Error
	for _, r := range reasons {
		merr = multierror.Append(merr, &MalformedRule{Reason: r})
	}
	merr.ErrorFormat = func(errs []error) string {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return fmt.Sprintf("sieve: %d malformed rule cause(s) found", len(errs)) + ": " + strings.Join(msgs, "; ")
	}
	return merr
}
