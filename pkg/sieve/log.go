package sieve

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// logAddingFact and logAddingRule emit the exact log lines the library
// contract promises (see the external interfaces section of the design):
// one info-level line per told fact or rule, in a fixed, grammar-display-
// driven format. Both user-told rules and engine-derived specialized rules
// go through logAddingRule, deliberately: a reader of the log cannot and
// should not tell the two apart, matching the design's note that tests
// relying on byte-identical log output must treat both uniformly.
func logAddingFact(logger hclog.Logger, s Sentence) {
	logger.Info(fmt.Sprintf("adding fact %q", s.String()))
}

func logAddingRule(logger hclog.Logger, r *Rule) {
	logger.Info(fmt.Sprintf("adding rule %q", ruleDisplay(r)))
}

// ruleDisplay renders a rule using the contract's "c1; c2; ... -> k1; k2; ..."
// format: semicolons between premises, semicolons between consequences, and
// " -> " separating the two sets.
func ruleDisplay(r *Rule) string {
	conds := make([]string, len(r.Conditions))
	for i, c := range r.Conditions {
		conds[i] = c.String()
	}
	cons := make([]string, len(r.Consequences))
	for i, c := range r.Consequences {
		cons[i] = c.String()
	}
	return strings.Join(conds, "; ") + " -> " + strings.Join(cons, "; ")
}
