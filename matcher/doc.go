/*
Package matcher matches grammar rules against the front of an input string.

Two strategies are available. FirstMatch, the default, commits every rule to the
first alternative that succeeds and returns a single remainder; it is exact for
grammars whose rule expansions are unambiguous in length for a given prefix. Backtrack
keeps every feasible remainder of every rule and is exact for any grammar accepted by New,
at the cost of a per-message memo table.

Rules are allowed to reference themselves only in two shapes:

	P: B | B P        (Repetition, one or more B)
	Q: B C | B Q C    (Nested, n times B followed by n times C)

Any other cycle in the rule graph is rejected by New. A root rule defined as
"P Q" where P is a Repetition of B and Q is Nested over the same B is recognized as
Composite and matched by a bounded (n, m) search when FirstMatch is used, since a
committed match of P would swallow the B's that Q needs.
*/
package matcher

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
