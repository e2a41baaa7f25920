// Package objective aggregates a csp.Model's soft terms into the single
// scalar the search minimizes, mirroring the original solver's practice
// of summing weighted penalty expressions into one objective (and
// treating an empty term list as "no objective", i.e. any hard-feasible
// assignment is optimal).
package objective

import "smuggr.xyz/timeweave/core/csp"

// Evaluate returns the weighted sum of every soft term's penalty over
// st, plus a per-term breakdown for diagnostics.
func Evaluate(m *csp.Model, st *csp.State) (total int, breakdown map[string]int) {
	breakdown = make(map[string]int, len(m.Soft))
	for _, term := range m.Soft {
		penalty := term.Eval(st)
		breakdown[term.Name] = penalty * term.Weight
		total += penalty * term.Weight
	}
	return total, breakdown
}
