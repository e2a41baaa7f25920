// Package greedy provides the best-effort fallback fill (C8) run when
// the CSP search reports infeasible and a caller has opted into a
// partial result, grounded on the constructive-then-repair placement
// pattern used for scheduling entities elsewhere in the pack.
package greedy

import (
	"sort"

	"go.uber.org/zap"

	"smuggr.xyz/timeweave/core/csp"
	"smuggr.xyz/timeweave/core/variables"
)

// Fill runs a deterministic greedy placement: fixed slots first (skipping
// conflicts), then (class, subject) demand in descending required-hours
// order, each time taking the first legal candidate in row-major
// (day, hour) order. It does not backtrack, so it can leave demand
// unmet — that shortfall surfaces normally through the unmet-requirement
// recount. logger may be nil; every placement decision is traced at
// Debug via a SugaredLogger so a verbose fallback run can be replayed
// from logs without attaching a debugger.
func Fill(m *csp.Model, ix *variables.Index, logger *zap.Logger) *csp.State {
	if logger == nil {
		logger = zap.NewNop()
	}
	sugar := logger.Sugar()

	st := csp.NewState(ix)

	for _, p := range m.Forced {
		if legal(m, st, p) {
			st.Assign(p, true)
			sugar.Debugw("greedy_forced", "class", p.ClassID, "subject", p.Subject.ID, "day", p.Day, "hour", p.Hour)
		}
	}

	type demand struct {
		ClassID   string
		SubjectID string
		Required  int
	}
	seen := map[[2]string]bool{}
	var demands []demand
	for _, p := range ix.Placements {
		key := [2]string{p.ClassID, p.Subject.ID}
		if seen[key] {
			continue
		}
		seen[key] = true
		req := ix.RequiredHoursFor(p.ClassID, p.Subject.ID)
		if req > 0 {
			demands = append(demands, demand{p.ClassID, p.Subject.ID, req})
		}
	}
	sort.SliceStable(demands, func(i, j int) bool {
		return demands[i].Required > demands[j].Required
	})

	for _, d := range demands {
		already := 0
		for _, p := range st.ActivePlacements() {
			if p.ClassID == d.ClassID && p.Subject.ID == d.SubjectID {
				already += p.Block
			}
		}
		remaining := d.Required - already
		if remaining <= 0 {
			continue
		}
		candidates := ix.PlacementsFor(d.ClassID, d.SubjectID)
		for _, p := range candidates {
			if remaining <= 0 {
				break
			}
			if st.Assigned[p.ID] {
				continue
			}
			if legal(m, st, p) {
				st.Assign(p, true)
				remaining -= p.Block
				sugar.Debugw("greedy_placed", "class", p.ClassID, "subject", p.Subject.ID, "day", p.Day, "hour", p.Hour, "remaining", remaining)
			}
		}
		if remaining > 0 {
			sugar.Debugw("greedy_shortfall", "class", d.ClassID, "subject", d.SubjectID, "remaining", remaining)
		}
	}

	return st
}

func legal(m *csp.Model, st *csp.State, p *variables.Placement) bool {
	for _, pred := range m.Hard {
		if !pred(st, p, true) {
			return false
		}
	}
	return true
}
