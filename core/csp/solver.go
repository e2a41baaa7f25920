package csp

import (
	"context"
	"math/rand"
	"sort"

	"smuggr.xyz/timeweave/core/variables"
)

// Result is what Solve returns: the final state, its objective value,
// and the status to report to the caller.
type Result struct {
	State     *State
	Objective int
	Status    Status
}

// Options tunes the search. Budgets are iteration counts, not wall-clock
// durations, so that identical input and seed produce byte-identical
// output regardless of machine speed; ctx is only a safety valve against
// a caller-configured deadline, not the primary stopping signal.
type Options struct {
	RandomSeed    int64
	MaxLocalMoves int
}

// Solve runs a constructive fill followed by seeded local search. It
// never mutates m; all state lives in the returned *State.
func Solve(ctx context.Context, m *Model, opts Options) Result {
	st := NewState(m.Index)
	rng := rand.New(rand.NewSource(opts.RandomSeed))

	for _, p := range m.Forced {
		if legal(m, st, p, true) {
			st.Assign(p, true)
		}
	}

	ordered := make([]*variables.Placement, len(m.Index.Placements))
	copy(ordered, m.Index.Placements)

	type reqEntry struct {
		Key   classSubjectKey
		Hours int
	}
	var reqs []reqEntry
	seen := map[classSubjectKey]bool{}
	for _, p := range ordered {
		k := classSubjectKey{p.ClassID, p.Subject.ID}
		if seen[k] {
			continue
		}
		seen[k] = true
		req := m.Index.RequiredHoursFor(k.ClassID, k.SubjectID)
		reqs = append(reqs, reqEntry{k, req})
	}

	infeasible := false
	for _, entry := range reqs {
		if entry.Hours <= 0 {
			continue
		}
		already := 0
		for _, p := range st.ActivePlacements() {
			if p.ClassID == entry.Key.ClassID && p.Subject.ID == entry.Key.SubjectID {
				already += p.Block
			}
		}
		remaining := entry.Hours - already
		if remaining <= 0 {
			continue
		}
		candidates := m.Index.PlacementsFor(entry.Key.ClassID, entry.Key.SubjectID)
		placedThisRound := 0
		for _, p := range candidates {
			if placedThisRound >= remaining {
				break
			}
			if st.Assigned[p.ID] {
				continue
			}
			if legal(m, st, p, true) {
				st.Assign(p, true)
				placedThisRound += p.Block
			}
		}
		if placedThisRound < remaining {
			infeasible = true
		}
	}

	if infeasible {
		return Result{State: st, Objective: evalTotal(m, st), Status: StatusInfeasible}
	}

	best := cloneAssigned(st)
	bestObj := evalTotal(m, st)

	moves := opts.MaxLocalMoves
	if moves <= 0 {
		moves = 200 * len(ordered)
		if moves > 20000 {
			moves = 20000
		}
	}

	for i := 0; i < moves; i++ {
		select {
		case <-ctx.Done():
			restore(st, best)
			return Result{State: st, Objective: bestObj, Status: StatusFeasible}
		default:
		}

		a := ordered[rng.Intn(len(ordered))]
		b := ordered[rng.Intn(len(ordered))]
		if a.ID == b.ID {
			continue
		}
		if isForced(m, a) || isForced(m, b) {
			continue
		}
		aOn, bOn := st.Assigned[a.ID], st.Assigned[b.ID]
		if aOn == bOn {
			continue
		}
		swapOn, swapOff := a, b
		if bOn {
			swapOn, swapOff = b, a
		}
		if !legal(m, st, swapOff, false) {
			continue
		}
		st.Assign(swapOff, false)
		if !legal(m, st, swapOn, true) {
			st.Assign(swapOff, true)
			continue
		}
		st.Assign(swapOn, true)

		obj := evalTotal(m, st)
		if obj <= bestObj {
			bestObj = obj
			best = cloneAssigned(st)
		} else {
			st.Assign(swapOn, false)
			st.Assign(swapOff, true)
		}
	}

	restore(st, best)
	status := StatusOptimal
	if bestObj > 0 {
		status = StatusFeasible
	}
	return Result{State: st, Objective: bestObj, Status: status}
}

type classSubjectKey struct {
	ClassID   string
	SubjectID string
}

func legal(m *Model, st *State, p *variables.Placement, value bool) bool {
	for _, pred := range m.Hard {
		if !pred(st, p, value) {
			return false
		}
	}
	return true
}

func isForced(m *Model, p *variables.Placement) bool {
	for _, f := range m.Forced {
		if f.ID == p.ID {
			return true
		}
	}
	return false
}

func evalTotal(m *Model, st *State) int {
	total := 0
	for _, term := range m.Soft {
		total += term.Eval(st) * term.Weight
	}
	return total
}

func cloneAssigned(st *State) map[int]bool {
	out := make(map[int]bool, len(st.Assigned))
	for k, v := range st.Assigned {
		out[k] = v
	}
	return out
}

func restore(st *State, snapshot map[int]bool) {
	for id, on := range st.Assigned {
		if want, ok := snapshot[id]; !ok || want != on {
			st.Assign(st.ByPlacement[id], snapshot[id])
		}
	}
	for id, on := range snapshot {
		if _, ok := st.Assigned[id]; !ok {
			st.Assign(st.ByPlacement[id], on)
		}
	}
}

// sortedPlacementIDs returns placement IDs in ascending order; kept for
// callers needing a deterministic traversal order independent of map
// iteration.
func sortedPlacementIDs(ids map[int]bool) []int {
	out := make([]int, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
