// Package csp hand-rolls the placement search the rest of the pipeline
// drives: no constraint-programming or ILP library exists anywhere in
// the reference corpus (verified by inspection), so this package plays
// the role a CP-SAT model would in the original design — a mutable grid
// state, a set of hard predicates that must hold at every accepted
// move, and a weighted soft-penalty objective minimized by seeded local
// search.
package csp

import "smuggr.xyz/timeweave/core/variables"

// Status mirrors the outcome taxonomy a CP-SAT-style solver reports.
type Status string

const (
	StatusOptimal     Status = "optimal"
	StatusFeasible    Status = "feasible"
	StatusInfeasible  Status = "infeasible"
	StatusUnknown     Status = "unknown"
	StatusModelInvalid Status = "model_invalid"
)

// HardPredicate evaluates whether state remains legal after assigning
// placement p to value (true = occupied). It must be cheap: the search
// calls it once per candidate move.
type HardPredicate func(st *State, p *variables.Placement, value bool) bool

// SoftTerm computes a non-negative penalty contribution from the full
// state. Unlike HardPredicate it is evaluated over the whole grid, not
// incrementally, since soft terms (continuity runs, clustering caps)
// need the neighborhood around a change anyway.
type SoftTerm struct {
	Name   string
	Weight int
	Eval   func(st *State) int
}

// Model bundles everything the driver needs to run a search: the
// placement universe, the hard predicates every accepted assignment
// must satisfy, the weighted soft terms forming the objective, and the
// set of placements forced on by fixed slots.
type Model struct {
	Index    *variables.Index
	Hard     []HardPredicate
	Soft     []SoftTerm
	Forced   []*variables.Placement // fixed-slot placements, assigned before search starts
	Required map[requiredKey]int    // (classID, subjectID) -> hours still to place
}

type requiredKey struct {
	ClassID   string
	SubjectID string
}

func NewModel(ix *variables.Index) *Model {
	return &Model{Index: ix, Required: map[requiredKey]int{}}
}

func (m *Model) AddHard(pred HardPredicate) {
	m.Hard = append(m.Hard, pred)
}

func (m *Model) AddSoft(term SoftTerm) {
	m.Soft = append(m.Soft, term)
}

// State is the mutable assignment the search mutates in place: for
// every placement, whether it is currently chosen (Assigned), plus
// derived occupancy maps kept in sync so hard predicates can check
// conflicts in O(1).
type State struct {
	Assigned      map[int]bool // placement ID -> chosen
	ClassOccupied map[classHour]*variables.Placement
	TeacherOccupied map[teacherHour]*variables.Placement
	ByPlacement   map[int]*variables.Placement
}

type classHour struct {
	ClassID string
	Day     int
	Hour    int
}

type teacherHour struct {
	FacultyID string
	Day       int
	Hour      int
}

func NewState(ix *variables.Index) *State {
	st := &State{
		Assigned:        map[int]bool{},
		ClassOccupied:   map[classHour]*variables.Placement{},
		TeacherOccupied: map[teacherHour]*variables.Placement{},
		ByPlacement:     map[int]*variables.Placement{},
	}
	for _, p := range ix.Placements {
		st.ByPlacement[p.ID] = p
	}
	return st
}

// Assign flips a placement on/off and maintains the occupancy indices.
// Callers are expected to have already verified legality via hard
// predicates; Assign itself does not check.
func (st *State) Assign(p *variables.Placement, value bool) {
	st.Assigned[p.ID] = value
	for h := p.Hour; h < p.Hour+p.Block; h++ {
		ch := classHour{p.ClassID, p.Day, h}
		if value {
			st.ClassOccupied[ch] = p
		} else if st.ClassOccupied[ch] == p {
			delete(st.ClassOccupied, ch)
		}
		for _, fid := range p.Combo.FacultyIDs {
			th := teacherHour{fid, p.Day, h}
			if value {
				st.TeacherOccupied[th] = p
			} else if st.TeacherOccupied[th] == p {
				delete(st.TeacherOccupied, th)
			}
		}
	}
}

// IsClassFree reports whether class/day/hour has no placement occupying it.
func (st *State) IsClassFree(classID string, day, hour int) bool {
	_, occupied := st.ClassOccupied[classHour{classID, day, hour}]
	return !occupied
}

// IsTeacherFree reports whether faculty/day/hour has no placement occupying it.
func (st *State) IsTeacherFree(facultyID string, day, hour int) bool {
	_, occupied := st.TeacherOccupied[teacherHour{facultyID, day, hour}]
	return !occupied
}

// ActivePlacements returns every placement currently assigned true, in
// ascending placement-ID order.
func (st *State) ActivePlacements() []*variables.Placement {
	var out []*variables.Placement
	for _, id := range sortedPlacementIDs(st.Assigned) {
		if st.Assigned[id] {
			out = append(out, st.ByPlacement[id])
		}
	}
	return out
}
