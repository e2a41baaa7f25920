// Package decode turns a solved csp.State back into the grids and
// unmet-requirement report the HTTP layer returns, mirroring the
// original solver's output-building and recount block (spec.md §4.7).
package decode

import (
	"smuggr.xyz/timeweave/core/csp"
	"smuggr.xyz/timeweave/core/model"
)

// UnmetRequirement reports a (class, subject) pair that did not receive
// its full weekly hour requirement.
type UnmetRequirement struct {
	ClassID        string `json:"class_id"`
	SubjectID      string `json:"subject_id"`
	RequiredHours  int    `json:"required_hours"`
	ScheduledHours int    `json:"scheduled_hours"`
	Reason         string `json:"reason"`
}

const (
	ReasonInfeasible  = "infeasible_under_current_constraints"
	ReasonNoEligible  = "no_eligible_combos_or_slots"
)

// BuildGrids allocates and fills class_timetables and faculty_timetables
// from every placement active in st. faculty_timetables is shaped to
// max_days = the largest days_per_week among all classes.
func BuildGrids(n *model.Normalized, st *csp.State) (classGrids, facultyGrids map[string]model.Grid) {
	classGrids = make(map[string]model.Grid, len(n.Classes))
	for _, c := range n.Classes {
		classGrids[c.ID] = model.NewGrid(c.DaysPerWeek, n.HoursPerDay, n.BreakHours)
	}

	maxDays := 0
	for _, c := range n.Classes {
		if c.DaysPerWeek > maxDays {
			maxDays = c.DaysPerWeek
		}
	}
	facultyGrids = make(map[string]model.Grid, len(n.Faculties))
	for _, f := range n.Faculties {
		facultyGrids[f.ID] = model.NewGrid(maxDays, n.HoursPerDay, n.BreakHours)
	}

	for _, p := range st.ActivePlacements() {
		grid, ok := classGrids[p.ClassID]
		if ok {
			for h := p.Hour; h < p.Hour+p.Block; h++ {
				if p.Day < len(grid) && h < len(grid[p.Day]) {
					grid[p.Day][h] = model.Cell{ComboID: p.ComboID}
				}
			}
		}
		for _, fid := range p.Combo.FacultyIDs {
			fg, ok := facultyGrids[fid]
			if !ok {
				continue
			}
			for h := p.Hour; h < p.Hour+p.Block; h++ {
				if p.Day < len(fg) && h < len(fg[p.Day]) {
					fg[p.Day][h] = model.Cell{ComboID: p.ComboID}
				}
			}
		}
	}

	return classGrids, facultyGrids
}

// ComputeUnmetRequirements recounts, from the decoded class grids rather
// than the placement set, the scheduled hours for every (class, subject)
// pair with req > 0, so the report reflects whatever actually made it
// into the grid (including a greedy fallback's partial fill).
func ComputeUnmetRequirements(n *model.Normalized, classReq map[[2]string]int, noEligible map[[2]string]bool, classGrids map[string]model.Grid) []UnmetRequirement {
	var out []UnmetRequirement
	for _, c := range n.Classes {
		for _, s := range n.Subjects {
			req := classReq[[2]string{c.ID, s.ID}]
			if req <= 0 {
				continue
			}
			scheduled := countScheduledHours(n, classGrids[c.ID], c.ID, s.ID)
			if scheduled >= req {
				continue
			}
			reason := ReasonInfeasible
			if noEligible[[2]string{c.ID, s.ID}] {
				reason = ReasonNoEligible
			}
			out = append(out, UnmetRequirement{
				ClassID:        c.ID,
				SubjectID:      s.ID,
				RequiredHours:  req,
				ScheduledHours: scheduled,
				Reason:         reason,
			})
		}
	}
	return out
}

func countScheduledHours(n *model.Normalized, grid model.Grid, classID, subjectID string) int {
	if grid == nil {
		return 0
	}
	count := 0
	for _, row := range grid {
		for _, cell := range row {
			if !cell.IsFilled() {
				continue
			}
			combo, ok := n.ComboByID[cell.ComboID]
			if !ok || combo.SubjectID != subjectID {
				continue
			}
			count++
		}
	}
	return count
}
