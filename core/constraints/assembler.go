// Package constraints turns an AppliedConfig into the hard predicates and
// soft penalty terms csp.Model runs search against, grounded on the
// constraint blocks of the original solver (each function here
// corresponds to one of that source's constraint-building blocks,
// translated from "add a linear constraint to the model" to "reject an
// illegal move" / "add a penalty term").
package constraints

import (
	"strconv"

	"smuggr.xyz/timeweave/core/config"
	"smuggr.xyz/timeweave/core/csp"
	"smuggr.xyz/timeweave/core/model"
	"smuggr.xyz/timeweave/core/variables"
)

// Assemble installs every hard predicate and soft term spec.md §4.4
// describes onto m, in the order classes/constraints are evaluated
// elsewhere in the pipeline: structural first, then weekly hours, then
// the continuity/load-balance family.
func Assemble(m *csp.Model, n *model.Normalized, ix *variables.Index, cfg config.AppliedConfig) {
	addStructural(m)
	addWeeklySubjectHours(m, n, ix, cfg)
	addNoGaps(m, n, cfg)
	addClassDailyMinimumLoad(m, n, cfg)
	addTeacherWeeklyLoadBalance(m, n, ix, cfg)
	addTeacherAvailabilityPenalty(m, cfg)

	addTeacherContinuity(m, n, cfg)
	addClassContinuity(m, n, cfg)
	addTeacherDailyOverload(m, n, cfg)
	addSubjectClustering(m, n, cfg)
	addFrontLoading(m, n, cfg)
	addTeacherBoundaryPreference(m, n, cfg)
}

// addStructural enforces the two invariants that are always hard
// regardless of configuration: a class can host at most one combo per
// hour, and a teacher can teach at most one combo per hour.
func addStructural(m *csp.Model) {
	m.AddHard(func(st *csp.State, p *variables.Placement, value bool) bool {
		if !value {
			return true
		}
		for h := p.Hour; h < p.Hour+p.Block; h++ {
			if !st.IsClassFree(p.ClassID, p.Day, h) {
				return false
			}
			for _, fid := range p.Combo.FacultyIDs {
				if !st.IsTeacherFree(fid, p.Day, h) {
					return false
				}
			}
		}
		return true
	})
}

// addWeeklySubjectHours enforces that a class's placed hours for a
// subject never exceed the requirement (always hard — overshoot is
// never desirable). When hard is set it also rejects local search
// turning a placement off if doing so would drop a (class,subject) pair
// that is exactly at its requirement below it — without this, the
// swap-based local search in core/csp/solver.go is free to de-assign any
// currently-on placement, silently corrupting a hard-mode exact-hours
// guarantee. When hard is false, a shortage soft term penalizes whatever
// shortfall search settles on instead of forbidding it.
func addWeeklySubjectHours(m *csp.Model, n *model.Normalized, ix *variables.Index, cfg config.AppliedConfig) {
	placedFor := func(st *csp.State, classID, subjectID string) int {
		placed := 0
		for _, other := range st.ActivePlacements() {
			if other.ClassID == classID && other.Subject.ID == subjectID {
				placed += other.Block
			}
		}
		return placed
	}

	m.AddHard(func(st *csp.State, p *variables.Placement, value bool) bool {
		req := ix.RequiredHoursFor(p.ClassID, p.Subject.ID)
		placed := placedFor(st, p.ClassID, p.Subject.ID)
		if value {
			return placed+p.Block <= req
		}
		if !cfg.WeeklySubjectHours.Hard || req <= 0 {
			return true
		}
		// p is still active in st at this point (legal() is called
		// before the move is applied), so placed already includes it.
		return placed-p.Block >= req
	})

	if cfg.WeeklySubjectHours.Hard {
		return
	}
	weight := cfg.WeeklySubjectHours.ShortageWeight
	m.AddSoft(csp.SoftTerm{
		Name:   "weeklySubjectHoursShortage",
		Weight: weight,
		Eval: func(st *csp.State) int {
			penalty := 0
			for key, req := range ix.RequiredHours {
				if req <= 0 {
					continue
				}
				scheduled := placedFor(st, key.ClassID, key.SubjectID)
				if scheduled < req {
					penalty += req - scheduled
				}
			}
			return penalty
		},
	})
}

// addNoGaps penalizes gap hours between the first and last occupied
// hour of each class-day when noGaps is configured soft. The hard case
// isn't decidable from a single move (a partially filled day necessarily
// has gaps that later placements close), so it's checked once at the
// end of search via ValidateNoGapsHard in core/solve.go's final validation gate.
func addNoGaps(m *csp.Model, n *model.Normalized, cfg config.AppliedConfig) {
	if cfg.NoGaps.Hard {
		return
	}
	weight := cfg.NoGaps.Weight
	hoursPerDay := cfg.Schedule.HoursPerDay
	m.AddSoft(csp.SoftTerm{
		Name:   "noGaps",
		Weight: weight,
		Eval: func(st *csp.State) int {
			return CountGapHours(st, hoursPerDay)
		},
	})
}

func addClassDailyMinimumLoad(m *csp.Model, n *model.Normalized, cfg config.AppliedConfig) {
	if !cfg.ClassDailyMinimumLoad.Enabled || cfg.ClassDailyMinimumLoad.Hard {
		return
	}
	weight := cfg.ClassDailyMinimumLoad.Weight
	minPerDay := cfg.ClassDailyMinimumLoad.MinPerDay
	m.AddSoft(csp.SoftTerm{
		Name:   "classDailyMinimumLoad",
		Weight: weight,
		Eval: func(st *csp.State) int {
			return CountUnderloadDays(st, n, minPerDay)
		},
	})
}

// addTeacherWeeklyLoadBalance enforces and/or penalizes a teacher's total
// weekly hours against min/target/max: hardMin/hardMax reject a move that
// would push a teacher's total outside [min,max], and whichever of the
// two isn't hard is penalized instead via underWeight/overWeight, with an
// additional target-relative penalty when target > 0.
func addTeacherWeeklyLoadBalance(m *csp.Model, n *model.Normalized, ix *variables.Index, cfg config.AppliedConfig) {
	bal := cfg.TeacherWeeklyLoadBalance
	if !bal.Enabled {
		return
	}

	teacherTotal := func(st *csp.State, fid string) int {
		total := 0
		for _, other := range st.ActivePlacements() {
			for _, ofid := range other.Combo.FacultyIDs {
				if ofid == fid {
					total += other.Block
					break
				}
			}
		}
		return total
	}

	if bal.HardMin || bal.HardMax {
		m.AddHard(func(st *csp.State, p *variables.Placement, value bool) bool {
			for _, fid := range p.Combo.FacultyIDs {
				total := teacherTotal(st, fid)
				if value {
					// p isn't active in st yet.
					total += p.Block
					if bal.HardMax && total > bal.Max {
						return false
					}
					continue
				}
				// p is still active in st at this point (legal() runs
				// before the move applies), so total already includes it.
				if bal.HardMin && total-p.Block < bal.Min {
					return false
				}
			}
			return true
		})
	}

	if bal.HardMin && bal.HardMax && bal.Target <= 0 {
		return
	}
	m.AddSoft(csp.SoftTerm{
		Name:   "teacherWeeklyLoadBalance",
		Weight: 1,
		Eval: func(st *csp.State) int {
			totals := map[string]int{}
			for _, p := range st.ActivePlacements() {
				for _, fid := range p.Combo.FacultyIDs {
					totals[fid] += p.Block
				}
			}
			penalty := 0
			for _, total := range totals {
				if !bal.HardMin && total < bal.Min {
					penalty += (bal.Min - total) * bal.UnderWeight
				}
				if !bal.HardMax && total > bal.Max {
					penalty += (total - bal.Max) * bal.OverWeight
				}
				if bal.Target > 0 {
					if total < bal.Target {
						penalty += (bal.Target - total) * bal.UnderWeight
					} else if total > bal.Target {
						penalty += (total - bal.Target) * bal.OverWeight
					}
				}
			}
			return penalty
		},
	})
}

// addTeacherAvailabilityPenalty penalizes, in soft mode, every active
// placement whose block intersects a declared teacher-unavailable slot
// (hard mode instead drops such placements outright at build time; see
// variables.Build / Placement.TeacherUnavailable).
func addTeacherAvailabilityPenalty(m *csp.Model, cfg config.AppliedConfig) {
	if !cfg.TeacherAvailability.Enabled || cfg.TeacherAvailability.Hard {
		return
	}
	weight := cfg.TeacherAvailability.Weight
	m.AddSoft(csp.SoftTerm{
		Name:   "teacherAvailability",
		Weight: weight,
		Eval: func(st *csp.State) int {
			count := 0
			for _, p := range st.ActivePlacements() {
				if p.TeacherUnavailable {
					count++
				}
			}
			return count
		},
	})
}

// addTeacherContinuity penalizes runs of consecutive hours for the same
// teacher beyond maxConsecutive.
func addTeacherContinuity(m *csp.Model, n *model.Normalized, cfg config.AppliedConfig) {
	if !cfg.TeacherContinuity.Enabled {
		return
	}
	weight := cfg.TeacherContinuity.Weight
	maxRun := cfg.TeacherContinuity.MaxConsecutive
	m.AddSoft(csp.SoftTerm{
		Name:   "teacherContinuity",
		Weight: weight,
		Eval: func(st *csp.State) int {
			return penalizeRunsOverTeacher(st, n, cfg.Schedule.HoursPerDay, maxRun)
		},
	})
}

func addClassContinuity(m *csp.Model, n *model.Normalized, cfg config.AppliedConfig) {
	if !cfg.ClassContinuity.Enabled {
		return
	}
	weight := cfg.ClassContinuity.Weight
	maxRun := cfg.ClassContinuity.MaxConsecutive
	m.AddSoft(csp.SoftTerm{
		Name:   "classContinuity",
		Weight: weight,
		Eval: func(st *csp.State) int {
			return penalizeRunsOverClass(st, n, cfg.Schedule.HoursPerDay, maxRun)
		},
	})
}

func addTeacherDailyOverload(m *csp.Model, n *model.Normalized, cfg config.AppliedConfig) {
	if !cfg.TeacherDailyOverload.Enabled {
		return
	}
	weight := cfg.TeacherDailyOverload.Weight
	max := cfg.TeacherDailyOverload.Max
	m.AddSoft(csp.SoftTerm{
		Name:   "teacherDailyOverload",
		Weight: weight,
		Eval: func(st *csp.State) int {
			counts := map[string]int{}
			for _, p := range st.ActivePlacements() {
				for _, fid := range p.Combo.FacultyIDs {
					counts[fid+"|"+dayKey(p.Day)] += p.Block
				}
			}
			penalty := 0
			for _, c := range counts {
				if c > max {
					penalty += c - max
				}
			}
			return penalty
		},
	})
}

func addSubjectClustering(m *csp.Model, n *model.Normalized, cfg config.AppliedConfig) {
	if !cfg.SubjectClustering.Enabled {
		return
	}
	weight := cfg.SubjectClustering.Weight
	maxPerDay := cfg.SubjectClustering.MaxPerDay
	m.AddSoft(csp.SoftTerm{
		Name:   "subjectClustering",
		Weight: weight,
		Eval: func(st *csp.State) int {
			counts := map[string]int{}
			for _, p := range st.ActivePlacements() {
				counts[p.ClassID+"|"+p.Subject.ID+"|"+dayKey(p.Day)] += p.Block
			}
			penalty := 0
			for _, c := range counts {
				if c > maxPerDay {
					penalty += c - maxPerDay
				}
			}
			return penalty
		},
	})
}

func addFrontLoading(m *csp.Model, n *model.Normalized, cfg config.AppliedConfig) {
	if !cfg.FrontLoading.Enabled {
		return
	}
	weight := cfg.FrontLoading.Weight
	m.AddSoft(csp.SoftTerm{
		Name:   "frontLoading",
		Weight: weight,
		Eval: func(st *csp.State) int {
			penalty := 0
			for _, p := range st.ActivePlacements() {
				penalty += p.Hour
			}
			return penalty
		},
	})
}

func addTeacherBoundaryPreference(m *csp.Model, n *model.Normalized, cfg config.AppliedConfig) {
	if !cfg.TeacherBoundaryPreference.Enabled {
		return
	}
	weight := cfg.TeacherBoundaryPreference.Weight
	firstHour, lastHour := boundaryHours(cfg)
	m.AddSoft(csp.SoftTerm{
		Name:   "teacherBoundaryPreference",
		Weight: weight,
		Eval: func(st *csp.State) int {
			penalty := 0
			for _, p := range st.ActivePlacements() {
				for _, fid := range p.Combo.FacultyIDs {
					avoidFirst := cfg.TeacherBoundaryPreference.AvoidFirstPeriod
					avoidLast := cfg.TeacherBoundaryPreference.AvoidLastPeriod
					if ov, ok := cfg.TeacherBoundaryPreference.TeacherOverrides[fid]; ok {
						if ov.AvoidFirstPeriod != nil {
							avoidFirst = *ov.AvoidFirstPeriod
						}
						if ov.AvoidLastPeriod != nil {
							avoidLast = *ov.AvoidLastPeriod
						}
					}
					if avoidFirst && p.Hour == firstHour {
						penalty++
					}
					if avoidLast && p.Hour+p.Block-1 == lastHour {
						penalty++
					}
				}
			}
			return penalty
		},
	})
}

// boundaryHours resolves the first/last non-break hour of the day, per
// the Open Question decision recorded in DESIGN.md.
func boundaryHours(cfg config.AppliedConfig) (first, last int) {
	breakSet := map[int]struct{}{}
	for _, h := range cfg.Schedule.BreakHours {
		breakSet[h] = struct{}{}
	}
	first, last = -1, -1
	for h := 0; h < cfg.Schedule.HoursPerDay; h++ {
		if _, isBreak := breakSet[h]; isBreak {
			continue
		}
		if first == -1 {
			first = h
		}
		last = h
	}
	return first, last
}

func dayKey(day int) string {
	return strconv.Itoa(day)
}

func penalizeRunsOverTeacher(st *csp.State, n *model.Normalized, hoursPerDay, maxRun int) int {
	type key struct {
		FacultyID string
		Day       int
	}
	byKey := map[key][]int{}
	for _, p := range st.ActivePlacements() {
		for _, fid := range p.Combo.FacultyIDs {
			k := key{fid, p.Day}
			for h := p.Hour; h < p.Hour+p.Block; h++ {
				byKey[k] = append(byKey[k], h)
			}
		}
	}
	penalty := 0
	for _, hours := range byKey {
		penalty += runOverflowPenalty(hours, hoursPerDay, maxRun)
	}
	return penalty
}

func penalizeRunsOverClass(st *csp.State, n *model.Normalized, hoursPerDay, maxRun int) int {
	type key struct {
		ClassID string
		Day     int
	}
	byKey := map[key][]int{}
	for _, p := range st.ActivePlacements() {
		k := key{p.ClassID, p.Day}
		for h := p.Hour; h < p.Hour+p.Block; h++ {
			byKey[k] = append(byKey[k], h)
		}
	}
	penalty := 0
	for _, hours := range byKey {
		penalty += runOverflowPenalty(hours, hoursPerDay, maxRun)
	}
	return penalty
}

// runOverflowPenalty marks which hours are occupied and sums, for every
// maximal consecutive run, the amount by which it exceeds maxRun.
func runOverflowPenalty(hours []int, hoursPerDay, maxRun int) int {
	occ := make([]bool, hoursPerDay)
	for _, h := range hours {
		if h >= 0 && h < hoursPerDay {
			occ[h] = true
		}
	}
	penalty := 0
	run := 0
	for h := 0; h < hoursPerDay; h++ {
		if occ[h] {
			run++
		} else {
			if run > maxRun {
				penalty += run - maxRun
			}
			run = 0
		}
	}
	if run > maxRun {
		penalty += run - maxRun
	}
	return penalty
}
