// Package core wires the pipeline components (C1-C8) into one pure
// Solve entry point: normalize → resolve config → build variables →
// assemble constraints → search → decode, falling back to a greedy fill
// on infeasibility.
package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"smuggr.xyz/timeweave/core/config"
	"smuggr.xyz/timeweave/core/constraints"
	"smuggr.xyz/timeweave/core/csp"
	"smuggr.xyz/timeweave/core/decode"
	"smuggr.xyz/timeweave/core/greedy"
	"smuggr.xyz/timeweave/core/model"
	"smuggr.xyz/timeweave/core/variables"
)

// Result is the full outcome of one solve, covering both the success
// and infeasible response shapes from spec.md §6.
type Result struct {
	OK                bool
	Status            csp.Status
	Error             string
	ClassTimetables   map[string]model.Grid
	FacultyTimetables map[string]model.Grid
	Classes           []string
	UnmetRequirements []decode.UnmetRequirement
	Warnings          []string
	Config            config.AppliedConfig
}

// Options carries the caller-level knobs that aren't part of the
// request body: whether to attempt a greedy fallback on infeasibility,
// and a maximum local-search move budget override (0 = derive from
// problem size).
type Options struct {
	AllowFallback bool
	MaxLocalMoves int
	Logger        *zap.Logger
}

// Solve runs one complete solve for req, returning the structured
// result the HTTP layer serializes as-is. It never panics outward: a
// programming error during constraint assembly or search surfaces as
// Status=model_invalid rather than crashing the request.
func Solve(ctx context.Context, req model.Request, opts Options) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{
				OK:     false,
				Status: csp.StatusModelInvalid,
				Error:  fmt.Sprintf("model_invalid: %v", r),
			}
		}
	}()

	n := model.Normalize(req)

	ov := config.Overrides{
		SolverTimeLimit: req.SolverTimeLimit,
	}
	if req.DaysPerWeek != nil {
		ov.DaysPerWeek = req.DaysPerWeek
	}
	if req.HoursPerDay != nil {
		ov.HoursPerDay = req.HoursPerDay
	}
	if len(req.BreakHours) > 0 {
		ov.BreakHours = req.BreakHours
	}
	cfg := config.Resolve(req.ConstraintConfig, ov)

	n.BreakHours = map[int]struct{}{}
	for _, h := range cfg.Schedule.BreakHours {
		n.BreakHours[h] = struct{}{}
	}
	n.HoursPerDay = cfg.Schedule.HoursPerDay
	n.DaysPerWeek = cfg.Schedule.DaysPerWeek
	for _, c := range n.Classes {
		if !c.DaysPerWeekSet {
			c.DaysPerWeek = cfg.Schedule.DaysPerWeek
		}
	}

	unavailable := buildUnavailabilityCheck(cfg)

	warnings := n.ValidateFixedSlots(unavailable, cfg.TeacherAvailability.Enabled && cfg.TeacherAvailability.Hard, cfg)

	ix := variables.Build(n, cfg, unavailable, cfg.TeacherAvailability.Enabled && cfg.TeacherAvailability.Hard)

	classReq := map[[2]string]int{}
	noEligible := map[[2]string]bool{}
	for _, c := range n.Classes {
		for _, s := range n.Subjects {
			classReq[[2]string{c.ID, s.ID}] = ix.RequiredHoursFor(c.ID, s.ID)
		}
	}
	for k, v := range ix.NoEligible {
		noEligible[[2]string{k.ClassID, k.SubjectID}] = v
	}

	m := csp.NewModel(ix)
	for _, fs := range n.FixedSlots {
		if p := findPlacement(ix, fs); p != nil {
			m.Forced = append(m.Forced, p)
		} else {
			warnings = append(warnings, fmt.Sprintf(
				"fixed slot has no matching placement (block would overflow or combo ineligible): class=%s combo=%s day=%d hour=%d",
				fs.ClassID, fs.ComboID, fs.Day, fs.Hour))
		}
	}

	constraints.Assemble(m, n, ix, cfg)

	timeout := time.Duration(cfg.Solver.TimeLimitSec) * time.Second
	solveCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	solveResult := csp.Solve(solveCtx, m, csp.Options{
		RandomSeed:    n.RandomSeed,
		MaxLocalMoves: opts.MaxLocalMoves,
	})

	st := solveResult.State

	if cfg.NoGaps.Hard {
		if gapWarnings := constraints.ValidateNoGapsHard(st, cfg.Schedule.HoursPerDay); len(gapWarnings) > 0 {
			solveResult.Status = csp.StatusInfeasible
		}
	}
	if cfg.ClassDailyMinimumLoad.Enabled && cfg.ClassDailyMinimumLoad.Hard {
		if loadWarnings := constraints.ValidateClassDailyMinimumHard(st, cfg); len(loadWarnings) > 0 {
			solveResult.Status = csp.StatusInfeasible
		}
	}

	classIDs := make([]string, 0, len(n.Classes))
	for _, c := range n.Classes {
		classIDs = append(classIDs, c.ID)
	}

	if solveResult.Status == csp.StatusInfeasible {
		if opts.AllowFallback {
			st = greedy.Fill(m, ix, opts.Logger)
		}
		classGrids, facultyGrids := decode.BuildGrids(n, st)
		unmet := decode.ComputeUnmetRequirements(n, classReq, noEligible, classGrids)
		res := Result{
			OK:                false,
			Status:            csp.StatusInfeasible,
			Error:             string(csp.StatusInfeasible),
			Classes:           classIDs,
			UnmetRequirements: unmet,
			Warnings:          warnings,
			Config:            cfg,
		}
		if opts.AllowFallback {
			res.ClassTimetables = classGrids
			res.FacultyTimetables = facultyGrids
		}
		return res
	}

	classGrids, facultyGrids := decode.BuildGrids(n, st)
	unmet := decode.ComputeUnmetRequirements(n, classReq, noEligible, classGrids)

	return Result{
		OK:                true,
		Status:            solveResult.Status,
		ClassTimetables:   classGrids,
		FacultyTimetables: facultyGrids,
		Classes:           classIDs,
		UnmetRequirements: unmet,
		Warnings:          warnings,
		Config:            cfg,
	}
}

func findPlacement(ix *variables.Index, fs *model.FixedSlot) *variables.Placement {
	for _, p := range ix.ClassCover(fs.ClassID, fs.Day, fs.Hour) {
		if p.ComboID == fs.ComboID && p.Hour == fs.Hour {
			return p
		}
	}
	return nil
}

func buildUnavailabilityCheck(cfg config.AppliedConfig) func(facultyID string, day, hour int) bool {
	global := make(map[[2]int]struct{}, len(cfg.TeacherAvailability.GloballyUnavailableSlots))
	for _, s := range cfg.TeacherAvailability.GloballyUnavailableSlots {
		global[[2]int{s.Day, s.Hour}] = struct{}{}
	}
	byTeacher := make(map[string]map[[2]int]struct{}, len(cfg.TeacherAvailability.UnavailableSlotsByTeacher))
	for fid, slots := range cfg.TeacherAvailability.UnavailableSlotsByTeacher {
		set := make(map[[2]int]struct{}, len(slots))
		for _, s := range slots {
			set[[2]int{s.Day, s.Hour}] = struct{}{}
		}
		byTeacher[fid] = set
	}
	return func(facultyID string, day, hour int) bool {
		if !cfg.TeacherAvailability.Enabled {
			return false
		}
		if _, ok := global[[2]int{day, hour}]; ok {
			return true
		}
		if set, ok := byTeacher[facultyID]; ok {
			if _, ok := set[[2]int{day, hour}]; ok {
				return true
			}
		}
		return false
	}
}
