// Package config resolves a request-level constraintConfig tree against
// the defaults in spec.md §4.2, producing an AppliedConfig that is echoed
// back to the caller verbatim.
package config

type Schedule struct {
	DaysPerWeek int   `json:"daysPerWeek"`
	HoursPerDay int   `json:"hoursPerDay"`
	BreakHours  []int `json:"breakHours"`
}

type Structural struct {
	LabBlockSize    int `json:"labBlockSize"`
	TheoryBlockSize int `json:"theoryBlockSize"`
}

type WeeklySubjectHours struct {
	Hard           bool `json:"hard"`
	ShortageWeight int  `json:"shortageWeight"`
}

type TeacherContinuity struct {
	Enabled        bool `json:"enabled"`
	MaxConsecutive int  `json:"maxConsecutive"`
	Weight         int  `json:"weight"`
}

type ClassContinuity struct {
	Enabled        bool `json:"enabled"`
	MaxConsecutive int  `json:"maxConsecutive"`
	Weight         int  `json:"weight"`
}

type NoGaps struct {
	Hard   bool `json:"hard"`
	Weight int  `json:"weight"`
}

type TeacherDailyOverload struct {
	Enabled bool `json:"enabled"`
	Max     int  `json:"max"`
	Weight  int  `json:"weight"`
}

type SubjectClustering struct {
	Enabled   bool `json:"enabled"`
	MaxPerDay int  `json:"maxPerDay"`
	Weight    int  `json:"weight"`
}

type FrontLoading struct {
	Enabled bool `json:"enabled"`
	Weight  int  `json:"weight"`
}

type Slot struct {
	Day  int `json:"day"`
	Hour int `json:"hour"`
}

type TeacherAvailability struct {
	Enabled                   bool              `json:"enabled"`
	Hard                      bool              `json:"hard"`
	Weight                    int               `json:"weight"`
	GloballyUnavailableSlots  []Slot            `json:"globallyUnavailableSlots"`
	UnavailableSlotsByTeacher map[string][]Slot `json:"unavailableSlotsByTeacher"`
}

type TeacherWeeklyLoadBalance struct {
	Enabled    bool `json:"enabled"`
	Min        int  `json:"min"`
	Target     int  `json:"target"`
	Max        int  `json:"max"`
	HardMin    bool `json:"hardMin"`
	HardMax    bool `json:"hardMax"`
	UnderWeight int `json:"underWeight"`
	OverWeight  int `json:"overWeight"`
}

type ClassDailyMinimumLoad struct {
	Enabled   bool `json:"enabled"`
	Hard      bool `json:"hard"`
	MinPerDay int  `json:"minPerDay"`
	Weight    int  `json:"weight"`
}

type BoundaryOverride struct {
	AvoidFirstPeriod *bool `json:"avoidFirstPeriod,omitempty"`
	AvoidLastPeriod  *bool `json:"avoidLastPeriod,omitempty"`
}

type TeacherBoundaryPreference struct {
	Enabled          bool                        `json:"enabled"`
	AvoidFirstPeriod bool                        `json:"avoidFirstPeriod"`
	AvoidLastPeriod  bool                        `json:"avoidLastPeriod"`
	Weight           int                         `json:"weight"`
	TeacherOverrides map[string]BoundaryOverride `json:"teacherOverrides"`
}

type SolverConfig struct {
	TimeLimitSec int `json:"timeLimitSec"`
}

// AppliedConfig is the fully resolved, echoed-back configuration.
type AppliedConfig struct {
	Schedule                   Schedule                   `json:"schedule"`
	Structural                 Structural                 `json:"structural"`
	WeeklySubjectHours         WeeklySubjectHours         `json:"weeklySubjectHours"`
	TeacherContinuity          TeacherContinuity          `json:"teacherContinuity"`
	ClassContinuity            ClassContinuity            `json:"classContinuity"`
	NoGaps                     NoGaps                     `json:"noGaps"`
	TeacherDailyOverload       TeacherDailyOverload       `json:"teacherDailyOverload"`
	SubjectClustering          SubjectClustering          `json:"subjectClustering"`
	FrontLoading               FrontLoading               `json:"frontLoading"`
	TeacherAvailability        TeacherAvailability        `json:"teacherAvailability"`
	TeacherWeeklyLoadBalance   TeacherWeeklyLoadBalance   `json:"teacherWeeklyLoadBalance"`
	ClassDailyMinimumLoad      ClassDailyMinimumLoad      `json:"classDailyMinimumLoad"`
	TeacherBoundaryPreference  TeacherBoundaryPreference  `json:"teacherBoundaryPreference"`
	Solver                     SolverConfig               `json:"solver"`
}

// Overrides carries the top-level request fields that win over
// constraintConfig.schedule (spec.md §6): DAYS_PER_WEEK, HOURS_PER_DAY,
// BREAK_HOURS, solver_time_limit_sec.
type Overrides struct {
	DaysPerWeek     *int
	HoursPerDay     *int
	BreakHours      []int
	SolverTimeLimit *int
}

// Resolve merges a raw constraintConfig tree (as decoded from JSON, so
// nested maps use map[string]any) with the defaults table in spec.md §4.2.
func Resolve(raw map[string]any, ov Overrides) AppliedConfig {
	cfg := Default()

	if g := group(raw, "schedule"); g != nil {
		cfg.Schedule.DaysPerWeek = getInt(g, "daysPerWeek", cfg.Schedule.DaysPerWeek)
		cfg.Schedule.HoursPerDay = getInt(g, "hoursPerDay", cfg.Schedule.HoursPerDay)
		if bh := getIntSlice(g, "breakHours"); bh != nil {
			cfg.Schedule.BreakHours = bh
		}
	}
	if ov.DaysPerWeek != nil {
		cfg.Schedule.DaysPerWeek = *ov.DaysPerWeek
	}
	if ov.HoursPerDay != nil {
		cfg.Schedule.HoursPerDay = *ov.HoursPerDay
	}
	if len(ov.BreakHours) > 0 {
		cfg.Schedule.BreakHours = ov.BreakHours
	}
	if g := group(raw, "structural"); g != nil {
		cfg.Structural.LabBlockSize = clampMin1(getInt(g, "labBlockSize", cfg.Structural.LabBlockSize))
		cfg.Structural.TheoryBlockSize = clampMin1(getInt(g, "theoryBlockSize", cfg.Structural.TheoryBlockSize))
	}
	if g := group(raw, "weeklySubjectHours"); g != nil {
		cfg.WeeklySubjectHours.Hard = getBool(g, "hard", cfg.WeeklySubjectHours.Hard)
		cfg.WeeklySubjectHours.ShortageWeight = clampMin0(getInt(g, "shortageWeight", cfg.WeeklySubjectHours.ShortageWeight))
	}
	if g := group(raw, "teacherContinuity"); g != nil {
		cfg.TeacherContinuity.Enabled = getBool(g, "enabled", cfg.TeacherContinuity.Enabled)
		cfg.TeacherContinuity.MaxConsecutive = clampMin1(getInt(g, "maxConsecutive", cfg.TeacherContinuity.MaxConsecutive))
		cfg.TeacherContinuity.Weight = clampMin0(getInt(g, "weight", cfg.TeacherContinuity.Weight))
	}
	if g := group(raw, "classContinuity"); g != nil {
		cfg.ClassContinuity.Enabled = getBool(g, "enabled", cfg.ClassContinuity.Enabled)
		cfg.ClassContinuity.MaxConsecutive = clampMin1(getInt(g, "maxConsecutive", cfg.ClassContinuity.MaxConsecutive))
		cfg.ClassContinuity.Weight = clampMin0(getInt(g, "weight", cfg.ClassContinuity.Weight))
	}
	if g := group(raw, "noGaps"); g != nil {
		cfg.NoGaps.Hard = getBool(g, "hard", cfg.NoGaps.Hard)
		cfg.NoGaps.Weight = clampMin0(getInt(g, "weight", cfg.NoGaps.Weight))
	}
	if g := group(raw, "teacherDailyOverload"); g != nil {
		cfg.TeacherDailyOverload.Enabled = getBool(g, "enabled", cfg.TeacherDailyOverload.Enabled)
		cfg.TeacherDailyOverload.Max = clampMin1(getInt(g, "max", cfg.TeacherDailyOverload.Max))
		cfg.TeacherDailyOverload.Weight = clampMin0(getInt(g, "weight", cfg.TeacherDailyOverload.Weight))
	}
	if g := group(raw, "subjectClustering"); g != nil {
		cfg.SubjectClustering.Enabled = getBool(g, "enabled", cfg.SubjectClustering.Enabled)
		cfg.SubjectClustering.MaxPerDay = clampMin1(getInt(g, "maxPerDay", cfg.SubjectClustering.MaxPerDay))
		cfg.SubjectClustering.Weight = clampMin0(getInt(g, "weight", cfg.SubjectClustering.Weight))
	}
	if g := group(raw, "frontLoading"); g != nil {
		cfg.FrontLoading.Enabled = getBool(g, "enabled", cfg.FrontLoading.Enabled)
		cfg.FrontLoading.Weight = clampMin0(getInt(g, "weight", cfg.FrontLoading.Weight))
	}
	if g := group(raw, "teacherAvailability"); g != nil {
		cfg.TeacherAvailability.Enabled = getBool(g, "enabled", cfg.TeacherAvailability.Enabled)
		cfg.TeacherAvailability.Hard = getBool(g, "hard", cfg.TeacherAvailability.Hard)
		cfg.TeacherAvailability.Weight = clampMin0(getInt(g, "weight", cfg.TeacherAvailability.Weight))
		cfg.TeacherAvailability.GloballyUnavailableSlots = getSlots(g, "globallyUnavailableSlots")
		cfg.TeacherAvailability.UnavailableSlotsByTeacher = getSlotsByKey(g, "unavailableSlotsByTeacher")
	}
	if g := group(raw, "teacherWeeklyLoadBalance"); g != nil {
		cfg.TeacherWeeklyLoadBalance.Enabled = getBool(g, "enabled", cfg.TeacherWeeklyLoadBalance.Enabled)
		cfg.TeacherWeeklyLoadBalance.Min = clampMin0(getInt(g, "min", cfg.TeacherWeeklyLoadBalance.Min))
		cfg.TeacherWeeklyLoadBalance.Target = clampMin0(getInt(g, "target", cfg.TeacherWeeklyLoadBalance.Target))
		cfg.TeacherWeeklyLoadBalance.Max = clampMin1(getInt(g, "max", cfg.TeacherWeeklyLoadBalance.Max))
		cfg.TeacherWeeklyLoadBalance.HardMin = getBool(g, "hardMin", cfg.TeacherWeeklyLoadBalance.HardMin)
		cfg.TeacherWeeklyLoadBalance.HardMax = getBool(g, "hardMax", cfg.TeacherWeeklyLoadBalance.HardMax)
		cfg.TeacherWeeklyLoadBalance.UnderWeight = clampMin0(getInt(g, "underWeight", cfg.TeacherWeeklyLoadBalance.UnderWeight))
		cfg.TeacherWeeklyLoadBalance.OverWeight = clampMin0(getInt(g, "overWeight", cfg.TeacherWeeklyLoadBalance.OverWeight))
	}
	if g := group(raw, "classDailyMinimumLoad"); g != nil {
		cfg.ClassDailyMinimumLoad.Enabled = getBool(g, "enabled", cfg.ClassDailyMinimumLoad.Enabled)
		cfg.ClassDailyMinimumLoad.Hard = getBool(g, "hard", cfg.ClassDailyMinimumLoad.Hard)
		cfg.ClassDailyMinimumLoad.MinPerDay = clampMin1(getInt(g, "minPerDay", cfg.ClassDailyMinimumLoad.MinPerDay))
		cfg.ClassDailyMinimumLoad.Weight = clampMin0(getInt(g, "weight", cfg.ClassDailyMinimumLoad.Weight))
	}
	if g := group(raw, "teacherBoundaryPreference"); g != nil {
		cfg.TeacherBoundaryPreference.Enabled = getBool(g, "enabled", cfg.TeacherBoundaryPreference.Enabled)
		cfg.TeacherBoundaryPreference.AvoidFirstPeriod = getBool(g, "avoidFirstPeriod", cfg.TeacherBoundaryPreference.AvoidFirstPeriod)
		cfg.TeacherBoundaryPreference.AvoidLastPeriod = getBool(g, "avoidLastPeriod", cfg.TeacherBoundaryPreference.AvoidLastPeriod)
		cfg.TeacherBoundaryPreference.Weight = clampMin0(getInt(g, "weight", cfg.TeacherBoundaryPreference.Weight))
		cfg.TeacherBoundaryPreference.TeacherOverrides = getOverrides(g, "teacherOverrides")
	}
	if g := group(raw, "solver"); g != nil {
		cfg.Solver.TimeLimitSec = clampMin1(getInt(g, "timeLimitSec", cfg.Solver.TimeLimitSec))
	}
	if ov.SolverTimeLimit != nil {
		cfg.Solver.TimeLimitSec = clampMin1(*ov.SolverTimeLimit)
	}

	return cfg
}

// Default returns the defaults table from spec.md §4.2.
func Default() AppliedConfig {
	return AppliedConfig{
		Schedule:   Schedule{DaysPerWeek: 6, HoursPerDay: 8, BreakHours: nil},
		Structural: Structural{LabBlockSize: 2, TheoryBlockSize: 1},
		WeeklySubjectHours: WeeklySubjectHours{
			Hard: true, ShortageWeight: 1000,
		},
		TeacherContinuity: TeacherContinuity{Enabled: true, MaxConsecutive: 3, Weight: 100},
		ClassContinuity:   ClassContinuity{Enabled: true, MaxConsecutive: 3, Weight: 80},
		NoGaps:            NoGaps{Hard: true, Weight: 500},
		TeacherDailyOverload: TeacherDailyOverload{
			Enabled: true, Max: 6, Weight: 120,
		},
		SubjectClustering: SubjectClustering{Enabled: true, MaxPerDay: 3, Weight: 50},
		FrontLoading:      FrontLoading{Enabled: true, Weight: 400},
		TeacherAvailability: TeacherAvailability{
			Enabled: false, Hard: true, Weight: 250,
			GloballyUnavailableSlots:  nil,
			UnavailableSlotsByTeacher: map[string][]Slot{},
		},
		TeacherWeeklyLoadBalance: TeacherWeeklyLoadBalance{
			Enabled: false, Min: 0, Target: 0, Max: 48,
			HardMin: false, HardMax: false, UnderWeight: 40, OverWeight: 40,
		},
		ClassDailyMinimumLoad: ClassDailyMinimumLoad{
			Enabled: false, Hard: false, MinPerDay: 1, Weight: 100,
		},
		TeacherBoundaryPreference: TeacherBoundaryPreference{
			Enabled: false, AvoidFirstPeriod: true, AvoidLastPeriod: true, Weight: 60,
			TeacherOverrides: map[string]BoundaryOverride{},
		},
		Solver: SolverConfig{TimeLimitSec: 180},
	}
}
