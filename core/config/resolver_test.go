package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_ReturnsDefaultsWhenRawIsNil(t *testing.T) {
	cfg := Resolve(nil, Overrides{})

	assert.Equal(t, 6, cfg.Schedule.DaysPerWeek)
	assert.Equal(t, 8, cfg.Schedule.HoursPerDay)
	assert.True(t, cfg.WeeklySubjectHours.Hard)
	assert.Equal(t, 1000, cfg.WeeklySubjectHours.ShortageWeight)
	assert.Equal(t, 180, cfg.Solver.TimeLimitSec)
}

func TestResolve_TopLevelOverridesWinOverDefaults(t *testing.T) {
	days := 5
	cfg := Resolve(nil, Overrides{DaysPerWeek: &days})

	assert.Equal(t, 5, cfg.Schedule.DaysPerWeek)
}

func TestResolve_ConstraintConfigGroupOverridesDefault(t *testing.T) {
	raw := map[string]any{
		"teacherContinuity": map[string]any{
			"enabled":        false,
			"maxConsecutive": 2.0,
			"weight":         10.0,
		},
	}
	cfg := Resolve(raw, Overrides{})

	assert.False(t, cfg.TeacherContinuity.Enabled)
	assert.Equal(t, 2, cfg.TeacherContinuity.MaxConsecutive)
	assert.Equal(t, 10, cfg.TeacherContinuity.Weight)
}

func TestResolve_SolverTimeLimitOverrideWinsOverGroup(t *testing.T) {
	limit := 30
	raw := map[string]any{"solver": map[string]any{"timeLimitSec": 999.0}}
	cfg := Resolve(raw, Overrides{SolverTimeLimit: &limit})

	assert.Equal(t, 30, cfg.Solver.TimeLimitSec)
}

func TestResolve_ClampsWeightsToNonNegative(t *testing.T) {
	raw := map[string]any{
		"noGaps": map[string]any{"weight": -5.0},
	}
	cfg := Resolve(raw, Overrides{})

	assert.Equal(t, 0, cfg.NoGaps.Weight)
}

func TestResolve_ClampsMaxBoundsToAtLeastOne(t *testing.T) {
	raw := map[string]any{
		"subjectClustering": map[string]any{"maxPerDay": -2.0},
	}
	cfg := Resolve(raw, Overrides{})

	assert.Equal(t, 1, cfg.SubjectClustering.MaxPerDay)
}

func TestResolve_TeacherAvailabilitySlotsParsed(t *testing.T) {
	raw := map[string]any{
		"teacherAvailability": map[string]any{
			"enabled":                  true,
			"globallyUnavailableSlots": []any{map[string]any{"day": 1.0, "hour": 2.0}},
			"unavailableSlotsByTeacher": map[string]any{
				"f1": []any{map[string]any{"day": 0.0, "hour": 1.0}},
			},
		},
	}
	cfg := Resolve(raw, Overrides{})

	assert.True(t, cfg.TeacherAvailability.Enabled)
	assert.Equal(t, []Slot{{Day: 1, Hour: 2}}, cfg.TeacherAvailability.GloballyUnavailableSlots)
	assert.Equal(t, []Slot{{Day: 0, Hour: 1}}, cfg.TeacherAvailability.UnavailableSlotsByTeacher["f1"])
}
