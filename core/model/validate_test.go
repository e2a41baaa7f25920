package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smuggr.xyz/timeweave/core/config"
)

func baseNormalized() *Normalized {
	n := &Normalized{
		ClassByID:   map[string]*Class{},
		ComboByID:   map[string]*Combo{},
		SubjectByID: map[string]*Subject{},
		BreakHours:  map[int]struct{}{1: {}},
		HoursPerDay: 4,
	}
	n.ClassByID["c1"] = &Class{ID: "c1", DaysPerWeek: 5}
	n.ComboByID["combo1"] = &Combo{ID: "combo1", FacultyIDs: []string{"f1"}}
	return n
}

func TestValidateFixedSlots_AcceptsValidSlot(t *testing.T) {
	n := baseNormalized()
	n.RawFixedSlots = []map[string]any{{"class": "c1", "combo": "combo1", "day": 0.0, "hour": 0.0}}

	warnings := n.ValidateFixedSlots(nil, false, config.Default())

	assert.Empty(t, warnings)
	require.Len(t, n.FixedSlots, 1)
	assert.Equal(t, "c1", n.FixedSlots[0].ClassID)
}

func TestValidateFixedSlots_RejectsUnknownClass(t *testing.T) {
	n := baseNormalized()
	n.RawFixedSlots = []map[string]any{{"class": "missing", "combo": "combo1", "day": 0.0, "hour": 0.0}}

	warnings := n.ValidateFixedSlots(nil, false, config.Default())

	require.Len(t, warnings, 1)
	assert.Empty(t, n.FixedSlots)
}

func TestValidateFixedSlots_RejectsBreakHour(t *testing.T) {
	n := baseNormalized()
	n.RawFixedSlots = []map[string]any{{"class": "c1", "combo": "combo1", "day": 0.0, "hour": 1.0}}

	warnings := n.ValidateFixedSlots(nil, false, config.Default())

	require.Len(t, warnings, 1)
	assert.Empty(t, n.FixedSlots)
}

func TestValidateFixedSlots_RejectsDayOutsideClassDaysPerWeek(t *testing.T) {
	n := baseNormalized()
	n.RawFixedSlots = []map[string]any{{"class": "c1", "combo": "combo1", "day": 9.0, "hour": 0.0}}

	warnings := n.ValidateFixedSlots(nil, false, config.Default())

	require.Len(t, warnings, 1)
	assert.Empty(t, n.FixedSlots)
}

func TestValidateFixedSlots_RejectsWhenTeacherUnavailableAndHard(t *testing.T) {
	n := baseNormalized()
	n.RawFixedSlots = []map[string]any{{"class": "c1", "combo": "combo1", "day": 0.0, "hour": 0.0}}
	unavailable := func(facultyID string, day, hour int) bool { return true }

	warnings := n.ValidateFixedSlots(unavailable, true, config.Default())

	require.Len(t, warnings, 1)
	assert.Empty(t, n.FixedSlots)
}

func TestValidateFixedSlots_RejectsWhenSecondHourOfLabBlockConflictsWithUnavailability(t *testing.T) {
	n := baseNormalized()
	n.HoursPerDay = 4
	n.BreakHours = map[int]struct{}{}
	lab := &Subject{ID: "chem", Kind: SubjectLab}
	n.SubjectByID["chem"] = lab
	n.ComboByID["combo1"].SubjectID = "chem"
	n.RawFixedSlots = []map[string]any{{"class": "c1", "combo": "combo1", "day": 0.0, "hour": 0.0}}
	// Only the second hour of the 2-hour lab block is unavailable.
	unavailable := func(facultyID string, day, hour int) bool { return hour == 1 }

	cfg := config.Default()
	cfg.Structural.LabBlockSize = 2

	warnings := n.ValidateFixedSlots(unavailable, true, cfg)

	require.Len(t, warnings, 1)
	assert.Empty(t, n.FixedSlots)
}

func TestValidateFixedSlots_RejectsBlockOverflowingDayLength(t *testing.T) {
	n := baseNormalized()
	n.HoursPerDay = 2
	n.BreakHours = map[int]struct{}{}
	lab := &Subject{ID: "chem", Kind: SubjectLab}
	n.SubjectByID["chem"] = lab
	n.ComboByID["combo1"].SubjectID = "chem"
	n.RawFixedSlots = []map[string]any{{"class": "c1", "combo": "combo1", "day": 0.0, "hour": 1.0}}

	cfg := config.Default()
	cfg.Structural.LabBlockSize = 2

	warnings := n.ValidateFixedSlots(nil, false, cfg)

	require.Len(t, warnings, 1)
	assert.Empty(t, n.FixedSlots)
}
