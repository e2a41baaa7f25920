package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smuggr.xyz/timeweave/core/csp"
	"smuggr.xyz/timeweave/core/model"
)

func ptrInt(v int) *int       { return &v }
func ptrInt64(v int64) *int64 { return &v }

func TestSolve_S1Minimal(t *testing.T) {
	req := model.Request{
		Faculties: []map[string]any{{"_id": "f1"}},
		Subjects:  []map[string]any{{"_id": "math", "kind": "theory", "default_hours_per_week": 1.0}},
		Classes:   []map[string]any{{"_id": "c1", "allowed_combo_ids": []any{"combo1"}}},
		Combos:    []map[string]any{{"_id": "combo1", "subject_id": "math", "faculty_id": "f1"}},
		DaysPerWeek: ptrInt(1),
		HoursPerDay: ptrInt(2),
		RandomSeed:  ptrInt64(1),
	}

	res := Solve(context.Background(), req, Options{})

	require.True(t, res.OK)
	assert.Empty(t, res.UnmetRequirements)
	grid := res.ClassTimetables["c1"]
	require.Len(t, grid, 1)
	filled := 0
	for _, cell := range grid[0] {
		if cell.IsFilled() {
			filled++
		}
	}
	assert.Equal(t, 1, filled)
}

func TestSolve_S2LabBlock(t *testing.T) {
	req := model.Request{
		Faculties:   []map[string]any{{"_id": "f1"}},
		Subjects:    []map[string]any{{"_id": "chem", "kind": "lab", "default_hours_per_week": 2.0}},
		Classes:     []map[string]any{{"_id": "c1", "allowed_combo_ids": []any{"combo1"}}},
		Combos:      []map[string]any{{"_id": "combo1", "subject_id": "chem", "faculty_id": "f1"}},
		DaysPerWeek: ptrInt(1),
		HoursPerDay: ptrInt(3),
		RandomSeed:  ptrInt64(1),
	}

	res := Solve(context.Background(), req, Options{})

	require.True(t, res.OK)
	assert.Empty(t, res.UnmetRequirements)
	grid := res.ClassTimetables["c1"]
	filledRun := 0
	for _, cell := range grid[0] {
		if cell.IsFilled() {
			filledRun++
		}
	}
	assert.Equal(t, 2, filledRun)
}

func TestSolve_S3TeacherClash(t *testing.T) {
	req := model.Request{
		Faculties: []map[string]any{{"_id": "f1"}},
		Subjects:  []map[string]any{{"_id": "math", "kind": "theory", "default_hours_per_week": 1.0}},
		Classes:   []map[string]any{{"_id": "c1"}, {"_id": "c2"}},
		Combos: []map[string]any{
			{"_id": "combo1", "subject_id": "math", "faculty_id": "f1", "class_ids": []any{"c1"}},
			{"_id": "combo2", "subject_id": "math", "faculty_id": "f1", "class_ids": []any{"c2"}},
		},
		DaysPerWeek: ptrInt(1),
		HoursPerDay: ptrInt(2),
		RandomSeed:  ptrInt64(1),
	}

	res := Solve(context.Background(), req, Options{})

	require.True(t, res.OK)
	assert.Empty(t, res.UnmetRequirements)

	fg := res.FacultyTimetables["f1"]
	occupied := 0
	for _, cell := range fg[0] {
		if cell.IsFilled() {
			occupied++
		}
	}
	assert.Equal(t, 2, occupied)
}

func TestSolve_S4Break(t *testing.T) {
	req := model.Request{
		Faculties:   []map[string]any{{"_id": "f1"}},
		Subjects:    []map[string]any{{"_id": "math", "kind": "theory", "default_hours_per_week": 2.0}},
		Classes:     []map[string]any{{"_id": "c1", "allowed_combo_ids": []any{"combo1"}}},
		Combos:      []map[string]any{{"_id": "combo1", "subject_id": "math", "faculty_id": "f1"}},
		DaysPerWeek: ptrInt(1),
		HoursPerDay: ptrInt(4),
		BreakHours:  []int{1},
		RandomSeed:  ptrInt64(1),
	}

	res := Solve(context.Background(), req, Options{})

	require.True(t, res.OK)
	grid := res.ClassTimetables["c1"]
	require.True(t, grid[0][1].Break)
}

func TestSolve_S5FixedSlotHonored(t *testing.T) {
	req := model.Request{
		Faculties: []map[string]any{{"_id": "f1"}},
		Subjects:  []map[string]any{{"_id": "math", "kind": "theory", "default_hours_per_week": 1.0}},
		Classes:   []map[string]any{{"_id": "c1", "allowed_combo_ids": []any{"combo1"}}},
		Combos:    []map[string]any{{"_id": "combo1", "subject_id": "math", "faculty_id": "f1"}},
		FixedSlots: []map[string]any{
			{"class": "c1", "combo": "combo1", "day": 0.0, "hour": 0.0},
		},
		DaysPerWeek: ptrInt(1),
		HoursPerDay: ptrInt(2),
		RandomSeed:  ptrInt64(1),
	}

	res := Solve(context.Background(), req, Options{})

	require.True(t, res.OK)
	assert.Empty(t, res.Warnings)
	grid := res.ClassTimetables["c1"]
	assert.Equal(t, "combo1", grid[0][0].ComboID)
}

func TestSolve_S6Infeasible(t *testing.T) {
	req := model.Request{
		Faculties:   []map[string]any{{"_id": "f1"}},
		Subjects:    []map[string]any{{"_id": "a", "kind": "theory", "default_hours_per_week": 3.0}},
		Classes:     []map[string]any{{"_id": "c1", "allowed_combo_ids": []any{"combo1"}}},
		Combos:      []map[string]any{{"_id": "combo1", "subject_id": "a", "faculty_id": "f1"}},
		DaysPerWeek: ptrInt(1),
		HoursPerDay: ptrInt(2),
		RandomSeed:  ptrInt64(1),
	}

	res := Solve(context.Background(), req, Options{})

	require.False(t, res.OK)
	require.Len(t, res.UnmetRequirements, 1)
	assert.Equal(t, "c1", res.UnmetRequirements[0].ClassID)
	assert.Equal(t, "a", res.UnmetRequirements[0].SubjectID)
	assert.Equal(t, 3, res.UnmetRequirements[0].RequiredHours)
	assert.Equal(t, 2, res.UnmetRequirements[0].ScheduledHours)
}

func TestSolve_DeterministicWithSameSeed(t *testing.T) {
	req := model.Request{
		Faculties: []map[string]any{{"_id": "f1"}, {"_id": "f2"}},
		Subjects:  []map[string]any{{"_id": "math", "kind": "theory", "default_hours_per_week": 2.0}},
		Classes:   []map[string]any{{"_id": "c1"}, {"_id": "c2"}},
		Combos: []map[string]any{
			{"_id": "combo1", "subject_id": "math", "faculty_id": "f1", "class_ids": []any{"c1"}},
			{"_id": "combo2", "subject_id": "math", "faculty_id": "f2", "class_ids": []any{"c2"}},
		},
		DaysPerWeek: ptrInt(3),
		HoursPerDay: ptrInt(4),
		RandomSeed:  ptrInt64(42),
	}

	res1 := Solve(context.Background(), req, Options{})
	res2 := Solve(context.Background(), req, Options{})

	require.True(t, res1.OK)
	require.True(t, res2.OK)
	assert.Equal(t, res1.ClassTimetables["c1"], res2.ClassTimetables["c1"])
	assert.Equal(t, res1.ClassTimetables["c2"], res2.ClassTimetables["c2"])
}

func TestSolve_EmptyRequestNeitherPanicsNorReportsModelInvalid(t *testing.T) {
	// A request with no entities at all should still resolve cleanly
	// (zero classes/subjects means zero placements, not a panic), so it
	// must neither escape as a panic nor come back as model_invalid.
	req := model.Request{}

	assert.NotPanics(t, func() {
		res := Solve(context.Background(), req, Options{})
		assert.NotEqual(t, csp.StatusModelInvalid, res.Status)
	})
}
