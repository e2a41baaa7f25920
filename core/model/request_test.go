package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_DefaultsSubjectKindToTheory(t *testing.T) {
	req := Request{
		Faculties: []map[string]any{{"_id": "f1"}},
		Subjects:  []map[string]any{{"id": "math", "default_hours_per_week": 3.0}},
		Classes:   []map[string]any{{"_id": "c1"}},
		Combos:    []map[string]any{{"_id": "combo1", "subject_id": "math", "faculty_id": "f1"}},
	}

	n := Normalize(req)

	require.Len(t, n.Subjects, 1)
	assert.Equal(t, SubjectTheory, n.Subjects[0].Kind)
	assert.Equal(t, 3, n.Subjects[0].DefaultHoursPerWeek)
}

func TestNormalize_ScalarFacultyIDDefaultsToList(t *testing.T) {
	req := Request{
		Combos: []map[string]any{{"_id": "combo1", "subject_id": "math", "faculty_id": "f1"}},
	}

	n := Normalize(req)

	require.Len(t, n.Combos, 1)
	assert.Equal(t, []string{"f1"}, n.Combos[0].FacultyIDs)
}

func TestNormalize_IDFallsBackFromUnderscoreIDToID(t *testing.T) {
	req := Request{
		Faculties: []map[string]any{{"id": "f1"}},
	}

	n := Normalize(req)

	require.Len(t, n.Faculties, 1)
	assert.Equal(t, "f1", n.Faculties[0].ID)
}

func TestNormalize_ClassSubjectHoursOverridesDefault(t *testing.T) {
	req := Request{
		Classes: []map[string]any{{
			"_id":           "c1",
			"subject_hours": map[string]any{"math": 5.0},
		}},
	}
	n := Normalize(req)

	require.Len(t, n.Classes, 1)
	subj := &Subject{ID: "math", DefaultHoursPerWeek: 2}
	assert.Equal(t, 5, n.Classes[0].RequiredHours(subj))
}

func TestNormalize_ClassRequiredHoursFallsBackToSubjectDefault(t *testing.T) {
	c := &Class{ID: "c1", SubjectHours: map[string]int{}}
	subj := &Subject{ID: "math", DefaultHoursPerWeek: 4}
	assert.Equal(t, 4, c.RequiredHours(subj))
}
