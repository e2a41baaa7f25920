package variables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smuggr.xyz/timeweave/core/config"
	"smuggr.xyz/timeweave/core/model"
)

func minimalNormalized() *model.Normalized {
	n := &model.Normalized{
		SubjectByID: map[string]*model.Subject{},
		ComboByID:   map[string]*model.Combo{},
		BreakHours:  map[int]struct{}{},
		HoursPerDay: 2,
		DaysPerWeek: 1,
	}
	subj := &model.Subject{ID: "math", Kind: model.SubjectTheory, DefaultHoursPerWeek: 1}
	n.Subjects = []*model.Subject{subj}
	n.SubjectByID["math"] = subj

	combo := &model.Combo{ID: "combo1", SubjectID: "math", FacultyIDs: []string{"f1"}}
	n.Combos = []*model.Combo{combo}
	n.ComboByID["combo1"] = combo

	cls := &model.Class{
		ID:              "c1",
		DaysPerWeek:     1,
		AllowedComboIDs: map[string]struct{}{"combo1": {}},
		SubjectHours:    map[string]int{},
	}
	n.Classes = []*model.Class{cls}
	n.ClassByID = map[string]*model.Class{"c1": cls}
	return n
}

func TestBuild_EnumeratesOnePlacementPerEligibleHour(t *testing.T) {
	n := minimalNormalized()
	cfg := config.Default()
	cfg.Schedule.HoursPerDay = 2
	cfg.Schedule.DaysPerWeek = 1

	ix := Build(n, cfg, nil, false)

	require.Len(t, ix.Placements, 2)
	assert.Equal(t, "combo1", ix.Placements[0].ComboID)
}

func TestBuild_SkipsHoursInsideBreak(t *testing.T) {
	n := minimalNormalized()
	cfg := config.Default()
	cfg.Schedule.HoursPerDay = 2
	cfg.Schedule.DaysPerWeek = 1
	cfg.Schedule.BreakHours = []int{1}

	ix := Build(n, cfg, nil, false)

	for _, p := range ix.Placements {
		assert.NotEqual(t, 1, p.Hour)
	}
}

func TestBuild_SkipsComboExcludedByClassIDs(t *testing.T) {
	n := minimalNormalized()
	n.Combos[0].ClassIDs = map[string]struct{}{"other-class": {}}
	cfg := config.Default()
	cfg.Schedule.HoursPerDay = 2
	cfg.Schedule.DaysPerWeek = 1

	ix := Build(n, cfg, nil, false)

	assert.Empty(t, ix.Placements)
}

func TestBuild_ZeroRequiredHoursProducesNoPlacements(t *testing.T) {
	n := minimalNormalized()
	n.SubjectByID["math"].DefaultHoursPerWeek = 0
	cfg := config.Default()
	cfg.Schedule.HoursPerDay = 2
	cfg.Schedule.DaysPerWeek = 1

	ix := Build(n, cfg, nil, false)

	assert.Empty(t, ix.Placements)
	assert.False(t, ix.NoEligible[classSubject{"c1", "math"}])
}

func TestBuild_CoverMapsIndexEveryHourOfTheBlock(t *testing.T) {
	n := minimalNormalized()
	n.SubjectByID["math"].Kind = model.SubjectLab
	n.SubjectByID["math"].DefaultHoursPerWeek = 2
	cfg := config.Default()
	cfg.Schedule.HoursPerDay = 2
	cfg.Schedule.DaysPerWeek = 1
	cfg.Structural.LabBlockSize = 2

	ix := Build(n, cfg, nil, false)

	require.Len(t, ix.Placements, 1)
	p := ix.Placements[0]
	assert.Equal(t, 2, p.Block)
	assert.Contains(t, ix.ClassCover("c1", 0, 0), p)
	assert.Contains(t, ix.ClassCover("c1", 0, 1), p)
	assert.Contains(t, ix.TeacherCover("f1", 0, 0), p)
}

func TestBuild_TeacherAvailabilityHardExcludesUnavailablePlacements(t *testing.T) {
	n := minimalNormalized()
	cfg := config.Default()
	cfg.Schedule.HoursPerDay = 2
	cfg.Schedule.DaysPerWeek = 1
	unavailable := func(facultyID string, day, hour int) bool {
		return facultyID == "f1" && hour == 0
	}

	ix := Build(n, cfg, unavailable, true)

	for _, p := range ix.Placements {
		assert.NotEqual(t, 0, p.Hour)
	}
}

func TestBuild_TeacherAvailabilitySoftKeepsButFlagsUnavailablePlacements(t *testing.T) {
	n := minimalNormalized()
	cfg := config.Default()
	cfg.Schedule.HoursPerDay = 2
	cfg.Schedule.DaysPerWeek = 1
	unavailable := func(facultyID string, day, hour int) bool {
		return facultyID == "f1" && hour == 0
	}

	ix := Build(n, cfg, unavailable, false)

	require.Len(t, ix.Placements, 2)
	for _, p := range ix.Placements {
		assert.Equal(t, p.Hour == 0, p.TeacherUnavailable)
	}
}
