package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smuggr.xyz/timeweave/core/config"
	"smuggr.xyz/timeweave/core/csp"
	"smuggr.xyz/timeweave/core/model"
	"smuggr.xyz/timeweave/core/variables"
)

func placementAt(id int, classID string, day, hour, block int) *variables.Placement {
	return &variables.Placement{
		ID:      id,
		ClassID: classID,
		Day:     day,
		Hour:    hour,
		Combo:   &model.Combo{ID: "combo1", FacultyIDs: []string{"f1"}},
		Subject: &model.Subject{ID: "math"},
		Block:   block,
	}
}

// stateWith builds a csp.State with every given placement assigned true.
func stateWith(placements ...*variables.Placement) *csp.State {
	ix := &variables.Index{Placements: placements}
	st := csp.NewState(ix)
	for _, p := range placements {
		st.Assign(p, true)
	}
	return st
}

func TestCountGapHours_ZeroWhenContiguous(t *testing.T) {
	st := stateWith(placementAt(1, "c1", 0, 0, 1), placementAt(2, "c1", 0, 1, 1))

	assert.Equal(t, 0, CountGapHours(st, 4))
}

func TestCountGapHours_CountsHoleBetweenOccupiedHours(t *testing.T) {
	st := stateWith(placementAt(1, "c1", 0, 0, 1), placementAt(2, "c1", 0, 3, 1))

	assert.Equal(t, 2, CountGapHours(st, 4))
}

func TestValidateNoGapsHard_ReportsOneWarningPerGappedDay(t *testing.T) {
	st := stateWith(placementAt(1, "c1", 0, 0, 1), placementAt(2, "c1", 0, 2, 1))

	warnings := ValidateNoGapsHard(st, 4)

	assert.Len(t, warnings, 1)
}

func TestCountUnderloadDays_FlagsDayBelowMinimum(t *testing.T) {
	st := stateWith(placementAt(1, "c1", 0, 0, 1))

	assert.Equal(t, 1, CountUnderloadDays(st, &model.Normalized{}, 2))
}

func TestCountUnderloadDays_ZeroWhenMeetingMinimum(t *testing.T) {
	st := stateWith(placementAt(1, "c1", 0, 0, 1), placementAt(2, "c1", 0, 1, 1))

	assert.Equal(t, 0, CountUnderloadDays(st, &model.Normalized{}, 2))
}

func TestValidateClassDailyMinimumHard_ReportsUnderloadedDay(t *testing.T) {
	cfg := config.Default()
	cfg.ClassDailyMinimumLoad.MinPerDay = 2
	st := stateWith(placementAt(1, "c1", 0, 0, 1))

	warnings := ValidateClassDailyMinimumHard(st, cfg)

	assert.Len(t, warnings, 1)
}
