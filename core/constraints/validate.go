package constraints

import (
	"fmt"

	"smuggr.xyz/timeweave/core/config"
	"smuggr.xyz/timeweave/core/csp"
	"smuggr.xyz/timeweave/core/model"
)

type classDay struct {
	ClassID string
	Day     int
}

func occupiedHoursByClassDay(st *csp.State, hoursPerDay int) map[classDay][]bool {
	out := map[classDay][]bool{}
	for _, p := range st.ActivePlacements() {
		k := classDay{p.ClassID, p.Day}
		occ, ok := out[k]
		if !ok {
			occ = make([]bool, hoursPerDay)
		}
		for h := p.Hour; h < p.Hour+p.Block && h < hoursPerDay; h++ {
			occ[h] = true
		}
		out[k] = occ
	}
	return out
}

// CountGapHours sums, over every class-day, the number of unoccupied
// hours strictly between the first and last occupied hour of that day.
func CountGapHours(st *csp.State, hoursPerDay int) int {
	total := 0
	for _, occ := range occupiedHoursByClassDay(st, hoursPerDay) {
		first, last := -1, -1
		for h, on := range occ {
			if on {
				if first == -1 {
					first = h
				}
				last = h
			}
		}
		if first == -1 {
			continue
		}
		for h := first; h <= last; h++ {
			if !occ[h] {
				total++
			}
		}
	}
	return total
}

// ValidateNoGapsHard returns one warning per class-day that contains a
// gap, for use as the final hard gate when noGaps.hard is set.
func ValidateNoGapsHard(st *csp.State, hoursPerDay int) []string {
	var warnings []string
	for k, occ := range occupiedHoursByClassDay(st, hoursPerDay) {
		first, last := -1, -1
		for h, on := range occ {
			if on {
				if first == -1 {
					first = h
				}
				last = h
			}
		}
		if first == -1 {
			continue
		}
		for h := first; h <= last; h++ {
			if !occ[h] {
				warnings = append(warnings, fmt.Sprintf("class %s has a gap on day %d at hour %d", k.ClassID, k.Day, h))
				break
			}
		}
	}
	return warnings
}

// CountUnderloadDays counts, over every class that has at least one
// scheduled day, the number of days where total placed hours fall short
// of minPerDay.
func CountUnderloadDays(st *csp.State, n *model.Normalized, minPerDay int) int {
	loadByDay := map[classDay]int{}
	daysWithActivity := map[classDay]bool{}
	for _, p := range st.ActivePlacements() {
		k := classDay{p.ClassID, p.Day}
		loadByDay[k] += p.Block
		daysWithActivity[k] = true
	}
	count := 0
	for k := range daysWithActivity {
		if loadByDay[k] < minPerDay {
			count++
		}
	}
	return count
}

// ValidateClassDailyMinimumHard returns one warning per class-day whose
// load falls below minPerDay, for the final hard gate.
func ValidateClassDailyMinimumHard(st *csp.State, cfg config.AppliedConfig) []string {
	var warnings []string
	loadByDay := map[classDay]int{}
	daysWithActivity := map[classDay]bool{}
	for _, p := range st.ActivePlacements() {
		k := classDay{p.ClassID, p.Day}
		loadByDay[k] += p.Block
		daysWithActivity[k] = true
	}
	for k := range daysWithActivity {
		if loadByDay[k] < cfg.ClassDailyMinimumLoad.MinPerDay {
			warnings = append(warnings, fmt.Sprintf("class %s on day %d has %d hours, below minimum %d", k.ClassID, k.Day, loadByDay[k], cfg.ClassDailyMinimumLoad.MinPerDay))
		}
	}
	return warnings
}
