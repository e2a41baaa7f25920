package model

import (
	"fmt"

	"smuggr.xyz/timeweave/core/config"
)

// ValidateFixedSlots checks each raw fixed slot independently. Valid slots
// are appended to n.FixedSlots; invalid ones append a human-readable
// warning and are otherwise dropped. teacherAvailabilityHard gates the
// last rejection reason (a fixed slot landing on a declared
// teacher-unavailable hour), since that reason only applies when teacher
// availability is a hard constraint. cfg resolves the combo's subject
// into a block size (theory vs lab), so every hour of the fixed slot's
// block — not just its starting hour — is checked, the same way
// variables.Build checks a candidate placement's whole block.
func (n *Normalized) ValidateFixedSlots(unavailable func(facultyID string, day, hour int) bool, teacherAvailabilityHard bool, cfg config.AppliedConfig) []string {
	var warnings []string
	for _, raw := range n.RawFixedSlots {
		classID, _ := getString(raw, "class")
		comboID, _ := getString(raw, "combo")

		day, dayOK := getInt(raw, "day")
		hour, hourOK := getInt(raw, "hour")
		if !dayOK || !hourOK {
			warnings = append(warnings, fmt.Sprintf("fixed slot has non-numeric day/hour: class=%s combo=%s", classID, comboID))
			continue
		}

		cls, ok := n.ClassByID[classID]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("fixed slot class not found: %s", classID))
			continue
		}
		combo, ok := n.ComboByID[comboID]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("fixed slot combo not found: %s", comboID))
			continue
		}
		if day < 0 || day >= cls.DaysPerWeek {
			warnings = append(warnings, fmt.Sprintf("fixed slot day out of range for class %s: %d", classID, day))
			continue
		}
		if hour < 0 || hour >= n.HoursPerDay {
			warnings = append(warnings, fmt.Sprintf("fixed slot hour out of range: %d", hour))
			continue
		}
		block := 1
		if subj, ok := n.SubjectByID[combo.SubjectID]; ok {
			block = cfg.Structural.TheoryBlockSize
			if subj.Kind == SubjectLab {
				block = cfg.Structural.LabBlockSize
			}
		}
		if block < 1 {
			block = 1
		}
		if hour+block > n.HoursPerDay {
			warnings = append(warnings, fmt.Sprintf("fixed slot block exceeds day length for class %s at %d,%d", classID, day, hour))
			continue
		}
		blockedByBreak := false
		for h := hour; h < hour+block; h++ {
			if _, isBreak := n.BreakHours[h]; isBreak {
				blockedByBreak = true
				break
			}
		}
		if blockedByBreak {
			warnings = append(warnings, fmt.Sprintf("fixed slot falls in break hour for class %s at %d,%d", classID, day, hour))
			continue
		}
		if teacherAvailabilityHard && unavailable != nil {
			blocked := false
			for _, fid := range combo.FacultyIDs {
				for h := hour; h < hour+block; h++ {
					if unavailable(fid, day, h) {
						blocked = true
						break
					}
				}
				if blocked {
					break
				}
			}
			if blocked {
				warnings = append(warnings, fmt.Sprintf("fixed slot conflicts with teacher unavailability for class %s at %d,%d", classID, day, hour))
				continue
			}
		}

		n.FixedSlots = append(n.FixedSlots, &FixedSlot{
			ClassID: classID,
			Day:     day,
			Hour:    hour,
			ComboID: comboID,
		})
	}
	return warnings
}
