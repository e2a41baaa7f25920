// Package variables enumerates feasible placements (C3): for every
// (class, day, start-hour, combo) tuple whose block fits the day and
// doesn't cross a break hour, it creates a placement variable and
// indexes it into the class/teacher/subject cover maps constraint
// assembly needs.
package variables

import (
	"smuggr.xyz/timeweave/core/config"
	"smuggr.xyz/timeweave/core/model"
)

// Placement is one decision variable: "combo occupies [hour, hour+block)
// on day, for class".
type Placement struct {
	ID      int
	ClassID string
	Day     int
	Hour    int
	ComboID string
	Subject *model.Subject
	Combo   *model.Combo
	Block   int

	// TeacherUnavailable marks a placement whose block intersects a
	// declared teacher-unavailable slot. Set regardless of hard/soft mode;
	// hard mode additionally drops the placement outright (see Build),
	// soft mode leaves it standing for addTeacherAvailabilityPenalty to
	// penalize in core/constraints.
	TeacherUnavailable bool
}

type classSlot struct {
	ClassID string
	Day     int
	Hour    int
}

type teacherSlot struct {
	FacultyID string
	Day       int
	Hour      int
}

type subjectSlot struct {
	ClassID   string
	Day       int
	Hour      int
	SubjectID string
}

type classSubject struct {
	ClassID   string
	SubjectID string
}

// Index is the full output of variable construction: the ordered
// placement list plus the three cover multimaps from spec.md §4.3, plus a
// by-(class,subject) grouping used by the weekly-hours constraint.
type Index struct {
	Placements     []*Placement
	ClassCovers    map[classSlot][]*Placement
	TeacherCovers  map[teacherSlot][]*Placement
	SubjectCovers  map[subjectSlot][]*Placement
	ByClassSubject map[classSubject][]*Placement

	// RequiredHours[classID][subjectID] mirrors model.Class.RequiredHours
	// but precomputed for every class×subject pair (including zero-req
	// ones, so callers don't need the subject list again).
	RequiredHours map[classSubject]int

	// NoEligible flags (class,subject) pairs with req>0 and zero
	// candidate placements at build time (spec.md §9's pre-detection
	// path for weeklyHoursHard infeasibility).
	NoEligible map[classSubject]bool
}

func (ix *Index) ClassCover(classID string, day, hour int) []*Placement {
	return ix.ClassCovers[classSlot{classID, day, hour}]
}

func (ix *Index) TeacherCover(facultyID string, day, hour int) []*Placement {
	return ix.TeacherCovers[teacherSlot{facultyID, day, hour}]
}

func (ix *Index) SubjectCover(classID string, day, hour int, subjectID string) []*Placement {
	return ix.SubjectCovers[subjectSlot{classID, day, hour, subjectID}]
}

// RequiredHoursFor looks up the weekly hour requirement for a
// (class, subject) pair, for callers outside this package that only
// have the IDs on hand.
func (ix *Index) RequiredHoursFor(classID, subjectID string) int {
	return ix.RequiredHours[classSubject{classID, subjectID}]
}

// PlacementsFor returns the candidate placements for a (class, subject)
// pair in build order.
func (ix *Index) PlacementsFor(classID, subjectID string) []*Placement {
	return ix.ByClassSubject[classSubject{classID, subjectID}]
}

// unavailableFunc reports whether a faculty member is declared
// unavailable at (day, hour); used to drop placement variables outright
// when teacherAvailability is enabled and hard (spec.md §4.3).
type unavailableFunc func(facultyID string, day, hour int) bool

// Build enumerates placements following spec.md §4.3's stable ordering:
// classes, then days, then hours, then combos, all in input order.
func Build(n *model.Normalized, cfg config.AppliedConfig, unavailable unavailableFunc, availabilityHard bool) *Index {
	ix := &Index{
		ClassCovers:    map[classSlot][]*Placement{},
		TeacherCovers:  map[teacherSlot][]*Placement{},
		SubjectCovers:  map[subjectSlot][]*Placement{},
		ByClassSubject: map[classSubject][]*Placement{},
		RequiredHours:  map[classSubject]int{},
		NoEligible:     map[classSubject]bool{},
	}

	breakHours := cfg.Schedule.BreakHours
	breakSet := make(map[int]struct{}, len(breakHours))
	for _, h := range breakHours {
		breakSet[h] = struct{}{}
	}
	hoursPerDay := cfg.Schedule.HoursPerDay

	for _, cls := range n.Classes {
		for _, subj := range n.Subjects {
			ix.RequiredHours[classSubject{cls.ID, subj.ID}] = cls.RequiredHours(subj)
		}
	}

	nextID := 0
	for _, cls := range n.Classes {
		allowed := make(map[string]struct{}, len(cls.AllowedComboIDs))
		for id := range cls.AllowedComboIDs {
			allowed[id] = struct{}{}
		}
		for _, combo := range n.Combos {
			if _, in := combo.ClassIDs[cls.ID]; in {
				allowed[combo.ID] = struct{}{}
			}
		}

		for day := 0; day < cls.DaysPerWeek; day++ {
			for hour := 0; hour < hoursPerDay; hour++ {
				if _, isBreak := breakSet[hour]; isBreak {
					continue
				}
				for _, combo := range n.Combos {
					if _, ok := allowed[combo.ID]; !ok {
						continue
					}
					// Invariant 5: class_ids non-empty and excludes this
					// class demotes the combo even if listed in
					// allowed_combo_ids.
					if len(combo.ClassIDs) > 0 {
						if _, ok := combo.ClassIDs[cls.ID]; !ok {
							continue
						}
					}
					subj, ok := n.SubjectByID[combo.SubjectID]
					if !ok {
						continue
					}
					if ix.RequiredHours[classSubject{cls.ID, subj.ID}] <= 0 {
						continue
					}
					block := cfg.Structural.TheoryBlockSize
					if subj.Kind == model.SubjectLab {
						block = cfg.Structural.LabBlockSize
					}
					if hour+block > hoursPerDay {
						continue
					}
					blocked := false
					for h := hour; h < hour+block; h++ {
						if _, isBreak := breakSet[h]; isBreak {
							blocked = true
							break
						}
					}
					if blocked {
						continue
					}
					unavailableBlock := false
					if unavailable != nil {
						for _, fid := range combo.FacultyIDs {
							for h := hour; h < hour+block; h++ {
								if unavailable(fid, day, h) {
									unavailableBlock = true
									break
								}
							}
							if unavailableBlock {
								break
							}
						}
					}
					if availabilityHard && unavailableBlock {
						continue
					}

					p := &Placement{
						ID:                 nextID,
						ClassID:            cls.ID,
						Day:                day,
						Hour:               hour,
						ComboID:            combo.ID,
						Subject:            subj,
						Combo:              combo,
						Block:              block,
						TeacherUnavailable: unavailableBlock,
					}
					nextID++
					ix.Placements = append(ix.Placements, p)

					for h := hour; h < hour+block; h++ {
						cs := classSlot{cls.ID, day, h}
						ix.ClassCovers[cs] = append(ix.ClassCovers[cs], p)
						for _, fid := range combo.FacultyIDs {
							ts := teacherSlot{fid, day, h}
							ix.TeacherCovers[ts] = append(ix.TeacherCovers[ts], p)
						}
						ss := subjectSlot{cls.ID, day, h, subj.ID}
						ix.SubjectCovers[ss] = append(ix.SubjectCovers[ss], p)
					}
					key := classSubject{cls.ID, subj.ID}
					ix.ByClassSubject[key] = append(ix.ByClassSubject[key], p)
				}
			}
		}
	}

	for _, cls := range n.Classes {
		for _, subj := range n.Subjects {
			key := classSubject{cls.ID, subj.ID}
			if ix.RequiredHours[key] > 0 && len(ix.ByClassSubject[key]) == 0 {
				ix.NoEligible[key] = true
			}
		}
	}

	return ix
}
