package model

import (
	"encoding/json"
	"fmt"
)

// Request is the already-parsed structured payload the HTTP layer hands
// to the core. Entity arrays are kept as loose maps deliberately: the
// orchestrator's field shapes vary (scalar-or-list faculty refs, _id vs
// id), and Normalize is the single place that turns that into typed
// entities.
type Request struct {
	Faculties        []map[string]any `json:"faculties"`
	Subjects         []map[string]any `json:"subjects"`
	Classes          []map[string]any `json:"classes"`
	Combos           []map[string]any `json:"combos"`
	FixedSlots       []map[string]any `json:"fixed_slots"`
	FixedSlotsAlt    []map[string]any `json:"fixedSlots"`
	DaysPerWeek      *int             `json:"DAYS_PER_WEEK"`
	HoursPerDay      *int             `json:"HOURS_PER_DAY"`
	BreakHours       []int            `json:"BREAK_HOURS"`
	RandomSeed       *int64           `json:"random_seed"`
	SolverTimeLimit  *int             `json:"solver_time_limit_sec"`
	ConstraintConfig map[string]any   `json:"constraintConfig"`
}

// Normalized is the typed, request-scoped input the rest of the core
// consumes.
type Normalized struct {
	Faculties  []*Faculty
	Subjects   []*Subject
	Classes    []*Class
	Combos     []*Combo
	FixedSlots []*FixedSlot // only slots that passed structural validation

	FacultyByID map[string]*Faculty
	SubjectByID map[string]*Subject
	ClassByID   map[string]*Class
	ComboByID   map[string]*Combo

	DaysPerWeek int
	HoursPerDay int
	BreakHours  map[int]struct{}
	RandomSeed  int64

	// RawFixedSlots are the as-yet-unvalidated fixed slot entries;
	// ValidateFixedSlots (validate.go) turns these into FixedSlots plus
	// warnings.
	RawFixedSlots []map[string]any
}

func idOf(m map[string]any) string {
	if v, ok := m["_id"]; ok && v != nil {
		return toString(v)
	}
	if v, ok := m["id"]; ok && v != nil {
		return toString(v)
	}
	return ""
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func getString(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", false
	}
	return toString(v), true
}

func getInt(m map[string]any, key string) (int, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, false
	}
	return toInt(v), true
}

func toInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case json.Number:
		n, _ := t.Int64()
		return int(n)
	case string:
		var n int
		_, _ = fmt.Sscanf(t, "%d", &n)
		return n
	default:
		return 0
	}
}

func getStringSlice(m map[string]any, key string) []string {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, it := range arr {
		out = append(out, toString(it))
	}
	return out
}

// normalizeFacultyIDs defaults a combo's faculty team from a scalar
// faculty_id field when faculty_ids is absent, per spec.md §4.1.
func normalizeFacultyIDs(m map[string]any) []string {
	if ids := getStringSlice(m, "faculty_ids"); len(ids) > 0 {
		return ids
	}
	if id, ok := getString(m, "faculty_id"); ok && id != "" {
		return []string{id}
	}
	return nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Normalize builds typed entities from the raw request. It never fails on
// malformed optional fields; missing identifiers become empty strings and
// surface downstream as "unknown id" warnings instead of aborting the
// whole request.
func Normalize(req Request) *Normalized {
	n := &Normalized{
		FacultyByID: map[string]*Faculty{},
		SubjectByID: map[string]*Subject{},
		ClassByID:   map[string]*Class{},
		ComboByID:   map[string]*Combo{},
		BreakHours:  map[int]struct{}{},
	}

	n.DaysPerWeek = 6
	if req.DaysPerWeek != nil {
		n.DaysPerWeek = *req.DaysPerWeek
	}
	n.HoursPerDay = 8
	if req.HoursPerDay != nil {
		n.HoursPerDay = *req.HoursPerDay
	}
	for _, h := range req.BreakHours {
		n.BreakHours[h] = struct{}{}
	}
	n.RandomSeed = 1
	if req.RandomSeed != nil {
		n.RandomSeed = *req.RandomSeed
	}

	for _, m := range req.Faculties {
		f := &Faculty{ID: idOf(m)}
		n.Faculties = append(n.Faculties, f)
		n.FacultyByID[f.ID] = f
	}

	for _, m := range req.Subjects {
		kind := SubjectTheory
		if k, ok := getString(m, "kind"); ok && SubjectKind(k) == SubjectLab {
			kind = SubjectLab
		} else if k, ok := getString(m, "type"); ok && SubjectKind(k) == SubjectLab {
			kind = SubjectLab
		}
		hours, _ := getInt(m, "default_hours_per_week")
		if hours == 0 {
			hours, _ = getInt(m, "no_of_hours_per_week")
		}
		s := &Subject{ID: idOf(m), Kind: kind, DefaultHoursPerWeek: hours}
		n.Subjects = append(n.Subjects, s)
		n.SubjectByID[s.ID] = s
	}

	for _, m := range req.Classes {
		days, ok := getInt(m, "days_per_week")
		explicit := ok && days > 0
		if !explicit {
			days = n.DaysPerWeek
		}
		allowed := toSet(getStringSlice(m, "allowed_combo_ids"))
		for id := range toSet(getStringSlice(m, "assigned_teacher_subject_combos")) {
			allowed[id] = struct{}{}
		}
		subjHours := map[string]int{}
		if raw, ok := m["subject_hours"]; ok && raw != nil {
			if mm, ok := raw.(map[string]any); ok {
				for k, v := range mm {
					if v == nil {
						continue
					}
					subjHours[k] = toInt(v)
				}
			}
		}
		c := &Class{
			ID:              idOf(m),
			DaysPerWeek:     days,
			DaysPerWeekSet:  explicit,
			AllowedComboIDs: allowed,
			SubjectHours:    subjHours,
		}
		n.Classes = append(n.Classes, c)
		n.ClassByID[c.ID] = c
	}

	for _, m := range req.Combos {
		combo := &Combo{
			ID:         idOf(m),
			FacultyIDs: normalizeFacultyIDs(m),
			ClassIDs:   toSet(getStringSlice(m, "class_ids")),
		}
		if sid, ok := getString(m, "subject_id"); ok {
			combo.SubjectID = sid
		}
		n.Combos = append(n.Combos, combo)
		n.ComboByID[combo.ID] = combo
	}

	fixedRaw := req.FixedSlots
	if len(fixedRaw) == 0 {
		fixedRaw = req.FixedSlotsAlt
	}
	n.RawFixedSlots = fixedRaw

	return n
}
