// Package httpapi is the thin HTTP wrapper around the core solve
// pipeline: JSON decoding/validation, error-to-status mapping, and
// response shaping. Per spec.md §1 this layer stays thin — all
// scheduling logic lives in core.
package httpapi

// SolveRequest is the wire-level request body for POST /solve. Entity
// arrays stay as loose maps (the core's own normalization layer is the
// single place that reconciles field aliases and scalar-vs-list
// shapes); only the fields this layer itself must type-check are
// validated here.
type SolveRequest struct {
	Faculties        []map[string]any `json:"faculties" validate:"required,min=1,dive"`
	Subjects         []map[string]any `json:"subjects" validate:"required,min=1,dive"`
	Classes          []map[string]any `json:"classes" validate:"required,min=1,dive"`
	Combos           []map[string]any `json:"combos" validate:"required,dive"`
	FixedSlots       []map[string]any `json:"fixed_slots"`
	FixedSlotsAlt    []map[string]any `json:"fixedSlots"`
	DaysPerWeek      *int             `json:"DAYS_PER_WEEK" validate:"omitempty,min=1"`
	HoursPerDay      *int             `json:"HOURS_PER_DAY" validate:"omitempty,min=1"`
	BreakHours       []int            `json:"BREAK_HOURS"`
	RandomSeed       *int64           `json:"random_seed"`
	SolverTimeLimit  *int             `json:"solver_time_limit_sec" validate:"omitempty,min=1"`
	ConstraintConfig map[string]any   `json:"constraintConfig"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	OK string `json:"ok"`
}

// ErrorResponse is returned for transport-level failures (bad request
// body, model_invalid).
type ErrorResponse struct {
	Error string `json:"error"`
}
