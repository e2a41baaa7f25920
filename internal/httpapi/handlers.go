package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"smuggr.xyz/timeweave/core"
	"smuggr.xyz/timeweave/core/csp"
	"smuggr.xyz/timeweave/core/model"
	"smuggr.xyz/timeweave/internal/apierror"
	"smuggr.xyz/timeweave/internal/logging"
	"smuggr.xyz/timeweave/internal/metrics"
)

type Handlers struct {
	logger        *zap.Logger
	metrics       *metrics.Metrics
	validate      *validator.Validate
	allowFallback bool
	randomSeed    int64
	timeLimitSec  int
}

func NewHandlers(logger *zap.Logger, m *metrics.Metrics, allowFallback bool, randomSeed int64, timeLimitSec int) *Handlers {
	return &Handlers{
		logger:        logger,
		metrics:       m,
		validate:      validator.New(),
		allowFallback: allowFallback,
		randomSeed:    randomSeed,
		timeLimitSec:  timeLimitSec,
	}
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{OK: "true"})
}

// Solve handles POST /solve: decode, validate, hand off to core.Solve,
// and shape the response per spec.md §6.
func (h *Handlers) Solve(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiErr := apierror.BadRequest("invalid request body: " + err.Error())
		c.JSON(apiErr.StatusCode(), ErrorResponse{Error: apiErr.Error()})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		apiErr := apierror.BadRequest("validation failed: " + err.Error())
		c.JSON(apiErr.StatusCode(), ErrorResponse{Error: apiErr.Error()})
		return
	}

	coreReq := model.Request{
		Faculties:        req.Faculties,
		Subjects:         req.Subjects,
		Classes:          req.Classes,
		Combos:           req.Combos,
		FixedSlots:       req.FixedSlots,
		FixedSlotsAlt:    req.FixedSlotsAlt,
		DaysPerWeek:      req.DaysPerWeek,
		HoursPerDay:      req.HoursPerDay,
		BreakHours:       req.BreakHours,
		RandomSeed:       req.RandomSeed,
		SolverTimeLimit:  req.SolverTimeLimit,
		ConstraintConfig: req.ConstraintConfig,
	}
	if coreReq.RandomSeed == nil {
		seed := h.randomSeed
		coreReq.RandomSeed = &seed
	}
	if coreReq.SolverTimeLimit == nil {
		limit := h.timeLimitSec
		coreReq.SolverTimeLimit = &limit
	}

	start := time.Now()
	result := core.Solve(c.Request.Context(), coreReq, core.Options{
		AllowFallback: h.allowFallback,
		Logger:        h.logger,
	})
	duration := time.Since(start)

	reqID := logging.RequestIDFrom(c)
	h.logger.Info("solve_completed",
		zap.String("request_id", reqID),
		zap.String("status", string(result.Status)),
		zap.Bool("ok", result.OK),
		zap.Duration("duration", duration),
		zap.Int("unmet_count", len(result.UnmetRequirements)),
	)
	if h.metrics != nil {
		h.metrics.ObserveSolve(string(result.Status), duration)
	}

	if result.Status == csp.StatusModelInvalid {
		apiErr := apierror.ModelInvalid(result.Error)
		c.JSON(apiErr.StatusCode(), ErrorResponse{Error: apiErr.Error()})
		return
	}

	if !result.OK {
		apiErr := &apierror.Error{Kind: apierror.KindInfeasible, Message: result.Error}
		body := gin.H{
			"ok":                 false,
			"error":              apiErr.Error(),
			"classes":            result.Classes,
			"unmet_requirements": result.UnmetRequirements,
			"warnings":           result.Warnings,
			"config":             result.Config,
		}
		if result.ClassTimetables != nil {
			body["class_timetables"] = result.ClassTimetables
			body["faculty_timetables"] = result.FacultyTimetables
		}
		c.JSON(apiErr.StatusCode(), body)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":                 true,
		"class_timetables":   result.ClassTimetables,
		"faculty_timetables": result.FacultyTimetables,
		"classes":            result.Classes,
		"unmet_requirements": result.UnmetRequirements,
		"warnings":           result.Warnings,
		"config":             result.Config,
	})
}
