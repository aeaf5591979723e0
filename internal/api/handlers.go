package api

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ZanzyTHEbar/lews/internal/errors"
	"github.com/ZanzyTHEbar/lews/internal/lockin"
	"github.com/ZanzyTHEbar/lews/internal/trajectory"
)

// Calculate godoc
// @Summary      Assess a technology
// @Description  Scores a dimension set, classifies its stage and intervention window and matches it against the historical baseline
// @Tags         assessment
// @Accept       json
// @Produce      json
// @Param        strategy  query     string             false  "weighted7 or equal9; inferred from the keys when omitted"
// @Param        body      body      map[string]number  true   "dimension name to 0-100 rating"
// @Success      200       {object}  lockin.Result
// @Failure      400       {object}  ErrorResponse
// @Failure      429       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /calculate [post]
func (h *Handler) Calculate(c *gin.Context) {
	start := time.Now()

	dims, err := DecodeDimensions(c.Request.Body)
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidationError(err.Error(), err))
		return
	}

	schema, err := lockin.ResolveSchema(dims.Keys(), c.Query("strategy"))
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidationError(err.Error(), err))
		return
	}

	res, err := h.engine.Assess(dims, schema)
	if err != nil {
		apperrors.Respond(c, apperrors.NewInternalError("assessment failed", err))
		return
	}

	h.metrics.RecordAssessment(string(res.Strategy), string(res.Stage), string(res.InterventionWindow))
	h.logger.AssessmentLogger(string(res.Strategy), res.Score, string(res.Stage), string(res.InterventionWindow),
		res.ClampedDimensions, time.Since(start))

	writeJSON(c, res)
}

// Trajectory godoc
// @Summary      Historical trajectory
// @Description  Returns the recorded lock-in trajectory of a technology for a species
// @Tags         trajectories
// @Produce      json
// @Param        species  query     string  false  "species name"     default(chickens)
// @Param        tech     query     string  false  "technology name"  default(factoryFarming)
// @Success      200      {object}  trajectory.Trajectory
// @Failure      404      {object}  ErrorResponse
// @Router       /trajectory [get]
func (h *Handler) Trajectory(c *gin.Context) {
	species := c.Query("species")
	if species == "" {
		species = trajectory.DefaultSpecies
	}
	tech := c.Query("tech")
	if tech == "" {
		tech = trajectory.DefaultTechnology
	}

	t, err := h.store.Lookup(species, tech)
	h.logger.TrajectoryLogger(species, tech, err == nil)

	switch {
	case err == nil:
		h.metrics.RecordTrajectoryLookup("found")
		writeJSON(c, t)
	case errors.Is(err, trajectory.ErrSpeciesNotFound):
		h.metrics.RecordTrajectoryLookup("species_missing")
		notFoundBody(c, err)
	case errors.Is(err, trajectory.ErrTechnologyNotFound):
		h.metrics.RecordTrajectoryLookup("technology_missing")
		notFoundBody(c, err)
	default:
		apperrors.Respond(c, err)
	}
}

// TrajectoryIndex lists technologies per species
type TrajectoryIndex struct {
	Species map[string][]string `json:"species"`
	Count   int                 `json:"count"`
}

// Trajectories godoc
// @Summary      Trajectory index
// @Tags         trajectories
// @Produce      json
// @Success      200  {object}  TrajectoryIndex
// @Router       /trajectories [get]
func (h *Handler) Trajectories(c *gin.Context) {
	writeJSON(c, TrajectoryIndex{
		Species: h.store.Index(),
		Count:   h.store.Count(),
	})
}

// DimensionCatalog describes both schemas
type DimensionCatalog struct {
	Schemas []lockin.SchemaInfo `json:"schemas"`
}

// Dimensions godoc
// @Summary      Dimension catalogue
// @Description  Labels, descriptions and weights of every dimension of both schemas
// @Tags         reference
// @Produce      json
// @Success      200  {object}  DimensionCatalog
// @Router       /dimensions [get]
func (h *Handler) Dimensions(c *gin.Context) {
	w := h.engine.Weights()
	writeJSON(c, DimensionCatalog{Schemas: []lockin.SchemaInfo{
		lockin.Describe(lockin.SchemaWeighted7, w),
		lockin.Describe(lockin.SchemaEqual9, w),
	}})
}

// PresetList holds the example dimension sets
type PresetList struct {
	Presets []lockin.Preset `json:"presets"`
}

// Presets godoc
// @Summary      Example assessments
// @Tags         reference
// @Produce      json
// @Success      200  {object}  PresetList
// @Router       /presets [get]
func (h *Handler) Presets(c *gin.Context) {
	writeJSON(c, PresetList{Presets: lockin.Presets()})
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status         string                 `json:"status"`
	Version        string                 `json:"version"`
	Timestamp      string                 `json:"timestamp"`
	Species        int                    `json:"species"`
	Technologies   int                    `json:"technologies"`
	BaselinePoints int                    `json:"baselinePoints"`
	Metrics        map[string]interface{} `json:"metrics"`
	RateLimit      map[string]interface{} `json:"rateLimit,omitempty"`
}

// Health godoc
// @Summary      Liveness and dataset summary
// @Tags         operations
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:         "ok",
		Version:        h.version,
		Timestamp:      time.Now().Format(time.RFC3339),
		Species:        len(h.store.Species()),
		Technologies:   h.store.Count(),
		BaselinePoints: h.engine.Baseline().Len(),
		Metrics:        h.metrics.GetStats(),
	}
	if h.limiter != nil {
		resp.RateLimit = h.limiter.GetStats()
	}
	writeJSON(c, resp)
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error" example:"Species data not found for unicorns"`
}
