package lockin

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ZanzyTHEbar/lews/internal/trajectory"
)

// KeyMetrics are illustrative presentation figures derived from the
// weighted-7 inputs. They do not feed the score.
type KeyMetrics struct {
	AnimalsAffected string `json:"animalsAffected"`
	SufferingHours  string `json:"sufferingHours"`
	AdvocacyOrgs    int    `json:"advocacyOrgs"`
	ExpectedLockIn  string `json:"expectedLockIn"`
}

// Result is a single assessment. It is built per call and never stored.
type Result struct {
	Strategy           Schema             `json:"strategy"`
	SchemaVersion      int                `json:"schemaVersion"`
	Score              int                `json:"score"`
	Range              *Range             `json:"range,omitempty"`
	Stage              Stage              `json:"stage"`
	InterventionWindow InterventionWindow `json:"interventionWindow"`
	TimeUntilLockin    string             `json:"timeUntilLockin,omitempty"`
	HistoricalMatch    HistoricalMatch    `json:"historicalMatch"`
	KeyMetrics         *KeyMetrics        `json:"keyMetrics,omitempty"`
	Message            string             `json:"message"`
	Dimensions         DimensionSet       `json:"dimensions"`
	ClampedDimensions  []string           `json:"clampedDimensions,omitempty"`
}

// Engine assembles assessments against an injected baseline trajectory.
// It holds no mutable state and may be shared across goroutines.
type Engine struct {
	baseline    trajectory.Trajectory
	weights     WeightSet
	currentYear YearFunc
	offsetYears int
	strategies  map[Schema]Strategy
}

// Option configures an Engine
type Option func(*Engine)

// WithCurrentYear replaces the wall clock, mainly for tests
func WithCurrentYear(fn YearFunc) Option {
	return func(e *Engine) { e.currentYear = fn }
}

// WithLockinOffset overrides DefaultLockinOffsetYears
func WithLockinOffset(years int) Option {
	return func(e *Engine) { e.offsetYears = years }
}

// WithWeights overrides DefaultWeights
func WithWeights(w WeightSet) Option {
	return func(e *Engine) { e.weights = w }
}

// NewEngine builds an engine comparing against baseline
func NewEngine(baseline trajectory.Trajectory, opts ...Option) (*Engine, error) {
	e := &Engine{
		baseline:    baseline,
		weights:     DefaultWeights(),
		currentYear: SystemYear,
		offsetYears: DefaultLockinOffsetYears,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	if e.offsetYears < 0 {
		return nil, fmt.Errorf("lock-in offset must not be negative, got %d", e.offsetYears)
	}

	e.strategies = map[Schema]Strategy{
		SchemaWeighted7: Weighted7{Weights: e.weights},
		SchemaEqual9:    Equal9{},
	}
	return e, nil
}

// Weights returns the weighted-7 coefficients in use
func (e *Engine) Weights() WeightSet {
	return e.weights
}

// Baseline returns the comparison trajectory
func (e *Engine) Baseline() trajectory.Trajectory {
	return e.baseline
}

// Assess scores in under schema s
func (e *Engine) Assess(in DimensionSet, s Schema) (Result, error) {
	strategy, ok := e.strategies[s]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}

	norm := Normalize(in, s)
	dims := norm.Dimensions
	score := strategy.Score(dims)
	stage := ClassifyStage(score)
	window := ClassifyWindow(score)
	match := FindClosest(e.baseline.Points, score)

	res := Result{
		Strategy:           s,
		SchemaVersion:      s.Version(),
		Score:              score,
		Stage:              stage,
		InterventionWindow: window,
		HistoricalMatch:    match,
		Dimensions:         dims,
		ClampedDimensions:  norm.Clamped,
	}

	if s != SchemaWeighted7 {
		res.Message = fmt.Sprintf("Current score %d indicates %s phase with %s window", score, stage, window)
		return res, nil
	}

	band := EstimateRange(score, dims[DimUncertainty])
	eta := EstimateTimeUntilLockin(match, score, e.currentYear(), e.offsetYears)

	res.Range = &band
	res.TimeUntilLockin = eta
	res.KeyMetrics = deriveKeyMetrics(dims, eta)
	res.Message = fmt.Sprintf("Current score %d (%d-%d) indicates %s phase with %s window",
		score, band.Lower, band.Upper, stage, window)
	return res, nil
}

func deriveKeyMetrics(d DimensionSet, eta string) *KeyMetrics {
	animals := float64(d[DimAnimals]) / 100.0
	suffering := float64(d[DimSuffering]) / 100.0

	// billions of animals per year and trillions of suffering hours
	totalAnimals := roundHalfUp(animals * 1000)
	totalSuffering := math.Floor(suffering*animals*10000+0.5) / 10

	advocacy := 100 - d[DimSupport]
	if advocacy < 0 {
		advocacy = 0
	}

	return &KeyMetrics{
		AnimalsAffected: fmt.Sprintf("%dB animals/year", totalAnimals),
		SufferingHours:  strconv.FormatFloat(totalSuffering, 'f', -1, 64) + "T hours",
		AdvocacyOrgs:    advocacy,
		ExpectedLockIn:  eta,
	}
}
