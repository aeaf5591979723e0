package lockin

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Schema names a dimension set layout and the strategy that scores it
type Schema string

const (
	SchemaWeighted7 Schema = "weighted7"
	SchemaEqual9    Schema = "equal9"
)

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrMixedSchema     = errors.New("dimensions from more than one schema")
)

// Weighted-7 dimension keys
const (
	DimUncertainty    = "uncertainty"
	DimAnimals        = "animals"
	DimCanTheyFeel    = "canTheyFeel"
	DimSuffering      = "suffering"
	DimGrowth         = "growth"
	DimSupport        = "support"
	DimPathDependence = "pathDependence"
)

// Equal-9 dimension keys
const (
	DimRegulatoryCapture          = "regulatoryCapture"
	DimInfrastructureHardening    = "infrastructureHardening"
	DimSupplyChainStandardization = "supplyChainStandardization"
	DimCorporateConsolidation     = "corporateConsolidation"
	DimPathDependency             = "pathDependency"
	DimAIAutomationEmbedding      = "aiAutomationEmbedding"
	DimInternationalExpansion     = "internationalExpansion"
	DimSlaughterInertia           = "slaughterInertia"
	DimBreedingLockIn             = "breedingLockIn"
)

const (
	MinRating = 0
	MaxRating = 100
)

var (
	weighted7Keys = []string{
		DimUncertainty, DimAnimals, DimCanTheyFeel, DimSuffering,
		DimGrowth, DimSupport, DimPathDependence,
	}
	equal9Keys = []string{
		DimRegulatoryCapture, DimInfrastructureHardening, DimSupplyChainStandardization,
		DimCorporateConsolidation, DimPathDependency, DimAIAutomationEmbedding,
		DimInternationalExpansion, DimSlaughterInertia, DimBreedingLockIn,
	}
	keySchema = func() map[string]Schema {
		m := make(map[string]Schema, len(weighted7Keys)+len(equal9Keys))
		for _, k := range weighted7Keys {
			m[k] = SchemaWeighted7
		}
		for _, k := range equal9Keys {
			m[k] = SchemaEqual9
		}
		return m
	}()
)

// IsDimension reports whether key belongs to either schema
func IsDimension(key string) bool {
	_, ok := keySchema[key]
	return ok
}

// ParseSchema accepts the strategy names used on the wire
func ParseSchema(name string) (Schema, error) {
	switch Schema(name) {
	case SchemaWeighted7, SchemaEqual9:
		return Schema(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Version is the documented schema version
func (s Schema) Version() int {
	if s == SchemaEqual9 {
		return 2
	}
	return 1
}

// Keys returns the dimension names of the schema in canonical order
func (s Schema) Keys() []string {
	if s == SchemaEqual9 {
		return append([]string(nil), equal9Keys...)
	}
	return append([]string(nil), weighted7Keys...)
}

// DimensionSet maps dimension name to a 0-100 rating
type DimensionSet map[string]int

// Keys returns the sorted dimension names present in d
func (d DimensionSet) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FromFloats converts decoded JSON numbers into ratings, rounding half up.
// Values are bounded to the int32 range so that absurd input cannot overflow.
func FromFloats(values map[string]float64) DimensionSet {
	d := make(DimensionSet, len(values))
	for k, v := range values {
		switch {
		case v > math.MaxInt32:
			v = math.MaxInt32
		case v < math.MinInt32:
			v = math.MinInt32
		}
		d[k] = roundHalfUp(v)
	}
	return d
}

// ResolveSchema picks the schema for a request. An explicit strategy wins;
// otherwise the schema is inferred from the keys, defaulting to weighted7.
// Keys belonging to the other schema are rejected rather than merged.
func ResolveSchema(keys []string, strategy string) (Schema, error) {
	seen := map[Schema]bool{}
	for _, k := range keys {
		if s, ok := keySchema[k]; ok {
			seen[s] = true
		}
	}

	if strategy != "" {
		s, err := ParseSchema(strategy)
		if err != nil {
			return "", err
		}
		for other := range seen {
			if other != s {
				return "", fmt.Errorf("%w: %s strategy given %s dimensions", ErrMixedSchema, s, other)
			}
		}
		return s, nil
	}

	switch {
	case seen[SchemaWeighted7] && seen[SchemaEqual9]:
		return "", fmt.Errorf("%w: %s and %s", ErrMixedSchema, SchemaWeighted7, SchemaEqual9)
	case seen[SchemaEqual9]:
		return SchemaEqual9, nil
	default:
		return SchemaWeighted7, nil
	}
}

// Normalized is a complete, clamped dimension set
type Normalized struct {
	Dimensions DimensionSet
	// Clamped lists keys whose supplied value fell outside [0,100]
	Clamped []string
}

// Normalize fills every key of the schema, defaulting to 0, clamps values
// into [MinRating, MaxRating] and drops keys the schema does not know.
func Normalize(in DimensionSet, s Schema) Normalized {
	keys := s.Keys()
	out := Normalized{Dimensions: make(DimensionSet, len(keys))}
	for _, k := range keys {
		v := in[k]
		if v < MinRating || v > MaxRating {
			out.Clamped = append(out.Clamped, k)
			v = clampRating(v)
		}
		out.Dimensions[k] = v
	}
	return out
}

func clampRating(v int) int {
	if v < MinRating {
		return MinRating
	}
	if v > MaxRating {
		return MaxRating
	}
	return v
}

// roundHalfUp rounds ties toward +Inf
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
