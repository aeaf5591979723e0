package trajectory

import (
	"errors"
	"fmt"
)

var (
	// ErrSpeciesNotFound is returned when the store has no data for a species
	ErrSpeciesNotFound = errors.New("species not found")
	// ErrTechnologyNotFound is returned when a species has no trajectory for a technology
	ErrTechnologyNotFound = errors.New("technology not found")
)

// LookupError describes a failed species/technology lookup. Its message is the
// one reported to API callers.
type LookupError struct {
	Species    string
	Technology string
	Err        error
}

func (e *LookupError) Error() string {
	if errors.Is(e.Err, ErrSpeciesNotFound) {
		return fmt.Sprintf("Species data not found for %s", e.Species)
	}
	return fmt.Sprintf("Trajectory data not found for %s in %s", e.Technology, e.Species)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
