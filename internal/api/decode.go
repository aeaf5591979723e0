package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ZanzyTHEbar/lews/internal/lockin"
)

var errNotObject = errors.New("request body must be a JSON object of dimension ratings")

// DecodeDimensions reads a JSON object of name to number. An empty body is
// an empty object. Values of known dimensions must be JSON numbers or null;
// fractional values are rounded half up. Unknown keys are dropped.
func DecodeDimensions(r io.Reader) (lockin.DimensionSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNotObject, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return lockin.DimensionSet{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", errNotObject, err)
	}
	if raw == nil {
		return nil, errNotObject
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after object", errNotObject)
	}

	values := make(map[string]float64, len(raw))
	for k, v := range raw {
		// unknown keys are ignored whatever their value; null means unsupplied
		if !lockin.IsDimension(k) || v == nil {
			continue
		}
		n, ok := v.(json.Number)
		if !ok {
			return nil, fmt.Errorf("dimension %q must be a number", k)
		}
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("dimension %q is not a representable number", k)
		}
		values[k] = f
	}
	return lockin.FromFloats(values), nil
}
