// Package calc implements the PLCortex engineering calculators: Ohm's law,
// enclosure thermal load, motor sizing, wire sizing and voltage drop,
// encoder/motion scaling, DC power-supply sizing, and PLC analog scaling.
//
// Every calculator is a pure function from a validated input struct to a
// result struct. Failures are permanent input-validation failures; nothing
// here retries or blocks.
package calc

import (
	"errors"
	"fmt"
	"math"
)

// ErrBadInput is wrapped by every calculator input rejection.
var ErrBadInput = errors.New("calc: invalid input")

func badInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrBadInput, fmt.Sprintf(format, args...))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// requirePositive validates that a named value is finite and > 0.
func requirePositive(name string, v float64) error {
	if !finite(v) {
		return badInput("%s must be finite, got %v", name, v)
	}
	if v <= 0 {
		return badInput("%s must be positive, got %v", name, v)
	}
	return nil
}
