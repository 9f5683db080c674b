// Package scaling implements linear engineering-units scaling: the affine
// mapping between a raw instrumentation signal range (controller counts) and
// an engineering-units range (Hz, PSI, °C), with optional clamping and
// derived alarm thresholds.
//
// Every operation is a pure function over its arguments. There is no shared
// state, so all functions are safe for concurrent use.
package scaling

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDegenerateRange is returned when an input range has zero width
	// (min == max), which would make the mapping undefined.
	ErrDegenerateRange = errors.New("scaling: degenerate range (min == max)")

	// ErrNonFinite is returned when a value or endpoint is NaN or infinite.
	ErrNonFinite = errors.New("scaling: non-finite value")
)

// Mapping is one affine scaling configuration between a raw signal range
// and an engineering-units range. It is pure configuration with no identity:
// callers construct a fresh Mapping from endpoints on every recomputation.
type Mapping struct {
	RawMin float64 `yaml:"raw_min" json:"raw_min"`
	RawMax float64 `yaml:"raw_max" json:"raw_max"`
	EngMin float64 `yaml:"eng_min" json:"eng_min"`
	EngMax float64 `yaml:"eng_max" json:"eng_max"`

	// Clamp saturates mapped outputs to the target range instead of
	// extrapolating beyond it.
	Clamp bool `yaml:"clamp" json:"clamp"`
}

// Validate rejects degenerate or non-finite endpoint configurations.
// A Mapping that fails Validate must not be used for conversion.
func (m Mapping) Validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"raw_min", m.RawMin},
		{"raw_max", m.RawMax},
		{"eng_min", m.EngMin},
		{"eng_max", m.EngMax},
	} {
		if !isFinite(v.val) {
			return fmt.Errorf("%s = %v: %w", v.name, v.val, ErrNonFinite)
		}
	}
	if m.RawMin == m.RawMax {
		return fmt.Errorf("raw range [%v, %v]: %w", m.RawMin, m.RawMax, ErrDegenerateRange)
	}
	if m.EngMin == m.EngMax {
		return fmt.Errorf("eng range [%v, %v]: %w", m.EngMin, m.EngMax, ErrDegenerateRange)
	}
	return nil
}

// Scale converts value from the range [inMin, inMax] to [outMin, outMax]
// with an exact affine transform. Inputs outside the source range
// extrapolate; callers wanting saturation apply ClampToRange themselves or
// use Mapping with Clamp set.
//
// A zero-width input range is rejected with ErrDegenerateRange. It is never
// silently resolved to outMin: a degenerate range is an invalid
// configuration, not a value.
func Scale(value, inMin, inMax, outMin, outMax float64) (float64, error) {
	for _, v := range []float64{value, inMin, inMax, outMin, outMax} {
		if !isFinite(v) {
			return 0, ErrNonFinite
		}
	}
	if inMin == inMax {
		return 0, fmt.Errorf("input range [%v, %v]: %w", inMin, inMax, ErrDegenerateRange)
	}
	return (value-inMin)/(inMax-inMin)*(outMax-outMin) + outMin, nil
}

// ToEng maps a raw signal value into engineering units. When m.Clamp is set
// the result saturates to the engineering range.
func (m Mapping) ToEng(raw float64) (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	eng, err := Scale(raw, m.RawMin, m.RawMax, m.EngMin, m.EngMax)
	if err != nil {
		return 0, err
	}
	if m.Clamp {
		eng = ClampToRange(eng, m.EngMin, m.EngMax)
	}
	return eng, nil
}

// ToRaw is the inverse of ToEng: it maps an engineering-units value back to
// raw counts by swapping domain and codomain. For any finite x,
// ToRaw(ToEng(x)) == x up to floating-point rounding (clamping aside).
func (m Mapping) ToRaw(eng float64) (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	raw, err := Scale(eng, m.EngMin, m.EngMax, m.RawMin, m.RawMax)
	if err != nil {
		return 0, err
	}
	if m.Clamp {
		raw = ClampToRange(raw, m.RawMin, m.RawMax)
	}
	return raw, nil
}

// ClampToRange saturates value to [lo, hi]. Bound ordering is normalized
// first, so descending ranges (e.g. EngMin=60, EngMax=0) clamp correctly.
func ClampToRange(value, lo, hi float64) float64 {
	lo, hi = math.Min(lo, hi), math.Max(lo, hi)
	return math.Max(math.Min(value, hi), lo)
}

// Span returns the width of the engineering range. Negative for descending
// ranges.
func (m Mapping) Span() float64 {
	return m.EngMax - m.EngMin
}

// Resolution returns the engineering units represented by one raw count
// over the mapping's own raw span. It is the smallest engineering-units
// change one count of the configured input range can express; cards whose
// nominal range covers only part of the converter (Siemens 0..27648 of a
// 15-bit word, Logix 3277..16383) resolve coarser than the converter width
// alone suggests.
func (m Mapping) Resolution() (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	return math.Abs(m.Span()) / math.Abs(m.RawMax-m.RawMin), nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
