package calc

import (
	"fmt"
	"sort"

	"plcortex/internal/scaling"
)

// SignalPreset carries the typical raw count range a controller family
// reports for a standard analog signal.
type SignalPreset struct {
	Description string
	RawMin      float64
	RawMax      float64
	Bits        int
}

// Raw count presets for common input cards. Explicit raw endpoints on
// AnalogInput override these.
var signalPresets = map[string]SignalPreset{
	"s7-420ma":       {Description: "Siemens S7 4-20mA (nominal range)", RawMin: 0, RawMax: 27648, Bits: 15},
	"s7-010v":        {Description: "Siemens S7 0-10V (nominal range)", RawMin: 0, RawMax: 27648, Bits: 15},
	"logix-420ma":    {Description: "Logix 4-20mA (raw/proportional)", RawMin: 3277, RawMax: 16383, Bits: 14},
	"micro800-420ma": {Description: "Micro800 4-20mA", RawMin: 13107, RawMax: 65535, Bits: 16},
	"generic-16bit":  {Description: "Generic 16-bit unipolar", RawMin: 0, RawMax: 65535, Bits: 16},
}

// SignalPresets lists the known preset names, sorted.
func SignalPresets() []string {
	names := make([]string, 0, len(signalPresets))
	for n := range signalPresets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PresetByName returns the named preset, or a zero value when unknown.
func PresetByName(name string) SignalPreset {
	return signalPresets[name]
}

// AnalogInput describes a PLC analog scaling problem.
type AnalogInput struct {
	// Preset names a signal preset; empty requires explicit raw
	// endpoints.
	Preset string

	RawMin, RawMax float64
	EngMin, EngMax float64
	Clamp          bool

	// Alarm percentages of engineering span; zero values default to
	// 0.05/0.95.
	AlarmLowPct  float64
	AlarmHighPct float64
}

// AnalogResult is the solved scaling configuration.
type AnalogResult struct {
	Mapping    scaling.Mapping
	Resolution float64
	Alarms     scaling.AlarmThresholds

	// Points samples the mapping at 0/25/50/75/100% for the CLI table.
	Points []AnalogPoint
}

// AnalogPoint is one row of the raw-to-engineering sample table.
type AnalogPoint struct {
	Percent float64
	Raw     float64
	Eng     float64
}

// Analog builds and solves an analog scaling configuration: the mapping,
// its per-count resolution, derived alarm setpoints, and a sample table.
func Analog(in AnalogInput) (AnalogResult, error) {
	rawMin, rawMax := in.RawMin, in.RawMax
	if in.Preset != "" {
		p, ok := signalPresets[in.Preset]
		if !ok {
			return AnalogResult{}, badInput("unknown signal preset %q (known: %v)", in.Preset, SignalPresets())
		}
		// Explicit endpoints win over the preset.
		if rawMin == 0 && rawMax == 0 {
			rawMin, rawMax = p.RawMin, p.RawMax
		}
	}

	m := scaling.Mapping{
		RawMin: rawMin,
		RawMax: rawMax,
		EngMin: in.EngMin,
		EngMax: in.EngMax,
		Clamp:  in.Clamp,
	}
	if err := m.Validate(); err != nil {
		return AnalogResult{}, fmt.Errorf("%w: %v", ErrBadInput, err)
	}

	res, err := m.Resolution()
	if err != nil {
		return AnalogResult{}, err
	}

	loPct, hiPct := in.AlarmLowPct, in.AlarmHighPct
	if loPct == 0 && hiPct == 0 {
		loPct, hiPct = 0.05, 0.95
	}
	alarms, err := m.AlarmThresholds(loPct, hiPct)
	if err != nil {
		return AnalogResult{}, err
	}

	points := make([]AnalogPoint, 0, 5)
	for _, pct := range []float64{0, 0.25, 0.5, 0.75, 1} {
		raw := m.RawMin + pct*(m.RawMax-m.RawMin)
		eng, err := m.ToEng(raw)
		if err != nil {
			return AnalogResult{}, err
		}
		points = append(points, AnalogPoint{Percent: pct * 100, Raw: raw, Eng: eng})
	}

	return AnalogResult{
		Mapping:    m,
		Resolution: res,
		Alarms:     alarms,
		Points:     points,
	}, nil
}
