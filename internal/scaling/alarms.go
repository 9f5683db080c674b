package scaling

import "fmt"

// AlarmThresholds are low/high alarm setpoints derived from a Mapping,
// expressed in both engineering units and raw counts so they can be entered
// directly into either the HMI or the controller compare instructions.
type AlarmThresholds struct {
	LowEng  float64
	HighEng float64
	LowRaw  float64
	HighRaw float64
}

// AlarmThresholds derives alarm setpoints at loPct/hiPct of the engineering
// span. Percentages are fractions of span measured from EngMin, so for a
// 0–60 Hz mapping loPct=0.05, hiPct=0.95 yields 3 Hz and 57 Hz. Requires
// loPct < hiPct and both within [0, 1].
func (m Mapping) AlarmThresholds(loPct, hiPct float64) (AlarmThresholds, error) {
	if err := m.Validate(); err != nil {
		return AlarmThresholds{}, err
	}
	if !isFinite(loPct) || !isFinite(hiPct) {
		return AlarmThresholds{}, ErrNonFinite
	}
	if loPct < 0 || hiPct > 1 || loPct >= hiPct {
		return AlarmThresholds{}, fmt.Errorf("scaling: alarm percentages [%v, %v] must satisfy 0 <= lo < hi <= 1", loPct, hiPct)
	}

	lowEng := m.EngMin + loPct*m.Span()
	highEng := m.EngMin + hiPct*m.Span()

	lowRaw, err := Scale(lowEng, m.EngMin, m.EngMax, m.RawMin, m.RawMax)
	if err != nil {
		return AlarmThresholds{}, err
	}
	highRaw, err := Scale(highEng, m.EngMin, m.EngMax, m.RawMin, m.RawMax)
	if err != nil {
		return AlarmThresholds{}, err
	}

	return AlarmThresholds{
		LowEng:  lowEng,
		HighEng: highEng,
		LowRaw:  lowRaw,
		HighRaw: highRaw,
	}, nil
}
