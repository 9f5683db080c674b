package calc

import "math"

// OhmInput carries any two known electrical quantities; the rest must be
// zero. Negative values are rejected.
type OhmInput struct {
	Volts float64
	Amps  float64
	Ohms  float64
	Watts float64
}

// OhmResult is the fully solved set.
type OhmResult struct {
	Volts float64
	Amps  float64
	Ohms  float64
	Watts float64
}

// Ohm solves the Ohm's law / power wheel from exactly two known quantities.
func Ohm(in OhmInput) (OhmResult, error) {
	known := 0
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"volts", in.Volts}, {"amps", in.Amps}, {"ohms", in.Ohms}, {"watts", in.Watts},
	} {
		if !finite(p.v) {
			return OhmResult{}, badInput("%s must be finite, got %v", p.name, p.v)
		}
		if p.v < 0 {
			return OhmResult{}, badInput("%s must not be negative, got %v", p.name, p.v)
		}
		if p.v > 0 {
			known++
		}
	}
	if known != 2 {
		return OhmResult{}, badInput("exactly two quantities must be provided, got %d", known)
	}

	var r OhmResult
	switch {
	case in.Volts > 0 && in.Amps > 0:
		r = OhmResult{Volts: in.Volts, Amps: in.Amps, Ohms: in.Volts / in.Amps, Watts: in.Volts * in.Amps}
	case in.Volts > 0 && in.Ohms > 0:
		i := in.Volts / in.Ohms
		r = OhmResult{Volts: in.Volts, Amps: i, Ohms: in.Ohms, Watts: in.Volts * i}
	case in.Volts > 0 && in.Watts > 0:
		i := in.Watts / in.Volts
		r = OhmResult{Volts: in.Volts, Amps: i, Ohms: in.Volts / i, Watts: in.Watts}
	case in.Amps > 0 && in.Ohms > 0:
		v := in.Amps * in.Ohms
		r = OhmResult{Volts: v, Amps: in.Amps, Ohms: in.Ohms, Watts: v * in.Amps}
	case in.Amps > 0 && in.Watts > 0:
		v := in.Watts / in.Amps
		r = OhmResult{Volts: v, Amps: in.Amps, Ohms: v / in.Amps, Watts: in.Watts}
	case in.Ohms > 0 && in.Watts > 0:
		i := math.Sqrt(in.Watts / in.Ohms)
		r = OhmResult{Volts: i * in.Ohms, Amps: i, Ohms: in.Ohms, Watts: in.Watts}
	}
	return r, nil
}
