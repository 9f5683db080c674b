package calc

import "plcortex/internal/scaling"

// EncoderInput describes a rotary-encoder motion-scaling problem.
type EncoderInput struct {
	// PPR is pulses per revolution of the encoder itself.
	PPR float64

	// Quadrature is the edge-count multiplier (1, 2, or 4).
	Quadrature int

	// GearRatio is encoder revolutions per load revolution (>1 when the
	// encoder spins faster than the load).
	GearRatio float64

	// UnitsPerRev is load travel per load revolution (e.g. screw lead in
	// mm, or 360 for degrees).
	UnitsPerRev float64
}

// EncoderResult is the derived motion scaling.
type EncoderResult struct {
	// CountsPerUnit is controller counts per engineering unit of travel.
	CountsPerUnit float64

	// UnitsPerCount is the position resolution (travel represented by
	// one count).
	UnitsPerCount float64

	// CountsPerRev is counts per load revolution.
	CountsPerRev float64
}

// Encoder derives counts-per-unit scaling for an incremental encoder.
func Encoder(in EncoderInput) (EncoderResult, error) {
	if err := requirePositive("PPR", in.PPR); err != nil {
		return EncoderResult{}, err
	}
	switch in.Quadrature {
	case 1, 2, 4:
	default:
		return EncoderResult{}, badInput("quadrature multiplier must be 1, 2, or 4, got %d", in.Quadrature)
	}
	if err := requirePositive("gear ratio", in.GearRatio); err != nil {
		return EncoderResult{}, err
	}
	if err := requirePositive("units per rev", in.UnitsPerRev); err != nil {
		return EncoderResult{}, err
	}

	countsPerRev := in.PPR * float64(in.Quadrature) * in.GearRatio
	cpu := countsPerRev / in.UnitsPerRev

	return EncoderResult{
		CountsPerUnit: cpu,
		UnitsPerCount: 1 / cpu,
		CountsPerRev:  countsPerRev,
	}, nil
}

// PositionMapping builds the affine count->units mapping for a travel span,
// so encoder positions flow through the same range mapper as analog signals.
func (r EncoderResult) PositionMapping(travelUnits float64) (scaling.Mapping, error) {
	if err := requirePositive("travel", travelUnits); err != nil {
		return scaling.Mapping{}, err
	}
	m := scaling.Mapping{
		RawMin: 0,
		RawMax: r.CountsPerUnit * travelUnits,
		EngMin: 0,
		EngMax: travelUnits,
	}
	if err := m.Validate(); err != nil {
		return scaling.Mapping{}, err
	}
	return m, nil
}
