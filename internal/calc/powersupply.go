package calc

// PSULoad is one DC load line item.
type PSULoad struct {
	Name string

	// Amps is the steady-state draw.
	Amps float64

	// InrushMultiplier scales Amps at power-on (1 when unspecified).
	InrushMultiplier float64

	// Quantity of identical devices.
	Quantity int
}

// PSUInput describes a DC power-supply sizing problem.
type PSUInput struct {
	Loads []PSULoad

	// HeadroomPercent is added margin over the steady total (default 20).
	HeadroomPercent float64
}

// PSUResult is the supply recommendation.
type PSUResult struct {
	SteadyAmps      float64
	PeakAmps        float64
	RequiredAmps    float64
	RecommendedAmps float64
}

// Common 24V DC supply ratings in amperes.
var standardSupplyAmps = []float64{1.3, 2.5, 3.8, 5, 10, 20, 40}

// PowerSupply sums DC loads with inrush and headroom and recommends a
// standard supply rating. The supply must cover the larger of the
// headroom-adjusted steady load and the worst-case inrush peak.
func PowerSupply(in PSUInput) (PSUResult, error) {
	if len(in.Loads) == 0 {
		return PSUResult{}, badInput("at least one load required")
	}
	headroom := in.HeadroomPercent
	if headroom == 0 {
		headroom = 20
	}
	if !finite(headroom) || headroom < 0 {
		return PSUResult{}, badInput("headroom percent must be >= 0, got %v", headroom)
	}

	var steady, peak float64
	for i, l := range in.Loads {
		if err := requirePositive("load amps", l.Amps); err != nil {
			return PSUResult{}, badInput("load %d (%s): %v", i, l.Name, err)
		}
		qty := l.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			return PSUResult{}, badInput("load %d (%s): quantity must be positive", i, l.Name)
		}
		inrush := l.InrushMultiplier
		if inrush == 0 {
			inrush = 1
		}
		if !finite(inrush) || inrush < 1 {
			return PSUResult{}, badInput("load %d (%s): inrush multiplier must be >= 1", i, l.Name)
		}

		steady += l.Amps * float64(qty)
		peak += l.Amps * inrush * float64(qty)
	}

	required := steady * (1 + headroom/100)
	if peak > required {
		required = peak
	}

	var recommended float64
	for _, std := range standardSupplyAmps {
		if std >= required {
			recommended = std
			break
		}
	}
	if recommended == 0 {
		return PSUResult{}, badInput("required %.1f A exceeds the %.0f A supply ceiling; split the load", required, standardSupplyAmps[len(standardSupplyAmps)-1])
	}

	return PSUResult{
		SteadyAmps:      steady,
		PeakAmps:        peak,
		RequiredAmps:    required,
		RecommendedAmps: recommended,
	}, nil
}
