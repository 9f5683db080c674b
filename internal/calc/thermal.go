package calc

// ThermalInput describes an enclosure heat-load problem.
type ThermalInput struct {
	// InternalWatts is the total heat dissipated inside the enclosure
	// (drives, supplies, PLC).
	InternalWatts float64

	// SurfaceAreaM2 is the effective enclosure surface area for passive
	// dissipation (exclude surfaces against walls or other cabinets).
	SurfaceAreaM2 float64

	// AmbientC and MaxInternalC bound the allowed temperature rise.
	AmbientC     float64
	MaxInternalC float64
}

// ThermalResult is the enclosure cooling assessment.
type ThermalResult struct {
	// PassiveWatts is what the enclosure sheds through its skin at the
	// allowed temperature differential.
	PassiveWatts float64

	// NetWatts is the heat the skin cannot shed; <= 0 means passive
	// cooling suffices.
	NetWatts float64

	// FanCFM is the filtered-fan airflow that removes NetWatts at the
	// allowed rise (only valid when ambient is below the internal limit).
	FanCFM float64

	// ACBtuPerHr sizes a closed-loop air conditioner for the full
	// internal load (used when ambient air cannot cool the enclosure).
	ACBtuPerHr float64

	NeedsCooling bool
}

// Painted-steel enclosure surface dissipation, W per m^2 per degC rise.
const surfaceCoefficient = 5.5

// Thermal computes an enclosure heat-load budget and a cooling suggestion.
func Thermal(in ThermalInput) (ThermalResult, error) {
	if err := requirePositive("internal watts", in.InternalWatts); err != nil {
		return ThermalResult{}, err
	}
	if err := requirePositive("surface area", in.SurfaceAreaM2); err != nil {
		return ThermalResult{}, err
	}
	if !finite(in.AmbientC) || !finite(in.MaxInternalC) {
		return ThermalResult{}, badInput("temperatures must be finite")
	}
	deltaT := in.MaxInternalC - in.AmbientC
	if deltaT <= 0 {
		return ThermalResult{}, badInput("max internal temperature %.1fC must exceed ambient %.1fC", in.MaxInternalC, in.AmbientC)
	}

	passive := surfaceCoefficient * in.SurfaceAreaM2 * deltaT
	net := in.InternalWatts - passive

	r := ThermalResult{
		PassiveWatts: passive,
		NetWatts:     net,
		NeedsCooling: net > 0,
	}
	if net > 0 {
		// 3.16 CFM removes ~1 W per degF of rise.
		deltaF := deltaT * 9 / 5
		r.FanCFM = 3.16 * net / deltaF
		r.ACBtuPerHr = in.InternalWatts * 3.412
	}
	return r, nil
}
