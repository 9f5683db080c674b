package calc

import (
	"fmt"

	"plcortex/internal/reference"
)

// MotorInput describes a motor sizing check.
type MotorInput struct {
	// LoadTorqueNm is the continuous torque demand at the motor shaft.
	LoadTorqueNm float64

	// SpeedRPM is the operating speed.
	SpeedRPM float64

	// ServiceFactor derates the selection margin (typical 1.15).
	ServiceFactor float64

	// Voltage and Phase select the NEC full-load current column.
	Voltage int
	Phase   int
}

// MotorResult is the motor sizing recommendation.
type MotorResult struct {
	// RequiredKW / RequiredHP at the load point, before service factor.
	RequiredKW float64
	RequiredHP float64

	// RecommendedHP is the next standard horsepower at or above the
	// service-factored requirement.
	RecommendedHP float64

	// FullLoadAmps is the NEC table current for the recommended motor.
	FullLoadAmps float64
}

// Standard NEMA horsepower ladder covered by the embedded FLC tables.
var standardHP = []float64{0.5, 0.75, 1, 1.5, 2, 3, 5, 7.5, 10, 15, 20, 25, 30, 40, 50, 60, 75, 100}

// Motor sizes a motor for a continuous torque/speed point and returns the
// NEC full-load current for the selection.
func Motor(in MotorInput, tables *reference.Tables) (MotorResult, error) {
	if err := requirePositive("load torque", in.LoadTorqueNm); err != nil {
		return MotorResult{}, err
	}
	if err := requirePositive("speed", in.SpeedRPM); err != nil {
		return MotorResult{}, err
	}
	sf := in.ServiceFactor
	if sf == 0 {
		sf = 1.15
	}
	if err := requirePositive("service factor", sf); err != nil {
		return MotorResult{}, err
	}
	if sf < 1 {
		return MotorResult{}, badInput("service factor %.2f must be >= 1", sf)
	}
	if tables == nil {
		return MotorResult{}, badInput("reference tables required for FLC lookup")
	}

	// P(kW) = T(Nm) * N(rpm) / 9550
	kw := in.LoadTorqueNm * in.SpeedRPM / 9550
	hp := kw / 0.746

	needed := hp * sf
	var recommended float64
	for _, std := range standardHP {
		if std >= needed {
			recommended = std
			break
		}
	}
	if recommended == 0 {
		return MotorResult{}, badInput("load requires %.1f HP, above the %v HP table ceiling", needed, standardHP[len(standardHP)-1])
	}

	flc, err := tables.MotorFLC(recommended, in.Voltage, in.Phase)
	if err != nil {
		return MotorResult{}, fmt.Errorf("FLC lookup for %.2g HP: %w", recommended, err)
	}

	return MotorResult{
		RequiredKW:    kw,
		RequiredHP:    hp,
		RecommendedHP: recommended,
		FullLoadAmps:  flc,
	}, nil
}
