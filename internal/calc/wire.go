package calc

import (
	"fmt"

	"plcortex/internal/reference"
)

// Copper resistivity constant for voltage-drop estimates, ohm-cmil/ft.
const copperK = 12.9

// VoltageDropInput describes a feeder/branch voltage-drop check.
type VoltageDropInput struct {
	SystemVolts float64
	LoadAmps    float64

	// RunFeet is the one-way circuit length.
	RunFeet float64

	// WireSize is the conductor ("12", "1/0", "250").
	WireSize string

	// ThreePhase selects the sqrt(3) form instead of the two-way
	// single-phase form.
	ThreePhase bool
}

// VoltageDropResult is the computed drop.
type VoltageDropResult struct {
	DropVolts   float64
	DropPercent float64
}

// VoltageDrop computes the estimated voltage drop for a copper run:
// Vd = 2*K*I*L/CM single-phase, Vd = 1.732*K*I*L/CM three-phase.
func VoltageDrop(in VoltageDropInput, tables *reference.Tables) (VoltageDropResult, error) {
	if err := requirePositive("system volts", in.SystemVolts); err != nil {
		return VoltageDropResult{}, err
	}
	if err := requirePositive("load amps", in.LoadAmps); err != nil {
		return VoltageDropResult{}, err
	}
	if err := requirePositive("run length", in.RunFeet); err != nil {
		return VoltageDropResult{}, err
	}
	if tables == nil {
		return VoltageDropResult{}, badInput("reference tables required for conductor area lookup")
	}

	row, err := tables.AmpacityFor(in.WireSize)
	if err != nil {
		return VoltageDropResult{}, fmt.Errorf("conductor lookup: %w", err)
	}

	mult := 2.0
	if in.ThreePhase {
		mult = 1.732
	}
	drop := mult * copperK * in.LoadAmps * in.RunFeet / row.CircularMils

	return VoltageDropResult{
		DropVolts:   drop,
		DropPercent: drop / in.SystemVolts * 100,
	}, nil
}

// WireSizeInput describes a conductor selection problem.
type WireSizeInput struct {
	SystemVolts float64
	LoadAmps    float64
	RunFeet     float64

	// TempRating selects the NEC ampacity column (60, 75, 90).
	TempRating int

	// MaxDropPercent is the allowed voltage drop (NEC recommends 3 for
	// branch circuits).
	MaxDropPercent float64

	ThreePhase bool
}

// WireSizeResult is the selected conductor.
type WireSizeResult struct {
	Size        string
	AmpacityA   float64
	DropVolts   float64
	DropPercent float64

	// UpsizedForDrop is true when ampacity alone allowed a smaller
	// conductor but the drop limit pushed the size up.
	UpsizedForDrop bool
}

// WireSize picks the smallest conductor that satisfies both the ampacity
// column and the voltage-drop limit.
func WireSize(in WireSizeInput, tables *reference.Tables) (WireSizeResult, error) {
	if err := requirePositive("system volts", in.SystemVolts); err != nil {
		return WireSizeResult{}, err
	}
	if err := requirePositive("load amps", in.LoadAmps); err != nil {
		return WireSizeResult{}, err
	}
	if err := requirePositive("run length", in.RunFeet); err != nil {
		return WireSizeResult{}, err
	}
	if err := requirePositive("max drop percent", in.MaxDropPercent); err != nil {
		return WireSizeResult{}, err
	}
	if tables == nil {
		return WireSizeResult{}, badInput("reference tables required")
	}

	base, err := tables.MinSizeForCurrent(in.LoadAmps, in.TempRating)
	if err != nil {
		return WireSizeResult{}, err
	}

	// Walk up from the ampacity-selected size until the drop limit holds.
	size := base.Size
	upsized := false
	for {
		dropIn := VoltageDropInput{
			SystemVolts: in.SystemVolts,
			LoadAmps:    in.LoadAmps,
			RunFeet:     in.RunFeet,
			WireSize:    size,
			ThreePhase:  in.ThreePhase,
		}
		drop, err := VoltageDrop(dropIn, tables)
		if err != nil {
			return WireSizeResult{}, err
		}
		if drop.DropPercent <= in.MaxDropPercent {
			row, err := tables.AmpacityFor(size)
			if err != nil {
				return WireSizeResult{}, err
			}
			amp, err := row.Amps(in.TempRating)
			if err != nil {
				return WireSizeResult{}, err
			}
			return WireSizeResult{
				Size:           size,
				AmpacityA:      amp,
				DropVolts:      drop.DropVolts,
				DropPercent:    drop.DropPercent,
				UpsizedForDrop: upsized,
			}, nil
		}

		next, err := nextSizeUp(size, tables)
		if err != nil {
			return WireSizeResult{}, badInput("no conductor in table meets %.1f%% drop over %.0f ft", in.MaxDropPercent, in.RunFeet)
		}
		size = next
		upsized = true
	}
}

func nextSizeUp(size string, tables *reference.Tables) (string, error) {
	row, err := tables.AmpacityFor(size)
	if err != nil {
		return "", err
	}
	// The embedded table is ordered smallest first; next row up is the
	// first with a larger circular-mil area.
	best, err := tables.MinSizeForCurrent(row.Amps90C+0.001, 90)
	if err != nil {
		return "", err
	}
	if best.Size == size {
		return "", fmt.Errorf("reference: %q is the largest conductor in the table", size)
	}
	return best.Size, nil
}
