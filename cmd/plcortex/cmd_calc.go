package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"plcortex/internal/calc"
	"plcortex/internal/history"
)

// calcCmd groups the engineering calculators
var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Engineering calculators (ohm, thermal, motor, wire, encoder, psu)",
}

func init() {
	calcCmd.AddCommand(calcOhmCmd)
	calcCmd.AddCommand(calcThermalCmd)
	calcCmd.AddCommand(calcMotorCmd)
	calcCmd.AddCommand(calcVoltDropCmd)
	calcCmd.AddCommand(calcWireCmd)
	calcCmd.AddCommand(calcEncoderCmd)
	calcCmd.AddCommand(calcPSUCmd)
}

// recordCalc writes a calculator run to the activity store. History is
// convenience; failures only show up under --verbose.
func recordCalc(summary string, payload interface{}) {
	hist, err := openHistory()
	if err != nil {
		logger.Debug("history store unavailable", zap.Error(err))
		return
	}
	defer hist.Close()
	if err := hist.Record(history.KindCalculator, summary, payload); err != nil {
		logger.Debug("history record failed", zap.Error(err))
	}
}

var ohmFlags struct {
	volts float64
	amps  float64
	ohms  float64
	watts float64
}

var calcOhmCmd = &cobra.Command{
	Use:   "ohm",
	Short: "Solve the Ohm's law / power wheel from two known values",
	Long: `Solves V, I, R, and P from exactly two known quantities.

Examples:
  plcortex calc ohm --volts 24 --ohms 120
  plcortex calc ohm --watts 1500 --volts 480`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := calc.Ohm(calc.OhmInput{
			Volts: ohmFlags.volts,
			Amps:  ohmFlags.amps,
			Ohms:  ohmFlags.ohms,
			Watts: ohmFlags.watts,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Volts: %.4g V\n", res.Volts)
		fmt.Printf("Amps:  %.4g A\n", res.Amps)
		fmt.Printf("Ohms:  %.4g Ω\n", res.Ohms)
		fmt.Printf("Watts: %.4g W\n", res.Watts)
		recordCalc(fmt.Sprintf("ohm wheel: %.4gV %.4gA %.4gΩ %.4gW",
			res.Volts, res.Amps, res.Ohms, res.Watts), res)
		return nil
	},
}

var thermalFlags struct {
	watts   float64
	areaM2  float64
	ambient float64
	maxC    float64
}

var calcThermalCmd = &cobra.Command{
	Use:   "thermal",
	Short: "Size enclosure cooling (passive, fan, or air conditioner)",
	Long: `Assesses enclosure heat: what the skin sheds passively, the fan
airflow needed for the remainder, and the A/C rating if ambient air
cannot cool the enclosure.

Example:
  plcortex calc thermal --watts 450 --area 2.5 --ambient 35 --max-internal 45`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := calc.Thermal(calc.ThermalInput{
			InternalWatts: thermalFlags.watts,
			SurfaceAreaM2: thermalFlags.areaM2,
			AmbientC:      thermalFlags.ambient,
			MaxInternalC:  thermalFlags.maxC,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Passive dissipation: %.1f W\n", res.PassiveWatts)
		if !res.NeedsCooling {
			fmt.Println("Passive cooling is sufficient.")
		} else {
			fmt.Printf("Heat beyond passive:  %.1f W\n", res.NetWatts)
			if res.FanCFM > 0 {
				fmt.Printf("Filtered fan:         %.0f CFM\n", res.FanCFM)
			}
			fmt.Printf("Air conditioner:      %.0f BTU/hr\n", res.ACBtuPerHr)
		}
		recordCalc(fmt.Sprintf("thermal: %.0fW in %.1fm² enclosure", thermalFlags.watts, thermalFlags.areaM2), res)
		return nil
	},
}

var motorFlags struct {
	torque  float64
	speed   float64
	sf      float64
	voltage int
	phase   int
}

var calcMotorCmd = &cobra.Command{
	Use:   "motor",
	Short: "Size a motor from torque and speed",
	Long: `Computes required power from shaft torque and speed, picks the next
standard horsepower with service factor, and reports the NEC full-load
current for that motor.

Example:
  plcortex calc motor --torque 85 --speed 1750 --voltage 460 --phase 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := loadTables()
		if err != nil {
			return err
		}
		res, err := calc.Motor(calc.MotorInput{
			LoadTorqueNm:  motorFlags.torque,
			SpeedRPM:      motorFlags.speed,
			ServiceFactor: motorFlags.sf,
			Voltage:       motorFlags.voltage,
			Phase:         motorFlags.phase,
		}, tables)
		if err != nil {
			return err
		}
		fmt.Printf("Required power:  %.2f kW (%.2f HP)\n", res.RequiredKW, res.RequiredHP)
		fmt.Printf("Recommended:     %g HP\n", res.RecommendedHP)
		fmt.Printf("Full-load amps:  %.1f A at %dV %d-phase\n",
			res.FullLoadAmps, motorFlags.voltage, motorFlags.phase)
		recordCalc(fmt.Sprintf("motor: %.0f Nm at %.0f RPM -> %g HP",
			motorFlags.torque, motorFlags.speed, res.RecommendedHP), res)
		return nil
	},
}

var voltDropFlags struct {
	volts      float64
	amps       float64
	feet       float64
	size       string
	threePhase bool
}

var calcVoltDropCmd = &cobra.Command{
	Use:   "voltdrop",
	Short: "Estimate voltage drop for a copper run",
	Long: `Estimates voltage drop for a copper conductor run.

Example:
  plcortex calc voltdrop --volts 120 --amps 14 --feet 175 --size 12`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := loadTables()
		if err != nil {
			return err
		}
		res, err := calc.VoltageDrop(calc.VoltageDropInput{
			SystemVolts: voltDropFlags.volts,
			LoadAmps:    voltDropFlags.amps,
			RunFeet:     voltDropFlags.feet,
			WireSize:    voltDropFlags.size,
			ThreePhase:  voltDropFlags.threePhase,
		}, tables)
		if err != nil {
			return err
		}
		fmt.Printf("Voltage drop: %.2f V (%.2f%%)\n", res.DropVolts, res.DropPercent)
		if res.DropPercent > 3 {
			fmt.Println("Exceeds the 3% branch-circuit recommendation.")
		}
		recordCalc(fmt.Sprintf("voltdrop: #%s, %.0fA over %.0fft -> %.2f%%",
			voltDropFlags.size, voltDropFlags.amps, voltDropFlags.feet, res.DropPercent), res)
		return nil
	},
}

var wireFlags struct {
	volts      float64
	amps       float64
	feet       float64
	temp       int
	maxDrop    float64
	threePhase bool
}

var calcWireCmd = &cobra.Command{
	Use:   "wire",
	Short: "Pick a wire size for ampacity and voltage drop",
	Long: `Selects the smallest copper conductor that carries the load within
its ampacity column and keeps voltage drop under the limit.

Example:
  plcortex calc wire --volts 480 --amps 28 --feet 250 --temp 75 --three-phase`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := loadTables()
		if err != nil {
			return err
		}
		res, err := calc.WireSize(calc.WireSizeInput{
			SystemVolts:    wireFlags.volts,
			LoadAmps:       wireFlags.amps,
			RunFeet:        wireFlags.feet,
			TempRating:     wireFlags.temp,
			MaxDropPercent: wireFlags.maxDrop,
			ThreePhase:     wireFlags.threePhase,
		}, tables)
		if err != nil {
			return err
		}
		fmt.Printf("Conductor:    #%s copper (%d°C column)\n", res.Size, wireFlags.temp)
		fmt.Printf("Ampacity:     %.0f A\n", res.AmpacityA)
		fmt.Printf("Voltage drop: %.2f V (%.2f%%)\n", res.DropVolts, res.DropPercent)
		if res.UpsizedForDrop {
			fmt.Println("Upsized beyond ampacity to meet the voltage-drop limit.")
		}
		recordCalc(fmt.Sprintf("wire: %.0fA over %.0fft -> #%s",
			wireFlags.amps, wireFlags.feet, res.Size), res)
		return nil
	},
}

var encoderFlags struct {
	ppr    float64
	quad   int
	gear   float64
	upr    float64
	travel float64
}

var calcEncoderCmd = &cobra.Command{
	Use:   "encoder",
	Short: "Derive encoder counts-per-unit scaling",
	Long: `Derives counts-per-unit scaling for an incremental encoder, and
optionally the position mapping over a travel range.

Example:
  plcortex calc encoder --ppr 1024 --quad 4 --units-per-rev 5 --travel 500`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := calc.Encoder(calc.EncoderInput{
			PPR:         encoderFlags.ppr,
			Quadrature:  encoderFlags.quad,
			GearRatio:   encoderFlags.gear,
			UnitsPerRev: encoderFlags.upr,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Counts per unit: %.4f\n", res.CountsPerUnit)
		fmt.Printf("Units per count: %.6f\n", res.UnitsPerCount)
		fmt.Printf("Counts per rev:  %.0f\n", res.CountsPerRev)
		if encoderFlags.travel > 0 {
			m, err := res.PositionMapping(encoderFlags.travel)
			if err != nil {
				return err
			}
			fmt.Printf("Position map:    0..%.0f counts -> 0..%g units\n", m.RawMax, m.EngMax)
		}
		recordCalc(fmt.Sprintf("encoder: %g PPR x%d -> %.4f counts/unit",
			encoderFlags.ppr, encoderFlags.quad, res.CountsPerUnit), res)
		return nil
	},
}

var psuFlags struct {
	loads    []string
	headroom float64
}

var calcPSUCmd = &cobra.Command{
	Use:   "psu",
	Short: "Size a 24V DC power supply",
	Long: `Sums DC loads with inrush and headroom and recommends a standard
supply rating. Loads are name:amps, optionally :inrush and :quantity.

Example:
  plcortex calc psu --load plc:0.5 --load valves:0.3:3:8 --load hmi:1.2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := calc.PSUInput{HeadroomPercent: psuFlags.headroom}
		for _, spec := range psuFlags.loads {
			load, err := parsePSULoad(spec)
			if err != nil {
				return err
			}
			in.Loads = append(in.Loads, load)
		}
		res, err := calc.PowerSupply(in)
		if err != nil {
			return err
		}
		fmt.Printf("Steady load:  %.2f A\n", res.SteadyAmps)
		fmt.Printf("Inrush peak:  %.2f A\n", res.PeakAmps)
		fmt.Printf("Required:     %.2f A\n", res.RequiredAmps)
		fmt.Printf("Recommended:  %g A supply\n", res.RecommendedAmps)
		recordCalc(fmt.Sprintf("psu: %.2fA steady -> %gA supply",
			res.SteadyAmps, res.RecommendedAmps), res)
		return nil
	},
}

// parsePSULoad parses "name:amps[:inrush[:quantity]]".
func parsePSULoad(spec string) (calc.PSULoad, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 4 {
		return calc.PSULoad{}, fmt.Errorf("load %q: want name:amps[:inrush[:quantity]]", spec)
	}

	load := calc.PSULoad{Name: parts[0], Quantity: 1}

	amps, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return calc.PSULoad{}, fmt.Errorf("load %q: bad amps %q", spec, parts[1])
	}
	load.Amps = amps

	if len(parts) >= 3 {
		inrush, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return calc.PSULoad{}, fmt.Errorf("load %q: bad inrush %q", spec, parts[2])
		}
		load.InrushMultiplier = inrush
	}
	if len(parts) == 4 {
		qty, err := strconv.Atoi(parts[3])
		if err != nil {
			return calc.PSULoad{}, fmt.Errorf("load %q: bad quantity %q", spec, parts[3])
		}
		load.Quantity = qty
	}
	return load, nil
}

func init() {
	calcOhmCmd.Flags().Float64Var(&ohmFlags.volts, "volts", 0, "Voltage (V)")
	calcOhmCmd.Flags().Float64Var(&ohmFlags.amps, "amps", 0, "Current (A)")
	calcOhmCmd.Flags().Float64Var(&ohmFlags.ohms, "ohms", 0, "Resistance (Ω)")
	calcOhmCmd.Flags().Float64Var(&ohmFlags.watts, "watts", 0, "Power (W)")

	calcThermalCmd.Flags().Float64Var(&thermalFlags.watts, "watts", 0, "Internal heat load (W)")
	calcThermalCmd.Flags().Float64Var(&thermalFlags.areaM2, "area", 0, "Effective enclosure surface area (m²)")
	calcThermalCmd.Flags().Float64Var(&thermalFlags.ambient, "ambient", 35, "Ambient temperature (°C)")
	calcThermalCmd.Flags().Float64Var(&thermalFlags.maxC, "max-internal", 45, "Maximum internal temperature (°C)")

	calcMotorCmd.Flags().Float64Var(&motorFlags.torque, "torque", 0, "Load torque (Nm)")
	calcMotorCmd.Flags().Float64Var(&motorFlags.speed, "speed", 0, "Operating speed (RPM)")
	calcMotorCmd.Flags().Float64Var(&motorFlags.sf, "sf", 0, "Service factor (default 1.15)")
	calcMotorCmd.Flags().IntVar(&motorFlags.voltage, "voltage", 460, "Motor voltage")
	calcMotorCmd.Flags().IntVar(&motorFlags.phase, "phase", 3, "Phase (1 or 3)")

	calcVoltDropCmd.Flags().Float64Var(&voltDropFlags.volts, "volts", 0, "System voltage")
	calcVoltDropCmd.Flags().Float64Var(&voltDropFlags.amps, "amps", 0, "Load current (A)")
	calcVoltDropCmd.Flags().Float64Var(&voltDropFlags.feet, "feet", 0, "One-way run length (ft)")
	calcVoltDropCmd.Flags().StringVar(&voltDropFlags.size, "size", "", "Conductor size (12, 1/0, 250)")
	calcVoltDropCmd.Flags().BoolVar(&voltDropFlags.threePhase, "three-phase", false, "Three-phase circuit")

	calcWireCmd.Flags().Float64Var(&wireFlags.volts, "volts", 0, "System voltage")
	calcWireCmd.Flags().Float64Var(&wireFlags.amps, "amps", 0, "Load current (A)")
	calcWireCmd.Flags().Float64Var(&wireFlags.feet, "feet", 0, "One-way run length (ft)")
	calcWireCmd.Flags().IntVar(&wireFlags.temp, "temp", 75, "Insulation temperature rating (60, 75, 90)")
	calcWireCmd.Flags().Float64Var(&wireFlags.maxDrop, "max-drop", 3, "Maximum voltage drop (%)")
	calcWireCmd.Flags().BoolVar(&wireFlags.threePhase, "three-phase", false, "Three-phase circuit")

	calcEncoderCmd.Flags().Float64Var(&encoderFlags.ppr, "ppr", 0, "Encoder pulses per revolution")
	calcEncoderCmd.Flags().IntVar(&encoderFlags.quad, "quad", 4, "Quadrature multiplier (1, 2, or 4)")
	calcEncoderCmd.Flags().Float64Var(&encoderFlags.gear, "gear", 1, "Encoder revs per load rev")
	calcEncoderCmd.Flags().Float64Var(&encoderFlags.upr, "units-per-rev", 0, "Load travel per revolution")
	calcEncoderCmd.Flags().Float64Var(&encoderFlags.travel, "travel", 0, "Total travel for the position mapping")

	calcPSUCmd.Flags().StringArrayVar(&psuFlags.loads, "load", nil, "Load as name:amps[:inrush[:quantity]] (repeatable)")
	calcPSUCmd.Flags().Float64Var(&psuFlags.headroom, "headroom", 0, "Margin over steady load (%, default 20)")
}
