package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"plcortex/cmd/plcortex/ui"
	"plcortex/internal/calc"
	"plcortex/internal/history"
	"plcortex/internal/scaling"
)

var scaleFlags struct {
	preset  string
	rawMin  float64
	rawMax  float64
	engMin  float64
	engMax  float64
	units   string
	clamp   bool
	alarmLo float64
	alarmHi float64
	code    string
	raw     float64
	eng     float64
}

// scaleCmd solves an analog scaling configuration
var scaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Solve raw-to-engineering scaling for an analog signal",
	Long: `Builds the linear mapping between raw controller counts and
engineering units, and reports per-count resolution, derived alarm
setpoints, and a raw/engineering sample table.

Examples:
  plcortex scale --preset s7-420ma --eng-min 0 --eng-max 60 --units Hz
  plcortex scale --raw-min 3277 --raw-max 16383 --eng-min 0 --eng-max 300 --units PSI --clamp
  plcortex scale --preset s7-420ma --eng-min 0 --eng-max 60 --raw 12000
  plcortex scale --preset s7-420ma --eng-min 0 --eng-max 60 --code st`,
	RunE: runScale,
}

func init() {
	f := scaleCmd.Flags()
	f.StringVar(&scaleFlags.preset, "preset", "", "Signal preset (see 'plcortex scale presets')")
	f.Float64Var(&scaleFlags.rawMin, "raw-min", 0, "Raw counts at signal minimum")
	f.Float64Var(&scaleFlags.rawMax, "raw-max", 0, "Raw counts at signal maximum")
	f.Float64Var(&scaleFlags.engMin, "eng-min", 0, "Engineering value at signal minimum")
	f.Float64Var(&scaleFlags.engMax, "eng-max", 0, "Engineering value at signal maximum")
	f.StringVar(&scaleFlags.units, "units", "", "Engineering units label (PSI, Hz)")
	f.BoolVar(&scaleFlags.clamp, "clamp", false, "Clamp out-of-range signals to the endpoints")
	f.Float64Var(&scaleFlags.alarmLo, "alarm-low", 0, "Low alarm as fraction of span (default 0.05)")
	f.Float64Var(&scaleFlags.alarmHi, "alarm-high", 0, "High alarm as fraction of span (default 0.95)")
	f.StringVar(&scaleFlags.code, "code", "", "Emit a code sample: st or rockwell")
	f.Float64Var(&scaleFlags.raw, "raw", 0, "Convert this raw value to engineering units")
	f.Float64Var(&scaleFlags.eng, "eng", 0, "Convert this engineering value to raw counts")

	scaleCmd.AddCommand(scalePresetsCmd)
}

// scalePresetsCmd lists the built-in signal presets
var scalePresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List built-in signal presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		styles := ui.DefaultStyles()
		table := ui.NewSimpleTable("Signal presets", "Name", "Raw range", "Bits", "Description")
		for _, name := range calc.SignalPresets() {
			p := calc.PresetByName(name)
			table.AddRow(name,
				fmt.Sprintf("%.0f..%.0f", p.RawMin, p.RawMax),
				fmt.Sprintf("%d", p.Bits),
				p.Description)
		}
		fmt.Print(table.View(styles))
		return nil
	},
}

func runScale(cmd *cobra.Command, args []string) error {
	in := calc.AnalogInput{
		Preset:       scaleFlags.preset,
		RawMin:       scaleFlags.rawMin,
		RawMax:       scaleFlags.rawMax,
		EngMin:       scaleFlags.engMin,
		EngMax:       scaleFlags.engMax,
		Clamp:        scaleFlags.clamp,
		AlarmLowPct:  scaleFlags.alarmLo,
		AlarmHighPct: scaleFlags.alarmHi,
	}

	res, err := calc.Analog(in)
	if err != nil {
		return err
	}

	// Single-value conversions short-circuit the full report.
	if cmd.Flags().Changed("raw") {
		eng, err := res.Mapping.ToEng(scaleFlags.raw)
		if err != nil {
			return err
		}
		fmt.Printf("%.4f %s\n", eng, unitsOr(scaleFlags.units, "eng"))
		return nil
	}
	if cmd.Flags().Changed("eng") {
		raw, err := res.Mapping.ToRaw(scaleFlags.eng)
		if err != nil {
			return err
		}
		fmt.Printf("%.1f counts\n", raw)
		return nil
	}

	printAnalogResult(res, scaleFlags.units)

	if scaleFlags.code != "" {
		sample, err := res.Mapping.CodeSample(scaling.Platform(scaleFlags.code))
		if err != nil {
			return err
		}
		styles := ui.DefaultStyles()
		fmt.Println(styles.CodeBlock.Render(sample))
	}

	recordScaling(res, scaleFlags.units)
	return nil
}

// printAnalogResult renders the shared scaling report used by both the
// scale command and the sensor wizard.
func printAnalogResult(res calc.AnalogResult, units string) {
	styles := ui.DefaultStyles()
	u := unitsOr(units, "eng")

	table := ui.NewSimpleTable("Scaling", "Signal %", "Raw counts", "Engineering")
	for _, p := range res.Points {
		table.AddRow(
			fmt.Sprintf("%.0f%%", p.Percent),
			fmt.Sprintf("%.0f", p.Raw),
			fmt.Sprintf("%.4f %s", p.Eng, u),
		)
	}
	fmt.Print(table.View(styles))

	fmt.Printf("Mapping:    %.0f..%.0f counts -> %g..%g %s\n",
		res.Mapping.RawMin, res.Mapping.RawMax, res.Mapping.EngMin, res.Mapping.EngMax, u)
	fmt.Printf("Resolution: %.6f %s per count\n", res.Resolution, u)
	fmt.Printf("Clamping:   %v\n", res.Mapping.Clamp)
	fmt.Printf("Alarms:     low %.4f %s (%.0f counts), high %.4f %s (%.0f counts)\n",
		res.Alarms.LowEng, u, res.Alarms.LowRaw, res.Alarms.HighEng, u, res.Alarms.HighRaw)
}

func recordScaling(res calc.AnalogResult, units string) {
	hist, err := openHistory()
	if err != nil {
		logger.Debug("history store unavailable", zap.Error(err))
		return
	}
	defer hist.Close()

	summary := fmt.Sprintf("scaled %.0f..%.0f counts to %g..%g %s",
		res.Mapping.RawMin, res.Mapping.RawMax, res.Mapping.EngMin, res.Mapping.EngMax,
		unitsOr(units, "eng"))
	if err := hist.Record(history.KindScaling, summary, res.Mapping); err != nil {
		logger.Debug("history record failed", zap.Error(err))
	}
}

func unitsOr(units, fallback string) string {
	if units == "" {
		return fallback
	}
	return units
}
