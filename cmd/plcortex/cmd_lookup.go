package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"plcortex/cmd/plcortex/ui"
	"plcortex/internal/history"
	"plcortex/internal/reference"
)

// lookupCmd groups the embedded reference tables
var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Reference tables (ampacity, motor FLC, fault codes, thermocouples, terminals)",
}

func init() {
	lookupCmd.AddCommand(lookupAmpacityCmd)
	lookupCmd.AddCommand(lookupFLCCmd)
	lookupCmd.AddCommand(lookupFaultCmd)
	lookupCmd.AddCommand(lookupThermocoupleCmd)
	lookupCmd.AddCommand(lookupTerminalsCmd)
}

var ampacityTemp int

var lookupAmpacityCmd = &cobra.Command{
	Use:   "ampacity [size]",
	Short: "NEC 310.16 copper ampacity",
	Long: `Shows the NEC 310.16 copper ampacity for one conductor size, or for
a current with --amps the smallest size that carries it.

Examples:
  plcortex lookup ampacity 12
  plcortex lookup ampacity --amps 42 --temp 75`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := loadTables()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("amps") {
			amps, _ := cmd.Flags().GetFloat64("amps")
			row, err := tables.MinSizeForCurrent(amps, ampacityTemp)
			if err != nil {
				return err
			}
			rated, err := row.Amps(ampacityTemp)
			if err != nil {
				return err
			}
			fmt.Printf("#%s copper carries %.0f A at %d°C (load %.1f A)\n",
				row.Size, rated, ampacityTemp, amps)
			return nil
		}

		if len(args) == 1 {
			row, err := tables.AmpacityFor(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("#%s copper, %.0f circular mils\n", row.Size, row.CircularMils)
			fmt.Printf("  60°C: %.0f A\n", row.Amps60C)
			fmt.Printf("  75°C: %.0f A\n", row.Amps75C)
			fmt.Printf("  90°C: %.0f A\n", row.Amps90C)
			return nil
		}

		return fmt.Errorf("give a conductor size or --amps")
	},
}

var flcFlags struct {
	hp      float64
	voltage int
	phase   int
}

var lookupFLCCmd = &cobra.Command{
	Use:   "flc",
	Short: "NEC motor full-load current",
	Long: `Looks up NEC 430.250 (three-phase) or 430.248 (single-phase)
full-load current.

Example:
  plcortex lookup flc --hp 15 --voltage 460 --phase 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := loadTables()
		if err != nil {
			return err
		}
		amps, err := tables.MotorFLC(flcFlags.hp, flcFlags.voltage, flcFlags.phase)
		if err != nil {
			return err
		}
		fmt.Printf("%g HP at %dV %d-phase: %.1f A\n",
			flcFlags.hp, flcFlags.voltage, flcFlags.phase, amps)
		return nil
	},
}

var lookupFaultCmd = &cobra.Command{
	Use:   "fault [family] [code]",
	Short: "Drive fault codes",
	Long: `With no arguments lists the known drive families. With a family
lists its fault codes; with a family and code shows causes and checks.

Examples:
  plcortex lookup fault
  plcortex lookup fault powerflex-525
  plcortex lookup fault powerflex-525 F004`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := loadTables()
		if err != nil {
			return err
		}
		styles := ui.DefaultStyles()

		switch len(args) {
		case 0:
			fmt.Println("Known drive families:")
			for _, f := range tables.Families() {
				fmt.Printf("  %s\n", f)
			}
			return nil

		case 1:
			faults := tables.FaultsForFamily(args[0])
			if len(faults) == 0 {
				return fmt.Errorf("no fault codes for family %q (known: %v)", args[0], tables.Families())
			}
			table := ui.NewSimpleTable(args[0], "Code", "Name", "Description")
			for _, f := range faults {
				table.AddRow(f.Code, f.Name, f.Description)
			}
			fmt.Print(table.View(styles))
			return nil

		default:
			f, err := tables.Fault(args[0], args[1])
			if err != nil {
				return err
			}
			printFault(styles, f)
			recordLookup(fmt.Sprintf("looked up %s %s", f.Family, f.Code), f)
			return nil
		}
	},
}

func printFault(styles ui.Styles, f reference.FaultCode) {
	fmt.Println(styles.Title.Render(fmt.Sprintf("%s %s: %s", f.Family, f.Code, f.Name)))
	fmt.Println(f.Description)
	if len(f.Causes) > 0 {
		fmt.Println(styles.Bold.Render("Causes:"))
		for _, c := range f.Causes {
			fmt.Printf("  - %s\n", c)
		}
	}
	if len(f.Checks) > 0 {
		fmt.Println(styles.Bold.Render("Checks:"))
		for _, c := range f.Checks {
			fmt.Printf("  - %s\n", c)
		}
	}
}

var lookupThermocoupleCmd = &cobra.Command{
	Use:   "thermocouple [type]",
	Short: "Thermocouple types, ranges, and wire colors",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := loadTables()
		if err != nil {
			return err
		}
		styles := ui.DefaultStyles()

		if len(args) == 1 {
			tc, err := tables.Thermocouple(args[0])
			if err != nil {
				return err
			}
			fmt.Println(styles.Title.Render("Type " + tc.Type))
			fmt.Printf("Materials: %s (+) / %s (-)\n", tc.PositiveMaterial, tc.NegativeMaterial)
			fmt.Printf("Range:     %g to %g °C (±%g °C)\n", tc.RangeCMin, tc.RangeCMax, tc.ToleranceC)
			fmt.Printf("ANSI:      %s (+), %s (-), %s jacket\n",
				tc.ANSIPositiveColor, tc.ANSINegativeColor, tc.ANSIJacketColor)
			fmt.Printf("IEC:       %s (+), %s (-)\n", tc.IECPositiveColor, tc.IECNegativeColor)
			return nil
		}

		table := ui.NewSimpleTable("Thermocouples", "Type", "Range °C", "ANSI +/-", "IEC +/-")
		for _, tc := range tables.Thermocouples() {
			table.AddRow(
				tc.Type,
				fmt.Sprintf("%g to %g", tc.RangeCMin, tc.RangeCMax),
				tc.ANSIPositiveColor+"/"+tc.ANSINegativeColor,
				tc.IECPositiveColor+"/"+tc.IECNegativeColor,
			)
		}
		fmt.Print(table.View(styles))
		return nil
	},
}

var lookupTerminalsCmd = &cobra.Command{
	Use:   "terminals [family]",
	Short: "Drive control terminal maps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := loadTables()
		if err != nil {
			return err
		}
		m, err := tables.TerminalMap(args[0])
		if err != nil {
			return fmt.Errorf("%w (known families: %v)", err, tables.Families())
		}

		styles := ui.DefaultStyles()
		table := ui.NewSimpleTable(m.Drive, "Terminal", "Function", "Notes")
		for _, t := range m.Terminals {
			table.AddRow(t.Label, t.Function, t.Notes)
		}
		fmt.Print(table.View(styles))
		return nil
	},
}

func recordLookup(summary string, payload interface{}) {
	hist, err := openHistory()
	if err != nil {
		logger.Debug("history store unavailable", zap.Error(err))
		return
	}
	defer hist.Close()
	if err := hist.Record(history.KindLookup, summary, payload); err != nil {
		logger.Debug("history record failed", zap.Error(err))
	}
}

func init() {
	lookupAmpacityCmd.Flags().Float64("amps", 0, "Find the smallest size for this current")
	lookupAmpacityCmd.Flags().IntVar(&ampacityTemp, "temp", 75, "Insulation temperature rating (60, 75, 90)")

	lookupFLCCmd.Flags().Float64Var(&flcFlags.hp, "hp", 0, "Motor horsepower")
	lookupFLCCmd.Flags().IntVar(&flcFlags.voltage, "voltage", 460, "Motor voltage")
	lookupFLCCmd.Flags().IntVar(&flcFlags.phase, "phase", 3, "Phase (1 or 3)")
}
