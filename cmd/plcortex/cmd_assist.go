package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"plcortex/cmd/plcortex/ui"
	"plcortex/internal/assist"
)

var diagnoseFlags struct {
	family    string
	faultCode string
	equipment string
}

// diagnoseCmd asks the LLM backend for a fault diagnosis
var diagnoseCmd = &cobra.Command{
	Use:   "diagnose [symptoms...]",
	Short: "Diagnose an equipment fault",
	Long: `Sends the symptoms, equipment description, and any matching fault-code
reference data to the LLM backend and prints ranked causes with a check
procedure.

Example:
  plcortex diagnose --family powerflex-525 --code F004 \
    --equipment "line 3 conveyor VFD" "trips a few seconds after start"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext()
		defer cancel()

		a, cleanup, err := newAssistant(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		out, err := a.Diagnose(ctx, assist.DiagnosisRequest{
			DriveFamily: diagnoseFlags.family,
			FaultCode:   diagnoseFlags.faultCode,
			Equipment:   diagnoseFlags.equipment,
			Symptoms:    strings.Join(args, " "),
		})
		if err != nil {
			return err
		}
		return printMarkdown(out)
	},
}

var migrateFlags struct {
	from  string
	to    string
	file  string
	notes string
}

// migrateCmd translates a PLC program between platforms
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Translate a PLC program between platforms",
	Long: `Reads a source program from --file (or stdin) and asks the LLM
backend to translate it, flagging constructs with no direct equivalent.

Example:
  plcortex migrate --from rslogix500 --to studio5000 --file pump_station.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		program, err := readProgram(migrateFlags.file)
		if err != nil {
			return err
		}

		ctx, cancel := requestContext()
		defer cancel()

		a, cleanup, err := newAssistant(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		out, err := a.Migrate(ctx, assist.MigrationRequest{
			SourcePlatform: migrateFlags.from,
			TargetPlatform: migrateFlags.to,
			Program:        program,
			Notes:          migrateFlags.notes,
		})
		if err != nil {
			return err
		}
		return printMarkdown(out)
	},
}

var commissionFamily string

// commissionCmd produces commissioning guidance
var commissionCmd = &cobra.Command{
	Use:   "commission [application...]",
	Short: "Step-by-step commissioning guidance",
	Long: `Describes the application and asks the LLM backend for a
commissioning checklist, with terminal assignments when a drive family
is given.

Example:
  plcortex commission --family altivar-320 "10 HP exhaust fan, 2-wire run from the BMS"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext()
		defer cancel()

		a, cleanup, err := newAssistant(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		out, err := a.Commission(ctx, assist.CommissionRequest{
			DriveFamily: commissionFamily,
			Application: strings.Join(args, " "),
		})
		if err != nil {
			return err
		}
		return printMarkdown(out)
	},
}

// readProgram reads the source program from a file, or stdin when path
// is empty.
func readProgram(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read program from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read program: %w", err)
	}
	return string(data), nil
}

// printMarkdown renders an LLM response as terminal markdown, falling back
// to plain text when the renderer cannot be built.
func printMarkdown(md string) error {
	styles := ui.DefaultStyles()

	var renderer *glamour.TermRenderer
	var err error
	if styles.Theme.IsDark {
		renderer, err = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
	} else {
		renderer, err = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(100),
		)
	}
	if err != nil {
		fmt.Println(md)
		return nil
	}

	out, err := renderer.Render(md)
	if err != nil {
		fmt.Println(md)
		return nil
	}
	fmt.Print(out)
	return nil
}

func init() {
	diagnoseCmd.Flags().StringVar(&diagnoseFlags.family, "family", "", "Drive family for fault-code context")
	diagnoseCmd.Flags().StringVar(&diagnoseFlags.faultCode, "code", "", "Displayed fault code")
	diagnoseCmd.Flags().StringVar(&diagnoseFlags.equipment, "equipment", "", "Machine and drive/PLC involved")
	diagnoseCmd.MarkFlagRequired("equipment")

	migrateCmd.Flags().StringVar(&migrateFlags.from, "from", "", "Source platform")
	migrateCmd.Flags().StringVar(&migrateFlags.to, "to", "", "Target platform")
	migrateCmd.Flags().StringVar(&migrateFlags.file, "file", "", "Program file (default stdin)")
	migrateCmd.Flags().StringVar(&migrateFlags.notes, "notes", "", "Site constraints (tag naming, addressing)")
	migrateCmd.MarkFlagRequired("from")
	migrateCmd.MarkFlagRequired("to")

	commissionCmd.Flags().StringVar(&commissionFamily, "family", "", "Drive family for the terminal map")
}
