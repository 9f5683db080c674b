package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"plcortex/cmd/plcortex/ui"
	"plcortex/internal/reference"
)

// sensorsCmd runs the interactive sensor-selection wizard
var sensorsCmd = &cobra.Command{
	Use:   "sensors",
	Short: "Interactive sensor-selection wizard",
	Long: `Narrows the sensor catalog through guided questions: the measured
quantity, the installation environment, the required output type, and
the sensing distance. Prints the matching sensors with selection notes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := loadTables()
		if err != nil {
			return err
		}

		// Catalog overrides edited while the wizard is open are
		// reflected in the final recommendation.
		if cfg.Tables.WatchOverrides && cfg.Tables.OverrideDir != "" {
			watcher, err := reference.NewWatcher(tables, cfg.Tables.OverrideDir)
			if err != nil {
				logger.Warn("override watcher unavailable", zap.Error(err))
			} else {
				ctx, cancel := context.WithCancel(context.Background())
				defer cancel()
				if err := watcher.Start(ctx); err != nil {
					logger.Warn("override watcher failed to start", zap.Error(err))
				} else {
					defer watcher.Stop()
				}
			}
		}

		styles := ui.DefaultStyles()
		wizard := ui.NewSensorWizard(styles, tables.Measurands(), tables.Environments())

		program := tea.NewProgram(wizard)
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("wizard failed: %w", err)
		}

		criteria, ok := wizard.Result()
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}

		matches := tables.SelectSensors(criteria)
		if len(matches) == 0 {
			fmt.Printf("No catalog sensor measures %s under those constraints; relax the output or distance.\n",
				criteria.Measurand)
			return nil
		}

		table := ui.NewSimpleTable("Recommended sensors", "Sensor", "Technology", "Output", "Notes")
		for _, s := range matches {
			table.AddRow(s.Name, s.Technology, s.Output, s.Notes)
		}
		fmt.Print(table.View(styles))

		recordLookup(fmt.Sprintf("sensor selection for %s (%d matches)",
			criteria.Measurand, len(matches)), criteria)
		return nil
	},
}
