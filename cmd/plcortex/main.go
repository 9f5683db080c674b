package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"plcortex/internal/assist"
	"plcortex/internal/config"
	"plcortex/internal/history"
	"plcortex/internal/llm"
	"plcortex/internal/logging"
	"plcortex/internal/reference"
)

var (
	// Global flags
	verbose bool
	appDir  string
	apiKey  string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "plcortex",
	Short: "PLCortex - controls engineering toolbox",
	Long: `PLCortex is a command-line toolbox for industrial controls work.

It bundles the plant-floor math a controls engineer reaches for daily
(analog signal scaling, enclosure thermal sizing, wire and motor sizing),
embedded NEC and drive reference tables, and LLM-backed assistance for
fault diagnosis, PLC code migration, and commissioning.

All calculators and lookups work offline; only diagnose, migrate, and
commission need an API key.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if appDir == "" {
			appDir = config.DefaultAppDir()
		}
		if err := logging.Initialize(appDir); err != nil {
			logger.Warn("file logging unavailable", zap.Error(err))
		}

		cfg, err = config.Load(filepath.Join(appDir, "config.yaml"))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if apiKey != "" {
			cfg.LLM.APIKey = apiKey
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&appDir, "app-dir", "", "Application directory (default ~/.plcortex)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "LLM API key (or set GEMINI_API_KEY / OPENAI_API_KEY)")

	rootCmd.AddCommand(scaleCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(commissionCmd)
	rootCmd.AddCommand(sensorsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadTables loads the reference tables with any configured overrides.
func loadTables() (*reference.Tables, error) {
	return reference.Load(cfg.Tables.OverrideDir)
}

// openHistory opens the activity store. Callers close it.
func openHistory() (*history.Store, error) {
	return history.NewStore(cfg.History.DatabasePath, cfg.History.MaxEntries)
}

// newAssistant builds the LLM-backed assistant from the loaded config.
// The history store is optional; a failure to open it degrades to no
// recording rather than blocking the request.
func newAssistant(ctx context.Context) (*assist.Assistant, func(), error) {
	client, err := llm.NewClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	tables, err := loadTables()
	if err != nil {
		return nil, nil, err
	}

	hist, err := openHistory()
	if err != nil {
		logger.Warn("history store unavailable", zap.Error(err))
		hist = nil
	}

	a, err := assist.New(client, tables, hist)
	if err != nil {
		if hist != nil {
			hist.Close()
		}
		return nil, nil, err
	}

	cleanup := func() {
		if hist != nil {
			hist.Close()
		}
	}
	return a, cleanup, nil
}

// requestContext returns a context bounded by the configured LLM timeout
// and cancelled on SIGINT/SIGTERM.
func requestContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.LLMTimeout())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(os.Stderr, "\nCancelled")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
