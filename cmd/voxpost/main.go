package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"voxpost/internal/classifier"
	"voxpost/internal/config"
	"voxpost/internal/interpreter"
	"voxpost/internal/logging"
	"voxpost/internal/store"
)

var (
	// Global flags
	cfgPath string
	verbose bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "voxpost",
	Short: "voxpost - conversational command interpreter for voice-driven publishing",
	Long: `voxpost turns free-form editing instructions ("make it spicier",
"translate to Spanish", "publish it") into typed commands that drive a
content-editing session.

Pattern matching runs locally and deterministically; a Gemini fallback
classifier can be enabled for utterances the patterns miss. Phrases the
patterns keep misreading can be taught explicitly and are remembered
across runs.

Run without arguments to start an interactive session.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging.Level, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(cmd)
	},
}

// buildParser wires a Parser from configuration: learned phrase store when
// configured, Gemini fallback when enabled. The returned cleanup closes
// the store.
func buildParser(cmd *cobra.Command) (*interpreter.Parser, func(), error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	opts := interpreter.Options{
		ConfidenceThreshold: cfg.Interpreter.ConfidenceThreshold,
		Logger:              logger,
	}

	cleanup := func() {}
	if cfg.Store.Path != "" {
		phrases, err := store.NewLearnedPhraseStore(cfg.Store.Path, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open phrase store: %w", err)
		}
		opts.Learned = phrases
		cleanup = func() { _ = phrases.Close() }
	}

	if cfg.Classifier.Enabled {
		gc, err := classifier.NewGeminiClient(cmd.Context(), classifier.Config{
			APIKey:  cfg.Classifier.APIKey,
			Model:   cfg.Classifier.Model,
			Timeout: cfg.ClassifierTimeout(),
		}, logger)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to build classifier: %w", err)
		}
		opts.Classifier = gc
		logger.Debug("fallback classifier enabled", zap.String("model", cfg.Classifier.Model))
	}

	p, err := interpreter.New(opts)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return p, cleanup, nil
}

// openPhraseStore opens just the learned phrase store for teach/forget.
func openPhraseStore() (*store.LearnedPhraseStore, *config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Store.Path == "" {
		return nil, nil, fmt.Errorf("no phrase store configured (store.path)")
	}
	s, err := store.NewLearnedPhraseStore(cfg.Store.Path, logger)
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".voxpost/config.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(teachCmd)
	rootCmd.AddCommand(phrasesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
