package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kerbaras/storytime/pkg/app"
	"github.com/kerbaras/storytime/pkg/config"
	"github.com/kerbaras/storytime/pkg/logger"
	"github.com/kerbaras/storytime/pkg/services"
)

var (
	dbPath    string
	generator string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "storytime",
	Short: "Personalized illustrated stories for kids",
	Long:  "Create, read, rate and export children's stories from a terminal UI or the command line",
	Run: func(cmd *cobra.Command, args []string) {
		// Launch TUI by default
		ctrl, log, err := setup(cmd.Context())
		cobra.CheckErr(err)
		defer closeAll(ctrl, log)

		a := app.NewApp(ctrl, log)
		if err := a.Run(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the story database (overrides STORYTIME_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&generator, "generator", "", "Story generator: builtin, openai, ollama or gemini")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(deleteCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the persistent flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if generator != "" {
		cfg.Generator = generator
		cfg.AIModel = ""
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func setup(ctx context.Context) (*services.StoryController, *zap.Logger, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Encoding:   "json",
		OutputPath: cfg.LogFile,
	})
	if err != nil {
		return nil, nil, err
	}

	ctrl, err := services.NewStoryControllerFromConfig(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, fmt.Errorf("failed to start: %w", err)
	}
	log.Debug("storytime started",
		zap.String("generator", ctrl.GeneratorName()),
		zap.String("db", cfg.DBPath),
		zap.String("user", ctrl.User()),
	)
	return ctrl, log, nil
}

func closeAll(ctrl *services.StoryController, log *zap.Logger) {
	if err := ctrl.Close(); err != nil {
		log.Warn("failed to close story store", zap.Error(err))
	}
	_ = log.Sync()
}
