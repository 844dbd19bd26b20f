package main

import (
	"errors"
	"fmt"
	"os"

	"careers-engine/internal/config"
	"careers-engine/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "careers.yml"

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "careers",
		Short:         "Generate careers pages and job feeds",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional; real environment variables win.
			_ = godotenv.Load()
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "path to the YAML config file")

	cmd.AddCommand(
		newGenerateCmd(opts),
		newRunsCmd(opts),
		newSecretCmd(opts),
	)
	return cmd
}

// loadConfig reads the config file (writing the defaults on first use),
// overlays the environment and validates the result.
func loadConfig(path string) (config.Config, []string, error) {
	created, err := config.EnsureUserConfig(path)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("config bootstrap %s: %w", path, err)
	}

	cfg, err := config.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return config.Config{}, nil, fmt.Errorf("config load %s: %w", path, err)
	}
	config.ApplyEnv(&cfg)

	cfg, v := config.NormalizeAndValidate(cfg)
	warnings := v.Warnings
	if created {
		warnings = append([]string{"wrote default config to " + path}, warnings...)
	}
	return cfg, warnings, v.Err()
}

func newLogger(cfg config.Config, warnings []string) *logging.Logger {
	log := logging.New(cfg.Log.Level)
	for _, w := range warnings {
		log.Warn(w)
	}
	return log
}
