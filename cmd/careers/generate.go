package main

import (
	"context"
	"time"

	"careers-engine/internal/config"
	"careers-engine/internal/logging"
	"careers-engine/internal/publish"
	"careers-engine/internal/scheduler"
	"careers-engine/internal/scrape"
	"careers-engine/internal/secrets"
	"careers-engine/internal/site"
	"careers-engine/internal/store"

	"github.com/spf13/cobra"
)

func newGenerateCmd(root *rootOptions) *cobra.Command {
	var (
		outputDir string
		noPublish bool
		every     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch jobs and write the careers pages and feeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, warnings, err := loadConfig(root.configPath)
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.Output.Dir = outputDir
			}
			if noPublish {
				cfg.Publish.Enabled = false
			}

			log := newLogger(cfg, warnings)
			defer func() { _ = log.Sync() }()

			if every <= 0 {
				return generate(cmd.Context(), cfg, log)
			}
			log.Info("regenerating on an interval", "every", every)
			scheduler.Every(cmd.Context(), every, "generate", func(ctx context.Context) error {
				return generate(ctx, cfg, log)
			}, log)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides output.dir)")
	cmd.Flags().BoolVar(&noPublish, "no-publish", false, "skip the SFTP upload even when publish.enabled is set")
	cmd.Flags().DurationVar(&every, "every", 0, "keep running and regenerate on this interval (e.g. 1h)")
	return cmd
}

func generate(ctx context.Context, cfg config.Config, log *logging.Logger) error {
	src, err := scrape.NewSource(cfg, log)
	if err != nil {
		return err
	}

	p := &site.Pipeline{Config: cfg, Source: src, Log: log}

	if cfg.Store.Path != "" {
		db, err := store.Open(ctx, cfg.Store.Path)
		if err != nil {
			// history is optional; the site still gets generated
			log.Warn("run history unavailable", "path", cfg.Store.Path, "err", err)
		} else {
			defer db.Close()
			p.Store = db
		}
	}

	if cfg.Publish.Enabled {
		pw, err := secrets.GetSFTPPassword(secrets.SFTPAccount(cfg.Publish.User, cfg.Publish.Host))
		if err != nil {
			return err
		}
		p.Publisher = publish.New(publish.Config{
			Host:                  cfg.Publish.Host,
			Port:                  cfg.Publish.Port,
			User:                  cfg.Publish.User,
			Password:              pw,
			RemoteDir:             cfg.Publish.RemoteDir,
			KnownHosts:            cfg.Publish.KnownHosts,
			InsecureIgnoreHostKey: cfg.Publish.InsecureIgnoreHostKey,
			Timeout:               cfg.Timeout(),
		}, log)
	}

	res, err := p.Run(ctx)
	if err != nil {
		log.Error("generation failed", "err", err)
		return err
	}

	log.Info("done",
		"source", src.Name(),
		"records", res.Records,
		"jobs", res.Jobs,
		"files", len(res.Files),
		"published", res.Published,
		"fetch_failed", res.FetchErr != nil,
	)
	return nil
}
