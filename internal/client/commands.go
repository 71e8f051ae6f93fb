// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/spf13/cobra"
)

const clientRole = "note-keeper-client"

// skipApp marks commands that run without configuration or storage.
const skipApp = "skip-app"

type rootOptions struct {
	server     string
	db         string
	configFile string
	logDir     string
	refresh    time.Duration
	offline    bool
}

// cli carries the state shared by all subcommands of one invocation.
type cli struct {
	opts rootOptions
	info models.AppBuildInfo

	app    *App
	logger *logger.Logger
}

// NewRootCommand builds the note-keeper command tree.
func NewRootCommand(info models.AppBuildInfo) *cobra.Command {
	c := &cli{info: info}

	root := &cobra.Command{
		Use:   "note-keeper",
		Short: "Collaborative notes from the terminal",
		Long: `note-keeper keeps notes on a note-keeper server, or in a local
database with --offline. Notes can be shared with other users, published
for everyone and summarized or reviewed by the AI assistant.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.opts.server, "server", "s", "", "note server base URL")
	flags.StringVarP(&c.opts.db, "db", "d", "", "local SQLite database file")
	flags.StringVarP(&c.opts.configFile, "config", "c", "", "JSON configuration file")
	flags.StringVar(&c.opts.logDir, "log-dir", "", "directory of the client log file")
	flags.DurationVar(&c.opts.refresh, "refresh", 0, "result set refresh interval for watch")
	flags.BoolVar(&c.opts.offline, "offline", false, "keep notes in the local database")

	root.AddCommand(c.versionCommand())
	root.AddCommand(c.authCommands()...)
	root.AddCommand(c.noteCommands()...)
	root.AddCommand(c.aiCommands()...)

	for _, cmd := range root.Commands() {
		c.closeAfter(cmd)
	}

	return root
}

// closeAfter releases the App once cmd finishes, whether or not it failed.
func (c *cli) closeAfter(cmd *cobra.Command) {
	run := cmd.RunE
	if run == nil {
		return
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			err = errors.Join(err, c.teardown())
		}()
		return run(cmd, args)
	}
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[skipApp] != "" {
		return nil
	}

	cfg, err := config.GetClientConfig(c.structuredConfig())
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	c.logger = logger.NewClientLogger(clientRole, cfg.App.LogDir)
	c.logger.Debug().Str("command", cmd.Name()).Bool("offline", c.opts.offline).Msg("starting client")

	c.app, err = NewApp(cmd.Context(), cfg, c.opts.offline, c.logger)
	if err != nil {
		c.logger.Err(err).Msg("init client app error")
		return err
	}
	return nil
}

func (c *cli) teardown() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

// structuredConfig maps the persistent flags onto the config layers.
func (c *cli) structuredConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		App:          config.App{LogDir: c.opts.logDir},
		Adapter:      config.Adapter{HTTPAddress: c.opts.server},
		Storage:      config.Storage{DB: config.DB{DSN: c.opts.db}},
		Workers:      config.Workers{RefreshInterval: c.opts.refresh},
		JSONFilePath: c.opts.configFile,
	}
}

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipApp: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Build version: %s\n", c.info.BuildVersion())
			fmt.Fprintf(out, "Build date: %s\n", c.info.BuildDate())
			fmt.Fprintf(out, "Build commit: %s\n", c.info.BuildCommit())
		},
	}
}
