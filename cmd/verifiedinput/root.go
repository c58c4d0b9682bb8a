package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pthm/verifiedinput"
	"github.com/pthm/verifiedinput/internal/config"
	"github.com/pthm/verifiedinput/internal/logging"
)

// app is the state shared by subcommands once the config is loaded.
type app struct {
	configPath string
	logLevel   string
	logJSON    bool

	cfg    *config.Config
	preds  *verifiedinput.Predicates
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{preds: verifiedinput.NewPredicates()}

	root := &cobra.Command{
		Use:           "verifiedinput",
		Short:         "Serve and explore forms of verified inputs",
		Long:          `Loads a YAML form definition and serves it over HTMX, runs it in the terminal, or checks how its fields filter edits.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "form definition (default $"+config.EnvConfig+" or "+config.DefaultPath+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides log.level)")
	root.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "log as JSON (overrides log.json)")

	root.AddCommand(
		newServeCmd(a),
		newTUICmd(a),
		newCheckCmd(a),
		newDescribeCmd(a),
	)
	return root
}

// load reads the config and installs the logger. Logs go to stderr so
// that command output stays clean.
func (a *app) load(cmd *cobra.Command) error {
	path := config.ResolvePath(a.configPath)
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	opts := logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON}
	if a.logLevel != "" {
		opts.Level = a.logLevel
	}
	if a.logJSON {
		opts.JSON = true
	}
	logger, err := logging.Init(cmd.ErrOrStderr(), opts)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	logger.Debug("config loaded", "path", path, "fields", len(cfg.Form.Fields))
	return nil
}
