package main

import (
	"log/slog"

	"github.com/dukerupert/energydash/internal/config"
	"github.com/dukerupert/energydash/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries state shared by subcommands once flags and config are loaded.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           "energydash",
		Short:         "Household energy production and consumption dashboard",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.Setup(cfg.LogLevel, cfg.LogFormat)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.String("db-path", "", "SQLite database path")
	flags.String("static-dir", "", "directory for static files and generated charts")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text or json")
	a.v.BindPFlag("db_path", flags.Lookup("db-path"))
	a.v.BindPFlag("static_dir", flags.Lookup("static-dir"))
	a.v.BindPFlag("log_level", flags.Lookup("log-level"))
	a.v.BindPFlag("log_format", flags.Lookup("log-format"))

	root.AddCommand(newServeCmd(a), newStatsCmd(a))
	return root
}
