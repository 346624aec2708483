package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-codelists/config"
	"github.com/goliatone/go-codelists/pkg/di"
)

var (
	cfgFile string
	appCfg  *config.Config
	logger  = slog.Default()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "codelists",
	Short: "Codelists backed by SSB classifications and Norwegian administrative units",
	Long: `Resolve option lists from the SSB Klass API and the Kartverket
administrative units API, with a shared in-memory cache in front of both.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(config.WithConfigFile(cfgFile), bindLogFlags(cmd))
		if err != nil {
			return err
		}
		appCfg = cfg
		logger = newLogger(cmd.ErrOrStderr(), cfg.Log)
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	defaults := config.DefaultConfig()
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./codelists.{yaml,json,toml})")
	rootCmd.PersistentFlags().String("log-level", defaults.Log.Level, "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", defaults.Log.Format, "log format: text or json")

	rootCmd.AddCommand(listCmd, optionsCmd, serveCmd)
}

// bindLogFlags lets explicitly set flags take precedence over env and file values.
func bindLogFlags(cmd *cobra.Command) config.Option {
	return func(v *viper.Viper) {
		_ = v.BindPFlag("log.level", cmd.Flags().Lookup("log-level"))
		_ = v.BindPFlag("log.format", cmd.Flags().Lookup("log-format"))
	}
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func newContainer() (*di.Container, error) {
	return di.NewContainer(*appCfg, di.WithLogger(logger))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
