package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/cofiy"
	"github.com/aretw0/cofiy/internal/config"
	"github.com/aretw0/cofiy/internal/logging"
	"github.com/aretw0/cofiy/pkg/core"
)

var (
	cfgFile string
	dataDir string
	verbose bool
	logFile string

	cfg       *config.Config
	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cofiy",
	Short: "Keep companies, notes and their attachments, and move them around as bundles",
	Long: `cofiy stores companies, the notes you take about them and the files
attached to those notes in a single JSON document.

Companies can be exported as JSON or ZIP bundles (ZIP embeds the attachment
files) and imported into another store. Imports never overwrite a company
that already exists.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile, "")
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("data-dir") {
			loaded.Data.Dir = dataDir
		} else if cmd.Name() != "init" {
			loaded.Data.Dir = locateDataDir(loaded.Data.Dir)
		}
		if flags.Changed("verbose") {
			loaded.Log.Verbose = verbose
		}
		if flags.Changed("log-file") {
			loaded.Log.File = logFile
		}
		cfg = loaded

		logger, closer := logging.New(cmd.ErrOrStderr(), logging.Options{
			Verbose:    cfg.Log.Verbose,
			File:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
		})
		logCloser = closer
		slog.SetDefault(logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./cofiy.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "Directory holding the store document")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to this file (rotated)")
}

// locateDataDir finds the store of the enclosing project when a relative
// data dir does not exist below the working directory.
func locateDataDir(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	if _, err := os.Stat(dir); err == nil {
		return dir
	}
	root, err := cofiy.FindRoot(".")
	if err != nil {
		return dir
	}
	return filepath.Join(root, dir)
}

// openService builds the service from the loaded configuration.
func openService(extra ...cofiy.Option) (*core.Service, error) {
	opts := []cofiy.Option{
		cofiy.WithLogger(slog.Default()),
		cofiy.WithDataFile(cfg.Data.File),
		cofiy.WithReadOnly(cfg.Data.ReadOnly),
		cofiy.WithDevSafety(cfg.Data.DevSafety),
	}
	svc, err := cofiy.New(cfg.Data.Dir, append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return svc, nil
}
