package cmd

import (
	"log/slog"
	"os"

	"github.com/jsphweid/engraver/constants"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
	config     = constants.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "engraver",
	Short: "Engraves music scores",
	Long:  `Edits scores of note tokens and engraves them as SVG, MIDI or through an HTTP API.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(logLevel); err != nil {
			return err
		}
		cfg, err := constants.LoadConfig(configPath)
		if err != nil {
			return err
		}
		config = cfg
		slog.Debug("loaded config", "path", configPath, "clef", config.Clef, "channels", config.Channels)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.GetLogLevel(), "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", constants.GetConfigPath(), "engraver config file (.yaml or .toml)")
}

func setupLogging(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return errors.Wrapf(err, "bad log level %q", level)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
