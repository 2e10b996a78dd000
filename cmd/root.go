/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "UARTWATCH"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "uartwatch",
	Short: "Watch USB UART devices and extract what they print",
	Long: `uartwatch follows the console of a device attached over a USB UART,
reassembles the lines it prints and picks out the station MAC address and
host names the firmware reports.

Without a port it waits for the next device to be plugged in, and after a
disconnect it waits for the next one again until interrupted.

Examples:
  uartwatch mac                        # print MAC addresses as devices boot
  uartwatch print --log-dir static     # echo and log every line to a file
  uartwatch monitor -p /dev/ttyUSB0 --tui
  uartwatch list --table`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		// Bind the running command's flags so config and env fill in the
		// ones not given on the command line.
		return viper.BindPFlags(cmd.Flags())
	},
}

// Execute adds all child commands to the root command and runs it with ctx.
// Cancelling ctx stops a running monitor cleanly.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/uartwatch/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

// initConfig reads the config file and environment variables
func initConfig() error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(configDir())
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "uartwatch")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "uartwatch")
	}
	return "."
}

// newLogger builds the diagnostic logger. Output goes to stderr so it never
// mixes with device lines on stdout.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
