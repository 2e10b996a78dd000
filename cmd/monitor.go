/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/allbin/uartwatch"
	"github.com/allbin/uartwatch/internal/console"
	"github.com/allbin/uartwatch/internal/logfile"
	"github.com/allbin/uartwatch/internal/publish"
	"github.com/allbin/uartwatch/internal/tui"
)

// monitorPreset holds the flag defaults that distinguish monitor, print and mac
type monitorPreset struct {
	extract []string
	logDir  string
	quiet   bool
}

// monitorCmd represents the monitor command
var monitorCmd = newMonitorCommand(&cobra.Command{
	Use:   "monitor",
	Short: "Monitor a USB UART, echo its lines and extract MAC addresses and hosts",
	Long: `Monitor a serial device, echo every line it prints and report extracted
signals: the station MAC address ("wifi:mode : sta (xx:xx:xx:xx:xx:xx)") and
host names with at least three labels, classified as dev or main.

Without --port the monitor waits for a new device to appear. Unless --once
is given it waits for the next device after every disconnect.

Examples:
  uartwatch monitor
  uartwatch monitor -p /dev/ttyUSB0 --once
  uartwatch monitor --extract mac --log-dir logs
  uartwatch monitor --tui
  uartwatch monitor --nats-url nats://localhost:4222 --nats-encoding msgpack`,
}, monitorPreset{extract: []string{"mac", "host"}})

func init() {
	rootCmd.AddCommand(monitorCmd)
}

// newMonitorCommand wires the shared monitor flags and run function into cmd
func newMonitorCommand(cmd *cobra.Command, preset monitorPreset) *cobra.Command {
	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts, err := loadMonitorOptions()
		if err != nil {
			return err
		}
		return runMonitor(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
	addMonitorFlags(cmd.Flags(), preset)
	return cmd
}

func addMonitorFlags(fs *pflag.FlagSet, preset monitorPreset) {
	fs.StringP("port", "p", "", "Serial port device; waits for a new device when empty")
	fs.IntP("baud", "b", 115200, "Baud rate")
	fs.Bool("once", false, "Exit after the first session instead of waiting for reconnection")
	fs.StringSliceP("extract", "e", preset.extract, "Signals to extract: mac, host, or none")
	fs.String("log-dir", preset.logDir, "Write one timestamped log file per session to this directory")
	fs.Bool("quiet", preset.quiet, "Only print notices, not every line")
	fs.Duration("poll-interval", 10*time.Millisecond, "Sleep between reads when no data is waiting")
	fs.Duration("discovery-interval", time.Second, "Sleep between port scans while waiting for a device")
	fs.Bool("tui", false, "Full-screen terminal view")
	fs.Int("history", 5000, "Lines kept for scrollback in the terminal view")
	fs.String("nats-url", "", "Publish extracted signals to this NATS server")
	fs.String("nats-subject", publish.DefaultSubject, "Subject prefix for published signals")
	fs.String("nats-encoding", string(publish.EncodingJSON), "Event encoding: json or msgpack")
}

type monitorOptions struct {
	Port              string
	BaudRate          int
	Once              bool
	Extract           []string
	LogDir            string
	Quiet             bool
	PollInterval      time.Duration
	DiscoveryInterval time.Duration
	TUI               bool
	History           int
	NATSURL           string
	NATSSubject       string
	NATSEncoding      publish.Encoding
}

func loadMonitorOptions() (monitorOptions, error) {
	encoding, err := publish.ParseEncoding(viper.GetString("nats-encoding"))
	if err != nil {
		return monitorOptions{}, err
	}
	return monitorOptions{
		Port:              viper.GetString("port"),
		BaudRate:          viper.GetInt("baud"),
		Once:              viper.GetBool("once"),
		Extract:           splitList(viper.GetStringSlice("extract")),
		LogDir:            viper.GetString("log-dir"),
		Quiet:             viper.GetBool("quiet"),
		PollInterval:      viper.GetDuration("poll-interval"),
		DiscoveryInterval: viper.GetDuration("discovery-interval"),
		TUI:               viper.GetBool("tui"),
		History:           viper.GetInt("history"),
		NATSURL:           viper.GetString("nats-url"),
		NATSSubject:       viper.GetString("nats-subject"),
		NATSEncoding:      encoding,
	}, nil
}

// splitList flattens comma separated entries, as environment variables and
// config files deliver lists as a single string
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// monitorConfig turns CLI options into library options
func monitorConfig(o monitorOptions, logger *slog.Logger) ([]uartwatch.Option, error) {
	extractors, err := uartwatch.ParseExtractors(o.Extract)
	if err != nil {
		return nil, err
	}

	opts := []uartwatch.Option{
		uartwatch.WithBaudRate(o.BaudRate),
		uartwatch.WithOpenTimeout(time.Second),
		uartwatch.WithPollInterval(o.PollInterval),
		uartwatch.WithDiscoveryInterval(o.DiscoveryInterval),
		uartwatch.WithExtractors(extractors...),
		uartwatch.WithLogger(logger),
	}
	if o.LogDir != "" {
		opts = append(opts, uartwatch.WithJournal(logfile.Factory(o.LogDir, logger)))
	}
	return opts, nil
}

func runMonitor(ctx context.Context, o monitorOptions, stdout, stderr io.Writer) error {
	logger := newLogger(stderr)
	if o.TUI {
		// The status bar replaces log output while the screen is taken over
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	opts, err := monitorConfig(o, logger)
	if err != nil {
		return err
	}

	var extra uartwatch.MultiSink
	if o.NATSURL != "" {
		nc, sink, err := publish.Connect(o.NATSURL, o.NATSSubject, o.NATSEncoding, logger)
		if err != nil {
			return err
		}
		defer nc.Drain()
		extra = append(extra, sink)
	}

	run := func(ctx context.Context, sink uartwatch.Sink) error {
		mon, err := uartwatch.NewMonitor(serialTransport{}, serialDiscovery(), append(uartwatch.MultiSink{sink}, extra...), opts...)
		if err != nil {
			return err
		}
		return mon.Run(ctx, o.Port, !o.Once)
	}

	if o.TUI {
		return tui.Run(ctx, tui.Options{Port: o.Port, BaudRate: o.BaudRate, History: o.History}, run)
	}

	if o.Port == "" {
		fmt.Fprintln(stdout, "Waiting for USB UART connection...")
		fmt.Fprintln(stdout, "Press Ctrl+C to exit")
	}
	return run(ctx, console.New(stdout, console.WithQuiet(o.Quiet)))
}
