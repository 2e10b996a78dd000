/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import "github.com/spf13/cobra"

// printCmd echoes and logs lines without extracting anything
var printCmd = newMonitorCommand(&cobra.Command{
	Use:   "print",
	Short: "Print device output and log each session to a file",
	Long: `Print every line a device writes and record each session in a
timestamped log file (static/YYYYMMDD-HHMMSS.log by default).

Same as: uartwatch monitor --extract none --log-dir static

Examples:
  uartwatch print
  uartwatch print -p /dev/ttyACM0 --once
  uartwatch print --log-dir /var/log/uart`,
}, monitorPreset{extract: []string{"none"}, logDir: "static"})

// macCmd reports MAC addresses and hosts without echoing every line
var macCmd = newMonitorCommand(&cobra.Command{
	Use:   "mac",
	Short: "Report WiFi MAC addresses and hosts as devices boot",
	Long: `Wait for devices and report the station MAC address each one prints
when its WiFi comes up, together with any host it mentions.

Same as: uartwatch monitor --extract mac,host --quiet

Examples:
  uartwatch mac
  uartwatch mac --quiet=false
  uartwatch mac --nats-url nats://localhost:4222`,
}, monitorPreset{extract: []string{"mac", "host"}, quiet: true})

func init() {
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(macCmd)
}
