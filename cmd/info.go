/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/allbin/uartwatch/internal/serialport"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <port>",
	Short: "Display detailed information about a serial port",
	Long: `Display detailed information about a serial port including USB metadata.

Examples:
  uartwatch info /dev/ttyUSB0
  uartwatch info /dev/ttyACM0

For USB devices, this displays vendor/product IDs, serial numbers, interface
numbers, and other USB-specific metadata extracted from sysfs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := serialport.GetPortInfo(args[0])
		if err != nil {
			return fmt.Errorf("getting port info: %w", err)
		}
		printPortInfo(cmd.OutOrStdout(), info)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printPortInfo(out io.Writer, info *serialport.PortInfo) {
	fmt.Fprintf(out, "Port Information: %s\n\n", info.Path)
	fmt.Fprintf(out, "  Name:        %s\n", info.Name)
	fmt.Fprintf(out, "  Type:        %s\n", getPortType(info.Name))
	fmt.Fprintf(out, "  Description: %s\n", info.Description)

	if !info.IsUSB() {
		return
	}

	fmt.Fprintln(out, "\nUSB Device Information:")
	printIfSet(out, "Vendor ID:   ", info.VendorID)
	printIfSet(out, "Product ID:  ", info.ProductID)
	printIfSet(out, "Serial:      ", info.SerialNumber)
	printIfSet(out, "Interface:   ", info.InterfaceNumber)
	printIfSet(out, "Bus:         ", info.BusNumber)
	printIfSet(out, "Device:      ", info.DeviceNumber)
	printIfSet(out, "Manufacturer:", info.Manufacturer)
	printIfSet(out, "Product:     ", info.Product)
}
