/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
	"github.com/spf13/cobra"

	"github.com/allbin/uartwatch/internal/serialport"
	"github.com/allbin/uartwatch/internal/tui/styles"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available serial ports",
	Long: `List all available serial ports on the system.

This command scans for communication-capable serial devices including:
- USB serial adapters (ttyUSB*)
- USB CDC/ACM devices (ttyACM*)
- Standard serial ports (ttyS*)
- ARM/Raspberry Pi ports (ttyAMA*)
- And other platform-specific serial devices

Virtual terminals and pseudo-terminals are excluded from the listing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := serialport.ListPorts()
		if err != nil {
			return fmt.Errorf("listing ports: %w", err)
		}

		filterType, _ := cmd.Flags().GetString("filter")
		tableFormat, _ := cmd.Flags().GetBool("table")
		detailed, _ := cmd.Flags().GetBool("detailed")

		infos, err := filterPorts(portInfos(ports), filterType)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(infos) == 0 {
			if filterType != "" && filterType != "all" {
				fmt.Fprintf(out, "No serial ports found matching filter: %s\n", filterType)
			} else {
				fmt.Fprintln(out, "No serial ports found")
			}
			return nil
		}

		switch {
		case tableFormat:
			renderTable(out, infos)
		case detailed:
			renderDetailed(out, infos)
		default:
			renderSimple(out, infos)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("filter", "f", "", "Filter by port type: usb, standard, arm, all")
	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
	listCmd.Flags().BoolP("detailed", "d", false, "Show USB metadata for every port")
}

// portInfos looks up metadata, keeping ports that vanished since listing
func portInfos(ports []string) []*serialport.PortInfo {
	infos := make([]*serialport.PortInfo, 0, len(ports))
	for _, port := range ports {
		info, err := serialport.GetPortInfo(port)
		if err != nil {
			continue
		}
		infos = append(infos, info)
	}
	return infos
}

// filterPorts filters the port list based on the specified filter type
func filterPorts(infos []*serialport.PortInfo, filterType string) ([]*serialport.PortInfo, error) {
	var types []string
	switch strings.ToLower(filterType) {
	case "", "all":
		return infos, nil
	case "usb":
		types = []string{"USB Serial", "USB CDC/ACM"}
	case "standard":
		types = []string{"Standard Serial"}
	case "arm":
		types = []string{"ARM Serial"}
	default:
		return nil, fmt.Errorf("unknown filter %q (valid: usb, standard, arm, all)", filterType)
	}

	var filtered []*serialport.PortInfo
	for _, info := range infos {
		if slices.Contains(types, getPortType(info.Name)) {
			filtered = append(filtered, info)
		}
	}
	return filtered, nil
}

const (
	columnKeyPort    = "port"
	columnKeyType    = "type"
	columnKeyVIDPID  = "vidpid"
	columnKeySerial  = "serial"
	columnKeyProduct = "product"
)

// renderTable renders the port list as a bordered table
func renderTable(out io.Writer, infos []*serialport.PortInfo) {
	fmt.Fprintf(out, "Found %d serial port(s):\n\n", len(infos))

	columns := []table.Column{
		table.NewColumn(columnKeyPort, "Port", 16),
		table.NewColumn(columnKeyType, "Type", 16),
		table.NewColumn(columnKeyVIDPID, "VID:PID", 11),
		table.NewColumn(columnKeySerial, "Serial", 18),
		table.NewColumn(columnKeyProduct, "Product", 28),
	}

	rows := make([]table.Row, 0, len(infos))
	for _, info := range infos {
		vidpid := "-"
		if info.IsUSB() {
			vidpid = info.VendorID + ":" + info.ProductID
		}
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyPort:    info.Path,
			columnKeyType:    getPortType(info.Name),
			columnKeyVIDPID:  vidpid,
			columnKeySerial:  orDash(info.SerialNumber),
			columnKeyProduct: orDash(info.Product),
		}))
	}

	t := table.New(columns).
		WithRows(rows).
		BorderRounded().
		WithBaseStyle(lipgloss.NewStyle().
			BorderForeground(styles.Surface2).
			Foreground(styles.Text).
			Align(lipgloss.Left)).
		HeaderStyle(lipgloss.NewStyle().Foreground(styles.Mauve).Bold(true))

	fmt.Fprintln(out, t.View())
}

// renderDetailed prints one block per port with its USB metadata
func renderDetailed(out io.Writer, infos []*serialport.PortInfo) {
	fmt.Fprintf(out, "Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "Found %d UART device(s):\n\n", len(infos))

	for i, info := range infos {
		fmt.Fprintf(out, "Device %d:\n", i+1)
		fmt.Fprintf(out, "  Port:        %s\n", info.Path)
		fmt.Fprintf(out, "  Name:        %s\n", info.Name)
		fmt.Fprintf(out, "  Description: %s\n", info.Description)
		printIfSet(out, "Maker:      ", info.Manufacturer)
		printIfSet(out, "Product:    ", info.Product)
		printIfSet(out, "Serial:     ", info.SerialNumber)
		printIfSet(out, "Vendor ID:  ", info.VendorID)
		printIfSet(out, "Product ID: ", info.ProductID)
		fmt.Fprintln(out)
	}
}

func printIfSet(out io.Writer, label, value string) {
	if value != "" {
		fmt.Fprintf(out, "  %s %s\n", label, value)
	}
}

// renderSimple renders the port list in simple text format
func renderSimple(out io.Writer, infos []*serialport.PortInfo) {
	for _, info := range infos {
		fmt.Fprintln(out, info.Path)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// getPortType returns a more specific type classification for the port
func getPortType(name string) string {
	name = strings.ToLower(name)
	switch {
	case strings.HasPrefix(name, "ttyusb"):
		return "USB Serial"
	case strings.HasPrefix(name, "ttyacm"):
		return "USB CDC/ACM"
	case strings.HasPrefix(name, "ttyama"):
		return "ARM Serial"
	case strings.HasPrefix(name, "ttymxc"):
		return "i.MX Serial"
	case strings.HasPrefix(name, "ttysac"):
		return "Samsung Serial"
	case strings.HasPrefix(name, "ttyths"):
		return "Tegra Serial"
	case strings.HasPrefix(name, "ttyo"):
		return "OMAP Serial"
	case strings.HasPrefix(name, "ttys"):
		return "Standard Serial"
	default:
		return "Serial Port"
	}
}
