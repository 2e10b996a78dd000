package serialport

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// reenumerateDelay is how long a reset device usually needs to reappear
const reenumerateDelay = 2 * time.Second

// ResetUSBDevice performs a USB-level reset of the adapter behind portPath.
// This can recover a bridge chip that stopped forwarding data. The device
// node disappears during the reset, so a running monitor sees a disconnect
// and picks the port up again once it re-enumerates.
//
// Requires the usbreset utility (usbutils) and usually root.
//
// Returns:
//   - ErrUSBInfoNotAvailable if the port is not USB or sysfs has no bus/device numbers
//   - ErrUSBResetNotAvailable if usbreset is not installed
func ResetUSBDevice(ctx context.Context, portPath string) error {
	info, err := GetPortInfo(portPath)
	if err != nil {
		return fmt.Errorf("failed to get port info: %w", err)
	}

	usbPath, err := formatUSBPath(info.BusNumber, info.DeviceNumber)
	if err != nil {
		return ErrUSBInfoNotAvailable
	}

	if !IsUSBResetAvailable() {
		return ErrUSBResetNotAvailable
	}

	cmd := exec.CommandContext(ctx, "usbreset", usbPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("usbreset failed: %w (output: %s)", err, string(output))
	}

	timer := time.NewTimer(reenumerateDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ResetUSBDeviceBySerial resets the adapter with the given USB serial number.
// Useful when device paths change after reboot or with several adapters attached.
func ResetUSBDeviceBySerial(ctx context.Context, serialNumber string) error {
	ports, err := ListPorts()
	if err != nil {
		return err
	}

	for _, portPath := range ports {
		info, err := GetPortInfo(portPath)
		if err != nil {
			continue
		}
		if info.SerialNumber == serialNumber {
			return ResetUSBDevice(ctx, portPath)
		}
	}

	return fmt.Errorf("%w: no device with serial %s", ErrDeviceNotFound, serialNumber)
}

// IsUSBResetAvailable checks if usbreset utility is available in PATH
func IsUSBResetAvailable() bool {
	_, err := exec.LookPath("usbreset")
	return err == nil
}

// formatUSBPath builds the BBB/DDD argument usbreset expects
func formatUSBPath(bus, device string) (string, error) {
	b, err := strconv.Atoi(bus)
	if err != nil {
		return "", err
	}
	d, err := strconv.Atoi(device)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%03d/%03d", b, d), nil
}
