package serialport

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestReadSysfsFile tests the sysfs file reading helper
func TestReadSysfsFile(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		content  *string
		expected string
	}{
		{"normal file", ptr("1234\n"), "1234"},
		{"file with spaces", ptr("  test value  \n"), "test value"},
		{"nonexistent file", nil, ""},
		{"empty file", ptr(""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(tmpDir, tt.name)
			if tt.content != nil {
				if err := os.WriteFile(testFile, []byte(*tt.content), 0644); err != nil {
					t.Fatalf("Setup failed: %v", err)
				}
			}

			if result := readSysfsFile(testFile); result != tt.expected {
				t.Errorf("readSysfsFile() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func ptr(s string) *string { return &s }

// mockSysfs lays out a tty under a USB interface the way the kernel does:
//
//	root/class/tty/<tty>/device -> root/devices/usb5/5-2.3.1/5-2.3.1:1.0/<tty>
func mockSysfs(t *testing.T, tty string, ttyUnderInterface bool) string {
	t.Helper()
	root := t.TempDir()

	devicePath := filepath.Join(root, "devices", "usb5", "5-2.3.1")
	interfacePath := filepath.Join(devicePath, "5-2.3.1:1.0")
	ttyPath := interfacePath
	if ttyUnderInterface {
		ttyPath = filepath.Join(interfacePath, tty)
	}
	classTtyPath := filepath.Join(root, "class", "tty", tty)

	for _, dir := range []string{ttyPath, classTtyPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	deviceFiles := map[string]string{
		"idVendor":     "0403",
		"idProduct":    "6010",
		"serial":       "FT123456",
		"manufacturer": "FTDI",
		"product":      "FT2232C Dual USB-UART",
		"busnum":       "5",
		"devnum":       "7",
	}
	for filename, content := range deviceFiles {
		if err := os.WriteFile(filepath.Join(devicePath, filename), []byte(content+"\n"), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", filename, err)
		}
	}
	if err := os.WriteFile(filepath.Join(interfacePath, "bInterfaceNumber"), []byte("00\n"), 0644); err != nil {
		t.Fatalf("Failed to write interface number: %v", err)
	}

	if err := os.Symlink(ttyPath, filepath.Join(classTtyPath, "device")); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}
	return root
}

// TestEnrichUSBInfo tests USB metadata extraction with a mock sysfs structure
func TestEnrichUSBInfo(t *testing.T) {
	for _, layout := range []struct {
		name              string
		tty               string
		ttyUnderInterface bool
	}{
		{"ftdi ttyUSB", "ttyUSB0", true},
		{"cdc-acm ttyACM", "ttyACM0", false},
	} {
		t.Run(layout.name, func(t *testing.T) {
			root := mockSysfs(t, layout.tty, layout.ttyUnderInterface)
			info := &PortInfo{Name: layout.tty, Path: "/dev/" + layout.tty}

			enrichUSBInfo(info, root)

			tests := []struct {
				name     string
				got      string
				expected string
			}{
				{"VendorID", info.VendorID, "0403"},
				{"ProductID", info.ProductID, "6010"},
				{"SerialNumber", info.SerialNumber, "FT123456"},
				{"InterfaceNumber", info.InterfaceNumber, "00"},
				{"BusNumber", info.BusNumber, "5"},
				{"DeviceNumber", info.DeviceNumber, "7"},
				{"Manufacturer", info.Manufacturer, "FTDI"},
				{"Product", info.Product, "FT2232C Dual USB-UART"},
			}
			for _, tt := range tests {
				if tt.got != tt.expected {
					t.Errorf("%s = %q, expected %q", tt.name, tt.got, tt.expected)
				}
			}
			if !info.IsUSB() {
				t.Error("IsUSB() = false after enrichment")
			}
		})
	}
}

// TestEnrichUSBInfoGracefulFailure tests that enrichUSBInfo handles missing files gracefully
func TestEnrichUSBInfoGracefulFailure(t *testing.T) {
	info := &PortInfo{Name: "ttyUSB999", Path: "/dev/ttyUSB999"}

	enrichUSBInfo(info, t.TempDir())

	if info.VendorID != "" || info.ProductID != "" || info.SerialNumber != "" {
		t.Errorf("USB fields should stay empty, got %+v", info)
	}
	if info.IsUSB() {
		t.Error("IsUSB() = true without sysfs metadata")
	}
}

func TestFormatUSBPath(t *testing.T) {
	tests := []struct {
		bus      string
		device   string
		expected string
		wantErr  bool
	}{
		{"5", "7", "005/007", false},
		{"1", "2", "001/002", false},
		{"123", "456", "123/456", false},
		{"1", "10", "001/010", false},
		{"", "7", "", true},
		{"5", "", "", true},
	}

	for _, tt := range tests {
		formatted, err := formatUSBPath(tt.bus, tt.device)
		if (err != nil) != tt.wantErr {
			t.Errorf("formatUSBPath(%q, %q) error = %v, wantErr %v", tt.bus, tt.device, err, tt.wantErr)
		}
		if formatted != tt.expected {
			t.Errorf("formatUSBPath(%q, %q) = %q, expected %q", tt.bus, tt.device, formatted, tt.expected)
		}
	}
}

// TestResetUSBDeviceBySerialNotFound tests error handling when device not found
func TestResetUSBDeviceBySerialNotFound(t *testing.T) {
	err := ResetUSBDeviceBySerial(context.Background(), "NONEXISTENT_SERIAL")
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("Expected ErrDeviceNotFound, got: %v", err)
	}
}

func TestResetUSBDeviceNotUSB(t *testing.T) {
	// /dev/null has no USB parent
	err := ResetUSBDevice(context.Background(), "/dev/null")
	if !errors.Is(err, ErrUSBInfoNotAvailable) {
		t.Errorf("Expected ErrUSBInfoNotAvailable, got %v", err)
	}
}
