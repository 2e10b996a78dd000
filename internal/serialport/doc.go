// Package serialport opens Linux serial devices for polled, read-only
// monitoring and discovers the ports attached to the host.
//
// # Basic Usage
//
// Open a port with the default configuration (115200 8N1, exclusive lock):
//
//	port, err := serialport.Open("/dev/ttyUSB0")
//	if err != nil {
//	    return err
//	}
//	defer port.Close()
//
//	n, err := port.BytesAvailable()
//	if n > 0 {
//	    data, err := port.ReadAvailable()
//	}
//
// BytesAvailable and ReadAvailable never wait for data. Both report
// ErrDeviceDisconnected once the line hangs up, which is how an unplugged
// USB adapter shows up.
//
// # Configuration Options
//
//	port, err := serialport.Open("/dev/ttyACM0",
//	    serialport.WithBaudRate(921600),
//	    serialport.WithParity(serialport.ParityEven),
//	    serialport.WithExclusive(false),
//	)
//
// # Port Discovery
//
//	ports, err := serialport.ListPorts()
//	for _, portPath := range ports {
//	    info, _ := serialport.GetPortInfo(portPath)
//	    fmt.Printf("%s: %s (VID=%s PID=%s Serial=%s)\n",
//	        info.Path, info.Description, info.VendorID, info.ProductID, info.SerialNumber)
//	}
//
// USB metadata comes from sysfs. Resetting a hung adapter needs the
// usbreset utility and root:
//
//	err := serialport.ResetUSBDevice(ctx, "/dev/ttyUSB0")
//	err = serialport.ResetUSBDeviceBySerial(ctx, "FT123456")
//
// # Error Handling
//
// Open maps errno values onto sentinels for errors.Is:
//
//	var (
//	    ErrDeviceNotFound     // ENOENT, ENODEV, ENXIO
//	    ErrPermissionDenied   // EACCES, EPERM
//	    ErrDeviceInUse        // EBUSY or the exclusive lock is held
//	    ErrDeviceDisconnected // hang-up while reading
//	)
package serialport
