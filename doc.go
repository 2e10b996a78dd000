// Package uartwatch monitors a serial line, reassembles the text lines an
// attached device prints, and extracts structured signals from them.
//
// The pipeline is transport bytes -> Reassembler -> LogLine -> Classifier
// -> Sink. A Session runs it for one connection; a Monitor runs sessions
// back to back, waiting for a device to reappear after every disconnect.
//
// # Basic Usage
//
// Monitor the next device that is plugged in, forever:
//
//	mon, err := uartwatch.NewMonitor(transport, discovery, sink,
//	    uartwatch.WithBaudRate(115200),
//	    uartwatch.WithExtractors(uartwatch.MACExtractor{}, uartwatch.HostExtractor{}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = mon.Run(ctx, "", true)
//
// # Line Reassembly
//
// Lines end at '\n' or a bare '\r'. Empty lines are never emitted. A
// "\r\n" pair split across two reads is treated as two terminators, which
// is harmless because the empty segment between them is discarded:
//
//	r := uartwatch.NewReassembler()
//	for line := range r.Feed([]byte("boot ok\r")) {
//	    fmt.Println(line.Seq, line.Text)
//	}
//
// # Extraction
//
// Extractors are configuration rather than separate monitors. With no
// extractors the pipeline is a plain log echo. Lines mentioning "Found AP"
// are scan noise and are never classified.
//
//	c := uartwatch.NewClassifier(uartwatch.MACExtractor{}, uartwatch.HostExtractor{})
//	result := c.Classify(line)
//	if mac, ok := result.MAC(); ok {
//	    fmt.Println("MAC", mac)
//	}
//
// # Error Handling
//
//	var (
//	    ErrTransportFault  // device vanished mid-stream
//	    ErrInvalidConfig   // rejected option
//	    // ... and more
//	)
//
// Open failures are returned as *ConnectError wrapping the transport's
// error, so errors.Is works against the transport's own sentinels.
//
// # Default Configuration
//
//   - BaudRate: 115200
//   - OpenTimeout: 1s
//   - PollInterval: 10ms
//   - DiscoveryInterval: 1s
//   - Extractors: MAC, host
//   - Journal: none
package uartwatch
