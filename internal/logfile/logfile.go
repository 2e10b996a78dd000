// Package logfile writes one timestamped log file per monitoring session.
package logfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/allbin/uartwatch"
)

const (
	fileLayout = "20060102-150405"
	lineLayout = "2006-01-02 15:04:05.000"
)

var (
	rule = strings.Repeat("=", 60)

	// now is replaced in tests
	now = time.Now
)

// Writer is a session log file. It implements uartwatch.Journal.
type Writer struct {
	mu     sync.Mutex
	file   *os.File
	buf    *bufio.Writer
	path   string
	closed bool
}

var _ uartwatch.Journal = (*Writer)(nil)

// Factory returns a journal factory creating files under dir. Each new file
// is announced on logger at info level.
func Factory(dir string, logger *slog.Logger) uartwatch.JournalFactory {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return func(port, sessionID string) (uartwatch.Journal, error) {
		w, err := Create(dir, port, sessionID)
		if err != nil {
			return nil, err
		}
		logger.Info("logging to", "path", w.Path(), "session", sessionID)
		return w, nil
	}
}

// Create opens a new log file in dir named after the current time and writes
// the session header. dir is created if missing; an existing file is never
// overwritten, a -N suffix is added instead.
func Create(dir, port, sessionID string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	started := now()
	base := started.Format(fileLayout)

	var (
		file *os.File
		path string
		err  error
	)
	for n := 0; ; n++ {
		path = filepath.Join(dir, base+".log")
		if n > 0 {
			path = filepath.Join(dir, fmt.Sprintf("%s-%d.log", base, n))
		}
		file, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("create log file: %w", err)
		}
	}

	w := &Writer{file: file, buf: bufio.NewWriter(file), path: path}
	fmt.Fprintf(w.buf, "Session started: %s\n", started.Format(time.RFC3339))
	fmt.Fprintf(w.buf, "Port: %s\n", port)
	fmt.Fprintf(w.buf, "Session: %s\n", sessionID)
	fmt.Fprintln(w.buf, rule)
	if err := w.buf.Flush(); err != nil {
		file.Close()
		return nil, fmt.Errorf("write log header: %w", err)
	}
	return w, nil
}

// Path returns the file's location
func (w *Writer) Path() string {
	return w.path
}

// Record appends one line and flushes it to disk
func (w *Writer) Record(line uartwatch.LogLine) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return os.ErrClosed
	}
	ts := line.Time
	if ts.IsZero() {
		ts = now()
	}
	fmt.Fprintf(w.buf, "[%s] %s\n", ts.Format(lineLayout), line.Text)
	return w.buf.Flush()
}

// Close writes the footer and closes the file. Subsequent calls are no-ops.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	fmt.Fprintln(w.buf, rule)
	fmt.Fprintf(w.buf, "Session ended: %s\n", now().Format(time.RFC3339))
	return errors.Join(w.buf.Flush(), w.file.Close())
}
