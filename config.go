package uartwatch

import (
	"io"
	"log/slog"
	"time"
)

// Config holds the configuration for a monitor and its sessions
type Config struct {
	BaudRate          int
	OpenTimeout       time.Duration // handed to Transport.Open
	PollInterval      time.Duration // sleep when no bytes are available
	DiscoveryInterval time.Duration // sleep between port list snapshots
	Extractors        []Extractor
	Journal           JournalFactory // nil disables log files
	Logger            *slog.Logger
}

// Option is a functional option for configuring a monitor
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaudRate:          115200,
		OpenTimeout:       time.Second,
		PollInterval:      10 * time.Millisecond,
		DiscoveryInterval: time.Second,
		Extractors:        []Extractor{MACExtractor{}, HostExtractor{}},
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithBaudRate sets the baud rate
func WithBaudRate(rate int) Option {
	return func(c *Config) error {
		if rate <= 0 {
			return ErrInvalidBaudRate
		}
		c.BaudRate = rate
		return nil
	}
}

// WithOpenTimeout sets the timeout passed to the transport on open
func WithOpenTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout < 0 {
			return ErrInvalidConfig
		}
		c.OpenTimeout = timeout
		return nil
	}
}

// WithPollInterval sets how long a session sleeps when no data is waiting.
// It must be positive so the pump never busy-spins.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Config) error {
		if interval <= 0 {
			return ErrInvalidConfig
		}
		c.PollInterval = interval
		return nil
	}
}

// WithDiscoveryInterval sets the delay between port list checks while
// waiting for a device
func WithDiscoveryInterval(interval time.Duration) Option {
	return func(c *Config) error {
		if interval <= 0 {
			return ErrInvalidConfig
		}
		c.DiscoveryInterval = interval
		return nil
	}
}

// WithExtractors replaces the extractor set. No extractors means plain echo.
func WithExtractors(extractors ...Extractor) Option {
	return func(c *Config) error {
		c.Extractors = extractors
		return nil
	}
}

// WithJournal enables a per-session journal
func WithJournal(factory JournalFactory) Option {
	return func(c *Config) error {
		c.Journal = factory
		return nil
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		if logger == nil {
			return ErrInvalidConfig
		}
		c.Logger = logger
		return nil
	}
}

func newConfig(opts []Option) (Config, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return Config{}, err
		}
	}
	return config, nil
}
