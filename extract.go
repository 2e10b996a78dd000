package uartwatch

import (
	"fmt"
	"regexp"
	"strings"
)

// SignalKind identifies what an extractor found in a line
type SignalKind int

const (
	SignalMAC SignalKind = iota
	SignalHost
)

func (k SignalKind) String() string {
	switch k {
	case SignalMAC:
		return "mac"
	case SignalHost:
		return "host"
	default:
		return "unknown"
	}
}

// Environment is the deployment a host reference points at
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvMain Environment = "main"
)

// Signal is one structured value extracted from a line
type Signal struct {
	Kind        SignalKind
	Value       string      // uppercase MAC, or the host name
	Environment Environment // set for SignalHost only
}

// Classification is a line together with the signals found in it.
// Signals are ordered MAC first; an empty slice means nothing was found.
type Classification struct {
	Line    LogLine
	Signals []Signal
}

// Found reports whether any signal was extracted
func (c Classification) Found() bool {
	return len(c.Signals) > 0
}

// MAC returns the extracted MAC address, if any
func (c Classification) MAC() (string, bool) {
	for _, s := range c.Signals {
		if s.Kind == SignalMAC {
			return s.Value, true
		}
	}
	return "", false
}

// Host returns the extracted host reference, if any
func (c Classification) Host() (Signal, bool) {
	for _, s := range c.Signals {
		if s.Kind == SignalHost {
			return s, true
		}
	}
	return Signal{}, false
}

// Extractor finds signals of a single kind in a line of text
type Extractor interface {
	Kind() SignalKind
	Extract(text string) (Signal, bool)
}

// noiseMarker marks scan-result lines that mention many unrelated access
// points and hosts.
const noiseMarker = "Found AP"

var (
	macPattern  = regexp.MustCompile(`wifi:mode\s*:\s*sta\s*\(\s*([0-9A-Fa-f]{2}(?::[0-9A-Fa-f]{2}){5})\s*\)`)
	hostPattern = regexp.MustCompile(`[a-zA-Z0-9-]+(?:\.[a-zA-Z0-9-]+){2,}`)
)

// MACExtractor finds the station MAC printed by the wifi driver, e.g.
// "wifi:mode : sta (aa:bb:cc:dd:ee:ff)".
type MACExtractor struct{}

func (MACExtractor) Kind() SignalKind { return SignalMAC }

func (MACExtractor) Extract(text string) (Signal, bool) {
	m := macPattern.FindStringSubmatch(text)
	if m == nil {
		return Signal{}, false
	}
	return Signal{Kind: SignalMAC, Value: strings.ToUpper(m[1])}, true
}

// HostExtractor finds the first dotted name with at least three labels
type HostExtractor struct{}

func (HostExtractor) Kind() SignalKind { return SignalHost }

func (HostExtractor) Extract(text string) (Signal, bool) {
	host := hostPattern.FindString(text)
	if host == "" {
		return Signal{}, false
	}
	return Signal{Kind: SignalHost, Value: host, Environment: ClassifyEnvironment(host)}, true
}

// ClassifyEnvironment maps a host to "dev" when it mentions dev anywhere
func ClassifyEnvironment(host string) Environment {
	if strings.Contains(strings.ToLower(host), "dev") {
		return EnvDev
	}
	return EnvMain
}

// Classifier runs a configured set of extractors over each line.
// It holds no per-line state and is safe for concurrent use.
type Classifier struct {
	extractors []Extractor
}

// NewClassifier returns a classifier running the given extractors. The
// resulting signals are ordered by kind, so a MAC always precedes a host
// regardless of the order extractors are passed in.
func NewClassifier(extractors ...Extractor) *Classifier {
	ordered := make([]Extractor, 0, len(extractors))
	for _, kind := range []SignalKind{SignalMAC, SignalHost} {
		for _, e := range extractors {
			if e.Kind() == kind {
				ordered = append(ordered, e)
			}
		}
	}
	return &Classifier{extractors: ordered}
}

// Classify extracts every configured signal from line
func (c *Classifier) Classify(line LogLine) Classification {
	result := Classification{Line: line}
	if len(c.extractors) == 0 || strings.Contains(line.Text, noiseMarker) {
		return result
	}

	for _, e := range c.extractors {
		if s, ok := e.Extract(line.Text); ok {
			result.Signals = append(result.Signals, s)
		}
	}
	return result
}

// ParseExtractors builds an extractor set from names: "mac", "host", or
// "none" for plain echo. Names are case-insensitive.
func ParseExtractors(names []string) ([]Extractor, error) {
	var extractors []Extractor
	seen := make(map[string]bool)
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "domain" {
			name = "host"
		}
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		switch name {
		case "mac":
			extractors = append(extractors, MACExtractor{})
		case "host":
			extractors = append(extractors, HostExtractor{})
		case "none":
		default:
			return nil, fmt.Errorf("%w: %s (valid: mac, host, none)", ErrUnknownExtractor, name)
		}
	}
	return extractors, nil
}

// FormatNotice renders the user-facing notification for a classification.
// It returns nil when nothing was found.
func FormatNotice(c Classification) []string {
	mac, hasMAC := c.MAC()
	host, hasHost := c.Host()

	switch {
	case hasMAC:
		notice := []string{
			fmt.Sprintf("WiFi MAC Address: %s", mac),
			fmt.Sprintf("    Log: %s", c.Line.Text),
		}
		if hasHost {
			notice = append(notice, fmt.Sprintf("    → host: %s, env: %s", host.Value, host.Environment))
		}
		return notice
	case hasHost:
		return []string{
			fmt.Sprintf("[*] Domain found: %s, env: %s", host.Value, host.Environment),
			fmt.Sprintf("    Log: %s", c.Line.Text),
		}
	default:
		return nil
	}
}
