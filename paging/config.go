package paging

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds simulator configuration
type Config struct {
	// Memory Configuration
	FrameSize int    `json:"frame_size"` // Slots per frame
	NumFrames int    `json:"num_frames"` // Number of frames
	Policy    string `json:"policy"`     // Replacement policy (fifo, lru)

	// Segmentation Configuration
	Segments []Segment `json:"segments"`

	// Event Log Configuration
	EventLogPath        string `json:"event_log_path"`        // Export target, empty disables export
	EventLogCompression string `json:"event_log_compression"` // Compression algorithm (none, lz4, snappy)

	// Observability Configuration
	EnableMetrics bool   `json:"enable_metrics"` // Whether to collect session metrics
	LogLevel      string `json:"log_level"`      // Log level (debug, info, warn, error)
}

// DefaultSegments is the segment table used when none is configured
func DefaultSegments() []Segment {
	return []Segment{
		{Base: 0, Limit: 100},
		{Base: 100, Limit: 150},
		{Base: 250, Limit: 300},
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		FrameSize:           1,
		NumFrames:           3,
		Policy:              "lru",
		Segments:            DefaultSegments(),
		EventLogCompression: "none",
		EnableMetrics:       true,
		LogLevel:            "info",
	}
}

// LoadConfigFromFile loads configuration from a JSON file
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	err = json.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigFromEnv loads configuration from environment variables
// Falls back to default values if environment variables are not set
func LoadConfigFromEnv() *Config {
	config, _ := LoadConfigFromEnvWithErrors()
	return config
}

// LoadConfigFromEnvWithErrors is LoadConfigFromEnv that also returns an
// ErrCodeInputParse error for every variable whose value was ignored
func LoadConfigFromEnvWithErrors() (*Config, []error) {
	config := DefaultConfig()
	var errs []error

	// Memory
	if val := os.Getenv("PAGESIM_FRAME_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			config.FrameSize = size
		} else {
			errs = append(errs, ErrParse("PAGESIM_FRAME_SIZE", val, err))
		}
	}

	if val := os.Getenv("PAGESIM_NUM_FRAMES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.NumFrames = n
		} else {
			errs = append(errs, ErrParse("PAGESIM_NUM_FRAMES", val, err))
		}
	}

	if val := os.Getenv("PAGESIM_POLICY"); val != "" {
		config.Policy = val
	}

	// Segmentation
	if val := os.Getenv("PAGESIM_SEGMENTS"); val != "" {
		if segs, err := ParseSegments(val); err == nil {
			config.Segments = segs
		} else {
			errs = append(errs, ErrParse("PAGESIM_SEGMENTS", val, err))
		}
	}

	// Event log
	if val := os.Getenv("PAGESIM_EVENT_LOG_PATH"); val != "" {
		config.EventLogPath = val
	}

	if val := os.Getenv("PAGESIM_EVENT_LOG_COMPRESSION"); val != "" {
		config.EventLogCompression = val
	}

	// Observability
	if val := os.Getenv("PAGESIM_ENABLE_METRICS"); val != "" {
		config.EnableMetrics = val == "true" || val == "1"
	}

	if val := os.Getenv("PAGESIM_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	return config, errs
}

// ParseSegments parses "base:limit,base:limit,..."
func ParseSegments(s string) ([]Segment, error) {
	var segs []Segment
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		baseStr, limitStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, ErrParse("ParseSegments", part, fmt.Errorf("expected base:limit"))
		}
		base, err := strconv.Atoi(strings.TrimSpace(baseStr))
		if err != nil {
			return nil, ErrParse("ParseSegments", part, err)
		}
		limit, err := strconv.Atoi(strings.TrimSpace(limitStr))
		if err != nil {
			return nil, ErrParse("ParseSegments", part, err)
		}
		segs = append(segs, Segment{Base: base, Limit: limit})
	}
	return segs, nil
}

// SaveToFile saves the configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.FrameSize < 1 {
		return ErrInvalidConfiguration("Validate", "frame size must be at least 1")
	}

	if c.NumFrames < 1 {
		return ErrInvalidConfiguration("Validate", "number of frames must be at least 1")
	}

	if _, err := ParsePolicy(c.Policy); err != nil {
		return err
	}

	for i, s := range c.Segments {
		if err := s.validate(); err != nil {
			return ErrInvalidConfiguration("Validate", fmt.Sprintf("segment %d: %v", i, err))
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.LogLevel] {
		return ErrInvalidConfiguration("Validate",
			fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel))
	}

	validCompression := map[string]bool{
		"none":   true,
		"lz4":    true,
		"snappy": true,
	}

	if !validCompression[c.EventLogCompression] {
		return ErrInvalidConfiguration("Validate",
			fmt.Sprintf("invalid event log compression: %s (must be none, lz4, or snappy)", c.EventLogCompression))
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	clone.Segments = make([]Segment, len(c.Segments))
	copy(clone.Segments, c.Segments)
	return &clone
}
