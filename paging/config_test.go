package paging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.FrameSize != 1 {
		t.Errorf("Expected frame size 1, got %d", config.FrameSize)
	}

	if config.NumFrames != 3 {
		t.Errorf("Expected 3 frames, got %d", config.NumFrames)
	}

	if config.Policy != "lru" {
		t.Errorf("Expected policy 'lru', got '%s'", config.Policy)
	}

	if len(config.Segments) != 3 || config.Segments[2] != (Segment{Base: 250, Limit: 300}) {
		t.Errorf("Unexpected default segments %+v", config.Segments)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"zero frame size", func(c *Config) { c.FrameSize = 0 }, true},
		{"zero frames", func(c *Config) { c.NumFrames = 0 }, true},
		{"unknown policy", func(c *Config) { c.Policy = "clock" }, true},
		{"uppercase policy", func(c *Config) { c.Policy = "FIFO" }, false},
		{"bad segment limit", func(c *Config) { c.Segments = []Segment{{Base: 0, Limit: 0}} }, true},
		{"negative segment base", func(c *Config) { c.Segments = []Segment{{Base: -1, Limit: 10}} }, true},
		{"no segments", func(c *Config) { c.Segments = nil }, false},
		{"invalid log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"lz4 compression", func(c *Config) { c.EventLogCompression = "lz4" }, false},
		{"unknown compression", func(c *Config) { c.EventLogCompression = "zstd" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if (err != nil) != tt.expectError {
				t.Errorf("Validate() error = %v, expectError %v", err, tt.expectError)
			}
			if err != nil && !IsErrorCode(err, ErrCodeInvalidConfig) {
				t.Errorf("Expected ErrCodeInvalidConfig, got %s", GetErrorCode(err))
			}
		})
	}
}

func TestConfigSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	config := DefaultConfig()
	config.NumFrames = 4
	config.FrameSize = 2
	config.Policy = "fifo"
	config.Segments = []Segment{{Base: 10, Limit: 20}}
	config.EventLogCompression = "snappy"

	if err := config.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadConfigFromFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFromFile failed: %v", err)
	}

	if loaded.NumFrames != 4 || loaded.FrameSize != 2 || loaded.Policy != "fifo" {
		t.Errorf("Unexpected loaded config %+v", loaded)
	}
	if len(loaded.Segments) != 1 || loaded.Segments[0] != (Segment{Base: 10, Limit: 20}) {
		t.Errorf("Unexpected loaded segments %+v", loaded.Segments)
	}
	if loaded.EventLogCompression != "snappy" {
		t.Errorf("Expected snappy compression, got %s", loaded.EventLogCompression)
	}
}

func TestLoadConfigFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfigFromFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{not json"), 0644)
	if _, err := LoadConfigFromFile(bad); err == nil {
		t.Error("Expected error for malformed JSON")
	}

	invalid := filepath.Join(dir, "invalid.json")
	os.WriteFile(invalid, []byte(`{"num_frames": 0}`), 0644)
	if _, err := LoadConfigFromFile(invalid); !IsErrorCode(err, ErrCodeInvalidConfig) {
		t.Errorf("Expected invalid config error, got %v", err)
	}

	// Missing fields keep their defaults
	partial := filepath.Join(dir, "partial.json")
	os.WriteFile(partial, []byte(`{"policy": "fifo"}`), 0644)
	config, err := LoadConfigFromFile(partial)
	if err != nil {
		t.Fatalf("LoadConfigFromFile failed: %v", err)
	}
	if config.NumFrames != 3 || len(config.Segments) != 3 {
		t.Errorf("Expected defaults for missing fields, got %+v", config)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PAGESIM_FRAME_SIZE", "4")
	t.Setenv("PAGESIM_NUM_FRAMES", "8")
	t.Setenv("PAGESIM_POLICY", "fifo")
	t.Setenv("PAGESIM_SEGMENTS", "0:64, 64:128")
	t.Setenv("PAGESIM_EVENT_LOG_COMPRESSION", "lz4")
	t.Setenv("PAGESIM_ENABLE_METRICS", "false")
	t.Setenv("PAGESIM_LOG_LEVEL", "debug")

	config := LoadConfigFromEnv()

	if config.FrameSize != 4 || config.NumFrames != 8 {
		t.Errorf("Expected 8 frames of 4 slots, got %d of %d", config.NumFrames, config.FrameSize)
	}
	if config.Policy != "fifo" {
		t.Errorf("Expected fifo, got %s", config.Policy)
	}
	if len(config.Segments) != 2 || config.Segments[1] != (Segment{Base: 64, Limit: 128}) {
		t.Errorf("Unexpected segments %+v", config.Segments)
	}
	if config.EnableMetrics {
		t.Error("Expected metrics disabled")
	}
	if config.LogLevel != "debug" || config.EventLogCompression != "lz4" {
		t.Errorf("Unexpected log level / compression: %s / %s", config.LogLevel, config.EventLogCompression)
	}
}

func TestLoadConfigFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("PAGESIM_FRAME_SIZE", "many")
	t.Setenv("PAGESIM_SEGMENTS", "0-100")

	config := LoadConfigFromEnv()
	if config.FrameSize != 1 {
		t.Errorf("Expected default frame size, got %d", config.FrameSize)
	}
	if len(config.Segments) != 3 {
		t.Errorf("Expected default segments, got %+v", config.Segments)
	}
}

func TestLoadConfigFromEnvReportsGarbage(t *testing.T) {
	t.Setenv("PAGESIM_FRAME_SIZE", "many")
	t.Setenv("PAGESIM_NUM_FRAMES", "4")
	t.Setenv("PAGESIM_SEGMENTS", "0-100")

	config, errs := LoadConfigFromEnvWithErrors()
	if config.NumFrames != 4 {
		t.Errorf("Expected valid values to still apply, got %d frames", config.NumFrames)
	}
	if len(errs) != 2 {
		t.Fatalf("Expected 2 ignored values, got %d: %v", len(errs), errs)
	}
	for i, name := range []string{"PAGESIM_FRAME_SIZE", "PAGESIM_SEGMENTS"} {
		if !IsErrorCode(errs[i], ErrCodeInputParse) {
			t.Errorf("Expected input parse error, got %v", errs[i])
		}
		if !strings.Contains(errs[i].Error(), name) {
			t.Errorf("Expected error to name %s, got %v", name, errs[i])
		}
	}
}

func TestLoadConfigFromEnvNoErrorsWhenUnset(t *testing.T) {
	t.Setenv("PAGESIM_FRAME_SIZE", "")
	t.Setenv("PAGESIM_NUM_FRAMES", "")
	t.Setenv("PAGESIM_SEGMENTS", "")

	if _, errs := LoadConfigFromEnvWithErrors(); len(errs) != 0 {
		t.Errorf("Expected no errors, got %v", errs)
	}
}

func TestParseSegments(t *testing.T) {
	segs, err := ParseSegments("0:100,100:150,250:300")
	if err != nil {
		t.Fatalf("ParseSegments failed: %v", err)
	}
	if len(segs) != 3 || segs[1] != (Segment{Base: 100, Limit: 150}) {
		t.Errorf("Unexpected segments %+v", segs)
	}

	if _, err := ParseSegments("0:x"); !IsErrorCode(err, ErrCodeInputParse) {
		t.Errorf("Expected input parse error, got %v", err)
	}
}

func TestConfigClone(t *testing.T) {
	config := DefaultConfig()
	clone := config.Clone()

	clone.Segments[0].Limit = 1
	clone.NumFrames = 10

	if config.Segments[0].Limit != 100 {
		t.Error("Clone shares segment storage with the original")
	}
	if config.NumFrames != 3 {
		t.Error("Clone shares fields with the original")
	}
}
