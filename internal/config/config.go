// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ik5/voxclean/filter"
)

// Encode modes.
const (
	ModeRealtime = "realtime"
	ModeOffline  = "offline"
)

// Config is the complete voxclean configuration.
type Config struct {
	Processing filter.Options `yaml:"processing"`
	Decode     DecodeConfig   `yaml:"decode"`
	Encode     EncodeConfig   `yaml:"encode"`
	Convert    ConvertConfig  `yaml:"convert"`
	Logging    LoggingConfig  `yaml:"logging"`
}

// DecodeConfig controls how input clips become PCM.
type DecodeConfig struct {
	SampleRate int `yaml:"sample_rate"` // 0 keeps the clip's own rate
}

// EncodeConfig selects the re-encode bridge.
type EncodeConfig struct {
	Mode     string `yaml:"mode"`
	ChunkMS  int    `yaml:"chunk_ms"`
	BitDepth int    `yaml:"bit_depth"`
}

// ConvertConfig configures the external transcoder.
type ConvertConfig struct {
	FFmpegPath string `yaml:"ffmpeg_path"`
	Timeout    int    `yaml:"timeout"` // seconds, 0 = no limit
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Processing: filter.DefaultOptions(),
		Encode: EncodeConfig{
			Mode:     ModeRealtime,
			ChunkMS:  20,
			BitDepth: 16,
		},
		Convert: ConvertConfig{
			FFmpegPath: "ffmpeg",
			Timeout:    60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load reads path on top of Default, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := validateProcessing(c.Processing); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	if err := c.Decode.Validate(); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	if err := c.Encode.Validate(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := c.Convert.Validate(); err != nil {
		return fmt.Errorf("convert config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

func validateProcessing(o filter.Options) error {
	if o.NoiseReduction < 0 || o.NoiseReduction > 1 {
		return fmt.Errorf("noise_reduction must be between 0 and 1, got %g", o.NoiseReduction)
	}

	if o.Gain < 0 || o.Gain > 2 {
		return fmt.Errorf("gain must be between 0 and 2, got %g", o.Gain)
	}

	if o.Clarity < 0 || o.Clarity > 1 {
		return fmt.Errorf("clarity must be between 0 and 1, got %g", o.Clarity)
	}

	return nil
}

func (d *DecodeConfig) Validate() error {
	if d.SampleRate < 0 || d.SampleRate > 384000 {
		return fmt.Errorf("sample_rate must be 0 or between 1 and 384000, got %d", d.SampleRate)
	}

	return nil
}

func (e *EncodeConfig) Validate() error {
	switch e.Mode {
	case ModeRealtime, ModeOffline:
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", ModeRealtime, ModeOffline, e.Mode)
	}

	if e.ChunkMS < 1 || e.ChunkMS > 1000 {
		return fmt.Errorf("chunk_ms must be between 1 and 1000, got %d", e.ChunkMS)
	}

	switch e.BitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("bit_depth must be 16, 24 or 32, got %d", e.BitDepth)
	}

	return nil
}

// ChunkDuration is ChunkMS as a time.Duration.
func (e *EncodeConfig) ChunkDuration() time.Duration {
	return time.Duration(e.ChunkMS) * time.Millisecond
}

func (c *ConvertConfig) Validate() error {
	if c.FFmpegPath == "" {
		return fmt.Errorf("ffmpeg_path cannot be empty")
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative, got %d", c.Timeout)
	}

	return nil
}

// TimeoutDuration is Timeout as a time.Duration.
func (c *ConvertConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (l *LoggingConfig) Validate() error {
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of debug, info, warn, error, got %q", l.Level)
	}

	switch l.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format must be text or json, got %q", l.Format)
	}

	return nil
}
