package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
// Fields absent from the file keep their [Default] values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r over [Default] and validates the result.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	if cfg.FrameSize <= 0 || cfg.FrameSize%2 != 0 {
		errs = append(errs, fmt.Errorf("frame_size %d must be a positive even number", cfg.FrameSize))
	}
	if cfg.HopSize < 0 || (cfg.FrameSize > 0 && cfg.HopSize > cfg.FrameSize) {
		errs = append(errs, fmt.Errorf("hop_size %d must be between 0 and frame_size %d", cfg.HopSize, cfg.FrameSize))
	}
	if cfg.KFactor < 0 || math.IsNaN(cfg.KFactor) || math.IsInf(cfg.KFactor, 0) {
		errs = append(errs, fmt.Errorf("k_factor %v must be 0 (derived) or a positive finite number", cfg.KFactor))
	}
	if cfg.NoiseAmplitude < 0 || math.IsNaN(cfg.NoiseAmplitude) || math.IsInf(cfg.NoiseAmplitude, 0) {
		errs = append(errs, fmt.Errorf("noise_amplitude %v must be a non-negative finite number", cfg.NoiseAmplitude))
	}
	if len(cfg.Payload) > math.MaxUint16 && cfg.Envelope {
		errs = append(errs, fmt.Errorf("payload of %d bytes is too long to seal", len(cfg.Payload)))
	}
	switch cfg.OutputBits {
	case 16, 24, 32:
	default:
		errs = append(errs, fmt.Errorf("output_bits %d is invalid; valid values: 16, 24, 32", cfg.OutputBits))
	}
	if cfg.MaxWorkers < 0 {
		errs = append(errs, fmt.Errorf("max_workers %d must not be negative", cfg.MaxWorkers))
	}

	return errors.Join(errs...)
}
