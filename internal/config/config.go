// Package config loads the YAML configuration of the stegenc tool.
package config

import "github.com/blues/specstego"

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the top-level configuration.
type Config struct {
	// LogLevel controls verbosity. Default: info.
	LogLevel LogLevel `yaml:"log_level"`

	// Payload is the text hidden in every frame.
	Payload string `yaml:"payload"`

	// FrameSize is the transform length in samples.
	FrameSize int `yaml:"frame_size"`

	// HopSize is the frame stride. 0 means FrameSize/8.
	HopSize int `yaml:"hop_size"`

	// KFactor overrides the derived K-factor (duration in seconds). 0 derives it.
	KFactor float64 `yaml:"k_factor"`

	// NoiseAmplitude bounds the masking noise; 0 disables masking.
	NoiseAmplitude float64 `yaml:"noise_amplitude"`

	// Seed makes a run reproducible. When nil a seed is drawn and logged.
	Seed *uint64 `yaml:"seed"`

	// Envelope seals the payload with a magic/length header.
	Envelope bool `yaml:"envelope"`

	// Clip limits output samples to [-1, 1].
	Clip bool `yaml:"clip"`

	// OutputBits is the PCM bit depth of the written WAV file.
	OutputBits int `yaml:"output_bits"`

	// MaxWorkers bounds concurrent channel goroutines. 0 means one per channel.
	MaxWorkers int `yaml:"max_workers"`
}

// Default returns the configuration of the reference run.
func Default() *Config {
	return &Config{
		LogLevel:       LogInfo,
		Payload:        specstego.DefaultPayload,
		FrameSize:      specstego.FFTSize,
		HopSize:        specstego.HopSize,
		NoiseAmplitude: specstego.DefaultNoiseAmplitude,
		Clip:           true,
		OutputBits:     16,
	}
}

// Options converts c into core options. seed is used when c.Seed is nil.
func (c *Config) Options(seed uint64) specstego.Options {
	if c.Seed != nil {
		seed = *c.Seed
	}
	return specstego.Options{
		Payload:        []byte(c.Payload),
		FrameSize:      c.FrameSize,
		HopSize:        c.HopSize,
		KFactor:        c.KFactor,
		NoiseAmplitude: c.NoiseAmplitude,
		Seed:           seed,
		Envelope:       c.Envelope,
		Clip:           c.Clip,
		MaxWorkers:     c.MaxWorkers,
	}
}
