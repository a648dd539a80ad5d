// Package config loads the optional frameclock.yaml runner configuration.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/frameclock/pkg/errors"
)

// Config represents the optional frameclock.yaml configuration.
type Config struct {
	Animation AnimationConfig `yaml:"animation"`
	Surface   SurfaceConfig   `yaml:"surface"`
	Debug     DebugConfig     `yaml:"debug"`
}

// AnimationConfig describes the animation to run.
type AnimationConfig struct {
	// Frames is the number of frames per loop (uniform timing).
	Frames int `yaml:"frames,omitempty"`
	// FrameDurationMs is the uniform per-frame duration.
	FrameDurationMs int `yaml:"frame_duration_ms,omitempty"`
	// DurationsMs lists per-frame durations explicitly; it overrides
	// Frames and FrameDurationMs.
	DurationsMs []int `yaml:"durations_ms,omitempty"`
	// Loops is the loop count; 0 plays forever.
	Loops int `yaml:"loops,omitempty"`
}

// SurfaceConfig sets the render target dimensions.
type SurfaceConfig struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// DebugConfig controls the diagnostics endpoint.
type DebugConfig struct {
	// Port enables the HTTP diagnostics server when non-zero; -1 binds
	// an ephemeral port.
	Port int `yaml:"port,omitempty"`
	// TraceSamples sizes the tick trace ring buffer.
	TraceSamples int `yaml:"trace_samples,omitempty"`
}

// Resolved contains resolved configuration values with defaults applied.
type Resolved struct {
	FrameDurations []time.Duration
	LoopCount      int
	Width          int
	Height         int
	DebugPort      int
	TraceSamples   int
}

// LoadOptional reads frameclock.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "frameclock.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, errors.E("config.LoadOptional", errors.KindConfig,
			fmt.Errorf("read frameclock.yaml: %w", err))
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.E("config.LoadOptional", errors.KindConfig,
			fmt.Errorf("parse frameclock.yaml: %w", err))
	}

	return &cfg, nil
}

// Resolve loads frameclock.yaml (if present) and applies defaults:
// 12 frames of 100ms, infinite loops, a 64x32 surface, tracing on with
// the default buffer size and the debug server off.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve()
}

// Resolve validates the config and applies defaults.
func (c *Config) Resolve() (*Resolved, error) {
	durations, err := c.Animation.frameDurations()
	if err != nil {
		return nil, err
	}
	if c.Animation.Loops < 0 {
		return nil, errors.E("config.Resolve", errors.KindConfig,
			fmt.Errorf("loops must be >= 0, got %d", c.Animation.Loops))
	}

	width, height := c.Surface.Width, c.Surface.Height
	if width < 0 || height < 0 {
		return nil, errors.E("config.Resolve", errors.KindConfig,
			fmt.Errorf("surface dimensions must be >= 0, got %dx%d", width, height))
	}
	if width == 0 {
		width = 64
	}
	if height == 0 {
		height = 32
	}

	return &Resolved{
		FrameDurations: durations,
		LoopCount:      c.Animation.Loops,
		Width:          width,
		Height:         height,
		DebugPort:      c.Debug.Port,
		TraceSamples:   c.Debug.TraceSamples,
	}, nil
}

func (a *AnimationConfig) frameDurations() ([]time.Duration, error) {
	if len(a.DurationsMs) > 0 {
		durations := make([]time.Duration, len(a.DurationsMs))
		for i, ms := range a.DurationsMs {
			if ms < 0 {
				return nil, errors.E("config.Resolve", errors.KindConfig,
					fmt.Errorf("durations_ms[%d] must be >= 0, got %d", i, ms))
			}
			durations[i] = time.Duration(ms) * time.Millisecond
		}
		return durations, nil
	}

	frames := a.Frames
	if frames < 0 {
		return nil, errors.E("config.Resolve", errors.KindConfig,
			fmt.Errorf("frames must be >= 0, got %d", frames))
	}
	if frames == 0 {
		frames = 12
	}
	frameDuration := a.FrameDurationMs
	if frameDuration < 0 {
		return nil, errors.E("config.Resolve", errors.KindConfig,
			fmt.Errorf("frame_duration_ms must be >= 0, got %d", frameDuration))
	}
	if frameDuration == 0 {
		frameDuration = 100
	}

	durations := make([]time.Duration, frames)
	for i := range durations {
		durations[i] = time.Duration(frameDuration) * time.Millisecond
	}
	return durations, nil
}
