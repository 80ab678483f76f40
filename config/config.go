// Package config provides configuration loading and access for the strip engine.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Strip     StripConfig     `yaml:"strip"`
	Noise     NoiseConfig     `yaml:"noise"`
	Effects   EffectsConfig   `yaml:"effects"`
	Rig       RigConfig       `yaml:"rig"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Preview   PreviewConfig   `yaml:"preview"`
	Demo      []DemoStep      `yaml:"demo"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// StripConfig holds physical strip settings.
type StripConfig struct {
	Length    int `yaml:"length"`     // Pixels per strip
	TargetFPS int `yaml:"target_fps"` // Frame rate of the external scheduler
}

// NoiseConfig holds noise generator parameters.
type NoiseConfig struct {
	Seed        int64   `yaml:"seed"`        // Permutation table seed
	Octaves     int     `yaml:"octaves"`     // Fractal layers
	Persistence float64 `yaml:"persistence"` // Amplitude multiplier per octave
	Lacunarity  float64 `yaml:"lacunarity"`  // Frequency multiplier per octave
	Scale       float64 `yaml:"scale"`       // 2D: noise span of the strip at smooth=1; 1D: pixels per cell at smooth=1
	FieldSpeed  float64 `yaml:"field_speed"` // Noise-space units per second at control=1
}

// EffectsConfig holds the parameter ranges effects map control values onto.
type EffectsConfig struct {
	FadeMax          float32    `yaml:"fade_max"`          // Seconds for a full fade at control=1
	FizzleMax        float32    `yaml:"fizzle_max"`        // Seconds for a full fizzle at control=1
	BlurMax          float32    `yaml:"blur_max"`          // Blur rate at control=1
	TickerSpeedMax   float32    `yaml:"ticker_speed_max"`  // Pixels per second at smooth=1
	MaxCycles        float32    `yaml:"max_cycles"`        // Periodic generator cycles at smooth=1
	XorStepMax       int        `yaml:"xor_step_max"`      // Index multiplier for the xor pattern
	DropletThreshold float32    `yaml:"droplet_threshold"` // Rising edge level for droplet spawns
	TrailFade        float32    `yaml:"trail_fade"`        // Background fade seconds for plot/line/meter tails
	Wave             WaveConfig `yaml:"wave"`
}

// WaveConfig holds spring-damper parameters.
type WaveConfig struct {
	SpringMax float32 `yaml:"spring_max"` // Spring constant at smooth=1
	Damping   float32 `yaml:"damping"`    // Velocity damping per second
	Bounce    float32 `yaml:"bounce"`     // Restitution at the [0,1] limits (0 = absorbed)
}

// RigConfig holds multi-strip runner settings.
type RigConfig struct {
	Strips   int  `yaml:"strips"`   // Independent strips to run
	Parallel bool `yaml:"parallel"` // Update strips on separate goroutines
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds between stats log lines
	PerfWindow  int     `yaml:"perf_window"`  // Frames averaged by the perf collector
}

// PreviewConfig holds window settings for the graphical runners.
type PreviewConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	PixelSize int `yaml:"pixel_size"`
}

// DemoStep is one timed entry of the headless demo program.
type DemoStep struct {
	Seconds float64 `yaml:"seconds"`
	Effect  int     `yaml:"effect"`
	Palette int     `yaml:"palette"`
	Control float32 `yaml:"control"`
	Smooth  float32 `yaml:"smooth"`
	Back    string  `yaml:"back"` // Hex color, e.g. "#0000a0"
	Fore    string  `yaml:"fore"`

	BackColor colorful.Color `yaml:"-"`
	ForeColor colorful.Color `yaml:"-"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FrameInterval time.Duration // 1/TargetFPS
	DemoLength    time.Duration // Sum of demo step durations
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived validates the loaded values and calculates derived ones.
func (c *Config) computeDerived() error {
	if c.Strip.Length <= 0 {
		return fmt.Errorf("strip.length must be positive, got %d", c.Strip.Length)
	}
	if c.Strip.TargetFPS <= 0 {
		c.Strip.TargetFPS = 100
	}
	if c.Rig.Strips <= 0 {
		c.Rig.Strips = 1
	}
	if c.Noise.Octaves <= 0 {
		c.Noise.Octaves = 1
	}
	if c.Telemetry.PerfWindow <= 0 {
		c.Telemetry.PerfWindow = c.Strip.TargetFPS
	}

	c.Derived.FrameInterval = time.Second / time.Duration(c.Strip.TargetFPS)
	c.Derived.DemoLength = 0

	for i := range c.Demo {
		step := &c.Demo[i]
		back, err := colorful.Hex(step.Back)
		if err != nil {
			return fmt.Errorf("demo step %d: parsing back color %q: %w", i, step.Back, err)
		}
		fore, err := colorful.Hex(step.Fore)
		if err != nil {
			return fmt.Errorf("demo step %d: parsing fore color %q: %w", i, step.Fore, err)
		}
		step.BackColor = back
		step.ForeColor = fore
		c.Derived.DemoLength += time.Duration(step.Seconds * float64(time.Second))
	}
	return nil
}

// DemoAt returns the demo step active at the given offset into the
// (looping) demo program, or false when the program is empty.
func (c *Config) DemoAt(elapsed time.Duration) (DemoStep, bool) {
	if len(c.Demo) == 0 || c.Derived.DemoLength <= 0 {
		return DemoStep{}, false
	}
	offset := elapsed % c.Derived.DemoLength
	for _, step := range c.Demo {
		d := time.Duration(step.Seconds * float64(time.Second))
		if offset < d {
			return step, true
		}
		offset -= d
	}
	return c.Demo[len(c.Demo)-1], true
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
