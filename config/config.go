// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Bird       BirdConfig       `yaml:"bird"`
	Pipe       PipeConfig       `yaml:"pipe"`
	Ground     GroundConfig     `yaml:"ground"`
	Fitness    FitnessConfig    `yaml:"fitness"`
	Controller ControllerConfig `yaml:"controller"`
	Simulation SimulationConfig `yaml:"simulation"`
	Evolution  EvolutionConfig  `yaml:"evolution"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	PanelWidth int    `yaml:"panel_width"` // control sidebar right of the playfield
	TargetFPS  int    `yaml:"target_fps"`
	Title      string `yaml:"title"`
}

// WorldConfig holds playfield geometry.
type WorldConfig struct {
	GroundY float64 `yaml:"ground_y"` // Top edge of the ground strip
}

// BirdConfig holds the vertical motion model and tilt heuristics.
type BirdConfig struct {
	StartX           float64 `yaml:"start_x"`
	StartY           float64 `yaml:"start_y"`
	JumpVelocity     float64 `yaml:"jump_velocity"`
	Gravity          float64 `yaml:"gravity"`
	MaxDrop          float64 `yaml:"max_drop"`
	RiseBias         float64 `yaml:"rise_bias"`
	MaxRotation      float64 `yaml:"max_rotation"`
	MinRotation      float64 `yaml:"min_rotation"`
	RotationVelocity float64 `yaml:"rotation_velocity"`
	TiltThreshold    float64 `yaml:"tilt_threshold"`
	DiveTilt         float64 `yaml:"dive_tilt"`
	AnimationTime    int     `yaml:"animation_time"`
}

// PipeConfig holds obstacle geometry and motion.
type PipeConfig struct {
	Gap       float64 `yaml:"gap"`
	Velocity  float64 `yaml:"velocity"`
	FirstX    float64 `yaml:"first_x"`
	SpawnX    float64 `yaml:"spawn_x"`
	MinHeight int     `yaml:"min_height"`
	MaxHeight int     `yaml:"max_height"` // exclusive
}

// GroundConfig holds the scrolling floor parameters.
type GroundConfig struct {
	Velocity float64 `yaml:"velocity"`
}

// FitnessConfig holds the reward shaping applied during an episode.
type FitnessConfig struct {
	Survival  float64 `yaml:"survival"`  // per tick alive
	Pass      float64 `yaml:"pass"`      // per pass event, to every living agent
	Collision float64 `yaml:"collision"` // on hitting a pipe
}

// ControllerConfig holds how controller signals are interpreted.
type ControllerConfig struct {
	JumpThreshold float64 `yaml:"jump_threshold"`
}

// SimulationConfig holds episode pacing and limits.
type SimulationConfig struct {
	TickRate int `yaml:"tick_rate"` // ticks per second, 0 = unpaced
	MaxTicks int `yaml:"max_ticks"` // 0 = unlimited
}

// EvolutionConfig holds the generational driver parameters.
type EvolutionConfig struct {
	Population        int            `yaml:"population"`
	Generations       int            `yaml:"generations"`
	FitnessThreshold  float64        `yaml:"fitness_threshold"`
	Elitism           int            `yaml:"elitism"`
	SurvivalThreshold float64        `yaml:"survival_threshold"`
	Seed              int64          `yaml:"seed"`
	Mutation          MutationConfig `yaml:"mutation"`
}

// MutationConfig holds mutation parameters.
type MutationConfig struct {
	Rate     float64 `yaml:"rate"`
	Sigma    float64 `yaml:"sigma"`
	BigRate  float64 `yaml:"big_rate"`
	BigSigma float64 `yaml:"big_sigma"`
}

// TelemetryConfig holds run output settings.
type TelemetryConfig struct {
	OutputDir        string `yaml:"output_dir"`
	HallOfFameSize   int    `yaml:"hall_of_fame_size"`
	StagnationWindow int    `yaml:"stagnation_window"` // generations without a new best
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32  float32 // Screen.Width as float32
	ScreenH32  float32 // Screen.Height as float32
	GroundY32  float32 // World.GroundY as float32
	HeightSpan int     // Pipe.MaxHeight - Pipe.MinHeight
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

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}
	return cfg
}

// Default returns the embedded defaults.
func Default() *Config {
	return MustLoad("")
}

// Validation errors.
var (
	ErrHeightRange   = errors.New("pipe height range is empty")
	ErrLockstep      = errors.New("pipe and ground velocities differ")
	ErrNonPositive   = errors.New("value must be positive")
	ErrSurvivalRatio = errors.New("survival threshold must be in (0, 1]")
)

// Validate checks the invariants the simulation relies on.
func (c *Config) Validate() error {
	if c.Pipe.MaxHeight <= c.Pipe.MinHeight {
		return fmt.Errorf("%w: [%d, %d)", ErrHeightRange, c.Pipe.MinHeight, c.Pipe.MaxHeight)
	}
	// Pipes and floor scroll together.
	if c.Pipe.Velocity != c.Ground.Velocity {
		return fmt.Errorf("%w: pipe %.2f, ground %.2f", ErrLockstep, c.Pipe.Velocity, c.Ground.Velocity)
	}
	if c.Pipe.Velocity <= 0 {
		return fmt.Errorf("pipe.velocity: %w", ErrNonPositive)
	}
	if c.Pipe.Gap <= 0 {
		return fmt.Errorf("pipe.gap: %w", ErrNonPositive)
	}
	if c.World.GroundY <= 0 {
		return fmt.Errorf("world.ground_y: %w", ErrNonPositive)
	}
	if c.Bird.AnimationTime <= 0 {
		return fmt.Errorf("bird.animation_time: %w", ErrNonPositive)
	}
	if c.Evolution.Population <= 0 {
		return fmt.Errorf("evolution.population: %w", ErrNonPositive)
	}
	if c.Evolution.SurvivalThreshold <= 0 || c.Evolution.SurvivalThreshold > 1 {
		return fmt.Errorf("%w: %.2f", ErrSurvivalRatio, c.Evolution.SurvivalThreshold)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.GroundY32 = float32(c.World.GroundY)
	c.Derived.HeightSpan = c.Pipe.MaxHeight - c.Pipe.MinHeight
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
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
