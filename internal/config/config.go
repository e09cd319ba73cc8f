package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/san-kum/tempograph/internal/filter"
	"github.com/san-kum/tempograph/internal/graph"
	"github.com/san-kum/tempograph/internal/records"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDataDir    = ".tempograph"
	DefaultTickMillis = 1000
	DefaultLogLevel   = "info"
	DefaultNodeColor  = "#69b3a2"
)

// Environment variables overlaid by ApplyEnv.
const (
	EnvDataDir   = "TEMPOGRAPH_DATA"
	EnvLogLevel  = "TEMPOGRAPH_LOG_LEVEL"
	EnvTick      = "TEMPOGRAPH_TICK_MS"
	EnvUnbounded = "TEMPOGRAPH_UNBOUNDED"
)

type Config struct {
	DataDir  string         `yaml:"data_dir"`
	LogLevel string         `yaml:"log_level"`
	Roles    graph.Roles    `yaml:"roles"`
	Parse    ParseConfig    `yaml:"parse"`
	Playback PlaybackConfig `yaml:"playback"`
	Render   RenderConfig   `yaml:"render"`
}

type ParseConfig struct {
	Format    string `yaml:"format"`
	Delimiter string `yaml:"delimiter"`
	Ragged    string `yaml:"ragged"`
	Repair    bool   `yaml:"repair"`
}

type PlaybackConfig struct {
	TickMillis int    `yaml:"tick_ms"`
	Unbounded  string `yaml:"unbounded"`
}

type RenderConfig struct {
	NodeColor string `yaml:"node_color"`
	Theme     string `yaml:"theme"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:  DefaultDataDir,
		LogLevel: DefaultLogLevel,
		Parse: ParseConfig{
			Format: records.FormatAuto,
			Ragged: string(records.RaggedStrict),
		},
		Playback: PlaybackConfig{
			TickMillis: DefaultTickMillis,
			Unbounded:  string(filter.PolicyHidden),
		},
		Render: RenderConfig{
			NodeColor: DefaultNodeColor,
			Theme:     "meadow",
			Width:     960,
			Height:    600,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadEnv reads a .env file if present. A missing file is not an error.
func LoadEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// ApplyEnv overlays environment variables onto cfg.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvDataDir); ok && v != "" {
		c.DataDir = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvTick); ok {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			c.Playback.TickMillis = ms
		}
	}
	if v, ok := os.LookupEnv(EnvUnbounded); ok && v != "" {
		c.Playback.Unbounded = v
	}
}

func (c *Config) TickInterval() time.Duration {
	if c.Playback.TickMillis <= 0 {
		return DefaultTickMillis * time.Millisecond
	}
	return time.Duration(c.Playback.TickMillis) * time.Millisecond
}

// ParseOptions converts the parse section into parser options.
func (c *Config) ParseOptions() (records.Options, error) {
	opts := records.DefaultOptions()
	if c.Parse.Format != "" {
		opts.Format = c.Parse.Format
	}
	ragged, err := records.ParseRagged(c.Parse.Ragged)
	if err != nil {
		return opts, err
	}
	opts.Ragged = ragged
	opts.Repair = c.Parse.Repair

	switch c.Parse.Delimiter {
	case "":
	case `\t`, "tab":
		opts.Delimiter = '\t'
	default:
		opts.Delimiter = []rune(c.Parse.Delimiter)[0]
	}
	return opts, nil
}

func (c *Config) Policy() (filter.Policy, error) {
	return filter.ParsePolicy(c.Playback.Unbounded)
}
