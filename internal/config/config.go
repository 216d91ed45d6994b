// Package config provides configuration management for the reels daemon.
// Configuration is loaded from an optional TOML file, then overridden by
// environment variables with sensible defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	// Default values
	DefaultPort     = 8790
	DefaultLogLevel = "info"
	DefaultDataDir  = ".reels"

	// Environment variable names
	EnvPort       = "REELS_PORT"
	EnvLogLevel   = "REELS_LOG_LEVEL"
	EnvDataDir    = "REELS_DATA_DIR"
	EnvConfigPath = "REELS_CONFIG"
	EnvAssetsDir  = "REELS_ASSETS_DIR"
	EnvFFmpeg     = "REELS_FFMPEG"
	EnvFFprobe    = "REELS_FFPROBE"
	EnvTTSBaseURL = "REELS_TTS_BASE_URL"
	EnvTTSAPIKey  = "REELS_TTS_API_KEY"

	// Database filename
	DBFilename = "reels.db"

	// Config filename looked up inside the data dir when REELS_CONFIG is unset
	ConfigFilename = "reels.toml"

	// Engine defaults
	DefaultFFmpegBinary  = "ffmpeg"
	DefaultFFprobeBinary = "ffprobe"

	// Timeout defaults (seconds)
	DefaultProbeTimeout     = 20
	DefaultSynthesisTimeout = 120
	DefaultComposeTimeout   = 600

	// DefaultMaxDurationSeconds caps generated reels when a request does not
	// carry its own limit. 0 means no truncation.
	DefaultMaxDurationSeconds = 0
)

// Engine holds paths and timeouts for the external rendering binaries.
type Engine struct {
	FFmpegPath        string   `toml:"ffmpeg_path"`
	FFprobePath       string   `toml:"ffprobe_path"`
	ProbeTimeoutS     int      `toml:"probe_timeout_s"`
	ComposeTimeoutS   int      `toml:"compose_timeout_s"`
	FontCandidates    []string `toml:"font_candidates"`
	AssetsDir         string   `toml:"assets_dir"`
	DefaultBackground string   `toml:"default_background"`
}

// TTS holds the speech-synthesis provider connection settings.
type TTS struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_s"`
}

// Source holds the text-acquisition settings.
type Source struct {
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_s"`
}

// fileConfig mirrors the TOML layout of reels.toml.
type fileConfig struct {
	Port               int     `toml:"port"`
	LogLevel           string  `toml:"log_level"`
	DataDir            string  `toml:"data_dir"`
	MaxDurationSeconds float64 `toml:"max_duration_s"`
	Engine             Engine  `toml:"engine"`
	TTS                TTS     `toml:"tts"`
	Source             Source  `toml:"source"`
}

// Config defines the application configuration interface
type Config interface {
	Port() int
	LogLevel() string
	DataDir() string
	DBPath() string
	ArtifactsDir() string
	MaxDurationSeconds() float64
	Engine() Engine
	TTS() TTS
	Source() Source
	ProbeTimeout() time.Duration
	SynthesisTimeout() time.Duration
	ComposeTimeout() time.Duration
}

// EnvConfig reads configuration from a TOML file plus environment overrides
type EnvConfig struct {
	port               int
	logLevel           string
	dataDir            string
	maxDurationSeconds float64

	engine Engine
	tts    TTS
	source Source
}

// New loads configuration: defaults, then the TOML file if one exists, then
// environment variable overrides.
func New() (*EnvConfig, error) {
	cfg := &EnvConfig{
		port:               DefaultPort,
		logLevel:           DefaultLogLevel,
		dataDir:            defaultDataDir(),
		maxDurationSeconds: DefaultMaxDurationSeconds,
		engine: Engine{
			FFmpegPath:        DefaultFFmpegBinary,
			FFprobePath:       DefaultFFprobeBinary,
			ProbeTimeoutS:     DefaultProbeTimeout,
			ComposeTimeoutS:   DefaultComposeTimeout,
			FontCandidates:    DefaultFontCandidates(),
			DefaultBackground: "minecraft",
		},
		tts: TTS{
			TimeoutSeconds: DefaultSynthesisTimeout,
		},
		source: Source{
			UserAgent:      "reddit2reels/0.1",
			TimeoutSeconds: 30,
		},
	}

	if dd := os.Getenv(EnvDataDir); dd != "" {
		cfg.dataDir = dd
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.engine.AssetsDir == "" {
		cfg.engine.AssetsDir = filepath.Join(cfg.dataDir, "backgrounds")
	}

	return cfg, nil
}

func (c *EnvConfig) loadFile() error {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = filepath.Join(c.dataDir, ConfigFilename)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Port != 0 {
		c.port = fc.Port
	}
	if fc.LogLevel != "" {
		c.logLevel = fc.LogLevel
	}
	if fc.DataDir != "" {
		c.dataDir = fc.DataDir
	}
	if fc.MaxDurationSeconds > 0 {
		c.maxDurationSeconds = fc.MaxDurationSeconds
	}
	if fc.Engine.FFmpegPath != "" {
		c.engine.FFmpegPath = fc.Engine.FFmpegPath
	}
	if fc.Engine.FFprobePath != "" {
		c.engine.FFprobePath = fc.Engine.FFprobePath
	}
	if fc.Engine.ProbeTimeoutS > 0 {
		c.engine.ProbeTimeoutS = fc.Engine.ProbeTimeoutS
	}
	if fc.Engine.ComposeTimeoutS > 0 {
		c.engine.ComposeTimeoutS = fc.Engine.ComposeTimeoutS
	}
	if len(fc.Engine.FontCandidates) > 0 {
		c.engine.FontCandidates = fc.Engine.FontCandidates
	}
	if fc.Engine.AssetsDir != "" {
		c.engine.AssetsDir = fc.Engine.AssetsDir
	}
	if fc.Engine.DefaultBackground != "" {
		c.engine.DefaultBackground = fc.Engine.DefaultBackground
	}
	if fc.TTS.BaseURL != "" {
		c.tts.BaseURL = fc.TTS.BaseURL
	}
	if fc.TTS.APIKey != "" {
		c.tts.APIKey = fc.TTS.APIKey
	}
	if fc.TTS.TimeoutSeconds > 0 {
		c.tts.TimeoutSeconds = fc.TTS.TimeoutSeconds
	}
	if fc.Source.UserAgent != "" {
		c.source.UserAgent = fc.Source.UserAgent
	}
	if fc.Source.TimeoutSeconds > 0 {
		c.source.TimeoutSeconds = fc.Source.TimeoutSeconds
	}

	return nil
}

func (c *EnvConfig) applyEnv() error {
	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid %s: port must be between 1 and 65535", EnvPort)
		}
		c.port = port
	}

	if ll := os.Getenv(EnvLogLevel); ll != "" {
		c.logLevel = ll
	}
	if ad := os.Getenv(EnvAssetsDir); ad != "" {
		c.engine.AssetsDir = ad
	}
	if f := os.Getenv(EnvFFmpeg); f != "" {
		c.engine.FFmpegPath = f
	}
	if f := os.Getenv(EnvFFprobe); f != "" {
		c.engine.FFprobePath = f
	}
	if u := os.Getenv(EnvTTSBaseURL); u != "" {
		c.tts.BaseURL = u
	}
	if k := os.Getenv(EnvTTSAPIKey); k != "" {
		c.tts.APIKey = k
	}

	return nil
}

// Port returns the HTTP server port
func (c *EnvConfig) Port() int {
	return c.port
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

// DataDir returns the data directory path
func (c *EnvConfig) DataDir() string {
	return c.dataDir
}

// DBPath returns the full path to the SQLite database file
func (c *EnvConfig) DBPath() string {
	return filepath.Join(c.dataDir, DBFilename)
}

// ArtifactsDir returns the base directory for per-reel working directories
func (c *EnvConfig) ArtifactsDir() string {
	return filepath.Join(c.dataDir, "artifacts")
}

// MaxDurationSeconds returns the default output duration cap (0 = uncapped)
func (c *EnvConfig) MaxDurationSeconds() float64 {
	return c.maxDurationSeconds
}

func (c *EnvConfig) Engine() Engine {
	return c.engine
}

func (c *EnvConfig) TTS() TTS {
	return c.tts
}

func (c *EnvConfig) Source() Source {
	return c.source
}

func (c *EnvConfig) ProbeTimeout() time.Duration {
	return time.Duration(c.engine.ProbeTimeoutS) * time.Second
}

func (c *EnvConfig) SynthesisTimeout() time.Duration {
	return time.Duration(c.tts.TimeoutSeconds) * time.Second
}

func (c *EnvConfig) ComposeTimeout() time.Duration {
	return time.Duration(c.engine.ComposeTimeoutS) * time.Second
}

// DefaultFontCandidates returns the prioritized font search list used when
// the config does not name its own.
func DefaultFontCandidates() []string {
	return []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
		"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
		"/System/Library/Fonts/Helvetica.ttc",
		"C:\\Windows\\Fonts\\arialbd.ttf",
	}
}

// defaultDataDir returns the default data directory path
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
