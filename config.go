package grove

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the engine configuration. Load one with LoadConfig or start
// from DefaultConfig.
type Config struct {
	Window  WindowConfig  `toml:"window" yaml:"window"`
	Assets  AssetsConfig  `toml:"assets" yaml:"assets"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Debug   bool          `toml:"debug" yaml:"debug"`
}

type WindowConfig struct {
	Title     string `toml:"title" yaml:"title"`
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	TPS       int    `toml:"tps" yaml:"tps"`
	Resizable bool   `toml:"resizable" yaml:"resizable"`
}

// AssetsConfig lists where assets are looked up. Roots are searched first,
// in order, then the blob container if one is configured.
type AssetsConfig struct {
	Roots []string   `toml:"roots" yaml:"roots"`
	Blob  BlobConfig `toml:"blob" yaml:"blob"`
}

// BlobConfig points at an Azure blob container. An empty Container
// disables the blob locator. The connection string falls back to the
// environment variable named by ConnectionStringEnv.
type BlobConfig struct {
	Container           string        `toml:"container" yaml:"container"`
	Prefix              string        `toml:"prefix" yaml:"prefix"`
	ConnectionString    string        `toml:"connection_string" yaml:"connection_string"`
	ConnectionStringEnv string        `toml:"connection_string_env" yaml:"connection_string_env"`
	Timeout             time.Duration `toml:"timeout" yaml:"timeout"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  "grove",
			Width:  800,
			Height: 600,
			TPS:    60,
		},
		Assets: AssetsConfig{
			Roots: []string{"assets"},
			Blob: BlobConfig{
				ConnectionStringEnv: "AZURE_STORAGE_CONNECTION_STRING",
				Timeout:             30 * time.Second,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) file over the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// connectionString resolves the blob connection string.
func (b BlobConfig) connectionString() string {
	if b.ConnectionString != "" {
		return b.ConnectionString
	}
	if b.ConnectionStringEnv != "" {
		return os.Getenv(b.ConnectionStringEnv)
	}
	return ""
}

// NewLogger builds a zap logger: production JSON when Format is "json",
// a colored development console otherwise. Unknown levels fall back to info.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
