package model

import "time"

// Source kinds understood by the project source factory.
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

// AppConfig holds service and CLI configuration.
type AppConfig struct {
	Server ServerConfig `yaml:"server"`
	Source SourceConfig `yaml:"source"`
	Print  PrintConfig  `yaml:"print"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
}

// SourceConfig selects where projects are loaded from.
type SourceConfig struct {
	Kind           string        `yaml:"kind"` // "file", "http" or "postgres"
	ProjectsDir    string        `yaml:"projects_dir"`
	BackendURL     string        `yaml:"backend_url"`
	BackendToken   string        `yaml:"backend_token"`
	BackendTimeout time.Duration `yaml:"backend_timeout"`
	DatabaseURL    string        `yaml:"database_url"`
}

// PrintConfig controls report rendering.
type PrintConfig struct {
	FontPath     string  `yaml:"font_path"` // UTF-8 TTF with Arabic glyphs; empty = core fonts (default)
	WastePercent float64 `yaml:"waste_percent"`
}

// ValidWastePercent reports whether v is a percentage between 0 and 100.
// NaN fails both comparisons and is rejected.
func ValidWastePercent(v float64) bool {
	return v >= 0 && v <= 100
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Addr:           ":8090",
			AllowedOrigins: []string{"http://localhost:5173"},
			ReadTimeout:    15 * time.Second,
			MaxBodyBytes:   4 << 20,
		},
		Source: SourceConfig{
			Kind:           SourceFile,
			ProjectsDir:    "projects",
			BackendTimeout: 10 * time.Second,
		},
		Print: PrintConfig{
			WastePercent: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
