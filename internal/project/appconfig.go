package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/cutprint/internal/model"
	"gopkg.in/yaml.v3"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.cutprint/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".cutprint")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// SaveAppConfig persists an AppConfig to the given path as YAML.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// LoadAppConfig reads an AppConfig from the given path. Keys missing from
// the file keep their default. If the file does not exist, it returns
// DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return model.AppConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if config.Server.AllowedOrigins == nil {
		config.Server.AllowedOrigins = []string{}
	}
	return config, nil
}

// ApplyEnv overrides config values from CUTPRINT_* environment variables
// (and DATABASE_URL). lookup is os.LookupEnv outside of tests.
func ApplyEnv(config *model.AppConfig, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("CUTPRINT_ADDR", &config.Server.Addr)
	str("CUTPRINT_SOURCE", &config.Source.Kind)
	str("CUTPRINT_PROJECTS_DIR", &config.Source.ProjectsDir)
	str("CUTPRINT_BACKEND_URL", &config.Source.BackendURL)
	str("CUTPRINT_BACKEND_TOKEN", &config.Source.BackendToken)
	str("DATABASE_URL", &config.Source.DatabaseURL)
	str("CUTPRINT_FONT_PATH", &config.Print.FontPath)
	str("CUTPRINT_LOG_LEVEL", &config.Log.Level)

	if v, ok := lookup("CUTPRINT_ALLOWED_ORIGINS"); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		config.Server.AllowedOrigins = origins
	}
	if v, ok := lookup("CUTPRINT_WASTE_PERCENT"); ok && v != "" {
		waste, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("CUTPRINT_WASTE_PERCENT: %w", err)
		}
		if !model.ValidWastePercent(waste) {
			return fmt.Errorf("CUTPRINT_WASTE_PERCENT: %q is not a percentage between 0 and 100", v)
		}
		config.Print.WastePercent = waste
	}

	switch config.Source.Kind {
	case model.SourceFile, model.SourceHTTP, model.SourcePostgres:
	default:
		return fmt.Errorf("unknown source kind %q", config.Source.Kind)
	}
	return nil
}
