package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Scan   ScanConfig   `yaml:"scan"`
	Log    LogConfig    `yaml:"log"`
	Export ExportConfig `yaml:"export"`
	DB     DBConfig     `yaml:"db"`
}

// ScanConfig holds the grade scan tunables.
type ScanConfig struct {
	// WindowSize is the index offset between the trailing and leading
	// point of the grade window.
	WindowSize int `yaml:"window_size"`
	// MetersPerDegree is the planar projection scale. Accurate only over
	// short spans; see pkg/geo.
	MetersPerDegree Distance `yaml:"meters_per_degree"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// ExportConfig holds default output paths. Empty values disable the sink
// unless overridden on the command line.
type ExportConfig struct {
	CSVPath     string `yaml:"csv_path"`
	GeoJSONPath string `yaml:"geojson_path"`
}

// DBConfig holds database settings. An empty path disables persistence.
type DBConfig struct {
	Path string `yaml:"path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			WindowSize:      5,
			MetersPerDegree: Distance(111000),
		},
		Log: LogConfig{
			Path:  "./logs/gradescan.log",
			Level: "INFO",
		},
		Export: ExportConfig{},
		DB:     DBConfig{},
	}
}

// Load loads the configuration from the given path. If the file does not
// exist, it is created with default values. If it exists, defaults are
// merged with the file's values but nothing is written back, preserving
// user formatting and comments.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		return cfg, nil
	}

	if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# gradescan configuration
# ----------------------
# Distances accept units: m (meters), km (kilometers), nm (nautical miles), ft (feet)

`)
	data = append(header, data...)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}
