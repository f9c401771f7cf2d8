// Package config loads application configuration from a YAML file.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration.
type Config struct {
	Camera    CameraConfig    `yaml:"camera"`
	Detection DetectionConfig `yaml:"detection"`
	Server    ServerConfig    `yaml:"server"`
	PluginDir string          `yaml:"plugin_dir"`
}

// CameraConfig configures frame capture.
type CameraConfig struct {
	DeviceID int `yaml:"device_id"`
	// SceneThreshold is the percentage of pixels that must change between
	// frames before the pipeline leaves idle mode.
	SceneThreshold float64 `yaml:"scene_threshold"`
}

// DetectionConfig configures gesture classification.
type DetectionConfig struct {
	BlinkThreshold   float64       `yaml:"blink_threshold"`
	JawOpenThreshold float64       `yaml:"jaw_open_threshold"`
	SmileThreshold   float64       `yaml:"smile_threshold"`
	Cooldown         time.Duration `yaml:"cooldown"`
}

// ServerConfig configures the settings HTTP server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Camera: CameraConfig{
			DeviceID:       0,
			SceneThreshold: 1.0,
		},
		Detection: DetectionConfig{
			BlinkThreshold:   0.5,
			JawOpenThreshold: 0.4,
			SmileThreshold:   0.6,
			Cooldown:         time.Second,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads the configuration file at path, filling defaults for any
// omitted field.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault loads the configuration file at path if it exists,
// otherwise returns defaults.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// DefaultPath returns the conventional config location, ~/.abhinaya/config.yaml.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(homeDir, ".abhinaya", "config.yaml")
}
