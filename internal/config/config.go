package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Editor  EditorConfig  `json:"editor" yaml:"editor"`
	Export  ExportConfig  `json:"export" yaml:"export"`
	Suggest SuggestConfig `json:"suggest" yaml:"suggest"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// EditorConfig holds configuration for the interactive session
type EditorConfig struct {
	ResizeHandleSize float64  `json:"resize_handle_size" yaml:"resize_handle_size"`
	DeleteHandleSize float64  `json:"delete_handle_size" yaml:"delete_handle_size"`
	PreviewSize      int      `json:"preview_size" yaml:"preview_size"`
	LineWidth        float64  `json:"line_width" yaml:"line_width"`
	SupportedFormats []string `json:"supported_formats" yaml:"supported_formats"`
}

// ExportConfig holds configuration for crop output
type ExportConfig struct {
	Format    string `json:"format" yaml:"format"`
	Quality   int    `json:"quality" yaml:"quality"`
	Lossless  bool   `json:"lossless" yaml:"lossless"`
	Prefix    string `json:"prefix" yaml:"prefix"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// SuggestConfig holds configuration for crop suggestions
type SuggestConfig struct {
	Backend       string  `json:"backend" yaml:"backend"` // none, saliency, ollama or llamacpp
	OllamaURL     string  `json:"ollama_url" yaml:"ollama_url"`
	LlamaCppURL   string  `json:"llamacpp_url" yaml:"llamacpp_url"`
	Model         string  `json:"model" yaml:"model"`
	MaxDimension  int     `json:"max_dimension" yaml:"max_dimension"`
	Padding       float64 `json:"padding" yaml:"padding"`
	MinConfidence float64 `json:"min_confidence" yaml:"min_confidence"`
	MaxRegions    int     `json:"max_regions" yaml:"max_regions"`
	TimeoutSec    int     `json:"timeout_sec" yaml:"timeout_sec"`
	Prompt        string  `json:"prompt,omitempty" yaml:"prompt,omitempty"` // empty uses the built-in face locator prompt
	CheckVision   bool    `json:"check_vision" yaml:"check_vision"`
}

// LoggingConfig holds configuration for the application logger
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
	Source bool   `json:"source" yaml:"source"`
	File   string `json:"file" yaml:"file"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			ResizeHandleSize: 10,
			DeleteHandleSize: 10,
			PreviewSize:      100,
			LineWidth:        2,
			SupportedFormats: []string{"jpeg", "png", "gif", "webp"},
		},
		Export: ExportConfig{
			Format:    "png",
			Quality:   90,
			Prefix:    "crop",
			OutputDir: "./crops",
		},
		Suggest: SuggestConfig{
			Backend:       "none",
			OllamaURL:     "http://localhost:11434",
			LlamaCppURL:   "http://localhost:8080",
			Model:         "llava",
			MaxDimension:  1024,
			Padding:       0.25,
			MinConfidence: 0.3,
			MaxRegions:    3,
			TimeoutSec:    120,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadFromFile loads configuration from a JSON or YAML file, picked by
// extension. Fields missing from the file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if isYAML(filename) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration as JSON or YAML, picked by extension
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(filename) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Editor.ResizeHandleSize <= 0 {
		return fmt.Errorf("editor.resize_handle_size must be positive")
	}

	if c.Editor.DeleteHandleSize <= 0 {
		return fmt.Errorf("editor.delete_handle_size must be positive")
	}

	if c.Editor.PreviewSize < 1 {
		return fmt.Errorf("editor.preview_size must be positive")
	}

	if c.Editor.LineWidth <= 0 {
		return fmt.Errorf("editor.line_width must be positive")
	}

	switch strings.ToLower(c.Export.Format) {
	case "png", "jpg", "jpeg", "webp":
	default:
		return fmt.Errorf("export.format must be one of png, jpg, webp")
	}

	if c.Export.Quality < 1 || c.Export.Quality > 100 {
		return fmt.Errorf("export.quality must be between 1 and 100")
	}

	switch c.Suggest.Backend {
	case "", "none", "saliency", "ollama", "llamacpp":
	default:
		return fmt.Errorf("suggest.backend must be one of none, saliency, ollama, llamacpp")
	}

	if c.Suggest.Padding < 0 || c.Suggest.Padding > 1 {
		return fmt.Errorf("suggest.padding must be between 0 and 1")
	}

	if c.Suggest.MinConfidence < 0 || c.Suggest.MinConfidence > 1 {
		return fmt.Errorf("suggest.min_confidence must be between 0 and 1")
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "circlecrop", "config.json")
}

func isYAML(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
