// Package config loads and validates brandkit configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kferr/go-brandkit/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits for multi-tenant safety.
const (
	MaxURLLength      = 2048 // Browser limit
	MaxTemplateLength = 50   // "onepager", "story", "linkedin"
	MaxFormatLength   = 10   // "html", "png", "pdf"
	MaxModelLength    = 100  // Image model identifier
	MaxPathLength     = 4096 // Filesystem limit
)

// Config holds all configuration for asset rendering.
type Config struct {
	Output     OutputConfig     `yaml:"output"`
	Render     RenderConfig     `yaml:"render"`
	Remote     RemoteConfig     `yaml:"remote"`
	Images     ImagesConfig     `yaml:"images"`
	Components ComponentsConfig `yaml:"components"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = current directory)
}

// RenderConfig defines default render parameters. Zero values fall back to
// library defaults (onepager, png, 1200x1600 at scale 2).
type RenderConfig struct {
	Template string `yaml:"template"`
	Format   string `yaml:"format"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Scale    int    `yaml:"scale"`
}

// RemoteConfig defines the hosted generation engine. The credential is read
// from the named environment variable, never stored in the file.
type RemoteConfig struct {
	URL       string `yaml:"url"`
	APIKeyEnv string `yaml:"apiKeyEnv"` // Environment variable holding the credential
}

// ImagesConfig defines on-demand image generation options.
type ImagesConfig struct {
	APIKeyEnv string `yaml:"apiKeyEnv"`
	Model     string `yaml:"model"`
}

// ComponentsConfig defines component artifact discovery.
type ComponentsConfig struct {
	Dir string `yaml:"dir"` // Directory scanned for *.component.yaml (empty = disabled)
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.template", c.Render.Template, MaxTemplateLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.format", c.Render.Format, MaxFormatLength); err != nil {
		return err
	}
	if c.Render.Format != "" {
		switch strings.ToLower(c.Render.Format) {
		case "html", "png", "pdf":
		default:
			return fmt.Errorf("render.format: invalid value %q (must be html, png, or pdf)", c.Render.Format)
		}
	}
	if c.Render.Scale != 0 && (c.Render.Scale < 1 || c.Render.Scale > 3) {
		return fmt.Errorf("render.scale: must be between 1 and 3, got %d", c.Render.Scale)
	}
	if c.Render.Width < 0 || c.Render.Height < 0 {
		return fmt.Errorf("render dimensions must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if err := validateFieldLength("remote.url", c.Remote.URL, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("images.model", c.Images.Model, MaxModelLength); err != nil {
		return err
	}
	if err := validateFieldLength("components.dir", c.Components.Dir, MaxPathLength); err != nil {
		return err
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration relying on library defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/brandkit/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "brandkit", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
