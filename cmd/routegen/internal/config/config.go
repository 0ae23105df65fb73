// Package config loads the optional routegen defaults file.
//
// Without any file or environment variable the tool behaves exactly as its
// built-in defaults describe. Sources, highest priority first:
//  1. Environment variables with the ROUTEGEN_ prefix (ROUTEGEN_DEFAULTS_TYPESCRIPT=true)
//  2. The file given by --config or ROUTEGEN_CONFIG
//  3. .routegen.yaml in the working directory
//  4. [DefaultConfig]
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/recera/routegen/cmd/routegen/internal/template"
)

const (
	// FileName is the defaults file looked up in the working directory.
	FileName = ".routegen.yaml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "ROUTEGEN"

	// DefaultAPIDir is where route folders live below the base directory.
	DefaultAPIDir = "app/api"
)

// ErrConfigExists is returned by Write when the target file is already there.
var ErrConfigExists = errors.New("config file already exists")

// Config is the root configuration.
type Config struct {
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
}

// DefaultsConfig pre-fills wizard answers on first visit.
type DefaultsConfig struct {
	// Method is the preselected HTTP verb. Default: GET
	Method string `mapstructure:"method" yaml:"method"`

	// Template is the preselected template key. Default: basic
	Template string `mapstructure:"template" yaml:"template"`

	// TypeScript is the preselected answer of the TypeScript question.
	TypeScript bool `mapstructure:"typescript" yaml:"typescript"`

	// BaseDir is the suggested base directory. Empty means the working directory.
	BaseDir string `mapstructure:"base_dir" yaml:"base_dir"`
}

// OutputConfig controls where and how results are written.
type OutputConfig struct {
	// APIDir is the route root relative to the base directory. Default: app/api
	APIDir string `mapstructure:"api_dir" yaml:"api_dir"`

	// Color enables styled terminal output when stdout is a terminal.
	Color bool `mapstructure:"color" yaml:"color"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Method:   template.Methods[0],
			Template: template.Keys()[0],
		},
		Output: OutputConfig{
			APIDir: DefaultAPIDir,
			Color:  true,
		},
	}
}

// Validate checks values that would otherwise fail late, during generation.
func (c *Config) Validate() error {
	if !template.IsMethod(c.Defaults.Method) {
		return fmt.Errorf("defaults.method: %w: %q", template.ErrUnknownMethod, c.Defaults.Method)
	}
	if _, ok := template.Lookup(c.Defaults.Template); !ok {
		return fmt.Errorf("defaults.template: %w: %q", template.ErrUnknownTemplate, c.Defaults.Template)
	}

	dir := strings.TrimSpace(c.Output.APIDir)
	if dir == "" {
		return errors.New("output.api_dir must not be empty")
	}
	if filepath.IsAbs(dir) {
		return fmt.Errorf("output.api_dir must be relative, got %q", dir)
	}
	for _, seg := range strings.Split(filepath.ToSlash(dir), "/") {
		if seg == ".." {
			return fmt.Errorf("output.api_dir must stay inside the base directory, got %q", dir)
		}
	}
	return nil
}

// Loader reads configuration with viper.
type Loader struct {
	fs     afero.Fs
	lookup func(string) (string, bool)
}

// NewLoader creates a Loader reading files from fs and variables from the
// process environment.
func NewLoader(fs afero.Fs) *Loader {
	return &Loader{fs: fs, lookup: os.LookupEnv}
}

// Load resolves and reads the configuration. explicitPath, when set, must exist.
// workDir is searched for FileName otherwise.
func (l *Loader) Load(explicitPath, workDir string) (*Config, error) {
	v := viper.New()
	v.SetFs(l.fs)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("defaults.method", defaults.Defaults.Method)
	v.SetDefault("defaults.template", defaults.Defaults.Template)
	v.SetDefault("defaults.typescript", defaults.Defaults.TypeScript)
	v.SetDefault("defaults.base_dir", defaults.Defaults.BaseDir)
	v.SetDefault("output.api_dir", defaults.Output.APIDir)
	v.SetDefault("output.color", defaults.Output.Color)

	path, err := l.resolvePath(explicitPath, workDir)
	if err != nil {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// resolvePath returns the file to read, or "" when there is none.
func (l *Loader) resolvePath(explicitPath, workDir string) (string, error) {
	if explicitPath == "" {
		if env, ok := l.lookup(EnvPrefix + "_CONFIG"); ok {
			explicitPath = env
		}
	}

	if explicitPath != "" {
		if _, err := l.fs.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicitPath, err)
		}
		return explicitPath, nil
	}

	candidate := filepath.Join(workDir, FileName)
	if _, err := l.fs.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", nil
}

// Write stores cfg as YAML at path. An existing file is only replaced when
// force is set.
func Write(fs afero.Fs, path string, cfg *Config, force bool) error {
	if !force {
		if _, err := fs.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
