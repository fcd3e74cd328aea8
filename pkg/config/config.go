/*
Package config manages the TOML config for wordsolve.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/wordsolve/internal/utils"
	"github.com/bastiangx/wordsolve/pkg/solver"
	"github.com/charmbracelet/log"
)

// FileName is the config file name inside the config directory.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Solver SolverConfig `toml:"solver"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
}

// SolverConfig controls the matching engine.
type SolverConfig struct {
	Workers         int    `toml:"workers"`
	MinWordLen      int    `toml:"min_word_len"`
	Mode            string `toml:"mode"`
	StreamThreshold int    `toml:"stream_threshold"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path       string `toml:"path"`
	MinWordLen int    `toml:"min_word_len"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	MinLen  int  `toml:"min_len"`
	MaxLen  int  `toml:"max_len"`
	Columns int  `toml:"columns"`
	Color   bool `toml:"color"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			Workers:         0,
			MinWordLen:      2,
			Mode:            "auto",
			StreamThreshold: solver.DefaultStreamThreshold,
		},
		Dict: DictConfig{
			Path:       "dict.txt",
			MinWordLen: 2,
		},
		CLI: CliConfig{
			MinLen:  solver.DefaultMinLetters,
			MaxLen:  solver.DefaultMaxLetters,
			Columns: 10,
			Color:   true,
		},
	}
}

// Validate checks values that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	if _, err := solver.ParseMode(c.Solver.Mode); err != nil {
		return fmt.Errorf("solver.mode: %w", err)
	}
	if c.Solver.Workers < 0 {
		return fmt.Errorf("solver.workers must be >= 0, got %d", c.Solver.Workers)
	}
	if c.CLI.MinLen < 2 || c.CLI.MaxLen < c.CLI.MinLen || c.CLI.MaxLen > solver.DefaultMaxLetters {
		return fmt.Errorf("cli.min_len/max_len must satisfy 2 <= min <= max <= %d, got %d/%d",
			solver.DefaultMaxLetters, c.CLI.MinLen, c.CLI.MaxLen)
	}
	if c.CLI.Columns < 1 {
		return fmt.Errorf("cli.columns must be >= 1, got %d", c.CLI.Columns)
	}
	if c.Dict.Path == "" {
		return fmt.Errorf("dict.path is required")
	}
	return nil
}

// SolverOptions turns the [solver] and [cli] sections into solver options.
func (c *Config) SolverOptions() ([]solver.Option, error) {
	mode, err := solver.ParseMode(c.Solver.Mode)
	if err != nil {
		return nil, err
	}
	opts := []solver.Option{
		solver.WithWorkers(c.Solver.Workers),
		solver.WithMode(mode),
		solver.WithMinWordLen(c.Solver.MinWordLen),
		solver.WithSequenceBounds(c.CLI.MinLen, c.CLI.MaxLen),
	}
	if c.Solver.StreamThreshold > 0 {
		opts = append(opts, solver.WithStreamThreshold(uint64(c.Solver.StreamThreshold)))
	}
	return opts, nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordsolve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath, defaultPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	if defaultPath == "" {
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. A file that does not parse as a whole
// still contributes every section that does; the rest keeps defaults.
// Values that parse but fail validation are an error.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		config = tryPartialParse(configPath)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return config, nil
}

// tryPartialParse pulls whatever sections it can out of a broken TOML file
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}

	if section, ok := utils.ExtractSection(tempConfig, "solver"); ok {
		extractSolverConfig(section, &config.Solver)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config
}

func extractSolverConfig(data map[string]any, s *SolverConfig) {
	if val, ok := utils.ExtractInt64(data, "workers"); ok {
		s.Workers = val
	}
	if val, ok := utils.ExtractInt64(data, "min_word_len"); ok {
		s.MinWordLen = val
	}
	if val, ok := utils.ExtractString(data, "mode"); ok {
		s.Mode = val
	}
	if val, ok := utils.ExtractInt64(data, "stream_threshold"); ok {
		s.StreamThreshold = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "min_word_len"); ok {
		dict.MinWordLen = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "min_len"); ok {
		cli.MinLen = val
	}
	if val, ok := utils.ExtractInt64(data, "max_len"); ok {
		cli.MaxLen = val
	}
	if val, ok := utils.ExtractInt64(data, "columns"); ok {
		cli.Columns = val
	}
	if val, ok := utils.ExtractBool(data, "color"); ok {
		cli.Color = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
