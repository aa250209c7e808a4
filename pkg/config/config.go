/*
Package config manages the TOML config for blockserve.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/blockserve/internal/utils"
	"github.com/bastiangx/blockserve/pkg/autoformat"
	"github.com/bastiangx/blockserve/pkg/tokenize"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Index  IndexConfig  `toml:"index"`
	Editor EditorConfig `toml:"editor"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxLimit     int `toml:"max_limit"`
	DefaultLimit int `toml:"default_limit"`
	MinPrefix    int `toml:"min_prefix"`
	MaxPrefix    int `toml:"max_prefix"`
}

// IndexConfig controls tokenization.
type IndexConfig struct {
	MinWordLen     int      `toml:"min_word_len"`
	MinPhraseToken int      `toml:"min_phrase_token"`
	Alphabets      []string `toml:"alphabets"`
	ExtraChars     string   `toml:"extra_chars"`
}

// EditorConfig toggles auto-format rules.
type EditorConfig struct {
	AutoPairs        bool `toml:"auto_pairs"`
	SmartLinks       bool `toml:"smart_links"`
	Tables           bool `toml:"tables"`
	TableColumns     int  `toml:"table_columns"`
	Checkboxes       bool `toml:"checkboxes"`
	ListContinuation bool `toml:"list_continuation"`
	MatchCase        bool `toml:"match_case"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit  int `toml:"default_limit"`
	DefaultMinLen int `toml:"default_min_len"`
	DefaultMaxLen int `toml:"default_max_len"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/blockserve
// 2. ~/Library/Application Support/blockserve (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", utils.AppName)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", utils.AppName)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/blockserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
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

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:     64,
			DefaultLimit: 5,
			MinPrefix:    2,
			MaxPrefix:    60,
		},
		Index: IndexConfig{
			MinWordLen:     tokenize.DefaultMinWordLen,
			MinPhraseToken: tokenize.DefaultMinPhraseToken,
			Alphabets:      append([]string(nil), tokenize.DefaultAlphabets...),
			ExtraChars:     tokenize.DefaultExtra,
		},
		Editor: EditorConfig{
			AutoPairs:        true,
			SmartLinks:       true,
			Tables:           true,
			TableColumns:     2,
			Checkboxes:       true,
			ListContinuation: true,
			MatchCase:        false,
		},
		CLI: CliConfig{
			DefaultLimit:  10,
			DefaultMinLen: 2,
			DefaultMaxLen: 60,
		},
	}
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

// LoadConfig loads from a TOML file. Keys missing from the file keep their
// defaults; a malformed file is recovered section by section.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "index"); ok {
		extractIndexConfig(section, &config.Index)
	}
	if section, ok := utils.ExtractSection(tempConfig, "editor"); ok {
		extractEditorConfig(section, &config.Editor)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		server.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
}

func extractIndexConfig(data map[string]any, idx *IndexConfig) {
	if val, ok := utils.ExtractInt64(data, "min_word_len"); ok {
		idx.MinWordLen = val
	}
	if val, ok := utils.ExtractInt64(data, "min_phrase_token"); ok {
		idx.MinPhraseToken = val
	}
	if val, ok := utils.ExtractStrings(data, "alphabets"); ok {
		idx.Alphabets = val
	}
	if val, ok := utils.ExtractString(data, "extra_chars"); ok {
		idx.ExtraChars = val
	}
}

func extractEditorConfig(data map[string]any, ed *EditorConfig) {
	if val, ok := utils.ExtractBool(data, "auto_pairs"); ok {
		ed.AutoPairs = val
	}
	if val, ok := utils.ExtractBool(data, "smart_links"); ok {
		ed.SmartLinks = val
	}
	if val, ok := utils.ExtractBool(data, "tables"); ok {
		ed.Tables = val
	}
	if val, ok := utils.ExtractInt64(data, "table_columns"); ok {
		ed.TableColumns = val
	}
	if val, ok := utils.ExtractBool(data, "checkboxes"); ok {
		ed.Checkboxes = val
	}
	if val, ok := utils.ExtractBool(data, "list_continuation"); ok {
		ed.ListContinuation = val
	}
	if val, ok := utils.ExtractBool(data, "match_case"); ok {
		ed.MatchCase = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "default_min_len"); ok {
		cli.DefaultMinLen = val
	}
	if val, ok := utils.ExtractInt64(data, "default_max_len"); ok {
		cli.DefaultMaxLen = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Charset builds the tokenizer charset. Unknown alphabet names fall back to
// the defaults with a warning.
func (c *Config) Charset() tokenize.Charset {
	cs, err := tokenize.NewCharset(c.Index.Alphabets, c.Index.ExtraChars)
	if err != nil {
		log.Warnf("Invalid [index] alphabets %v: %v. Using defaults.", c.Index.Alphabets, err)
		return tokenize.DefaultCharset()
	}
	return cs
}

// Tokenizer builds the tokenizer described by [index].
func (c *Config) Tokenizer() *tokenize.Tokenizer {
	return tokenize.New(
		tokenize.WithCharset(c.Charset()),
		tokenize.WithMinWordLen(c.Index.MinWordLen),
		tokenize.WithMinPhraseToken(c.Index.MinPhraseToken),
	)
}

// FormatOptions converts [editor] into auto-format options.
func (c *Config) FormatOptions() autoformat.Options {
	opts := autoformat.DefaultOptions()
	opts.AutoPairs = c.Editor.AutoPairs
	opts.SmartLinks = c.Editor.SmartLinks
	opts.Tables = c.Editor.Tables
	opts.Checkboxes = c.Editor.Checkboxes
	opts.ListContinuation = c.Editor.ListContinuation
	if c.Editor.TableColumns > 0 {
		opts.TableColumns = c.Editor.TableColumns
	}
	return opts
}

// ClampLimit bounds a requested suggestion count to [1, MaxLimit], using
// DefaultLimit for non-positive requests.
func (s ServerConfig) ClampLimit(limit int) int {
	if limit <= 0 {
		limit = s.DefaultLimit
	}
	if s.MaxLimit > 0 && limit > s.MaxLimit {
		limit = s.MaxLimit
	}
	if limit <= 0 {
		limit = 1
	}
	return limit
}
