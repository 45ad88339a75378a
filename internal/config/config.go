// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/conwrite/internal/geometry"
	"github.com/jeranaias/conwrite/internal/layout"
	"github.com/jeranaias/conwrite/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete conwrite configuration.
type Config struct {
	// General settings
	Version string `toml:"version" json:"version" yaml:"version"`

	// Backend selects the display: "auto", "ansi" or "tcell".
	Backend string `toml:"backend" json:"backend" yaml:"backend"`

	// Profile is applied when no profile is named on the command line.
	Profile string `toml:"profile" json:"profile,omitempty" yaml:"profile,omitempty"`

	// Write holds the default layout settings
	Write WriteConfig `toml:"write" json:"write" yaml:"write"`

	// Prompt holds defaults for interactive prompts
	Prompt PromptConfig `toml:"prompt" json:"prompt" yaml:"prompt"`

	// Profiles are named overrides of Write
	Profiles map[string]ProfileConfig `toml:"profiles" json:"profiles,omitempty" yaml:"profiles,omitempty"`
}

// PaddingConfig is the padding around a block of text.
type PaddingConfig struct {
	Top    int `toml:"top" json:"top" yaml:"top"`
	Left   int `toml:"left" json:"left" yaml:"left"`
	Right  int `toml:"right" json:"right" yaml:"right"`
	Bottom int `toml:"bottom" json:"bottom" yaml:"bottom"`
}

// WriteConfig contains the layout settings used by every write.
type WriteConfig struct {
	Wrap bool `toml:"wrap" json:"wrap" yaml:"wrap"`
	// Alignment is "left", "centre" or "right"
	Alignment string `toml:"alignment" json:"alignment" yaml:"alignment"`
	Justify   bool   `toml:"justify" json:"justify" yaml:"justify"`
	// JustifyThreshold is a column count ("40") or a percentage ("70%")
	JustifyThreshold string `toml:"justify_threshold" json:"justify_threshold" yaml:"justify_threshold"`

	MinimumWidth  int `toml:"minimum_width" json:"minimum_width" yaml:"minimum_width"`
	MaximumWidth  int `toml:"maximum_width" json:"maximum_width" yaml:"maximum_width"`
	MaximumHeight int `toml:"maximum_height" json:"maximum_height" yaml:"maximum_height"`

	Padding PaddingConfig `toml:"padding" json:"padding" yaml:"padding"`

	// AreaBorder and TextBorder name a border preset; "" or "none" disables
	AreaBorder string `toml:"area_border" json:"area_border" yaml:"area_border"`
	TextBorder string `toml:"text_border" json:"text_border" yaml:"text_border"`

	NewLine    bool `toml:"new_line" json:"new_line" yaml:"new_line"`
	KeepIndent bool `toml:"keep_indent" json:"keep_indent" yaml:"keep_indent"`
	ShowCursor bool `toml:"show_cursor" json:"show_cursor" yaml:"show_cursor"`

	SlowWrite   bool `toml:"slow_write" json:"slow_write" yaml:"slow_write"`
	CharDelayMS int  `toml:"char_delay_ms" json:"char_delay_ms" yaml:"char_delay_ms"`
}

// PromptConfig contains defaults for interactive prompts.
type PromptConfig struct {
	// Text is written before the input when a command names no prompt
	Text         string `toml:"text" json:"text" yaml:"text"`
	IntegerError string `toml:"integer_error" json:"integer_error" yaml:"integer_error"`
	InvalidError string `toml:"invalid_error" json:"invalid_error" yaml:"invalid_error"`
	// MaxLength of 0 means unbounded
	MaxLength int `toml:"max_length" json:"max_length" yaml:"max_length"`
	MaxHeight int `toml:"max_height" json:"max_height" yaml:"max_height"`

	CaseSensitive    bool `toml:"case_sensitive" json:"case_sensitive" yaml:"case_sensitive"`
	PreventIncorrect bool `toml:"prevent_incorrect" json:"prevent_incorrect" yaml:"prevent_incorrect"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default values.
const (
	DefaultVersion = "1.0.0"
	DefaultBackend = "auto"
	BorderNone     = "none"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: DefaultVersion,
		Backend: DefaultBackend,

		Write: WriteConfig{
			Wrap:             true,
			Alignment:        geometry.AlignLeft.String(),
			JustifyThreshold: layout.Percent(layout.DefaultThresholdPercent).String(),
			Padding: PaddingConfig{
				Left:  geometry.DefaultSidePadding,
				Right: geometry.DefaultSidePadding,
			},
			AreaBorder:  BorderNone,
			TextBorder:  BorderNone,
			NewLine:     true,
			KeepIndent:  true,
			CharDelayMS: int(layout.DefaultCharDelay.Milliseconds()),
		},

		Prompt: PromptConfig{
			Text:         "Input: ",
			IntegerError: "Input must be an integer",
			InvalidError: "Input is invalid",
			MaxHeight:    1,
		},

		Profiles: map[string]ProfileConfig{},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the conwrite configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".conwrite"), nil
}

func configPath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) { return configPath("config.toml") }

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) { return configPath("config.json") }

// ConfigPathYAML returns the path to the YAML config file.
func ConfigPathYAML() (string, error) { return configPath("config.yaml") }

// ConfigPath returns the first config file that exists, or the TOML path
// when there is none.
func ConfigPath() (string, error) {
	for _, find := range []func() (string, error){ConfigPathTOML, ConfigPathJSON, ConfigPathYAML} {
		path, err := find()
		if err != nil {
			return "", err
		}
		if _, statErr := os.Stat(path); statErr == nil {
			return path, nil
		}
	}
	return ConfigPathTOML()
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the first config file found in ConfigDir,
// falling back to defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. The format follows the extension; anything unrecognised is
// read as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = LoadJSON(cfg, path)
	case ".yaml", ".yml":
		err = LoadYAML(cfg, path)
	default:
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish applies environment overrides and defaults, then validates.
func (c *Config) finish() error {
	c.ApplyEnvOverrides()
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadYAML decodes a YAML file over cfg.
func LoadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode YAML file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to path in the format its extension names.
func Save(cfg *Config, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SaveJSON(cfg, path)
	case ".yaml", ".yml":
		return SaveYAML(cfg, path)
	}
	return SaveTOML(cfg, path)
}

// Formats accepted by Marshal.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Marshal encodes cfg in the named format.
func Marshal(cfg *Config, format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(format) {
	case FormatTOML, "":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(cfg)
		data = buf.Bytes()
	case FormatJSON:
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	case FormatYAML, "yml":
		data, err = yaml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("unknown config format %q (expected toml, json or yaml)", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	data, err := Marshal(cfg, FormatTOML)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# conwrite configuration file")
	fmt.Fprintln(&buf, "#")
	fmt.Fprintf(&buf, "# Border presets: %s, %s\n", BorderNone, strings.Join(geometry.PresetNames(), ", "))
	fmt.Fprintln(&buf, "")
	buf.Write(data)
	return writeConfig(path, buf.Bytes())
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := Marshal(cfg, FormatJSON)
	if err != nil {
		return err
	}
	return writeConfig(path, data)
}

// SaveYAML saves the configuration to a YAML file.
func SaveYAML(cfg *Config, path string) error {
	data, err := Marshal(cfg, FormatYAML)
	if err != nil {
		return err
	}
	return writeConfig(path, data)
}

// RELIABILITY: Atomic write with fsync prevents a torn config on crash
func writeConfig(path string, data []byte) error {
	if err := util.AtomicWriteFileWithDir(path, data, 0644, 0755); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	switch strings.ToLower(c.Backend) {
	case "auto", "ansi", "tcell":
	default:
		errs = append(errs, ValidationError{
			Field:   "backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: auto, ansi, tcell", c.Backend),
		})
	}

	if c.Profile != "" {
		if _, ok := c.Profiles[c.Profile]; !ok {
			errs = append(errs, ValidationError{
				Field:   "profile",
				Message: fmt.Sprintf("unknown profile '%s'", c.Profile),
			})
		}
	}

	errs = append(errs, c.Write.validate("write")...)

	if c.Prompt.MaxLength < 0 {
		errs = append(errs, ValidationError{Field: "prompt.max_length", Message: "must not be negative"})
	}
	if c.Prompt.MaxHeight < 0 {
		errs = append(errs, ValidationError{Field: "prompt.max_height", Message: "must not be negative"})
	}

	for _, name := range c.ProfileNames() {
		p := c.Profiles[name]
		merged := p.Apply(c.Write)
		errs = append(errs, merged.validate("profiles."+name)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (w WriteConfig) validate(prefix string) ValidateErrors {
	var errs ValidateErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: prefix + "." + field, Message: msg})
	}

	if _, err := geometry.ParseAlignment(w.Alignment); err != nil {
		add("alignment", err.Error())
	}
	if _, err := layout.ParseThreshold(w.JustifyThreshold); err != nil {
		add("justify_threshold", err.Error())
	}
	if w.MinimumWidth < 0 {
		add("minimum_width", "must not be negative")
	}
	if w.MaximumWidth < 0 {
		add("maximum_width", "must not be negative")
	}
	if w.MaximumHeight < 0 {
		add("maximum_height", "must not be negative")
	}
	if w.CharDelayMS < 0 {
		add("char_delay_ms", "must not be negative")
	}
	if w.Padding.Top < 0 || w.Padding.Left < 0 || w.Padding.Right < 0 || w.Padding.Bottom < 0 {
		add("padding", "must not be negative")
	}
	if _, err := ParseBorder(w.AreaBorder); err != nil {
		add("area_border", err.Error())
	}
	if _, err := ParseBorder(w.TextBorder); err != nil {
		add("text_border", err.Error())
	}
	return errs
}

// SetDefaults sets default values for any missing or zero-value fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Backend == "" {
		c.Backend = defaults.Backend
	}
	c.Backend = strings.ToLower(c.Backend)

	if c.Write.Alignment == "" {
		c.Write.Alignment = defaults.Write.Alignment
	}
	if c.Write.JustifyThreshold == "" {
		c.Write.JustifyThreshold = defaults.Write.JustifyThreshold
	}
	if c.Write.AreaBorder == "" {
		c.Write.AreaBorder = BorderNone
	}
	if c.Write.TextBorder == "" {
		c.Write.TextBorder = BorderNone
	}

	if c.Prompt.Text == "" {
		c.Prompt.Text = defaults.Prompt.Text
	}
	if c.Prompt.IntegerError == "" {
		c.Prompt.IntegerError = defaults.Prompt.IntegerError
	}
	if c.Prompt.InvalidError == "" {
		c.Prompt.InvalidError = defaults.Prompt.InvalidError
	}
	if c.Prompt.MaxHeight == 0 {
		c.Prompt.MaxHeight = defaults.Prompt.MaxHeight
	}

	if c.Profiles == nil {
		c.Profiles = map[string]ProfileConfig{}
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CONWRITE_BACKEND: overrides backend
//   - CONWRITE_PROFILE: overrides profile
//   - CONWRITE_ALIGN: overrides write.alignment
//   - CONWRITE_MAX_WIDTH: overrides write.maximum_width
//   - CONWRITE_SLOW: set to "1" or "true" to enable write.slow_write
//   - CONWRITE_CHAR_DELAY_MS: overrides write.char_delay_ms
func (c *Config) ApplyEnvOverrides() {
	if backend := os.Getenv("CONWRITE_BACKEND"); backend != "" {
		c.Backend = backend
	}
	if profile := os.Getenv("CONWRITE_PROFILE"); profile != "" {
		c.Profile = profile
	}
	if align := os.Getenv("CONWRITE_ALIGN"); align != "" {
		c.Write.Alignment = align
	}
	if width := os.Getenv("CONWRITE_MAX_WIDTH"); width != "" {
		if n, err := strconv.Atoi(width); err == nil {
			c.Write.MaximumWidth = n
		}
	}
	if slow := os.Getenv("CONWRITE_SLOW"); slow != "" {
		c.Write.SlowWrite = slow == "1" || strings.ToLower(slow) == "true"
	}
	if delay := os.Getenv("CONWRITE_CHAR_DELAY_MS"); delay != "" {
		if n, err := strconv.Atoi(delay); err == nil {
			c.Write.CharDelayMS = n
		}
	}
}

// =============================================================================
// GET HELPER (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value by its dotted file key, e.g.
// "write.alignment" or "profiles.banner.alignment". Unset profile fields
// are returned as nil.
func (c *Config) Get(key string) (interface{}, error) {
	if key == "" {
		return nil, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	if parts[0] == "profiles" && len(parts) > 1 {
		p, ok := c.Profiles[parts[1]]
		if !ok {
			return nil, fmt.Errorf("unknown profile: %s", parts[1])
		}
		if len(parts) == 2 {
			return p, nil
		}
		v = reflect.ValueOf(&p).Elem()
		parts = parts[2:]
	}

	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return nil, fmt.Errorf("unknown field: %s", key)
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Ptr {
				if field.IsNil() {
					return nil, nil
				}
				field = field.Elem()
			}
			return field.Interface(), nil
		}
		if field.Kind() != reflect.Struct {
			return nil, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}

	return nil, fmt.Errorf("invalid key: %s", key)
}

// fieldByTag finds the struct field whose toml tag is name.
func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("toml"), ",")[0]
		if tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// ProfileNames returns the profile names in sorted order.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Profiles != nil {
		clone.Profiles = make(map[string]ProfileConfig, len(c.Profiles))
		for name, p := range c.Profiles {
			clone.Profiles[name] = p.clone()
		}
	}
	return &clone
}

// String returns a string representation of the config for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
