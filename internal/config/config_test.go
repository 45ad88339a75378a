// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/conwrite/internal/geometry"
	"github.com/jeranaias/conwrite/internal/layout"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
}

func TestDefault_SettingsMatchLayoutDefaults(t *testing.T) {
	s, err := Default().Settings("")
	require.NoError(t, err)
	assert.Equal(t, layout.Default(), s)
}

// =============================================================================
// LOADING
// =============================================================================

const tomlConfig = `
backend = "tcell"
profile = "banner"

[write]
alignment = "centre"

[prompt]
text = "> "

[profiles.banner]
area_border = "rounded"
maximum_width = 40

[profiles.banner.padding]
top = 1
left = 2
right = 2
bottom = 1
`

func TestLoadFromPath_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", tomlConfig)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "tcell", cfg.Backend)
	assert.Equal(t, "> ", cfg.Prompt.Text)
	assert.Equal(t, "Input is invalid", cfg.Prompt.InvalidError, "unset keys keep defaults")
	assert.Equal(t, geometry.DefaultSidePadding, cfg.Write.Padding.Left)

	s, err := cfg.Settings("")
	require.NoError(t, err)
	rounded, _ := geometry.Preset("rounded")
	assert.Equal(t, geometry.AlignCentre, s.Alignment)
	assert.Equal(t, 40, s.MaximumWidth)
	assert.Equal(t, rounded, s.AreaBorder)
	assert.Equal(t, geometry.Padding{Top: 1, Left: 2, Right: 2, Bottom: 1}, s.Padding)
	assert.True(t, s.Wrap)

	named, err := cfg.Settings("banner")
	require.NoError(t, err)
	assert.Equal(t, named, s, "empty name uses the configured profile")
}

func TestLoadFromPath_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.json", `{
  "write": {"alignment": "right", "justify": true, "justify_threshold": "20"},
  "profiles": {"tight": {"padding": {"left": 0, "right": 0}}}
}`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultBackend, cfg.Backend)

	s, err := cfg.Settings("tight")
	require.NoError(t, err)
	assert.Equal(t, geometry.AlignRight, s.Alignment)
	assert.True(t, s.Justified)
	assert.Equal(t, layout.Columns(20), s.JustifyThreshold)
	assert.Equal(t, geometry.Padding{}, s.Padding)
}

func TestLoadFromPath_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", `
write:
  slow_write: true
  char_delay_ms: 5
  text_border: ascii
prompt:
  max_length: 12
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Prompt.MaxLength)
	assert.Equal(t, 1, cfg.Prompt.MaxHeight)

	s, err := cfg.Settings("")
	require.NoError(t, err)
	assert.True(t, s.SlowWrite)
	assert.Equal(t, 5*time.Millisecond, s.CharDelay)
	assert.Equal(t, geometry.NewBorder(true), s.TextBorder)
	assert.True(t, s.NewLine, "unset keys keep defaults")
}

func TestLoadFromPath_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFromPath(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.toml", "write = [")
	_, err = LoadFromPath(bad)
	assert.Error(t, err)
}

func TestLoad_UsesHomeDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, cfg.Version)

	require.NoError(t, os.MkdirAll(filepath.Join(home, ".conwrite"), 0755))
	writeFile(t, filepath.Join(home, ".conwrite"), "config.yaml", "backend: ansi\n")

	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(path))

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "ansi", cfg.Backend)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("CONWRITE_BACKEND", "ANSI")
	t.Setenv("CONWRITE_ALIGN", "right")
	t.Setenv("CONWRITE_MAX_WIDTH", "30")
	t.Setenv("CONWRITE_SLOW", "true")
	t.Setenv("CONWRITE_CHAR_DELAY_MS", "not a number")

	path := writeFile(t, t.TempDir(), "config.toml", "[write]\nalignment = \"left\"\n")
	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "ansi", cfg.Backend)
	assert.Equal(t, "right", cfg.Write.Alignment)
	assert.Equal(t, 30, cfg.Write.MaximumWidth)
	assert.True(t, cfg.Write.SlowWrite)
	assert.Equal(t, 50, cfg.Write.CharDelayMS, "unparsable values are ignored")
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Backend = "curses"
	cfg.Profile = "missing"
	cfg.Write.Alignment = "middle"
	cfg.Write.AreaBorder = "wavy"
	cfg.Write.MinimumWidth = -1
	cfg.Prompt.MaxLength = -2
	wavy := "zigzag"
	cfg.Profiles["odd"] = ProfileConfig{TextBorder: &wavy}

	err := cfg.Validate()
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))

	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{
		"backend",
		"profile",
		"write.alignment",
		"write.area_border",
		"write.minimum_width",
		"prompt.max_length",
		"profiles.odd.alignment",
		"profiles.odd.area_border",
		"profiles.odd.minimum_width",
		"profiles.odd.text_border",
	}, fields)
}

func TestLoadFromPath_RejectsInvalid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[write]\njustify_threshold = \"lots\"\n")

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write.justify_threshold")
}

func TestParseBorder(t *testing.T) {
	b, err := ParseBorder("")
	require.NoError(t, err)
	assert.False(t, b.AnyEnabled())

	b, err = ParseBorder(" None ")
	require.NoError(t, err)
	assert.False(t, b.AnyEnabled())

	b, err = ParseBorder("double")
	require.NoError(t, err)
	assert.Equal(t, "═", b.TopStyle)

	_, err = ParseBorder("wavy")
	assert.Error(t, err)
}

func TestSettings_UnknownProfile(t *testing.T) {
	_, err := Default().Settings("nope")
	assert.Error(t, err)
}

// =============================================================================
// SAVE / CLONE / GET
// =============================================================================

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	width := 50
	centre := "centre"

	cfg := Default()
	cfg.Backend = "ansi"
	cfg.Write.Justify = true
	cfg.Prompt.PreventIncorrect = true
	cfg.Profiles["wide"] = ProfileConfig{
		MaximumWidth: &width,
		Alignment:    &centre,
		Padding:      &PaddingConfig{Top: 2},
	}

	for _, name := range []string{"out.toml", "out.json", "nested/out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(cfg, path))

			got, err := LoadFromPath(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, got)
		})
	}
}

func TestMarshal_Formats(t *testing.T) {
	cfg := Default()

	data, err := Marshal(cfg, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"backend": "auto"`)

	data, err = Marshal(cfg, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: auto")

	data, err = Marshal(cfg, "")
	require.NoError(t, err)
	assert.Contains(t, string(data), `backend = "auto"`)

	_, err = Marshal(cfg, "xml")
	assert.Error(t, err)
}

func TestClone_IsDeep(t *testing.T) {
	width := 10
	cfg := Default()
	cfg.Profiles["p"] = ProfileConfig{MaximumWidth: &width}

	clone := cfg.Clone()
	*clone.Profiles["p"].MaximumWidth = 99
	clone.Profiles["q"] = ProfileConfig{}

	assert.Equal(t, 10, *cfg.Profiles["p"].MaximumWidth)
	assert.NotContains(t, cfg.Profiles, "q")
}

func TestGet(t *testing.T) {
	width := 40
	cfg := Default()
	cfg.Profiles["banner"] = ProfileConfig{MaximumWidth: &width}

	tests := []struct {
		key     string
		want    interface{}
		wantErr bool
	}{
		{"backend", DefaultBackend, false},
		{"write.alignment", "left", false},
		{"write.padding.left", geometry.DefaultSidePadding, false},
		{"prompt.max_height", 1, false},
		{"profiles.banner.maximum_width", 40, false},
		{"profiles.banner.wrap", nil, false},
		{"profiles.other.wrap", nil, true},
		{"write.nope", nil, true},
		{"backend.value", nil, true},
		{"", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := cfg.Get(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// =============================================================================
// GLOBAL
// =============================================================================

// TestConfig_ConcurrentAccess checks Global and SetGlobal under -race.
func TestConfig_ConcurrentAccess(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

func TestConfig_SetGlobalOverwrites(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	require.NotNil(t, Global())

	custom := Default()
	custom.Backend = "tcell"
	SetGlobal(custom)
	assert.Equal(t, "tcell", Global().Backend)

	require.NoError(t, ReloadGlobal())
	assert.Equal(t, DefaultBackend, Global().Backend)
}

// =============================================================================
// WATCHER
// =============================================================================

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "[write]\nalignment = \"left\"\n")

	w := NewWatcher(path, 20*time.Millisecond)
	changed := make(chan *Config, 4)
	failed := make(chan error, 4)
	w.OnChange(func(c *Config) { changed <- c })
	w.OnError(func(err error) { failed <- err })

	cfg, err := w.Start()
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, "left", cfg.Write.Alignment)

	writeFile(t, dir, "config.toml", "[write]\nalignment = \"right\"\n")
	select {
	case c := <-changed:
		assert.Equal(t, "right", c.Write.Alignment)
		assert.Equal(t, "right", w.Config().Write.Alignment)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}

	writeFile(t, dir, "config.toml", "[write]\nalignment = \"sideways\"\n")
	select {
	case err := <-failed:
		assert.Contains(t, err.Error(), "write.alignment")
		assert.Equal(t, "right", w.Config().Write.Alignment, "last good config kept")
	case <-time.After(5 * time.Second):
		t.Fatal("no error after invalid write")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWatcher_StartFailsOnInvalidFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "backend = \"curses\"\n")

	w := NewWatcher(path, 0)
	_, err := w.Start()
	assert.Error(t, err)
	assert.NoError(t, w.Close())
}
