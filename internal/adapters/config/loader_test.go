package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kitsnotes/hollywood/internal/adapters/config"
	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadScript(t *testing.T) {
	p := writeFile(t, "installfile", "network false\n")

	data, err := config.NewLoader().LoadScript(p)
	require.NoError(t, err)
	assert.Equal(t, "network false\n", string(data))
}

func TestLoadScript_Missing(t *testing.T) {
	_, err := config.NewLoader().LoadScript(filepath.Join(t.TempDir(), "installfile"))
	require.ErrorIs(t, err, domain.ErrScriptReadFailed)
	require.ErrorIs(t, err, os.ErrNotExist)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Contains(t, zErr.Metadata(), "path")
}

func TestLoadSettings_ExplicitPath(t *testing.T) {
	p := writeFile(t, "hscript.yaml", `
strict: true
workers: 4
target: /mnt/target
arch: aarch64
pkginstall_duplicates: line
repositories:
  - https://depot.example.com/system
color: never
log_json: true
`)

	s, err := config.NewLoader().LoadSettings(p)
	require.NoError(t, err)
	require.NotNil(t, s)
	require.NotNil(t, s.Strict)
	assert.True(t, *s.Strict)
	assert.Nil(t, s.KeepGoing)
	require.NotNil(t, s.Workers)
	assert.Equal(t, 4, *s.Workers)
	assert.Equal(t, "/mnt/target", s.Target)
	assert.Equal(t, "aarch64", s.Arch)
	assert.Equal(t, "line", s.PkgInstallDuplicates)
	assert.Equal(t, []string{"https://depot.example.com/system"}, s.Repositories)
	assert.Equal(t, domain.ColorNever, s.Color)
	assert.True(t, s.LogJSON)
}

func TestLoadSettings_EnvironmentOverridesSystem(t *testing.T) {
	system := writeFile(t, "system.yaml", "arch: x86_64\n")
	env := writeFile(t, "env.yaml", "arch: ppc64\n")
	t.Setenv(domain.SettingsEnvVar, env)

	s, err := config.NewLoader(config.WithSystemPath(system)).LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, "ppc64", s.Arch)
}

func TestLoadSettings_SystemPath(t *testing.T) {
	system := writeFile(t, "system.yaml", "arch: x86_64\n")
	t.Setenv(domain.SettingsEnvVar, "")

	s, err := config.NewLoader(config.WithSystemPath(system)).LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, "x86_64", s.Arch)
}

func TestLoadSettings_MissingSystemFileIsNotAnError(t *testing.T) {
	t.Setenv(domain.SettingsEnvVar, "")

	s, err := config.NewLoader(config.WithSystemPath(filepath.Join(t.TempDir(), "hscript.yaml"))).LoadSettings("")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestLoadSettings_EmptyFile(t *testing.T) {
	s, err := config.NewLoader().LoadSettings(writeFile(t, "hscript.yaml", ""))
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, domain.Settings{}, *s)
}

func TestLoadSettings_Errors(t *testing.T) {
	t.Run("Explicit File Not Found", func(t *testing.T) {
		_, err := config.NewLoader().LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, domain.ErrSettingsReadFailed)
	})

	t.Run("Environment File Not Found", func(t *testing.T) {
		t.Setenv(domain.SettingsEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
		_, err := config.NewLoader().LoadSettings("")
		require.ErrorIs(t, err, domain.ErrSettingsReadFailed)
	})

	t.Run("Invalid YAML", func(t *testing.T) {
		p := writeFile(t, "hscript.yaml", "repositories: [https://a  # unclosed\n")
		_, err := config.NewLoader().LoadSettings(p)
		require.ErrorIs(t, err, domain.ErrSettingsParseFailed)
	})

	t.Run("Unknown Field", func(t *testing.T) {
		p := writeFile(t, "hscript.yaml", "stricter: true\n")
		_, err := config.NewLoader().LoadSettings(p)
		require.ErrorIs(t, err, domain.ErrSettingsParseFailed)
		assert.Contains(t, err.Error(), "stricter")
	})
}
