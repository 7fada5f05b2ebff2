package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pkgbasify/pkg/errors"
	"github.com/arthur-debert/pkgbasify/pkg/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pkgbasify.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(Options{Path: writeConfig(t, "")})
	require.NoError(t, err)

	assert.Equal(t, "FreeBSD-base", cfg.Repo.Name)
	assert.Equal(t, "/usr/local/etc/pkg/repos", cfg.Repo.ConfDir)
	assert.Equal(t, ".pkgsave", cfg.Paths.BackupSuffix)
	assert.Equal(t, []string{"/"}, cfg.Paths.SearchRoots)
	assert.Equal(t, 3, cfg.Install.FetchAttempts)
	assert.Equal(t, []string{"sshd"}, cfg.Services.Restart)
	assert.Equal(t, "diff3", cfg.Merge.Tool)
	assert.True(t, cfg.BootEnvironment.Create)
	assert.False(t, cfg.AssumeYes)
	assert.Equal(t, inventory.DefaultMarkers, cfg.Probes.Markers())
}

func TestLoadLayers(t *testing.T) {
	path := writeConfig(t, `
[repo]
name = "Local-base"

[install]
fetch_attempts = 5

[services]
restart = ["sshd", "ntpd"]
`)
	t.Setenv("PKGBASIFY_INSTALL__FETCH_ATTEMPTS", "7")
	t.Setenv("PKGBASIFY_MERGE__TOOL", "/usr/local/bin/diff3")

	cfg, err := Load(Options{
		Path:      path,
		Overrides: map[string]interface{}{"assume_yes": true, "paths.workdir_parent": "/var/tmp"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Local-base", cfg.Repo.Name, "file overrides defaults")
	assert.Equal(t, 7, cfg.Install.FetchAttempts, "env overrides file")
	assert.Equal(t, "/usr/local/bin/diff3", cfg.Merge.Tool)
	assert.Equal(t, []string{"sshd", "ntpd"}, cfg.Services.Restart)
	assert.True(t, cfg.AssumeYes, "overrides win")
	assert.Equal(t, "/var/tmp", cfg.Paths.WorkDirParent)
}

func TestLoadEnvList(t *testing.T) {
	t.Setenv("PKGBASIFY_SERVICES__RESTART", "sshd,ntpd")
	cfg, err := Load(Options{Path: writeConfig(t, "")})
	require.NoError(t, err)
	assert.Equal(t, []string{"sshd", "ntpd"}, cfg.Services.Restart)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(Options{Path: filepath.Join(t.TempDir(), "nope.toml")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoadMalformedFile(t *testing.T) {
	_, err := Load(Options{Path: writeConfig(t, "[repo\nname=")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(Options{Path: writeConfig(t, "")})
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty repo name", func(c *Config) { c.Repo.Name = " " }},
		{"repo name with slash", func(c *Config) { c.Repo.Name = "a/b" }},
		{"empty conf dir", func(c *Config) { c.Repo.ConfDir = "" }},
		{"zero attempts", func(c *Config) { c.Install.FetchAttempts = 0 }},
		{"suffix without dot", func(c *Config) { c.Paths.BackupSuffix = "pkgsave" }},
		{"bare dot suffix", func(c *Config) { c.Paths.BackupSuffix = "." }},
		{"no search roots", func(c *Config) { c.Paths.SearchRoots = nil }},
		{"unnamed boot environment", func(c *Config) { c.BootEnvironment.Name = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
		})
	}

	assert.NoError(t, base().Validate())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "repo.conf_dir", envKey("PKGBASIFY_REPO__CONF_DIR"))
	assert.Equal(t, "assume_yes", envKey("PKGBASIFY_ASSUME_YES"))
}

func TestProbesMarkersSkipEmpty(t *testing.T) {
	m := Probes{Src: "/usr/src"}.Markers()
	assert.Equal(t, map[inventory.Subsystem]string{inventory.Src: "/usr/src"}, m)
}
