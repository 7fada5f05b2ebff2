package config

import (
	"strings"

	"github.com/arthur-debert/pkgbasify/pkg/errors"
	"github.com/arthur-debert/pkgbasify/pkg/inventory"
)

// Config is the complete pkgbasify configuration
type Config struct {
	Repo            Repo            `koanf:"repo"`
	Paths           Paths           `koanf:"paths"`
	Probes          Probes          `koanf:"probes"`
	Merge           Merge           `koanf:"merge"`
	Install         Install         `koanf:"install"`
	Services        Services        `koanf:"services"`
	Cleanup         Cleanup         `koanf:"cleanup"`
	BootEnvironment BootEnvironment `koanf:"boot_environment"`
	AssumeYes       bool            `koanf:"assume_yes"`
}

// Repo describes the package repository that replaces the base system
type Repo struct {
	Name          string `koanf:"name"`
	ConfDir       string `koanf:"conf_dir"`
	URLPrefix     string `koanf:"url_prefix"`
	MirrorType    string `koanf:"mirror_type"`
	SignatureType string `koanf:"signature_type"`
	KeysDir       string `koanf:"keys_dir"`
}

// Paths holds filesystem locations used during a conversion
type Paths struct {
	EtcupdateDB   string   `koanf:"etcupdate_db"`
	WorkDirParent string   `koanf:"workdir_parent"`
	BackupSuffix  string   `koanf:"backup_suffix"`
	SearchRoots   []string `koanf:"search_roots"`
	SkipDirs      []string `koanf:"skip_dirs"`
}

// Probes holds the marker path for each optional subsystem
type Probes struct {
	KernelDebug string `koanf:"kernel_debug"`
	BaseDebug   string `koanf:"base_debug"`
	Lib32       string `koanf:"lib32"`
	Lib32Debug  string `koanf:"lib32_debug"`
	Src         string `koanf:"src"`
	Tests       string `koanf:"tests"`
}

// Markers returns the non-empty marker paths keyed by subsystem
func (p Probes) Markers() map[inventory.Subsystem]string {
	all := map[inventory.Subsystem]string{
		inventory.KernelDebug: p.KernelDebug,
		inventory.BaseDebug:   p.BaseDebug,
		inventory.Lib32:       p.Lib32,
		inventory.Lib32Debug:  p.Lib32Debug,
		inventory.Src:         p.Src,
		inventory.Tests:       p.Tests,
	}
	out := make(map[inventory.Subsystem]string, len(all))
	for s, path := range all {
		if path != "" {
			out[s] = path
		}
	}
	return out
}

// Merge configures the three-way merge tool
type Merge struct {
	Tool string `koanf:"tool"`
}

// Install configures the package fetch and install steps
type Install struct {
	FetchAttempts int    `koanf:"fetch_attempts"`
	DBDir         string `koanf:"db_dir"`
}

// Services lists the services restarted after installation if running
type Services struct {
	Restart []string `koanf:"restart"`
}

// Cleanup lists files removed at the end of a conversion
type Cleanup struct {
	StrayFiles []string `koanf:"stray_files"`
}

// BootEnvironment controls the boot environment created before commit
type BootEnvironment struct {
	Create bool   `koanf:"create"`
	Name   string `koanf:"name"`
}

// Validate checks the values that would otherwise fail deep inside a run
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Repo.Name) == "" {
		return errors.New(errors.ErrConfigValid, "repo.name must not be empty")
	}
	if strings.ContainsAny(c.Repo.Name, "/ \t") {
		return errors.Newf(errors.ErrConfigValid, "repo.name %q must be a plain name", c.Repo.Name)
	}
	if c.Repo.ConfDir == "" {
		return errors.New(errors.ErrConfigValid, "repo.conf_dir must not be empty")
	}
	if c.Install.FetchAttempts <= 0 {
		return errors.Newf(errors.ErrConfigValid,
			"install.fetch_attempts must be positive, got %d", c.Install.FetchAttempts)
	}
	if !strings.HasPrefix(c.Paths.BackupSuffix, ".") || len(c.Paths.BackupSuffix) < 2 {
		return errors.Newf(errors.ErrConfigValid,
			"paths.backup_suffix %q must start with a dot", c.Paths.BackupSuffix)
	}
	if len(c.Paths.SearchRoots) == 0 {
		return errors.New(errors.ErrConfigValid, "paths.search_roots must not be empty")
	}
	if c.BootEnvironment.Create && c.BootEnvironment.Name == "" {
		return errors.New(errors.ErrConfigValid, "boot_environment.name must be set when create is enabled")
	}
	return nil
}
