package inventory_test

import (
	"testing"

	"github.com/arthur-debert/pkgbasify/pkg/inventory"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopulated(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/empty", 0755))
	require.NoError(t, afero.WriteFile(fs, "/full/file", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/regular", []byte("x"), 0644))

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"nonexistent path", "/nope", false},
		{"empty directory", "/empty", false},
		{"non-empty directory", "/full", true},
		{"regular file", "/regular", true},
		{"missing file", "/full/missing", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inventory.Populated(fs, tt.path))
		})
	}
}

func TestScan(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/usr/lib/debug/boot/kernel/kernel.debug", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/usr/lib32/libc.so.7", []byte("x"), 0444))
	require.NoError(t, fs.MkdirAll("/usr/src", 0755))

	inv := inventory.NewScanner(fs, nil).Scan()

	assert.True(t, inv.Has(inventory.KernelDebug))
	assert.False(t, inv.Has(inventory.BaseDebug))
	assert.True(t, inv.Has(inventory.Lib32))
	assert.False(t, inv.Has(inventory.Lib32Debug))
	assert.False(t, inv.Has(inventory.Src), "empty /usr/src is not an installed source tree")
	assert.False(t, inv.Has(inventory.Tests))
}

func TestScanReflectsCurrentDisk(t *testing.T) {
	fs := afero.NewMemMapFs()
	scanner := inventory.NewScanner(fs, nil)

	assert.False(t, scanner.Scan().Has(inventory.Tests))

	require.NoError(t, afero.WriteFile(fs, "/usr/tests/Kyuafile", []byte("x"), 0644))
	assert.True(t, scanner.Scan().Has(inventory.Tests))
}

func TestScannerOverrides(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/alt/src/Makefile", []byte("x"), 0644))

	scanner := inventory.NewScanner(fs, map[inventory.Subsystem]string{inventory.Src: "/alt/src"})

	assert.Equal(t, "/alt/src", scanner.Marker(inventory.Src))
	assert.Equal(t, inventory.DefaultMarkers[inventory.Tests], scanner.Marker(inventory.Tests))
	assert.True(t, scanner.Scan().Has(inventory.Src))
}

func TestSubsystemString(t *testing.T) {
	names := make([]string, 0, len(inventory.Subsystems))
	for _, s := range inventory.Subsystems {
		names = append(names, s.String())
	}
	assert.Equal(t, []string{"kernel-debug", "base-debug", "lib32", "lib32-debug", "src", "tests"}, names)
}
