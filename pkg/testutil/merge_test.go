package testutil

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff3Handler(t *testing.T) {
	fs := afero.NewMemMapFs()
	WriteFile(t, fs, "/base", "a\nb\n", 0644)
	WriteFile(t, fs, "/ours", "A\nb\n", 0644)
	WriteFile(t, fs, "/theirs", "a\nB\n", 0644)
	WriteFile(t, fs, "/clash", "a\nX\n", 0644)
	h := Diff3Handler(fs)

	res, err := h([]string{"-m", "/ours", "/base", "/theirs"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Status)
	assert.Equal(t, "A\nB\n", res.Stdout)

	res, err = h([]string{"-m", "/clash", "/base", "/theirs"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Status)

	res, err = h([]string{"-m", "/missing", "/base", "/theirs"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Status)
}
