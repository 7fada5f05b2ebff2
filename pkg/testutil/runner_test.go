package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/arthur-debert/pkgbasify/pkg/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeRunnerLongestPrefixWins(t *testing.T) {
	f := NewFakeRunner().
		OnStdout("pkg", "generic").
		OnStdout("pkg rquery", "specific")

	res, err := f.Run(context.Background(), "pkg", "rquery", "-r", "FreeBSD-base", "%n")
	require.NoError(t, err)
	assert.Equal(t, "specific", res.Stdout)

	res, err = f.Run(context.Background(), "pkg", "-N")
	require.NoError(t, err)
	assert.Equal(t, "generic", res.Stdout)
}

func TestFakeRunnerPrefixMatchesWholeWords(t *testing.T) {
	f := NewFakeRunner().OnStatus("pkg", 1)

	res, err := f.Run(context.Background(), "pkgbasify")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Status)
}

func TestFakeRunnerRecordsCalls(t *testing.T) {
	f := NewFakeRunner().OnError("service sshd restart", errors.New("boom"))

	_, err := f.Run(context.Background(), "service", "sshd", "restart")
	assert.Error(t, err)

	assert.True(t, f.Called("service sshd"))
	assert.False(t, f.Called("pwd_mkdb"))
	assert.Equal(t, []string{"service sshd restart"}, f.Commands())
}

func TestFakeRunnerHandler(t *testing.T) {
	f := NewFakeRunner().Handle("echo", func(args []string) (command.Result, error) {
		return command.Result{Stdout: args[0]}, nil
	})

	res, err := f.Run(context.Background(), "echo", "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", res.Stdout)
}
