package host_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/pkgbasify/pkg/command"
	"github.com/arthur-debert/pkgbasify/pkg/errors"
	"github.com/arthur-debert/pkgbasify/pkg/host"
	"github.com/arthur-debert/pkgbasify/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPkgBootstrapped(t *testing.T) {
	ctx := context.Background()
	r := testutil.NewFakeRunner()
	ok, err := host.NewPkgTool(r).Bootstrapped(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	r.OnStatus("pkg -N", 1)
	ok, err = host.NewPkgTool(r).Bootstrapped(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPkgWhich(t *testing.T) {
	ctx := context.Background()
	r := testutil.NewFakeRunner()
	p := host.NewPkgTool(r)

	ok, err := p.Which(ctx, "/usr/bin/uname")
	require.NoError(t, err)
	assert.False(t, ok, "empty output means not owned")

	r.OnStdout("pkg which", "FreeBSD-runtime-15.0\n")
	ok, err = p.Which(ctx, "/usr/bin/uname")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "pkg which --quiet /usr/bin/uname", r.Commands()[1])
}

func TestPkgReposDirs(t *testing.T) {
	r := testutil.NewFakeRunner().OnStdout("pkg config REPOS_DIR", "/etc/pkg/, /usr/local/etc/pkg/repos\n")
	dirs, err := host.NewPkgTool(r).ReposDirs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/etc/pkg/", "/usr/local/etc/pkg/repos/"}, dirs)
}

func TestPkgQueries(t *testing.T) {
	ctx := context.Background()
	r := testutil.NewFakeRunner().
		OnStdout("pkg rquery -r FreeBSD-base %n", "FreeBSD-runtime\nFreeBSD-kernel-generic\n").
		OnStdout("pkg rquery -r FreeBSD-base %At %Av", "FreeBSD_version 1500000\n")
	p := host.NewPkgTool(r)

	names, err := p.Candidates(ctx, "FreeBSD-base")
	require.NoError(t, err)
	assert.Equal(t, []string{"FreeBSD-runtime", "FreeBSD-kernel-generic"}, names)

	ann, err := p.Annotations(ctx, "FreeBSD-base", "FreeBSD-runtime")
	require.NoError(t, err)
	assert.Equal(t, []string{"FreeBSD_version 1500000"}, ann)
}

func TestPkgInstallArguments(t *testing.T) {
	ctx := context.Background()
	r := testutil.NewFakeRunner()
	p := host.NewPkgTool(r)

	require.NoError(t, p.Fetch(ctx, "FreeBSD-base", []string{"a", "b"}))
	require.NoError(t, p.Install(ctx, "FreeBSD-base", []string{"a", "b"}, ""))
	require.NoError(t, p.Install(ctx, "FreeBSD-base", []string{"a"}, "/var/db/pkg"))

	assert.Equal(t, []string{
		"pkg fetch -d -y -r FreeBSD-base a b",
		"pkg install -y -r FreeBSD-base a b",
		"pkg -o PKG_DBDIR=/var/db/pkg install -y -r FreeBSD-base a",
	}, r.Commands())
}

func TestCommandFailuresAreCoded(t *testing.T) {
	r := testutil.NewFakeRunner().
		On("pkg update", command.Result{Status: 3, Stderr: "no network"}).
		OnError("pwd_mkdb", stderrors.New("not found"))

	err := host.NewPkgTool(r).Update(context.Background(), "FreeBSD-base")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommand))
	assert.Equal(t, "no network", errors.GetErrorDetails(err)["stderr"])

	err = host.NewSystem(r).RebuildPasswordDB(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommand))
}

func TestSystem(t *testing.T) {
	ctx := context.Background()
	r := testutil.NewFakeRunner().
		OnStdout("freebsd-version -u", "14.2-RELEASE-p1\n").
		OnStdout("uname -U", "1402000\n").
		OnStatus("service sshd status", 1).
		OnStatus("bectl check", 255)
	s := host.NewSystem(r)

	v, err := s.UserlandVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "14.2-RELEASE-p1", v)

	osv, err := s.OSVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1402000\n", osv)

	running, err := s.ServiceRunning(ctx, "sshd")
	require.NoError(t, err)
	assert.False(t, running)

	assert.False(t, s.BootEnvironmentsSupported(ctx))

	require.NoError(t, s.RebuildLoginClassDB(ctx))
	require.NoError(t, s.CreateBootEnvironment(ctx, "pre-pkgbase"))
	require.NoError(t, s.DestroyBootEnvironment(ctx, "pre-pkgbase"))
	assert.True(t, r.Called("cap_mkdb /etc/login.conf"))
	assert.True(t, r.Called("bectl destroy -o pre-pkgbase"))
}
