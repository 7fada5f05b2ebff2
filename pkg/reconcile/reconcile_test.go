package reconcile_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pkgbasify/pkg/command"
	"github.com/arthur-debert/pkgbasify/pkg/errors"
	"github.com/arthur-debert/pkgbasify/pkg/reconcile"
	"github.com/arthur-debert/pkgbasify/pkg/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapRoot = "/work/current"

type fixture struct {
	fs     afero.Fs
	runner *testutil.FakeRunner
	engine *reconcile.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	runner := testutil.NewFakeRunner()
	runner.Handle("diff3", testutil.Diff3Handler(fs))
	return &fixture{
		fs:     fs,
		runner: runner,
		engine: reconcile.NewEngine(fs, reconcile.NewDiff3Merger(runner, ""), snapRoot, ""),
	}
}

// stage writes the three versions of path: the snapshot ancestor, the
// admin's edited copy left as a backup, and the freshly installed file.
func (f *fixture) stage(t *testing.T, path, base, ours, theirs string) {
	t.Helper()
	if base != "" {
		require.NoError(t, afero.WriteFile(f.fs, filepath.Join(snapRoot, path), []byte(base), 0644))
	}
	require.NoError(t, afero.WriteFile(f.fs, path+".pkgsave", []byte(ours), 0644))
	require.NoError(t, afero.WriteFile(f.fs, path, []byte(theirs), 0600))
}

func TestSnapshot(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/var/db/etcupdate/current/etc/rc.conf", []byte("a\n"), 0644))

	root, err := reconcile.Snapshot(fs, "/var/db/etcupdate/current", "/work")
	require.NoError(t, err)
	assert.Equal(t, "/work/current", root)

	data, err := afero.ReadFile(fs, "/work/current/etc/rc.conf")
	require.NoError(t, err)
	assert.Equal(t, "a\n", string(data))
}

func TestSnapshotMissingDatabase(t *testing.T) {
	_, err := reconcile.Snapshot(afero.NewMemMapFs(), "/var/db/etcupdate/current", "/work")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestFindBackups(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, p := range []string{
		"/etc/rc.conf.pkgsave",
		"/etc/ssh/sshd_config.pkgsave",
		"/etc/hosts",
		"/boot/kernel/linker.hints.pkgsave",
		"/proc/1/status.pkgsave",
		"/etc/.pkgsave",
	} {
		require.NoError(t, afero.WriteFile(fs, p, nil, 0644))
	}

	found, err := reconcile.FindBackups(fs, []string{"/", "/etc"}, ".pkgsave", []string{"/proc"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/boot/kernel/linker.hints.pkgsave",
		"/etc/rc.conf.pkgsave",
		"/etc/ssh/sshd_config.pkgsave",
	}, found)
}

func TestReconcileDisjointChangesMerge(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "/etc/rc.conf",
		"hostname=base\nsshd_enable=NO\n",
		"hostname=mine\nsshd_enable=NO\n",
		"hostname=base\nsshd_enable=YES\n")

	report := f.engine.Reconcile(context.Background(), []string{"/etc/rc.conf.pkgsave"})

	assert.Equal(t, []string{"/etc/rc.conf"}, report.Merged)
	assert.True(t, report.Clean())

	data, err := afero.ReadFile(f.fs, "/etc/rc.conf")
	require.NoError(t, err)
	assert.Equal(t, "hostname=mine\nsshd_enable=YES\n", string(data))

	info, err := f.fs.Stat("/etc/rc.conf")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "live mode preserved")

	ok, err := afero.Exists(f.fs, "/etc/rc.conf.pkgsave")
	require.NoError(t, err)
	assert.False(t, ok, "backup consumed")
	assert.Equal(t, []string{"diff3 -m /etc/rc.conf.pkgsave /work/current/etc/rc.conf /etc/rc.conf"}, f.runner.Commands())
}

func TestReconcileConflictLeavesFiles(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "/etc/motd", "welcome\n", "hello admin\n", "welcome to 15\n")

	report := f.engine.Reconcile(context.Background(), []string{"/etc/motd.pkgsave"})

	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, "/etc/motd", report.Conflicts[0].Path)
	assert.Equal(t, "/etc/motd.pkgsave", report.Conflicts[0].Backup)
	assert.Contains(t, report.Conflicts[0].Diff, "-hello admin")
	assert.Contains(t, report.Conflicts[0].Diff, "+welcome to 15")
	assert.False(t, report.Clean())

	live, err := afero.ReadFile(f.fs, "/etc/motd")
	require.NoError(t, err)
	assert.Equal(t, "welcome to 15\n", string(live))
	backup, err := afero.ReadFile(f.fs, "/etc/motd.pkgsave")
	require.NoError(t, err)
	assert.Equal(t, "hello admin\n", string(backup))
}

func TestReconcileWithoutSnapshotEntry(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "/boot/kernel/linker.hints", "", "old\n", "new\n")

	report := f.engine.Reconcile(context.Background(), []string{"/boot/kernel/linker.hints.pkgsave"})

	assert.Empty(t, report.Merged)
	assert.Equal(t, []reconcile.Skipped{{Path: "/boot/kernel/linker.hints.pkgsave", Reason: reconcile.ReasonNoSnapshot}}, report.Skipped)
	assert.False(t, f.runner.Called("diff3"), "merger never invoked")

	ok, err := afero.Exists(f.fs, "/boot/kernel/linker.hints.pkgsave")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReconcileMissingLiveFile(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, afero.WriteFile(f.fs, filepath.Join(snapRoot, "/etc/gone"), []byte("x\n"), 0644))
	require.NoError(t, afero.WriteFile(f.fs, "/etc/gone.pkgsave", []byte("y\n"), 0644))

	report := f.engine.Reconcile(context.Background(), []string{"/etc/gone.pkgsave"})

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, reconcile.ReasonNoLiveFile, report.Skipped[0].Reason)
	assert.False(t, f.runner.Called("diff3"))
}

func TestReconcileMergeToolFailure(t *testing.T) {
	f := newFixture(t)
	f.runner.OnStatus("diff3", 2)
	f.stage(t, "/etc/a", "1\n", "2\n", "1\n")
	f.stage(t, "/etc/b", "1\n", "1\n", "1\n")

	report := f.engine.Reconcile(context.Background(), []string{"/etc/a.pkgsave", "/etc/b.pkgsave"})

	require.Len(t, report.Failed, 2, "every file is attempted")
	assert.Equal(t, "/etc/a", report.Failed[0].Path)
	assert.True(t, errors.IsErrorCode(report.Failed[1].Err, errors.ErrCommand))
}

func TestDiff3MergerOnDisk(t *testing.T) {
	if _, err := exec.LookPath("diff3"); err != nil {
		t.Skip("diff3 not available")
	}
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
		return p
	}
	base := write("base", "a\nb\nc\nd\ne\n")
	ours := write("ours", "A\nb\nc\nd\ne\n")
	theirs := write("theirs", "a\nb\nc\nd\nE\n")

	m := reconcile.NewDiff3Merger(command.NewExecRunner(), "")
	res, err := m.Merge(context.Background(), ours, base, theirs)
	require.NoError(t, err)
	assert.False(t, res.Conflict)
	assert.Equal(t, "A\nb\nc\nd\nE\n", string(res.Content))

	clash := write("clash", "a\nb\nc\nd\nX\n")
	res, err = m.Merge(context.Background(), clash, base, theirs)
	require.NoError(t, err)
	assert.True(t, res.Conflict)
}
