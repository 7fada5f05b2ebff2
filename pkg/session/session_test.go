package session_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/pkgbasify/pkg/errors"
	"github.com/arthur-debert/pkgbasify/pkg/session"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) (*session.Session, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s, err := session.New(fs, "/tmp")
	require.NoError(t, err)
	return s, fs
}

func TestNewCreatesUniqueWorkDirs(t *testing.T) {
	fs := afero.NewMemMapFs()
	a, err := session.New(fs, "/tmp")
	require.NoError(t, err)
	b, err := session.New(fs, "/tmp")
	require.NoError(t, err)

	assert.NotEqual(t, a.WorkDir(), b.WorkDir())
	ok, err := afero.DirExists(fs, a.WorkDir())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, session.Setup, a.Phase())
}

func TestPhaseTransitions(t *testing.T) {
	s, _ := newSession(t)

	require.Error(t, s.Finish(), "cannot finish before commit")
	require.NoError(t, s.Commit())
	assert.Equal(t, session.Committed, s.Phase())
	require.Error(t, s.Commit(), "commit happens once")
	require.Error(t, s.Rollback(), "no rollback after commit")
	require.NoError(t, s.Finish())
	assert.Equal(t, session.Done, s.Phase())
}

func TestRollbackRunsInReverse(t *testing.T) {
	s, _ := newSession(t)
	var order []string
	s.OnRollback("first", func() error { order = append(order, "first"); return nil })
	s.OnRollback("second", func() error { order = append(order, "second"); return nil })

	require.NoError(t, s.Rollback())
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestRollbackContinuesPastFailures(t *testing.T) {
	s, _ := newSession(t)
	ran := false
	s.OnRollback("first", func() error { ran = true; return nil })
	s.OnRollback("second", func() error { return stderrors.New("boom") })

	err := s.Rollback()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
	assert.True(t, ran)
}

func TestCommitDropsRollbackActions(t *testing.T) {
	s, _ := newSession(t)
	called := false
	s.OnRollback("x", func() error { called = true; return nil })

	require.NoError(t, s.Commit())
	_ = s.Rollback()
	assert.False(t, called)
}

func TestRecordAccumulatesInOrder(t *testing.T) {
	s, _ := newSession(t)
	require.NoError(t, s.Commit())

	s.Record("install", nil)
	s.Record("restart sshd", stderrors.New("not running"))
	s.Record("cap_mkdb", stderrors.New("exit 1"))

	errs := s.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, "restart sshd", errs[0].Op)
	assert.Equal(t, "cap_mkdb", errs[1].Op)
	assert.Equal(t, "restart sshd: not running", errs[0].Error())
}

func TestCloseRemovesWorkDir(t *testing.T) {
	s, fs := newSession(t)
	require.NoError(t, s.Close())

	ok, err := afero.DirExists(fs, s.WorkDir())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCloseKeepsWorkDir(t *testing.T) {
	s, fs := newSession(t)
	s.Keep()
	require.NoError(t, s.Close())

	ok, err := afero.DirExists(fs, s.WorkDir())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, s.Kept())
}
