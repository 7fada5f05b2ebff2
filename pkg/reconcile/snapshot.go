package reconcile

import (
	"path/filepath"

	"github.com/arthur-debert/pkgbasify/pkg/errors"
	"github.com/arthur-debert/pkgbasify/pkg/filesystem"
	"github.com/arthur-debert/pkgbasify/pkg/logging"
	"github.com/spf13/afero"
)

// DefaultDatabase is etcupdate's record of the installed release
const DefaultDatabase = "/var/db/etcupdate/current"

// snapshotDirName is the directory inside the work directory holding the copy
const snapshotDirName = "current"

// ErrNoDatabase is returned when there is no database to snapshot
var ErrNoDatabase = errors.New(errors.ErrNotFound, "configuration database not found")

// Snapshot copies the database directory src wholesale into workDir and
// returns the root of the copy. Paths inside the copy mirror the live
// filesystem: <root>/etc/rc.conf is the ancestor of /etc/rc.conf.
func Snapshot(fsys afero.Fs, src, workDir string) (string, error) {
	logger := logging.GetLogger("reconcile")
	done := logging.LogOperationStart(logger, "snapshot")
	defer done()

	ok, err := afero.DirExists(fsys, src)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", src)
	}
	if !ok {
		return "", ErrNoDatabase
	}

	dst := filepath.Join(workDir, snapshotDirName)
	if err := filesystem.CopyTree(fsys, src, dst); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to snapshot %s", src)
	}

	logger.Info().Str("source", src).Str("snapshot", dst).Msg("Snapshot taken")
	return dst, nil
}
