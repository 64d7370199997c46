// Package lecternfs provides the file systems used by lectern.
package lecternfs

import (
	"os"

	"github.com/spf13/afero"

	"github.com/getlectern/lectern/common/paths"
	"github.com/getlectern/lectern/config"
)

// Os points to the (real) Os filesystem.
var Os = &afero.OsFs{}

// Fs holds the core filesystems used during a build.
type Fs struct {
	// Source is the site source file system.
	// This is afero.OsFs in production and afero.MemMapFs in many tests.
	Source afero.Fs

	// PublishDir is where rendered pages and copied assets end up.
	// It is a base-path view rooted at publishDir.
	PublishDir afero.Fs

	// WorkingDirReadOnly is a read-only file system
	// restricted to the project working dir.
	WorkingDirReadOnly afero.Fs
}

// NewDefault creates an Fs on top of the OS filesystem.
func NewDefault(cfg config.Provider, workingDir string) *Fs {
	return newFs(Os, Os, cfg, workingDir)
}

// NewFrom creates a new Fs based on the provided Afero Fs
// as source and destination file systems. Useful for testing.
func NewFrom(fs afero.Fs, cfg config.Provider, workingDir string) *Fs {
	return newFs(fs, fs, cfg, workingDir)
}

func newFs(source, destination afero.Fs, cfg config.Provider, workingDir string) *Fs {
	cfg.Set("workingDir", workingDir)
	publishDir := cfg.GetString("publishDir")

	absPublishDir := paths.AbsPathify(workingDir, publishDir)

	// Make sure the publish dir is always ready to use.
	if err := destination.MkdirAll(absPublishDir, 0777); err != nil && !os.IsExist(err) {
		panic(err)
	}

	return &Fs{
		Source:             source,
		PublishDir:         afero.NewBasePathFs(destination, absPublishDir),
		WorkingDirReadOnly: workingDirFsReadOnly(source, workingDir),
	}
}

func workingDirFsReadOnly(base afero.Fs, workingDir string) afero.Fs {
	if workingDir == "" {
		return afero.NewReadOnlyFs(base)
	}
	return afero.NewBasePathFs(afero.NewReadOnlyFs(base), workingDir)
}
