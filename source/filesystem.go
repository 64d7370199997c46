package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// Filesystem represents a source filesystem rooted at a content directory.
type Filesystem struct {
	files  []*FileInfo
	assets []*FileInfo

	filesInit    sync.Once
	filesInitErr error

	Base string

	*SourceSpec
}

// NewFilesystem returns a filesystem for the given content root.
func (sp *SourceSpec) NewFilesystem(base string) *Filesystem {
	return &Filesystem{SourceSpec: sp, Base: base}
}

// Files returns the renderable documents below the content root.
func (f *Filesystem) Files() ([]*FileInfo, error) {
	f.filesInit.Do(func() {
		if err := f.captureFiles(); err != nil {
			f.filesInitErr = fmt.Errorf("capture files: %w", err)
		}
	})
	return f.files, f.filesInitErr
}

// Assets returns the non-content files below the content root. These get
// copied to the output byte-for-byte.
func (f *Filesystem) Assets() ([]*FileInfo, error) {
	if _, err := f.Files(); err != nil {
		return nil, err
	}
	return f.assets, nil
}

func (f *Filesystem) captureFiles() error {
	exists, err := afero.DirExists(f.SourceFs, f.Base)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("content dir %q does not exist", f.Base)
	}

	return afero.Walk(f.SourceFs, f.Base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != f.Base && f.IgnoreFile(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if f.IgnoreFile(path) {
			return nil
		}

		rel, err := filepath.Rel(f.Base, path)
		if err != nil {
			return err
		}

		fi := f.NewFileInfo(path, rel)
		if fi.IsContent() {
			f.files = append(f.files, fi)
		} else {
			f.assets = append(f.assets, fi)
		}
		return nil
	})
}
