package source

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/getlectern/lectern/common/paths"
	"github.com/getlectern/lectern/helpers"
)

// FileInfo describes a source file.
type FileInfo struct {
	// Full path to the file as seen by the source filesystem.
	filename string

	sp *SourceSpec

	// Derived from filename, relative to the content root.
	relPath  string
	relDir   string
	name     string
	baseName string
	ext      string // extension without any "."

	section  string
	uniqueID string

	lazyInit sync.Once
}

// NewFileInfo creates a FileInfo for filename, with relPath relative to the
// content root being walked.
func (sp *SourceSpec) NewFileInfo(filename, relPath string) *FileInfo {
	relPath = filepath.ToSlash(relPath)
	name := filepath.Base(relPath)
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	baseName := strings.TrimSuffix(name, filepath.Ext(name))

	relDir := filepath.ToSlash(filepath.Dir(relPath))
	if relDir == "." {
		relDir = ""
	}

	return &FileInfo{
		filename: filename,
		sp:       sp,
		relPath:  relPath,
		relDir:   relDir,
		name:     name,
		baseName: baseName,
		ext:      ext,
	}
}

// Filename returns the file's path as seen by the source filesystem.
func (fi *FileInfo) Filename() string { return fi.filename }

// Path gets the relative path including file name and extension.
// The directory is relative to the content root.
func (fi *FileInfo) Path() string { return fi.relPath }

// Dir gets the name of the directory that contains this file.
// The directory is relative to the content root.
func (fi *FileInfo) Dir() string { return fi.relDir }

// Ext returns a file's extension without the leading period (ie. "md").
func (fi *FileInfo) Ext() string { return fi.ext }

// LogicalName returns a file's name and extension (ie. "lesson.md").
func (fi *FileInfo) LogicalName() string { return fi.name }

// BaseFileName returns a file's name without extension (ie. "lesson").
func (fi *FileInfo) BaseFileName() string { return fi.baseName }

// Section is the first directory below the content root.
func (fi *FileInfo) Section() string {
	fi.init()
	return fi.section
}

// UniqueID returns the file's unique MD5 hash identifier, derived from its
// relative path.
func (fi *FileInfo) UniqueID() string {
	fi.init()
	return fi.uniqueID
}

// IsContent reports whether the file is a renderable document.
func (fi *FileInfo) IsContent() bool {
	return IsContent(fi.ext)
}

// Parts of FileInfo are only used for some files and are slightly
// expensive to construct.
func (fi *FileInfo) init() {
	fi.lazyInit.Do(func() {
		relDir := strings.Trim(fi.relDir, paths.FilePathSeparator+"/")
		if relDir != "" {
			fi.section = strings.Split(relDir, "/")[0]
		}

		fi.uniqueID = helpers.MD5String(fi.relPath)
	})
}
