package template

import "path/filepath"

// SourceKind selects the loading strategy for a document.
type SourceKind string

const (
	// SourceKindFile is a path on the host filesystem, used when a
	// document is loaded outside a catalog walk.
	SourceKindFile SourceKind = "file"

	// SourceKindFS is a slash-separated path inside the fs.FS a catalog
	// walk is bound to. Result and Issue paths carry this form.
	SourceKindFS SourceKind = "fs"
)

// Source identifies where a template document lives. The zero value is
// invalid; construct one with SourceFromFile or SourceFromFS.
type Source struct {
	kind     SourceKind
	location string
}

// SourceFromFile returns a Source for a host filesystem path.
func SourceFromFile(path string) Source {
	return Source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS returns a Source for a walk-relative path inside an fs.FS.
func SourceFromFS(name string) Source {
	return Source{kind: SourceKindFS, location: name}
}

// Kind reports the loading strategy the source requires.
func (s Source) Kind() SourceKind {
	return s.kind
}

// Location returns the path the source points at.
func (s Source) Location() string {
	return s.location
}

// IsZero reports whether the source was never initialised.
func (s Source) IsZero() bool {
	return s.kind == "" && s.location == ""
}
