// Package loader reads template documents for the catalog walk. Two
// strategies exist: paths inside the fs.FS a catalog is bound to, and
// direct host filesystem paths for standalone use.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	pkgtemplate "github.com/goliatone/go-promptstore/pkg/template"
)

// Loader is the built-in template.Loader.
type Loader struct {
	fsys fs.FS
}

// Ensure the implementation satisfies the public interface.
var _ pkgtemplate.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgtemplate.LoaderOptions) *Loader {
	return &Loader{fsys: options.FileSystem}
}

// Load reads the document the source points at. Read failures keep their
// *fs.PathError chain so callers can distinguish unreadable files from
// malformed ones.
func (l *Loader) Load(ctx context.Context, src pkgtemplate.Source) (pkgtemplate.Document, error) {
	if src.IsZero() {
		return pkgtemplate.Document{}, errors.New("store loader: source is required")
	}
	if err := ctx.Err(); err != nil {
		return pkgtemplate.Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case pkgtemplate.SourceKindFS:
		if l.fsys == nil {
			return pkgtemplate.Document{}, errors.New("store loader: no filesystem bound for fs source")
		}
		data, err = fs.ReadFile(l.fsys, src.Location())
	case pkgtemplate.SourceKindFile:
		var abs string
		if abs, err = filepath.Abs(src.Location()); err == nil {
			data, err = os.ReadFile(abs)
		}
	default:
		return pkgtemplate.Document{}, fmt.Errorf("store loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return pkgtemplate.Document{}, fmt.Errorf("store loader: read %s: %w", src.Location(), err)
	}

	return pkgtemplate.NewDocument(src, data)
}
