package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	internalloader "github.com/goliatone/go-promptstore/internal/store/loader"
	internalparser "github.com/goliatone/go-promptstore/internal/store/parser"
	"github.com/goliatone/go-promptstore/pkg/template"
	"github.com/goliatone/go-promptstore/pkg/validation"
)

// defaultExtensions are the document extensions considered during a walk.
var defaultExtensions = []string{".yaml", ".yml"}

// Option customises the catalog configuration.
type Option func(*Catalog)

// WithLoader injects a custom document loader.
func WithLoader(loader template.Loader) Option {
	return func(c *Catalog) {
		c.loader = loader
	}
}

// WithParser injects a custom document parser.
func WithParser(parser template.Parser) Option {
	return func(c *Catalog) {
		c.parser = parser
	}
}

// WithValidator injects a custom validator.
func WithValidator(validator *validation.Validator) Option {
	return func(c *Catalog) {
		c.validator = validator
	}
}

// WithExtensions overrides the file extensions treated as template
// documents. Extensions are normalised to a leading dot, lower case.
func WithExtensions(extensions ...string) Option {
	return func(c *Catalog) {
		if len(extensions) == 0 {
			return
		}
		c.extensions = c.extensions[:0]
		for _, ext := range extensions {
			trimmed := strings.ToLower(strings.TrimSpace(ext))
			if trimmed == "" {
				continue
			}
			if !strings.HasPrefix(trimmed, ".") {
				trimmed = "." + trimmed
			}
			c.extensions = append(c.extensions, trimmed)
		}
	}
}

// WithIncludeGlobs restricts the walk to root-relative paths matching at
// least one doublestar pattern (for instance "create/**/*.yaml").
func WithIncludeGlobs(patterns ...string) Option {
	return func(c *Catalog) {
		for _, pattern := range patterns {
			trimmed := strings.TrimSpace(pattern)
			if trimmed != "" {
				c.includes = append(c.includes, trimmed)
			}
		}
	}
}

// WithSeparator overrides the token splitting concatenated documents. Only
// consulted by the built-in parser.
func WithSeparator(token string) Option {
	return func(c *Catalog) {
		trimmed := strings.TrimSpace(token)
		if trimmed != "" {
			c.separator = trimmed
		}
	}
}

// WithStrictPlacement validates category/subcategory fields against the
// directory a document lives in. Mismatched records are reported and
// excluded. The default ignores placement entirely since the store format
// never enforced it.
func WithStrictPlacement() Option {
	return func(c *Catalog) {
		c.strictPlacement = true
	}
}

// WithLogger attaches a zap logger. The default is a no-op logger so the
// library stays quiet unless the caller opts in.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Catalog coordinates the walk, parse, and validate stages of a template
// store load. Missing dependencies are initialised with the built-in
// implementations so callers can start with a single constructor call.
type Catalog struct {
	loader          template.Loader
	parser          template.Parser
	validator       *validation.Validator
	extensions      []string
	includes        []string
	separator       string
	strictPlacement bool
	logger          *zap.Logger
	defaultsApplied bool
}

// New constructs a Catalog applying any provided options.
func New(options ...Option) *Catalog {
	c := &Catalog{
		extensions: append([]string(nil), defaultExtensions...),
		separator:  template.DefaultSeparator,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.applyDefaults()
	return c
}

func (c *Catalog) applyDefaults() {
	if c.defaultsApplied {
		return
	}
	if c.parser == nil {
		c.parser = internalparser.New(template.NewParserOptions(template.WithSeparator(c.separator)))
	}
	if c.validator == nil {
		var opts []validation.Option
		if c.strictPlacement {
			opts = append(opts, validation.WithStrictPlacement())
		}
		c.validator = validation.New(opts...)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.defaultsApplied = true
}

// Load walks the directory rooted at root and returns every valid record
// found beneath it along with per-document issues. A missing or unreadable
// root is fatal and produces no partial result.
func (c *Catalog) Load(ctx context.Context, root string) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("catalog: context is required")
	}
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("catalog: root path is required")
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("catalog: root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog: root %s is not a directory", root)
	}

	return c.LoadFS(ctx, os.DirFS(filepath.Clean(root)))
}

// LoadFS is Load for an abstract filesystem. Paths in the result are
// relative to the filesystem root.
func (c *Catalog) LoadFS(ctx context.Context, fsys fs.FS) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("catalog: context is required")
	}
	if fsys == nil {
		return nil, errors.New("catalog: filesystem is required")
	}
	c.applyDefaults()

	loader := c.loader
	if loader == nil {
		loader = internalloader.New(template.NewLoaderOptions(template.WithFileSystem(fsys)))
	}

	result := &Result{}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// A broken root surfaces here on the first callback; anything
			// deeper is a per-file problem.
			if path == "." {
				return fmt.Errorf("catalog: walk root: %w", walkErr)
			}
			result.Issues = append(result.Issues, Issue{
				Path:    path,
				Segment: WholeFile,
				Kind:    IssueRead,
				Err:     walkErr,
			})
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			if isHiddenDir(path) {
				return fs.SkipDir
			}
			return nil
		}
		if !c.matches(path) {
			return nil
		}

		c.loadFile(ctx, loader, path, result)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortResult(result)
	c.logger.Debug("catalog load complete",
		zap.Int("templates", len(result.Templates)),
		zap.Int("issues", len(result.Issues)),
	)
	return result, nil
}

// loadFile runs the read, parse, and validate pipeline for one document
// and appends records and issues to the result.
func (c *Catalog) loadFile(ctx context.Context, loader template.Loader, path string, result *Result) {
	doc, err := loader.Load(ctx, template.SourceFromFS(path))
	if err != nil {
		kind := IssueParse
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			kind = IssueRead
		}
		result.Issues = append(result.Issues, Issue{Path: path, Segment: WholeFile, Kind: kind, Err: err})
		return
	}

	segments, err := c.parser.Parse(ctx, doc)
	if err != nil {
		result.Issues = append(result.Issues, Issue{Path: path, Segment: WholeFile, Kind: IssueParse, Err: err})
		return
	}

	for _, segment := range segments {
		if segment.Err != nil {
			result.Issues = append(result.Issues, Issue{Path: path, Segment: segment.Index, Kind: IssueParse, Err: segment.Err})
			continue
		}

		record := segment.Template
		record.Path = path
		record.Segment = segment.Index

		if err := c.validator.Validate(record); err != nil {
			issue := Issue{Path: path, Segment: segment.Index, Kind: IssueSchema, Err: err}
			var schemaErr *validation.SchemaError
			if errors.As(err, &schemaErr) {
				issue.Fields = schemaErr.Fields
			}
			result.Issues = append(result.Issues, issue)
			continue
		}

		// The directory layout encodes category and subcategory
		// redundantly; nothing in the store format enforces agreement, so
		// mismatches are ignored unless strict placement was requested.
		if c.validator.StrictPlacement() {
			placements := validation.CheckPlacement(record, path)
			if len(placements) > 0 {
				for _, placement := range placements {
					result.Issues = append(result.Issues, Issue{
						Path:    path,
						Segment: segment.Index,
						Kind:    IssuePlacement,
						Fields:  []string{placement.Field},
						Err:     placement,
					})
				}
				continue
			}
		}

		result.Templates = append(result.Templates, record)
	}
}

// matches reports whether the walk-relative path names a template
// document under the configured extensions and include globs.
func (c *Catalog) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	found := false
	for _, candidate := range c.extensions {
		if ext == candidate {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	if len(c.includes) == 0 {
		return true
	}
	for _, pattern := range c.includes {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

func isHiddenDir(path string) bool {
	base := filepath.Base(path)
	return base != "." && strings.HasPrefix(base, ".")
}
