// Package export turns a loaded catalog into browsable artifacts: a
// markdown index, a JSON dump, or an HTML page. Exporters present the
// records as-is; they perform no variable substitution inside prompts.
package export

import (
	"context"

	"github.com/goliatone/go-promptstore/pkg/catalog"
)

// Options carries per-export instructions shared across exporters.
type Options struct {
	// Title labels the generated index. Empty selects a generic heading.
	Title string

	// IncludeIssues appends the load issues to the output so a reader can
	// see what was excluded and why.
	IncludeIssues bool
}

// Exporter renders a load result into bytes. Implementations must be safe
// for concurrent use; the registry hands the same instance to every
// caller.
type Exporter interface {
	// Name returns the registry identifier.
	Name() string

	// Export renders the result.
	Export(ctx context.Context, result *catalog.Result, opts Options) ([]byte, error)
}
