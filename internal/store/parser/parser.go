// Package parser decomposes template documents into prompt template
// records. Documents may concatenate several records with a separator
// token; each segment decodes and fails independently.
package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	pkgtemplate "github.com/goliatone/go-promptstore/pkg/template"
)

// Parser implements template.Parser using yaml.v3.
type Parser struct {
	options pkgtemplate.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgtemplate.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgtemplate.ParserOptions) *Parser {
	if options.Separator == "" {
		options.Separator = pkgtemplate.DefaultSeparator
	}
	return &Parser{options: options}
}

// Parse splits the document on the separator token and decodes each
// segment. Structural failures are attached to their segment; only an
// empty payload or a cancelled context fails the whole document.
func (p *Parser) Parse(ctx context.Context, doc pkgtemplate.Document) ([]pkgtemplate.Segment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, errors.New("template parser: document payload is empty")
	}

	pieces := splitSegments(string(raw), p.options.Separator)

	segments := make([]pkgtemplate.Segment, 0, len(pieces))
	index := 0
	for _, piece := range pieces {
		if strings.TrimSpace(piece) == "" {
			continue
		}
		segment := pkgtemplate.Segment{Index: index}
		segment.Template, segment.Err = decodeSegment(piece, index, doc.Location())
		segments = append(segments, segment)
		index++
	}

	if len(segments) == 0 {
		return nil, errors.New("template parser: document contains no segments")
	}
	return segments, nil
}

// splitSegments cuts raw on separator lines. A leading separator line
// yields no empty first segment.
func splitSegments(raw, separator string) []string {
	lines := strings.Split(raw, "\n")

	var (
		segments []string
		current  []string
	)
	flush := func() {
		segments = append(segments, strings.Join(current, "\n"))
		current = current[:0]
	}

	for _, line := range lines {
		if isSeparatorLine(line, separator) {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return segments
}

// isSeparatorLine matches the token at column 0 only, tolerating trailing
// whitespace and a \r from CRLF files. An indented token is block-scalar
// content, never a separator, matching YAML's own document-marker rule.
func isSeparatorLine(line, separator string) bool {
	return strings.TrimRight(line, " \t\r") == separator
}

// decodeSegment unmarshals one segment into a Template. Unknown keys are
// tolerated; scalar type mismatches and malformed YAML are structural
// errors.
func decodeSegment(piece string, index int, location string) (pkgtemplate.Template, error) {
	var record pkgtemplate.Template
	if err := yaml.Unmarshal([]byte(piece), &record); err != nil {
		return pkgtemplate.Template{}, fmt.Errorf("template parser: %s segment %d: %w", location, index, err)
	}

	// A segment that decodes to nothing at all (for instance a bare YAML
	// comment) is structural noise rather than an invalid record.
	if record.IsZero() {
		var probe map[string]any
		if err := yaml.Unmarshal([]byte(piece), &probe); err != nil || len(probe) == 0 {
			return pkgtemplate.Template{}, fmt.Errorf("template parser: %s segment %d: no recognisable mapping", location, index)
		}
	}

	return record, nil
}
