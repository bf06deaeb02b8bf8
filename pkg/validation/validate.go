// Package validation checks parsed template records against the fixed
// document schema and, optionally, against their placement in the
// directory tree.
package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-promptstore/pkg/template"
)

// SchemaError reports the required fields a record is missing. It
// implements error so callers can surface it directly in issue lists.
type SchemaError struct {
	// Path locates the offending document.
	Path string

	// Fields names the missing or empty required keys, in schema order.
	Fields []string
}

// Error renders the error in the "missing field: x" shape consumers match
// against.
func (e *SchemaError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "template is invalid"
	}
	noun := "field"
	if len(e.Fields) > 1 {
		noun = "fields"
	}
	return fmt.Sprintf("missing %s: %s", noun, strings.Join(e.Fields, ", "))
}

// Validator applies schema and placement checks to template records.
type Validator struct {
	strictPlacement bool
}

// Option customises validator behaviour.
type Option func(*Validator)

// WithStrictPlacement enables category/subcategory placement checks,
// which are otherwise skipped entirely.
func WithStrictPlacement() Option {
	return func(v *Validator) {
		v.strictPlacement = true
	}
}

// New constructs a Validator applying any provided options.
func New(options ...Option) *Validator {
	v := &Validator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

// StrictPlacement reports whether placement mismatches fail validation.
func (v *Validator) StrictPlacement() bool {
	return v != nil && v.strictPlacement
}

// Validate checks the record's required fields. It returns nil when the
// record satisfies the schema, or a *SchemaError naming every missing
// field.
func (v *Validator) Validate(record template.Template) error {
	missing := record.MissingFields()
	if len(missing) == 0 {
		return nil
	}
	return &SchemaError{Path: record.Path, Fields: missing}
}
