// Package testsupport provides fixture helpers shared by the package
// tests: building template documents and writing store trees into
// temporary directories.
package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-promptstore/pkg/template"
)

// ValidTemplate returns a record with every required field populated,
// suitable as a baseline that tests mutate.
func ValidTemplate(title string) template.Template {
	return template.Template{
		Title:           title,
		Category:        "create",
		Subcategory:     "web_apps",
		Difficulty:      "intermediate",
		Description:     "Scaffold a service from a short description.",
		Example:         "Create a REST API with a health endpoint.",
		ExpectedOutcome: "A runnable project with the requested endpoints.",
		Notes:           "Pin dependency versions in the output.",
	}
}

// DocumentText renders a record as the on-disk document format. Block
// scalars are used for multi-line fields so fixtures look like the real
// library files.
func DocumentText(record template.Template) string {
	var sb strings.Builder
	writeField := func(key, value string) {
		if value == "" {
			return
		}
		if strings.Contains(value, "\n") {
			fmt.Fprintf(&sb, "%s: |\n", key)
			for _, line := range strings.Split(value, "\n") {
				fmt.Fprintf(&sb, "  %s\n", line)
			}
			return
		}
		fmt.Fprintf(&sb, "%s: %q\n", key, value)
	}

	writeField(template.FieldTitle, record.Title)
	writeField(template.FieldCategory, record.Category)
	writeField(template.FieldSubcategory, record.Subcategory)
	writeField(template.FieldDifficulty, record.Difficulty)
	writeField(template.FieldDescription, record.Description)
	writeField(template.FieldExample, record.Example)
	writeField(template.FieldExpectedOutcome, record.ExpectedOutcome)
	writeField(template.FieldNotes, record.Notes)
	return sb.String()
}

// WriteTree writes the given relative path to document text pairs under
// a fresh temporary directory and returns the root.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

// WriteTemplate renders record at rel beneath root, creating parent
// directories.
func WriteTemplate(t *testing.T, root, rel string, record template.Template) {
	t.Helper()

	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(DocumentText(record)), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}
