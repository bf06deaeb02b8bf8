package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-promptstore/pkg/catalog"
	"github.com/goliatone/go-promptstore/pkg/template"
	"github.com/goliatone/go-promptstore/pkg/testsupport"
)

func TestLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	record := testsupport.ValidTemplate("Build a blog platform")
	testsupport.WriteTemplate(t, root, "create/web_apps/blog.yaml", record)

	result, err := catalog.New().Load(context.Background(), root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !result.Clean() {
		t.Fatalf("expected clean result, got issues %v", result.Issues)
	}
	if result.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", result.Len())
	}

	record.Path = "create/web_apps/blog.yaml"
	if diff := cmp.Diff(record, result.Templates[0]); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFieldReported(t *testing.T) {
	root := t.TempDir()
	broken := testsupport.ValidTemplate("")
	testsupport.WriteTemplate(t, root, "create/web_apps/broken.yaml", broken)

	result, err := catalog.New().Load(context.Background(), root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Len() != 0 {
		t.Fatalf("invalid record must be excluded, got %d records", result.Len())
	}
	if len(result.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %v", result.Issues)
	}

	issue := result.Issues[0]
	if issue.Kind != catalog.IssueSchema {
		t.Fatalf("kind = %q, want schema", issue.Kind)
	}
	if issue.Path != "create/web_apps/broken.yaml" {
		t.Fatalf("path = %q", issue.Path)
	}
	if diff := cmp.Diff([]string{template.FieldTitle}, issue.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEmptyRoot(t *testing.T) {
	result, err := catalog.New().Load(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Len() != 0 || !result.Clean() {
		t.Fatalf("empty root should yield an empty clean result: %+v", result)
	}
}

func TestLoadMissingRootFatal(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")
	result, err := catalog.New().Load(context.Background(), missing)
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if result != nil {
		t.Fatalf("no partial result on fatal error, got %+v", result)
	}
}

func TestLoadRootIsFile(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTemplate(t, root, "doc.yaml", testsupport.ValidTemplate("t"))

	if _, err := catalog.New().Load(context.Background(), filepath.Join(root, "doc.yaml")); err == nil {
		t.Fatal("expected error when root is a regular file")
	}
}

func TestLoadMultiDocumentSegments(t *testing.T) {
	good := testsupport.ValidTemplate("Good sibling")
	bad := testsupport.ValidTemplate("Bad sibling")
	bad.Description = ""

	root := testsupport.WriteTree(t, map[string]string{
		"create/web_apps/pair.yaml": testsupport.DocumentText(good) + "---\n" + testsupport.DocumentText(bad),
	})

	result, err := catalog.New().Load(context.Background(), root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Len() != 1 {
		t.Fatalf("valid sibling should survive, got %d records", result.Len())
	}
	if result.Templates[0].Title != "Good sibling" || result.Templates[0].Segment != 0 {
		t.Fatalf("unexpected surviving record: %+v", result.Templates[0])
	}
	if len(result.Issues) != 1 || result.Issues[0].Segment != 1 {
		t.Fatalf("expected one issue on segment 1, got %v", result.Issues)
	}
}

func TestLoadSkipsUnrelatedFiles(t *testing.T) {
	root := testsupport.WriteTree(t, map[string]string{
		"create/readme.md":     "# not a template\n",
		"create/notes.txt":     "scratch\n",
		".git/config.yaml":     "hidden: true\n",
		"create/web_apps/a.yml": testsupport.DocumentText(testsupport.ValidTemplate("Yml extension")),
	})

	result, err := catalog.New().Load(context.Background(), root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Len() != 1 || !result.Clean() {
		t.Fatalf("only the .yml document should load: %+v", result)
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTemplate(t, root, "create/web_apps/good.yaml", testsupport.ValidTemplate("Good"))

	// A dangling symlink fails at read time regardless of the uid the
	// tests run under.
	broken := filepath.Join(root, "create", "web_apps", "broken.yaml")
	if err := os.Symlink(filepath.Join(root, "nowhere"), broken); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	result, err := catalog.New().Load(context.Background(), root)
	if err != nil {
		t.Fatalf("an unreadable file must not fail the load: %v", err)
	}
	if result.Len() != 1 || result.Templates[0].Title != "Good" {
		t.Fatalf("sibling documents should survive: %+v", result.Templates)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %v", result.Issues)
	}

	issue := result.Issues[0]
	if issue.Kind != catalog.IssueRead {
		t.Fatalf("kind = %q, want read", issue.Kind)
	}
	if issue.Path != "create/web_apps/broken.yaml" || issue.Segment != catalog.WholeFile {
		t.Fatalf("unexpected issue location: %+v", issue)
	}
}

func TestLoadUnparseableFile(t *testing.T) {
	root := testsupport.WriteTree(t, map[string]string{
		"create/web_apps/garbage.yaml": "title: [unclosed\n",
	})

	result, err := catalog.New().Load(context.Background(), root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(result.Issues) != 1 || result.Issues[0].Kind != catalog.IssueParse {
		t.Fatalf("expected one parse issue, got %v", result.Issues)
	}
}

func TestLoadIdempotent(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTemplate(t, root, "create/a.yaml", testsupport.ValidTemplate("A"))
	testsupport.WriteTemplate(t, root, "modify/b.yaml", testsupport.ValidTemplate("B"))
	testsupport.WriteTemplate(t, root, "review/c.yaml", testsupport.ValidTemplate("C"))

	c := catalog.New()
	first, err := c.Load(context.Background(), root)
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}
	second, err := c.Load(context.Background(), root)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if diff := cmp.Diff(first.Templates, second.Templates); diff != "" {
		t.Fatalf("loads differ (-first +second):\n%s", diff)
	}
}

func TestLoadStrictPlacement(t *testing.T) {
	record := testsupport.ValidTemplate("Misplaced")
	record.Category = "modify"

	root := t.TempDir()
	testsupport.WriteTemplate(t, root, "create/web_apps/misplaced.yaml", record)

	// Default mode ignores the disagreement entirely.
	relaxed, err := catalog.New().Load(context.Background(), root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if relaxed.Len() != 1 || !relaxed.Clean() {
		t.Fatalf("placement should be ignored by default: %+v", relaxed)
	}

	strict, err := catalog.New(catalog.WithStrictPlacement()).Load(context.Background(), root)
	if err != nil {
		t.Fatalf("strict Load: %v", err)
	}
	if strict.Len() != 0 {
		t.Fatalf("strict mode must exclude misplaced records, got %d", strict.Len())
	}
	if len(strict.Issues) != 1 || strict.Issues[0].Kind != catalog.IssuePlacement {
		t.Fatalf("expected one placement issue, got %v", strict.Issues)
	}
}

func TestLoadIncludeGlobs(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTemplate(t, root, "create/a.yaml", testsupport.ValidTemplate("In"))
	testsupport.WriteTemplate(t, root, "modify/b.yaml", testsupport.ValidTemplate("Out"))

	c := catalog.New(catalog.WithIncludeGlobs("create/**/*.yaml"))
	result, err := c.Load(context.Background(), root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Len() != 1 || result.Templates[0].Title != "In" {
		t.Fatalf("glob should keep only create/, got %+v", result.Templates)
	}
}

func TestLoadCustomSeparator(t *testing.T) {
	first := testsupport.ValidTemplate("First")
	second := testsupport.ValidTemplate("Second")

	root := testsupport.WriteTree(t, map[string]string{
		"create/pair.yaml": testsupport.DocumentText(first) + "===\n" + testsupport.DocumentText(second),
	})

	c := catalog.New(catalog.WithSeparator("==="))
	result, err := c.Load(context.Background(), root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Len() != 2 {
		t.Fatalf("expected both segments, got %d", result.Len())
	}
}

func TestResultQueries(t *testing.T) {
	root := t.TempDir()

	a := testsupport.ValidTemplate("Alpha")
	a.Category, a.Subcategory = "create", "web_apps"
	b := testsupport.ValidTemplate("Beta")
	b.Category, b.Subcategory = "create", "cli_tools"
	c := testsupport.ValidTemplate("Gamma")
	c.Category, c.Subcategory = "review", "security"

	testsupport.WriteTemplate(t, root, "create/web_apps/a.yaml", a)
	testsupport.WriteTemplate(t, root, "create/cli_tools/b.yaml", b)
	testsupport.WriteTemplate(t, root, "review/security/c.yaml", c)

	result, err := catalog.New().Load(context.Background(), root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if diff := cmp.Diff([]string{"create", "review"}, result.Categories()); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"cli_tools", "web_apps"}, result.Subcategories("create")); diff != "" {
		t.Fatalf("subcategories mismatch (-want +got):\n%s", diff)
	}
	if got := result.ByCategory("CREATE"); len(got) != 2 {
		t.Fatalf("ByCategory should match case-insensitively, got %d", len(got))
	}

	found, ok := result.Find("gamma")
	if !ok || found.Title != "Gamma" {
		t.Fatalf("Find failed: %+v, %v", found, ok)
	}
	if _, ok := result.Find("no such template"); ok {
		t.Fatal("Find should miss on unknown titles")
	}

	if got := result.ByPath("create/web_apps/a.yaml"); len(got) != 1 || got[0].Title != "Alpha" {
		t.Fatalf("ByPath mismatch: %+v", got)
	}
}

func TestIssueString(t *testing.T) {
	whole := catalog.Issue{Path: "a/b.yaml", Segment: catalog.WholeFile, Kind: catalog.IssueRead}
	if got := whole.String(); got != "a/b.yaml: read issue" {
		t.Fatalf("unexpected rendering: %q", got)
	}

	segment := catalog.Issue{Path: "a/b.yaml", Segment: 2, Kind: catalog.IssueSchema, Fields: []string{"title"}}
	if got := segment.String(); got != "a/b.yaml#2: schema issue: title" {
		t.Fatalf("unexpected rendering: %q", got)
	}
}
