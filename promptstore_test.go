package promptstore_test

import (
	"context"
	"testing"

	promptstore "github.com/goliatone/go-promptstore"
	"github.com/goliatone/go-promptstore/pkg/testsupport"
)

func TestLoad(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTemplate(t, root, "create/web_apps/blog.yaml", testsupport.ValidTemplate("Build a blog"))

	result, err := promptstore.Load(context.Background(), root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Len() != 1 || !result.Clean() {
		t.Fatalf("unexpected result: %+v", result)
	}
	if _, ok := result.Find("Build a blog"); !ok {
		t.Fatal("record not retrievable by title")
	}
}

func TestLoadWithOptions(t *testing.T) {
	root := t.TempDir()
	misplaced := testsupport.ValidTemplate("Misplaced")
	misplaced.Category = "review"
	testsupport.WriteTemplate(t, root, "create/web_apps/misplaced.yaml", misplaced)

	result, err := promptstore.Load(context.Background(), root, promptstore.WithStrictPlacement())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Len() != 0 || result.Clean() {
		t.Fatalf("strict placement should flag the record: %+v", result)
	}
}
