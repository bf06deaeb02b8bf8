package validation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-promptstore/pkg/template"
	"github.com/goliatone/go-promptstore/pkg/testsupport"
	"github.com/goliatone/go-promptstore/pkg/validation"
)

func TestValidateCompleteRecord(t *testing.T) {
	v := validation.New()
	if err := v.Validate(testsupport.ValidTemplate("Complete")); err != nil {
		t.Fatalf("complete record should validate: %v", err)
	}
}

func TestValidateOptionalFields(t *testing.T) {
	v := validation.New()
	record := testsupport.ValidTemplate("No extras")
	record.Difficulty = ""
	record.Notes = ""

	if err := v.Validate(record); err != nil {
		t.Fatalf("difficulty and notes are optional: %v", err)
	}
}

func TestValidateMissingFields(t *testing.T) {
	v := validation.New()
	record := testsupport.ValidTemplate("Broken")
	record.Title = ""
	record.ExpectedOutcome = "   "
	record.Path = "create/web_apps/broken.yaml"

	err := v.Validate(record)
	if err == nil {
		t.Fatal("expected a schema error")
	}

	var schemaErr *validation.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	if schemaErr.Path != record.Path {
		t.Fatalf("path = %q, want %q", schemaErr.Path, record.Path)
	}
	want := []string{template.FieldTitle, template.FieldExpectedOutcome}
	if diff := cmp.Diff(want, schemaErr.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaErrorMessage(t *testing.T) {
	one := &validation.SchemaError{Fields: []string{"title"}}
	if got := one.Error(); got != "missing field: title" {
		t.Fatalf("unexpected message: %q", got)
	}

	many := &validation.SchemaError{Fields: []string{"title", "example"}}
	if got := many.Error(); got != "missing fields: title, example" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestStrictPlacementFlag(t *testing.T) {
	if validation.New().StrictPlacement() {
		t.Fatal("placement checks should default off")
	}
	if !validation.New(validation.WithStrictPlacement()).StrictPlacement() {
		t.Fatal("WithStrictPlacement should enable placement checks")
	}
}

func TestCheckPlacement(t *testing.T) {
	record := testsupport.ValidTemplate("Placed")

	if errs := validation.CheckPlacement(record, "create/web_apps/placed.yaml"); len(errs) != 0 {
		t.Fatalf("matching layout should pass: %v", errs)
	}

	// Case differences are tolerated.
	if errs := validation.CheckPlacement(record, "Create/Web_Apps/placed.yaml"); len(errs) != 0 {
		t.Fatalf("placement comparison should ignore case: %v", errs)
	}

	errs := validation.CheckPlacement(record, "modify/code_quality/placed.yaml")
	if len(errs) != 2 {
		t.Fatalf("expected category and subcategory mismatches, got %v", errs)
	}
	if errs[0].Field != template.FieldCategory || errs[1].Field != template.FieldSubcategory {
		t.Fatalf("unexpected fields: %q, %q", errs[0].Field, errs[1].Field)
	}
}

func TestCheckPlacementShallowPath(t *testing.T) {
	record := testsupport.ValidTemplate("Shallow")
	if errs := validation.CheckPlacement(record, "placed.yaml"); errs != nil {
		t.Fatalf("root-level documents carry no layout to check: %v", errs)
	}
}

func TestCheckPlacementSingleLevel(t *testing.T) {
	record := testsupport.ValidTemplate("One level")
	record.Category = "create"

	// Only the category is encoded by a one-level directory.
	if errs := validation.CheckPlacement(record, "create/placed.yaml"); len(errs) != 0 {
		t.Fatalf("category-only layout should pass: %v", errs)
	}

	errs := validation.CheckPlacement(record, "review/placed.yaml")
	if len(errs) != 1 || errs[0].Field != template.FieldCategory {
		t.Fatalf("expected one category mismatch, got %v", errs)
	}
}
