package template

import "strings"

// Field names match the top-level keys of a template document.
const (
	FieldTitle           = "title"
	FieldCategory        = "category"
	FieldSubcategory     = "subcategory"
	FieldDifficulty      = "difficulty"
	FieldDescription     = "description"
	FieldExample         = "example"
	FieldExpectedOutcome = "expected_outcome"
	FieldNotes           = "notes"
)

// RequiredFields lists the keys that must be present and non-empty for a
// template to be considered valid. Difficulty and notes are conventional
// but optional.
var RequiredFields = []string{
	FieldTitle,
	FieldCategory,
	FieldSubcategory,
	FieldDescription,
	FieldExample,
	FieldExpectedOutcome,
}

// KnownCategories enumerates the conventional top-level categories. The
// values are advisory; documents may carry others and still validate.
var KnownCategories = []string{"create", "modify", "review"}

// KnownDifficulties enumerates the conventional difficulty labels.
var KnownDifficulties = []string{"beginner", "intermediate", "advanced"}

// Template is one prompt template record parsed from a document segment.
type Template struct {
	Title           string `yaml:"title" json:"title"`
	Category        string `yaml:"category" json:"category"`
	Subcategory     string `yaml:"subcategory" json:"subcategory"`
	Difficulty      string `yaml:"difficulty" json:"difficulty,omitempty"`
	Description     string `yaml:"description" json:"description"`
	Example         string `yaml:"example" json:"example"`
	ExpectedOutcome string `yaml:"expected_outcome" json:"expected_outcome"`
	Notes           string `yaml:"notes" json:"notes,omitempty"`

	// Path records where the document came from. Set by the loader, never
	// read from the document body.
	Path string `yaml:"-" json:"path,omitempty"`

	// Segment is the zero-based index of this record within its file when
	// multiple documents share one file.
	Segment int `yaml:"-" json:"segment,omitempty"`
}

// Field returns the named field's value. Unknown names return "".
func (t Template) Field(name string) string {
	switch name {
	case FieldTitle:
		return t.Title
	case FieldCategory:
		return t.Category
	case FieldSubcategory:
		return t.Subcategory
	case FieldDifficulty:
		return t.Difficulty
	case FieldDescription:
		return t.Description
	case FieldExample:
		return t.Example
	case FieldExpectedOutcome:
		return t.ExpectedOutcome
	case FieldNotes:
		return t.Notes
	default:
		return ""
	}
}

// MissingFields returns the required field names that are absent or
// whitespace-only, in the order of RequiredFields.
func (t Template) MissingFields() []string {
	var missing []string
	for _, name := range RequiredFields {
		if strings.TrimSpace(t.Field(name)) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// IsZero reports whether the record carries no document content at all.
// Provenance fields are ignored.
func (t Template) IsZero() bool {
	return t.Title == "" && t.Category == "" && t.Subcategory == "" &&
		t.Difficulty == "" && t.Description == "" && t.Example == "" &&
		t.ExpectedOutcome == "" && t.Notes == ""
}

// Clone returns a copy of the record. Templates hold only value types today
// so this is a plain copy, kept as a method so callers do not depend on
// that detail.
func (t Template) Clone() Template {
	return t
}
