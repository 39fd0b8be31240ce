package validation

import "strings"

const (
	dateLayout      = "2006-01-02"
	dateFormatLabel = "Y-m-d"
)

// catalog holds a resource's friendly attribute names and its per-rule
// message overrides, keyed "<field>.<rule>".
type catalog struct {
	attributes map[string]string
	messages   map[string]string
}

// defaultMessages are used for rules without an override.
var defaultMessages = map[string]string{
	"required":    "The :attribute field is required.",
	"string":      "The :attribute field must be a string.",
	"max":         "The :attribute field must not be greater than :max characters.",
	"date_format": "The :attribute field must match the format :format.",
	"boolean":     "The :attribute field must be true or false.",
	"exists":      "The selected :attribute is invalid.",
	"unique":      "The :attribute has already been taken.",
	"invalid":     "The :attribute field is invalid.",
}

func (c catalog) message(field, rule, param string) string {
	if m, ok := c.messages[field+"."+rule]; ok {
		return m
	}
	tmpl, ok := defaultMessages[rule]
	if !ok {
		tmpl = defaultMessages["invalid"]
	}
	attr, ok := c.attributes[field]
	if !ok {
		attr = strings.ReplaceAll(field, "_", " ")
	}
	return strings.NewReplacer(
		":attribute", attr,
		":max", param,
		":format", param,
	).Replace(tmpl)
}

var bookCatalog = catalog{
	attributes: map[string]string{
		"title":        "Book Title",
		"author":       "Author Name",
		"published_at": "Published Date",
		"is_active":    "Book Status",
		"category_id":  "Category",
	},
	messages: map[string]string{
		"title.required":       "The book title is required.",
		"title.max":            "The book title must not exceed 255 characters.",
		"author.required":      "The author is required.",
		"author.max":           "The author name must not exceed 255 characters.",
		"published_at.date":    "The published date must be a valid date.",
		"is_active.required":   "The status of the book is required.",
		"is_active.boolean":    "The status must be true or false.",
		"category_id.required": "The category is required.",
		"category_id.exists":   "The selected category does not exist.",
	},
}

// The description message says 500 while the enforced limit is 1000. Both
// are kept as published until product confirms which one is intended.
var categoryCatalog = catalog{
	attributes: map[string]string{
		"name":        "Category name",
		"description": "Category description",
	},
	messages: map[string]string{
		"name.required":   "The category name is required.",
		"name.unique":     "This category name is already taken. Please choose another.",
		"name.max":        "The category name may not be longer than 255 characters.",
		"description.max": "The description may not be longer than 500 characters.",
	},
}

// NameTakenMessage is the name.unique message, for services translating a
// unique index violation into a validation failure.
func NameTakenMessage() string { return categoryCatalog.message("name", "unique", "") }

// CategoryMissingMessage is the category_id.exists message, for services
// translating a foreign key violation.
func CategoryMissingMessage() string { return bookCatalog.message("category_id", "exists", "") }
