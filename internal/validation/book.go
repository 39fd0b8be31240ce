package validation

import (
	"context"
	"fmt"

	"github.com/amalSheikhdaher/Simple-Library-API/internal/dto"
)

// BookValidator normalizes and validates book payloads.
type BookValidator struct {
	categories CategoryExistence
}

func NewBookValidator(categories CategoryExistence) *BookValidator {
	return &BookValidator{categories: categories}
}

// ValidateCreate requires every field; is_active defaults to true.
func (v *BookValidator) ValidateCreate(ctx context.Context, p dto.Payload) (dto.BookFields, error) {
	fields, fail := normalizeBook(p, true)
	bookCatalog.check(fail, []fieldRule{
		{"title", fields.Title, "required,max=255"},
		{"author", fields.Author, "required,max=255"},
		{"published_at", fields.PublishedAt, "required,datetime=" + dateLayout},
		{"is_active", fields.IsActive, "required"},
		{"category_id", fields.CategoryID, "required"},
	})
	return v.finish(ctx, fields, fail)
}

// ValidateUpdate only checks the fields present in the payload; the others
// stay nil and keep their stored values.
func (v *BookValidator) ValidateUpdate(ctx context.Context, p dto.Payload) (dto.BookFields, error) {
	fields, fail := normalizeBook(p, false)
	bookCatalog.check(fail, []fieldRule{
		{"title", fields.Title, "omitempty,max=255"},
		{"author", fields.Author, "omitempty,max=255"},
		{"published_at", fields.PublishedAt, "omitempty,datetime=" + dateLayout},
	})
	return v.finish(ctx, fields, fail)
}

func (v *BookValidator) finish(ctx context.Context, fields dto.BookFields, fail *Failure) (dto.BookFields, error) {
	if fields.CategoryID != nil && !fail.Has("category_id") {
		ok, err := v.categories.Exists(ctx, *fields.CategoryID)
		if err != nil {
			return dto.BookFields{}, fmt.Errorf("check category %d: %w", *fields.CategoryID, err)
		}
		if !ok {
			fail.Add("category_id", bookCatalog.message("category_id", "exists", ""))
		}
	}
	if !fail.empty() {
		return dto.BookFields{}, fail
	}
	return fields, nil
}

func normalizeBook(p dto.Payload, create bool) (dto.BookFields, *Failure) {
	var fields dto.BookFields
	fail := &Failure{}

	for _, f := range []struct {
		name string
		dst  **string
	}{
		{"title", &fields.Title},
		{"author", &fields.Author},
	} {
		value, ok := text(p[f.name], TitleCase)
		if !ok {
			fail.Add(f.name, bookCatalog.message(f.name, "string", ""))
			continue
		}
		*f.dst = value
	}

	switch {
	case p.Has("is_active"):
		active := Boolean(p["is_active"])
		fields.IsActive = &active
	case create:
		active := true
		fields.IsActive = &active
	}

	fields.PublishedAt = Date(p["published_at"])

	id, ok := identifier(p["category_id"])
	if !ok {
		fail.Add("category_id", bookCatalog.message("category_id", "exists", ""))
	}
	fields.CategoryID = id

	return fields, fail
}
