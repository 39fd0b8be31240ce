package validation

import (
	"context"
	"fmt"

	"github.com/amalSheikhdaher/Simple-Library-API/internal/dto"
)

// CategoryValidator normalizes and validates category payloads.
type CategoryValidator struct {
	names CategoryNames
}

func NewCategoryValidator(names CategoryNames) *CategoryValidator {
	return &CategoryValidator{names: names}
}

func (v *CategoryValidator) ValidateCreate(ctx context.Context, p dto.Payload) (dto.CategoryFields, error) {
	fields, fail := normalizeCategory(p)
	categoryCatalog.check(fail, []fieldRule{
		{"name", fields.Name, "required,max=255"},
		{"description", fields.Description, "omitempty,max=1000"},
	})
	return v.finish(ctx, fields, fail, 0)
}

// ValidateUpdate checks the fields present in the payload. The category
// being updated does not count against the name uniqueness rule.
func (v *CategoryValidator) ValidateUpdate(ctx context.Context, p dto.Payload, id uint) (dto.CategoryFields, error) {
	fields, fail := normalizeCategory(p)
	categoryCatalog.check(fail, []fieldRule{
		{"name", fields.Name, "omitempty,max=255"},
		{"description", fields.Description, "omitempty,max=1000"},
	})
	return v.finish(ctx, fields, fail, id)
}

func (v *CategoryValidator) finish(ctx context.Context, fields dto.CategoryFields, fail *Failure, exceptID uint) (dto.CategoryFields, error) {
	if fields.Name != nil && !fail.Has("name") {
		taken, err := v.names.NameTaken(ctx, *fields.Name, exceptID)
		if err != nil {
			return dto.CategoryFields{}, fmt.Errorf("check category name: %w", err)
		}
		if taken {
			fail.Add("name", categoryCatalog.message("name", "unique", ""))
		}
	}
	if !fail.empty() {
		return dto.CategoryFields{}, fail
	}
	return fields, nil
}

func normalizeCategory(p dto.Payload) (dto.CategoryFields, *Failure) {
	var fields dto.CategoryFields
	fail := &Failure{}

	if name, ok := text(p["name"], TitleCase); ok {
		fields.Name = name
	} else {
		fail.Add("name", categoryCatalog.message("name", "string", ""))
	}
	if desc, ok := text(p["description"], UpperFirst); ok {
		fields.Description = desc
	} else {
		fail.Add("description", categoryCatalog.message("description", "string", ""))
	}
	return fields, fail
}
