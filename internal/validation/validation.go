// Package validation normalizes raw request payloads and checks them against
// the per-resource rule sets. Validators return either a validated field set
// or a *Failure value describing every field that broke a rule; callers branch
// on the result with errors.As instead of relying on panics or early writes.
package validation

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CategoryExistence answers the "exists" rule of book.category_id.
type CategoryExistence interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// CategoryNames answers the "unique" rule of category.name. exceptID is
// ignored when zero.
type CategoryNames interface {
	NameTaken(ctx context.Context, name string, exceptID uint) (bool, error)
}

// Failure carries the ordered rule messages of every failing field.
type Failure struct {
	Errors map[string][]string
}

// NewFailure builds a single-field failure. Services use it to translate
// storage constraint violations into the validation contract.
func NewFailure(field, message string) *Failure {
	f := &Failure{}
	f.Add(field, message)
	return f
}

func (f *Failure) Error() string {
	fields := make([]string, 0, len(f.Errors))
	for field := range f.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

func (f *Failure) Add(field, message string) {
	if f.Errors == nil {
		f.Errors = make(map[string][]string)
	}
	f.Errors[field] = append(f.Errors[field], message)
}

func (f *Failure) Has(field string) bool {
	_, ok := f.Errors[field]
	return ok
}

func (f *Failure) empty() bool { return len(f.Errors) == 0 }

// fieldRule is one field's tag chain, checked in declaration order.
type fieldRule struct {
	field string
	value any
	tags  string
}

// check runs every rule whose field has not already failed during
// normalization. The first violated tag of a field produces its message.
func (c catalog) check(f *Failure, rules []fieldRule) {
	for _, r := range rules {
		if f.Has(r.field) || r.tags == "" {
			continue
		}
		err := validate.Var(r.value, r.tags)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			f.Add(r.field, c.message(r.field, "invalid", ""))
			continue
		}
		rule, param := ruleFor(verrs[0])
		f.Add(r.field, c.message(r.field, rule, param))
	}
}

// ruleFor maps a validator tag onto the rule vocabulary used by the
// message tables.
func ruleFor(fe validator.FieldError) (rule, param string) {
	switch fe.Tag() {
	case "datetime":
		return "date_format", dateFormatLabel
	default:
		return fe.Tag(), fe.Param()
	}
}
