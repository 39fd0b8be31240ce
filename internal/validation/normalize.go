package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// wordDelimiters separate words for TitleCase. Hyphens, brackets and digits
// do not start a new word.
const wordDelimiters = " \t\r\n\f\v"

// now is the reference time for relative date expressions.
var now = time.Now

// TitleCase upper cases the first character of every whitespace separated
// word and leaves everything else untouched ("3rd edition" -> "3rd Edition",
// "mary-jane" -> "Mary-jane").
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	start := true
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		switch {
		case strings.ContainsRune(wordDelimiters, r):
			b.WriteString(s[:size])
			start = true
		case start:
			b.WriteString(UpperFirst(s[:size]))
			start = false
		default:
			b.WriteString(s[:size])
		}
		s = s[size:]
	}
	return b.String()
}

// UpperFirst upper cases the first character of s only.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	// cases.Caser keeps state between calls and must not be shared.
	return cases.Upper(language.Und).String(s[:size]) + s[size:]
}

// Boolean coerces a raw value the permissive way: true, 1, yes and on
// (any case, surrounding space ignored) are true, everything else is false.
func Boolean(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	}
	switch strings.ToLower(strings.TrimSpace(cast.ToString(raw))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// Date parses a free-form date expression and reformats it as YYYY-MM-DD.
// Absolute dates in any common layout are tried first, then relative
// expressions such as "yesterday" or "next monday". Blank input yields nil.
// Unparseable input is returned unchanged so the date format rule rejects it.
func Date(raw any) *string {
	s, ok := scalarString(raw)
	if !ok {
		bad := fmt.Sprint(raw)
		return &bad
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		var ok bool
		if t, ok = relativeDate(s); !ok {
			return &s
		}
	}
	out := t.Format(dateLayout)
	return &out
}

// relativeDate resolves a relative expression against now. The expression
// must make up the whole input; "read it next monday" is not a date.
func relativeDate(s string) (time.Time, bool) {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	r, err := w.Parse(s, now().UTC())
	if err != nil || r == nil {
		return time.Time{}, false
	}
	if !strings.EqualFold(strings.TrimSpace(r.Text), s) {
		return time.Time{}, false
	}
	return r.Time, true
}

// text stringifies, trims and transforms a raw value. ok is false when the
// value is not a scalar (object or array) and so cannot be a string.
func text(raw any, transform func(string) string) (value *string, ok bool) {
	s, ok := scalarString(raw)
	if !ok {
		return nil, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	out := transform(s)
	return &out, true
}

// identifier coerces a raw value into a positive record id. Blank input
// yields nil; ok is false when the value cannot be an id at all.
func identifier(raw any) (id *uint, ok bool) {
	var n uint
	switch v := raw.(type) {
	case nil:
		return nil, true
	case bool:
		return nil, false
	case float64:
		if v < 0 || v != math.Trunc(v) || v > math.MaxUint32 {
			return nil, false
		}
		n = uint(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, true
		}
		parsed, err := cast.ToUintE(s)
		if err != nil {
			return nil, false
		}
		n = parsed
	case json.Number:
		parsed, err := cast.ToUintE(v.String())
		if err != nil {
			return nil, false
		}
		n = parsed
	default:
		parsed, err := cast.ToUintE(v)
		if err != nil {
			return nil, false
		}
		n = parsed
	}
	return &n, true
}

// scalarString renders JSON scalars as text. true becomes "1" and false the
// empty string, so a false title reads as missing.
func scalarString(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case bool:
		if v {
			return "1", true
		}
		return "", true
	case map[string]any, []any:
		return "", false
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return "", false
		}
		return s, true
	}
}
