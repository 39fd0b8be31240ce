package validation

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"fiction":          "Fiction",
		"science fiction":  "Science Fiction",
		"frank HERBERT":    "Frank HERBERT",
		"j. r. r. tolkien": "J. R. R. Tolkien",
		"3rd edition":      "3rd Edition",
		"20th century":     "20th Century",
		"mary-jane watson": "Mary-jane Watson",
		"the (lost) book":  "The (lost) Book",
		"tab\tseparated":   "Tab\tSeparated",
		"":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, TitleCase(in), "input %q", in)
	}
}

func TestUpperFirst(t *testing.T) {
	assert.Equal(t, "Fun books", UpperFirst("fun books"))
	assert.Equal(t, "ÉPico", UpperFirst("éPico"))
	assert.Equal(t, "", UpperFirst(""))
	assert.Equal(t, "123 go", UpperFirst("123 go"))
}

func TestBoolean(t *testing.T) {
	truthy := []any{true, "1", "true", "TRUE", " yes ", "on", float64(1)}
	falsy := []any{nil, false, "0", "false", "no", "off", "", "maybe", float64(0), float64(2)}

	for _, v := range truthy {
		assert.True(t, Boolean(v), "value %#v", v)
	}
	for _, v := range falsy {
		assert.False(t, Boolean(v), "value %#v", v)
	}
}

func TestDate(t *testing.T) {
	want := "2023-05-01"
	for _, in := range []any{"2023-05-01", "2023/05/01", "May 1, 2023", "2023-05-01T10:30:00Z", " 2023-05-01 "} {
		got := Date(in)
		require.NotNil(t, got, "input %q", in)
		assert.Equal(t, want, *got, "input %q", in)
	}

	assert.Nil(t, Date(nil))
	assert.Nil(t, Date("   "))

	for _, in := range []string{"not a date", "read it next monday"} {
		bad := Date(in)
		require.NotNil(t, bad, "input %q", in)
		assert.Equal(t, in, *bad)
	}
}

func TestDate_RelativeExpressions(t *testing.T) {
	// Wednesday.
	ref := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	orig := now
	now = func() time.Time { return ref }
	t.Cleanup(func() { now = orig })

	tests := map[string]string{
		"today":     "2024-05-15",
		"yesterday": "2024-05-14",
		"Yesterday": "2024-05-14",
	}
	for in, want := range tests {
		got := Date(in)
		require.NotNil(t, got, "input %q", in)
		assert.Equal(t, want, *got, "input %q", in)
	}

	got := Date("next monday")
	require.NotNil(t, got)
	d, err := time.Parse(dateLayout, *got)
	require.NoError(t, err, "next monday resolved to %q", *got)
	assert.Equal(t, time.Monday, d.Weekday())
	assert.True(t, d.After(ref), "next monday resolved to %q", *got)
	assert.True(t, d.Before(ref.AddDate(0, 0, 8)), "next monday resolved to %q", *got)
}

func TestIdentifier(t *testing.T) {
	id, ok := identifier(float64(3))
	require.True(t, ok)
	assert.Equal(t, uint(3), *id)

	id, ok = identifier("7")
	require.True(t, ok)
	assert.Equal(t, uint(7), *id)

	id, ok = identifier(nil)
	assert.True(t, ok)
	assert.Nil(t, id)

	for _, bad := range []any{"abc", float64(-1), float64(1.5), true, map[string]any{}} {
		_, ok := identifier(bad)
		assert.False(t, ok, "value %#v", bad)
	}
}

func TestText(t *testing.T) {
	v, ok := text("  dune  ", TitleCase)
	require.True(t, ok)
	assert.Equal(t, "Dune", *v)

	v, ok = text(false, TitleCase)
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = text([]any{"a"}, TitleCase)
	assert.False(t, ok)
}

// ── Properties ────────────────────────────────────────────────────────────────

func TestTitleCaseProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[a-zA-Z0-9 .()'-]{0,40}`).Draw(t, "s")
		once := TitleCase(s)

		if TitleCase(once) != once {
			t.Fatalf("not idempotent: %q -> %q", once, TitleCase(once))
		}
		if !strings.EqualFold(once, s) {
			t.Fatalf("letters changed beyond case: %q -> %q", s, once)
		}
		for _, word := range strings.Fields(once) {
			if c := word[0]; c >= 'a' && c <= 'z' {
				t.Fatalf("word %q does not start upper case", word)
			}
		}
		// Only word starts change.
		for i := 1; i < len(s); i++ {
			if s[i-1] != ' ' && once[i] != s[i] {
				t.Fatalf("%q -> %q changed byte %d inside a word", s, once, i)
			}
		}
	})
}

func TestBooleanProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := rapid.Bool().Draw(t, "b")
		if Boolean(b) != b {
			t.Fatalf("Boolean(%v) changed the value", b)
		}
		n := rapid.IntRange(-1000, 1000).Draw(t, "n")
		if Boolean(strconv.Itoa(n)) != (n == 1) {
			t.Fatalf("Boolean(%q) = %v", strconv.Itoa(n), Boolean(strconv.Itoa(n)))
		}
	})
}

func TestDateRoundTripsCanonicalDates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		days := rapid.IntRange(0, 200*365).Draw(t, "days")
		d := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
		in := d.Format(dateLayout)

		got := Date(in)
		if got == nil || *got != in {
			t.Fatalf("Date(%q) = %v", in, got)
		}
	})
}
