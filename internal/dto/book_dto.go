package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

// BookFields is the normalized, validated field set for a book write.
// A nil field was absent from the payload; on update it keeps the stored value.
type BookFields struct {
	Title       *string
	Author      *string
	PublishedAt *string // YYYY-MM-DD
	IsActive    *bool
	CategoryID  *uint
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type BookResponse struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Author      string        `json:"author"`
	PublishedAt string        `json:"published_at"`
	IsActive    bool          `json:"is_active"`
	Category    *BookCategory `json:"category"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
}

// BookCategory is the slim category reference embedded in a book.
type BookCategory struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
