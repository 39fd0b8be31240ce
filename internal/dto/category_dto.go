package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

// CategoryFields is the normalized, validated field set for a category write.
type CategoryFields struct {
	Name        *string
	Description *string
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CategoryResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
