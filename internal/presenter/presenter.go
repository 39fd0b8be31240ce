// Package presenter maps persisted entities onto their public JSON shape.
package presenter

import (
	"github.com/amalSheikhdaher/Simple-Library-API/internal/dto"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/model"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	dateLayout      = "2006-01-02"
)

// Book presents b. category is null when the relation was not loaded.
func Book(b model.Book) dto.BookResponse {
	resp := dto.BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		PublishedAt: b.PublishedAt.Format(dateLayout),
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:   b.UpdatedAt.UTC().Format(timestampLayout),
	}
	if b.Category != nil {
		resp.Category = &dto.BookCategory{ID: b.Category.ID, Name: b.Category.Name}
	}
	return resp
}

func Books(list []model.Book) []dto.BookResponse {
	out := make([]dto.BookResponse, 0, len(list))
	for _, b := range list {
		out = append(out, Book(b))
	}
	return out
}

// Category presents c's own fields; books are never embedded.
func Category(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:   c.UpdatedAt.UTC().Format(timestampLayout),
	}
}

func Categories(list []model.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, Category(c))
	}
	return out
}
