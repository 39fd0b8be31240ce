package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amalSheikhdaher/Simple-Library-API/internal/dto"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/model"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/repository"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/validation"

	"gorm.io/gorm"
)

const publishedAtLayout = "2006-01-02"

// BookService defines the business operations for books. Writes take field
// sets produced by validation.BookValidator.
type BookService interface {
	List(ctx context.Context, page int) ([]model.Book, int64, error)
	Get(ctx context.Context, id uint) (*model.Book, error)
	ListByCategory(ctx context.Context, c *model.Category) ([]model.Book, error)
	Store(ctx context.Context, f dto.BookFields) (*model.Book, error)
	Update(ctx context.Context, b *model.Book, f dto.BookFields) (*model.Book, error)
	Delete(ctx context.Context, b *model.Book) error
}

type bookService struct {
	repo repository.BookRepository
}

func NewBookService(repo repository.BookRepository) BookService {
	return &bookService{repo: repo}
}

func (s *bookService) List(ctx context.Context, page int) ([]model.Book, int64, error) {
	books, total, err := s.repo.List(ctx, page, dto.PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	return books, total, nil
}

func (s *bookService) Get(ctx context.Context, id uint) (*model.Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("find book %d: %w", id, err)
	}
	return b, nil
}

func (s *bookService) ListByCategory(ctx context.Context, c *model.Category) ([]model.Book, error) {
	books, err := s.repo.ListByCategory(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list books of category %d: %w", c.ID, err)
	}
	return books, nil
}

// Store expects every field of f to be set, as ValidateCreate guarantees.
func (s *bookService) Store(ctx context.Context, f dto.BookFields) (*model.Book, error) {
	if f.Title == nil || f.Author == nil || f.PublishedAt == nil || f.IsActive == nil || f.CategoryID == nil {
		return nil, errors.New("store book: incomplete field set")
	}
	publishedAt, err := time.Parse(publishedAtLayout, *f.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("store book: published_at: %w", err)
	}

	b := &model.Book{
		Title:       *f.Title,
		Author:      *f.Author,
		PublishedAt: publishedAt,
		IsActive:    *f.IsActive,
		CategoryID:  *f.CategoryID,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, s.writeFailure(ctx, "create", err)
	}
	return s.refresh(ctx, b)
}

// Update merges f into b field by field: a nil field keeps b's value.
func (s *bookService) Update(ctx context.Context, b *model.Book, f dto.BookFields) (*model.Book, error) {
	if f.Title != nil {
		b.Title = *f.Title
	}
	if f.Author != nil {
		b.Author = *f.Author
	}
	if f.PublishedAt != nil {
		publishedAt, err := time.Parse(publishedAtLayout, *f.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("update book: published_at: %w", err)
		}
		b.PublishedAt = publishedAt
	}
	if f.IsActive != nil {
		b.IsActive = *f.IsActive
	}
	if f.CategoryID != nil && *f.CategoryID != b.CategoryID {
		b.CategoryID = *f.CategoryID
		b.Category = nil
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, s.writeFailure(ctx, "update", err)
	}
	return s.refresh(ctx, b)
}

func (s *bookService) Delete(ctx context.Context, b *model.Book) error {
	if err := s.repo.Delete(ctx, b); err != nil {
		return s.writeFailure(ctx, "delete", err)
	}
	return nil
}

// refresh reloads b with its Category attached.
func (s *bookService) refresh(ctx context.Context, b *model.Book) (*model.Book, error) {
	fresh, err := s.repo.FindByID(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("reload book %d: %w", b.ID, err)
	}
	return fresh, nil
}

// writeFailure turns a foreign key violation (the category vanished after
// validation) into the same failure validation reports.
func (s *bookService) writeFailure(ctx context.Context, op string, err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return validation.NewFailure("category_id", validation.CategoryMissingMessage())
	}
	return persistenceFailure(ctx, "book", op, err)
}
