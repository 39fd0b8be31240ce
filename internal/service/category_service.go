package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/amalSheikhdaher/Simple-Library-API/internal/dto"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/model"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/repository"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/validation"

	"gorm.io/gorm"
)

// CategoryService defines business operations for book categories.
type CategoryService interface {
	List(ctx context.Context, page int) ([]model.Category, int64, error)
	Get(ctx context.Context, id uint) (*model.Category, error)
	Store(ctx context.Context, f dto.CategoryFields) (*model.Category, error)
	Update(ctx context.Context, c *model.Category, f dto.CategoryFields) (*model.Category, error)
	Delete(ctx context.Context, c *model.Category) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context, page int) ([]model.Category, int64, error) {
	list, total, err := s.repo.List(ctx, page, dto.PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	return list, total, nil
}

func (s *categoryService) Get(ctx context.Context, id uint) (*model.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category %d: %w", id, err)
	}
	return c, nil
}

func (s *categoryService) Store(ctx context.Context, f dto.CategoryFields) (*model.Category, error) {
	if f.Name == nil {
		return nil, errors.New("store category: name is required")
	}
	c := &model.Category{
		Name:        *f.Name,
		Description: f.Description,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, s.writeFailure(ctx, "create", err)
	}
	return c, nil
}

// Update merges f into c; a nil field keeps c's value. The returned category
// is re-read from the store.
func (s *categoryService) Update(ctx context.Context, c *model.Category, f dto.CategoryFields) (*model.Category, error) {
	if f.Name != nil {
		c.Name = *f.Name
	}
	if f.Description != nil {
		c.Description = f.Description
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, s.writeFailure(ctx, "update", err)
	}
	fresh, err := s.repo.FindByID(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("reload category %d: %w", c.ID, err)
	}
	return fresh, nil
}

// Delete refuses to remove a category that books still reference.
func (s *categoryService) Delete(ctx context.Context, c *model.Category) error {
	n, err := s.repo.CountBooks(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("count books of category %d: %w", c.ID, err)
	}
	if n > 0 {
		return ErrCategoryInUse
	}
	if err := s.repo.Delete(ctx, c); err != nil {
		return s.writeFailure(ctx, "delete", err)
	}
	return nil
}

// writeFailure maps constraint violations the pre-checks raced with onto
// their domain errors; anything else is a persistence failure.
func (s *categoryService) writeFailure(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return validation.NewFailure("name", validation.NameTakenMessage())
	case op == "delete" && errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrCategoryInUse
	default:
		return persistenceFailure(ctx, "category", op, err)
	}
}
