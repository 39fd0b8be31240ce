package repository

import (
	"context"

	"github.com/amalSheikhdaher/Simple-Library-API/internal/model"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// CategoryRepository defines CRUD operations for Category.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, id uint) (*model.Category, error)
	List(ctx context.Context, page, limit int) ([]model.Category, int64, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, c *model.Category) error

	// Exists and NameTaken back the validation rules.
	Exists(ctx context.Context, id uint) (bool, error)
	NameTaken(ctx context.Context, name string, exceptID uint) (bool, error)

	// CountBooks reports how many books still reference the category.
	CountBooks(ctx context.Context, id uint) (int64, error)
}

type categoryRepository struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *model.Category) (err error) {
	ctx, span := startSpan(ctx, "categories.create")
	defer func() { endSpan(span, err) }()

	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (_ *model.Category, err error) {
	ctx, span := startSpan(ctx, "categories.find", attribute.Int64("category.id", int64(id)))
	defer func() { endSpan(span, err) }()

	var c model.Category
	if err = r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context, page, limit int) (_ []model.Category, _ int64, err error) {
	ctx, span := startSpan(ctx, "categories.list", attribute.Int("page", page))
	defer func() { endSpan(span, err) }()

	var list []model.Category
	var total int64
	if err = r.db.WithContext(ctx).Model(&model.Category{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err = r.db.WithContext(ctx).Order("id asc").Limit(limit).Offset(offset(page, limit)).Find(&list).Error
	return list, total, err
}

func (r *categoryRepository) Update(ctx context.Context, c *model.Category) (err error) {
	ctx, span := startSpan(ctx, "categories.update", attribute.Int64("category.id", int64(c.ID)))
	defer func() { endSpan(span, err) }()

	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoryRepository) Delete(ctx context.Context, c *model.Category) (err error) {
	ctx, span := startSpan(ctx, "categories.delete", attribute.Int64("category.id", int64(c.ID)))
	defer func() { endSpan(span, err) }()

	return r.db.WithContext(ctx).Delete(c).Error
}

func (r *categoryRepository) Exists(ctx context.Context, id uint) (_ bool, err error) {
	ctx, span := startSpan(ctx, "categories.exists", attribute.Int64("category.id", int64(id)))
	defer func() { endSpan(span, err) }()

	var n int64
	err = r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *categoryRepository) NameTaken(ctx context.Context, name string, exceptID uint) (_ bool, err error) {
	ctx, span := startSpan(ctx, "categories.name_taken")
	defer func() { endSpan(span, err) }()

	var n int64
	q := r.db.WithContext(ctx).Model(&model.Category{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	err = q.Count(&n).Error
	return n > 0, err
}

func (r *categoryRepository) CountBooks(ctx context.Context, id uint) (_ int64, err error) {
	ctx, span := startSpan(ctx, "categories.count_books", attribute.Int64("category.id", int64(id)))
	defer func() { endSpan(span, err) }()

	var n int64
	err = r.db.WithContext(ctx).Model(&model.Book{}).Where("category_id = ?", id).Count(&n).Error
	return n, err
}
