package repository

import (
	"context"

	"github.com/amalSheikhdaher/Simple-Library-API/internal/model"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookRepository defines the data access contract for books. Every read
// preloads the owning Category.
type BookRepository interface {
	Create(ctx context.Context, b *model.Book) error
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	List(ctx context.Context, page, limit int) ([]model.Book, int64, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]model.Book, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, b *model.Book) error
}

type bookRepository struct{ db *gorm.DB }

func NewBookRepository(db *gorm.DB) BookRepository { return &bookRepository{db: db} }

// Writes omit associations: a stale preloaded Category must never overwrite
// category_id or be upserted.

func (r *bookRepository) Create(ctx context.Context, b *model.Book) (err error) {
	ctx, span := startSpan(ctx, "books.create")
	defer func() { endSpan(span, err) }()

	return r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (_ *model.Book, err error) {
	ctx, span := startSpan(ctx, "books.find", attribute.Int64("book.id", int64(id)))
	defer func() { endSpan(span, err) }()

	var b model.Book
	if err = r.db.WithContext(ctx).Preload("Category").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) List(ctx context.Context, page, limit int) (_ []model.Book, _ int64, err error) {
	ctx, span := startSpan(ctx, "books.list", attribute.Int("page", page))
	defer func() { endSpan(span, err) }()

	var books []model.Book
	var total int64
	if err = r.db.WithContext(ctx).Model(&model.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err = r.db.WithContext(ctx).Preload("Category").Order("id asc").Limit(limit).Offset(offset(page, limit)).Find(&books).Error
	return books, total, err
}

func (r *bookRepository) ListByCategory(ctx context.Context, categoryID uint) (_ []model.Book, err error) {
	ctx, span := startSpan(ctx, "books.list_by_category", attribute.Int64("category.id", int64(categoryID)))
	defer func() { endSpan(span, err) }()

	var books []model.Book
	err = r.db.WithContext(ctx).Preload("Category").
		Where("category_id = ?", categoryID).Order("id asc").Find(&books).Error
	return books, err
}

func (r *bookRepository) Update(ctx context.Context, b *model.Book) (err error) {
	ctx, span := startSpan(ctx, "books.update", attribute.Int64("book.id", int64(b.ID)))
	defer func() { endSpan(span, err) }()

	return r.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error
}

func (r *bookRepository) Delete(ctx context.Context, b *model.Book) (err error) {
	ctx, span := startSpan(ctx, "books.delete", attribute.Int64("book.id", int64(b.ID)))
	defer func() { endSpan(span, err) }()

	return r.db.WithContext(ctx).Delete(b).Error
}
