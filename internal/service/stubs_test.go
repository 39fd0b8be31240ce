package service

import (
	"context"
	"sort"
	"time"

	"github.com/amalSheikhdaher/Simple-Library-API/internal/model"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/repository"

	"gorm.io/gorm"
)

// ── In-memory repositories ───────────────────────────────────────────────────

type memCategoryRepo struct {
	rows   map[uint]*model.Category
	nextID uint
	books  map[uint]int64 // category id -> referencing books

	createErr error
	updateErr error
	deleteErr error
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{rows: make(map[uint]*model.Category), books: make(map[uint]int64)}
}

var _ repository.CategoryRepository = (*memCategoryRepo)(nil)

func (r *memCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	r.rows[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) FindByID(_ context.Context, id uint) (*model.Category, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) List(_ context.Context, page, limit int) ([]model.Category, int64, error) {
	ids := make([]int, 0, len(r.rows))
	for id := range r.rows {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	var out []model.Category
	for i := (page - 1) * limit; i < len(ids) && i < page*limit; i++ {
		out = append(out, *r.rows[uint(ids[i])])
	}
	return out, int64(len(ids)), nil
}

func (r *memCategoryRepo) Update(_ context.Context, c *model.Category) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	c.UpdatedAt = time.Now()
	cp := *c
	r.rows[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) Delete(_ context.Context, c *model.Category) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.rows, c.ID)
	return nil
}

func (r *memCategoryRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *memCategoryRepo) NameTaken(_ context.Context, name string, exceptID uint) (bool, error) {
	for _, c := range r.rows {
		if c.Name == name && c.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memCategoryRepo) CountBooks(_ context.Context, id uint) (int64, error) {
	return r.books[id], nil
}

type memBookRepo struct {
	rows       map[uint]*model.Book
	categories *memCategoryRepo
	nextID     uint

	writeErr error
}

func newMemBookRepo(categories *memCategoryRepo) *memBookRepo {
	return &memBookRepo{rows: make(map[uint]*model.Book), categories: categories}
}

var _ repository.BookRepository = (*memBookRepo)(nil)

func (r *memBookRepo) Create(_ context.Context, b *model.Book) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.nextID++
	b.ID = r.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	cp.Category = nil
	r.rows[b.ID] = &cp
	return nil
}

// FindByID attaches the category like the gorm repository's Preload.
func (r *memBookRepo) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	b, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	if c, err := r.categories.FindByID(ctx, b.CategoryID); err == nil {
		cp.Category = c
	}
	return &cp, nil
}

func (r *memBookRepo) List(ctx context.Context, page, limit int) ([]model.Book, int64, error) {
	ids := make([]int, 0, len(r.rows))
	for id := range r.rows {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	var out []model.Book
	for i := (page - 1) * limit; i < len(ids) && i < page*limit; i++ {
		b, _ := r.FindByID(ctx, uint(ids[i]))
		out = append(out, *b)
	}
	return out, int64(len(ids)), nil
}

func (r *memBookRepo) ListByCategory(ctx context.Context, categoryID uint) ([]model.Book, error) {
	var out []model.Book
	for id := uint(1); id <= r.nextID; id++ {
		if b, ok := r.rows[id]; ok && b.CategoryID == categoryID {
			full, _ := r.FindByID(ctx, id)
			out = append(out, *full)
		}
	}
	return out, nil
}

func (r *memBookRepo) Update(_ context.Context, b *model.Book) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	b.UpdatedAt = time.Now()
	cp := *b
	cp.Category = nil
	r.rows[b.ID] = &cp
	return nil
}

func (r *memBookRepo) Delete(_ context.Context, b *model.Book) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	delete(r.rows, b.ID)
	return nil
}

func ptr[T any](v T) *T { return &v }
