package handler

import (
	"net/http"

	"github.com/amalSheikhdaher/Simple-Library-API/internal/dto"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/model"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/presenter"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/service"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/validation"

	"github.com/gin-gonic/gin"
)

type BooksHandler struct {
	books      service.BookService
	categories service.CategoryService
	validator  *validation.BookValidator
}

func NewBooksHandler(books service.BookService, categories service.CategoryService, v *validation.BookValidator) *BooksHandler {
	return &BooksHandler{books: books, categories: categories, validator: v}
}

// List godoc
// @Summary      List books
// @Description  Five books per page, each with its category.
// @Tags         books
// @Produce      json
// @Param        page query int false "Page number (1-based)"
// @Success      200  {object} dto.Envelope{data=[]dto.BookResponse}
// @Router       /books [get]
func (h *BooksHandler) List(c *gin.Context) {
	page := pageParam(c)
	books, total, err := h.books.List(c.Request.Context(), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respondPage(c, presenter.Books(books), "Books retrieved successfully", page, total)
}

// Store godoc
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        body body object true "title, author, published_at, is_active, category_id"
// @Success      201  {object} dto.Envelope{data=dto.BookResponse}
// @Failure      400  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /books [post]
func (h *BooksHandler) Store(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	fields, err := h.validator.ValidateCreate(c.Request.Context(), payload)
	if err != nil {
		_ = c.Error(err)
		return
	}
	book, err := h.books.Store(c.Request.Context(), fields)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusCreated, dto.NewEnvelope(presenter.Book(*book), "Book Store Successfully"))
}

// Show godoc
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Param        id path int true "Book ID"
// @Success      200  {object} dto.Envelope{data=dto.BookResponse}
// @Failure      404  {object} apierror.APIError
// @Router       /books/{id} [get]
func (h *BooksHandler) Show(c *gin.Context) {
	book, ok := h.lookup(c)
	if !ok {
		return
	}
	respond(c, http.StatusOK, dto.NewEnvelope(presenter.Book(*book), "Single Book data Show"))
}

// Update godoc
// @Summary      Update a book
// @Description  Partial update: omitted fields keep their stored value.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id   path int    true "Book ID"
// @Param        body body object true "any of title, author, published_at, is_active, category_id"
// @Success      200  {object} dto.Envelope{data=dto.BookResponse}
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /books/{id} [put]
func (h *BooksHandler) Update(c *gin.Context) {
	book, ok := h.lookup(c)
	if !ok {
		return
	}
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	fields, err := h.validator.ValidateUpdate(c.Request.Context(), payload)
	if err != nil {
		_ = c.Error(err)
		return
	}
	updated, err := h.books.Update(c.Request.Context(), book, fields)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, dto.NewEnvelope(presenter.Book(*updated), "Book Update Successfully"))
}

// Destroy godoc
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Param        id path int true "Book ID"
// @Success      200  {object} dto.Envelope{data=bool}
// @Failure      404  {object} apierror.APIError
// @Router       /books/{id} [delete]
func (h *BooksHandler) Destroy(c *gin.Context) {
	book, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := h.books.Delete(c.Request.Context(), book); err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, dto.NewEnvelope(true, "Book Delete Successfully"))
}

// ByCategory godoc
// @Summary      List the books of a category
// @Tags         books
// @Produce      json
// @Param        id path int true "Category ID"
// @Success      200  {object} dto.Envelope{data=[]dto.BookResponse}
// @Failure      404  {object} apierror.APIError
// @Router       /categories/{id}/books [get]
func (h *BooksHandler) ByCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		_ = c.Error(service.ErrCategoryNotFound)
		return
	}
	category, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	books, err := h.books.ListByCategory(c.Request.Context(), category)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, dto.NewEnvelope(presenter.Books(books), "Books retrieved successfully"))
}

func (h *BooksHandler) lookup(c *gin.Context) (*model.Book, bool) {
	id, ok := pathID(c)
	if !ok {
		_ = c.Error(service.ErrBookNotFound)
		return nil, false
	}
	book, err := h.books.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return nil, false
	}
	return book, true
}
