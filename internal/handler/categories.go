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

type CategoriesHandler struct {
	svc       service.CategoryService
	validator *validation.CategoryValidator
}

func NewCategoriesHandler(svc service.CategoryService, v *validation.CategoryValidator) *CategoriesHandler {
	return &CategoriesHandler{svc: svc, validator: v}
}

// List GET /categories
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        page query int false "Page number (1-based)"
// @Success      200  {object} dto.Envelope{data=[]dto.CategoryResponse}
// @Router       /categories [get]
func (h *CategoriesHandler) List(c *gin.Context) {
	page := pageParam(c)
	list, total, err := h.svc.List(c.Request.Context(), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respondPage(c, presenter.Categories(list), "Categories retrieved successfully", page, total)
}

// Store POST /categories
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body body object true "name, description"
// @Success      201  {object} dto.Envelope{data=dto.CategoryResponse}
// @Failure      422  {object} apierror.ValidationError
// @Router       /categories [post]
func (h *CategoriesHandler) Store(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	fields, err := h.validator.ValidateCreate(c.Request.Context(), payload)
	if err != nil {
		_ = c.Error(err)
		return
	}
	category, err := h.svc.Store(c.Request.Context(), fields)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusCreated, dto.NewEnvelope(presenter.Category(*category), "Category Store Successfully"))
}

// Show GET /categories/:id
func (h *CategoriesHandler) Show(c *gin.Context) {
	category, ok := h.lookup(c)
	if !ok {
		return
	}
	respond(c, http.StatusOK, dto.NewEnvelope(presenter.Category(*category), "Category with its categories retrieved successfully"))
}

// Update PUT /categories/:id
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id   path int    true "Category ID"
// @Param        body body object true "name, description"
// @Success      200  {object} dto.Envelope{data=dto.CategoryResponse}
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /categories/{id} [put]
func (h *CategoriesHandler) Update(c *gin.Context) {
	category, ok := h.lookup(c)
	if !ok {
		return
	}
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	fields, err := h.validator.ValidateUpdate(c.Request.Context(), payload, category.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), category, fields)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, dto.NewEnvelope(presenter.Category(*updated), "Category Update Successfully"))
}

// Destroy DELETE /categories/:id
// Refused with 409 while books reference the category.
func (h *CategoriesHandler) Destroy(c *gin.Context) {
	category, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), category); err != nil {
		_ = c.Error(err)
		return
	}
	respond(c, http.StatusOK, dto.NewEnvelope(true, "Category Delete Successfully"))
}

func (h *CategoriesHandler) lookup(c *gin.Context) (*model.Category, bool) {
	id, ok := pathID(c)
	if !ok {
		_ = c.Error(service.ErrCategoryNotFound)
		return nil, false
	}
	category, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return nil, false
	}
	return category, true
}
