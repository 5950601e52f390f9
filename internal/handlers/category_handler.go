package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brewbooks/internal/models"
	"brewbooks/internal/services"
)

// CategoryHandler handles category-related requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryListQuery holds the category listing filters.
type CategoryListQuery struct {
	Type models.CategoryType `form:"type" json:"type" binding:"omitempty,category_type"`
}

// ListCategories returns the user's categories
// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       type query string false "income or expense"
// @Success     200 {object} Response{data=[]models.Category} "Categories"
// @Failure     422 {object} ErrorResponse "Invalid filter"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q CategoryListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindQueryError(err))
		return
	}
	var categoryType *models.CategoryType
	if q.Type != "" {
		categoryType = &q.Type
	}

	categories, err := h.categoryService.ListCategories(userID, categoryType)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Categories retrieved successfully", categories)
}

// CreateCategory creates a category
// @Summary     Create a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.CategoryInput true "Category details"
// @Success     201 {object} Response{data=models.Category} "Category created"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req services.CategoryInput
	if err := bindJSON(c, &req, ""); err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Category created successfully", category)
}

// GetCategory returns one category with its parent and children
// @Summary     Get a category
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} Response{data=models.Category} "Category"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategoryByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Category retrieved successfully", category)
}

// UpdateCategory applies a partial update to a category
// @Summary     Update a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                        true "Category ID"
// @Param       request body services.CategoryUpdateFields true "Fields to change"
// @Success     200 {object} Response{data=models.Category} "Category updated"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req services.CategoryUpdateFields
	if err := bindJSON(c, &req, ""); err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(userID, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Category updated successfully", category)
}

// DeleteCategory removes an unused category
// @Summary     Delete a category
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} Response "Category deleted"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     422 {object} ErrorResponse "Category in use"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Category deleted successfully", nil)
}
