package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/service"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/validation"
)

type AuthorHandler struct {
	svc *service.AuthorService
}

func NewAuthorHandler(svc *service.AuthorService) *AuthorHandler {
	return &AuthorHandler{svc: svc}
}

func (h *AuthorHandler) RegisterRoutes(r *gin.RouterGroup) {
	authors := r.Group("/authors")
	{
		authors.POST("", h.CreateAuthor)
		authors.GET("", h.ListAuthors)
		authors.GET("/:id", h.GetAuthorByID)
		authors.PUT("/:id", h.UpdateAuthor)
		authors.PATCH("/:id", h.UpdateAuthor)
		authors.DELETE("/:id", h.DeleteAuthor)
		authors.GET("/:id/books", h.ListAuthorBooks)
	}
}

// CreateAuthor godoc
// @Summary      Create an author
// @Description  Create a new author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateAuthorRequest        true  "Author to create"
// @Success      200      {object}  Author
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /authors [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req CreateAuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	author := model.Author{
		Name:        req.Name,
		Nationality: req.Nationality,
		Biography:   req.Biography,
	}
	if req.BirthDate != nil {
		author.BirthDate = req.BirthDate.Ptr()
	}

	created, err := h.svc.Create(c.Request.Context(), &author)
	if err != nil {
		writeInternalError(c, err, http.StatusInternalServerError,
			"AUTHOR_CREATE_FAILED",
			"failed to create author",
		)
		return
	}

	c.JSON(http.StatusOK, toAuthorResponse(*created))
}

// ListAuthors godoc
// @Summary      List authors
// @Description  Get a list of all authors
// @Tags         authors
// @Produce      json
// @Success      200  {array}   Author
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	authors, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeInternalError(c, err, http.StatusInternalServerError,
			"AUTHOR_LIST_FAILED",
			"failed to list authors",
		)
		return
	}

	c.JSON(http.StatusOK, toAuthorListResponse(authors))
}

// GetAuthorByID godoc
// @Summary      Get author by ID
// @Description  Get a single author by its ID
// @Tags         authors
// @Produce      json
// @Param        id   path      int                       true  "Author ID"
// @Success      200  {object}  Author
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id} [get]
func (h *AuthorHandler) GetAuthorByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "AUTHOR_INVALID_ID", "invalid author id")
	if !ok {
		return
	}

	author, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAuthorNotFound) {
			writeError(c, http.StatusNotFound,
				"AUTHOR_NOT_FOUND",
				"author not found",
			)
			return
		}

		writeInternalError(c, err, http.StatusInternalServerError,
			"AUTHOR_FETCH_FAILED",
			"failed to fetch author",
		)
		return
	}

	c.JSON(http.StatusOK, toAuthorResponse(*author))
}

// UpdateAuthor godoc
// @Summary      Update an author
// @Description  Update an existing author; fields missing from the body are left unchanged
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Author ID"
// @Param        payload  body      UpdateAuthorRequest  true  "Author fields to update"
// @Success      200      {object}  Author
// @Failure      400      {object}  validation.ErrorResponse  "Invalid ID or validation error"
// @Failure      404      {object}  validation.ErrorResponse  "Author not found"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id} [put]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "AUTHOR_INVALID_ID", "invalid author id")
	if !ok {
		return
	}

	var req UpdateAuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	author, err := h.svc.Update(c.Request.Context(), id, service.AuthorPatch{
		Name:        req.Name,
		Nationality: req.Nationality,
		BirthDate:   req.BirthDate,
		Biography:   req.Biography,
	})
	if err != nil {
		if errors.Is(err, service.ErrAuthorNotFound) {
			writeError(c, http.StatusNotFound,
				"AUTHOR_NOT_FOUND",
				"author not found",
			)
			return
		}

		writeInternalError(c, err, http.StatusInternalServerError,
			"AUTHOR_UPDATE_FAILED",
			"failed to update author",
		)
		return
	}

	c.JSON(http.StatusOK, toAuthorResponse(*author))
}

// DeleteAuthor godoc
// @Summary      Delete an author
// @Description  Delete an author and all of its books. Deleting an unknown author is a no-op.
// @Tags         authors
// @Produce      json
// @Param        id   path      int                       true  "Author ID"
// @Success      204  "No Content"
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "AUTHOR_INVALID_ID", "invalid author id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil && !errors.Is(err, service.ErrAuthorNotFound) {
		writeInternalError(c, err, http.StatusInternalServerError,
			"AUTHOR_DELETE_FAILED",
			"failed to delete author",
		)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListAuthorBooks godoc
// @Summary      List an author's books
// @Description  Get every book written by the author
// @Tags         authors
// @Produce      json
// @Param        id   path      int                       true  "Author ID"
// @Success      200  {array}   Book
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id}/books [get]
func (h *AuthorHandler) ListAuthorBooks(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "AUTHOR_INVALID_ID", "invalid author id")
	if !ok {
		return
	}

	books, err := h.svc.ListBooks(c.Request.Context(), id)
	if err != nil {
		writeInternalError(c, err, http.StatusInternalServerError,
			"AUTHOR_BOOKS_FAILED",
			"failed to list author books",
		)
		return
	}

	c.JSON(http.StatusOK, toBookListResponse(books))
}
