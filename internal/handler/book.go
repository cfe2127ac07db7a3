package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/service"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/validation"
)

type BookHandler struct {
	svc *service.BookService
}

func NewBookHandler(svc *service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/genre/:genre", h.ListBooksByGenre)
		books.GET("/:id", h.GetBookByID)
		books.PUT("/:id", h.UpdateBook)
		books.PATCH("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
		books.POST("", h.CreateBook)
	}
}

// CreateBook godoc
// @Summary      Create a book
// @Description  Create a new book for an existing author
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateBookRequest          true  "Book to create"
// @Success      200      {object}  Book
// @Failure      400      {object}  validation.ErrorResponse   "Validation error or unknown author"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book := model.Book{
		Title: req.Title,
		Genre: req.Genre,
		Price: req.Price,
	}
	if req.PublicationDate != nil {
		book.PublicationDate = req.PublicationDate.Ptr()
	}

	created, err := h.svc.Create(c.Request.Context(), &book, req.AuthorID)
	if err != nil {
		if errors.Is(err, service.ErrAuthorNotFound) {
			writeError(c, http.StatusBadRequest,
				"AUTHOR_NOT_FOUND",
				"author does not exist",
			)
			return
		}

		writeInternalError(c, err, http.StatusInternalServerError,
			"BOOK_CREATE_FAILED",
			"failed to create book",
		)
		return
	}

	c.JSON(http.StatusOK, toBookResponse(*created))
}

// ListBooks godoc
// @Summary      List books
// @Description  Get all books
// @Tags         books
// @Produce      json
// @Success      200  {array}   Book
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeInternalError(c, err, http.StatusInternalServerError,
			"BOOK_LIST_FAILED",
			"failed to fetch books",
		)
		return
	}

	c.JSON(http.StatusOK, toBookListResponse(books))
}

// ListBooksByGenre godoc
// @Summary      List books by genre
// @Description  Get all books of a genre, compared case-insensitively
// @Tags         books
// @Produce      json
// @Param        genre  path      string  true  "Genre"
// @Success      200    {array}   Book
// @Failure      500    {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/genre/{genre} [get]
func (h *BookHandler) ListBooksByGenre(c *gin.Context) {
	books, err := h.svc.ListByGenre(c.Request.Context(), c.Param("genre"))
	if err != nil {
		writeInternalError(c, err, http.StatusInternalServerError,
			"BOOK_LIST_FAILED",
			"failed to fetch books",
		)
		return
	}

	c.JSON(http.StatusOK, toBookListResponse(books))
}

// GetBookByID godoc
// @Summary      Get a book by ID
// @Description  Get a single book by its ID
// @Tags         books
// @Produce      json
// @Param        id   path      int     true  "Book ID"
// @Success      200  {object}  Book
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id", "INVALID_BOOK_ID", "invalid book id")
	if !ok {
		return
	}

	book, err := h.svc.GetByID(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			writeError(c, http.StatusNotFound,
				"BOOK_NOT_FOUND",
				"book not found",
			)
			return
		}

		writeInternalError(c, err, http.StatusInternalServerError,
			"BOOK_FETCH_FAILED",
			"failed to fetch book",
		)
		return
	}

	c.JSON(http.StatusOK, toBookResponse(*book))
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Update a book; fields missing from the body are left unchanged
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "Book ID"
// @Param        payload  body      UpdateBookRequest   true  "Fields to update"
// @Success      200      {object}  Book
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID, payload or unknown author"
// @Failure      404      {object}  validation.ErrorResponse   "Book not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id", "INVALID_BOOK_ID", "invalid book id")
	if !ok {
		return
	}

	var req UpdateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book, err := h.svc.Update(c.Request.Context(), bookID, service.BookPatch{
		Title:           req.Title,
		Genre:           req.Genre,
		PublicationDate: req.PublicationDate,
		Price:           req.Price,
		AuthorID:        req.AuthorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			writeError(c, http.StatusNotFound,
				"BOOK_NOT_FOUND",
				"book not found",
			)
		case errors.Is(err, service.ErrAuthorNotFound):
			writeError(c, http.StatusBadRequest,
				"AUTHOR_NOT_FOUND",
				"author does not exist",
			)
		default:
			writeInternalError(c, err, http.StatusInternalServerError,
				"BOOK_UPDATE_FAILED",
				"failed to update book",
			)
		}
		return
	}

	c.JSON(http.StatusOK, toBookResponse(*book))
}

// DeleteBook godoc
// @Summary      Delete a book
// @Description  Delete a book by its ID. Deleting an unknown book is a no-op.
// @Tags         books
// @Produce      json
// @Param        id   path      int     true  "Book ID"
// @Success      204  {string}  string  "No content"
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id", "INVALID_BOOK_ID", "invalid book id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), bookID); err != nil && !errors.Is(err, service.ErrBookNotFound) {
		writeInternalError(c, err, http.StatusInternalServerError,
			"BOOK_DELETE_FAILED",
			"failed to delete book",
		)
		return
	}

	c.Status(http.StatusNoContent)
}
