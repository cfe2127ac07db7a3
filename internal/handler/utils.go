package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
)

// parseIDParam reads a positive integer path parameter. On failure it has
// already written a 400 response.
func parseIDParam(c *gin.Context, name, code, message string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		writeError(c, http.StatusBadRequest, code, message)
		return 0, false
	}
	return uint(id), true
}

func toAuthorResponse(a model.Author) Author {
	books := make([]BookSummary, 0, len(a.Books))
	for _, b := range a.Books {
		books = append(books, toBookSummary(b))
	}

	return Author{
		ID:          a.ID,
		Name:        a.Name,
		Nationality: a.Nationality,
		BirthDate:   model.DateFromPtr(a.BirthDate),
		Biography:   a.Biography,
		Books:       books,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toAuthorListResponse(authors []model.Author) []Author {
	res := make([]Author, 0, len(authors))
	for _, a := range authors {
		res = append(res, toAuthorResponse(a))
	}
	return res
}

func toBookResponse(b model.Book) Book {
	return Book{
		ID:              b.ID,
		Title:           b.Title,
		Genre:           b.Genre,
		PublicationDate: model.DateFromPtr(b.PublicationDate),
		Price:           b.Price,
		AuthorID:        b.AuthorID,
		Author: AuthorSummary{
			ID:          b.Author.ID,
			Name:        b.Author.Name,
			Nationality: b.Author.Nationality,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toBookListResponse(books []model.Book) []Book {
	res := make([]Book, 0, len(books))
	for _, b := range books {
		res = append(res, toBookResponse(b))
	}
	return res
}

func toBookSummary(b model.Book) BookSummary {
	return BookSummary{
		ID:              b.ID,
		Title:           b.Title,
		Genre:           b.Genre,
		PublicationDate: model.DateFromPtr(b.PublicationDate),
		Price:           b.Price,
	}
}
