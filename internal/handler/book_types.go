package handler

import (
	"time"

	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
)

type CreateBookRequest struct {
	Title           string      `json:"title" binding:"required,min=1"`
	Genre           string      `json:"genre" binding:"omitempty,max=255"`
	PublicationDate *model.Date `json:"publicationDate" swaggertype:"string" example:"2001-03-04"`
	Price           float64     `json:"price"`
	AuthorID        uint        `json:"authorId" binding:"required"`
}

// UpdateBookRequest only changes the fields present in the body. An empty
// publicationDate string clears the stored date.
type UpdateBookRequest struct {
	Title           *string     `json:"title" binding:"omitempty,min=1"`
	Genre           *string     `json:"genre" binding:"omitempty,max=255"`
	PublicationDate *model.Date `json:"publicationDate" swaggertype:"string" example:"2001-03-04"`
	Price           *float64    `json:"price"`
	AuthorID        *uint       `json:"authorId" binding:"omitempty,min=1"`
}

type Book struct {
	ID              uint          `json:"id"`
	Title           string        `json:"title"`
	Genre           string        `json:"genre"`
	PublicationDate *model.Date   `json:"publicationDate" swaggertype:"string" example:"2001-03-04"`
	Price           float64       `json:"price"`
	AuthorID        uint          `json:"authorId"`
	Author          AuthorSummary `json:"author"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

type BookSummary struct {
	ID              uint        `json:"id"`
	Title           string      `json:"title"`
	Genre           string      `json:"genre"`
	PublicationDate *model.Date `json:"publicationDate" swaggertype:"string" example:"2001-03-04"`
	Price           float64     `json:"price"`
}
