package handler

import (
	"time"

	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
)

type CreateAuthorRequest struct {
	Name        string      `json:"name" binding:"required,min=1"`
	Nationality string      `json:"nationality" binding:"omitempty,max=255"`
	BirthDate   *model.Date `json:"birthDate" swaggertype:"string" example:"1965-07-31"`
	Biography   string      `json:"biography" binding:"omitempty,max=2000"`
}

// UpdateAuthorRequest only changes the fields present in the body. An empty
// birthDate string clears the stored date.
type UpdateAuthorRequest struct {
	Name        *string     `json:"name" binding:"omitempty,min=1"`
	Nationality *string     `json:"nationality" binding:"omitempty,max=255"`
	BirthDate   *model.Date `json:"birthDate" swaggertype:"string" example:"1965-07-31"`
	Biography   *string     `json:"biography" binding:"omitempty,max=2000"`
}

type Author struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Nationality string        `json:"nationality"`
	BirthDate   *model.Date   `json:"birthDate" swaggertype:"string" example:"1965-07-31"`
	Biography   string        `json:"biography"`
	Books       []BookSummary `json:"books"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type AuthorSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
}
