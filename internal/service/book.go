package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/repository"
	"gorm.io/gorm"
)

// BookPatch carries the fields of an update. Nil fields are left as they
// are; a zero PublicationDate clears the stored date.
type BookPatch struct {
	Title           *string
	Genre           *string
	PublicationDate *model.Date
	Price           *float64
	AuthorID        *uint
}

func (p BookPatch) apply(b *model.Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Genre != nil {
		b.Genre = *p.Genre
	}
	if p.PublicationDate != nil {
		b.PublicationDate = p.PublicationDate.Ptr()
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.AuthorID != nil {
		b.AuthorID = *p.AuthorID
	}
}

type BookService struct {
	repo repository.BookRepository
}

func NewBookService(repo repository.BookRepository) *BookService {
	return &BookService{repo: repo}
}

// Create stores book under the given author. It fails with
// ErrAuthorNotFound, storing nothing, when the author does not exist.
func (s *BookService) Create(ctx context.Context, book *model.Book, authorID uint) (*model.Book, error) {
	book.ID = 0
	book.AuthorID = authorID
	book.Author = model.Author{}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, bookErr("create book", err)
	}

	created, err := s.repo.FindByID(ctx, book.ID)
	if err != nil {
		return nil, bookErr("get created book", err)
	}
	return created, nil
}

func (s *BookService) List(ctx context.Context) ([]model.Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (s *BookService) GetByID(ctx context.Context, id uint) (*model.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, bookErr("get book", err)
	}
	return book, nil
}

func (s *BookService) Update(ctx context.Context, id uint, patch BookPatch) (*model.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, bookErr("get book", err)
	}

	patch.apply(book)

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, bookErr("update book", err)
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, bookErr("get updated book", err)
	}
	return updated, nil
}

func (s *BookService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return bookErr("delete book", err)
	}
	return nil
}

// ListByGenre returns the books whose genre equals genre, ignoring case.
func (s *BookService) ListByGenre(ctx context.Context, genre string) ([]model.Book, error) {
	books, err := s.repo.ListByGenre(ctx, genre)
	if err != nil {
		return nil, fmt.Errorf("list books by genre %q: %w", genre, err)
	}
	return books, nil
}

func bookErr(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrBookNotFound
	case errors.Is(err, repository.ErrAuthorReference):
		return ErrAuthorNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
