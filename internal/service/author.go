package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/repository"
	"gorm.io/gorm"
)

// AuthorPatch carries the fields of an update. Nil fields are left as they
// are; a zero BirthDate clears the stored date.
type AuthorPatch struct {
	Name        *string
	Nationality *string
	BirthDate   *model.Date
	Biography   *string
}

func (p AuthorPatch) apply(a *model.Author) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Nationality != nil {
		a.Nationality = *p.Nationality
	}
	if p.BirthDate != nil {
		a.BirthDate = p.BirthDate.Ptr()
	}
	if p.Biography != nil {
		a.Biography = *p.Biography
	}
}

type AuthorService struct {
	repo repository.AuthorRepository
}

func NewAuthorService(repo repository.AuthorRepository) *AuthorService {
	return &AuthorService{repo: repo}
}

func (s *AuthorService) Create(ctx context.Context, author *model.Author) (*model.Author, error) {
	author.ID = 0
	if err := s.repo.Create(ctx, author); err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	return author, nil
}

func (s *AuthorService) List(ctx context.Context) ([]model.Author, error) {
	authors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

func (s *AuthorService) GetByID(ctx context.Context, id uint) (*model.Author, error) {
	author, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, authorErr("get author", err)
	}
	return author, nil
}

func (s *AuthorService) Update(ctx context.Context, id uint, patch AuthorPatch) (*model.Author, error) {
	author, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, authorErr("get author", err)
	}

	patch.apply(author)

	if err := s.repo.Update(ctx, author); err != nil {
		return nil, authorErr("update author", err)
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, authorErr("get updated author", err)
	}
	return updated, nil
}

// Delete removes the author and all of its books.
func (s *AuthorService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return authorErr("delete author", err)
	}
	return nil
}

func (s *AuthorService) ListBooks(ctx context.Context, id uint) ([]model.Book, error) {
	books, err := s.repo.ListBooks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list books of author %d: %w", id, err)
	}
	return books, nil
}

func authorErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAuthorNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
