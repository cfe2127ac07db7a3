package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAuthorReference is returned when a book points at an author that does
// not exist.
var ErrAuthorReference = errors.New("referenced author does not exist")

const pgForeignKeyViolation = "23503"

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	ListByGenre(ctx context.Context, genre string) ([]model.Book, error)
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uint) error
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) Create(ctx context.Context, book *model.Book) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureAuthor(tx, book.AuthorID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(book).Error
	})
	return translateBookError(err)
}

func (r *GormBookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).
		Preload("Author").
		First(&book, "id = ?", id).Error; err != nil {

		return nil, err
	}
	return &book, nil
}

func (r *GormBookRepository) List(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Order("id ASC").
		Find(&books).Error; err != nil {

		return nil, err
	}
	return books, nil
}

// ListByGenre matches the genre with Unicode case folding. SQLite's LOWER
// folds ASCII only, so the match is not done in SQL.
func (r *GormBookRepository) ListByGenre(ctx context.Context, genre string) ([]model.Book, error) {
	books, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Book, 0, len(books))
	for _, b := range books {
		if strings.EqualFold(b.Genre, genre) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func (r *GormBookRepository) Update(ctx context.Context, book *model.Book) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureAuthor(tx, book.AuthorID); err != nil {
			return err
		}

		result := tx.Model(&model.Book{}).
			Where("id = ?", book.ID).
			Updates(map[string]any{
				"title":            book.Title,
				"genre":            book.Genre,
				"publication_date": book.PublicationDate,
				"price":            book.Price,
				"author_id":        book.AuthorID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translateBookError(err)
}

func (r *GormBookRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Book{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func ensureAuthor(tx *gorm.DB, authorID uint) error {
	var count int64
	if err := tx.Model(&model.Author{}).Where("id = ?", authorID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrAuthorReference
	}
	return nil
}

// translateBookError maps a foreign key violation to ErrAuthorReference. The
// violation can still happen when the author is deleted between the
// existence check and the write.
func translateBookError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrAuthorReference
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return ErrAuthorReference
	}
	return err
}
