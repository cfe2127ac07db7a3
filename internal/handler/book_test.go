package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/testutil"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/validation"
	"gorm.io/gorm"
)

type fakeBookRepo struct {
	CreateFn      func(ctx context.Context, b *model.Book) error
	FindByIDFn    func(ctx context.Context, id uint) (*model.Book, error)
	ListFn        func(ctx context.Context) ([]model.Book, error)
	ListByGenreFn func(ctx context.Context, genre string) ([]model.Book, error)
	UpdateFn      func(ctx context.Context, b *model.Book) error
	DeleteFn      func(ctx context.Context, id uint) error
}

func (f *fakeBookRepo) Create(ctx context.Context, b *model.Book) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, b)
	}
	return nil
}

func (f *fakeBookRepo) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBookRepo) List(ctx context.Context) ([]model.Book, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	return nil, nil
}

func (f *fakeBookRepo) ListByGenre(ctx context.Context, genre string) ([]model.Book, error) {
	if f.ListByGenreFn != nil {
		return f.ListByGenreFn(ctx, genre)
	}
	return nil, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, b *model.Book) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, b)
	}
	return nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id uint) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

func bookPath(id uint) string {
	return "/books/" + strconv.FormatUint(uint64(id), 10)
}

func TestCreateBook_Success(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	author := testutil.SeedAuthor(t, db, "Frank Herbert")

	w := doJSON(t, router, http.MethodPost, "/books", map[string]any{
		"title":           "Dune",
		"genre":           "Sci-Fi",
		"publicationDate": "1965-08-01",
		"price":           9.99,
		"authorId":        author.ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decode[Book](t, w)
	if resp.ID == 0 {
		t.Errorf("expected non-zero ID")
	}
	if resp.Title != "Dune" || resp.Genre != "Sci-Fi" || resp.Price != 9.99 {
		t.Errorf("unexpected book %+v", resp)
	}
	if resp.PublicationDate == nil || resp.PublicationDate.Format("2006-01-02") != "1965-08-01" {
		t.Errorf("expected publicationDate 1965-08-01, got %v", resp.PublicationDate)
	}
	if resp.AuthorID != author.ID || resp.Author.Name != "Frank Herbert" {
		t.Errorf("expected author Frank Herbert, got %+v", resp.Author)
	}
}

func TestCreateBook_UnknownAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doJSON(t, router, http.MethodPost, "/books", map[string]any{
		"title":    "Orphan",
		"authorId": 4242,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decode[validation.ErrorResponse](t, w)
	if resp.Code != "AUTHOR_NOT_FOUND" {
		t.Errorf("expected AUTHOR_NOT_FOUND, got %q", resp.Code)
	}

	var count int64
	db.Model(&model.Book{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no book stored, got %d", count)
	}
}

func TestCreateBook_ValidationErrors(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doJSON(t, router, http.MethodPost, "/books", map[string]any{"genre": "Drama"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	resp := decode[validation.ErrorResponse](t, w)
	fields := map[string]bool{}
	for _, fe := range resp.Errors {
		fields[fe.Field] = true
	}
	if !fields["title"] || !fields["authorId"] {
		t.Errorf("expected title and authorId errors, got %+v", resp.Errors)
	}
}

func TestCreateBook_InternalError_Returns500(t *testing.T) {
	bookRepo := &fakeBookRepo{
		CreateFn: func(ctx context.Context, b *model.Book) error {
			return errors.New("forced create error")
		},
	}
	router := setupTestRouterWithRepos(bookRepo, &fakeAuthorRepo{})

	w := doJSON(t, router, http.MethodPost, "/books", CreateBookRequest{Title: "T", AuthorID: 1})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}

	resp := decode[validation.ErrorResponse](t, w)
	if resp.Code != "BOOK_CREATE_FAILED" {
		t.Errorf("expected BOOK_CREATE_FAILED, got %q", resp.Code)
	}
}

func TestListBooks_Empty(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doJSON(t, router, http.MethodGet, "/books", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "[]" {
		t.Errorf("expected empty JSON array, got %s", w.Body.String())
	}
}

func TestListBooks_WithData(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	author1 := testutil.SeedAuthor(t, db, "Author 1")
	author2 := testutil.SeedAuthor(t, db, "Author 2")

	book1 := testutil.SeedBook(t, db, author1, "Book 1", "Drama", 1)
	book2 := testutil.SeedBook(t, db, author2, "Book 2", "Drama", 2)

	w := doJSON(t, router, http.MethodGet, "/books", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decode[[]Book](t, w)
	if len(resp) != 2 {
		t.Fatalf("expected 2 books, got %d", len(resp))
	}

	if resp[0].ID != book1.ID || resp[0].Author.ID != author1.ID {
		t.Errorf("unexpected first book %+v", resp[0])
	}
	if resp[1].ID != book2.ID || resp[1].Author.ID != author2.ID {
		t.Errorf("unexpected second book %+v", resp[1])
	}
}

func TestListBooks_InternalError_Returns500(t *testing.T) {
	bookRepo := &fakeBookRepo{
		ListFn: func(ctx context.Context) ([]model.Book, error) {
			return nil, errors.New("forced list error")
		},
	}
	router := setupTestRouterWithRepos(bookRepo, &fakeAuthorRepo{})

	w := doJSON(t, router, http.MethodGet, "/books", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}

	resp := decode[validation.ErrorResponse](t, w)
	if resp.Code != "BOOK_LIST_FAILED" {
		t.Errorf("expected error code BOOK_LIST_FAILED, got %q", resp.Code)
	}
	if resp.Message != "failed to fetch books" {
		t.Errorf("expected message %q, got %q", "failed to fetch books", resp.Message)
	}
}

func TestListBooksByGenre_CaseInsensitive(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	author := testutil.SeedAuthor(t, db, "Genre Hopper")
	f1 := testutil.SeedBook(t, db, author, "F1", "Fiction", 1)
	f2 := testutil.SeedBook(t, db, author, "F2", "fiction", 2)
	testutil.SeedBook(t, db, author, "H1", "History", 3)

	upper := decode[[]Book](t, doJSON(t, router, http.MethodGet, "/books/genre/Fiction", nil))
	lower := decode[[]Book](t, doJSON(t, router, http.MethodGet, "/books/genre/fiction", nil))

	if len(upper) != 2 || len(lower) != 2 {
		t.Fatalf("expected 2 books for both spellings, got %d and %d", len(upper), len(lower))
	}
	if upper[0].ID != f1.ID || upper[1].ID != f2.ID {
		t.Errorf("unexpected books %+v", upper)
	}
	for i := range upper {
		if upper[i].ID != lower[i].ID {
			t.Errorf("result sets differ at %d", i)
		}
	}

	none := decode[[]Book](t, doJSON(t, router, http.MethodGet, "/books/genre/Poetry", nil))
	if len(none) != 0 {
		t.Errorf("expected no poetry books, got %d", len(none))
	}
}

func TestListBooksByGenre_InternalError_Returns500(t *testing.T) {
	bookRepo := &fakeBookRepo{
		ListByGenreFn: func(ctx context.Context, genre string) ([]model.Book, error) {
			return nil, errors.New("forced genre error")
		},
	}
	router := setupTestRouterWithRepos(bookRepo, &fakeAuthorRepo{})

	w := doJSON(t, router, http.MethodGet, "/books/genre/Drama", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
}

func TestGetBookByID_Success(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	author := testutil.SeedAuthor(t, db, "Evans")
	book := testutil.SeedBook(t, db, author, "DDD", "Software", 45)

	w := doJSON(t, router, http.MethodGet, bookPath(book.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decode[Book](t, w)
	if resp.ID != book.ID {
		t.Errorf("expected id %d, got %d", book.ID, resp.ID)
	}
	if resp.Title != book.Title {
		t.Errorf("expected title %q, got %q", book.Title, resp.Title)
	}
	if resp.Author.Name != "Evans" {
		t.Errorf("expected author Evans, got %q", resp.Author.Name)
	}
}

func TestGetBookByID_InvalidAndMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doJSON(t, router, http.MethodGet, "/books/not-a-number", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/books/12345", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	resp := decode[validation.ErrorResponse](t, w)
	if resp.Code != "BOOK_NOT_FOUND" {
		t.Errorf("expected BOOK_NOT_FOUND, got %q", resp.Code)
	}
}

func TestUpdateBook_OnlySuppliedFields(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	author := testutil.SeedAuthor(t, db, "Owner")
	book := testutil.SeedBook(t, db, author, "Original", "Drama", 10)

	w := doJSON(t, router, http.MethodPut, bookPath(book.ID), map[string]any{
		"price": 12.5,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decode[Book](t, w)
	if resp.ID != book.ID {
		t.Errorf("expected id %d preserved, got %d", book.ID, resp.ID)
	}
	if resp.Price != 12.5 {
		t.Errorf("expected price 12.5, got %v", resp.Price)
	}
	if resp.Title != "Original" || resp.Genre != "Drama" || resp.AuthorID != author.ID {
		t.Errorf("expected other fields unchanged, got %+v", resp)
	}
	if resp.PublicationDate == nil {
		t.Errorf("expected publicationDate kept")
	}
}

func TestUpdateBook_ReassignAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	a1 := testutil.SeedAuthor(t, db, "First")
	a2 := testutil.SeedAuthor(t, db, "Second")
	book := testutil.SeedBook(t, db, a1, "Moving", "Drama", 10)

	w := doJSON(t, router, http.MethodPut, bookPath(book.ID), map[string]any{"authorId": a2.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}
	resp := decode[Book](t, w)
	if resp.AuthorID != a2.ID || resp.Author.Name != "Second" {
		t.Errorf("expected book moved to Second, got %+v", resp.Author)
	}

	w = doJSON(t, router, http.MethodPut, bookPath(book.ID), map[string]any{"authorId": 999})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown author, got %d", w.Code)
	}
	errResp := decode[validation.ErrorResponse](t, w)
	if errResp.Code != "AUTHOR_NOT_FOUND" {
		t.Errorf("expected AUTHOR_NOT_FOUND, got %q", errResp.Code)
	}
}

func TestUpdateBook_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doJSON(t, router, http.MethodPut, "/books/808", map[string]any{"title": "Ghost"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestUpdateBook_InternalError_Returns500(t *testing.T) {
	bookRepo := &fakeBookRepo{
		FindByIDFn: func(ctx context.Context, id uint) (*model.Book, error) {
			return &model.Book{ID: id, Title: "Existing", AuthorID: 1}, nil
		},
		UpdateFn: func(ctx context.Context, b *model.Book) error {
			return errors.New("forced update error")
		},
	}
	router := setupTestRouterWithRepos(bookRepo, &fakeAuthorRepo{})

	w := doJSON(t, router, http.MethodPut, "/books/1", map[string]any{"title": "New"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}

	resp := decode[validation.ErrorResponse](t, w)
	if resp.Code != "BOOK_UPDATE_FAILED" {
		t.Errorf("expected BOOK_UPDATE_FAILED, got %q", resp.Code)
	}
}

func TestDeleteBook(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	author := testutil.SeedAuthor(t, db, "Owner")
	book := testutil.SeedBook(t, db, author, "Temporary", "Drama", 1)

	w := doJSON(t, router, http.MethodDelete, bookPath(book.ID), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, bookPath(book.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, authorPath(author.ID), nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected author to survive book delete, got %d", w.Code)
	}
}

func TestDeleteBook_InternalError_Returns500(t *testing.T) {
	bookRepo := &fakeBookRepo{
		DeleteFn: func(ctx context.Context, id uint) error {
			return errors.New("forced delete error")
		},
	}
	router := setupTestRouterWithRepos(bookRepo, &fakeAuthorRepo{})

	w := doJSON(t, router, http.MethodDelete, "/books/1", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
}

func TestAuthorBookLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doJSON(t, router, http.MethodPost, "/authors", map[string]any{"name": "Jane Doe"})
	if w.Code != http.StatusOK {
		t.Fatalf("create author: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}
	author := decode[Author](t, w)
	if author.ID != 1 {
		t.Fatalf("expected first author id 1, got %d", author.ID)
	}

	w = doJSON(t, router, http.MethodPost, "/books", map[string]any{
		"title":    "X",
		"genre":    "Sci-Fi",
		"authorId": 1,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create book: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}
	book := decode[Book](t, w)
	if book.ID != 1 {
		t.Fatalf("expected first book id 1, got %d", book.ID)
	}

	w = doJSON(t, router, http.MethodGet, "/authors/1/books", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list author books: expected 200, got %d", w.Code)
	}
	books := decode[[]Book](t, w)
	if len(books) != 1 || books[0].ID != 1 {
		t.Fatalf("expected [book 1], got %+v", books)
	}

	w = doJSON(t, router, http.MethodDelete, "/authors/1", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete author: expected 204, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/books/1", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get book after cascade: expected 404, got %d", w.Code)
	}
}
