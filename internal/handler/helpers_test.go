package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/service"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/validation"
	"gorm.io/gorm"
)

func setupTestRouterWithRepos(
	bookRepo repository.BookRepository,
	authorRepo repository.AuthorRepository,
) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Setup()
	r := gin.New()

	bh := NewBookHandler(service.NewBookService(bookRepo))
	bh.RegisterRoutes(r.Group(""))

	ah := NewAuthorHandler(service.NewAuthorService(authorRepo))
	ah.RegisterRoutes(r.Group(""))

	return r
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	bookRepo := repository.NewGormBookRepository(db)
	authorRepo := repository.NewGormAuthorRepository(db)
	return setupTestRouterWithRepos(bookRepo, authorRepo)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
	return v
}
