package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/docs"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/handler"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/middleware"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/service"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/validation"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// APIBasePath is the prefix the domain routes are additionally served under.
const APIBasePath = "/api"

var trustedProxies = []string{
	"127.0.0.1",
	"::1",
}

// Options carries what the router needs besides the database.
type Options struct {
	Logger    *zap.Logger
	Version   string
	StartTime time.Time
}

// NewRouter wires repositories, services and handlers on top of database
// and returns the engine ready to be served.
func NewRouter(database *gorm.DB, opts Options) (*gin.Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	validation.Setup()

	e := gin.New()
	e.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	)

	if err := e.SetTrustedProxies(trustedProxies); err != nil {
		return nil, err
	}

	authorSvc := service.NewAuthorService(repository.NewGormAuthorRepository(database))
	bookSvc := service.NewBookService(repository.NewGormBookRepository(database))

	handler.NewHealthHandler(database, opts.StartTime, opts.Version).RegisterRoutes(e)

	mountDomain(&e.RouterGroup, authorSvc, bookSvc)
	mountDomain(e.Group(APIBasePath), authorSvc, bookSvc)

	docs.SwaggerInfo.BasePath = APIBasePath
	docs.SwaggerInfo.Version = opts.Version
	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return e, nil
}

func mountDomain(g *gin.RouterGroup, authorSvc *service.AuthorService, bookSvc *service.BookService) {
	handler.NewAuthorHandler(authorSvc).RegisterRoutes(g)
	handler.NewBookHandler(bookSvc).RegisterRoutes(g)
}
