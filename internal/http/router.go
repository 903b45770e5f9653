package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/volunteerhub/api/internal/auth"
	"github.com/volunteerhub/api/internal/cache"
	"github.com/volunteerhub/api/internal/config"
	"github.com/volunteerhub/api/internal/http/handlers"
	"github.com/volunteerhub/api/internal/http/middlewares"
	"github.com/volunteerhub/api/internal/observability"
	"github.com/volunteerhub/api/internal/repo/memory"
	"github.com/volunteerhub/api/internal/repo/postgres"
)

// UsersStore is everything the handlers collectively need from the
// credential store.
type UsersStore interface {
	handlers.UserReader
	handlers.UserWriter
	handlers.ProfileStore
	handlers.UserLister
}

// Stores bundles the swappable store variants behind the handlers'
// interfaces: Postgres in production, the in-memory variant for demos
// and tests.
type Stores struct {
	Users    UsersStore
	Services handlers.ServicesStore
	Signups  handlers.VolunteerSignup
	Messages handlers.MessagesStore
}

func NewPostgresStores(pool *pgxpool.Pool, prom *observability.Prom) Stores {
	return Stores{
		Users:    postgres.NewUsersRepo(pool, prom),
		Services: postgres.NewServicesRepo(pool, prom),
		Signups:  postgres.NewRegistrationsRepo(pool, prom),
		Messages: postgres.NewMessagesRepo(pool, prom),
	}
}

func NewMemoryStores() Stores {
	catalog := memory.NewCatalog()

	return Stores{
		Users:    memory.NewUsersRepo(),
		Services: catalog,
		Signups:  catalog,
		Messages: memory.NewMessagesRepo(),
	}
}

func NewRouter(
	log *slog.Logger,
	cfg config.Config,
	stores Stores,
	listCache cache.Store,
	prom *observability.Prom,
	pingDB func() error,
) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(otelgin.Middleware("volunteerhub-api"))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	r.Use(middlewares.RequireJSON())

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}

	// health
	h := handlers.NewHealthHandler(pingDB)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	// wire up handlers

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL())
	authMW := middlewares.NewAuthMiddleware(jwtManager)

	authHandler := handlers.NewAuthHandler(stores.Users, stores.Users, jwtManager)
	profileHandler := handlers.NewProfileHandler(stores.Users)
	servicesHandler := handlers.NewServicesHandler(stores.Services, listCache, prom)
	volunteersHandler := handlers.NewVolunteersHandler(stores.Users, stores.Signups, listCache)
	messagesHandler := handlers.NewMessagesHandler(stores.Messages)

	authRL := middlewares.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	apiRL := middlewares.NewRateLimiter(cfg.APIRateLimit, cfg.APIRateWindow)

	api := r.Group("/api")

	// public routes
	api.POST("/register", authRL.Middleware(middlewares.KeyByIP), authHandler.Register)
	api.POST("/login", authRL.Middleware(middlewares.KeyByIP), authHandler.Login)
	api.GET("/services", servicesHandler.List)

	// token-protected routes: identity resolves before any store is touched
	protected := api.Group("")
	protected.Use(authMW.RequireAuth())
	protected.Use(apiRL.Middleware(middlewares.KeyByUserOrIP))

	protected.GET("/profile", profileHandler.Get)
	protected.PUT("/profile", profileHandler.Update)
	protected.POST("/services", servicesHandler.Create)
	protected.GET("/volunteers", volunteersHandler.List)
	protected.POST("/volunteer-for-service/:serviceId", volunteersHandler.SignUp)
	protected.GET("/messages", messagesHandler.List)
	protected.POST("/messages", messagesHandler.Send)
	protected.PUT("/messages/:id/read", messagesHandler.MarkRead)

	return r
}
