package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/learnhub/internal/auth"
	"github.com/geocoder89/learnhub/internal/config"
	"github.com/geocoder89/learnhub/internal/domain/user"
	"github.com/geocoder89/learnhub/internal/http/handlers"
	"github.com/geocoder89/learnhub/internal/http/middlewares"
	"github.com/geocoder89/learnhub/internal/observability"
	"github.com/geocoder89/learnhub/internal/repo/memory"
	"github.com/geocoder89/learnhub/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20 // 1 MiB is plenty for catalog payloads

type UserStore interface {
	handlers.UserReader
	handlers.UserWriter
}

// Stores bundles the storage backends the routes run against. Built once in
// main so the admin seeder and the router share the same instances.
type Stores struct {
	Users   UserStore
	Catalog handlers.CatalogStore
}

func NewStores(cfg config.Config, pool *pgxpool.Pool, prom *observability.Prom) Stores {
	if cfg.StoreBackend == "memory" || pool == nil {
		return Stores{
			Users:   memory.NewUsersRepo(),
			Catalog: memory.NewCoursesRepo(),
		}
	}

	return Stores{
		Users:   postgres.NewUsersRepo(pool, prom),
		Catalog: postgres.NewCoursesRepo(pool, prom),
	}
}

// NewRouter wires middlewares, stores and routes. pool may be nil when the
// memory backend is selected; it is only probed for readiness.
func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config, prom *observability.Prom, stores Stores) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware([]string{cfg.FrontendURL}))
	r.Use(otelgin.Middleware("learnhub-api"))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
		r.GET("/metrics", gin.WrapH(prom.Handler()))
	}

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "Learning Platform API is running"})
	})

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL())
	authMW := middlewares.NewAuthMiddleware(jwtManager)

	authHandler := handlers.NewAuthHandler(stores.Users, stores.Users, jwtManager, log)
	coursesHandler := handlers.NewCoursesHandler(stores.Catalog, log)

	api := r.Group("/api")
	api.Use(middlewares.RequireJSON())
	api.Use(middlewares.MaxBodyBytes(maxBodyBytes))

	authRoutes := api.Group("/auth")
	authRoutes.POST("/signup", authHandler.SignUp)
	authRoutes.POST("/login", authHandler.Login)

	// reads need a valid token, writes the admin role on top
	courseRoutes := api.Group("/courses")
	courseRoutes.Use(authMW.RequireAuth())

	courseRoutes.GET("", coursesHandler.ListCourses)
	courseRoutes.GET("/:id", coursesHandler.GetCourseByID)
	courseRoutes.POST("", authMW.RequireRole(user.RoleAdmin), coursesHandler.CreateCourse)
	courseRoutes.PUT("/:id", authMW.RequireRole(user.RoleAdmin), coursesHandler.UpdateCourse)
	courseRoutes.DELETE("/:id", authMW.RequireRole(user.RoleAdmin), coursesHandler.DeleteCourse)
	courseRoutes.POST("/:id/lessons", authMW.RequireRole(user.RoleAdmin), coursesHandler.AddLesson)

	return r
}
