package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chapashop/api/internal/auth"
	"github.com/chapashop/api/internal/config"
	"github.com/chapashop/api/internal/handler"
	middlewarepkg "github.com/chapashop/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserAdminHandler
	Businesses  *handler.BusinessesHandler
	Reviews     *handler.ReviewsHandler
	AdminUpload *handler.AdminUploadHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)

	e.GET("/businesses", handlers.Businesses.List)
	e.GET("/businesses/top-rated", handlers.Businesses.TopRated)
	e.GET("/businesses/:id", handlers.Businesses.Get)
	e.GET("/businesses/:id/reviews", handlers.Reviews.List)
	e.GET("/categories", handlers.Businesses.Categories)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	secured.POST("/businesses", handlers.Businesses.Create)
	secured.PUT("/businesses/:id", handlers.Businesses.Update)
	secured.DELETE("/businesses/:id", handlers.Businesses.Delete)
	secured.POST("/businesses/:id/photos", handlers.Businesses.UploadPhoto)
	secured.POST("/businesses/:id/reviews", handlers.Reviews.Create, middlewarepkg.ReviewRateLimiter(cfg.RateLimitReviews))
	secured.GET("/my/businesses", handlers.Businesses.ListOwner)

	admin := secured.Group("/admin", middlewarepkg.RequireRole("admin"))
	admin.GET("/businesses", handlers.Businesses.ListAdmin)
	admin.PATCH("/businesses/:id/status", handlers.Businesses.SetStatus)
	admin.GET("/businesses/export", handlers.Businesses.Export)
	admin.POST("/upload-csv", handlers.AdminUpload.UploadCSV)
	admin.GET("/users", handlers.Users.List)
	admin.POST("/users", handlers.Users.Create)
	admin.PATCH("/users/:id", handlers.Users.Update)
	admin.DELETE("/users/:id", handlers.Users.Delete)
}
