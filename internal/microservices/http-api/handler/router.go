package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"carhub/internal/microservices/http-api/middleware"
	"carhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// Services the router dispatches to
type Services struct {
	Cars       service.CarService
	Ratings    service.RatingService
	Popularity service.PopularityService
	Auth       service.AuthService
}

// NewRouter builds the gin engine with every public and admin route.
func NewRouter(svcs Services, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.Use(middleware.RequestID(), middleware.RequestLogger(logger), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	NewCarHandler(svcs.Cars).RegisterRoutes(r)
	NewRatingHandler(svcs.Ratings).RegisterRoutes(r)
	NewPopularHandler(svcs.Popularity).RegisterRoutes(r)

	admin := r.Group("/admin")
	NewAuthHandler(svcs.Auth).RegisterRoutes(admin)

	protected := admin.Group("", middleware.AuthMiddleware(svcs.Auth), middleware.RequireAdmin())
	NewAdminHandler(svcs.Cars).RegisterRoutes(protected)

	return r
}

// handle registers path with and without a trailing slash
func handle(r gin.IRoutes, method, path string, handlers ...gin.HandlerFunc) {
	path = strings.TrimSuffix(path, "/")
	r.Handle(method, path, handlers...)
	r.Handle(method, path+"/", handlers...)
}
