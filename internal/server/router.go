package server

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"joyeria-system/internal/server/middleware"
	"joyeria-system/internal/services/dashboard"
	"joyeria-system/internal/services/products"
)

// Options configures the router beyond its service dependencies.
type Options struct {
	// WebDir is the root of the static views and assets.
	WebDir string
	// RateLimit is a limiter format string such as "100-M". Empty disables
	// rate limiting.
	RateLimit string
}

func NewRouter(productsSvc *products.Service, dashboardSvc *dashboard.Service, log *slog.Logger, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	if opts.RateLimit != "" {
		r.Use(middleware.RateLimit(opts.RateLimit))
	}

	productHandler := NewProductHandler(productsSvc, log)
	dashboardHandler := NewDashboardHandler(dashboardSvc, log)

	api := r.Group("/api")
	{
		api.GET("/products", productHandler.List)
		api.POST("/products", productHandler.Create)
		api.GET("/products/:id", productHandler.Get)
		api.PUT("/products/:id", productHandler.Update)
		api.DELETE("/products/:id", productHandler.Delete)
		api.GET("/products/category/:categoryId", productHandler.ListByCategory)

		api.GET("/dashboard", dashboardHandler.Stats)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if opts.WebDir != "" {
		registerPages(r, opts.WebDir)
	}

	return r
}

func registerPages(r *gin.Engine, webDir string) {
	views := filepath.Join(webDir, "views")
	public := filepath.Join(webDir, "public")

	r.GET("/", servePage(filepath.Join(views, "index.html"), http.StatusOK))
	r.GET("/products", servePage(filepath.Join(views, "products.html"), http.StatusOK))
	r.GET("/product-form", servePage(filepath.Join(views, "product-form.html"), http.StatusOK))

	r.Static("/js", filepath.Join(public, "js"))
	r.Static("/css", filepath.Join(public, "css"))
	r.Static("/images", filepath.Join(public, "images"))

	// Unmatched routes answer with the HTML not-found page, not the JSON
	// error envelope.
	r.NoRoute(servePage(filepath.Join(views, "404.html"), http.StatusNotFound))
}

func servePage(path string, status int) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := os.ReadFile(path)
		if err != nil {
			c.String(status, "page not found")
			return
		}
		c.Data(status, "text/html; charset=utf-8", body)
	}
}
