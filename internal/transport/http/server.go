package http

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appsvc "petspotter/internal/app"
	"petspotter/internal/bootstrap"
	"petspotter/internal/config"
	"petspotter/internal/transport/http/handler"
	"petspotter/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	handler.UseJSONFieldNames()

	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery(), middleware.Metrics())
	router.Use(cors.New(corsConfig(app.Config.CORS)))

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authService := appsvc.NewAuthService(app.Users, app.Config.Auth.BcryptCost)
	listingService := appsvc.NewListingService(app.Listings, app.ListingFilter, app.Cache, app.Publisher)
	imageService := appsvc.NewImageService(app.Objects, app.Images, app.Config.Media.MaxUploadBytes)

	authHandler := handler.NewAuthHandler(authService)
	listingHandler := handler.NewListingHandler(listingService)
	imageHandler := handler.NewImageHandler(imageService)
	routeIndex := handler.NewRouteIndex(router)
	requireToken := middleware.RequireAccessToken(authService)

	api := router.Group("/")
	api.Use(middleware.RequireReady(app.Readiness))
	api.GET("/", routeIndex.List)
	api.GET("/welcome", requireToken, authHandler.Welcome)

	api.POST("/register-user", authHandler.Register)
	api.POST("/authenticate-user", authHandler.Login)

	api.GET("/petposts", listingHandler.List)
	api.GET("/petposts/:id", listingHandler.Get)
	api.GET("/posts/:id", listingHandler.Get)
	api.POST("/petposts", requireToken, listingHandler.Create)
	api.DELETE("/petposts/:id", requireToken, listingHandler.Delete)

	api.POST("/upload-images", requireToken, imageHandler.Upload)
	api.GET("/upload-images/:id", imageHandler.Get)

	return router
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(cfg.AllowOrigins) == 0 || slices.Contains(cfg.AllowOrigins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowOrigins
	}
	return c
}
