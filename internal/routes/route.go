package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhall/internal/container"
	"github.com/joshua-takyi/eventhall/internal/handlers"
	"github.com/joshua-takyi/eventhall/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	origins := container.Config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	metrics := middleware.NewMetrics(container.Registry)

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(metrics.Handler())
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.Session(container.SessionService, container.Logger))

	secure := container.Config.CookieSecure
	authLimit := middleware.NewRateLimiter(container.Config.AuthRateLimit, container.Config.AuthRateBurst).Handler(container.Logger)

	r.GET("/", handlers.Root())
	r.GET("/health", handlers.Health(container.DB))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(container.Registry, promhttp.HandlerOpts{})))

	r.POST("/submit-form", handlers.SubmitBooking(container.BookingService))
	r.POST("/submit-signup", authLimit, handlers.Signup(container.UserService))
	r.POST("/submit-login", authLimit, handlers.Login(container.UserService, container.SessionService, secure))
	r.POST("/bookings", handlers.ListBookings(container.BookingService))
	r.GET("/is-logged-in", handlers.IsLoggedIn())
	r.POST("/logout", handlers.Logout(container.SessionService, secure))

	r.NoRoute(handlers.SPA(container.Config.StaticDir))

	return r
}
