package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tripweaver/booking-backend/internal/config"
	"github.com/tripweaver/booking-backend/internal/database"
	"github.com/tripweaver/booking-backend/internal/handlers"
	"github.com/tripweaver/booking-backend/internal/middleware"
	"github.com/tripweaver/booking-backend/internal/services"
	"github.com/tripweaver/booking-backend/pkg/jwt"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

var vehicleProducts = []string{"flight", "train", "bus", "cab", "cruise"}
var accommodationProducts = []string{"hotel", "airbnb"}

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting TripWeaver Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize repositories
	vehicleRepo := database.NewVehicleRepository(db.DB)
	accomRepo := database.NewAccommodationRepository(db.DB)
	tripRepo := database.NewTripRepository(db.DB)
	bookingRepo := database.NewBookingRepository(db.DB)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(cfg.JWT.Secret)
	availabilityService := services.NewAvailabilityService(vehicleRepo, accomRepo, logger)
	tripResolver := services.NewTripResolver(tripRepo, logger)
	bookingService := services.NewBookingService(vehicleRepo, bookingRepo, availabilityService, tripResolver, logger)
	queryService := services.NewBookingQueryService(bookingRepo, logger)

	// Initialize handlers
	exposeDetails := cfg.Booking.ExposeErrorDetails
	bookingHandler := handlers.NewBookingHandler(bookingService, queryService, exposeDetails, logger)
	vehicleHandler := handlers.NewVehicleHandler(vehicleRepo, exposeDetails, logger)
	accomHandler := handlers.NewAccommodationHandler(accomRepo, exposeDetails, logger)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes. Product segments are registered statically per product so
	// they never collide with the /booking group in the routing tree.
	v1 := router.Group("/api/v1")
	authRequired := middleware.AuthMiddleware(jwtService, logger)
	{
		for _, product := range vehicleProducts {
			grp := v1.Group("/" + product)
			grp.Use(productParam(product))
			{
				grp.GET("/list", vehicleHandler.List)
				grp.GET("/coaches/:id", vehicleHandler.Coaches)
				grp.POST("/book/:id", authRequired, bookingHandler.Book)
			}
		}

		for _, product := range accommodationProducts {
			grp := v1.Group("/" + product)
			grp.Use(productParam(product))
			{
				grp.GET("/list", accomHandler.List)
				grp.GET("/rooms/:id", accomHandler.Rooms)
				grp.POST("/book/:id", authRequired, bookingHandler.Book)
			}
		}

		booking := v1.Group("/booking")
		booking.Use(authRequired)
		{
			booking.GET("/list", bookingHandler.List)
			booking.POST("/cancel/:id", bookingHandler.Cancel)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// productParam injects the product segment as a route param so one handler
// serves every product group.
func productParam(product string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: "product", Value: product})
		c.Next()
	}
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		if userCtx, exists := middleware.GetUserContext(c); exists {
			fields["user_id"] = userCtx.UserID
		}

		entry := logger.WithFields(fields)

		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
