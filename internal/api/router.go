package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kelleauto/dealership-backend/internal/auth"
	"github.com/kelleauto/dealership-backend/internal/booking"
	bookingHttp "github.com/kelleauto/dealership-backend/internal/booking/http"
	"github.com/kelleauto/dealership-backend/internal/file"
	fileHttp "github.com/kelleauto/dealership-backend/internal/file/http"
	"github.com/kelleauto/dealership-backend/internal/listing"
	listingHttp "github.com/kelleauto/dealership-backend/internal/listing/http"
	"github.com/kelleauto/dealership-backend/internal/logger"
	"github.com/kelleauto/dealership-backend/internal/offering"
	offeringHttp "github.com/kelleauto/dealership-backend/internal/offering/http"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds the services the router exposes.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	DB Pinger

	BookingService  booking.Service
	ListingService  listing.Service
	OfferingService offering.Service
	AuthService     auth.Service

	// FileService is only set when files are served by this process (local storage).
	FileService file.Service

	JWTManager *auth.JWTManager
	Revoker    auth.Revoker
}

var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: one structured logrus entry per request.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(logger.Middleware(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins(cfg)
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", healthz(cfg.DB))

	if cfg.FileService != nil {
		fileHttp.RegisterRoutes(r, fileHttp.NewHandler(cfg.FileService))
	}

	// adminMiddleware: Validates the admin session token and rejects logged-out ones.
	adminMiddleware := auth.AdminRequired(cfg.JWTManager, cfg.Revoker)

	authHandler := NewAuthHandler(cfg.AuthService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	listingHandler := listingHttp.NewHandler(cfg.ListingService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		v1.POST("/admin/login", authHandler.Login)
		v1.POST("/admin/logout", adminMiddleware, authHandler.Logout)

		bookingHttp.RegisterRoutes(v1, bookingHandler, adminMiddleware)
		listingHttp.RegisterRoutes(v1, listingHandler, adminMiddleware)
		offeringHttp.RegisterRoutes(v1, cfg.OfferingService, adminMiddleware)
	}

	return r
}

func allowedOrigins(cfg Config) []string {
	if !cfg.IsProduction {
		return devOrigins
	}

	var origins []string
	for _, o := range strings.Split(cfg.ProdOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		// cors.New panics on an empty origin list.
		return devOrigins
	}
	return origins
}

func healthz(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
