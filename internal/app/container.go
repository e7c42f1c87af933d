package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kelleauto/dealership-backend/internal/api"
	"github.com/kelleauto/dealership-backend/internal/auth"
	"github.com/kelleauto/dealership-backend/internal/booking"
	"github.com/kelleauto/dealership-backend/internal/file"
	"github.com/kelleauto/dealership-backend/internal/listing"
	"github.com/kelleauto/dealership-backend/internal/offering"
	"github.com/kelleauto/dealership-backend/internal/pkg/storage"
)

const thumbnailQuality = 85

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool

	JWTSecret         string
	JWTTTL            time.Duration
	AdminPasswordHash string
	AdminPassword     string
	BcryptCost        int
	Revoker           auth.Revoker

	Storage        storage.Storage
	ServeFiles     bool
	MaxUploadBytes int64
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	passwordHash, err := auth.AdminPasswordHash(passwordHasher, cfg.AdminPasswordHash, cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("admin password: %w", err)
	}

	revoker := cfg.Revoker
	if revoker == nil {
		revoker = auth.NewMemoryRevoker()
	}
	authService := auth.NewService(passwordHasher, passwordHash, jwtManager, revoker)

	// File Module
	fileService := file.NewService(cfg.Storage, storage.NewImageProcessor(thumbnailQuality))

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo)

	// Listing Module
	listingRepo := listing.NewPgxRepository(cfg.DBPool)
	listingService := listing.NewService(listingRepo, fileService, cfg.MaxUploadBytes)

	// Offering Module
	offeringRepo := offering.NewPgxRepository(cfg.DBPool)
	offeringService := offering.NewService(offeringRepo)

	// API Router Config
	routerParams := api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		BookingService:  bookingService,
		ListingService:  listingService,
		OfferingService: offeringService,
		AuthService:     authService,
		JWTManager:      jwtManager,
		Revoker:         revoker,
	}
	if cfg.DBPool != nil {
		routerParams.DB = cfg.DBPool
	}
	if cfg.ServeFiles {
		routerParams.FileService = fileService
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router: router,
	}, nil
}
