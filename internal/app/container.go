package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/nekogravitycat/courtmaster-backend/internal/admin"
	"github.com/nekogravitycat/courtmaster-backend/internal/api"
	"github.com/nekogravitycat/courtmaster-backend/internal/auth"
	"github.com/nekogravitycat/courtmaster-backend/internal/booking"
	"github.com/nekogravitycat/courtmaster-backend/internal/court"
	"github.com/nekogravitycat/courtmaster-backend/internal/events"
	"github.com/nekogravitycat/courtmaster-backend/internal/holiday"
	"github.com/nekogravitycat/courtmaster-backend/internal/report"
	"github.com/nekogravitycat/courtmaster-backend/internal/settings"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  []string

	// DBPool selects postgres storage. When nil every repository is in-memory.
	DBPool *pgxpool.Pool

	// Redis enables the report cache when set.
	Redis          redis.Cmdable
	ReportCacheTTL time.Duration

	// Publisher receives domain events in addition to the report cache invalidator.
	Publisher events.Publisher

	JWTSecret    string
	JWTTTL       time.Duration
	PasswordCost int
	Location     *time.Location

	AdminUsername string
	AdminPassword string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	AdminService   admin.Service
	BookingService booking.Service
	ReportService  report.Service
}

type repositories struct {
	admins   admin.Repository
	courts   court.Repository
	settings settings.Repository
	holidays holiday.Repository
	bookings booking.Repository
}

func newRepositories(pool *pgxpool.Pool) repositories {
	if pool == nil {
		return repositories{
			admins:   admin.NewMemoryRepository(),
			courts:   court.NewMemoryRepository(),
			settings: settings.NewMemoryRepository(),
			holidays: holiday.NewMemoryRepository(),
			bookings: booking.NewMemoryRepository(),
		}
	}
	return repositories{
		admins:   admin.NewPgxRepository(pool),
		courts:   court.NewPgxRepository(pool),
		settings: settings.NewPgxRepository(pool),
		holidays: holiday.NewPgxRepository(pool),
		bookings: booking.NewPgxRepository(pool),
	}
}

// NewContainer initializes all modules and seeds the configured admin account.
func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	passwordHasher, err := auth.NewBcryptPasswordHasherWithCost(cfg.PasswordCost)
	if err != nil {
		return nil, err
	}
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	repos := newRepositories(cfg.DBPool)

	// Report cache, invalidated by every ledger or settings change.
	var cache report.Cache = report.NoopCache{}
	if cfg.Redis != nil {
		cache = report.NewRedisCache(cfg.Redis, cfg.ReportCacheTTL)
	}
	publisher := events.Multi{report.InvalidateOn(cache), cfg.Publisher}

	// Admin Module
	adminService := admin.NewService(repos.admins, passwordHasher)
	created, err := adminService.EnsureSeed(ctx, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	if created {
		log.Printf("seeded admin account %q", cfg.AdminUsername)
	}

	// Court Module. The ledger guards deletion of referenced courts.
	courtService := court.NewService(repos.courts, repos.bookings)

	// Settings Module
	settingsService := settings.NewService(repos.settings, publisher)

	// Holiday Module
	holidayService := holiday.NewService(repos.holidays)

	// Booking Module
	bookingService := booking.NewService(repos.bookings, courtService, settingsService, holidayService, publisher)

	// Report Module
	reportService := report.NewService(repos.bookings, settingsService, cache, cfg.Location)

	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		AdminService:    adminService,
		CourtService:    courtService,
		SettingsService: settingsService,
		HolidayService:  holidayService,
		BookingService:  bookingService,
		ReportService:   reportService,
		JWTManager:      jwtManager,
	})

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		AdminService:   adminService,
		BookingService: bookingService,
		ReportService:  reportService,
	}, nil
}
