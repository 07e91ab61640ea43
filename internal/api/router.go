package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/courtmaster-backend/internal/admin"
	adminHttp "github.com/nekogravitycat/courtmaster-backend/internal/admin/http"
	"github.com/nekogravitycat/courtmaster-backend/internal/auth"
	"github.com/nekogravitycat/courtmaster-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/courtmaster-backend/internal/booking/http"
	"github.com/nekogravitycat/courtmaster-backend/internal/court"
	courtHttp "github.com/nekogravitycat/courtmaster-backend/internal/court/http"
	"github.com/nekogravitycat/courtmaster-backend/internal/holiday"
	holidayHttp "github.com/nekogravitycat/courtmaster-backend/internal/holiday/http"
	"github.com/nekogravitycat/courtmaster-backend/internal/report"
	reportHttp "github.com/nekogravitycat/courtmaster-backend/internal/report/http"
	"github.com/nekogravitycat/courtmaster-backend/internal/settings"
	settingsHttp "github.com/nekogravitycat/courtmaster-backend/internal/settings/http"
)

// Config holds the services the router exposes.
type Config struct {
	IsProduction bool
	ProdOrigins  []string

	AdminService    admin.Service
	CourtService    court.Service
	SettingsService settings.Service
	HolidayService  holiday.Service
	BookingService  booking.Service
	ReportService   report.Service
	JWTManager      *auth.JWTManager
}

// NewRouter assembles global middleware and registers every module under /v1.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Logger prints one line per request. Recovery turns panics into 500s.
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // Admin dashboard
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	if len(corsConfig.AllowOrigins) > 0 {
		r.Use(cors.New(corsConfig))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Every management route needs a valid token whose subject still exists.
	adminOnly := chain(auth.AuthRequired(cfg.JWTManager), RequireAdmin(cfg.AdminService))

	v1 := r.Group("/v1")
	{
		adminHttp.RegisterRoutes(v1, adminHttp.NewHandler(cfg.AdminService, cfg.JWTManager), adminOnly)
		courtHttp.RegisterRoutes(v1, courtHttp.NewHandler(cfg.CourtService), adminOnly)
		settingsHttp.RegisterRoutes(v1, settingsHttp.NewHandler(cfg.SettingsService), adminOnly)
		holidayHttp.RegisterRoutes(v1, holidayHttp.NewHandler(cfg.HolidayService), adminOnly)
		bookingHttp.RegisterRoutes(v1, bookingHttp.NewHandler(cfg.BookingService), adminOnly)
		reportHttp.RegisterRoutes(v1, reportHttp.NewHandler(cfg.ReportService), adminOnly)
	}

	return r
}
