package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/atelierhq/studio-booking-backend/internal/auth"
	"github.com/atelierhq/studio-booking-backend/internal/booking"
	bookingHttp "github.com/atelierhq/studio-booking-backend/internal/booking/http"
	"github.com/atelierhq/studio-booking-backend/internal/client"
	clientHttp "github.com/atelierhq/studio-booking-backend/internal/client/http"
	"github.com/atelierhq/studio-booking-backend/internal/offering"
	offeringHttp "github.com/atelierhq/studio-booking-backend/internal/offering/http"
	"github.com/atelierhq/studio-booking-backend/internal/organization"
	orgHttp "github.com/atelierhq/studio-booking-backend/internal/organization/http"
	"github.com/atelierhq/studio-booking-backend/internal/resource"
	resourceHttp "github.com/atelierhq/studio-booking-backend/internal/resource/http"
	"github.com/atelierhq/studio-booking-backend/internal/staff"
	staffHttp "github.com/atelierhq/studio-booking-backend/internal/staff/http"
)

// Config carries the services the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	StaffService    staff.Service
	OrgService      organization.Service
	ResourceService resource.Service
	OfferingService offering.Service
	ClientService   client.Service
	BookingService  booking.Service

	JWTManager *auth.JWTManager
}

// NewRouter assembles middleware and registers every module's routes
// under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://localhost:8081"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	staffHandler := staffHttp.NewHandler(cfg.StaffService, cfg.JWTManager)
	orgHandler := orgHttp.NewHandler(cfg.OrgService)
	resourceHandler := resourceHttp.NewHandler(cfg.ResourceService, cfg.OrgService)
	offeringHandler := offeringHttp.NewHandler(cfg.OfferingService, cfg.OrgService)
	clientHandler := clientHttp.NewHandler(cfg.ClientService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	v1 := r.Group("/v1")
	{
		staffHttp.RegisterRoutes(v1, staffHandler, authMiddleware)
		orgHttp.RegisterRoutes(v1, orgHandler, authMiddleware)
		resourceHttp.RegisterRoutes(v1, resourceHandler, authMiddleware)
		offeringHttp.RegisterRoutes(v1, offeringHandler, authMiddleware)
		clientHttp.RegisterRoutes(v1, clientHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
	}

	return r
}
