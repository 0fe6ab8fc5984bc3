package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelierhq/studio-booking-backend/internal/api"
	"github.com/atelierhq/studio-booking-backend/internal/auth"
	"github.com/atelierhq/studio-booking-backend/internal/booking"
	"github.com/atelierhq/studio-booking-backend/internal/client"
	"github.com/atelierhq/studio-booking-backend/internal/config"
	"github.com/atelierhq/studio-booking-backend/internal/hold"
	"github.com/atelierhq/studio-booking-backend/internal/notify"
	"github.com/atelierhq/studio-booking-backend/internal/offering"
	"github.com/atelierhq/studio-booking-backend/internal/organization"
	"github.com/atelierhq/studio-booking-backend/internal/resource"
	"github.com/atelierhq/studio-booking-backend/internal/schedule"
	"github.com/atelierhq/studio-booking-backend/internal/staff"
)

// Container holds the initialized components needed by main, including
// the cleanup for components that own connections.
type Container struct {
	Router *gin.Engine

	closers []func() error
}

// Close releases broker and cache connections. The database pool is owned
// by the caller.
func (c *Container) Close() {
	for _, fn := range c.closers {
		_ = fn()
	}
}

// NewContainer wires every module: repositories over the pool, services
// over repositories, handlers over services, then the router.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool) *Container {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	grid := schedule.Grid{
		OpenHour:    cfg.OpenHour,
		CloseHour:   cfg.CloseHour,
		SlotMinutes: cfg.SlotMinutes,
	}
	policy := schedule.Policy{
		StaffExclusive:  cfg.StaffExclusive,
		ClientExclusive: cfg.ClientExclusive,
	}

	c := &Container{}

	// Optional integrations degrade to no-ops when not configured.
	var notifier notify.Sender = notify.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSender := notify.NewKafkaSender(cfg.KafkaBrokers)
		notifier = kafkaSender
		c.closers = append(c.closers, kafkaSender.Close)
	}
	var holder hold.Holder = hold.Noop{}
	if cfg.RedisAddr != "" {
		redisHolder := hold.NewRedisHolder(cfg.RedisAddr, grid)
		holder = redisHolder
		c.closers = append(c.closers, redisHolder.Close)
	}

	staffRepo := staff.NewPgxRepository(pool)
	staffService := staff.NewService(staffRepo, passwordHasher)

	orgRepo := organization.NewPgxRepository(pool)
	orgService := organization.NewService(orgRepo)

	resourceRepo := resource.NewPgxRepository(pool)
	resourceService := resource.NewService(resourceRepo, orgService)

	offeringRepo := offering.NewPgxRepository(pool)
	offeringService := offering.NewService(offeringRepo, orgService)

	clientRepo := client.NewPgxRepository(pool)
	clientService := client.NewService(clientRepo)

	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(
		bookingRepo,
		resourceService,
		offeringService,
		staffService,
		clientService,
		notifier,
		holder,
		grid,
		policy,
		time.Duration(cfg.GuardMinutes)*time.Minute,
	)

	c.Router = api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		StaffService:    staffService,
		OrgService:      orgService,
		ResourceService: resourceService,
		OfferingService: offeringService,
		ClientService:   clientService,
		BookingService:  bookingService,
		JWTManager:      jwtManager,
	})

	return c
}
