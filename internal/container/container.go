package container

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"indusrobotix/storefront/internal/catalog"
	"indusrobotix/storefront/internal/config"
	"indusrobotix/storefront/internal/controller"
	"indusrobotix/storefront/internal/prefs"
	"indusrobotix/storefront/internal/server"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Session *controller.Session
	Server  *server.Server

	redis *redis.Client
}

// New creates a new container with all dependencies initialized. The initial
// catalog load happens here and gates startup.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	// Preference store: redis when configured, in-memory otherwise
	var store prefs.Store
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		container.redis = rdb
		store = prefs.NewRedisStore(rdb)
	} else {
		log.Info("Redis disabled, preferences will not survive restarts")
		store = prefs.NewMemoryStore()
	}

	sourceClient := catalog.NewSourceClient(cfg.Catalog)
	loader := catalog.NewLoader(sourceClient, cfg.Catalog, cfg.Display.Currency)

	session, err := controller.New(ctx, cfg, loader, store)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	container.Session = session

	container.Server = server.New(cfg.Server, session)

	return container, nil
}

// Run serves the storefront API until the context is cancelled or a shutdown
// signal arrives.
func (c *Container) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Server.Run()
	})

	g.Go(func() error {
		<-ctx.Done()
		return c.Server.Shutdown(context.Background())
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.redis != nil {
		c.redis.Close()
	}

	log.Info("Container shut down successfully")
	return nil
}
