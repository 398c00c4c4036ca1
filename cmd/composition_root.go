package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpin "restaurant/internal/adapters/in/http"
	amqpout "restaurant/internal/adapters/out/amqp"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/redis/cartstore"
	"restaurant/internal/adapters/out/redis/courierstore"
	"restaurant/internal/adapters/out/redis/tablestore"
	"restaurant/internal/core/application/cartsession"
	"restaurant/internal/core/application/courierregistry"
	"restaurant/internal/core/application/orderstore"
	"restaurant/internal/core/application/tableregistry"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/ports"
	"restaurant/internal/jobs"
	"restaurant/internal/notifications"

	"github.com/go-redis/redis/v8"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CompositionRoot wires the adapters and application services together
// and owns their lifecycles.
type CompositionRoot struct {
	gormDB      *gorm.DB
	redisClient *redis.Client

	hub          *notifications.Hub
	amqpNotifier *amqpout.Notifier

	orders   *orderstore.Store
	couriers *courierregistry.Registry
	tables   *tableregistry.Registry
	carts    *cartsession.Service

	server     *httpin.Server
	jobManager *jobs.JobManager
}

// NewCompositionRoot builds the full application graph from config. On
// success the order cache is hydrated and every service is ready.
func NewCompositionRoot(ctx context.Context, config Config, logger *slog.Logger) (*CompositionRoot, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)
	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	redisClient, err := newRedisClient(ctx, config.RedisURL)
	if err != nil {
		return nil, err
	}

	hub := notifications.NewHub(logger)
	notifier := ports.Notifier(hub)

	var amqpNotifier *amqpout.Notifier
	if config.AmqpURL != "" {
		amqpNotifier, err = amqpout.NewNotifier(config.AmqpURL, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to broker: %w", err)
		}
		notifier = notifications.NewFanout(hub, amqpNotifier)
	}

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	orders, err := orderstore.NewStore(uowFactory, notifier, logger)
	if err != nil {
		return nil, err
	}
	if err = orders.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("hydrate order cache: %w", err)
	}

	courierStore, err := courierstore.NewRedisCourierStore(redisClient)
	if err != nil {
		return nil, err
	}
	couriers, err := courierregistry.NewRegistry(ctx, courierStore, notifier, logger,
		courierregistry.DefaultTrackingConfig())
	if err != nil {
		return nil, err
	}

	tableStore, err := tablestore.NewRedisTableStore(redisClient)
	if err != nil {
		return nil, err
	}
	tables, err := tableregistry.NewRegistry(ctx, tableStore, logger)
	if err != nil {
		return nil, err
	}

	cartStore, err := cartstore.NewRedisCartStore(redisClient)
	if err != nil {
		return nil, err
	}
	carts, err := cartsession.NewService(cartStore, orders, logger)
	if err != nil {
		return nil, err
	}

	products := uowFactory.Create().ProductRepository()

	checkoutHandler, err := commands.NewCheckoutCommandHandler(carts, tables, logger)
	if err != nil {
		return nil, err
	}
	dispatchHandler, err := commands.NewDispatchCourierCommandHandler(orders, couriers)
	if err != nil {
		return nil, err
	}

	server, err := httpin.NewServer(
		orders, couriers, tables, carts, products, hub,
		checkoutHandler, dispatchHandler,
		queries.NewGetActiveOrdersQueryHandler(gormDB),
		queries.NewGetSalesReportQueryHandler(gormDB),
	)
	if err != nil {
		return nil, err
	}

	jobManager := jobs.NewJobManager(
		jobs.NewOrderRefreshJob(orders, logger),
		jobs.NewCourierDispatchJob(dispatchHandler, logger),
	)

	return &CompositionRoot{
		gormDB:       gormDB,
		redisClient:  redisClient,
		hub:          hub,
		amqpNotifier: amqpNotifier,
		orders:       orders,
		couriers:     couriers,
		tables:       tables,
		carts:        carts,
		server:       server,
		jobManager:   jobManager,
	}, nil
}

// Server returns the HTTP server.
func (c *CompositionRoot) Server() *httpin.Server {
	return c.server
}

// JobManager returns the scheduled job manager.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return c.jobManager
}

// Close tears the graph down in reverse dependency order. Jobs must be
// stopped first by the caller.
func (c *CompositionRoot) Close() {
	c.couriers.Close()
	c.orders.Close()
	c.hub.Close()
	if c.amqpNotifier != nil {
		c.amqpNotifier.Close()
	}
	_ = c.redisClient.Close()
	if db, err := c.gormDB.DB(); err == nil {
		_ = db.Close()
	}
}

// newRedisClient connects and verifies the connection with a ping.
func newRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}
