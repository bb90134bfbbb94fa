package cmd

import (
	"context"
	"fmt"
	"net/http"

	"store/api"
	apicustomer "store/api/customer"
	"store/api/health"
	apiorder "store/api/order"
	"store/api/product"
	catalogapp "store/application/catalog"
	customerapp "store/application/customer"
	orderapp "store/application/order"
	"store/config"
	"store/domain/catalog"
	"store/domain/customer"
	"store/domain/order"
	"store/domain/shared"
	"store/infrastructure/cache"
	"store/infrastructure/email"
	"store/infrastructure/persistence/mocks"
	"store/infrastructure/persistence/mysql"
	"store/infrastructure/persistence/retry"
	"store/pkg/logger"
	"store/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DatabaseMock = "mock"

// AppBuilder wires the application from configuration. Mock mode keeps
// everything in memory; sqlite and mysql go through gorm.
type AppBuilder struct {
	cfg      *config.Config
	registry *prometheus.Registry
	sender   email.Sender
}

func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{
		cfg:    cfg,
		sender: email.LoggingSender{},
	}
}

// WithRegistry collects metrics on reg instead of a fresh registry.
func (b *AppBuilder) WithRegistry(reg *prometheus.Registry) *AppBuilder {
	b.registry = reg
	return b
}

// WithSender replaces the sender used in mock mode, where mail is not queued.
func (b *AppBuilder) WithSender(s email.Sender) *AppBuilder {
	b.sender = s
	return b
}

// persistence is everything the application services need from storage.
type persistence struct {
	customers customer.Repository
	queries   customer.QueryService
	orders    order.Repository
	products  catalog.Repository
	uow       shared.UnitOfWorkFactory
	email     customer.EmailService
	checks    map[string]health.CheckFunc
	db        *gorm.DB
}

func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env),
		zap.String("database", b.cfg.Database.Type))

	reg := b.registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	m := metrics.New(reg)

	var (
		p   *persistence
		err error
	)
	if b.cfg.Database.Type == DatabaseMock {
		p = b.mockPersistence()
	} else {
		p, err = b.databasePersistence(ctx)
		if err != nil {
			return nil, err
		}
	}

	app := &App{config: b.cfg, db: p.db}

	handlerOpts := []customerapp.Option{
		customerapp.WithMetrics(m),
		customerapp.WithMailConfig(customerapp.MailConfig{
			From:    b.cfg.Mail.From,
			Subject: b.cfg.Mail.WelcomeSubject,
			Body:    b.cfg.Mail.WelcomeBody,
		}),
	}
	queries := p.queries
	if b.cfg.Redis.Enabled {
		client, err := cache.NewClient(ctx, b.cfg.Redis)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.redis = client
		cached := cache.NewCustomerQueryCache(queries, cache.NewRedisBackend(client), b.cfg.Redis.TTL)
		queries = cached
		handlerOpts = append(handlerOpts, customerapp.WithInvalidator(cached))
		p.checks["redis"] = redisCheck(client)
		logger.Info("Customer read cache enabled", zap.String("addr", b.cfg.Redis.Addr))
	}

	handler := customerapp.NewHandler(p.customers, p.email, p.uow, handlerOpts...)
	orderService := orderapp.NewApplicationService(p.orders, p.customers, p.products, p.uow, orderapp.WithMetrics(m))

	router := api.NewRouter(b.cfg, reg,
		health.NewController(b.cfg, p.checks),
		apicustomer.NewController(handler, customerapp.NewQueries(queries)),
		apiorder.NewController(orderService),
		product.NewController(catalogapp.NewQueries(p.products)))
	router.SetupRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.Engine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}
	return app, nil
}

func (b *AppBuilder) mockPersistence() *persistence {
	logger.Info("Using in-memory persistence")
	customers := mocks.NewMockCustomerRepository()
	orders := mocks.NewMockOrderRepository()
	return &persistence{
		customers: customers,
		queries:   mocks.NewMockQueryService(customers, orders),
		orders:    orders,
		products:  mocks.NewMockProductRepository(mocks.SampleProducts()...),
		uow:       mocks.NewMockUnitOfWorkFactory(),
		email:     email.NewDirectService(b.sender),
		checks:    map[string]health.CheckFunc{},
	}
}

// databasePersistence queues welcome mail in the outbox; cmd/worker sends it.
func (b *AppBuilder) databasePersistence(ctx context.Context) (*persistence, error) {
	db, err := OpenDatabase(ctx, b.cfg)
	if err != nil {
		return nil, err
	}

	products := mysql.NewProductRepository(db)
	if b.cfg.Database.AutoMigrate {
		if err := seedCatalog(ctx, products, mocks.SampleProducts()); err != nil {
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	return &persistence{
		customers: mysql.NewCustomerRepository(db),
		queries:   mysql.NewQueryService(db),
		orders:    mysql.NewOrderRepository(db),
		products:  products,
		uow:       mysql.NewUnitOfWorkFactory(db, retry.FromAppConfig(b.cfg)),
		email:     email.NewOutboxService(mysql.NewOutboxRepository(db)),
		checks: map[string]health.CheckFunc{
			"database": func(ctx context.Context) error { return mysql.Ping(ctx, db) },
		},
		db: db,
	}, nil
}

func redisCheck(client *redis.Client) health.CheckFunc {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
