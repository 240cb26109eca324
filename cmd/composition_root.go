package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpin "atelier/internal/adapters/in/http"
	"atelier/internal/adapters/out/alerts"
	"atelier/internal/adapters/out/locks"
	"atelier/internal/adapters/out/memory"
	"atelier/internal/adapters/out/postgres"
	"atelier/internal/adapters/out/xlsx"
	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/ports"
	"atelier/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const alertCapacity = 500

// CompositionRoot owns every long-lived dependency. It is built once at
// start-up and closed on shutdown.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger
	clock  ports.Clock
	policy order.TransitionPolicy

	uowFactory ports.UnitOfWorkFactory
	snapshots  ports.SnapshotReader
	locker     ports.Locker
	ring       *alerts.Ring

	// exactly one of store and gormDB is set
	store  *memory.Store
	gormDB *gorm.DB
	redis  *redis.Client
}

func NewCompositionRoot(ctx context.Context, cfg Config, log *slog.Logger) (*CompositionRoot, error) {
	policy, err := order.ParseTransitionPolicy(cfg.OrderTransitionPolicy)
	if err != nil {
		return nil, fmt.Errorf("ORDER_TRANSITION_POLICY: %w", err)
	}

	c := &CompositionRoot{
		cfg:    cfg,
		logger: log,
		clock:  ports.SystemClock,
		policy: policy,
		ring:   alerts.NewRing(alertCapacity, log),
	}

	switch cfg.StoreBackend {
	case BackendPostgres:
		db, openErr := gorm.Open(gormpg.Open(cfg.DSN()), &gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Warn),
		})
		if openErr != nil {
			return nil, fmt.Errorf("connect to postgres: %w", openErr)
		}
		if err = postgres.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		c.gormDB = db
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
		c.snapshots = postgres.NewSnapshotReader(db)
	default:
		store, loadErr := memory.Load(cfg.SnapshotPath)
		if loadErr != nil {
			return nil, fmt.Errorf("load snapshot %s: %w", cfg.SnapshotPath, loadErr)
		}
		c.store = store
		c.uowFactory = memory.NewUnitOfWorkFactory(store)
		c.snapshots = store
	}

	switch cfg.LockBackend {
	case LockRedis:
		c.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err = c.redis.Ping(ctx).Err(); err != nil {
			_ = c.Close(ctx)
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		c.locker = locks.NewRedisLocker(c.redis, cfg.LockTTL)
	default:
		c.locker = locks.NewLocalLocker()
	}

	log.InfoContext(ctx, "composition root ready",
		"store", cfg.StoreBackend,
		"locks", cfg.LockBackend,
		"policy", policy.String())
	return c, nil
}

// Close releases connections and writes the final in-memory snapshot.
func (c *CompositionRoot) Close(ctx context.Context) error {
	var errs []error

	if c.store != nil {
		if _, err := c.store.Save(c.cfg.SnapshotPath); err != nil {
			errs = append(errs, fmt.Errorf("save snapshot: %w", err))
		}
	}
	if c.redis != nil {
		errs = append(errs, c.redis.Close())
	}
	if c.gormDB != nil {
		if sqlDB, err := c.gormDB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}

	if err := errors.Join(errs...); err != nil {
		c.logger.ErrorContext(ctx, "shutdown incomplete", "error", err)
		return err
	}
	return nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return commands.OrderUoWFactoryFunc(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) stockUoWFactory() commands.StockUoWFactory {
	return commands.StockUoWFactoryFunc(func() commands.StockUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) productionUoWFactory() commands.ProductionUoWFactory {
	return commands.ProductionUoWFactoryFunc(func() commands.ProductionUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreateAdjustStockCommandHandler() commands.AdjustStockCommandHandler {
	return commands.NewAdjustStockCommandHandler(c.stockUoWFactory(), c.locker, c.ring, c.clock)
}

func (c *CompositionRoot) CreateStockHook() commands.StockHook {
	return commands.NewStockHook(c.CreateAdjustStockCommandHandler(), c.ring, c.clock, c.logger)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.locker, c.CreateStockHook(), c.policy, c.clock)
}

func (c *CompositionRoot) CreateAuditStockCommandHandler() commands.AuditStockCommandHandler {
	return commands.NewAuditStockCommandHandler(c.snapshots, c.ring, c.clock, c.logger)
}

// Handlers wires every use case the HTTP adapter exposes.
func (c *CompositionRoot) Handlers() httpin.Handlers {
	adjust := c.CreateAdjustStockCommandHandler()
	hook := c.CreateStockHook()
	transition := c.CreateTransitionOrderCommandHandler()

	return httpin.Handlers{
		CreateOrder:       commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.locker, c.clock),
		UpdateOrder:       commands.NewUpdateOrderCommandHandler(c.orderUoWFactory(), c.locker, hook),
		DeleteOrder:       commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.locker),
		ReplaceItems:      commands.NewReplaceOrderItemsCommandHandler(c.orderUoWFactory(), c.locker, hook),
		TransitionOrder:   transition,
		TransitionOrders:  commands.NewTransitionOrdersCommandHandler(transition),
		MatchInvoice:      commands.NewMatchInvoiceCommandHandler(c.orderUoWFactory(), transition),
		UpsertCatalogItem: commands.NewUpsertCatalogItemCommandHandler(c.stockUoWFactory(), c.locker, adjust),
		AdjustStock:       adjust,
		RecordProduction:  commands.NewRecordProductionCommandHandler(c.productionUoWFactory(), c.locker, c.clock),
		SetProductionPaid: commands.NewSetProductionPaidCommandHandler(c.productionUoWFactory()),

		GetOrder:       queries.NewGetOrderQueryHandler(c.uowFactory),
		ListOrders:     queries.NewListOrdersQueryHandler(c.uowFactory),
		PendingOrders:  queries.NewGetPendingOrdersQueryHandler(c.snapshots),
		GetSKU:         queries.NewGetSKUQueryHandler(c.uowFactory),
		ListSKUs:       queries.NewListSKUsQueryHandler(c.uowFactory),
		ResolveSKU:     queries.NewResolveSKUQueryHandler(c.uowFactory),
		Movements:      queries.NewGetMovementsQueryHandler(c.uowFactory),
		ListProduction: queries.NewListProductionQueryHandler(c.uowFactory),
		Profitability:  queries.NewGetProfitabilityReportQueryHandler(c.snapshots),
		OrderStats:     queries.NewGetOrderStatsQueryHandler(c.snapshots),
		RecentAlerts:   queries.NewGetRecentAlertsQueryHandler(c.ring),
	}
}

// NewEcho builds the HTTP server with every route registered.
func (c *CompositionRoot) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	httpin.NewServer(c.Handlers(), xlsx.NewExporter(), c.clock, c.logger).Register(e)
	return e
}

// NewJobManager schedules the stock audit, and the snapshot flush when the
// in-memory backend is active.
func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	var snapshots jobs.SnapshotStore
	if c.store != nil {
		snapshots = c.store
	}

	return jobs.NewJobManager(c.CreateAuditStockCommandHandler(), snapshots, jobs.Config{
		StockAuditSchedule:    c.cfg.StockAuditSchedule,
		SnapshotFlushSchedule: c.cfg.SnapshotFlushSchedule,
		SnapshotPath:          c.cfg.SnapshotPath,
	}, c.logger)
}
