package main

import (
	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"fbp/billing/internal/app/config"
	"fbp/billing/internal/app/domains/modules/mdvendor"
	"fbp/billing/internal/app/domains/repo/rpinvoice"
	"fbp/billing/internal/app/domains/repo/rprate"
	"fbp/billing/internal/app/domains/repo/rpsource"
	"fbp/billing/internal/app/domains/repo/rpvendor"
	"fbp/billing/internal/app/domains/services/svalias"
	"fbp/billing/internal/app/domains/services/svbilling"
	"fbp/billing/internal/app/domains/services/svinvoice"
	"fbp/billing/internal/app/domains/services/svrate"
	"fbp/billing/internal/app/domains/services/svsource"
	"fbp/billing/internal/app/infra/persistence/redis"
	"fbp/billing/internal/app/pkg/idgen"
	"fbp/billing/internal/app/pkg/logger"
	"fbp/billing/internal/app/server/handlers/invoice"
	"fbp/billing/internal/app/server/handlers/vendor"
	"fbp/billing/internal/app/server/routers"
)

// App 组装完成的应用
type App struct {
	Engine     *gin.Engine
	Subscriber *redis.InvalidationSubscriber
	Log        logger.Logger

	// Invalidate 丢弃别名与费率内存快照
	Invalidate func()
}

// InitializeApp 按依赖顺序组装应用
// 返回的 cleanup 负责释放数据库和 Redis 连接。
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	appLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN), &gorm.Config{})
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}

	subscriber, err := redis.NewInvalidationSubscriber(
		cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Channel, appLogger)
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	// Repository 层
	vendorRepo := rpvendor.NewVendorRepository(db)
	rateRepo := rprate.NewRateRepository(db)
	sourceRepo := rpsource.NewSourceRepository(db)
	invoiceRepo := rpinvoice.NewInvoiceRepository(db)

	// Service 层
	resolver := svalias.NewResolver(vendorRepo, cfg.Cache.TTL, appLogger)
	catalog := svrate.NewCatalog(rateRepo, cfg.Cache.TTL, appLogger)
	aggregator, err := svsource.NewAggregator(resolver, sourceRepo, appLogger)
	if err != nil {
		subscriber.Close()
		sqlDB.Close()
		return nil, nil, err
	}

	idGen := idgen.NewInvoiceIDGenerator(cfg.IDGen.MachineID)
	feeBuilder := svbilling.NewFeeBuilder(vendorRepo, aggregator, catalog, appLogger)
	billingService := svbilling.NewBillingService(feeBuilder, invoiceRepo, idGen, appLogger)
	invoiceService := svinvoice.NewInvoiceService(invoiceRepo, appLogger)

	// Module 层
	vendorModule := mdvendor.NewVendorModule(vendorRepo)

	// Handler 层
	invoiceHandler := invoice.NewInvoiceHandler(billingService, invoiceService, appLogger)
	vendorHandler := vendor.NewVendorHandler(vendorModule, appLogger)

	engine := routers.SetupRoutes(invoiceHandler, vendorHandler, appLogger)

	app := &App{
		Engine:     engine,
		Subscriber: subscriber,
		Log:        appLogger,
		Invalidate: func() {
			resolver.Invalidate()
			catalog.Invalidate()
		},
	}

	cleanup := func() {
		subscriber.Close()
		sqlDB.Close()
		appLogger.Sync()
	}
	return app, cleanup, nil
}
