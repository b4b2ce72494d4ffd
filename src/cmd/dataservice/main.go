// Command dataservice 開啟資料庫、執行遷移，並依旗標執行批次任務
//
// 用法：
//
//	dataservice -daily-stats [-day 2026-10-18] [-currency PHP]
//	dataservice -import batch.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	appmembership "github.com/jackyeh168/pinoydesk/src/internal/application/membership"
	appstock "github.com/jackyeh168/pinoydesk/src/internal/application/stock"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/membership"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/stock"
	"github.com/jackyeh168/pinoydesk/src/internal/infrastructure/config"
	"github.com/jackyeh168/pinoydesk/src/internal/infrastructure/docstore"
	"github.com/jackyeh168/pinoydesk/src/internal/infrastructure/events"
	"github.com/jackyeh168/pinoydesk/src/internal/infrastructure/metrics"
	"github.com/jackyeh168/pinoydesk/src/internal/infrastructure/persistence"
	membershippersistence "github.com/jackyeh168/pinoydesk/src/internal/infrastructure/persistence/membership"
	stockpersistence "github.com/jackyeh168/pinoydesk/src/internal/infrastructure/persistence/stock"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

func main() {
	dailyStats := flag.Bool("daily-stats", false, "compute membership stats for one day and exit")
	day := flag.String("day", "", "stats day (YYYY-MM-DD); defaults to today in the market timezone")
	currency := flag.String("currency", "PHP", "currency used for earnings totals")
	batch := flag.String("import", "", "JSON batch of plans, coupons, subscriptions and trades")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Logging.SlogLevel()})))

	if err := run(cfg, options{
		dailyStats: *dailyStats,
		day:        *day,
		currency:   *currency,
		batch:      *batch,
	}); err != nil {
		slog.Error("Data service failed", "error", err)
		os.Exit(1)
	}
}

type options struct {
	dailyStats bool
	day        string
	currency   string
	batch      string
}

func run(cfg *config.Config, opts options) error {
	db, err := persistence.OpenDatabase(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := persistence.Close(db); err != nil {
			slog.Warn("Failed to close database", "error", err)
		}
	}()

	models := append(membershippersistence.Models(), stockpersistence.Models()...)
	if err := persistence.Migrate(db, models...); err != nil {
		return err
	}

	txManager := persistence.NewGORMTransactionManager(db)
	loc := stock.MarketLocation(cfg.UTCOffsetHours)

	var plans membership.PlanRepository = membershippersistence.NewPlanRepository(db)
	var coupons membership.CouponRepository = membershippersistence.NewCouponRepository(db)

	if cfg.Mongo.Enabled() {
		client, err := connectDocstore(cfg.Mongo)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				slog.Warn("Failed to disconnect document store", "error", err)
			}
		}()
		stores := docstore.NewStores(client.Database(cfg.Mongo.Database), cfg.Mongo.Timeout)
		if err := ensureIndexes(stores, cfg.Mongo.Timeout); err != nil {
			return err
		}
		plans, coupons = stores.Plans, stores.Coupons
	}

	checker := membership.NewExistenceChecker(plans, coupons, nil)
	if cfg.MetricsEnabled {
		observer := metrics.NewExistenceMetrics()
		checker.WithObserver(observer)
		defer observer.LogSummary()
	}

	app := newServices(db, plans, coupons, checker, txManager, events.NewSlogEventPublisher(nil), loc)

	if opts.batch != "" {
		if err := app.importFile(opts.batch, loc); err != nil {
			return err
		}
	}

	if opts.dailyStats {
		statsDay := stock.MarketToday(loc)
		if opts.day != "" {
			statsDay, err = time.ParseInLocation(time.DateOnly, opts.day, loc)
			if err != nil {
				return fmt.Errorf("parse -day: %w", err)
			}
		}
		result, err := app.dailyStats.Execute(appmembership.ComputeDailyStatsCommand{
			Day:      statsDay,
			Currency: opts.currency,
		})
		if err != nil {
			return err
		}
		slog.Info("Daily stats computed",
			"daily_id", result.DailyID,
			"total_users", result.TotalUsers,
			"total_members", result.TotalMembers,
			"total_earned_so_far", result.TotalEarnedSoFar,
		)
	}

	return nil
}

func connectDocstore(cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	return docstore.Connect(ctx, cfg.URI, cfg.Timeout)
}

func ensureIndexes(stores docstore.Stores, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return stores.Plans.EnsureIndexes(ctx)
}

// services 已組裝的用例
type services struct {
	createPlan   appmembership.CreatePlanUseCase
	createCoupon appmembership.CreateCouponUseCase
	invalidate   appmembership.InvalidateCouponUseCase
	subscribe    appmembership.SubscribeUseCase
	grantAccess  appmembership.GrantAccessUseCase
	dailyStats   appmembership.ComputeDailyStatsUseCase
	recordTrade  appstock.RecordTradeUseCase
}

// newServices 以 GORM 倉儲組裝用例；方案與優惠碼倉儲可替換為文件資料庫
func newServices(
	db *gorm.DB,
	plans membership.PlanRepository,
	coupons membership.CouponRepository,
	checker *membership.ExistenceChecker,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	loc *time.Location,
) services {
	memberships := membershippersistence.NewMembershipRepository(db)
	return services{
		createPlan:   appmembership.NewCreatePlanUseCase(plans, checker, txManager, publisher),
		createCoupon: appmembership.NewCreateCouponUseCase(coupons, checker, txManager, publisher),
		invalidate:   appmembership.NewInvalidateCouponUseCase(coupons, checker, txManager, publisher),
		subscribe:    appmembership.NewSubscribeUseCase(memberships, plans, checker, txManager, publisher),
		grantAccess: appmembership.NewGrantAccessUseCase(
			membershippersistence.NewAccessRightsRepository(db), checker, txManager),
		dailyStats: appmembership.NewComputeDailyStatsUseCase(
			memberships, plans, membershippersistence.NewDailyStatsRepository(db), txManager, shared.SystemClock{}),
		recordTrade: appstock.NewRecordTradeUseCase(
			stockpersistence.NewStockRepository(db),
			stockpersistence.NewBrokerRepository(db),
			stockpersistence.NewTransactionRepository(db),
			stockpersistence.NewVolumeRepository(db),
			txManager, loc),
	}
}
