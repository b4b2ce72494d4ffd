package membership

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/membership"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
)

// ===========================
// ComputeDailyStats Use Case
// ===========================

// ComputeDailyStatsCommand 每日統計指令
type ComputeDailyStatsCommand struct {
	Day      time.Time
	Currency string // 空白時使用 PHP
}

// ComputeDailyStatsResult 每日統計結果
type ComputeDailyStatsResult struct {
	DailyID          string
	TotalUsers       int64
	TotalMembers     int64
	TotalEarnedSoFar string
}

// ComputeDailyStatsUseCase 重算並保存某日的會員統計
//
// 同一天重複執行會覆蓋當天的統計
type ComputeDailyStatsUseCase interface {
	Execute(cmd ComputeDailyStatsCommand) (*ComputeDailyStatsResult, error)
}

// ComputeDailyStatsUseCaseImpl ComputeDailyStatsUseCase 實作
type ComputeDailyStatsUseCaseImpl struct {
	membershipRepo membership.MembershipRepository
	planRepo       membership.PlanRepository
	statsRepo      membership.DailyStatsRepository
	txManager      shared.TransactionManager
	clock          shared.Clock
}

// NewComputeDailyStatsUseCase 創建 ComputeDailyStatsUseCase 實例
//
// clock 為 nil 時使用系統時鐘；未指定日期時以 clock.Now() 為統計日
func NewComputeDailyStatsUseCase(
	membershipRepo membership.MembershipRepository,
	planRepo membership.PlanRepository,
	statsRepo membership.DailyStatsRepository,
	txManager shared.TransactionManager,
	clock shared.Clock,
) ComputeDailyStatsUseCase {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &ComputeDailyStatsUseCaseImpl{
		membershipRepo: membershipRepo,
		planRepo:       planRepo,
		statsRepo:      statsRepo,
		txManager:      txManager,
		clock:          clock,
	}
}

// Execute 執行每日統計
func (uc *ComputeDailyStatsUseCaseImpl) Execute(cmd ComputeDailyStatsCommand) (*ComputeDailyStatsResult, error) {
	day := cmd.Day
	if day.IsZero() {
		day = uc.clock.Now()
	}
	currency := cmd.Currency
	if currency == "" {
		currency = shared.DefaultCurrency
	}
	calculator := membership.NewStatsCalculator(currency)

	var stats *membership.MembershipDailyStats
	err := uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		memberships, err := uc.membershipRepo.FindAll(ctx)
		if err != nil {
			return err
		}
		plans, err := uc.planRepo.FindAll(ctx)
		if err != nil {
			return err
		}

		stats, err = calculator.Compute(day, memberships, plans)
		if err != nil {
			return err
		}
		return uc.statsRepo.Save(ctx, stats)
	})
	if err != nil {
		return nil, fmt.Errorf("compute daily stats: %w", err)
	}

	slog.Info("Membership daily stats computed",
		"dailyID", stats.DailyID().String(),
		"totalUsers", stats.TotalUsers(),
		"totalMembers", stats.TotalMembers())

	return &ComputeDailyStatsResult{
		DailyID:          stats.DailyID().String(),
		TotalUsers:       stats.TotalUsers(),
		TotalMembers:     stats.TotalMembers(),
		TotalEarnedSoFar: stats.Earnings().TotalEarnedSoFar.String(),
	}, nil
}
