package membership

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/membership"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
)

// ===========================
// Subscribe Use Case
// ===========================

// SubscribeCommand 訂閱方案指令
type SubscribeCommand struct {
	UID           string
	PlanID        string
	Status        string // paid / unpaid
	PlanStartDate time.Time
}

// SubscribeResult 訂閱結果
type SubscribeResult struct {
	UID          string
	PlanID       string
	Status       string
	TotalMembers int64
}

// SubscribeUseCase 使用者訂閱會員方案
//
// 業務規則：
// 1. 開始日期必須晚於今天
// 2. 方案必須存在且已啟用
// 3. 同一使用者不可重複訂閱同一方案
// 4. 訂閱與方案人數 +1 在同一事務中完成
type SubscribeUseCase interface {
	Execute(cmd SubscribeCommand) (*SubscribeResult, error)
}

// SubscribeUseCaseImpl SubscribeUseCase 實作
type SubscribeUseCaseImpl struct {
	membershipRepo membership.MembershipRepository
	planRepo       membership.PlanRepository
	checker        *membership.ExistenceChecker
	txManager      shared.TransactionManager
	publisher      shared.EventPublisher
}

// NewSubscribeUseCase 創建 SubscribeUseCase 實例
func NewSubscribeUseCase(
	membershipRepo membership.MembershipRepository,
	planRepo membership.PlanRepository,
	checker *membership.ExistenceChecker,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
) SubscribeUseCase {
	return &SubscribeUseCaseImpl{
		membershipRepo: membershipRepo,
		planRepo:       planRepo,
		checker:        checker,
		txManager:      txManager,
		publisher:      publisher,
	}
}

// Execute 執行訂閱
func (uc *SubscribeUseCaseImpl) Execute(cmd SubscribeCommand) (*SubscribeResult, error) {
	// Step 1: 驗證輸入
	if !uc.checker.StartDateValid(cmd.PlanStartDate) {
		return nil, membership.ErrInvalidStartDate.WithContext(
			"plan_start_date", cmd.PlanStartDate.Format("2006-01-02"),
		)
	}

	m, err := membership.NewMembershipAt(cmd.UID, cmd.PlanID, cmd.Status, cmd.PlanStartDate, uc.checker.Now())
	if err != nil {
		return nil, err
	}

	// Step 2: 在事務中檢查方案並保存
	var plan *membership.MembershipPlan
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		result, err := uc.checker.PlanExists(ctx, m.PlanID().String())
		if err := requirePresent(result, err, membership.ErrPlanNotFound, "plan_id", m.PlanID().String()); err != nil {
			return err
		}

		plan, err = uc.planRepo.FindByPlanID(ctx, m.PlanID())
		if err != nil {
			return err
		}
		if !plan.IsActive() {
			return membership.ErrPlanInactive.WithContext("plan_id", m.PlanID().String())
		}

		exists, err := uc.membershipRepo.ExistsByUIDAndPlanID(ctx, m.UID(), m.PlanID())
		if err != nil {
			return err
		}
		if exists {
			return membership.ErrMembershipAlreadyExists.WithContext(
				"uid", m.UID().String(),
				"plan_id", m.PlanID().String(),
			)
		}

		if err := uc.membershipRepo.Save(ctx, m); err != nil {
			return err
		}
		plan.AddMember()
		return uc.planRepo.Save(ctx, plan)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s to %s: %w", cmd.UID, cmd.PlanID, err)
	}

	slog.Info("Membership subscribed", "uid", m.UID().String(), "planID", m.PlanID().String(), "status", m.Status())

	publishEvents(uc.publisher, m.PullEvents())

	return &SubscribeResult{
		UID:          m.UID().String(),
		PlanID:       m.PlanID().String(),
		Status:       m.Status(),
		TotalMembers: plan.TotalMembers(),
	}, nil
}
