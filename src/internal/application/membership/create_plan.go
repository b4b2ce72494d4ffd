package membership

import (
	"fmt"
	"log/slog"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/membership"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ===========================
// CreatePlan Use Case
// ===========================

// CreatePlanCommand 建立會員方案指令（Input DTO）
//
// 金額使用十進位字串，避免浮點誤差
type CreatePlanCommand struct {
	PlanID             string // 可為空，自動生成
	PlanName           string
	Description        string
	ScheduleDay        int
	ScheduleTerm       string
	TermPaymentAmount  string
	RegistrationAmount string
	Currency           string // 空白時使用 PHP
	IsActive           bool
}

// CreatePlanResult 建立會員方案結果（Output DTO）
type CreatePlanResult struct {
	PlanID   string
	PlanName string
}

// CreatePlanUseCase 建立會員方案
//
// 業務規則：
// 1. plan_id 不可重複
// 2. plan_name（正規化後）不可重複
// 3. 存在性查詢無法判斷時拒絕建立（shared.ErrStoreUnavailable）
type CreatePlanUseCase interface {
	Execute(cmd CreatePlanCommand) (*CreatePlanResult, error)
}

// CreatePlanUseCaseImpl CreatePlanUseCase 實作
type CreatePlanUseCaseImpl struct {
	planRepo  membership.PlanRepository
	checker   *membership.ExistenceChecker
	txManager shared.TransactionManager
	publisher shared.EventPublisher
}

// NewCreatePlanUseCase 創建 CreatePlanUseCase 實例
func NewCreatePlanUseCase(
	planRepo membership.PlanRepository,
	checker *membership.ExistenceChecker,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
) CreatePlanUseCase {
	return &CreatePlanUseCaseImpl{
		planRepo:  planRepo,
		checker:   checker,
		txManager: txManager,
		publisher: publisher,
	}
}

// Execute 執行建立會員方案
//
// 業務流程：
// 1. 轉換金額並建立 MembershipPlan（所有欄位驗證）
// 2. 在事務中檢查 plan_id、plan_name 是否重複，然後保存
// 3. 提交成功後發布 PlanCreatedEvent
func (uc *CreatePlanUseCaseImpl) Execute(cmd CreatePlanCommand) (*CreatePlanResult, error) {
	// Step 1: 驗證輸入
	currency := cmd.Currency
	if currency == "" {
		currency = shared.DefaultCurrency
	}
	termPayment, err := parseMoney(cmd.TermPaymentAmount, currency)
	if err != nil {
		return nil, err
	}
	registration, err := parseMoney(cmd.RegistrationAmount, currency)
	if err != nil {
		return nil, err
	}

	plan, err := membership.NewMembershipPlanAt(membership.PlanParams{
		PlanID:             cmd.PlanID,
		PlanName:           cmd.PlanName,
		Description:        cmd.Description,
		ScheduleDay:        cmd.ScheduleDay,
		ScheduleTerm:       cmd.ScheduleTerm,
		TermPaymentAmount:  termPayment,
		RegistrationAmount: registration,
		IsActive:           cmd.IsActive,
	}, uc.checker.Now())
	if err != nil {
		return nil, err
	}

	// Step 2: 在事務中檢查重複並保存
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		result, err := uc.checker.PlanExists(ctx, plan.PlanID().String())
		if err := requireAbsent(result, err, membership.ErrPlanAlreadyExists, "plan_id", plan.PlanID().String()); err != nil {
			return err
		}

		result, err = uc.checker.PlanNameExists(ctx, plan.PlanName())
		if err := requireAbsent(result, err, membership.ErrPlanNameTaken, "plan_name", plan.PlanName()); err != nil {
			return err
		}

		return uc.planRepo.Save(ctx, plan)
	})
	if err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}

	slog.Info("Membership plan created", "planID", plan.PlanID().String(), "planName", plan.PlanName())

	// Step 3: 發布事件
	publishEvents(uc.publisher, plan.PullEvents())

	return &CreatePlanResult{
		PlanID:   plan.PlanID().String(),
		PlanName: plan.PlanName(),
	}, nil
}

// parseMoney 解析十進位字串金額
func parseMoney(amount, currency string) (shared.Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return shared.Money{}, shared.ErrInvalidMoney.WithContext("amount", amount, "reason", err.Error())
	}
	return shared.NewMoney(d, currency)
}
