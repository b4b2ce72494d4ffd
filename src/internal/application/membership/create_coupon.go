package membership

import (
	"fmt"
	"log/slog"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/membership"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
)

// ===========================
// CreateCoupon Use Case
// ===========================

// CreateCouponCommand 建立優惠碼指令
type CreateCouponCommand struct {
	Code           string
	Discount       int
	ExpirationTime int64 // Unix 毫秒，0 表示使用預設有效期
}

// CreateCouponResult 建立優惠碼結果
type CreateCouponResult struct {
	Code           string
	Discount       int
	ExpirationTime int64
}

// CreateCouponUseCase 建立優惠碼
//
// 業務規則：
// 1. 折扣在 0-100 之間
// 2. 指定的到期時間至少在一天之後
// 3. 優惠碼（區分大小寫）不可重複
type CreateCouponUseCase interface {
	Execute(cmd CreateCouponCommand) (*CreateCouponResult, error)
}

// CreateCouponUseCaseImpl CreateCouponUseCase 實作
type CreateCouponUseCaseImpl struct {
	couponRepo membership.CouponRepository
	checker    *membership.ExistenceChecker
	txManager  shared.TransactionManager
	publisher  shared.EventPublisher
}

// NewCreateCouponUseCase 創建 CreateCouponUseCase 實例
func NewCreateCouponUseCase(
	couponRepo membership.CouponRepository,
	checker *membership.ExistenceChecker,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
) CreateCouponUseCase {
	return &CreateCouponUseCaseImpl{
		couponRepo: couponRepo,
		checker:    checker,
		txManager:  txManager,
		publisher:  publisher,
	}
}

// Execute 執行建立優惠碼
func (uc *CreateCouponUseCaseImpl) Execute(cmd CreateCouponCommand) (*CreateCouponResult, error) {
	// Step 1: 驗證輸入
	if !uc.checker.DiscountValid(cmd.Discount) {
		return nil, membership.ErrInvalidDiscount.WithContext("discount", cmd.Discount)
	}
	if cmd.ExpirationTime != 0 && !uc.checker.ExpirationValid(cmd.ExpirationTime) {
		return nil, membership.ErrInvalidExpiration.WithContext("expiration_time", cmd.ExpirationTime)
	}

	coupon, err := membership.NewCouponAt(cmd.Code, cmd.Discount, cmd.ExpirationTime, uc.checker.Now())
	if err != nil {
		return nil, err
	}

	// Step 2: 在事務中檢查重複並保存
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		result, err := uc.checker.CouponExists(ctx, coupon.Code())
		if err := requireAbsent(result, err, membership.ErrCouponAlreadyExists, "code", coupon.Code()); err != nil {
			return err
		}
		return uc.couponRepo.Save(ctx, coupon)
	})
	if err != nil {
		return nil, fmt.Errorf("create coupon: %w", err)
	}

	slog.Info("Coupon created", "code", coupon.Code(), "discount", coupon.Discount(), "expiresAt", coupon.ExpiresAt())

	publishEvents(uc.publisher, coupon.PullEvents())

	return &CreateCouponResult{
		Code:           coupon.Code(),
		Discount:       coupon.Discount(),
		ExpirationTime: coupon.ExpirationTime(),
	}, nil
}

// ===========================
// InvalidateCoupon Use Case
// ===========================

// InvalidateCouponUseCase 停用優惠碼
//
// 業務規則：
// 1. 優惠碼必須存在（精確比對）
// 2. 已停用的優惠碼再次停用不報錯，也不發布事件
type InvalidateCouponUseCase interface {
	Execute(code string) error
}

// InvalidateCouponUseCaseImpl InvalidateCouponUseCase 實作
type InvalidateCouponUseCaseImpl struct {
	couponRepo membership.CouponRepository
	checker    *membership.ExistenceChecker
	txManager  shared.TransactionManager
	publisher  shared.EventPublisher
}

// NewInvalidateCouponUseCase 創建 InvalidateCouponUseCase 實例
func NewInvalidateCouponUseCase(
	couponRepo membership.CouponRepository,
	checker *membership.ExistenceChecker,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
) InvalidateCouponUseCase {
	return &InvalidateCouponUseCaseImpl{
		couponRepo: couponRepo,
		checker:    checker,
		txManager:  txManager,
		publisher:  publisher,
	}
}

// Execute 執行停用優惠碼
func (uc *InvalidateCouponUseCaseImpl) Execute(code string) error {
	var coupon *membership.Coupon
	err := uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		result, err := uc.checker.CouponExists(ctx, code)
		if err := requirePresent(result, err, membership.ErrCouponNotFound, "code", code); err != nil {
			return err
		}

		coupon, err = uc.couponRepo.FindByCode(ctx, code)
		if err != nil {
			return err
		}
		if !coupon.Invalidate(uc.checker.Now()) {
			return nil
		}
		return uc.couponRepo.Save(ctx, coupon)
	})
	if err != nil {
		return fmt.Errorf("invalidate coupon: %w", err)
	}

	events := coupon.PullEvents()
	if len(events) > 0 {
		slog.Info("Coupon invalidated", "code", coupon.Code())
	}
	publishEvents(uc.publisher, events)
	return nil
}
