package membership

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/membership"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
)

// ===========================
// GrantAccess Use Case
// ===========================

// GrantAccessCommand 授予方案權限指令
type GrantAccessCommand struct {
	PlanID string
	Grant  []string
	Revoke []string
}

// GrantAccessResult 更新後的權限清單
type GrantAccessResult struct {
	PlanID string
	Rights []string
}

// GrantAccessUseCase 更新方案權限
//
// 方案必須存在；尚無權限設定時建立新的清單
type GrantAccessUseCase interface {
	Execute(cmd GrantAccessCommand) (*GrantAccessResult, error)
}

// GrantAccessUseCaseImpl GrantAccessUseCase 實作
type GrantAccessUseCaseImpl struct {
	rightsRepo membership.AccessRightsRepository
	checker    *membership.ExistenceChecker
	txManager  shared.TransactionManager
}

// NewGrantAccessUseCase 創建 GrantAccessUseCase 實例
func NewGrantAccessUseCase(
	rightsRepo membership.AccessRightsRepository,
	checker *membership.ExistenceChecker,
	txManager shared.TransactionManager,
) GrantAccessUseCase {
	return &GrantAccessUseCaseImpl{
		rightsRepo: rightsRepo,
		checker:    checker,
		txManager:  txManager,
	}
}

// Execute 執行權限更新
func (uc *GrantAccessUseCaseImpl) Execute(cmd GrantAccessCommand) (*GrantAccessResult, error) {
	planID, err := membership.PlanIDFromString(cmd.PlanID)
	if err != nil {
		return nil, err
	}

	var rights *membership.AccessRights
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		result, err := uc.checker.PlanExists(ctx, planID.String())
		if err := requirePresent(result, err, membership.ErrPlanNotFound, "plan_id", planID.String()); err != nil {
			return err
		}

		rights, err = uc.rightsRepo.FindByPlanID(ctx, planID)
		if errors.Is(err, membership.ErrAccessRightsNotFound) {
			rights, err = membership.NewAccessRights(planID.String())
		}
		if err != nil {
			return err
		}

		for _, r := range cmd.Grant {
			if err := rights.Grant(r); err != nil {
				return err
			}
		}
		for _, r := range cmd.Revoke {
			rights.Revoke(r)
		}
		return uc.rightsRepo.Save(ctx, rights)
	})
	if err != nil {
		return nil, fmt.Errorf("grant access on %s: %w", cmd.PlanID, err)
	}

	slog.Info("Access rights updated", "planID", planID.String(), "rights", len(rights.Rights()))

	return &GrantAccessResult{
		PlanID: planID.String(),
		Rights: rights.Rights(),
	}, nil
}
