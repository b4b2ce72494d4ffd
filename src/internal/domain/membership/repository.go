package membership

import "github.com/jackyeh168/pinoydesk/src/internal/domain/shared"

// ===========================
// Repository Interfaces
// ===========================
//
// 約定（與 shared.TransactionContext 相同）：
// - Save 必須在事務中呼叫
// - Find / Exists 可傳入 nil（auto-commit）
// - 暫時性資料庫故障以 *shared.StoreFault 返回，其他錯誤照常返回

// MembershipRepository 訂閱記錄倉儲
type MembershipRepository interface {
	Save(ctx shared.TransactionContext, m *Membership) error
	FindByUIDAndPlanID(ctx shared.TransactionContext, uid UID, planID PlanID) (*Membership, error)
	FindByUID(ctx shared.TransactionContext, uid UID) ([]*Membership, error)
	FindAll(ctx shared.TransactionContext) ([]*Membership, error)
	ExistsByUIDAndPlanID(ctx shared.TransactionContext, uid UID, planID PlanID) (bool, error)
}

// PlanRepository 會員方案倉儲
type PlanRepository interface {
	Save(ctx shared.TransactionContext, plan *MembershipPlan) error
	FindByPlanID(ctx shared.TransactionContext, planID PlanID) (*MembershipPlan, error)
	FindAll(ctx shared.TransactionContext) ([]*MembershipPlan, error)

	// ExistsByPlanID 以已正規化的 plan_id 精確比對
	ExistsByPlanID(ctx shared.TransactionContext, planID PlanID) (bool, error)

	// ExistsByPlanName 以已正規化（trim + 小寫）的名稱比對
	ExistsByPlanName(ctx shared.TransactionContext, planName string) (bool, error)
}

// CouponRepository 優惠碼倉儲
type CouponRepository interface {
	Save(ctx shared.TransactionContext, coupon *Coupon) error
	FindByCode(ctx shared.TransactionContext, code string) (*Coupon, error)

	// ExistsByCode 區分大小寫的精確比對
	ExistsByCode(ctx shared.TransactionContext, code string) (bool, error)
}

// AccessRightsRepository 方案權限倉儲
type AccessRightsRepository interface {
	Save(ctx shared.TransactionContext, rights *AccessRights) error
	FindByPlanID(ctx shared.TransactionContext, planID PlanID) (*AccessRights, error)
}

// DailyStatsRepository 每日統計倉儲
type DailyStatsRepository interface {
	Save(ctx shared.TransactionContext, stats *MembershipDailyStats) error
	FindByDailyID(ctx shared.TransactionContext, dailyID DailyID) (*MembershipDailyStats, error)
}
