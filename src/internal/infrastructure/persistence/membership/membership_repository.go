package membership

import (
	"github.com/jackyeh168/pinoydesk/src/internal/domain/membership"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/jackyeh168/pinoydesk/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// ===========================
// MembershipRepositoryImpl
// ===========================

// MembershipRepositoryImpl 訂閱記錄倉儲（GORM）
//
// 設計原則：
// - 實作 membership.MembershipRepository 接口
// - 以 (uid, plan_id) 為複合主鍵，同一使用者對同一方案只有一筆
// - 將 GORM 錯誤經 persistence.MapError 轉換為 Domain 錯誤
//
// 依賴：
// - *gorm.DB: GORM 資料庫實例
type MembershipRepositoryImpl struct {
	db *gorm.DB
}

// NewMembershipRepository 創建訂閱記錄倉儲
func NewMembershipRepository(db *gorm.DB) membership.MembershipRepository {
	return &MembershipRepositoryImpl{db: db}
}

// Save 保存訂閱記錄（Upsert 模式）
//
// 實作邏輯：
// 1. 從 TransactionContext 獲取 DB 實例（nil 時 auto-commit）
// 2. 將 Domain 模型轉換為 GORM 模型（plan_start_date 保存為日曆日期）
// 3. 使用 GORM Save（主鍵 uid + plan_id，存在則更新）
//
// 錯誤處理：
// - 暫時性故障 → *shared.StoreFault
// - 其他資料庫錯誤 → ErrRepositoryError
func (r *MembershipRepositoryImpl) Save(ctx shared.TransactionContext, m *membership.Membership) error {
	db := persistence.ResolveDB(ctx, r.db)
	if err := db.Save(membershipToGORM(m)).Error; err != nil {
		return persistence.MapError(err, "save membership", nil)
	}
	return nil
}

// FindByUIDAndPlanID 根據自然鍵查找
//
// 錯誤處理：
// - gorm.ErrRecordNotFound → membership.ErrMembershipNotFound
// - 暫時性故障 → *shared.StoreFault
func (r *MembershipRepositoryImpl) FindByUIDAndPlanID(ctx shared.TransactionContext, uid membership.UID, planID membership.PlanID) (*membership.Membership, error) {
	db := persistence.ResolveDB(ctx, r.db)

	var model MembershipGORM
	err := db.Where("uid = ? AND plan_id = ?", uid.String(), planID.String()).First(&model).Error
	if err != nil {
		return nil, persistence.MapError(err, "find membership",
			membership.ErrMembershipNotFound.WithContext("uid", uid.String(), "plan_id", planID.String()))
	}
	return model.toDomain()
}

// FindByUID 返回使用者的所有訂閱
func (r *MembershipRepositoryImpl) FindByUID(ctx shared.TransactionContext, uid membership.UID) ([]*membership.Membership, error) {
	return r.find(ctx, "list memberships by uid", "uid = ?", uid.String())
}

// FindAll 返回所有訂閱（依 uid、plan_id 排序）
func (r *MembershipRepositoryImpl) FindAll(ctx shared.TransactionContext) ([]*membership.Membership, error) {
	return r.find(ctx, "list memberships", "")
}

// ExistsByUIDAndPlanID 檢查使用者是否已訂閱方案
//
// 實作邏輯：
// 1. 從 TransactionContext 獲取 DB 實例
// 2. 使用 COUNT 查詢，不載入資料列
// 3. 返回 count > 0
func (r *MembershipRepositoryImpl) ExistsByUIDAndPlanID(ctx shared.TransactionContext, uid membership.UID, planID membership.PlanID) (bool, error) {
	db := persistence.ResolveDB(ctx, r.db)

	var count int64
	err := db.Model(&MembershipGORM{}).
		Where("uid = ? AND plan_id = ?", uid.String(), planID.String()).
		Count(&count).Error
	if err != nil {
		return false, persistence.MapError(err, "count membership", nil)
	}
	return count > 0, nil
}

func (r *MembershipRepositoryImpl) find(ctx shared.TransactionContext, op, query string, args ...interface{}) ([]*membership.Membership, error) {
	db := persistence.ResolveDB(ctx, r.db)
	if query != "" {
		db = db.Where(query, args...)
	}

	var models []MembershipGORM
	if err := db.Order("uid").Order("plan_id").Find(&models).Error; err != nil {
		return nil, persistence.MapError(err, op, nil)
	}

	result := make([]*membership.Membership, 0, len(models))
	for i := range models {
		m, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, nil
}

// ===========================
// PlanRepositoryImpl
// ===========================

// PlanRepositoryImpl 會員方案倉儲（GORM）
//
// 設計原則：
// - 實作 membership.PlanRepository 接口
// - plan_name 只建一般索引，名稱重複由 ExistenceChecker 在寫入前判斷
// - 價格、週期等欄位在 GORM 模型中以欄位保存，讀取時重新驗證
type PlanRepositoryImpl struct {
	db *gorm.DB
}

// NewPlanRepository 創建會員方案倉儲
func NewPlanRepository(db *gorm.DB) membership.PlanRepository {
	return &PlanRepositoryImpl{db: db}
}

// Save 保存方案（Upsert 模式）
//
// 實作邏輯：
// 1. 從 TransactionContext 獲取 DB 實例
// 2. 將 Domain 模型轉換為 GORM 模型
// 3. 使用 GORM Save（以 plan_id 為主鍵）
//
// 錯誤處理：
// - 暫時性故障 → *shared.StoreFault
// - 其他資料庫錯誤 → ErrRepositoryError
func (r *PlanRepositoryImpl) Save(ctx shared.TransactionContext, plan *membership.MembershipPlan) error {
	db := persistence.ResolveDB(ctx, r.db)
	if err := db.Save(planToGORM(plan)).Error; err != nil {
		return persistence.MapError(err, "save plan", nil)
	}
	return nil
}

// FindByPlanID 根據 plan_id 查找
//
// 錯誤處理：
// - gorm.ErrRecordNotFound → membership.ErrPlanNotFound
// - 暫時性故障 → *shared.StoreFault
func (r *PlanRepositoryImpl) FindByPlanID(ctx shared.TransactionContext, planID membership.PlanID) (*membership.MembershipPlan, error) {
	db := persistence.ResolveDB(ctx, r.db)

	var model MembershipPlanGORM
	if err := db.Where("plan_id = ?", planID.String()).First(&model).Error; err != nil {
		return nil, persistence.MapError(err, "find plan",
			membership.ErrPlanNotFound.WithContext("plan_id", planID.String()))
	}
	return model.toDomain()
}

// FindAll 返回所有方案（依 plan_id 排序）
func (r *PlanRepositoryImpl) FindAll(ctx shared.TransactionContext) ([]*membership.MembershipPlan, error) {
	db := persistence.ResolveDB(ctx, r.db)

	var models []MembershipPlanGORM
	if err := db.Order("plan_id").Find(&models).Error; err != nil {
		return nil, persistence.MapError(err, "list plans", nil)
	}

	result := make([]*membership.MembershipPlan, 0, len(models))
	for i := range models {
		p, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

// ExistsByPlanID 檢查方案 ID 是否存在
func (r *PlanRepositoryImpl) ExistsByPlanID(ctx shared.TransactionContext, planID membership.PlanID) (bool, error) {
	return r.exists(ctx, "plan_id = ?", planID.String())
}

// ExistsByPlanName 檢查方案名稱是否存在
//
// 注意：
// - 名稱以小寫保存，呼叫端需先正規化
// - 同名資料可能多筆，只要有一筆即返回 true
func (r *PlanRepositoryImpl) ExistsByPlanName(ctx shared.TransactionContext, planName string) (bool, error) {
	return r.exists(ctx, "plan_name = ?", planName)
}

func (r *PlanRepositoryImpl) exists(ctx shared.TransactionContext, query string, value string) (bool, error) {
	db := persistence.ResolveDB(ctx, r.db)

	var count int64
	if err := db.Model(&MembershipPlanGORM{}).Where(query, value).Count(&count).Error; err != nil {
		return false, persistence.MapError(err, "count plan", nil)
	}
	return count > 0, nil
}
