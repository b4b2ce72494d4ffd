package membership

import (
	"github.com/jackyeh168/pinoydesk/src/internal/domain/membership"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/jackyeh168/pinoydesk/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// ===========================
// CouponRepositoryImpl
// ===========================

// CouponRepositoryImpl 優惠碼倉儲（GORM）
//
// 設計原則：
// - 實作 membership.CouponRepository 接口
// - code 為主鍵，原樣保存，查詢時精確比對（不 trim、區分大小寫）
type CouponRepositoryImpl struct {
	db *gorm.DB
}

// NewCouponRepository 創建優惠碼倉儲
func NewCouponRepository(db *gorm.DB) membership.CouponRepository {
	return &CouponRepositoryImpl{db: db}
}

// Save 保存優惠碼（Upsert 模式）
//
// 實作邏輯：
// 1. 從 TransactionContext 獲取 DB 實例
// 2. 將 Domain 模型轉換為 GORM 模型
// 3. 使用 GORM Save（同一 code 存在則覆寫 valid 等欄位）
//
// 錯誤處理：
// - 暫時性故障 → *shared.StoreFault
// - 其他資料庫錯誤 → ErrRepositoryError
func (r *CouponRepositoryImpl) Save(ctx shared.TransactionContext, coupon *membership.Coupon) error {
	db := persistence.ResolveDB(ctx, r.db)
	if err := db.Save(couponToGORM(coupon)).Error; err != nil {
		return persistence.MapError(err, "save coupon", nil)
	}
	return nil
}

// FindByCode 根據優惠碼查找（區分大小寫）
//
// 錯誤處理：
// - gorm.ErrRecordNotFound → membership.ErrCouponNotFound
// - 暫時性故障 → *shared.StoreFault
func (r *CouponRepositoryImpl) FindByCode(ctx shared.TransactionContext, code string) (*membership.Coupon, error) {
	db := persistence.ResolveDB(ctx, r.db)

	var model CouponGORM
	if err := db.Where("code = ?", code).First(&model).Error; err != nil {
		return nil, persistence.MapError(err, "find coupon",
			membership.ErrCouponNotFound.WithContext("code", code))
	}
	return model.toDomain()
}

// ExistsByCode 檢查優惠碼是否存在
//
// 實作邏輯：
// 1. 從 TransactionContext 獲取 DB 實例
// 2. 以傳入值原樣做 COUNT 查詢（區分大小寫）
// 3. 返回 count > 0
func (r *CouponRepositoryImpl) ExistsByCode(ctx shared.TransactionContext, code string) (bool, error) {
	db := persistence.ResolveDB(ctx, r.db)

	var count int64
	if err := db.Model(&CouponGORM{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, persistence.MapError(err, "count coupon", nil)
	}
	return count > 0, nil
}

// ===========================
// AccessRightsRepositoryImpl
// ===========================

// AccessRightsRepositoryImpl 方案權限倉儲（GORM）
type AccessRightsRepositoryImpl struct {
	db *gorm.DB
}

// NewAccessRightsRepository 創建方案權限倉儲
func NewAccessRightsRepository(db *gorm.DB) membership.AccessRightsRepository {
	return &AccessRightsRepositoryImpl{db: db}
}

// Save 保存方案權限（整份清單覆寫）
//
// 實作邏輯：
// 1. 將權限清單序列化為 datatypes.JSON
// 2. 使用 GORM Save（以 plan_id 為主鍵）
//
// 錯誤處理：
// - JSON 序列化失敗 → 直接返回
// - 資料庫錯誤 → persistence.MapError
func (r *AccessRightsRepositoryImpl) Save(ctx shared.TransactionContext, rights *membership.AccessRights) error {
	model, err := accessRightsToGORM(rights)
	if err != nil {
		return err
	}
	db := persistence.ResolveDB(ctx, r.db)
	if err := db.Save(model).Error; err != nil {
		return persistence.MapError(err, "save access rights", nil)
	}
	return nil
}

// FindByPlanID 根據 plan_id 查找
func (r *AccessRightsRepositoryImpl) FindByPlanID(ctx shared.TransactionContext, planID membership.PlanID) (*membership.AccessRights, error) {
	db := persistence.ResolveDB(ctx, r.db)

	var model AccessRightsGORM
	if err := db.Where("plan_id = ?", planID.String()).First(&model).Error; err != nil {
		return nil, persistence.MapError(err, "find access rights",
			membership.ErrAccessRightsNotFound.WithContext("plan_id", planID.String()))
	}
	return model.toDomain()
}

// ===========================
// DailyStatsRepositoryImpl
// ===========================

// DailyStatsRepositoryImpl 每日統計倉儲（GORM）
type DailyStatsRepositoryImpl struct {
	db *gorm.DB
}

// NewDailyStatsRepository 創建每日統計倉儲
func NewDailyStatsRepository(db *gorm.DB) membership.DailyStatsRepository {
	return &DailyStatsRepositoryImpl{db: db}
}

// Save 保存每日統計（同一天重算時覆寫）
//
// 實作邏輯：
// 1. 從 TransactionContext 獲取 DB 實例
// 2. 以 daily_id 為主鍵 Save，統計數字與 metrics JSON 一併覆寫
//
// 錯誤處理：
// - 暫時性故障 → *shared.StoreFault
func (r *DailyStatsRepositoryImpl) Save(ctx shared.TransactionContext, stats *membership.MembershipDailyStats) error {
	db := persistence.ResolveDB(ctx, r.db)
	if err := db.Save(dailyStatsToGORM(stats)).Error; err != nil {
		return persistence.MapError(err, "save daily stats", nil)
	}
	return nil
}

// FindByDailyID 根據 daily_id（YYYYMMDD）查找
func (r *DailyStatsRepositoryImpl) FindByDailyID(ctx shared.TransactionContext, dailyID membership.DailyID) (*membership.MembershipDailyStats, error) {
	db := persistence.ResolveDB(ctx, r.db)

	var model MembershipDailyStatsGORM
	if err := db.Where("daily_id = ?", dailyID.String()).First(&model).Error; err != nil {
		return nil, persistence.MapError(err, "find daily stats",
			membership.ErrDailyStatsNotFound.WithContext("daily_id", dailyID.String()))
	}
	return model.toDomain()
}
