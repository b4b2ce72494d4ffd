package stock

import (
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/stock"
	"github.com/jackyeh168/pinoydesk/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// VolumeRepositoryImpl 成交量倉儲（GORM）
//
// 設計原則：
// - 買進、賣出、淨額分別保存在三個資料表，以 transaction_id 為主鍵
// - date 以 UTC 午夜保存日曆日期，查詢時同樣轉換
// - 所有錯誤經 persistence.MapError 轉換
type VolumeRepositoryImpl struct {
	db *gorm.DB
}

// NewVolumeRepository 創建成交量倉儲
func NewVolumeRepository(db *gorm.DB) stock.VolumeRepository {
	return &VolumeRepositoryImpl{db: db}
}

// SaveBuy 保存買進成交量（Upsert 模式）
//
// 實作邏輯：
// 1. 從 TransactionContext 獲取 DB 實例
// 2. 轉換為 BuyVolumeGORM（日期轉為日曆日期）
// 3. 使用 GORM Save
//
// 錯誤處理：
// - 暫時性故障 → *shared.StoreFault
// - 其他資料庫錯誤 → ErrRepositoryError
func (r *VolumeRepositoryImpl) SaveBuy(ctx shared.TransactionContext, v *stock.BuyVolume) error {
	return r.save(ctx, buyToGORM(v), "save buy volume")
}

// SaveSell 保存賣出成交量
func (r *VolumeRepositoryImpl) SaveSell(ctx shared.TransactionContext, v *stock.SellVolume) error {
	return r.save(ctx, sellToGORM(v), "save sell volume")
}

// SaveNet 保存淨成交量
func (r *VolumeRepositoryImpl) SaveNet(ctx shared.TransactionContext, v *stock.NetVolume) error {
	return r.save(ctx, netToGORM(v), "save net volume")
}

// FindBuyByTransactionID 查找買進成交量
//
// 錯誤處理：
// - gorm.ErrRecordNotFound → stock.ErrVolumeNotFound
// - 暫時性故障 → *shared.StoreFault
func (r *VolumeRepositoryImpl) FindBuyByTransactionID(ctx shared.TransactionContext, transactionID string) (*stock.BuyVolume, error) {
	var model BuyVolumeGORM
	if err := r.first(ctx, &model, transactionID); err != nil {
		return nil, err
	}
	return model.toDomain()
}

// FindSellByTransactionID 查找賣出成交量
func (r *VolumeRepositoryImpl) FindSellByTransactionID(ctx shared.TransactionContext, transactionID string) (*stock.SellVolume, error) {
	var model SellVolumeGORM
	if err := r.first(ctx, &model, transactionID); err != nil {
		return nil, err
	}
	return model.toDomain()
}

// FindNetByTransactionID 查找淨成交量
func (r *VolumeRepositoryImpl) FindNetByTransactionID(ctx shared.TransactionContext, transactionID string) (*stock.NetVolume, error) {
	var model NetVolumeGORM
	if err := r.first(ctx, &model, transactionID); err != nil {
		return nil, err
	}
	return model.toDomain()
}

// ListNetByDate 返回某個日曆日的所有淨額
//
// 實作邏輯：
// 1. date 只取年月日，轉為 UTC 午夜比對
// 2. 依 stock_id、transaction_id 排序
// 3. 逐筆轉換為 Domain 模型，任一筆無效即返回錯誤
//
// 沒有資料時返回空切片
func (r *VolumeRepositoryImpl) ListNetByDate(ctx shared.TransactionContext, date time.Time) ([]*stock.NetVolume, error) {
	db := persistence.ResolveDB(ctx, r.db)

	var models []NetVolumeGORM
	err := db.Where("date = ?", calendarDate(date)).
		Order("stock_id").Order("transaction_id").
		Find(&models).Error
	if err != nil {
		return nil, persistence.MapError(err, "list net volume", nil)
	}

	result := make([]*stock.NetVolume, 0, len(models))
	for i := range models {
		v, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

func (r *VolumeRepositoryImpl) save(ctx shared.TransactionContext, model interface{}, op string) error {
	db := persistence.ResolveDB(ctx, r.db)
	if err := db.Save(model).Error; err != nil {
		return persistence.MapError(err, op, nil)
	}
	return nil
}

func (r *VolumeRepositoryImpl) first(ctx shared.TransactionContext, model interface{}, transactionID string) error {
	db := persistence.ResolveDB(ctx, r.db)
	if err := db.Where("transaction_id = ?", transactionID).First(model).Error; err != nil {
		return persistence.MapError(err, "find volume",
			stock.ErrVolumeNotFound.WithContext("transaction_id", transactionID))
	}
	return nil
}
