package stock

import (
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/stock"
	"github.com/jackyeh168/pinoydesk/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// ===========================
// StockRepositoryImpl
// ===========================

// StockRepositoryImpl 股票倉儲（GORM）
//
// 設計原則：
// - 實作 stock.StockRepository 接口
// - stock_code 只建一般索引，重複代碼由呼叫端以 ExistsByStockCode 判斷
type StockRepositoryImpl struct {
	db *gorm.DB
}

// NewStockRepository 創建股票倉儲
func NewStockRepository(db *gorm.DB) stock.StockRepository {
	return &StockRepositoryImpl{db: db}
}

// Save 保存股票（Upsert 模式）
//
// 實作邏輯：
// 1. 從 TransactionContext 獲取 DB 實例（nil 時 auto-commit）
// 2. 將 Domain 模型轉換為 GORM 模型
// 3. 使用 GORM Save（以 stock_id 為主鍵，存在則更新）
//
// 錯誤處理：
// - 暫時性故障 → *shared.StoreFault
// - 其他資料庫錯誤 → ErrRepositoryError
func (r *StockRepositoryImpl) Save(ctx shared.TransactionContext, s *stock.Stock) error {
	db := persistence.ResolveDB(ctx, r.db)
	if err := db.Save(stockToGORM(s)).Error; err != nil {
		return persistence.MapError(err, "save stock", nil)
	}
	return nil
}

// FindByStockID 根據 stock_id 查找
//
// 錯誤處理：
// - gorm.ErrRecordNotFound → stock.ErrStockNotFound
// - 暫時性故障 → *shared.StoreFault
func (r *StockRepositoryImpl) FindByStockID(ctx shared.TransactionContext, stockID string) (*stock.Stock, error) {
	db := persistence.ResolveDB(ctx, r.db)

	var model StockGORM
	if err := db.Where("stock_id = ?", stockID).First(&model).Error; err != nil {
		return nil, persistence.MapError(err, "find stock", stock.ErrStockNotFound.WithContext("stock_id", stockID))
	}
	return model.toDomain()
}

// ExistsByStockCode 檢查股票代碼是否存在
//
// 實作邏輯：
// - 使用 COUNT 查詢，不載入資料列
// - 代碼精確比對
func (r *StockRepositoryImpl) ExistsByStockCode(ctx shared.TransactionContext, stockCode string) (bool, error) {
	db := persistence.ResolveDB(ctx, r.db)

	var count int64
	if err := db.Model(&StockGORM{}).Where("stock_code = ?", stockCode).Count(&count).Error; err != nil {
		return false, persistence.MapError(err, "count stock", nil)
	}
	return count > 0, nil
}

// ===========================
// BrokerRepositoryImpl
// ===========================

// BrokerRepositoryImpl 券商倉儲（GORM）
type BrokerRepositoryImpl struct {
	db *gorm.DB
}

// NewBrokerRepository 創建券商倉儲
func NewBrokerRepository(db *gorm.DB) stock.BrokerRepository {
	return &BrokerRepositoryImpl{db: db}
}

// Save 保存券商（Upsert 模式，以 broker_id 為主鍵）
//
// broker_code 不做唯一限制，同一代碼可對應多個 broker_id
func (r *BrokerRepositoryImpl) Save(ctx shared.TransactionContext, b *stock.Broker) error {
	db := persistence.ResolveDB(ctx, r.db)
	if err := db.Save(brokerToGORM(b)).Error; err != nil {
		return persistence.MapError(err, "save broker", nil)
	}
	return nil
}

// FindByBrokerID 根據 broker_id 查找
//
// 錯誤處理：
// - gorm.ErrRecordNotFound → stock.ErrBrokerNotFound
func (r *BrokerRepositoryImpl) FindByBrokerID(ctx shared.TransactionContext, brokerID string) (*stock.Broker, error) {
	return r.findOne(ctx, "broker_id", brokerID)
}

// FindByBrokerCode 根據券商代碼查找
//
// 同一代碼有多筆時返回 broker_id 排序的第一筆
//
// 錯誤處理：
// - gorm.ErrRecordNotFound → stock.ErrBrokerNotFound
func (r *BrokerRepositoryImpl) FindByBrokerCode(ctx shared.TransactionContext, brokerCode string) (*stock.Broker, error) {
	return r.findOne(ctx, "broker_code", brokerCode)
}

func (r *BrokerRepositoryImpl) findOne(ctx shared.TransactionContext, column, value string) (*stock.Broker, error) {
	db := persistence.ResolveDB(ctx, r.db)

	var model BrokerGORM
	if err := db.Where(column+" = ?", value).Order("broker_id").First(&model).Error; err != nil {
		return nil, persistence.MapError(err, "find broker", stock.ErrBrokerNotFound.WithContext(column, value))
	}
	return model.toDomain()
}

// ===========================
// TransactionRepositoryImpl
// ===========================

// TransactionRepositoryImpl 交易記錄倉儲（GORM）
//
// 股票與券商以快照欄位寫入 stock_transactions，
// 不依賴 stocks / brokers 資料表，讀取時也不做關聯查詢
type TransactionRepositoryImpl struct {
	db *gorm.DB
}

// NewTransactionRepository 創建交易記錄倉儲
func NewTransactionRepository(db *gorm.DB) stock.TransactionRepository {
	return &TransactionRepositoryImpl{db: db}
}

// Save 保存交易記錄（Upsert 模式）
//
// 實作邏輯：
// 1. 從 TransactionContext 獲取 DB 實例
// 2. 將交易連同股票、券商快照轉換為單一 GORM 模型
// 3. 使用 GORM Save（以 transaction_id 為主鍵）
//
// 錯誤處理：
// - 暫時性故障 → *shared.StoreFault
// - 其他資料庫錯誤 → ErrRepositoryError
func (r *TransactionRepositoryImpl) Save(ctx shared.TransactionContext, tx *stock.StockTransaction) error {
	db := persistence.ResolveDB(ctx, r.db)
	if err := db.Save(transactionToGORM(tx)).Error; err != nil {
		return persistence.MapError(err, "save transaction", nil)
	}
	return nil
}

// FindByTransactionID 根據 transaction_id 查找
//
// 實作邏輯：
// 1. 單表查詢 stock_transactions
// 2. 由快照欄位重建 Stock 與 Broker（保留交易當下的值）
//
// 錯誤處理：
// - gorm.ErrRecordNotFound → stock.ErrTransactionNotFound
func (r *TransactionRepositoryImpl) FindByTransactionID(ctx shared.TransactionContext, transactionID string) (*stock.StockTransaction, error) {
	db := persistence.ResolveDB(ctx, r.db)

	var model StockTransactionGORM
	if err := db.Where("transaction_id = ?", transactionID).First(&model).Error; err != nil {
		return nil, persistence.MapError(err, "find transaction",
			stock.ErrTransactionNotFound.WithContext("transaction_id", transactionID))
	}
	return model.toDomain()
}
