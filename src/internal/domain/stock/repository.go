package stock

import (
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
)

// ===========================
// Repository Interfaces
// ===========================

// StockRepository 股票倉儲
type StockRepository interface {
	Save(ctx shared.TransactionContext, s *Stock) error
	FindByStockID(ctx shared.TransactionContext, stockID string) (*Stock, error)
	ExistsByStockCode(ctx shared.TransactionContext, stockCode string) (bool, error)
}

// BrokerRepository 券商倉儲
type BrokerRepository interface {
	Save(ctx shared.TransactionContext, b *Broker) error
	FindByBrokerID(ctx shared.TransactionContext, brokerID string) (*Broker, error)
	FindByBrokerCode(ctx shared.TransactionContext, brokerCode string) (*Broker, error)
}

// TransactionRepository 交易記錄倉儲
type TransactionRepository interface {
	Save(ctx shared.TransactionContext, tx *StockTransaction) error
	FindByTransactionID(ctx shared.TransactionContext, transactionID string) (*StockTransaction, error)
}

// VolumeRepository 成交量倉儲
type VolumeRepository interface {
	SaveBuy(ctx shared.TransactionContext, v *BuyVolume) error
	SaveSell(ctx shared.TransactionContext, v *SellVolume) error
	SaveNet(ctx shared.TransactionContext, v *NetVolume) error

	FindBuyByTransactionID(ctx shared.TransactionContext, transactionID string) (*BuyVolume, error)
	FindSellByTransactionID(ctx shared.TransactionContext, transactionID string) (*SellVolume, error)
	FindNetByTransactionID(ctx shared.TransactionContext, transactionID string) (*NetVolume, error)

	// ListNetByDate 返回某日所有股票的淨額（依 stock_id 排序）
	ListNetByDate(ctx shared.TransactionContext, date time.Time) ([]*NetVolume, error)
}
