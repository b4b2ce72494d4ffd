package stock

import (
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/stock"
	"gorm.io/datatypes"
)

// ===========================
// GORM Models
// ===========================

// StockGORM 股票資料表
type StockGORM struct {
	StockID   string    `gorm:"column:stock_id;type:varchar(64);primaryKey"`
	StockCode string    `gorm:"column:stock_code;type:varchar(64);index;not null"`
	StockName string    `gorm:"column:stock_name;type:varchar(255);not null"`
	Symbol    string    `gorm:"column:symbol;type:varchar(64);index;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (StockGORM) TableName() string {
	return "stocks"
}

// BrokerGORM 券商資料表
type BrokerGORM struct {
	BrokerID   string    `gorm:"column:broker_id;type:varchar(64);primaryKey"`
	BrokerCode string    `gorm:"column:broker_code;type:varchar(64);index;not null"`
	BrokerName string    `gorm:"column:broker_name;type:varchar(255);not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (BrokerGORM) TableName() string {
	return "brokers"
}

// StockSnapshot 交易當下的股票資料（嵌入交易資料表）
type StockSnapshot struct {
	ID     string `gorm:"column:id;type:varchar(64);index;not null"`
	Code   string `gorm:"column:code;type:varchar(64);not null"`
	Name   string `gorm:"column:name;type:varchar(255);not null"`
	Symbol string `gorm:"column:symbol;type:varchar(64);not null"`
}

// BrokerSnapshot 交易當下的券商資料（嵌入交易資料表）
type BrokerSnapshot struct {
	ID   string `gorm:"column:id;type:varchar(64);index;not null"`
	Code string `gorm:"column:code;type:varchar(64);not null"`
	Name string `gorm:"column:name;type:varchar(255);not null"`
}

// StockTransactionGORM 交易資料表
//
// 股票與券商以快照欄位保存（stock_*、broker_*），
// 之後對 stocks / brokers 的修改不影響已記錄的交易
type StockTransactionGORM struct {
	TransactionID string         `gorm:"column:transaction_id;type:varchar(64);primaryKey"`
	ExchangeID    string         `gorm:"column:exchange_id;type:varchar(64);index;not null"`
	Stock         StockSnapshot  `gorm:"embedded;embeddedPrefix:stock_"`
	Broker        BrokerSnapshot `gorm:"embedded;embeddedPrefix:broker_"`
	CreatedAt     time.Time      `gorm:"column:created_at;not null"`
}

// TableName 指定資料表名稱
func (StockTransactionGORM) TableName() string {
	return "stock_transactions"
}

// VolumeColumns 三種成交量資料表共用欄位
type VolumeColumns struct {
	TransactionID string         `gorm:"column:transaction_id;type:varchar(64);primaryKey"`
	StockID       string         `gorm:"column:stock_id;type:varchar(64);index;not null"`
	Date          datatypes.Date `gorm:"column:date;index;not null"`
}

// MetricColumns 買進 / 賣出共用欄位
type MetricColumns struct {
	Volume           int64 `gorm:"column:volume;not null"`
	Value            int64 `gorm:"column:value;not null"`
	AvePrice         int64 `gorm:"column:ave_price;not null"`
	MarketValPercent int64 `gorm:"column:market_val_percent;not null"`
	TradeCount       int64 `gorm:"column:trade_count;not null"`
}

// BuyVolumeGORM 買進成交量資料表
type BuyVolumeGORM struct {
	VolumeColumns `gorm:"embedded"`
	MetricColumns `gorm:"embedded"`
}

// TableName 指定資料表名稱
func (BuyVolumeGORM) TableName() string {
	return "buy_volumes"
}

// SellVolumeGORM 賣出成交量資料表
type SellVolumeGORM struct {
	VolumeColumns `gorm:"embedded"`
	MetricColumns `gorm:"embedded"`
}

// TableName 指定資料表名稱
func (SellVolumeGORM) TableName() string {
	return "sell_volumes"
}

// NetVolumeGORM 淨成交量資料表
type NetVolumeGORM struct {
	VolumeColumns `gorm:"embedded"`
	NetVolume     int64 `gorm:"column:net_volume;not null"`
	NetValue      int64 `gorm:"column:net_value;not null"`
	TotalVolume   int64 `gorm:"column:total_volume;not null"`
	TotalValue    int64 `gorm:"column:total_value;not null"`
}

// TableName 指定資料表名稱
func (NetVolumeGORM) TableName() string {
	return "net_volumes"
}

// Models 返回需要遷移的資料表
func Models() []interface{} {
	return []interface{}{
		&StockGORM{},
		&BrokerGORM{},
		&StockTransactionGORM{},
		&BuyVolumeGORM{},
		&SellVolumeGORM{},
		&NetVolumeGORM{},
	}
}

// ===========================
// Mapper Functions
// ===========================

// calendarDate 以 UTC 午夜保存日曆日期（年月日不變）
func calendarDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func stockToGORM(s *stock.Stock) *StockGORM {
	return &StockGORM{
		StockID:   s.StockID(),
		StockCode: s.StockCode(),
		StockName: s.StockName(),
		Symbol:    s.Symbol(),
	}
}

func (m *StockGORM) toDomain() (*stock.Stock, error) {
	return stock.NewStock(m.StockID, m.StockCode, m.StockName, m.Symbol)
}

func brokerToGORM(b *stock.Broker) *BrokerGORM {
	return &BrokerGORM{
		BrokerID:   b.BrokerID(),
		BrokerCode: b.BrokerCode(),
		BrokerName: b.BrokerName(),
	}
}

func (m *BrokerGORM) toDomain() (*stock.Broker, error) {
	return stock.NewBroker(m.BrokerID, m.BrokerCode, m.BrokerName)
}

func transactionToGORM(tx *stock.StockTransaction) *StockTransactionGORM {
	s, b := tx.Stock(), tx.Broker()
	return &StockTransactionGORM{
		TransactionID: tx.TransactionID(),
		ExchangeID:    tx.ExchangeID(),
		Stock: StockSnapshot{
			ID:     s.StockID(),
			Code:   s.StockCode(),
			Name:   s.StockName(),
			Symbol: s.Symbol(),
		},
		Broker: BrokerSnapshot{
			ID:   b.BrokerID(),
			Code: b.BrokerCode(),
			Name: b.BrokerName(),
		},
	}
}

func (m *StockTransactionGORM) toDomain() (*stock.StockTransaction, error) {
	s, err := stock.NewStock(m.Stock.ID, m.Stock.Code, m.Stock.Name, m.Stock.Symbol)
	if err != nil {
		return nil, err
	}
	b, err := stock.NewBroker(m.Broker.ID, m.Broker.Code, m.Broker.Name)
	if err != nil {
		return nil, err
	}
	return stock.NewStockTransaction(m.ExchangeID, m.TransactionID, s, b)
}

func toMetricColumns(m stock.Metrics) MetricColumns {
	return MetricColumns{
		Volume:           m.Volume,
		Value:            m.Value,
		AvePrice:         m.AvePrice,
		MarketValPercent: m.MarketValPercent,
		TradeCount:       m.TradeCount,
	}
}

func (c MetricColumns) toMetrics() stock.Metrics {
	return stock.Metrics{
		Volume:           c.Volume,
		Value:            c.Value,
		AvePrice:         c.AvePrice,
		MarketValPercent: c.MarketValPercent,
		TradeCount:       c.TradeCount,
	}
}

func keyColumns(stockID, transactionID string, date time.Time) VolumeColumns {
	return VolumeColumns{
		TransactionID: transactionID,
		StockID:       stockID,
		Date:          calendarDate(date),
	}
}

func (c VolumeColumns) date() time.Time {
	return time.Time(c.Date)
}

func buyToGORM(v *stock.BuyVolume) *BuyVolumeGORM {
	return &BuyVolumeGORM{
		VolumeColumns: keyColumns(v.StockID(), v.TransactionID(), v.Date()),
		MetricColumns: toMetricColumns(v.Metrics()),
	}
}

func (m *BuyVolumeGORM) toDomain() (*stock.BuyVolume, error) {
	return stock.NewBuyVolume(m.StockID, m.TransactionID, m.date(), m.toMetrics())
}

func sellToGORM(v *stock.SellVolume) *SellVolumeGORM {
	return &SellVolumeGORM{
		VolumeColumns: keyColumns(v.StockID(), v.TransactionID(), v.Date()),
		MetricColumns: toMetricColumns(v.Metrics()),
	}
}

func (m *SellVolumeGORM) toDomain() (*stock.SellVolume, error) {
	return stock.NewSellVolume(m.StockID, m.TransactionID, m.date(), m.toMetrics())
}

func netToGORM(v *stock.NetVolume) *NetVolumeGORM {
	t := v.Totals()
	return &NetVolumeGORM{
		VolumeColumns: keyColumns(v.StockID(), v.TransactionID(), v.Date()),
		NetVolume:     t.NetVolume,
		NetValue:      t.NetValue,
		TotalVolume:   t.TotalVolume,
		TotalValue:    t.TotalValue,
	}
}

func (m *NetVolumeGORM) toDomain() (*stock.NetVolume, error) {
	return stock.NewNetVolume(m.StockID, m.TransactionID, m.date(), stock.NetTotals{
		NetVolume:   m.NetVolume,
		NetValue:    m.NetValue,
		TotalVolume: m.TotalVolume,
		TotalValue:  m.TotalValue,
	})
}
