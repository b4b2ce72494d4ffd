package stock

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/field"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
)

// DefaultUTCOffsetHours 成交量日期預設時區（UTC+8）
const DefaultUTCOffsetHours = 8

// MarketLocation 返回固定時差的時區
func MarketLocation(offsetHours int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*60*60)
}

// MarketToday 返回時區內的今天（00:00）
func MarketToday(loc *time.Location) time.Time {
	return shared.TruncateToDate(time.Now().In(loc))
}

// ===========================
// Volume Metrics
// ===========================

// Metrics 單日成交統計（買進或賣出）
type Metrics struct {
	Volume           int64
	Value            int64
	AvePrice         int64
	MarketValPercent int64
	TradeCount       int64
}

// validate 所有欄位必須為非負整數
func (m Metrics) validate(prefix string) error {
	checks := []struct {
		name  string
		value int64
	}{
		{prefix + "_volume", m.Volume},
		{prefix + "_value", m.Value},
		{prefix + "_ave_price", m.AvePrice},
		{prefix + "_market_val_percent", m.MarketValPercent},
		{prefix + "_trade_count", m.TradeCount},
	}
	for _, c := range checks {
		if _, err := field.NonNegativeInt(c.name, c.value); err != nil {
			return err
		}
	}
	return nil
}

// volumeKey 成交量記錄共用欄位
//
// 買進、賣出、淨額三種記錄以 stockID + transactionID 對應
type volumeKey struct {
	stockID       string
	transactionID string
	date          time.Time
}

func newVolumeKey(stockID, transactionID string, date time.Time) (volumeKey, error) {
	sid, err := field.ID("stock_id", stockID)
	if err != nil {
		return volumeKey{}, err
	}

	var txID string
	if strings.TrimSpace(transactionID) == "" {
		txID = shared.GenerateID(shared.DefaultIDSize)
	} else if txID, err = field.ID("transaction_id", transactionID); err != nil {
		return volumeKey{}, err
	}

	if date.IsZero() {
		date = MarketToday(MarketLocation(DefaultUTCOffsetHours))
	}
	return volumeKey{stockID: sid, transactionID: txID, date: shared.TruncateToDate(date)}, nil
}

func (k volumeKey) StockID() string       { return k.stockID }
func (k volumeKey) TransactionID() string { return k.transactionID }
func (k volumeKey) Date() time.Time       { return k.date }

func (k volumeKey) sameTrade(other volumeKey) bool {
	return k.stockID == other.stockID && k.transactionID == other.transactionID
}

// ===========================
// BuyVolume / SellVolume
// ===========================

// BuyVolume 單日買進成交量
//
// transactionID 為空時自動生成；date 為零值時使用 UTC+8 的今天
type BuyVolume struct {
	volumeKey
	metrics Metrics
}

// NewBuyVolume 建立買進成交量
func NewBuyVolume(stockID, transactionID string, date time.Time, m Metrics) (*BuyVolume, error) {
	key, err := newVolumeKey(stockID, transactionID, date)
	if err != nil {
		return nil, err
	}
	if err := m.validate("buy"); err != nil {
		return nil, err
	}
	return &BuyVolume{volumeKey: key, metrics: m}, nil
}

// Metrics 返回買進統計
func (b *BuyVolume) Metrics() Metrics { return b.metrics }

// Equals 以 stockID + transactionID 比較
func (b *BuyVolume) Equals(other *BuyVolume) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.sameTrade(other.volumeKey)
}

// SellVolume 單日賣出成交量
type SellVolume struct {
	volumeKey
	metrics Metrics
}

// NewSellVolume 建立賣出成交量
func NewSellVolume(stockID, transactionID string, date time.Time, m Metrics) (*SellVolume, error) {
	key, err := newVolumeKey(stockID, transactionID, date)
	if err != nil {
		return nil, err
	}
	if err := m.validate("sell"); err != nil {
		return nil, err
	}
	return &SellVolume{volumeKey: key, metrics: m}, nil
}

// Metrics 返回賣出統計
func (s *SellVolume) Metrics() Metrics { return s.metrics }

// Equals 以 stockID + transactionID 比較
func (s *SellVolume) Equals(other *SellVolume) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.sameTrade(other.volumeKey)
}

// ===========================
// NetVolume
// ===========================

// NetTotals 淨額統計
//
// NetVolume / NetValue 可為負數（賣超），TotalVolume / TotalValue 必須非負
type NetTotals struct {
	NetVolume   int64
	NetValue    int64
	TotalVolume int64
	TotalValue  int64
}

// NetVolume 單日淨成交量
type NetVolume struct {
	volumeKey
	totals NetTotals
}

// NewNetVolume 建立淨成交量
func NewNetVolume(stockID, transactionID string, date time.Time, totals NetTotals) (*NetVolume, error) {
	key, err := newVolumeKey(stockID, transactionID, date)
	if err != nil {
		return nil, err
	}
	if _, err := field.NonNegativeInt("total_volume", totals.TotalVolume); err != nil {
		return nil, err
	}
	if _, err := field.NonNegativeInt("total_value", totals.TotalValue); err != nil {
		return nil, err
	}
	return &NetVolume{volumeKey: key, totals: totals}, nil
}

// ComputeNetVolume 由同一筆交易的買進與賣出計算淨額
//
// net = buy - sell，total = buy + sell，日期沿用買進記錄
func ComputeNetVolume(buy *BuyVolume, sell *SellVolume) (*NetVolume, error) {
	if buy == nil || sell == nil {
		return nil, field.ErrValueRequired.WithContext("field", "volume")
	}
	if !buy.sameTrade(sell.volumeKey) {
		return nil, ErrVolumeMismatch.WithContext(
			"buy_stock_id", buy.stockID,
			"sell_stock_id", sell.stockID,
			"buy_transaction_id", buy.transactionID,
			"sell_transaction_id", sell.transactionID,
		)
	}
	b, s := buy.metrics, sell.metrics
	return NewNetVolume(buy.stockID, buy.transactionID, buy.date, NetTotals{
		NetVolume:   b.Volume - s.Volume,
		NetValue:    b.Value - s.Value,
		TotalVolume: b.Volume + s.Volume,
		TotalValue:  b.Value + s.Value,
	})
}

// Totals 返回淨額統計
func (n *NetVolume) Totals() NetTotals { return n.totals }

// Equals 以 stockID + transactionID 比較
func (n *NetVolume) Equals(other *NetVolume) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.sameTrade(other.volumeKey)
}
