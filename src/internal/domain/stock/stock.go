package stock

import (
	"fmt"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/field"
)

// ===========================
// Stock Value
// ===========================

// Stock 股票代碼資料
//
// 獨立保存，也作為 StockTransaction 的內嵌值
//
// 相等性：比較 stockID、stockCode、symbol
type Stock struct {
	stockID   string
	stockCode string
	stockName string
	symbol    string
}

// NewStock 建立股票（所有欄位必填，stockName 轉小寫）
func NewStock(stockID, stockCode, stockName, symbol string) (*Stock, error) {
	s := &Stock{}
	steps := []func() error{
		func() error { return s.SetStockID(stockID) },
		func() error { return s.SetStockCode(stockCode) },
		func() error { return s.SetStockName(stockName) },
		func() error { return s.SetSymbol(symbol) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// SetStockID 設定股票 ID
func (s *Stock) SetStockID(value string) error {
	v, err := field.ID("stock_id", value)
	if err != nil {
		return err
	}
	s.stockID = v
	return nil
}

// SetStockCode 設定股票代碼
func (s *Stock) SetStockCode(value string) error {
	v, err := field.String("stock_code", value)
	if err != nil {
		return err
	}
	s.stockCode = v
	return nil
}

// SetStockName 設定股票名稱（trim + 小寫）
func (s *Stock) SetStockName(value string) error {
	v, err := field.LowerString("stock_name", value)
	if err != nil {
		return err
	}
	s.stockName = v
	return nil
}

// SetSymbol 設定交易代號
func (s *Stock) SetSymbol(value string) error {
	v, err := field.String("symbol", value)
	if err != nil {
		return err
	}
	s.symbol = v
	return nil
}

func (s *Stock) StockID() string   { return s.stockID }
func (s *Stock) StockCode() string { return s.stockCode }
func (s *Stock) StockName() string { return s.stockName }
func (s *Stock) Symbol() string    { return s.symbol }

// Equals 自然鍵相等比較
func (s *Stock) Equals(other *Stock) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.stockID == other.stockID &&
		s.stockCode == other.stockCode &&
		s.symbol == other.symbol
}

func (s *Stock) String() string {
	return fmt.Sprintf("<Stock stock_code: %s, symbol: %s>", s.stockCode, s.symbol)
}
