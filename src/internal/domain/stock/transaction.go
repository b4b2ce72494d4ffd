package stock

import (
	"github.com/jackyeh168/pinoydesk/src/internal/domain/field"
)

// ===========================
// StockTransaction Aggregate
// ===========================

// StockTransaction 交易所的一筆交易
//
// Stock 與 Broker 為內嵌值（複製保存），不是外部參照
type StockTransaction struct {
	exchangeID    string
	transactionID string
	stock         Stock
	broker        Broker
}

// NewStockTransaction 建立交易記錄
func NewStockTransaction(exchangeID, transactionID string, s *Stock, b *Broker) (*StockTransaction, error) {
	exID, err := field.ID("exchange_id", exchangeID)
	if err != nil {
		return nil, err
	}
	txID, err := field.ID("transaction_id", transactionID)
	if err != nil {
		return nil, err
	}
	tx := &StockTransaction{exchangeID: exID, transactionID: txID}
	if err := tx.SetStock(s); err != nil {
		return nil, err
	}
	if err := tx.SetBroker(b); err != nil {
		return nil, err
	}
	return tx, nil
}

// SetStock 設定股票（保存副本）
func (t *StockTransaction) SetStock(s *Stock) error {
	if s == nil {
		return field.ErrValueRequired.WithContext("field", "stock")
	}
	t.stock = *s
	return nil
}

// SetBroker 設定券商（保存副本）
func (t *StockTransaction) SetBroker(b *Broker) error {
	if b == nil {
		return field.ErrValueRequired.WithContext("field", "broker")
	}
	t.broker = *b
	return nil
}

func (t *StockTransaction) ExchangeID() string    { return t.exchangeID }
func (t *StockTransaction) TransactionID() string { return t.transactionID }

// Stock 返回股票副本
func (t *StockTransaction) Stock() *Stock {
	s := t.stock
	return &s
}

// Broker 返回券商副本
func (t *StockTransaction) Broker() *Broker {
	b := t.broker
	return &b
}

// Equals 以 exchangeID + transactionID 比較
func (t *StockTransaction) Equals(other *StockTransaction) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.exchangeID == other.exchangeID && t.transactionID == other.transactionID
}
