package shared

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ===========================
// Money Value Object
// ===========================

// DefaultCurrency 預設幣別
const DefaultCurrency = "PHP"

// Money 金額值對象（金額 + 幣別）
//
// 業務規則：
// 1. 金額不可為負數
// 2. 幣別為 3 個英文字母（ISO 4217），統一大寫
//
// 設計原則：
// - 不可變性：所有運算返回新實例
// - 使用 decimal.Decimal 確保精確計算
// - 作為嵌入式值對象，永遠由所屬記錄擁有，不單獨引用
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney 創建金額值對象（Checked Constructor）
//
// 錯誤範例：
// - amount < 0 → ErrInvalidMoney
// - currency = "PESO" → ErrInvalidMoney
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if len(code) != 3 || !isLetters(code) {
		return Money{}, ErrInvalidMoney.WithContext(
			"currency", currency,
			"reason", "currency must be a 3-letter code",
		)
	}
	if amount.IsNegative() {
		return Money{}, ErrInvalidMoney.WithContext(
			"amount", amount.String(),
			"reason", "amount cannot be negative",
		)
	}
	return Money{amount: amount, currency: code}, nil
}

// MustMoney 從字串建立金額（僅用於常量與測試）
func MustMoney(amount string, currency string) Money {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		panic(err)
	}
	m, err := NewMoney(d, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney 返回指定幣別的零金額
func ZeroMoney(currency string) Money {
	m, err := NewMoney(decimal.Zero, currency)
	if err != nil {
		return Money{amount: decimal.Zero, currency: DefaultCurrency}
	}
	return m
}

// Amount 返回金額
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency 返回幣別
func (m Money) Currency() string {
	return m.currency
}

// IsZero 是否為零值（未設定）
func (m Money) IsZero() bool {
	return m.currency == ""
}

// Equals 值相等比較
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// Add 相加（幣別必須一致）
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch.WithContext(
			"left", m.currency,
			"right", other.currency,
		)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Percent 取百分比（例如折扣），結果四捨五入到小數兩位
func (m Money) Percent(percent int) Money {
	p := decimal.NewFromInt(int64(percent)).Div(decimal.NewFromInt(100))
	return Money{amount: m.amount.Mul(p).Round(2), currency: m.currency}
}

// Times 乘以次數（例如繳費期數）
func (m Money) Times(n int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(n)), currency: m.currency}
}

// Sub 相減，結果最低為 0
func (m Money) Sub(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch.WithContext(
			"left", m.currency,
			"right", other.currency,
		)
	}
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		result = decimal.Zero
	}
	return Money{amount: result, currency: m.currency}, nil
}

// String 返回 "123.45 PHP"
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

const (
	ErrCodeInvalidMoney     ErrorCode = "INVALID_MONEY"
	ErrCodeCurrencyMismatch ErrorCode = "CURRENCY_MISMATCH"
)

var (
	// ErrInvalidMoney 金額或幣別無效
	ErrInvalidMoney = &DomainError{
		Code:    ErrCodeInvalidMoney,
		Message: "金額無效",
	}

	// ErrCurrencyMismatch 幣別不一致
	ErrCurrencyMismatch = &DomainError{
		Code:    ErrCodeCurrencyMismatch,
		Message: "幣別不一致，無法運算",
	}
)
