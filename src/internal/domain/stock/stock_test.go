package stock

import (
	"testing"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/field"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// Stock Tests
// ===========================

func TestNewStock_NormalizesName(t *testing.T) {
	s, err := NewStock(" stk-1 ", "ABC", " ABCD Holdings ", "ABC")

	require.NoError(t, err)
	assert.Equal(t, "stk-1", s.StockID())
	assert.Equal(t, "abcd holdings", s.StockName())
	assert.Equal(t, "ABC", s.Symbol(), "symbol keeps its case")
}

func TestNewStock_RequiredFields(t *testing.T) {
	tests := []struct {
		name                     string
		id, code, stockName, sym string
	}{
		{"empty id", "", "ABC", "abc", "ABC"},
		{"empty code", "stk-1", "", "abc", "ABC"},
		{"blank name", "stk-1", "ABC", "   ", "ABC"},
		{"empty symbol", "stk-1", "ABC", "abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStock(tt.id, tt.code, tt.stockName, tt.sym)

			assert.ErrorIs(t, err, field.ErrValueRequired)
		})
	}
}

func TestStock_Equals_NaturalKey(t *testing.T) {
	a, _ := NewStock("stk-1", "ABC", "first name", "ABC")
	b, _ := NewStock("stk-1", "ABC", "other name", "ABC")
	c, _ := NewStock("stk-1", "ABC", "first name", "XYZ")

	assert.True(t, a.Equals(b), "stock name is not part of the key")
	assert.False(t, a.Equals(c))
}

// ===========================
// Broker Tests
// ===========================

func TestNewBroker_GeneratesID(t *testing.T) {
	b, err := NewBroker("  ", "BRK", "Broker One")

	require.NoError(t, err)
	assert.Len(t, b.BrokerID(), shared.DefaultIDSize)
	assert.Equal(t, "BRK", b.BrokerCode())
}

func TestNewBroker_Validation(t *testing.T) {
	_, err := NewBroker("b-1", "", "Broker One")
	assert.ErrorIs(t, err, field.ErrValueRequired)

	_, err = NewBroker("b-1", "BRK", "")
	assert.ErrorIs(t, err, field.ErrValueRequired)
}

func TestBroker_Equals(t *testing.T) {
	a, _ := NewBroker("b-1", "BRK", "Name A")
	b, _ := NewBroker("b-1", "BRK", "Name B")
	c, _ := NewBroker("b-2", "BRK", "Name A")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

// ===========================
// StockTransaction Tests
// ===========================

func TestNewStockTransaction_OwnsCopies(t *testing.T) {
	s, _ := NewStock("stk-1", "ABC", "abc", "ABC")
	b, _ := NewBroker("b-1", "BRK", "Broker")

	tx, err := NewStockTransaction("pse", "tx-1", s, b)
	require.NoError(t, err)

	require.NoError(t, s.SetSymbol("CHANGED"))

	assert.Equal(t, "ABC", tx.Stock().Symbol(), "transaction keeps its own copy")
	assert.True(t, tx.Broker().Equals(b))
}

func TestNewStockTransaction_Validation(t *testing.T) {
	s, _ := NewStock("stk-1", "ABC", "abc", "ABC")
	b, _ := NewBroker("b-1", "BRK", "Broker")

	_, err := NewStockTransaction("", "tx-1", s, b)
	assert.ErrorIs(t, err, field.ErrValueRequired)

	_, err = NewStockTransaction("pse", "tx-1", nil, b)
	assert.ErrorIs(t, err, field.ErrValueRequired)

	_, err = NewStockTransaction("pse", "tx-1", s, nil)
	assert.ErrorIs(t, err, field.ErrValueRequired)
}
