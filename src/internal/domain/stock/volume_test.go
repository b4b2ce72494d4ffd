package stock

import (
	"testing"
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/field"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tradeDay = time.Date(2026, 10, 16, 15, 30, 0, 0, MarketLocation(8))

// ===========================
// Buy / Sell Volume Tests
// ===========================

func TestNewBuyVolume_Defaults(t *testing.T) {
	v, err := NewBuyVolume("stk-1", "", time.Time{}, Metrics{})

	require.NoError(t, err)
	assert.Len(t, v.TransactionID(), shared.DefaultIDSize)
	assert.Equal(t, MarketToday(MarketLocation(DefaultUTCOffsetHours)), v.Date())
}

func TestNewBuyVolume_TruncatesDate(t *testing.T) {
	v, err := NewBuyVolume("stk-1", "tx-1", tradeDay, Metrics{Volume: 10})

	require.NoError(t, err)
	assert.Equal(t, 0, v.Date().Hour())
	assert.Equal(t, 16, v.Date().Day())
}

func TestNewVolume_RejectsNegativeMetrics(t *testing.T) {
	_, err := NewBuyVolume("stk-1", "tx-1", tradeDay, Metrics{TradeCount: -1})
	assert.ErrorIs(t, err, field.ErrValueOutOfRange)

	_, err = NewSellVolume("stk-1", "tx-1", tradeDay, Metrics{Value: -5})
	assert.ErrorIs(t, err, field.ErrValueOutOfRange)

	_, err = NewSellVolume("", "tx-1", tradeDay, Metrics{})
	assert.ErrorIs(t, err, field.ErrValueRequired)
}

// ===========================
// NetVolume Tests
// ===========================

func TestComputeNetVolume(t *testing.T) {
	// Arrange
	buy, err := NewBuyVolume("stk-1", "tx-1", tradeDay, Metrics{Volume: 1000, Value: 50000, TradeCount: 12})
	require.NoError(t, err)
	sell, err := NewSellVolume("stk-1", "tx-1", tradeDay, Metrics{Volume: 1500, Value: 72000, TradeCount: 9})
	require.NoError(t, err)

	// Act
	net, err := ComputeNetVolume(buy, sell)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, NetTotals{
		NetVolume:   -500,
		NetValue:    -22000,
		TotalVolume: 2500,
		TotalValue:  122000,
	}, net.Totals())
	assert.Equal(t, "tx-1", net.TransactionID())
	assert.Equal(t, buy.Date(), net.Date())
}

func TestComputeNetVolume_Mismatch(t *testing.T) {
	buy, _ := NewBuyVolume("stk-1", "tx-1", tradeDay, Metrics{})
	otherStock, _ := NewSellVolume("stk-2", "tx-1", tradeDay, Metrics{})
	otherTx, _ := NewSellVolume("stk-1", "tx-2", tradeDay, Metrics{})

	_, err := ComputeNetVolume(buy, otherStock)
	assert.ErrorIs(t, err, ErrVolumeMismatch)

	_, err = ComputeNetVolume(buy, otherTx)
	assert.ErrorIs(t, err, ErrVolumeMismatch)

	_, err = ComputeNetVolume(buy, nil)
	assert.ErrorIs(t, err, field.ErrValueRequired)
}

func TestNewNetVolume_TotalsMustBeNonNegative(t *testing.T) {
	_, err := NewNetVolume("stk-1", "tx-1", tradeDay, NetTotals{NetVolume: -10, TotalVolume: 10})
	assert.NoError(t, err)

	_, err = NewNetVolume("stk-1", "tx-1", tradeDay, NetTotals{TotalValue: -1})
	assert.ErrorIs(t, err, field.ErrValueOutOfRange)
}

func TestVolume_Equals(t *testing.T) {
	a, _ := NewBuyVolume("stk-1", "tx-1", tradeDay, Metrics{Volume: 1})
	b, _ := NewBuyVolume("stk-1", "tx-1", tradeDay.AddDate(0, 0, 1), Metrics{Volume: 2})
	c, _ := NewBuyVolume("stk-1", "tx-2", tradeDay, Metrics{Volume: 1})

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
