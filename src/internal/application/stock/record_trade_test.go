package stock

import (
	"errors"
	"testing"
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/field"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/stock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===========================
// Mocks
// ===========================

type MockStockRepository struct{ mock.Mock }

func (m *MockStockRepository) Save(ctx shared.TransactionContext, s *stock.Stock) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStockRepository) FindByStockID(ctx shared.TransactionContext, stockID string) (*stock.Stock, error) {
	args := m.Called(ctx, stockID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Stock), args.Error(1)
}

func (m *MockStockRepository) ExistsByStockCode(ctx shared.TransactionContext, stockCode string) (bool, error) {
	args := m.Called(ctx, stockCode)
	return args.Bool(0), args.Error(1)
}

type MockBrokerRepository struct{ mock.Mock }

func (m *MockBrokerRepository) Save(ctx shared.TransactionContext, b *stock.Broker) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBrokerRepository) FindByBrokerID(ctx shared.TransactionContext, brokerID string) (*stock.Broker, error) {
	args := m.Called(ctx, brokerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Broker), args.Error(1)
}

func (m *MockBrokerRepository) FindByBrokerCode(ctx shared.TransactionContext, brokerCode string) (*stock.Broker, error) {
	args := m.Called(ctx, brokerCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Broker), args.Error(1)
}

type MockTransactionRepository struct{ mock.Mock }

func (m *MockTransactionRepository) Save(ctx shared.TransactionContext, tx *stock.StockTransaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) FindByTransactionID(ctx shared.TransactionContext, transactionID string) (*stock.StockTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.StockTransaction), args.Error(1)
}

type MockVolumeRepository struct{ mock.Mock }

func (m *MockVolumeRepository) SaveBuy(ctx shared.TransactionContext, v *stock.BuyVolume) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVolumeRepository) SaveSell(ctx shared.TransactionContext, v *stock.SellVolume) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVolumeRepository) SaveNet(ctx shared.TransactionContext, v *stock.NetVolume) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVolumeRepository) FindBuyByTransactionID(ctx shared.TransactionContext, transactionID string) (*stock.BuyVolume, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.BuyVolume), args.Error(1)
}

func (m *MockVolumeRepository) FindSellByTransactionID(ctx shared.TransactionContext, transactionID string) (*stock.SellVolume, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.SellVolume), args.Error(1)
}

func (m *MockVolumeRepository) FindNetByTransactionID(ctx shared.TransactionContext, transactionID string) (*stock.NetVolume, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.NetVolume), args.Error(1)
}

func (m *MockVolumeRepository) ListNetByDate(ctx shared.TransactionContext, date time.Time) ([]*stock.NetVolume, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stock.NetVolume), args.Error(1)
}

type MockTransactionManager struct{ mock.Mock }

func (m *MockTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	return fn(nil)
}

type fixture struct {
	stocks  *MockStockRepository
	brokers *MockBrokerRepository
	txs     *MockTransactionRepository
	volumes *MockVolumeRepository
	useCase RecordTradeUseCase
}

func newFixture() *fixture {
	f := &fixture{
		stocks:  new(MockStockRepository),
		brokers: new(MockBrokerRepository),
		txs:     new(MockTransactionRepository),
		volumes: new(MockVolumeRepository),
	}
	f.useCase = NewRecordTradeUseCase(f.stocks, f.brokers, f.txs, f.volumes, new(MockTransactionManager), nil)
	return f
}

func validRecordTradeCommand() RecordTradeCommand {
	return RecordTradeCommand{
		ExchangeID: "pse",
		Date:       time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC),
		Stock:      StockInput{StockID: "stk-1", StockCode: "ALI", StockName: "Ayala Land", Symbol: "ALI"},
		Broker:     BrokerInput{BrokerCode: "COL", BrokerName: "COL Financial"},
		Buy:        stock.Metrics{Volume: 1200, Value: 36000, AvePrice: 30, TradeCount: 8},
		Sell:       stock.Metrics{Volume: 700, Value: 21700, AvePrice: 31, TradeCount: 5},
	}
}

// ===========================
// RecordTradeUseCase Tests
// ===========================

// Test 1: All records share one transaction id
func TestRecordTradeUseCase_Execute_Success(t *testing.T) {
	// Arrange
	f := newFixture()
	f.brokers.On("FindByBrokerCode", mock.Anything, "COL").Return(nil, stock.ErrBrokerNotFound)
	f.stocks.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.brokers.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.txs.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.volumes.On("SaveBuy", mock.Anything, mock.Anything).Return(nil)
	f.volumes.On("SaveSell", mock.Anything, mock.Anything).Return(nil)

	var savedNet *stock.NetVolume
	f.volumes.On("SaveNet", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { savedNet = args.Get(1).(*stock.NetVolume) }).
		Return(nil)

	// Act
	result, err := f.useCase.Execute(validRecordTradeCommand())

	// Assert
	require.NoError(t, err)
	assert.Len(t, result.TransactionID, shared.DefaultIDSize)
	assert.Len(t, result.BrokerID, shared.DefaultIDSize)
	assert.Equal(t, stock.NetTotals{NetVolume: 500, NetValue: 14300, TotalVolume: 1900, TotalValue: 57700}, result.Net)

	require.NotNil(t, savedNet)
	assert.Equal(t, result.TransactionID, savedNet.TransactionID())
	// 09:30 UTC is 17:30 in UTC+8, same calendar day
	assert.Equal(t, 16, result.Date.Day())

	f.txs.AssertCalled(t, "Save", mock.Anything, mock.MatchedBy(func(tx *stock.StockTransaction) bool {
		return tx.TransactionID() == result.TransactionID && tx.Stock().StockName() == "ayala land"
	}))
}

// Test 2: Validation errors stop before the store
func TestRecordTradeUseCase_Execute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *RecordTradeCommand)
	}{
		{"missing exchange", func(c *RecordTradeCommand) { c.ExchangeID = "" }},
		{"missing stock id", func(c *RecordTradeCommand) { c.Stock.StockID = " " }},
		{"missing broker code", func(c *RecordTradeCommand) { c.Broker.BrokerCode = "" }},
		{"negative buy volume", func(c *RecordTradeCommand) { c.Buy.Volume = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			cmd := validRecordTradeCommand()
			tt.mutate(&cmd)

			_, err := f.useCase.Execute(cmd)

			assert.ErrorIs(t, err, field.ErrInvalidField)
			f.stocks.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

// Test 3: Store errors abort the remaining writes
func TestRecordTradeUseCase_Execute_StoreError(t *testing.T) {
	f := newFixture()
	dbErr := shared.NewStoreFault(shared.FaultAborted, errors.New("deadlock detected"))
	f.brokers.On("FindByBrokerCode", mock.Anything, "COL").Return(nil, stock.ErrBrokerNotFound)
	f.stocks.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.brokers.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.txs.On("Save", mock.Anything, mock.Anything).Return(dbErr)

	_, err := f.useCase.Execute(validRecordTradeCommand())

	assert.ErrorIs(t, err, dbErr)
	f.volumes.AssertNotCalled(t, "SaveBuy", mock.Anything, mock.Anything)
}

// Test 4: A known broker code keeps its existing id
func TestRecordTradeUseCase_Execute_ReusesBrokerByCode(t *testing.T) {
	// Arrange
	f := newFixture()
	existing, err := stock.NewBroker("brk-col", "COL", "COL Financial")
	require.NoError(t, err)

	f.brokers.On("FindByBrokerCode", mock.Anything, "COL").Return(existing, nil)
	f.stocks.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.brokers.On("Save", mock.Anything, mock.MatchedBy(func(b *stock.Broker) bool {
		return b.BrokerID() == "brk-col"
	})).Return(nil)
	f.txs.On("Save", mock.Anything, mock.MatchedBy(func(tx *stock.StockTransaction) bool {
		return tx.Broker().BrokerID() == "brk-col"
	})).Return(nil)
	f.volumes.On("SaveBuy", mock.Anything, mock.Anything).Return(nil)
	f.volumes.On("SaveSell", mock.Anything, mock.Anything).Return(nil)
	f.volumes.On("SaveNet", mock.Anything, mock.Anything).Return(nil)

	// Act
	result, err := f.useCase.Execute(validRecordTradeCommand())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "brk-col", result.BrokerID)
	f.brokers.AssertExpectations(t)
	f.txs.AssertExpectations(t)
}

// Test 5: An explicit broker id skips the lookup
func TestRecordTradeUseCase_Execute_ExplicitBrokerID(t *testing.T) {
	f := newFixture()
	f.stocks.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.brokers.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.txs.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.volumes.On("SaveBuy", mock.Anything, mock.Anything).Return(nil)
	f.volumes.On("SaveSell", mock.Anything, mock.Anything).Return(nil)
	f.volumes.On("SaveNet", mock.Anything, mock.Anything).Return(nil)

	cmd := validRecordTradeCommand()
	cmd.Broker.BrokerID = "brk-001"
	cmd.TransactionID = "tx-42"

	result, err := f.useCase.Execute(cmd)

	require.NoError(t, err)
	assert.Equal(t, "brk-001", result.BrokerID)
	assert.Equal(t, "tx-42", result.TransactionID)
	f.brokers.AssertNotCalled(t, "FindByBrokerCode", mock.Anything, mock.Anything)
}
