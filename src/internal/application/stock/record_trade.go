package stock

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/stock"
)

// ===========================
// RecordTrade Use Case
// ===========================

// StockInput 股票輸入
type StockInput struct {
	StockID   string
	StockCode string
	StockName string
	Symbol    string
}

// BrokerInput 券商輸入（BrokerID 可為空）
type BrokerInput struct {
	BrokerID   string
	BrokerCode string
	BrokerName string
}

// RecordTradeCommand 記錄一筆交易及當日買賣量
type RecordTradeCommand struct {
	ExchangeID    string
	TransactionID string    // 可為空，自動生成
	Date          time.Time // 零值時使用市場時區的今天
	Stock         StockInput
	Broker        BrokerInput
	Buy           stock.Metrics
	Sell          stock.Metrics
}

// RecordTradeResult 記錄結果
type RecordTradeResult struct {
	TransactionID string
	BrokerID      string
	Date          time.Time
	Net           stock.NetTotals
}

// RecordTradeUseCase 記錄交易
//
// 業務規則：
// 1. 交易、買進、賣出、淨額四筆記錄共用同一個 transaction_id
// 2. 淨額由買進與賣出計算，不接受外部輸入
// 3. 所有記錄在同一事務中保存
// 4. 未提供 BrokerID 時，沿用同代碼的既有券商
type RecordTradeUseCase interface {
	Execute(cmd RecordTradeCommand) (*RecordTradeResult, error)
}

// RecordTradeUseCaseImpl RecordTradeUseCase 實作
type RecordTradeUseCaseImpl struct {
	stockRepo  stock.StockRepository
	brokerRepo stock.BrokerRepository
	txRepo     stock.TransactionRepository
	volumeRepo stock.VolumeRepository
	txManager  shared.TransactionManager
	location   *time.Location
}

// NewRecordTradeUseCase 創建 RecordTradeUseCase 實例
//
// location 為成交量日期使用的時區（nil 時使用 UTC+8）
func NewRecordTradeUseCase(
	stockRepo stock.StockRepository,
	brokerRepo stock.BrokerRepository,
	txRepo stock.TransactionRepository,
	volumeRepo stock.VolumeRepository,
	txManager shared.TransactionManager,
	location *time.Location,
) RecordTradeUseCase {
	if location == nil {
		location = stock.MarketLocation(stock.DefaultUTCOffsetHours)
	}
	return &RecordTradeUseCaseImpl{
		stockRepo:  stockRepo,
		brokerRepo: brokerRepo,
		txRepo:     txRepo,
		volumeRepo: volumeRepo,
		txManager:  txManager,
		location:   location,
	}
}

// Execute 執行記錄交易
func (uc *RecordTradeUseCaseImpl) Execute(cmd RecordTradeCommand) (*RecordTradeResult, error) {
	// Step 1: 建立所有記錄（驗證在保存前完成）
	s, err := stock.NewStock(cmd.Stock.StockID, cmd.Stock.StockCode, cmd.Stock.StockName, cmd.Stock.Symbol)
	if err != nil {
		return nil, err
	}
	b, err := stock.NewBroker(cmd.Broker.BrokerID, cmd.Broker.BrokerCode, cmd.Broker.BrokerName)
	if err != nil {
		return nil, err
	}

	txID := strings.TrimSpace(cmd.TransactionID)
	if txID == "" {
		txID = shared.GenerateID(shared.DefaultIDSize)
	}
	date := cmd.Date
	if date.IsZero() {
		date = stock.MarketToday(uc.location)
	} else {
		date = shared.TruncateToDate(date.In(uc.location))
	}

	tx, err := stock.NewStockTransaction(cmd.ExchangeID, txID, s, b)
	if err != nil {
		return nil, err
	}
	buy, err := stock.NewBuyVolume(s.StockID(), txID, date, cmd.Buy)
	if err != nil {
		return nil, err
	}
	sell, err := stock.NewSellVolume(s.StockID(), txID, date, cmd.Sell)
	if err != nil {
		return nil, err
	}
	net, err := stock.ComputeNetVolume(buy, sell)
	if err != nil {
		return nil, err
	}

	// Step 2: 在同一事務中保存
	reuseBroker := strings.TrimSpace(cmd.Broker.BrokerID) == ""
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		if reuseBroker {
			if err := uc.adoptExistingBroker(ctx, b, tx); err != nil {
				return err
			}
		}
		if err := uc.stockRepo.Save(ctx, s); err != nil {
			return err
		}
		if err := uc.brokerRepo.Save(ctx, b); err != nil {
			return err
		}
		if err := uc.txRepo.Save(ctx, tx); err != nil {
			return err
		}
		if err := uc.volumeRepo.SaveBuy(ctx, buy); err != nil {
			return err
		}
		if err := uc.volumeRepo.SaveSell(ctx, sell); err != nil {
			return err
		}
		return uc.volumeRepo.SaveNet(ctx, net)
	})
	if err != nil {
		return nil, fmt.Errorf("record trade %s: %w", txID, err)
	}

	slog.Info("Trade recorded",
		"transactionID", txID,
		"stockID", s.StockID(),
		"brokerCode", b.BrokerCode(),
		"netVolume", net.Totals().NetVolume)

	return &RecordTradeResult{
		TransactionID: txID,
		BrokerID:      b.BrokerID(),
		Date:          net.Date(),
		Net:           net.Totals(),
	}, nil
}

// adoptExistingBroker 以券商代碼查找既有記錄，找到時沿用其 ID
func (uc *RecordTradeUseCaseImpl) adoptExistingBroker(ctx shared.TransactionContext, b *stock.Broker, tx *stock.StockTransaction) error {
	existing, err := uc.brokerRepo.FindByBrokerCode(ctx, b.BrokerCode())
	if errors.Is(err, stock.ErrBrokerNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := b.SetBrokerID(existing.BrokerID()); err != nil {
		return err
	}
	return tx.SetBroker(b)
}
