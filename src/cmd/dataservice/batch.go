package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	appmembership "github.com/jackyeh168/pinoydesk/src/internal/application/membership"
	appstock "github.com/jackyeh168/pinoydesk/src/internal/application/stock"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/stock"
)

// ===========================
// 批次匯入格式
// ===========================

type batchFile struct {
	Plans         []planRow         `json:"plans"`
	Coupons       []couponRow       `json:"coupons"`
	Invalidate    []string          `json:"invalidate_coupons"`
	Subscriptions []subscriptionRow `json:"subscriptions"`
	AccessRights  []accessRightsRow `json:"access_rights"`
	Trades        []tradeRow        `json:"trades"`
}

type planRow struct {
	PlanID             string `json:"plan_id"`
	PlanName           string `json:"plan_name"`
	Description        string `json:"description"`
	ScheduleDay        int    `json:"schedule_day"`
	ScheduleTerm       string `json:"schedule_term"`
	TermPaymentAmount  string `json:"term_payment_amount"`
	RegistrationAmount string `json:"registration_amount"`
	Currency           string `json:"currency"`
	IsActive           bool   `json:"is_active"`
}

type couponRow struct {
	Code           string `json:"code"`
	Discount       int    `json:"discount"`
	ExpirationTime int64  `json:"expiration_time"`
}

type subscriptionRow struct {
	UID           string `json:"uid"`
	PlanID        string `json:"plan_id"`
	Status        string `json:"status"`
	PlanStartDate string `json:"plan_start_date"` // YYYY-MM-DD
}

type accessRightsRow struct {
	PlanID string   `json:"plan_id"`
	Grant  []string `json:"grant"`
	Revoke []string `json:"revoke"`
}

type tradeRow struct {
	ExchangeID    string     `json:"exchange_id"`
	TransactionID string     `json:"transaction_id"`
	Date          string     `json:"date"` // YYYY-MM-DD，空白為今天
	StockID       string     `json:"stock_id"`
	StockCode     string     `json:"stock_code"`
	StockName     string     `json:"stock_name"`
	Symbol        string     `json:"symbol"`
	BrokerID      string     `json:"broker_id"`
	BrokerCode    string     `json:"broker_code"`
	BrokerName    string     `json:"broker_name"`
	Buy           metricsRow `json:"buy"`
	Sell          metricsRow `json:"sell"`
}

type metricsRow struct {
	Volume           int64 `json:"volume"`
	Value            int64 `json:"value"`
	AvePrice         int64 `json:"ave_price"`
	MarketValPercent int64 `json:"market_val_percent"`
	TradeCount       int64 `json:"trade_count"`
}

func (m metricsRow) toDomain() stock.Metrics {
	return stock.Metrics{
		Volume:           m.Volume,
		Value:            m.Value,
		AvePrice:         m.AvePrice,
		MarketValPercent: m.MarketValPercent,
		TradeCount:       m.TradeCount,
	}
}

// importFile 讀取並匯入批次檔
func (s services) importFile(path string, loc *time.Location) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read batch %s: %w", path, err)
	}
	var batch batchFile
	if err := json.Unmarshal(data, &batch); err != nil {
		return fmt.Errorf("decode batch %s: %w", path, err)
	}
	return s.importBatch(batch, loc)
}

// importBatch 依序匯入：方案 → 優惠碼 → 作廢優惠碼 → 訂閱 → 權限 → 交易
//
// 任一筆失敗即停止，已匯入的資料保留
func (s services) importBatch(batch batchFile, loc *time.Location) error {
	for _, row := range batch.Plans {
		if _, err := s.createPlan.Execute(appmembership.CreatePlanCommand{
			PlanID:             row.PlanID,
			PlanName:           row.PlanName,
			Description:        row.Description,
			ScheduleDay:        row.ScheduleDay,
			ScheduleTerm:       row.ScheduleTerm,
			TermPaymentAmount:  row.TermPaymentAmount,
			RegistrationAmount: row.RegistrationAmount,
			Currency:           row.Currency,
			IsActive:           row.IsActive,
		}); err != nil {
			return err
		}
	}

	for _, row := range batch.Coupons {
		if _, err := s.createCoupon.Execute(appmembership.CreateCouponCommand{
			Code:           row.Code,
			Discount:       row.Discount,
			ExpirationTime: row.ExpirationTime,
		}); err != nil {
			return err
		}
	}

	for _, code := range batch.Invalidate {
		if err := s.invalidate.Execute(code); err != nil {
			return err
		}
	}

	for _, row := range batch.Subscriptions {
		start, err := parseDay(row.PlanStartDate, loc)
		if err != nil {
			return fmt.Errorf("subscription %s: %w", row.UID, err)
		}
		if _, err := s.subscribe.Execute(appmembership.SubscribeCommand{
			UID:           row.UID,
			PlanID:        row.PlanID,
			Status:        row.Status,
			PlanStartDate: start,
		}); err != nil {
			return err
		}
	}

	for _, row := range batch.AccessRights {
		if _, err := s.grantAccess.Execute(appmembership.GrantAccessCommand{
			PlanID: row.PlanID,
			Grant:  row.Grant,
			Revoke: row.Revoke,
		}); err != nil {
			return err
		}
	}

	for _, row := range batch.Trades {
		date, err := parseDay(row.Date, loc)
		if err != nil {
			return fmt.Errorf("trade %s: %w", row.TransactionID, err)
		}
		if _, err := s.recordTrade.Execute(appstock.RecordTradeCommand{
			ExchangeID:    row.ExchangeID,
			TransactionID: row.TransactionID,
			Date:          date,
			Stock: appstock.StockInput{
				StockID:   row.StockID,
				StockCode: row.StockCode,
				StockName: row.StockName,
				Symbol:    row.Symbol,
			},
			Broker: appstock.BrokerInput{
				BrokerID:   row.BrokerID,
				BrokerCode: row.BrokerCode,
				BrokerName: row.BrokerName,
			},
			Buy:  row.Buy.toDomain(),
			Sell: row.Sell.toDomain(),
		}); err != nil {
			return err
		}
	}

	slog.Info("Batch imported",
		"plans", len(batch.Plans),
		"coupons", len(batch.Coupons),
		"invalidated", len(batch.Invalidate),
		"subscriptions", len(batch.Subscriptions),
		"access_rights", len(batch.AccessRights),
		"trades", len(batch.Trades),
	)
	return nil
}

// parseDay 空字串返回零值
func parseDay(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(time.DateOnly, value, loc)
}
