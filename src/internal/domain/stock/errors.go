package stock

import "github.com/jackyeh168/pinoydesk/src/internal/domain/shared"

// ===========================
// Stock Domain 錯誤定義
// ===========================

const (
	ErrCodeStockNotFound       shared.ErrorCode = "STOCK_NOT_FOUND"
	ErrCodeBrokerNotFound      shared.ErrorCode = "BROKER_NOT_FOUND"
	ErrCodeTransactionNotFound shared.ErrorCode = "TRANSACTION_NOT_FOUND"
	ErrCodeVolumeNotFound      shared.ErrorCode = "VOLUME_NOT_FOUND"
	ErrCodeVolumeMismatch      shared.ErrorCode = "VOLUME_MISMATCH"
)

var (
	// ErrStockNotFound 股票不存在
	ErrStockNotFound = &shared.DomainError{
		Code:    ErrCodeStockNotFound,
		Message: "股票不存在",
	}

	// ErrBrokerNotFound 券商不存在
	ErrBrokerNotFound = &shared.DomainError{
		Code:    ErrCodeBrokerNotFound,
		Message: "券商不存在",
	}

	// ErrTransactionNotFound 交易記錄不存在
	ErrTransactionNotFound = &shared.DomainError{
		Code:    ErrCodeTransactionNotFound,
		Message: "交易記錄不存在",
	}

	// ErrVolumeNotFound 成交量記錄不存在
	ErrVolumeNotFound = &shared.DomainError{
		Code:    ErrCodeVolumeNotFound,
		Message: "成交量記錄不存在",
	}

	// ErrVolumeMismatch 買賣成交量無法配對
	//
	// 觸發條件：
	// - stock_id 不同
	// - transaction_id 不同
	ErrVolumeMismatch = &shared.DomainError{
		Code:    ErrCodeVolumeMismatch,
		Message: "買進與賣出成交量不屬於同一筆交易",
	}
)
