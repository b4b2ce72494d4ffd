package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"go.mongodb.org/mongo-driver/mongo"
)

// transientTransactionLabel 伺服器標記的可重試事務錯誤
const transientTransactionLabel = "TransientTransactionError"

// labeledError mongo 錯誤共用的標籤介面
type labeledError interface {
	HasErrorLabel(label string) bool
}

// faultKindOf 分類 mongo 錯誤
//
// - 逾時（含 MaxTimeMSExpired）→ retry_exhausted
// - 網路錯誤 → connection_refused
// - context 取消、TransientTransactionError → aborted
func faultKindOf(err error) (shared.FaultKind, bool) {
	if err == nil {
		return "", false
	}
	if errors.Is(err, context.Canceled) {
		return shared.FaultAborted, true
	}
	if mongo.IsTimeout(err) {
		return shared.FaultRetryExhausted, true
	}
	if mongo.IsNetworkError(err) {
		return shared.FaultConnectionRefused, true
	}
	var labeled labeledError
	if errors.As(err, &labeled) && labeled.HasErrorLabel(transientTransactionLabel) {
		return shared.FaultAborted, true
	}
	return "", false
}

// mapError 文件資料庫錯誤轉換
//
// - 暫時性故障 → *shared.StoreFault
// - mongo.ErrNoDocuments → notFound（可為 nil）
// - 其他 → shared.ErrRepositoryError（保留原始錯誤）
func mapError(err error, op string, notFound *shared.DomainError) error {
	if err == nil {
		return nil
	}
	if kind, ok := faultKindOf(err); ok {
		return shared.NewStoreFault(kind, err)
	}
	if notFound != nil && errors.Is(err, mongo.ErrNoDocuments) {
		return notFound
	}
	return fmt.Errorf("%w: %w", shared.ErrRepositoryError.WithContext("op", op), err)
}
