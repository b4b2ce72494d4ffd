package membership

import (
	"log/slog"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
)

// requireAbsent 將存在性結果轉換為錯誤
//
// - Found → conflict
// - Indeterminate → shared.ErrStoreUnavailable（不可當作不存在）
// - NotFound → nil
func requireAbsent(result shared.Existence, err error, conflict *shared.DomainError, keyValues ...interface{}) error {
	if err != nil {
		return err
	}
	switch {
	case result.IsFound():
		return conflict.WithContext(keyValues...)
	case result.IsIndeterminate():
		return unavailable(result, keyValues...)
	}
	return nil
}

// requirePresent 與 requireAbsent 相反：NotFound → missing
func requirePresent(result shared.Existence, err error, missing *shared.DomainError, keyValues ...interface{}) error {
	if err != nil {
		return err
	}
	switch {
	case result.IsNotFound():
		return missing.WithContext(keyValues...)
	case result.IsIndeterminate():
		return unavailable(result, keyValues...)
	}
	return nil
}

func unavailable(result shared.Existence, keyValues ...interface{}) error {
	kv := append([]interface{}{"fault", string(result.Fault())}, keyValues...)
	return shared.ErrStoreUnavailable.WithContext(kv...)
}

// publishEvents 在事務提交後發布聚合事件
//
// 發布失敗只記錄警告，已提交的寫入不回滾
func publishEvents(publisher shared.EventPublisher, events []shared.DomainEvent) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.PublishBatch(events); err != nil {
		slog.Warn("Failed to publish domain events", "count", len(events), "error", err)
	}
}
