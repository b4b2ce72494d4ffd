package events

import (
	"log/slog"
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
)

// ===========================
// SlogEventPublisher
// ===========================

// SlogEventPublisher 以結構化日誌發布領域事件
//
// 設計原則：
// - 實作 shared.EventPublisher 接口
// - 每個事件寫一筆 Info 日誌（event_type、event_id、aggregate_id、occurred_at）
// - 不保存事件，也不做重送
type SlogEventPublisher struct {
	logger *slog.Logger
}

// NewSlogEventPublisher 創建事件發布器
//
// logger 為 nil 時使用 slog.Default()
func NewSlogEventPublisher(logger *slog.Logger) *SlogEventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogEventPublisher{logger: logger}
}

// Publish 發布單一事件
func (p *SlogEventPublisher) Publish(event shared.DomainEvent) error {
	if event == nil {
		return nil
	}
	p.logger.Info("Domain event",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"aggregate_id", event.AggregateID(),
		"occurred_at", event.OccurredAt().UTC().Format(time.RFC3339Nano),
	)
	return nil
}

// PublishBatch 依序發布多個事件
func (p *SlogEventPublisher) PublishBatch(events []shared.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(event); err != nil {
			return err
		}
	}
	return nil
}
