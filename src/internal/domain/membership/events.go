package membership

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
)

// 事件類型
const (
	EventPlanCreated          = "membership.plan_created"
	EventMembershipSubscribed = "membership.subscribed"
	EventCouponCreated        = "membership.coupon_created"
	EventCouponInvalidated    = "membership.coupon_invalidated"
)

// ===========================
// 事件基礎欄位
// ===========================

type eventBase struct {
	eventID     string
	eventType   string
	aggregateID string
	occurredAt  time.Time
}

func newEventBase(eventType, aggregateID string, now time.Time) eventBase {
	return eventBase{
		eventID:     uuid.New().String(),
		eventType:   eventType,
		aggregateID: aggregateID,
		occurredAt:  now,
	}
}

// EventID 實現 DomainEvent 介面
func (e eventBase) EventID() string { return e.eventID }

// EventType 實現 DomainEvent 介面
func (e eventBase) EventType() string { return e.eventType }

// OccurredAt 實現 DomainEvent 介面
func (e eventBase) OccurredAt() time.Time { return e.occurredAt }

// AggregateID 實現 DomainEvent 介面
func (e eventBase) AggregateID() string { return e.aggregateID }

// eventRecorder 聚合根的待發布事件列表
type eventRecorder struct {
	events []shared.DomainEvent
}

func (r *eventRecorder) addEvent(event shared.DomainEvent) {
	r.events = append(r.events, event)
}

// PullEvents 獲取所有待發布事件並清空列表
//
// Repository.Save() 成功後由 Application Layer 呼叫並交給 EventPublisher
func (r *eventRecorder) PullEvents() []shared.DomainEvent {
	events := r.events
	r.events = nil
	return events
}

// ===========================
// MembershipPlan 事件
// ===========================

// PlanCreatedEvent 方案建立事件
type PlanCreatedEvent struct {
	eventBase
	planName string
}

// PlanName 方案名稱（已正規化）
func (e *PlanCreatedEvent) PlanName() string { return e.planName }

// ===========================
// Membership 事件
// ===========================

// MembershipSubscribedEvent 使用者訂閱方案事件
//
// AggregateID 為 uid
type MembershipSubscribedEvent struct {
	eventBase
	planID PlanID
	status string
}

// PlanID 訂閱的方案
func (e *MembershipSubscribedEvent) PlanID() PlanID { return e.planID }

// Status 訂閱時的付款狀態
func (e *MembershipSubscribedEvent) Status() string { return e.status }

// ===========================
// Coupon 事件
// ===========================

// CouponCreatedEvent 優惠碼建立事件
type CouponCreatedEvent struct {
	eventBase
	discount       int
	expirationTime int64
}

// Discount 折扣百分比
func (e *CouponCreatedEvent) Discount() int { return e.discount }

// ExpirationTime 到期時間（Unix 毫秒）
func (e *CouponCreatedEvent) ExpirationTime() int64 { return e.expirationTime }

// CouponInvalidatedEvent 優惠碼作廢事件
type CouponInvalidatedEvent struct {
	eventBase
}
