package membership

import (
	"fmt"
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/field"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
)

// ===========================
// Membership Entity
// ===========================

// Membership 使用者的方案訂閱記錄
//
// 不變量（Invariants）：
// 1. uid、planID 必須有效（1-64 字元，已 trim）
// 2. status 只能是 paid 或 unpaid
// 3. dateCreated 建立後不可變更
//
// 相等性：只比較自然鍵（uid + planID），忽略狀態與日期
//
// planStartDate 必須晚於今天，由呼叫端透過 ExistenceChecker.StartDateValid 檢查
type Membership struct {
	uid           UID
	planID        PlanID
	status        string
	dateCreated   time.Time
	planStartDate time.Time

	eventRecorder
}

// NewMembership 以系統時間創建訂閱記錄
func NewMembership(uid, planID, status string, planStartDate time.Time) (*Membership, error) {
	return NewMembershipAt(uid, planID, status, planStartDate, shared.SystemClock{}.Now())
}

// NewMembershipAt 創建訂閱記錄（Checked Constructor）
//
// 所有欄位驗證都在返回前完成，不會返回部分有效的記錄。
// now 作為 dateCreated，並產生 MembershipSubscribedEvent
func NewMembershipAt(uid, planID, status string, planStartDate, now time.Time) (*Membership, error) {
	u, err := UIDFromString(uid)
	if err != nil {
		return nil, err
	}
	p, err := PlanIDFromString(planID)
	if err != nil {
		return nil, err
	}

	m := &Membership{
		uid:         u,
		planID:      p,
		dateCreated: now,
	}
	if err := m.SetStatus(status); err != nil {
		return nil, err
	}
	if err := m.SetPlanStartDate(planStartDate); err != nil {
		return nil, err
	}
	m.addEvent(&MembershipSubscribedEvent{
		eventBase: newEventBase(EventMembershipSubscribed, u.String(), now),
		planID:    p,
		status:    m.status,
	})
	return m, nil
}

// ReconstructMembership 重建訂閱記錄（用於從資料庫載入）
func ReconstructMembership(
	uid UID,
	planID PlanID,
	status string,
	dateCreated time.Time,
	planStartDate time.Time,
) (*Membership, error) {
	s, err := field.Status("status", status)
	if err != nil {
		return nil, err
	}
	return &Membership{
		uid:           uid,
		planID:        planID,
		status:        s,
		dateCreated:   dateCreated,
		planStartDate: planStartDate,
	}, nil
}

// SetStatus 設定付款狀態（trim + 小寫後必須是 paid / unpaid）
func (m *Membership) SetStatus(status string) error {
	s, err := field.Status("status", status)
	if err != nil {
		return err
	}
	m.status = s
	return nil
}

// SetPlanStartDate 設定方案開始日期（截斷至日期）
func (m *Membership) SetPlanStartDate(start time.Time) error {
	d, err := field.Date("plan_start_date", start)
	if err != nil {
		return err
	}
	m.planStartDate = d
	return nil
}

// MarkPaid 標記為已付款
func (m *Membership) MarkPaid() {
	m.status = field.StatusPaid
}

// IsPaid 是否已付款
func (m *Membership) IsPaid() bool {
	return m.status == field.StatusPaid
}

// Equals 自然鍵相等比較
func (m *Membership) Equals(other *Membership) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.uid.Equals(other.uid) && m.planID.Equals(other.planID)
}

// ===========================
// Getters
// ===========================

func (m *Membership) UID() UID                 { return m.uid }
func (m *Membership) PlanID() PlanID           { return m.planID }
func (m *Membership) Status() string           { return m.status }
func (m *Membership) DateCreated() time.Time   { return m.dateCreated }
func (m *Membership) PlanStartDate() time.Time { return m.planStartDate }

// String 返回可讀的摘要
func (m *Membership) String() string {
	return fmt.Sprintf("<Membership uid=%s plan=%s status=%s start=%s>",
		m.uid, m.planID, m.status, m.planStartDate.Format("2006-01-02"))
}
