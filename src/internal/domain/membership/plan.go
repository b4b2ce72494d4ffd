package membership

import (
	"fmt"
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/field"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
)

// ===========================
// MembershipPlan Aggregate Root
// ===========================

// PlanParams 建立方案的輸入
//
// PlanID 為空時自動生成
type PlanParams struct {
	PlanID             string
	PlanName           string
	Description        string
	ScheduleDay        int
	ScheduleTerm       string
	TermPaymentAmount  shared.Money
	RegistrationAmount shared.Money
	IsActive           bool
}

// MembershipPlan 會員方案聚合根
//
// 不變量（Invariants）：
// 1. planName 已 trim 並轉小寫（唯一性比對使用正規化值）
// 2. totalMembers >= 0
// 3. scheduleDay 在 1-5 之間（每月扣款日）
// 4. scheduleTerm 只能是 monthly / quarterly / annually
// 5. 兩個金額欄位都必須是已設定幣別的 Money
//
// 相等性：只比較 planID
type MembershipPlan struct {
	planID             PlanID
	planName           string
	description        string
	totalMembers       int64
	scheduleDay        int
	scheduleTerm       string
	termPaymentAmount  shared.Money
	registrationAmount shared.Money
	isActive           bool
	dateCreated        time.Time

	eventRecorder
}

// NewMembershipPlan 以系統時間創建會員方案
func NewMembershipPlan(p PlanParams) (*MembershipPlan, error) {
	return NewMembershipPlanAt(p, shared.SystemClock{}.Now())
}

// NewMembershipPlanAt 創建會員方案（Checked Constructor）
//
// 依序套用每個欄位的驗證，任一失敗即返回錯誤。
// dateCreated 為 now 的日期，並產生 PlanCreatedEvent
func NewMembershipPlanAt(p PlanParams, now time.Time) (*MembershipPlan, error) {
	var planID PlanID
	if p.PlanID == "" {
		planID = NewPlanID()
	} else {
		id, err := PlanIDFromString(p.PlanID)
		if err != nil {
			return nil, err
		}
		planID = id
	}

	plan := &MembershipPlan{
		planID:      planID,
		isActive:    p.IsActive,
		dateCreated: shared.TruncateToDate(now),
	}
	if err := plan.apply(p); err != nil {
		return nil, err
	}
	plan.addEvent(&PlanCreatedEvent{
		eventBase: newEventBase(EventPlanCreated, planID.String(), now),
		planName:  plan.planName,
	})
	return plan, nil
}

// ReconstructMembershipPlan 重建會員方案（用於從資料庫載入）
func ReconstructMembershipPlan(p PlanParams, totalMembers int64, dateCreated time.Time) (*MembershipPlan, error) {
	planID, err := PlanIDFromString(p.PlanID)
	if err != nil {
		return nil, err
	}
	plan := &MembershipPlan{
		planID:      planID,
		isActive:    p.IsActive,
		dateCreated: dateCreated,
	}
	if err := plan.apply(p); err != nil {
		return nil, err
	}
	if err := plan.SetTotalMembers(totalMembers); err != nil {
		return nil, err
	}
	return plan, nil
}

func (p *MembershipPlan) apply(params PlanParams) error {
	steps := []func() error{
		func() error { return p.SetPlanName(params.PlanName) },
		func() error { return p.SetDescription(params.Description) },
		func() error { return p.SetScheduleDay(params.ScheduleDay) },
		func() error { return p.SetScheduleTerm(params.ScheduleTerm) },
		func() error { return p.SetTermPaymentAmount(params.TermPaymentAmount) },
		func() error { return p.SetRegistrationAmount(params.RegistrationAmount) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// ===========================
// Setters（每次賦值都會驗證）
// ===========================

// SetPlanName 設定方案名稱（trim + 小寫）
func (p *MembershipPlan) SetPlanName(name string) error {
	v, err := field.LowerString("plan_name", name)
	if err != nil {
		return err
	}
	p.planName = v
	return nil
}

// SetDescription 設定方案說明
func (p *MembershipPlan) SetDescription(description string) error {
	v, err := field.String("description", description)
	if err != nil {
		return err
	}
	p.description = v
	return nil
}

// SetTotalMembers 設定會員人數
func (p *MembershipPlan) SetTotalMembers(total int64) error {
	v, err := field.NonNegativeInt("total_members", total)
	if err != nil {
		return err
	}
	p.totalMembers = v
	return nil
}

// SetScheduleDay 設定每月扣款日（1-5）
func (p *MembershipPlan) SetScheduleDay(day int) error {
	v, err := field.ScheduleDay("schedule_day", day)
	if err != nil {
		return err
	}
	p.scheduleDay = v
	return nil
}

// SetScheduleTerm 設定扣款週期
func (p *MembershipPlan) SetScheduleTerm(term string) error {
	v, err := field.ScheduleTerm("schedule_term", term)
	if err != nil {
		return err
	}
	p.scheduleTerm = v
	return nil
}

// SetTermPaymentAmount 設定每期金額
func (p *MembershipPlan) SetTermPaymentAmount(amount shared.Money) error {
	v, err := field.Amount("term_payment_amount", amount)
	if err != nil {
		return err
	}
	p.termPaymentAmount = v
	return nil
}

// SetRegistrationAmount 設定註冊費
func (p *MembershipPlan) SetRegistrationAmount(amount shared.Money) error {
	v, err := field.Amount("registration_amount", amount)
	if err != nil {
		return err
	}
	p.registrationAmount = v
	return nil
}

// ===========================
// Behavior Methods
// ===========================

// AddMember 會員人數 +1
func (p *MembershipPlan) AddMember() {
	p.totalMembers++
}

// RemoveMember 會員人數 -1（最低為 0）
func (p *MembershipPlan) RemoveMember() {
	if p.totalMembers > 0 {
		p.totalMembers--
	}
}

// Activate 啟用方案
func (p *MembershipPlan) Activate() {
	p.isActive = true
}

// Deactivate 停用方案（既有訂閱不受影響，但不可再訂閱）
func (p *MembershipPlan) Deactivate() {
	p.isActive = false
}

// TermMonths 每期的月數
func (p *MembershipPlan) TermMonths() int {
	switch p.scheduleTerm {
	case field.TermQuarterly:
		return 3
	case field.TermAnnually:
		return 12
	default:
		return 1
	}
}

// BillingCycles 計算從 start 到 asOf（含）已到期的期數
//
// 開始月份算第一期，之後每 TermMonths 個月一期
func (p *MembershipPlan) BillingCycles(start, asOf time.Time) int64 {
	if asOf.Before(start) {
		return 0
	}
	months := monthsBetween(start, asOf)
	return int64(months/p.TermMonths()) + 1
}

// BillsInMonth 判斷方案是否在 month 所屬月份扣款
func (p *MembershipPlan) BillsInMonth(start, month time.Time) bool {
	m := monthsBetween(start, month)
	return m >= 0 && m%p.TermMonths() == 0
}

// Equals 以 planID 比較
func (p *MembershipPlan) Equals(other *MembershipPlan) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.planID.Equals(other.planID)
}

// Params 匯出目前欄位（供倉儲與重建使用）
func (p *MembershipPlan) Params() PlanParams {
	return PlanParams{
		PlanID:             p.planID.String(),
		PlanName:           p.planName,
		Description:        p.description,
		ScheduleDay:        p.scheduleDay,
		ScheduleTerm:       p.scheduleTerm,
		TermPaymentAmount:  p.termPaymentAmount,
		RegistrationAmount: p.registrationAmount,
		IsActive:           p.isActive,
	}
}

// ===========================
// Getters
// ===========================

func (p *MembershipPlan) PlanID() PlanID                   { return p.planID }
func (p *MembershipPlan) PlanName() string                 { return p.planName }
func (p *MembershipPlan) Description() string              { return p.description }
func (p *MembershipPlan) TotalMembers() int64              { return p.totalMembers }
func (p *MembershipPlan) ScheduleDay() int                 { return p.scheduleDay }
func (p *MembershipPlan) ScheduleTerm() string             { return p.scheduleTerm }
func (p *MembershipPlan) TermPaymentAmount() shared.Money  { return p.termPaymentAmount }
func (p *MembershipPlan) RegistrationAmount() shared.Money { return p.registrationAmount }
func (p *MembershipPlan) IsActive() bool                   { return p.isActive }
func (p *MembershipPlan) DateCreated() time.Time           { return p.dateCreated }

// String 返回可讀的摘要
func (p *MembershipPlan) String() string {
	return fmt.Sprintf("<MembershipPlan %s name=%q members=%d day=%d term=%s>",
		p.planID, p.planName, p.totalMembers, p.scheduleDay, p.scheduleTerm)
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
