package membership

import (
	"encoding/json"
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/membership"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ===========================
// GORM Models
// ===========================

// MembershipGORM 訂閱記錄資料表
//
// 自然鍵：uid + plan_id
type MembershipGORM struct {
	UID           string         `gorm:"column:uid;type:varchar(64);primaryKey"`
	PlanID        string         `gorm:"column:plan_id;type:varchar(64);primaryKey;index"`
	Status        string         `gorm:"column:status;type:varchar(16);not null"`
	DateCreated   time.Time      `gorm:"column:date_created;not null"`
	PlanStartDate datatypes.Date `gorm:"column:plan_start_date;not null"`
}

// TableName 指定資料表名稱
func (MembershipGORM) TableName() string {
	return "memberships"
}

// MembershipPlanGORM 會員方案資料表
type MembershipPlanGORM struct {
	PlanID               string          `gorm:"column:plan_id;type:varchar(64);primaryKey"`
	PlanName             string          `gorm:"column:plan_name;type:varchar(255);index;not null"`
	Description          string          `gorm:"column:description;type:text"`
	TotalMembers         int64           `gorm:"column:total_members;not null;default:0"`
	ScheduleDay          int             `gorm:"column:schedule_day;not null"`
	ScheduleTerm         string          `gorm:"column:schedule_term;type:varchar(16);not null"`
	TermPaymentAmount    decimal.Decimal `gorm:"column:term_payment_amount;type:decimal(14,2);not null"`
	RegistrationAmount   decimal.Decimal `gorm:"column:registration_amount;type:decimal(14,2);not null"`
	TermCurrency         string          `gorm:"column:term_currency;type:varchar(3);not null"`
	RegistrationCurrency string          `gorm:"column:registration_currency;type:varchar(3);not null"`
	IsActive             bool            `gorm:"column:is_active;not null"`
	DateCreated          datatypes.Date  `gorm:"column:date_created;not null"`
}

// TableName 指定資料表名稱
func (MembershipPlanGORM) TableName() string {
	return "membership_plans"
}

// CouponGORM 優惠碼資料表（code 區分大小寫）
type CouponGORM struct {
	Code           string    `gorm:"column:code;type:varchar(64);primaryKey"`
	Discount       int       `gorm:"column:discount;not null"`
	IsValid        bool      `gorm:"column:is_valid;not null"`
	DateCreated    time.Time `gorm:"column:date_created;not null"`
	ExpirationTime int64     `gorm:"column:expiration_time;not null"`
}

// TableName 指定資料表名稱
func (CouponGORM) TableName() string {
	return "coupons"
}

// AccessRightsGORM 方案權限資料表（權限清單以 JSON 保存）
type AccessRightsGORM struct {
	PlanID string         `gorm:"column:plan_id;type:varchar(64);primaryKey"`
	Rights datatypes.JSON `gorm:"column:rights;not null"`
}

// TableName 指定資料表名稱
func (AccessRightsGORM) TableName() string {
	return "access_rights"
}

// MembershipDailyStatsGORM 每日統計資料表
type MembershipDailyStatsGORM struct {
	DailyID           string          `gorm:"column:daily_id;type:varchar(8);primaryKey"`
	TotalUsers        int64           `gorm:"column:total_users;not null"`
	TotalMembers      int64           `gorm:"column:total_members;not null"`
	Currency          string          `gorm:"column:currency;type:varchar(3);not null"`
	ExpectedMonthly   decimal.Decimal `gorm:"column:expected_monthly;type:decimal(14,2);not null"`
	ExpectedQuarterly decimal.Decimal `gorm:"column:expected_quarterly;type:decimal(14,2);not null"`
	ExpectedAnnual    decimal.Decimal `gorm:"column:expected_annual;type:decimal(14,2);not null"`
	ExpectedThisMonth decimal.Decimal `gorm:"column:expected_this_month;type:decimal(14,2);not null"`
	TotalEarnedSoFar  decimal.Decimal `gorm:"column:total_earned_so_far;type:decimal(14,2);not null"`
}

// TableName 指定資料表名稱
func (MembershipDailyStatsGORM) TableName() string {
	return "membership_daily_stats"
}

// Models 返回需要遷移的資料表
func Models() []interface{} {
	return []interface{}{
		&MembershipGORM{},
		&MembershipPlanGORM{},
		&CouponGORM{},
		&AccessRightsGORM{},
		&MembershipDailyStatsGORM{},
	}
}

// ===========================
// Mapper Functions
// ===========================

func calendarDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func membershipToGORM(m *membership.Membership) *MembershipGORM {
	return &MembershipGORM{
		UID:           m.UID().String(),
		PlanID:        m.PlanID().String(),
		Status:        m.Status(),
		DateCreated:   m.DateCreated(),
		PlanStartDate: calendarDate(m.PlanStartDate()),
	}
}

func (g *MembershipGORM) toDomain() (*membership.Membership, error) {
	uid, err := membership.UIDFromString(g.UID)
	if err != nil {
		return nil, err
	}
	planID, err := membership.PlanIDFromString(g.PlanID)
	if err != nil {
		return nil, err
	}
	return membership.ReconstructMembership(uid, planID, g.Status, g.DateCreated, time.Time(g.PlanStartDate))
}

func planToGORM(p *membership.MembershipPlan) *MembershipPlanGORM {
	return &MembershipPlanGORM{
		PlanID:               p.PlanID().String(),
		PlanName:             p.PlanName(),
		Description:          p.Description(),
		TotalMembers:         p.TotalMembers(),
		ScheduleDay:          p.ScheduleDay(),
		ScheduleTerm:         p.ScheduleTerm(),
		TermPaymentAmount:    p.TermPaymentAmount().Amount(),
		RegistrationAmount:   p.RegistrationAmount().Amount(),
		TermCurrency:         p.TermPaymentAmount().Currency(),
		RegistrationCurrency: p.RegistrationAmount().Currency(),
		IsActive:             p.IsActive(),
		DateCreated:          calendarDate(p.DateCreated()),
	}
}

func (g *MembershipPlanGORM) toDomain() (*membership.MembershipPlan, error) {
	term, err := shared.NewMoney(g.TermPaymentAmount, g.TermCurrency)
	if err != nil {
		return nil, err
	}
	registration, err := shared.NewMoney(g.RegistrationAmount, g.RegistrationCurrency)
	if err != nil {
		return nil, err
	}
	return membership.ReconstructMembershipPlan(membership.PlanParams{
		PlanID:             g.PlanID,
		PlanName:           g.PlanName,
		Description:        g.Description,
		ScheduleDay:        g.ScheduleDay,
		ScheduleTerm:       g.ScheduleTerm,
		TermPaymentAmount:  term,
		RegistrationAmount: registration,
		IsActive:           g.IsActive,
	}, g.TotalMembers, time.Time(g.DateCreated))
}

func couponToGORM(c *membership.Coupon) *CouponGORM {
	return &CouponGORM{
		Code:           c.Code(),
		Discount:       c.Discount(),
		IsValid:        c.IsValid(),
		DateCreated:    c.DateCreated(),
		ExpirationTime: c.ExpirationTime(),
	}
}

func (g *CouponGORM) toDomain() (*membership.Coupon, error) {
	return membership.ReconstructCoupon(g.Code, g.Discount, g.IsValid, g.DateCreated, g.ExpirationTime)
}

func accessRightsToGORM(a *membership.AccessRights) (*AccessRightsGORM, error) {
	raw, err := json.Marshal(a.Rights())
	if err != nil {
		return nil, err
	}
	return &AccessRightsGORM{
		PlanID: a.PlanID().String(),
		Rights: datatypes.JSON(raw),
	}, nil
}

func (g *AccessRightsGORM) toDomain() (*membership.AccessRights, error) {
	var rights []string
	if len(g.Rights) > 0 {
		if err := json.Unmarshal(g.Rights, &rights); err != nil {
			return nil, err
		}
	}
	return membership.NewAccessRights(g.PlanID, rights...)
}

func dailyStatsToGORM(s *membership.MembershipDailyStats) *MembershipDailyStatsGORM {
	e := s.Earnings()
	return &MembershipDailyStatsGORM{
		DailyID:           s.DailyID().String(),
		TotalUsers:        s.TotalUsers(),
		TotalMembers:      s.TotalMembers(),
		Currency:          e.TotalEarnedSoFar.Currency(),
		ExpectedMonthly:   e.ExpectedMonthly.Amount(),
		ExpectedQuarterly: e.ExpectedQuarterly.Amount(),
		ExpectedAnnual:    e.ExpectedAnnual.Amount(),
		ExpectedThisMonth: e.ExpectedThisMonth.Amount(),
		TotalEarnedSoFar:  e.TotalEarnedSoFar.Amount(),
	}
}

func (g *MembershipDailyStatsGORM) toDomain() (*membership.MembershipDailyStats, error) {
	money := func(amount decimal.Decimal) (shared.Money, error) {
		return shared.NewMoney(amount, g.Currency)
	}

	var e membership.Earnings
	var err error
	if e.ExpectedMonthly, err = money(g.ExpectedMonthly); err != nil {
		return nil, err
	}
	if e.ExpectedQuarterly, err = money(g.ExpectedQuarterly); err != nil {
		return nil, err
	}
	if e.ExpectedAnnual, err = money(g.ExpectedAnnual); err != nil {
		return nil, err
	}
	if e.ExpectedThisMonth, err = money(g.ExpectedThisMonth); err != nil {
		return nil, err
	}
	if e.TotalEarnedSoFar, err = money(g.TotalEarnedSoFar); err != nil {
		return nil, err
	}
	return membership.NewMembershipDailyStats(g.DailyID, g.TotalUsers, g.TotalMembers, e)
}
