package docstore

import (
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/membership"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 集合名稱
const (
	PlanCollection   = "membership_plans"
	CouponCollection = "coupons"
)

// planDocument 會員方案文件（_id 為 plan_id）
type planDocument struct {
	PlanID               string               `bson:"_id"`
	PlanName             string               `bson:"plan_name"`
	Description          string               `bson:"description"`
	TotalMembers         int64                `bson:"total_members"`
	ScheduleDay          int                  `bson:"schedule_day"`
	ScheduleTerm         string               `bson:"schedule_term"`
	TermPaymentAmount    primitive.Decimal128 `bson:"term_payment_amount"`
	TermCurrency         string               `bson:"term_currency"`
	RegistrationAmount   primitive.Decimal128 `bson:"registration_amount"`
	RegistrationCurrency string               `bson:"registration_currency"`
	IsActive             bool                 `bson:"is_active"`
	DateCreated          time.Time            `bson:"date_created"`
}

// couponDocument 優惠碼文件（_id 為 code，區分大小寫）
type couponDocument struct {
	Code           string    `bson:"_id"`
	Discount       int       `bson:"discount"`
	IsValid        bool      `bson:"is_valid"`
	DateCreated    time.Time `bson:"date_created"`
	ExpirationTime int64     `bson:"expiration_time"`
}

func toDecimal128(m shared.Money) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(m.Amount().String())
}

func fromDecimal128(d primitive.Decimal128, currency string) (shared.Money, error) {
	amount, err := decimal.NewFromString(d.String())
	if err != nil {
		return shared.Money{}, err
	}
	return shared.NewMoney(amount, currency)
}

func toPlanDocument(p *membership.MembershipPlan) (*planDocument, error) {
	term, err := toDecimal128(p.TermPaymentAmount())
	if err != nil {
		return nil, err
	}
	registration, err := toDecimal128(p.RegistrationAmount())
	if err != nil {
		return nil, err
	}
	return &planDocument{
		PlanID:               p.PlanID().String(),
		PlanName:             p.PlanName(),
		Description:          p.Description(),
		TotalMembers:         p.TotalMembers(),
		ScheduleDay:          p.ScheduleDay(),
		ScheduleTerm:         p.ScheduleTerm(),
		TermPaymentAmount:    term,
		TermCurrency:         p.TermPaymentAmount().Currency(),
		RegistrationAmount:   registration,
		RegistrationCurrency: p.RegistrationAmount().Currency(),
		IsActive:             p.IsActive(),
		DateCreated:          p.DateCreated(),
	}, nil
}

func (d *planDocument) toDomain() (*membership.MembershipPlan, error) {
	term, err := fromDecimal128(d.TermPaymentAmount, d.TermCurrency)
	if err != nil {
		return nil, err
	}
	registration, err := fromDecimal128(d.RegistrationAmount, d.RegistrationCurrency)
	if err != nil {
		return nil, err
	}
	return membership.ReconstructMembershipPlan(membership.PlanParams{
		PlanID:             d.PlanID,
		PlanName:           d.PlanName,
		Description:        d.Description,
		ScheduleDay:        d.ScheduleDay,
		ScheduleTerm:       d.ScheduleTerm,
		TermPaymentAmount:  term,
		RegistrationAmount: registration,
		IsActive:           d.IsActive,
	}, d.TotalMembers, d.DateCreated)
}

func toCouponDocument(c *membership.Coupon) *couponDocument {
	return &couponDocument{
		Code:           c.Code(),
		Discount:       c.Discount(),
		IsValid:        c.IsValid(),
		DateCreated:    c.DateCreated(),
		ExpirationTime: c.ExpirationTime(),
	}
}

func (d *couponDocument) toDomain() (*membership.Coupon, error) {
	return membership.ReconstructCoupon(d.Code, d.Discount, d.IsValid, d.DateCreated, d.ExpirationTime)
}
