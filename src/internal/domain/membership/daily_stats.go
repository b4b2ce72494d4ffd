package membership

import (
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/field"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
)

// ===========================
// MembershipDailyStats Entity
// ===========================

// Earnings 每日統計中的五項金額
type Earnings struct {
	ExpectedMonthly   shared.Money
	ExpectedQuarterly shared.Money
	ExpectedAnnual    shared.Money
	ExpectedThisMonth shared.Money
	TotalEarnedSoFar  shared.Money
}

// MembershipDailyStats 付費會員每日統計
//
// 以 dailyID（YYYYMMDD）為鍵，每日由批次任務重算一次
type MembershipDailyStats struct {
	dailyID      DailyID
	totalUsers   int64
	totalMembers int64
	earnings     Earnings
}

// NewMembershipDailyStats 建立每日統計
func NewMembershipDailyStats(dailyID string, totalUsers, totalMembers int64, earnings Earnings) (*MembershipDailyStats, error) {
	id, err := DailyIDFromString(dailyID)
	if err != nil {
		return nil, err
	}
	s := &MembershipDailyStats{dailyID: id}
	if s.totalUsers, err = field.NonNegativeInt("total_users", totalUsers); err != nil {
		return nil, err
	}
	if s.totalMembers, err = field.NonNegativeInt("total_members", totalMembers); err != nil {
		return nil, err
	}
	if err := s.SetEarnings(earnings); err != nil {
		return nil, err
	}
	return s, nil
}

// SetEarnings 設定五項金額（每項都必須是已設定幣別的 Money）
func (s *MembershipDailyStats) SetEarnings(e Earnings) error {
	checks := []struct {
		name  string
		value shared.Money
	}{
		{"expected_monthly_earnings", e.ExpectedMonthly},
		{"expected_quarterly_earnings", e.ExpectedQuarterly},
		{"expected_annual_earnings", e.ExpectedAnnual},
		{"expected_earnings_this_month", e.ExpectedThisMonth},
		{"total_earned_so_far", e.TotalEarnedSoFar},
	}
	for _, c := range checks {
		if _, err := field.Amount(c.name, c.value); err != nil {
			return err
		}
	}
	s.earnings = e
	return nil
}

func (s *MembershipDailyStats) DailyID() DailyID    { return s.dailyID }
func (s *MembershipDailyStats) TotalUsers() int64   { return s.totalUsers }
func (s *MembershipDailyStats) TotalMembers() int64 { return s.totalMembers }
func (s *MembershipDailyStats) Earnings() Earnings  { return s.earnings }

// ===========================
// Daily Stats Calculation (Domain Service)
// ===========================

// StatsCalculator 由訂閱與方案計算每日統計
//
// 計算規則：
// - totalUsers：出現過的不同 uid 數
// - totalMembers：已付款的訂閱數
// - expected monthly/quarterly/annual：已付款訂閱依方案週期加總每期金額
// - expected this month：本月需扣款的每期金額
// - total earned so far：註冊費 + 每期金額 × 已到期期數
//
// 找不到方案的訂閱會被略過
type StatsCalculator struct {
	currency string
}

// NewStatsCalculator 建立計算器（所有金額以 currency 加總）
func NewStatsCalculator(currency string) *StatsCalculator {
	return &StatsCalculator{currency: currency}
}

// Compute 計算 day 當日的統計
func (c *StatsCalculator) Compute(day time.Time, memberships []*Membership, plans []*MembershipPlan) (*MembershipDailyStats, error) {
	byID := make(map[string]*MembershipPlan, len(plans))
	for _, p := range plans {
		byID[p.PlanID().String()] = p
	}

	zero := shared.ZeroMoney(c.currency)
	e := Earnings{
		ExpectedMonthly:   zero,
		ExpectedQuarterly: zero,
		ExpectedAnnual:    zero,
		ExpectedThisMonth: zero,
		TotalEarnedSoFar:  zero,
	}

	users := make(map[string]struct{})
	var paid int64
	var err error

	for _, m := range memberships {
		users[m.UID().String()] = struct{}{}
		if !m.IsPaid() {
			continue
		}
		plan, ok := byID[m.PlanID().String()]
		if !ok {
			continue
		}
		paid++

		term := plan.TermPaymentAmount()
		switch plan.ScheduleTerm() {
		case field.TermMonthly:
			e.ExpectedMonthly, err = e.ExpectedMonthly.Add(term)
		case field.TermQuarterly:
			e.ExpectedQuarterly, err = e.ExpectedQuarterly.Add(term)
		case field.TermAnnually:
			e.ExpectedAnnual, err = e.ExpectedAnnual.Add(term)
		}
		if err != nil {
			return nil, err
		}

		start := m.PlanStartDate()
		if plan.BillsInMonth(start, day) {
			if e.ExpectedThisMonth, err = e.ExpectedThisMonth.Add(term); err != nil {
				return nil, err
			}
		}

		if cycles := plan.BillingCycles(start, day); cycles > 0 {
			earned, err := term.Times(cycles).Add(plan.RegistrationAmount())
			if err != nil {
				return nil, err
			}
			if e.TotalEarnedSoFar, err = e.TotalEarnedSoFar.Add(earned); err != nil {
				return nil, err
			}
		}
	}

	return NewMembershipDailyStats(DailyIDFor(day).String(), int64(len(users)), paid, e)
}
