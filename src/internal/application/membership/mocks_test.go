package membership

import (
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/membership"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// ===========================
// Mocks
// ===========================

// MockPlanRepository mock implementation of PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Save(ctx shared.TransactionContext, plan *membership.MembershipPlan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *MockPlanRepository) FindByPlanID(ctx shared.TransactionContext, planID membership.PlanID) (*membership.MembershipPlan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.MembershipPlan), args.Error(1)
}

func (m *MockPlanRepository) FindAll(ctx shared.TransactionContext) ([]*membership.MembershipPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*membership.MembershipPlan), args.Error(1)
}

func (m *MockPlanRepository) ExistsByPlanID(ctx shared.TransactionContext, planID membership.PlanID) (bool, error) {
	args := m.Called(ctx, planID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlanRepository) ExistsByPlanName(ctx shared.TransactionContext, planName string) (bool, error) {
	args := m.Called(ctx, planName)
	return args.Bool(0), args.Error(1)
}

// MockCouponRepository mock implementation of CouponRepository
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) Save(ctx shared.TransactionContext, coupon *membership.Coupon) error {
	return m.Called(ctx, coupon).Error(0)
}

func (m *MockCouponRepository) FindByCode(ctx shared.TransactionContext, code string) (*membership.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.Coupon), args.Error(1)
}

func (m *MockCouponRepository) ExistsByCode(ctx shared.TransactionContext, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockMembershipRepository mock implementation of MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Save(ctx shared.TransactionContext, ms *membership.Membership) error {
	return m.Called(ctx, ms).Error(0)
}

func (m *MockMembershipRepository) FindByUIDAndPlanID(ctx shared.TransactionContext, uid membership.UID, planID membership.PlanID) (*membership.Membership, error) {
	args := m.Called(ctx, uid, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.Membership), args.Error(1)
}

func (m *MockMembershipRepository) FindByUID(ctx shared.TransactionContext, uid membership.UID) ([]*membership.Membership, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*membership.Membership), args.Error(1)
}

func (m *MockMembershipRepository) FindAll(ctx shared.TransactionContext) ([]*membership.Membership, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*membership.Membership), args.Error(1)
}

func (m *MockMembershipRepository) ExistsByUIDAndPlanID(ctx shared.TransactionContext, uid membership.UID, planID membership.PlanID) (bool, error) {
	args := m.Called(ctx, uid, planID)
	return args.Bool(0), args.Error(1)
}

// MockDailyStatsRepository mock implementation of DailyStatsRepository
type MockDailyStatsRepository struct {
	mock.Mock
}

func (m *MockDailyStatsRepository) Save(ctx shared.TransactionContext, stats *membership.MembershipDailyStats) error {
	return m.Called(ctx, stats).Error(0)
}

func (m *MockDailyStatsRepository) FindByDailyID(ctx shared.TransactionContext, dailyID membership.DailyID) (*membership.MembershipDailyStats, error) {
	args := m.Called(ctx, dailyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.MembershipDailyStats), args.Error(1)
}

// MockAccessRightsRepository mock implementation of AccessRightsRepository
type MockAccessRightsRepository struct {
	mock.Mock
}

func (m *MockAccessRightsRepository) Save(ctx shared.TransactionContext, rights *membership.AccessRights) error {
	return m.Called(ctx, rights).Error(0)
}

func (m *MockAccessRightsRepository) FindByPlanID(ctx shared.TransactionContext, planID membership.PlanID) (*membership.AccessRights, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.AccessRights), args.Error(1)
}

// RecordingEventPublisher 記錄所有發布的事件
type RecordingEventPublisher struct {
	Events []shared.DomainEvent
	Err    error
}

func (p *RecordingEventPublisher) Publish(event shared.DomainEvent) error {
	return p.PublishBatch([]shared.DomainEvent{event})
}

func (p *RecordingEventPublisher) PublishBatch(events []shared.DomainEvent) error {
	p.Events = append(p.Events, events...)
	return p.Err
}

func (p *RecordingEventPublisher) Types() []string {
	types := make([]string, 0, len(p.Events))
	for _, e := range p.Events {
		types = append(types, e.EventType())
	}
	return types
}

// MockTransactionManager mock implementation of TransactionManager
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	// Directly execute the function with nil context (for unit tests)
	return fn(nil)
}

var testNow = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

func newTestChecker(plans membership.PlanRepository, coupons membership.CouponRepository) *membership.ExistenceChecker {
	return membership.NewExistenceChecker(plans, coupons, shared.FixedClock{At: testNow})
}
