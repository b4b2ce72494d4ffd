package membership

import (
	"testing"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/membership"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===========================
// CreateCouponUseCase Tests
// ===========================

func TestCreateCouponUseCase_Execute_Success(t *testing.T) {
	// Arrange
	coupons := new(MockCouponRepository)
	useCase := NewCreateCouponUseCase(coupons, newTestChecker(nil, coupons), new(MockTransactionManager), &RecordingEventPublisher{})

	coupons.On("ExistsByCode", mock.Anything, "Summer25").Return(false, nil)
	coupons.On("Save", mock.Anything, mock.Anything).Return(nil)

	// Act
	result, err := useCase.Execute(CreateCouponCommand{Code: "Summer25", Discount: 25})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Summer25", result.Code)
	assert.Positive(t, result.ExpirationTime)
	coupons.AssertExpectations(t)
}

func TestCreateCouponUseCase_Execute_Duplicate(t *testing.T) {
	coupons := new(MockCouponRepository)
	useCase := NewCreateCouponUseCase(coupons, newTestChecker(nil, coupons), new(MockTransactionManager), &RecordingEventPublisher{})

	coupons.On("ExistsByCode", mock.Anything, mock.Anything).Return(true, nil)

	_, err := useCase.Execute(CreateCouponCommand{Code: "Summer25", Discount: 25})

	assert.ErrorIs(t, err, membership.ErrCouponAlreadyExists)
	coupons.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateCouponUseCase_Execute_Validation(t *testing.T) {
	tomorrow := shared.TimestampMillis(testNow) + shared.DaysToMillis(1)

	tests := []struct {
		name    string
		cmd     CreateCouponCommand
		wantErr error
	}{
		{"discount above 100", CreateCouponCommand{Code: "X", Discount: 101}, membership.ErrInvalidDiscount},
		{"negative discount", CreateCouponCommand{Code: "X", Discount: -5}, membership.ErrInvalidDiscount},
		{"expires too soon", CreateCouponCommand{Code: "X", Discount: 5, ExpirationTime: tomorrow - 1}, membership.ErrInvalidExpiration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupons := new(MockCouponRepository)
			useCase := NewCreateCouponUseCase(coupons, newTestChecker(nil, coupons), new(MockTransactionManager), &RecordingEventPublisher{})

			_, err := useCase.Execute(tt.cmd)

			assert.ErrorIs(t, err, tt.wantErr)
			coupons.AssertNotCalled(t, "ExistsByCode", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateCouponUseCase_Execute_StoreUnavailable(t *testing.T) {
	coupons := new(MockCouponRepository)
	useCase := NewCreateCouponUseCase(coupons, newTestChecker(nil, coupons), new(MockTransactionManager), &RecordingEventPublisher{})

	coupons.On("ExistsByCode", mock.Anything, mock.Anything).
		Return(false, shared.NewStoreFault(shared.FaultAborted, nil))

	_, err := useCase.Execute(CreateCouponCommand{Code: "Summer25", Discount: 25})

	assert.ErrorIs(t, err, shared.ErrStoreUnavailable)
}

func TestCreateCouponUseCase_Execute_DefaultExpiryFromClock(t *testing.T) {
	// Arrange
	coupons := new(MockCouponRepository)
	publisher := &RecordingEventPublisher{}
	useCase := NewCreateCouponUseCase(coupons, newTestChecker(nil, coupons), new(MockTransactionManager), publisher)

	var saved *membership.Coupon
	coupons.On("ExistsByCode", mock.Anything, mock.Anything).Return(false, nil)
	coupons.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*membership.Coupon)
	}).Return(nil)

	// Act
	result, err := useCase.Execute(CreateCouponCommand{Code: "Summer25", Discount: 25})

	// Assert
	require.NoError(t, err)
	want := shared.TimestampMillis(testNow) + shared.DaysToMillis(membership.DefaultCouponLifetimeDays)
	assert.Equal(t, want, result.ExpirationTime)
	require.NotNil(t, saved)
	assert.Equal(t, testNow, saved.DateCreated())

	require.Len(t, publisher.Events, 1)
	event, ok := publisher.Events[0].(*membership.CouponCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, "Summer25", event.AggregateID())
	assert.Equal(t, 25, event.Discount())
	assert.Equal(t, want, event.ExpirationTime())
}

func TestCreateCouponUseCase_Execute_KeepsCodeVerbatim(t *testing.T) {
	coupons := new(MockCouponRepository)
	useCase := NewCreateCouponUseCase(coupons, newTestChecker(nil, coupons), new(MockTransactionManager), &RecordingEventPublisher{})

	coupons.On("ExistsByCode", mock.Anything, " Summer25 ").Return(false, nil)
	coupons.On("Save", mock.Anything, mock.MatchedBy(func(c *membership.Coupon) bool {
		return c.Code() == " Summer25 "
	})).Return(nil)

	result, err := useCase.Execute(CreateCouponCommand{Code: " Summer25 ", Discount: 10})

	require.NoError(t, err)
	assert.Equal(t, " Summer25 ", result.Code)
	coupons.AssertExpectations(t)
	coupons.AssertNotCalled(t, "ExistsByCode", mock.Anything, "Summer25")
}

// ===========================
// InvalidateCouponUseCase Tests
// ===========================

func storedCoupon(t *testing.T, code string, valid bool) *membership.Coupon {
	t.Helper()
	expires := shared.TimestampMillis(testNow) + shared.DaysToMillis(10)
	coupon, err := membership.ReconstructCoupon(code, 15, valid, testNow.AddDate(0, 0, -1), expires)
	require.NoError(t, err)
	return coupon
}

func TestInvalidateCouponUseCase_Execute_Success(t *testing.T) {
	// Arrange
	coupons := new(MockCouponRepository)
	publisher := &RecordingEventPublisher{}
	useCase := NewInvalidateCouponUseCase(coupons, newTestChecker(nil, coupons), new(MockTransactionManager), publisher)
	coupon := storedCoupon(t, "Summer25", true)

	coupons.On("ExistsByCode", mock.Anything, "Summer25").Return(true, nil)
	coupons.On("FindByCode", mock.Anything, "Summer25").Return(coupon, nil)
	coupons.On("Save", mock.Anything, coupon).Return(nil)

	// Act
	err := useCase.Execute("Summer25")

	// Assert
	require.NoError(t, err)
	assert.False(t, coupon.IsValid())
	assert.Equal(t, []string{membership.EventCouponInvalidated}, publisher.Types())
	assert.Equal(t, testNow, publisher.Events[0].OccurredAt())
	coupons.AssertExpectations(t)
}

func TestInvalidateCouponUseCase_Execute_AlreadyInvalid(t *testing.T) {
	coupons := new(MockCouponRepository)
	publisher := &RecordingEventPublisher{}
	useCase := NewInvalidateCouponUseCase(coupons, newTestChecker(nil, coupons), new(MockTransactionManager), publisher)

	coupons.On("ExistsByCode", mock.Anything, "Old").Return(true, nil)
	coupons.On("FindByCode", mock.Anything, "Old").Return(storedCoupon(t, "Old", false), nil)

	err := useCase.Execute("Old")

	require.NoError(t, err)
	assert.Empty(t, publisher.Events)
	coupons.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInvalidateCouponUseCase_Execute_Missing(t *testing.T) {
	coupons := new(MockCouponRepository)
	publisher := &RecordingEventPublisher{}
	useCase := NewInvalidateCouponUseCase(coupons, newTestChecker(nil, coupons), new(MockTransactionManager), publisher)

	coupons.On("ExistsByCode", mock.Anything, " Summer25").Return(false, nil)

	err := useCase.Execute(" Summer25")

	assert.ErrorIs(t, err, membership.ErrCouponNotFound)
	assert.Empty(t, publisher.Events)
	coupons.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything)
}
