package membership

import (
	"testing"
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/field"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// Coupon Tests
// ===========================

// Test 1: Default expiration is 30 days after creation
func TestNewCoupon_DefaultExpiration(t *testing.T) {
	// Act
	coupon, err := NewCoupon("WELCOME10", 10, 0)

	// Assert
	require.NoError(t, err)
	want := shared.TimestampMillis(coupon.DateCreated()) + shared.DaysToMillis(DefaultCouponLifetimeDays)
	assert.Equal(t, want, coupon.ExpirationTime())
	assert.True(t, coupon.IsValid())
	assert.False(t, coupon.IsExpired(time.Now()))
}

// Test 2: Code is stored verbatim, whitespace and case included
func TestNewCoupon_CodeKeepsCase(t *testing.T) {
	coupon, err := NewCoupon("Summer25", 25, 0)
	require.NoError(t, err)

	upper, err := NewCoupon("SUMMER25", 25, 0)
	require.NoError(t, err)

	padded, err := NewCoupon(" Summer25 ", 25, 0)
	require.NoError(t, err)

	assert.Equal(t, "Summer25", coupon.Code())
	assert.Equal(t, " Summer25 ", padded.Code())
	assert.False(t, coupon.Equals(upper), "codes differing by case are distinct")
	assert.False(t, coupon.Equals(padded), "codes differing by whitespace are distinct")

	_, err = NewCoupon("   ", 25, 0)
	assert.ErrorIs(t, err, field.ErrValueRequired)
}

// Test 3: Discount bounds are inclusive
func TestNewCoupon_DiscountBounds(t *testing.T) {
	for _, d := range []int{0, 100} {
		_, err := NewCoupon("EDGE", d, 0)
		assert.NoError(t, err, "discount %d", d)
	}
	for _, d := range []int{-1, 101} {
		_, err := NewCoupon("EDGE", d, 0)
		assert.ErrorIs(t, err, field.ErrValueOutOfRange, "discount %d", d)
	}

	_, err := NewCoupon("", 10, 0)
	assert.ErrorIs(t, err, field.ErrValueRequired)
}

// Test 4: Apply subtracts the discount percentage
func TestCoupon_Apply(t *testing.T) {
	now := time.Now()
	coupon, err := NewCoupon("HALF", 50, 0)
	require.NoError(t, err)

	got, err := coupon.Apply(shared.MustMoney("499.00", "PHP"), now)

	require.NoError(t, err)
	assert.True(t, got.Equals(shared.MustMoney("249.50", "PHP")))
}

// Test 5: Invalidated or expired coupons cannot be applied
func TestCoupon_Apply_NotUsable(t *testing.T) {
	now := time.Now()
	fee := shared.MustMoney("100", "PHP")

	invalidated, _ := NewCoupon("VOID", 10, 0)
	invalidated.Invalidate(now)
	_, err := invalidated.Apply(fee, now)
	assert.ErrorIs(t, err, ErrCouponNotUsable)

	expired, _ := NewCoupon("OLD", 10, shared.TimestampMillis(now)-1)
	assert.True(t, expired.IsExpired(now))
	_, err = expired.Apply(fee, now)
	assert.ErrorIs(t, err, ErrCouponNotUsable)
}

// Test 6: Creation and invalidation use the given time and raise events
func TestNewCouponAt_RaisesEvents(t *testing.T) {
	// Arrange
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	// Act
	coupon, err := NewCouponAt("WELCOME", 15, 0, now)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, now, coupon.DateCreated())
	assert.Equal(t, shared.TimestampMillis(now)+shared.DaysToMillis(DefaultCouponLifetimeDays), coupon.ExpirationTime())

	events := coupon.PullEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(*CouponCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, EventCouponCreated, created.EventType())
	assert.Equal(t, "WELCOME", created.AggregateID())
	assert.Equal(t, now, created.OccurredAt())
	assert.Equal(t, 15, created.Discount())
	assert.NotEmpty(t, created.EventID())
	assert.Empty(t, coupon.PullEvents(), "events are pulled once")

	later := now.Add(time.Hour)
	assert.True(t, coupon.Invalidate(later))
	assert.False(t, coupon.Invalidate(later), "second invalidation is a no-op")
	events = coupon.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventCouponInvalidated, events[0].EventType())
	assert.Equal(t, later, events[0].OccurredAt())
}

// Test 7: Reconstructed coupons carry no pending events
func TestReconstructCoupon_NoEvents(t *testing.T) {
	coupon, err := ReconstructCoupon(" Keep ", 5, true, time.Now(), shared.TimestampMillis(time.Now())+1000)

	require.NoError(t, err)
	assert.Equal(t, " Keep ", coupon.Code())
	assert.Empty(t, coupon.PullEvents())
}

// ===========================
// AccessRights Tests
// ===========================

func TestAccessRights_GrantRevoke(t *testing.T) {
	rights, err := NewAccessRights("gold", "/reports", " /alerts ", "/reports")
	require.NoError(t, err)

	assert.Equal(t, []string{"/reports", "/alerts"}, rights.Rights())
	assert.True(t, rights.Allows("/alerts"))

	assert.True(t, rights.Revoke("/reports"))
	assert.False(t, rights.Revoke("/reports"))
	assert.False(t, rights.Allows("/reports"))

	assert.ErrorIs(t, rights.Grant(""), field.ErrValueRequired)
}

func TestAccessRights_Revoke_NormalizesInput(t *testing.T) {
	rights, err := NewAccessRights("gold", "admin", "/reports")
	require.NoError(t, err)

	assert.True(t, rights.Revoke(" admin "))
	assert.False(t, rights.Allows("admin"))
	assert.False(t, rights.Revoke("   "))
	assert.Equal(t, []string{"/reports"}, rights.Rights())
}

func TestAccessRights_RightsReturnsCopy(t *testing.T) {
	rights, _ := NewAccessRights("gold", "/reports")

	list := rights.Rights()
	list[0] = "/admin"

	assert.False(t, rights.Allows("/admin"))
}
