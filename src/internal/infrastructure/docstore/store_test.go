package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/membership"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// ===========================
// Document Store Tests (mtest mock deployment)
// ===========================

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func countResponse(mt *mtest.T, n int32) bson.D {
	if n == 0 {
		return mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch)
	}
	return mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: n}})
}

func mustDecimal(t *testing.T, s string) primitive.Decimal128 {
	d, err := primitive.ParseDecimal128(s)
	require.NoError(t, err)
	return d
}

func TestPlanStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ensure indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		store := NewPlanStore(mt.Coll, time.Second)

		err := store.EnsureIndexes(context.Background())

		require.NoError(mt, err)
	})

	mt.Run("exists by id found", func(mt *mtest.T) {
		mt.AddMockResponses(countResponse(mt, 1))
		store := NewPlanStore(mt.Coll, time.Second)

		found, err := store.ExistsByPlanID(nil, membership.NewPlanID())

		require.NoError(mt, err)
		assert.True(mt, found)
	})

	mt.Run("exists by name not found", func(mt *mtest.T) {
		mt.AddMockResponses(countResponse(mt, 0))
		store := NewPlanStore(mt.Coll, time.Second)

		found, err := store.ExistsByPlanName(nil, "gold tier")

		require.NoError(mt, err)
		assert.False(mt, found)
	})

	mt.Run("find by id decodes document", func(mt *mtest.T) {
		created := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "plan-gold"},
			{Key: "plan_name", Value: "gold tier"},
			{Key: "description", Value: "Daily picks"},
			{Key: "total_members", Value: int64(7)},
			{Key: "schedule_day", Value: 2},
			{Key: "schedule_term", Value: "monthly"},
			{Key: "term_payment_amount", Value: mustDecimal(mt.T, "499.00")},
			{Key: "term_currency", Value: "PHP"},
			{Key: "registration_amount", Value: mustDecimal(mt.T, "100")},
			{Key: "registration_currency", Value: "PHP"},
			{Key: "is_active", Value: true},
			{Key: "date_created", Value: created},
		}))
		store := NewPlanStore(mt.Coll, time.Second)
		id, err := membership.PlanIDFromString("plan-gold")
		require.NoError(mt, err)

		plan, err := store.FindByPlanID(nil, id)

		require.NoError(mt, err)
		assert.Equal(mt, "gold tier", plan.PlanName())
		assert.Equal(mt, int64(7), plan.TotalMembers())
		assert.True(mt, plan.TermPaymentAmount().Equals(shared.MustMoney("499", "PHP")))
		assert.True(mt, plan.DateCreated().Equal(created))
	})

	mt.Run("find by id missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))
		store := NewPlanStore(mt.Coll, time.Second)

		_, err := store.FindByPlanID(nil, membership.NewPlanID())

		assert.ErrorIs(mt, err, membership.ErrPlanNotFound)
	})

	mt.Run("save upserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}))
		store := NewPlanStore(mt.Coll, time.Second)
		plan, err := membership.NewMembershipPlan(membership.PlanParams{
			PlanName:           "Silver",
			Description:        "Weekly report",
			ScheduleDay:        1,
			ScheduleTerm:       "annually",
			TermPaymentAmount:  shared.MustMoney("4999", "PHP"),
			RegistrationAmount: shared.ZeroMoney("PHP"),
		})
		require.NoError(mt, err)

		err = store.Save(nil, plan)

		require.NoError(mt, err)
	})

	mt.Run("transient transaction error is a store fault", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    251,
			Name:    "NoSuchTransaction",
			Message: "transaction aborted",
			Labels:  []string{"TransientTransactionError"},
		}))
		checker := membership.NewExistenceChecker(NewPlanStore(mt.Coll, time.Second), nil, nil)

		result, err := checker.PlanExists(nil, "plan-gold")

		require.NoError(mt, err)
		assert.True(mt, result.IsIndeterminate())
		assert.Equal(mt, shared.FaultAborted, result.Fault())
	})

	mt.Run("command error is returned", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))
		checker := membership.NewExistenceChecker(NewPlanStore(mt.Coll, time.Second), nil, nil)

		_, err := checker.PlanNameExists(nil, "Gold")

		require.Error(mt, err)
		assert.ErrorIs(mt, err, shared.ErrRepositoryError)
	})
}

func TestCouponStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("exists", func(mt *mtest.T) {
		mt.AddMockResponses(countResponse(mt, 1))
		checker := membership.NewExistenceChecker(nil, NewCouponStore(mt.Coll, time.Second), nil)

		result, err := checker.CouponExists(nil, "SAVE10")

		require.NoError(mt, err)
		assert.True(mt, result.IsFound())
	})

	mt.Run("find by code", func(mt *mtest.T) {
		created := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "SAVE10"},
			{Key: "discount", Value: 10},
			{Key: "is_valid", Value: true},
			{Key: "date_created", Value: created},
			{Key: "expiration_time", Value: int64(1893456000000)},
		}))
		store := NewCouponStore(mt.Coll, time.Second)

		coupon, err := store.FindByCode(nil, "SAVE10")

		require.NoError(mt, err)
		assert.Equal(mt, "SAVE10", coupon.Code())
		assert.Equal(mt, 10, coupon.Discount())
		assert.Equal(mt, int64(1893456000000), coupon.ExpirationTime())
	})

	mt.Run("save", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		coupon, err := membership.NewCoupon("WELCOME", 25, 0)
		require.NoError(mt, err)

		assert.NoError(mt, NewCouponStore(mt.Coll, time.Second).Save(nil, coupon))
	})
}

func TestFaultKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want shared.FaultKind
		ok   bool
	}{
		{"network error", mongo.CommandError{Labels: []string{"NetworkError"}}, shared.FaultConnectionRefused, true},
		{"max time expired", mongo.CommandError{Code: 50, Name: "MaxTimeMSExpired"}, shared.FaultRetryExhausted, true},
		{"deadline", context.DeadlineExceeded, shared.FaultRetryExhausted, true},
		{"canceled", context.Canceled, shared.FaultAborted, true},
		{"transient label", mongo.CommandError{Code: 251, Labels: []string{"TransientTransactionError"}}, shared.FaultAborted, true},
		{"no documents", mongo.ErrNoDocuments, "", false},
		{"plain", errors.New("bad filter"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := faultKindOf(tt.err)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, kind)
		})
	}
}
