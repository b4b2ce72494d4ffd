package metrics

import (
	"strings"
	"testing"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/membership"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExistenceMetrics_CountsOutcomes(t *testing.T) {
	m := NewExistenceMetrics()

	m.ObserveExistence(membership.CheckPlanExists, shared.ExistenceFound())
	m.ObserveExistence(membership.CheckPlanExists, shared.ExistenceFound())
	m.ObserveExistence(membership.CheckPlanExists, shared.ExistenceNotFound())
	m.ObserveExistence(membership.CheckCouponExists, shared.ExistenceIndeterminate(shared.FaultConnectionRefused))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.checks.WithLabelValues(membership.CheckPlanExists, "found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checks.WithLabelValues(membership.CheckPlanExists, "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checks.WithLabelValues(membership.CheckCouponExists, "indeterminate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.faults.WithLabelValues(membership.CheckCouponExists, "connection_refused")))
}

func TestExistenceMetrics_RegistryExposition(t *testing.T) {
	m := NewExistenceMetrics()
	m.ObserveExistence(membership.CheckPlanNameExists, shared.ExistenceNotFound())

	expected := `
# HELP pinoydesk_existence_checks_total Existence checks by check name and outcome.
# TYPE pinoydesk_existence_checks_total counter
pinoydesk_existence_checks_total{check="plan_name_exists",outcome="not_found"} 1
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "pinoydesk_existence_checks_total")

	require.NoError(t, err)
}

func TestExistenceMetrics_AsCheckerObserver(t *testing.T) {
	m := NewExistenceMetrics()
	checker := membership.NewExistenceChecker(nil, nil, nil).WithObserver(m)

	// 無效輸入不查詢資料庫，但仍記錄結果
	_, err := checker.PlanExists(nil, "   ")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.checks.WithLabelValues(membership.CheckPlanExists, "not_found")))
}
