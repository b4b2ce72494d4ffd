package membership

import (
	"log/slog"
	"strings"
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/field"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
)

// 存在性檢查名稱（日誌與指標標籤）
const (
	CheckPlanExists     = "plan_exists"
	CheckPlanNameExists = "plan_name_exists"
	CheckCouponExists   = "coupon_exists"
)

// ExistenceObserver 接收每次存在性查詢的結果
type ExistenceObserver interface {
	ObserveExistence(check string, result shared.Existence)
}

// ===========================
// ExistenceChecker Domain Service
// ===========================

// ExistenceChecker 存在性與有效性檢查
//
// 行為約定：
// 1. 輸入類型錯誤或 trim 後為空 → NotFound，不查詢資料庫
// 2. 查詢成功 → Found / NotFound
// 3. 暫時性故障（*shared.StoreFault）→ Indeterminate(kind)，不返回錯誤
// 4. 其他錯誤照常返回
//
// 每次呼叫都會查詢資料庫，不做快取
type ExistenceChecker struct {
	plans    PlanRepository
	coupons  CouponRepository
	clock    shared.Clock
	observer ExistenceObserver
}

// NewExistenceChecker 建立檢查器
func NewExistenceChecker(plans PlanRepository, coupons CouponRepository, clock shared.Clock) *ExistenceChecker {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &ExistenceChecker{plans: plans, coupons: coupons, clock: clock}
}

// WithObserver 設定結果觀察者（例如 Prometheus 計數器）
func (c *ExistenceChecker) WithObserver(observer ExistenceObserver) *ExistenceChecker {
	c.observer = observer
	return c
}

// PlanExists 方案 ID 是否存在
func (c *ExistenceChecker) PlanExists(ctx shared.TransactionContext, raw interface{}) (shared.Existence, error) {
	planID, ok := preValidate(raw, false)
	if !ok {
		return c.record(CheckPlanExists, shared.ExistenceNotFound()), nil
	}
	id, err := PlanIDFromString(planID)
	if err != nil {
		// 超過長度的 ID 不可能存在於資料庫
		return c.record(CheckPlanExists, shared.ExistenceNotFound()), nil
	}
	found, err := c.plans.ExistsByPlanID(ctx, id)
	return c.classify(CheckPlanExists, planID, found, err)
}

// PlanNameExists 方案名稱是否存在（trim + 小寫後比對）
func (c *ExistenceChecker) PlanNameExists(ctx shared.TransactionContext, raw interface{}) (shared.Existence, error) {
	name, ok := preValidate(raw, true)
	if !ok {
		return c.record(CheckPlanNameExists, shared.ExistenceNotFound()), nil
	}
	found, err := c.plans.ExistsByPlanName(ctx, name)
	return c.classify(CheckPlanNameExists, name, found, err)
}

// CouponExists 優惠碼是否存在
//
// 精確比對：不 trim、不轉大小寫，原樣傳給倉儲。
// 非字串或空字串 → NotFound；超過長度的 code 不可能存在 → NotFound
func (c *ExistenceChecker) CouponExists(ctx shared.TransactionContext, raw interface{}) (shared.Existence, error) {
	code, ok := exactString(raw)
	if !ok || len(code) > field.MaxIDLength {
		return c.record(CheckCouponExists, shared.ExistenceNotFound()), nil
	}
	found, err := c.coupons.ExistsByCode(ctx, code)
	return c.classify(CheckCouponExists, code, found, err)
}

// ExpirationValid 到期時間（Unix 毫秒）是否至少在一天之後
func (c *ExistenceChecker) ExpirationValid(raw interface{}) bool {
	v, err := field.Int("expiration_time", raw)
	if err != nil {
		return false
	}
	minimum := shared.TimestampMillis(c.clock.Now()) + shared.DaysToMillis(1)
	return v >= minimum
}

// DiscountValid 折扣是否在 0-100 之間（含邊界）
func (c *ExistenceChecker) DiscountValid(raw interface{}) bool {
	_, err := field.Percent("discount", raw)
	return err == nil
}

// StartDateValid 開始日期是否晚於今天（以日期比較）
func (c *ExistenceChecker) StartDateValid(raw interface{}) bool {
	var start time.Time
	switch v := raw.(type) {
	case time.Time:
		start = v
	case *time.Time:
		if v == nil {
			return false
		}
		start = *v
	default:
		return false
	}
	if start.IsZero() {
		return false
	}
	now := c.clock.Now().In(start.Location())
	return shared.TruncateToDate(start).After(shared.TruncateToDate(now))
}

func (c *ExistenceChecker) classify(check, key string, found bool, err error) (shared.Existence, error) {
	if err != nil {
		fault, ok := shared.AsStoreFault(err)
		if !ok {
			return shared.Existence{}, err
		}
		slog.Warn("Existence check could not reach the store",
			"check", check, "key", key, "fault", fault.Kind, "error", fault.Err)
		return c.record(check, shared.ExistenceIndeterminate(fault.Kind)), nil
	}
	return c.record(check, shared.ExistenceOf(found)), nil
}

func (c *ExistenceChecker) record(check string, result shared.Existence) shared.Existence {
	if c.observer != nil {
		c.observer.ObserveExistence(check, result)
	}
	return result
}

// Now 返回檢查器使用的目前時間（建立實體時與有效性檢查共用）
func (c *ExistenceChecker) Now() time.Time {
	return c.clock.Now()
}

// exactString 只接受非空字串，不做任何正規化
func exactString(raw interface{}) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, v != ""
	case *string:
		if v == nil {
			return "", false
		}
		return *v, *v != ""
	}
	return "", false
}

// preValidate 只接受字串，trim（可選轉小寫）後不可為空
func preValidate(raw interface{}, lower bool) (string, bool) {
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return "", false
		}
		s = *v
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	if lower {
		s = strings.ToLower(s)
	}
	return s, s != ""
}
