package membership

import (
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/field"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
)

// DefaultCouponLifetimeDays 優惠碼預設有效天數
const DefaultCouponLifetimeDays = 30

// ===========================
// Coupon Entity
// ===========================

// Coupon 結帳時套用在註冊費上的優惠碼
//
// 業務規則：
// 1. code 原樣保存（不 trim、不轉大小寫），精確比對
// 2. discount 在 0-100 之間（百分比）
// 3. expirationTime 為 Unix 毫秒，未指定時預設為建立時間 + 30 天
//
// 相等性：只比較 code
type Coupon struct {
	code           string
	discount       int
	isValid        bool
	dateCreated    time.Time
	expirationTime int64

	eventRecorder
}

// NewCoupon 以系統時間創建優惠碼
func NewCoupon(code string, discount int, expirationTime int64) (*Coupon, error) {
	return NewCouponAt(code, discount, expirationTime, shared.SystemClock{}.Now())
}

// NewCouponAt 創建優惠碼
//
// expirationTime 為 0 時使用 now + 預設有效期；產生 CouponCreatedEvent
func NewCouponAt(code string, discount int, expirationTime int64, now time.Time) (*Coupon, error) {
	c, err := field.ExactID("code", code)
	if err != nil {
		return nil, err
	}

	coupon := &Coupon{
		code:        c,
		isValid:     true,
		dateCreated: now,
	}
	if err := coupon.SetDiscount(discount); err != nil {
		return nil, err
	}
	if expirationTime == 0 {
		expirationTime = shared.TimestampMillis(now) + shared.DaysToMillis(DefaultCouponLifetimeDays)
	}
	if err := coupon.SetExpirationTime(expirationTime); err != nil {
		return nil, err
	}
	coupon.addEvent(&CouponCreatedEvent{
		eventBase:      newEventBase(EventCouponCreated, c, now),
		discount:       coupon.discount,
		expirationTime: coupon.expirationTime,
	})
	return coupon, nil
}

// ReconstructCoupon 重建優惠碼（用於從資料庫載入）
func ReconstructCoupon(code string, discount int, isValid bool, dateCreated time.Time, expirationTime int64) (*Coupon, error) {
	c, err := field.ExactID("code", code)
	if err != nil {
		return nil, err
	}
	coupon := &Coupon{
		code:        c,
		isValid:     isValid,
		dateCreated: dateCreated,
	}
	if err := coupon.SetDiscount(discount); err != nil {
		return nil, err
	}
	if err := coupon.SetExpirationTime(expirationTime); err != nil {
		return nil, err
	}
	return coupon, nil
}

// SetDiscount 設定折扣百分比
func (c *Coupon) SetDiscount(discount int) error {
	v, err := field.Percent("discount", discount)
	if err != nil {
		return err
	}
	c.discount = v
	return nil
}

// SetExpirationTime 設定到期時間（Unix 毫秒）
func (c *Coupon) SetExpirationTime(expirationTime int64) error {
	v, err := field.NonNegativeInt("expiration_time", expirationTime)
	if err != nil {
		return err
	}
	c.expirationTime = v
	return nil
}

// Invalidate 作廢優惠碼
//
// 已作廢時不重複產生事件，返回是否有狀態變更
func (c *Coupon) Invalidate(now time.Time) bool {
	if !c.isValid {
		return false
	}
	c.isValid = false
	c.addEvent(&CouponInvalidatedEvent{
		eventBase: newEventBase(EventCouponInvalidated, c.code, now),
	})
	return true
}

// IsExpired 是否已過期
func (c *Coupon) IsExpired(now time.Time) bool {
	return shared.TimestampMillis(now) >= c.expirationTime
}

// Usable 未作廢且未過期
func (c *Coupon) Usable(now time.Time) bool {
	return c.isValid && !c.IsExpired(now)
}

// Apply 對金額套用折扣
//
// 錯誤處理：
// - 優惠碼已作廢或已過期 → ErrCouponNotUsable
func (c *Coupon) Apply(amount shared.Money, now time.Time) (shared.Money, error) {
	if !c.Usable(now) {
		return shared.Money{}, ErrCouponNotUsable.WithContext("code", c.code)
	}
	return amount.Sub(amount.Percent(c.discount))
}

// Equals 以 code 比較（區分大小寫）
func (c *Coupon) Equals(other *Coupon) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.code == other.code
}

// ===========================
// Getters
// ===========================

func (c *Coupon) Code() string           { return c.code }
func (c *Coupon) Discount() int          { return c.discount }
func (c *Coupon) IsValid() bool          { return c.isValid }
func (c *Coupon) DateCreated() time.Time { return c.dateCreated }
func (c *Coupon) ExpirationTime() int64  { return c.expirationTime }

// ExpiresAt 到期時間
func (c *Coupon) ExpiresAt() time.Time {
	return time.UnixMilli(c.expirationTime)
}
