package field

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
)

// ===========================
// 欄位驗證函數
// ===========================
//
// 每個驗證函數的簽名為 validate(name, raw) -> (normalized, error)
//
// 規則：
// 1. 純函數：不做 I/O、不記錄日誌，可在多個 goroutine 同時呼叫
// 2. raw 為 interface{}：代表尚未驗證的邊界輸入（JSON、文件資料庫、表單）
// 3. 正規化順序固定：trim → 空值檢查 → 轉小寫 → 業務規則檢查
// 4. 冪等：驗證通過的值再次驗證，結果不變
//
// 錯誤類型：
// - ErrValueRequired：nil 或空字串
// - ErrTypeMismatch：類型不符
// - ErrValueOutOfRange：類型正確但不符合業務規則

// MaxIDLength ID 最大長度
const MaxIDLength = shared.MaxIDLength

// 狀態與週期的允許值
const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"

	TermMonthly   = "monthly"
	TermQuarterly = "quarterly"
	TermAnnually  = "annually"
)

// 扣款日範圍（每月 1-5 日）
const (
	MinScheduleDay = 1
	MaxScheduleDay = 5
)

var (
	allowedStatuses = map[string]struct{}{StatusPaid: {}, StatusUnpaid: {}}
	allowedTerms    = map[string]struct{}{TermMonthly: {}, TermQuarterly: {}, TermAnnually: {}}
)

// ID 驗證識別碼
//
// 驗證規則：
// 1. 必須是字串
// 2. trim 後不能為空
// 3. 長度不能超過 64
func ID(name string, raw interface{}) (string, error) {
	value, err := String(name, raw)
	if err != nil {
		return "", err
	}
	if len(value) > MaxIDLength {
		return "", outOfRange(name, value, fmt.Sprintf("length must be <= %d", MaxIDLength))
	}
	return value, nil
}

// ExactID 驗證原樣保存的識別碼（不 trim、不轉大小寫）
//
// 使用場景：優惠碼等必須精確比對的欄位
// 只含空白的值視為空值
func ExactID(name string, raw interface{}) (string, error) {
	s, ok, isNil := asString(raw)
	if isNil {
		return "", required(name)
	}
	if !ok {
		return "", mismatch(name, raw, "string")
	}
	if strings.TrimSpace(s) == "" {
		return "", required(name)
	}
	if len(s) > MaxIDLength {
		return "", outOfRange(name, s, fmt.Sprintf("length must be <= %d", MaxIDLength))
	}
	return s, nil
}

// String 驗證必填字串，返回 trim 後的值
func String(name string, raw interface{}) (string, error) {
	s, ok, isNil := asString(raw)
	if isNil {
		return "", required(name)
	}
	if !ok {
		return "", mismatch(name, raw, "string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", required(name)
	}
	return s, nil
}

// LowerString 驗證必填字串，返回 trim 並轉小寫後的值
//
// 使用場景：plan_name、stock_name 等需要不分大小寫比對的欄位
func LowerString(name string, raw interface{}) (string, error) {
	s, err := String(name, raw)
	if err != nil {
		return "", err
	}
	return strings.ToLower(s), nil
}

// Status 驗證付款狀態（paid / unpaid）
func Status(name string, raw interface{}) (string, error) {
	s, err := LowerString(name, raw)
	if err != nil {
		return "", err
	}
	if _, ok := allowedStatuses[s]; !ok {
		return "", outOfRange(name, s, "must be one of paid, unpaid")
	}
	return s, nil
}

// ScheduleTerm 驗證扣款週期（monthly / quarterly / annually）
func ScheduleTerm(name string, raw interface{}) (string, error) {
	s, err := LowerString(name, raw)
	if err != nil {
		return "", err
	}
	if _, ok := allowedTerms[s]; !ok {
		return "", outOfRange(name, s, "must be one of monthly, quarterly, annually")
	}
	return s, nil
}

// ScheduleDay 驗證扣款日（1-5）
func ScheduleDay(name string, raw interface{}) (int, error) {
	n, err := Int(name, raw)
	if err != nil {
		return 0, err
	}
	if n < MinScheduleDay || n > MaxScheduleDay {
		return 0, outOfRange(name, n, "must be between 1 and 5")
	}
	return int(n), nil
}

// NonNegativeInt 驗證非負整數
func NonNegativeInt(name string, raw interface{}) (int64, error) {
	n, err := Int(name, raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, outOfRange(name, n, "must not be negative")
	}
	return n, nil
}

// Percent 驗證百分比（0-100，含邊界）
func Percent(name string, raw interface{}) (int, error) {
	n, err := Int(name, raw)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 100 {
		return 0, outOfRange(name, n, "must be between 0 and 100")
	}
	return int(n), nil
}

// Int 驗證整數
//
// 接受：Go 整數類型、整數形式的 json.Number
// 拒絕：浮點數、布林、字串
func Int(name string, raw interface{}) (int64, error) {
	if isNilValue(raw) {
		return 0, required(name)
	}
	n, ok := asInt64(raw)
	if !ok {
		return 0, mismatch(name, raw, "integer")
	}
	return n, nil
}

// Bool 驗證布林值
func Bool(name string, raw interface{}) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case *bool:
		if v != nil {
			return *v, nil
		}
	}
	return false, mismatch(name, raw, "bool")
}

// DateTime 驗證時間（非零值）
func DateTime(name string, raw interface{}) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, required(name)
		}
		return v, nil
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, required(name)
		}
		return *v, nil
	case nil:
		return time.Time{}, required(name)
	}
	return time.Time{}, mismatch(name, raw, "time")
}

// Date 驗證日期，截斷到當日 00:00（保留時區）
func Date(name string, raw interface{}) (time.Time, error) {
	t, err := DateTime(name, raw)
	if err != nil {
		return time.Time{}, err
	}
	return shared.TruncateToDate(t), nil
}

// ===========================
// 類型轉換輔助函數
// ===========================

// asString 返回 (值, 是否為字串, 是否為 nil)
func asString(raw interface{}) (string, bool, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false, true
	case string:
		return v, true, false
	case *string:
		if v == nil {
			return "", false, true
		}
		return *v, true, false
	default:
		return "", false, false
	}
}

func asInt64(raw interface{}) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return uintToInt64(uint64(v))
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return uintToInt64(v)
	case *int:
		return int64(*v), true
	case *int64:
		return *v, true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

func uintToInt64(v uint64) (int64, bool) {
	if v > math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}

func isNilValue(raw interface{}) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case *int:
		return v == nil
	case *int64:
		return v == nil
	}
	return false
}

func typeName(raw interface{}) string {
	if raw == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", raw)
}
