package shared

import "time"

// Clock 時間來源介面（方便測試固定時間）
type Clock interface {
	Now() time.Time
}

// SystemClock 系統時鐘
type SystemClock struct{}

// Now 返回目前時間
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock 固定時間（測試用）
type FixedClock struct {
	At time.Time
}

// Now 返回固定時間
func (c FixedClock) Now() time.Time {
	return c.At
}

// millisPerDay 一天的毫秒數
const millisPerDay int64 = 24 * 60 * 60 * 1000

// TimestampMillis 將時間轉換為資料庫使用的整數時間戳（Unix 毫秒）
func TimestampMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// DaysToMillis 將天數轉換為資料庫整數時間單位
func DaysToMillis(days int) int64 {
	return int64(days) * millisPerDay
}

// TruncateToDate 截斷為當地日期的 00:00
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
