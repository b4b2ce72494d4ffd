package shared

import (
	"strings"

	"github.com/google/uuid"
)

// ===========================
// EntityID[T] 泛型實體 ID
// ===========================

// DefaultIDSize 預設產生的 ID 長度
const DefaultIDSize = 12

// MaxIDLength ID 最大長度（與 field.ID 驗證規則一致）
const MaxIDLength = 64

// EntityID 是一個泛型實體 ID 值對象
//
// 設計原則：
// 1. 類型安全：不同實體的 ID 不能混用（PlanID ≠ StockID）
// 2. 不可變性（unexported field）
// 3. 字串型 ID：可由呼叫端指定，也可由系統產生
//
// 驗證責任：
// - shared 不依賴 field 包，避免循環依賴
// - 各業務包先用 field.ID 驗證，再呼叫 NewEntityID 包裝
//
// 使用範例：
//
//	type PlanMarker struct{}
//	type PlanID = shared.EntityID[PlanMarker]
//
//	value, err := field.ID("plan_id", raw)
//	id := shared.NewEntityID[PlanMarker](value)
type EntityID[T any] struct {
	value string
}

// NewEntityID 包裝已驗證的 ID 字串（Unchecked Constructor）
//
// 前提條件：value 已經過 field.ID 驗證（已 trim、非空、長度 <= 64）
func NewEntityID[T any](value string) EntityID[T] {
	return EntityID[T]{value: value}
}

// GenerateEntityID 產生新的隨機實體 ID
func GenerateEntityID[T any](size int) EntityID[T] {
	return EntityID[T]{value: GenerateID(size)}
}

// String 轉換為字串表示
func (e EntityID[T]) String() string {
	return e.value
}

// Equals 比較兩個 EntityID 是否相等
//
// 注意：只能比較相同類型的 ID
func (e EntityID[T]) Equals(other EntityID[T]) bool {
	return e.value == other.value
}

// IsEmpty 判斷是否為空 ID（零值）
func (e EntityID[T]) IsEmpty() bool {
	return e.value == ""
}

// ===========================
// ID 產生器
// ===========================

// GenerateID 產生指定長度的隨機 ID
//
// 實作：串接 UUID v4 的十六進位字元（去除連字號）直到達到長度
// - size <= 0 使用 DefaultIDSize
// - size > MaxIDLength 截斷為 MaxIDLength
func GenerateID(size int) string {
	if size <= 0 {
		size = DefaultIDSize
	}
	if size > MaxIDLength {
		size = MaxIDLength
	}

	var b strings.Builder
	b.Grow(size + 32)
	for b.Len() < size {
		b.WriteString(strings.ReplaceAll(uuid.NewString(), "-", ""))
	}
	return b.String()[:size]
}
