package shared

import (
	"fmt"
	"sort"
	"strings"
)

// ===========================
// 共用 Domain 錯誤結構
// ===========================

// ErrorCode 錯誤代碼類型
type ErrorCode string

// DomainError 結構化領域錯誤
//
// 設計原則：
// 1. 使用結構化錯誤（ErrorCode + Message + Context），不使用字串錯誤
// 2. 預定義錯誤為模板，WithContext 返回新實例（不可變性）
// 3. errors.Is 以 Code 比較；Parent 讓細分錯誤同時匹配上層分類
//
// 使用範例：
//
//	return ErrValueRequired.WithContext("field", "plan_id")
type DomainError struct {
	Code    ErrorCode
	Parent  ErrorCode
	Message string
	Context map[string]interface{}
}

// Error 實作 error 介面
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (context: %s)", e.Code, e.Message, formatContext(e.Context))
}

// WithContext 添加上下文信息（返回新的錯誤實例）
func (e *DomainError) WithContext(keyValues ...interface{}) *DomainError {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	ctx := make(map[string]interface{}, len(e.Context)+len(keyValues)/2)
	for k, v := range e.Context {
		ctx[k] = v
	}
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}

	return &DomainError{
		Code:    e.Code,
		Parent:  e.Parent,
		Message: e.Message,
		Context: ctx,
	}
}

// Is 實作 errors.Is 比較
//
// 匹配規則：
// - Code 相同
// - 或目標是本錯誤的上層分類（Parent）
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	if e.Code == t.Code {
		return true
	}
	return e.Parent != "" && e.Parent == t.Code
}

// ContextValue 讀取上下文中的值
func (e *DomainError) ContextValue(key string) (interface{}, bool) {
	v, ok := e.Context[key]
	return v, ok
}

// formatContext 以固定順序輸出上下文（方便比對日誌）
func formatContext(context map[string]interface{}) string {
	keys := make([]string, 0, len(context))
	for k := range context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, context[k]))
	}
	return strings.Join(parts, ", ")
}

// ===========================
// 倉儲共用錯誤
// ===========================

const (
	ErrCodeRepositoryError  ErrorCode = "REPOSITORY_ERROR"
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
)

var (
	// ErrRepositoryError 倉儲操作失敗（非暫時性錯誤）
	ErrRepositoryError = &DomainError{
		Code:    ErrCodeRepositoryError,
		Message: "倉儲操作失敗",
	}

	// ErrStoreUnavailable 資料庫暫時無法判斷結果
	//
	// 觸發條件：
	// - 存在性查詢結果為 Indeterminate（連線被拒、重試耗盡、操作中止）
	//
	// 呼叫端應重試或回報後端不可用，不可當作「不存在」處理
	ErrStoreUnavailable = &DomainError{
		Code:    ErrCodeStoreUnavailable,
		Message: "資料庫暫時無法使用，請稍後再試",
	}
)
