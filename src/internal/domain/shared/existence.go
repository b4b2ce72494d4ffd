package shared

import (
	"errors"
	"fmt"
)

// ===========================
// FaultKind 暫時性故障分類
// ===========================

// FaultKind 資料庫暫時性故障類型
//
// 只有這三類故障會被降級為 Indeterminate，
// 其他錯誤（SQL 語法、約束違反等）照常返回給呼叫端
type FaultKind string

const (
	FaultConnectionRefused FaultKind = "connection_refused"
	FaultRetryExhausted    FaultKind = "retry_exhausted"
	FaultAborted           FaultKind = "aborted"
)

// StoreFault 暫時性資料庫故障
//
// Infrastructure Layer 負責把驅動錯誤分類後包裝成 StoreFault，
// Domain Layer 只依賴此類型，不依賴任何驅動
type StoreFault struct {
	Kind FaultKind
	Err  error
}

// NewStoreFault 建立暫時性故障
func NewStoreFault(kind FaultKind, err error) *StoreFault {
	return &StoreFault{Kind: kind, Err: err}
}

// Error 實作 error 介面
func (f *StoreFault) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("store fault: %s", f.Kind)
	}
	return fmt.Sprintf("store fault: %s: %v", f.Kind, f.Err)
}

// Unwrap 返回原始錯誤
func (f *StoreFault) Unwrap() error {
	return f.Err
}

// AsStoreFault 判斷錯誤鏈中是否有暫時性故障
func AsStoreFault(err error) (*StoreFault, bool) {
	var fault *StoreFault
	if errors.As(err, &fault) {
		return fault, true
	}
	return nil, false
}

// ===========================
// Existence 三值結果
// ===========================

// ExistenceState 存在性查詢狀態
type ExistenceState int

const (
	StateNotFound ExistenceState = iota
	StateFound
	StateIndeterminate
)

// String 返回狀態名稱（用於日誌與指標標籤）
func (s ExistenceState) String() string {
	switch s {
	case StateFound:
		return "found"
	case StateNotFound:
		return "not_found"
	case StateIndeterminate:
		return "indeterminate"
	default:
		return "unknown"
	}
}

// Existence 存在性查詢結果值對象
//
// 三種結果：
// - Found：找到符合的記錄
// - NotFound：輸入預先驗證失敗，或查詢執行後沒有符合的記錄
// - Indeterminate：暫時性故障，無法判斷（附帶 FaultKind）
//
// 呼叫端必須區分 NotFound 與 Indeterminate：
// 後端故障時把 Indeterminate 當成 NotFound 會導致重複建立記錄
type Existence struct {
	state ExistenceState
	fault FaultKind
}

// ExistenceFound 找到記錄
func ExistenceFound() Existence {
	return Existence{state: StateFound}
}

// ExistenceNotFound 沒有記錄
func ExistenceNotFound() Existence {
	return Existence{state: StateNotFound}
}

// ExistenceIndeterminate 無法判斷
func ExistenceIndeterminate(kind FaultKind) Existence {
	return Existence{state: StateIndeterminate, fault: kind}
}

// ExistenceOf 將 bool 查詢結果轉換為 Existence
func ExistenceOf(found bool) Existence {
	if found {
		return ExistenceFound()
	}
	return ExistenceNotFound()
}

// State 返回狀態
func (e Existence) State() ExistenceState {
	return e.state
}

// Fault 返回故障類型（僅 Indeterminate 時有值）
func (e Existence) Fault() FaultKind {
	return e.fault
}

// IsFound 是否找到
func (e Existence) IsFound() bool {
	return e.state == StateFound
}

// IsNotFound 是否確定不存在
func (e Existence) IsNotFound() bool {
	return e.state == StateNotFound
}

// IsIndeterminate 是否無法判斷
func (e Existence) IsIndeterminate() bool {
	return e.state == StateIndeterminate
}

// Bool 返回可空布林（nil 表示無法判斷）
func (e Existence) Bool() *bool {
	if e.state == StateIndeterminate {
		return nil
	}
	found := e.state == StateFound
	return &found
}

// String 返回字串表示
func (e Existence) String() string {
	if e.state == StateIndeterminate {
		return fmt.Sprintf("%s(%s)", e.state, e.fault)
	}
	return e.state.String()
}
