package field

import "github.com/jackyeh168/pinoydesk/src/internal/domain/shared"

// ===========================
// 欄位驗證錯誤定義
// ===========================

// 欄位驗證錯誤代碼
const (
	ErrCodeInvalidField    shared.ErrorCode = "INVALID_FIELD"
	ErrCodeValueRequired   shared.ErrorCode = "VALUE_REQUIRED"
	ErrCodeTypeMismatch    shared.ErrorCode = "TYPE_MISMATCH"
	ErrCodeValueOutOfRange shared.ErrorCode = "VALUE_OUT_OF_RANGE"
)

var (
	// ErrInvalidField 欄位驗證失敗（上層分類）
	//
	// 下列三種錯誤都會匹配 errors.Is(err, ErrInvalidField)
	ErrInvalidField = &shared.DomainError{
		Code:    ErrCodeInvalidField,
		Message: "欄位驗證失敗",
	}

	// ErrValueRequired 必填欄位為空
	//
	// 觸發條件：
	// - nil
	// - 空字串，或 trim 之後為空字串
	// - 零值時間
	ErrValueRequired = &shared.DomainError{
		Code:    ErrCodeValueRequired,
		Parent:  ErrCodeInvalidField,
		Message: "欄位不能為空",
	}

	// ErrTypeMismatch 欄位類型不符
	//
	// 觸發條件：
	// - 需要字串卻收到數字
	// - 需要整數卻收到浮點數或布林
	// - 需要金額值對象卻收到其他類型
	ErrTypeMismatch = &shared.DomainError{
		Code:    ErrCodeTypeMismatch,
		Parent:  ErrCodeInvalidField,
		Message: "欄位類型不符",
	}

	// ErrValueOutOfRange 欄位類型正確但不符合業務規則
	//
	// 觸發條件：
	// - ID 長度超過 64
	// - 狀態不在 {paid, unpaid}
	// - 週期不在 {monthly, quarterly, annually}
	// - 扣款日不在 1-5
	// - 需要非負數卻收到負數
	ErrValueOutOfRange = &shared.DomainError{
		Code:    ErrCodeValueOutOfRange,
		Parent:  ErrCodeInvalidField,
		Message: "欄位值超出允許範圍",
	}
)

func required(name string) error {
	return ErrValueRequired.WithContext("field", name)
}

func mismatch(name string, raw interface{}, want string) error {
	return ErrTypeMismatch.WithContext(
		"field", name,
		"want", want,
		"got", typeName(raw),
	)
}

func outOfRange(name string, value interface{}, reason string) error {
	return ErrValueOutOfRange.WithContext(
		"field", name,
		"value", value,
		"reason", reason,
	)
}
