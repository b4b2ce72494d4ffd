package membership

import "github.com/jackyeh168/pinoydesk/src/internal/domain/shared"

// ===========================
// Membership Domain 錯誤定義
// ===========================

// Membership Domain 錯誤代碼常量
const (
	ErrCodePlanNotFound            shared.ErrorCode = "PLAN_NOT_FOUND"
	ErrCodePlanAlreadyExists       shared.ErrorCode = "PLAN_ALREADY_EXISTS"
	ErrCodePlanNameTaken           shared.ErrorCode = "PLAN_NAME_TAKEN"
	ErrCodePlanInactive            shared.ErrorCode = "PLAN_INACTIVE"
	ErrCodeMembershipNotFound      shared.ErrorCode = "MEMBERSHIP_NOT_FOUND"
	ErrCodeMembershipAlreadyExists shared.ErrorCode = "MEMBERSHIP_ALREADY_EXISTS"
	ErrCodeInvalidStartDate        shared.ErrorCode = "INVALID_START_DATE"
	ErrCodeCouponNotFound          shared.ErrorCode = "COUPON_NOT_FOUND"
	ErrCodeCouponAlreadyExists     shared.ErrorCode = "COUPON_ALREADY_EXISTS"
	ErrCodeCouponNotUsable         shared.ErrorCode = "COUPON_NOT_USABLE"
	ErrCodeInvalidExpiration       shared.ErrorCode = "INVALID_EXPIRATION"
	ErrCodeInvalidDiscount         shared.ErrorCode = "INVALID_DISCOUNT"
	ErrCodeAccessRightsNotFound    shared.ErrorCode = "ACCESS_RIGHTS_NOT_FOUND"
	ErrCodeDailyStatsNotFound      shared.ErrorCode = "DAILY_STATS_NOT_FOUND"
)

// ===========================
// Membership Domain 錯誤實例
// ===========================

var (
	// ErrPlanNotFound 會員方案不存在
	ErrPlanNotFound = &shared.DomainError{
		Code:    ErrCodePlanNotFound,
		Message: "會員方案不存在",
	}

	// ErrPlanAlreadyExists 方案 ID 已存在
	ErrPlanAlreadyExists = &shared.DomainError{
		Code:    ErrCodePlanAlreadyExists,
		Message: "會員方案已存在",
	}

	// ErrPlanNameTaken 方案名稱已被使用
	//
	// 比對使用正規化後的名稱（trim + 小寫）
	ErrPlanNameTaken = &shared.DomainError{
		Code:    ErrCodePlanNameTaken,
		Message: "方案名稱已被使用",
	}

	// ErrPlanInactive 方案未啟用，不可訂閱
	ErrPlanInactive = &shared.DomainError{
		Code:    ErrCodePlanInactive,
		Message: "會員方案未啟用",
	}

	// ErrMembershipNotFound 訂閱記錄不存在
	ErrMembershipNotFound = &shared.DomainError{
		Code:    ErrCodeMembershipNotFound,
		Message: "訂閱記錄不存在",
	}

	// ErrMembershipAlreadyExists 使用者已訂閱此方案
	ErrMembershipAlreadyExists = &shared.DomainError{
		Code:    ErrCodeMembershipAlreadyExists,
		Message: "使用者已訂閱此方案",
	}

	// ErrInvalidStartDate 方案開始日期無效
	//
	// 觸發條件：
	// - 開始日期不晚於今天
	ErrInvalidStartDate = &shared.DomainError{
		Code:    ErrCodeInvalidStartDate,
		Message: "方案開始日期必須晚於今天",
	}

	// ErrCouponNotFound 優惠碼不存在
	ErrCouponNotFound = &shared.DomainError{
		Code:    ErrCodeCouponNotFound,
		Message: "優惠碼不存在",
	}

	// ErrCouponAlreadyExists 優惠碼已存在
	ErrCouponAlreadyExists = &shared.DomainError{
		Code:    ErrCodeCouponAlreadyExists,
		Message: "優惠碼已存在",
	}

	// ErrCouponNotUsable 優惠碼已失效或已過期
	ErrCouponNotUsable = &shared.DomainError{
		Code:    ErrCodeCouponNotUsable,
		Message: "優惠碼已失效或已過期",
	}

	// ErrInvalidExpiration 到期時間無效
	//
	// 觸發條件：
	// - 到期時間早於一天之後
	ErrInvalidExpiration = &shared.DomainError{
		Code:    ErrCodeInvalidExpiration,
		Message: "到期時間必須至少在一天之後",
	}

	// ErrInvalidDiscount 折扣無效（必須在 0-100 之間）
	ErrInvalidDiscount = &shared.DomainError{
		Code:    ErrCodeInvalidDiscount,
		Message: "折扣必須在 0 到 100 之間",
	}

	// ErrAccessRightsNotFound 方案沒有權限設定
	ErrAccessRightsNotFound = &shared.DomainError{
		Code:    ErrCodeAccessRightsNotFound,
		Message: "方案權限設定不存在",
	}

	// ErrDailyStatsNotFound 每日統計不存在
	ErrDailyStatsNotFound = &shared.DomainError{
		Code:    ErrCodeDailyStatsNotFound,
		Message: "每日統計不存在",
	}
)
