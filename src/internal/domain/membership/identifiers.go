package membership

import (
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/field"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
)

// ===========================
// 識別碼（基於泛型 EntityID）
// ===========================

// PlanMarker 方案 ID 標記類型
type PlanMarker struct{}

// UserMarker 使用者 ID 標記類型
type UserMarker struct{}

// DailyStatsMarker 每日統計 ID 標記類型
type DailyStatsMarker struct{}

// PlanID 會員方案 ID
type PlanID = shared.EntityID[PlanMarker]

// UID 使用者 ID（由身分系統提供）
type UID = shared.EntityID[UserMarker]

// DailyID 每日統計 ID（YYYYMMDD）
type DailyID = shared.EntityID[DailyStatsMarker]

// dailyIDLayout 每日統計 ID 格式
const dailyIDLayout = "20060102"

// NewPlanID 生成新的方案 ID
func NewPlanID() PlanID {
	return shared.GenerateEntityID[PlanMarker](shared.DefaultIDSize)
}

// PlanIDFromString 驗證並建立方案 ID（Checked Constructor）
func PlanIDFromString(value string) (PlanID, error) {
	v, err := field.ID("plan_id", value)
	if err != nil {
		return PlanID{}, err
	}
	return shared.NewEntityID[PlanMarker](v), nil
}

// UIDFromString 驗證並建立使用者 ID
func UIDFromString(value string) (UID, error) {
	v, err := field.ID("uid", value)
	if err != nil {
		return UID{}, err
	}
	return shared.NewEntityID[UserMarker](v), nil
}

// DailyIDFor 以日期產生每日統計 ID
func DailyIDFor(day time.Time) DailyID {
	return shared.NewEntityID[DailyStatsMarker](day.Format(dailyIDLayout))
}

// DailyIDFromString 驗證並建立每日統計 ID
func DailyIDFromString(value string) (DailyID, error) {
	v, err := field.ID("daily_id", value)
	if err != nil {
		return DailyID{}, err
	}
	return shared.NewEntityID[DailyStatsMarker](v), nil
}
