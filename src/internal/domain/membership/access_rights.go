package membership

import (
	"github.com/jackyeh168/pinoydesk/src/internal/domain/field"
)

// ===========================
// AccessRights Entity
// ===========================

// AccessRights 方案可使用的功能權限清單
//
// 權限字串保持加入順序，不重複
type AccessRights struct {
	planID PlanID
	rights []string
}

// NewAccessRights 建立方案權限清單
func NewAccessRights(planID string, rights ...string) (*AccessRights, error) {
	id, err := PlanIDFromString(planID)
	if err != nil {
		return nil, err
	}
	ar := &AccessRights{planID: id}
	for _, r := range rights {
		if err := ar.Grant(r); err != nil {
			return nil, err
		}
	}
	return ar, nil
}

// Grant 新增權限（已存在時忽略）
func (a *AccessRights) Grant(right string) error {
	v, err := field.String("access_right", right)
	if err != nil {
		return err
	}
	if a.Allows(v) {
		return nil
	}
	a.rights = append(a.rights, v)
	return nil
}

// Revoke 移除權限，返回是否有移除
//
// 輸入與 Grant 相同方式正規化；無效輸入不會匹配任何權限
func (a *AccessRights) Revoke(right string) bool {
	v, err := field.String("access_right", right)
	if err != nil {
		return false
	}
	for i, r := range a.rights {
		if r == v {
			a.rights = append(a.rights[:i], a.rights[i+1:]...)
			return true
		}
	}
	return false
}

// Allows 是否擁有權限
func (a *AccessRights) Allows(right string) bool {
	for _, r := range a.rights {
		if r == right {
			return true
		}
	}
	return false
}

// PlanID 返回方案 ID
func (a *AccessRights) PlanID() PlanID {
	return a.planID
}

// Rights 返回權限清單副本
func (a *AccessRights) Rights() []string {
	out := make([]string, len(a.rights))
	copy(out, a.rights)
	return out
}

// Equals 以 planID 比較
func (a *AccessRights) Equals(other *AccessRights) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.planID.Equals(other.planID)
}
