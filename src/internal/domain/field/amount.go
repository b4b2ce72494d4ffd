package field

import "github.com/jackyeh168/pinoydesk/src/internal/domain/shared"

// Amount 驗證金額值對象
//
// 只接受 shared.Money（或非 nil 的 *shared.Money），
// 未設定幣別的零值視為空值
func Amount(name string, raw interface{}) (shared.Money, error) {
	switch v := raw.(type) {
	case nil:
		return shared.Money{}, required(name)
	case shared.Money:
		if v.IsZero() {
			return shared.Money{}, required(name)
		}
		return v, nil
	case *shared.Money:
		if v == nil || v.IsZero() {
			return shared.Money{}, required(name)
		}
		return *v, nil
	}
	return shared.Money{}, mismatch(name, raw, "money")
}
