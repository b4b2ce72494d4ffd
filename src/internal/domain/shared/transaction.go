package shared

// TransactionContext 事務上下文介面
//
// 設計決策：可選事務參與模式（Optional Transaction Participation）
//
// 行為約定：
// - ctx != nil: 在調用者的事務中執行（事務傳播）
// - ctx == nil: 使用 auto-commit 模式（適用於單一讀操作）
//
// Repository 方法約束：
// - Save() / Update() 必須在事務中（寫操作）
// - FindXXX() / ExistsByXXX() 可為 nil（讀操作可選事務參與）
//
// 範例：
//
// 寫操作（必須在事務中）：
//
//	txManager.InTransaction(func(ctx TransactionContext) error {
//	    plan, _ := planRepo.FindByPlanID(ctx, planID)
//	    plan.AddMember()
//	    return planRepo.Save(ctx, plan)
//	})
//
// 讀操作（獨立查詢）：
//
//	exists, _ := planRepo.ExistsByPlanID(nil, planID)
//
// 架構原則：
// - 標記介面（Marker Interface），不暴露任何方法
// - Infrastructure Layer 負責實作具體的事務封裝（GORM）
// - Domain Layer 和 Application Layer 只依賴此介面
type TransactionContext interface {
	// 標記介面：僅用於傳遞上下文，不暴露方法
}

// TransactionManager 事務管理器介面
type TransactionManager interface {
	InTransaction(fn func(ctx TransactionContext) error) error
}
