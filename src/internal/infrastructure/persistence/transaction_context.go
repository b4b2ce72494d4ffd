package persistence

import (
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionContext 實作
// ===========================

// gormTransactionContext GORM 事務上下文
//
// 實作 shared.TransactionContext（標記介面），封裝 *gorm.DB。
// GetDB() 不在 shared 介面中，Domain Layer 無法接觸 GORM
type gormTransactionContext struct {
	db *gorm.DB
}

// NewGORMTransactionContext 創建 GORM 事務上下文
func NewGORMTransactionContext(db *gorm.DB) shared.TransactionContext {
	return &gormTransactionContext{db: db}
}

// GetDB 獲取事務中的 DB（僅供 Infrastructure Layer 使用）
func (ctx *gormTransactionContext) GetDB() *gorm.DB {
	return ctx.db
}

// DBProvider 子套件倉儲以此介面取出事務中的 DB
type DBProvider interface {
	shared.TransactionContext
	GetDB() *gorm.DB
}

// ResolveDB 返回事務中的 DB；ctx 為 nil 或非 GORM 上下文時返回預設 DB（auto-commit）
func ResolveDB(ctx shared.TransactionContext, fallback *gorm.DB) *gorm.DB {
	if provider, ok := ctx.(DBProvider); ok {
		return provider.GetDB()
	}
	return fallback
}
