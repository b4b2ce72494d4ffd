package persistence

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// ===========================
// 資料庫錯誤分類
// ===========================

// PostgreSQL SQLSTATE
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateQueryCanceled        = "57014"
	sqlStateAdminShutdown        = "57P01"
	sqlStateCannotConnectNow     = "57P03"
)

// FaultKindOf 判斷錯誤是否為暫時性故障
//
// 分類：
// - connection_refused：ECONNREFUSED、driver.ErrBadConn、撥號失敗、pg 無法連線
// - retry_exhausted：逾時、sqlite BUSY / LOCKED
// - aborted：context 取消、事務已結束、序列化失敗、死結、查詢被取消
func FaultKindOf(err error) (shared.FaultKind, bool) {
	if err == nil {
		return "", false
	}
	if fault, ok := shared.AsStoreFault(err); ok {
		return fault.Kind, true
	}

	// 連線被拒
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, driver.ErrBadConn) {
		return shared.FaultConnectionRefused, true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return shared.FaultConnectionRefused, true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		if opErr.Timeout() {
			return shared.FaultRetryExhausted, true
		}
		return shared.FaultConnectionRefused, true
	}

	// 中止
	if errors.Is(err, context.Canceled) || errors.Is(err, sql.ErrTxDone) {
		return shared.FaultAborted, true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateQueryCanceled:
			return shared.FaultAborted, true
		case sqlStateAdminShutdown, sqlStateCannotConnectNow:
			return shared.FaultConnectionRefused, true
		}
		return "", false
	}

	// 重試耗盡
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return shared.FaultRetryExhausted, true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return shared.FaultRetryExhausted, true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
		return shared.FaultRetryExhausted, true
	}

	return "", false
}

// ClassifyError 將暫時性故障包裝為 *shared.StoreFault，其他錯誤原樣返回
func ClassifyError(err error) error {
	if kind, ok := FaultKindOf(err); ok {
		if _, already := shared.AsStoreFault(err); already {
			return err
		}
		return shared.NewStoreFault(kind, err)
	}
	return err
}

// MapError 倉儲共用錯誤轉換
//
// - 暫時性故障 → *shared.StoreFault
// - gorm.ErrRecordNotFound → notFound（可為 nil，此時視為一般錯誤）
// - 其他 → shared.ErrRepositoryError（保留原始錯誤）
func MapError(err error, op string, notFound *shared.DomainError) error {
	if err == nil {
		return nil
	}
	if _, ok := FaultKindOf(err); ok {
		return ClassifyError(err)
	}
	if notFound != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("%w: %w", shared.ErrRepositoryError.WithContext("op", op), err)
}
