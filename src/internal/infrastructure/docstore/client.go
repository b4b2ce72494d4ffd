package docstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect 連線 MongoDB 並確認主節點可用
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", mapError(err, "connect", nil))
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", mapError(err, "ping", nil))
	}

	slog.Info("Document store connected")
	return client, nil
}

// Stores 方案與優惠碼倉儲
type Stores struct {
	Plans   *PlanStore
	Coupons *CouponStore
}

// NewStores 以資料庫建立兩個倉儲
func NewStores(db *mongo.Database, timeout time.Duration) Stores {
	return Stores{
		Plans:   NewPlanStore(db.Collection(PlanCollection), timeout),
		Coupons: NewCouponStore(db.Collection(CouponCollection), timeout),
	}
}
