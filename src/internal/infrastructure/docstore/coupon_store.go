package docstore

import (
	"context"
	"time"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/membership"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CouponStore 優惠碼倉儲（MongoDB）
//
// 設計原則：
// - 實作 membership.CouponRepository 接口
// - 優惠碼原樣作為 _id，查詢精確比對（不 trim、區分大小寫）
type CouponStore struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewCouponStore 創建優惠碼倉儲（timeout <= 0 時使用 DefaultTimeout）
func NewCouponStore(coll *mongo.Collection, timeout time.Duration) *CouponStore {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &CouponStore{coll: coll, timeout: timeout}
}

var _ membership.CouponRepository = (*CouponStore)(nil)

// Save 保存優惠碼（Upsert 模式）
//
// 實作邏輯：
// 1. 建立逾時 context
// 2. 轉換為 couponDocument
// 3. ReplaceOne + SetUpsert(true)，以 _id 覆寫整份文件
//
// 錯誤處理：
// - 連線、逾時類錯誤 → *shared.StoreFault
// - 其他錯誤 → ErrRepositoryError
func (s *CouponStore) Save(_ shared.TransactionContext, coupon *membership.Coupon) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	doc := toCouponDocument(coupon)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.Code}, doc, options.Replace().SetUpsert(true))
	return mapError(err, "save coupon", nil)
}

// FindByCode 根據優惠碼查找（區分大小寫）
//
// 錯誤處理：
// - mongo.ErrNoDocuments → membership.ErrCouponNotFound
// - 連線、逾時類錯誤 → *shared.StoreFault
func (s *CouponStore) FindByCode(_ shared.TransactionContext, code string) (*membership.Coupon, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var doc couponDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": code}).Decode(&doc); err != nil {
		return nil, mapError(err, "find coupon", membership.ErrCouponNotFound.WithContext("code", code))
	}
	return doc.toDomain()
}

// ExistsByCode 檢查優惠碼是否存在
//
// 使用 CountDocuments（limit 1），不解碼文件
func (s *CouponStore) ExistsByCode(_ shared.TransactionContext, code string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.coll.CountDocuments(ctx, bson.M{"_id": code}, options.Count().SetLimit(1))
	if err != nil {
		return false, mapError(err, "count coupon", nil)
	}
	return n > 0, nil
}
