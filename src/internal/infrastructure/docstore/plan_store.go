// Package docstore 以 MongoDB 實作會員方案與優惠碼倉儲
//
// 文件資料庫不支援 shared.TransactionContext：傳入的 ctx 一律忽略，
// 每個操作各自以逾時 context 執行
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

// DefaultTimeout 單次操作逾時
const DefaultTimeout = 10 * time.Second

// PlanStore 會員方案倉儲（MongoDB）
type PlanStore struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewPlanStore 創建方案倉儲（timeout <= 0 時使用 DefaultTimeout）
func NewPlanStore(coll *mongo.Collection, timeout time.Duration) *PlanStore {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &PlanStore{coll: coll, timeout: timeout}
}

var _ membership.PlanRepository = (*PlanStore)(nil)

// EnsureIndexes 建立 plan_name 查詢索引
//
// 名稱重複由 ExistenceChecker 在用例中檢查，索引不做唯一限制
func (s *PlanStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "plan_name", Value: 1}},
		Options: options.Index().SetName("plan_name_1"),
	})
	return mapError(err, "create plan indexes", nil)
}

// Save 保存方案（以 _id upsert 整份文件）
//
// 錯誤處理：
// - 連線、逾時類錯誤 → *shared.StoreFault
// - 其他錯誤 → ErrRepositoryError
func (s *PlanStore) Save(_ shared.TransactionContext, plan *membership.MembershipPlan) error {
	doc, err := toPlanDocument(plan)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": doc.PlanID}, doc, options.Replace().SetUpsert(true))
	return mapError(err, "save plan", nil)
}

// FindByPlanID 根據 plan_id 查找
//
// 錯誤處理：
// - mongo.ErrNoDocuments → membership.ErrPlanNotFound
func (s *PlanStore) FindByPlanID(_ shared.TransactionContext, planID membership.PlanID) (*membership.MembershipPlan, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var doc planDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": planID.String()}).Decode(&doc)
	if err != nil {
		return nil, mapError(err, "find plan", membership.ErrPlanNotFound.WithContext("plan_id", planID.String()))
	}
	return doc.toDomain()
}

// FindAll 返回所有方案（依 _id 排序）
func (s *PlanStore) FindAll(_ shared.TransactionContext) ([]*membership.MembershipPlan, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	cursor, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, mapError(err, "list plans", nil)
	}
	var docs []planDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mapError(err, "list plans", nil)
	}

	plans := make([]*membership.MembershipPlan, 0, len(docs))
	for i := range docs {
		p, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// ExistsByPlanID 檢查方案 ID 是否存在
func (s *PlanStore) ExistsByPlanID(_ shared.TransactionContext, planID membership.PlanID) (bool, error) {
	return s.exists(bson.M{"_id": planID.String()})
}

// ExistsByPlanName 檢查方案名稱是否存在（名稱以小寫保存）
func (s *PlanStore) ExistsByPlanName(_ shared.TransactionContext, planName string) (bool, error) {
	return s.exists(bson.M{"plan_name": planName})
}

func (s *PlanStore) exists(filter bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, mapError(err, "count plan", nil)
	}
	return n > 0, nil
}
