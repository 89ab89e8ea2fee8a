package repository

import (
	"context"
	"errors"
	"time"

	rediskey "RelationServer/consts/redisKey"
	"RelationServer/internal/graph"
	"RelationServer/model"
	"RelationServer/pkg/async"
	"RelationServer/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// relationshipRepositoryImpl 人脉图谱数据访问层实现
type relationshipRepositoryImpl struct {
	db          *gorm.DB
	redisClient *redis.Client
	breaker     *gobreaker.CircuitBreaker
}

// NewRelationshipRepository 创建人脉仓储实例。
// 写路径套一层熔断器：MySQL 持续故障时快速失败，不让请求堆积拖死服务；
// 业务上的"记录不存在"不计入失败统计。
func NewRelationshipRepository(db *gorm.DB, redisClient *redis.Client) IRelationshipRepository {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "mysql-write",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, gorm.ErrRecordNotFound)
		},
	})
	return &relationshipRepositoryImpl{db: db, redisClient: redisClient, breaker: breaker}
}

// execWrite 通过熔断器执行写操作，熔断开启时返回 ErrStorageUnavailable。
func (r *relationshipRepositoryImpl) execWrite(fn func() error) error {
	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrStorageUnavailable
	}
	return err
}

// CreatePerson 创建一条人脉记录
func (r *relationshipRepositoryImpl) CreatePerson(ctx context.Context, rel *model.Relationship) error {
	err := r.execWrite(func() error {
		return r.db.WithContext(ctx).Create(rel).Error
	})
	if err != nil {
		if errors.Is(err, ErrStorageUnavailable) {
			return err
		}
		return WrapDBError(err)
	}

	// 异步失效 owner 的列表缓存
	r.invalidateRelationListAsync(ctx, rel.OwnerUuid)

	return nil
}

// GetRelationships 获取 owner 的全部人脉（创建顺序）
// 采用 Cache-Aside Pattern：优先查 Redis，未命中则回源 MySQL 并回写缓存
func (r *relationshipRepositoryImpl) GetRelationships(ctx context.Context, ownerUUID string) ([]*model.Relationship, error) {
	cacheKey := rediskey.RelationListKey(ownerUUID)

	// ==================== 1. 查 Redis ====================
	if r.redisClient != nil {
		raw, err := r.redisClient.Get(ctx, cacheKey).Result()
		switch {
		case err == nil:
			rels, parseErr := unmarshalRelationList(raw)
			if parseErr == nil {
				// 概率续期：1% 的概率在读取时顺便续期
				if getRandomBool(0.01) {
					_ = r.redisClient.Expire(ctx, cacheKey, getRandomExpireTime(rediskey.RelationListTTL)).Err()
				}
				return rels, nil
			}
			// 缓存内容损坏，删掉走 DB
			_ = r.redisClient.Del(ctx, cacheKey).Err()
		case errors.Is(err, redis.Nil):
			// 缓存未命中，回源
		case isRedisWrongType(err):
			_ = r.redisClient.Del(ctx, cacheKey).Err()
		default:
			// Redis 挂了，记录日志，降级去查 DB
			LogRedisError(ctx, err)
		}
	}

	// ==================== 2. 回源 MySQL ====================
	var rels []*model.Relationship
	if err := r.db.WithContext(ctx).
		Where("owner_uuid = ?", ownerUUID).
		Preload("Interactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Order("created_at ASC, id ASC").
		Find(&rels).
		Error; err != nil {
		return nil, WrapDBError(err)
	}

	// ==================== 3. 异步回写缓存 ====================
	r.writeRelationListCacheAsync(ctx, cacheKey, rels)

	return rels, nil
}

// GetPerson 按 owner + id 查询单条人脉
func (r *relationshipRepositoryImpl) GetPerson(ctx context.Context, ownerUUID string, personID int64) (*model.Relationship, error) {
	var rel model.Relationship
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_uuid = ?", personID, ownerUUID).
		Preload("Interactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&rel).
		Error; err != nil {
		return nil, WrapDBError(err)
	}
	return &rel, nil
}

// RecordInteraction 记录一次交互并重算健康分。
// 追加交互、更新联系元数据、重算落库必须是同一个事务：
// 交互已写入但分数还是旧值属于缺陷状态，不允许出现。
// 父记录行锁保证同一人脉上的并发写入串行执行。
func (r *relationshipRepositoryImpl) RecordInteraction(ctx context.Context, ownerUUID string, inter *model.Interaction) (*model.Relationship, error) {
	if inter.CreatedAt.IsZero() {
		inter.CreatedAt = time.Now()
	}

	var rel model.Relationship
	err := r.execWrite(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// 1. 行锁加载目标人脉（owner 校验在同一条件里，防越权）
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND owner_uuid = ?", inter.RelationshipId, ownerUUID).
				First(&rel).Error; err != nil {
				return err
			}

			// 2. 加载既有交互序列（插入顺序，最新在尾部）
			var inters []*model.Interaction
			if err := tx.Where("relationship_id = ?", rel.Id).
				Order("created_at ASC, id ASC").
				Find(&inters).Error; err != nil {
				return err
			}

			// 3. 追加新交互
			if err := tx.Create(inter).Error; err != nil {
				return err
			}
			rel.Interactions = append(inters, inter)

			// 4. 更新联系元数据并重算健康分
			now := inter.CreatedAt
			// last_contact_at 只前进不回退
			if now.After(rel.LastContactAt) {
				rel.LastContactAt = now
			}
			rel.ContactCount = len(rel.Interactions)
			rel.HealthScore = graph.ComputeHealthScore(&rel, now)

			return tx.Model(&model.Relationship{}).
				Where("id = ?", rel.Id).
				Updates(map[string]interface{}{
					"last_contact_at": rel.LastContactAt,
					"contact_count":   rel.ContactCount,
					"health_score":    rel.HealthScore,
					"updated_at":      now,
				}).Error
		})
	})
	if err != nil {
		if errors.Is(err, ErrStorageUnavailable) {
			return nil, err
		}
		return nil, WrapDBError(err)
	}

	// 异步失效 owner 的列表缓存
	r.invalidateRelationListAsync(ctx, ownerUUID)

	return &rel, nil
}

// ==================== 缓存维护 ====================

// invalidateRelationListAsync 异步删除 owner 的列表缓存。
// 投递失败（协程池打满/未初始化）时退化为同步删除：失效丢掉的话，
// 旧列表会一直被读到 TTL 过期为止。
func (r *relationshipRepositoryImpl) invalidateRelationListAsync(ctx context.Context, ownerUUID string) {
	if r.redisClient == nil {
		return
	}
	cacheKey := rediskey.RelationListKey(ownerUUID)
	err := async.RunSafe(ctx, func(taskCtx context.Context) {
		if err := r.redisClient.Del(taskCtx, cacheKey).Err(); err != nil {
			LogRedisError(taskCtx, err)
		}
	}, 3*time.Second)
	if err != nil {
		delCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if derr := r.redisClient.Del(delCtx, cacheKey).Err(); derr != nil {
			LogRedisError(ctx, derr)
		}
	}
}

// writeRelationListCacheAsync 异步回写列表缓存（空列表用短 TTL 防穿透）
func (r *relationshipRepositoryImpl) writeRelationListCacheAsync(ctx context.Context, cacheKey string, rels []*model.Relationship) {
	if r.redisClient == nil {
		return
	}

	raw, err := marshalRelationList(rels)
	if err != nil {
		logger.Warn(ctx, "人脉列表序列化失败，跳过缓存回写", logger.ErrorField("error", err))
		return
	}

	ttl := rediskey.RelationListTTL
	if len(rels) == 0 {
		ttl = rediskey.RelationListEmptyTTL
	}

	async.RunSafe(ctx, func(taskCtx context.Context) {
		if err := r.redisClient.Set(taskCtx, cacheKey, raw, getRandomExpireTime(ttl)).Err(); err != nil {
			LogRedisError(taskCtx, err)
		}
	}, 3*time.Second)
}
