package service

import (
	"context"
	"errors"
	"time"

	"RelationServer/internal/dto"
	"RelationServer/internal/mq"
	"RelationServer/internal/repository"
	"RelationServer/model"
	"RelationServer/pkg/logger"
	"RelationServer/pkg/metrics"
	"RelationServer/pkg/util"
)

// 交互记录缺省值
const (
	defaultDurationMinutes = 30
	defaultQualityScore    = 5
	// initialHealthScore 新建人脉的初始健康分（等于计算基础分）
	initialHealthScore = 5
)

// relationServiceImpl 人脉写服务实现
type relationServiceImpl struct {
	relRepo   repository.IRelationshipRepository
	snapshots *SnapshotCache
	writeLock keyedMutex
}

// NewRelationService 创建人脉写服务实例
func NewRelationService(relRepo repository.IRelationshipRepository, snapshots *SnapshotCache) IRelationService {
	return &relationServiceImpl{
		relRepo:   relRepo,
		snapshots: snapshots,
	}
}

// AddPerson 新建人脉。
// 校验全部通过后才开始写入（fail closed）：枚举校验失败时不产生任何状态变更。
func (s *relationServiceImpl) AddPerson(ctx context.Context, ownerUUID string, req *dto.AddPersonRequest) (*dto.RelationshipItem, error) {
	// 1. 校验关系类型
	relType, ok := model.ParseRelationType(req.RelationshipType)
	if !ok {
		return nil, ErrInvalidRelationshipType
	}

	// 2. 校验并去重支持角色
	roles, err := normalizeSupportRoles(req.SupportRoles)
	if err != nil {
		return nil, err
	}

	// 3. 构建记录：健康分初始为 5，最近联系时间取创建时间
	now := time.Now()
	rel := &model.Relationship{
		Id:                     util.GenID(),
		OwnerUuid:              ownerUUID,
		Name:                   req.Name,
		RelationType:           relType,
		SupportRoles:           roles,
		Notes:                  req.Notes,
		ContactFrequencyTarget: req.ContactFrequencyTarget,
		ContactCount:           0,
		HealthScore:            initialHealthScore,
		LastContactAt:          now,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := s.relRepo.CreatePerson(ctx, rel); err != nil {
		return nil, err
	}

	// 4. 写入成功后：失效快照、上报指标、投递审计事件
	s.snapshots.Invalidate(ownerUUID)
	metrics.RelationCreatedTotal.WithLabelValues(string(relType)).Inc()
	mq.PublishAsync(ctx, mq.BuildPersonCreatedEvent(ownerUUID, rel.Id, rel.HealthScore))

	logger.Info(ctx, "新建人脉成功",
		logger.Int64("person_id", rel.Id),
		logger.String("relation_type", string(relType)),
	)

	return toRelationshipItem(rel), nil
}

// RecordInteraction 记录一次交互。
// (owner, person) 写锁 + 仓储层事务共同保证：追加、联系元数据更新、
// 健康分重算落库对外表现为一个整体，并发写同一人脉时串行执行。
func (s *relationServiceImpl) RecordInteraction(ctx context.Context, ownerUUID string, personID int64, req *dto.RecordInteractionRequest) (*dto.InteractionItem, error) {
	// 1. 补缺省值
	duration := defaultDurationMinutes
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}
	quality := defaultQualityScore
	if req.QualityScore != nil {
		quality = *req.QualityScore
	}

	inter := &model.Interaction{
		Id:              util.GenID(),
		RelationshipId:  personID,
		Type:            req.Type,
		DurationMinutes: duration,
		QualityScore:    quality,
		Notes:           req.Notes,
		Topics:          req.Topics,
		CreatedAt:       time.Now(),
	}

	// 2. 单写者临界区内完成 追加 + 重算 + 落库
	unlock := s.writeLock.Lock(personLockKey(ownerUUID, personID))
	rel, err := s.relRepo.RecordInteraction(ctx, ownerUUID, inter)
	if err == nil {
		// 快照失效必须发生在锁释放前，避免并发读拿到旧快照覆盖
		s.snapshots.Invalidate(ownerUUID)
	}
	unlock()

	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrRelationshipNotFound
		}
		return nil, err
	}

	// 3. 上报指标、投递审计事件
	metrics.InteractionRecordedTotal.Inc()
	metrics.HealthScoreDistribution.Observe(float64(rel.HealthScore))
	mq.PublishAsync(ctx, mq.BuildInteractionRecordedEvent(ownerUUID, personID, inter.Id, rel.HealthScore))

	logger.Info(ctx, "记录交互成功",
		logger.Int64("person_id", personID),
		logger.Int64("interaction_id", inter.Id),
		logger.Int("health_score", rel.HealthScore),
	)

	return toInteractionItem(inter), nil
}

// normalizeSupportRoles 校验并去重支持角色标签。
// 任何一个标签不合法都整体拒绝（fail closed）。
func normalizeSupportRoles(raw []string) (model.StringList, error) {
	if len(raw) == 0 {
		return model.StringList{}, nil
	}
	seen := make(map[model.SupportRole]struct{}, len(raw))
	roles := make(model.StringList, 0, len(raw))
	for _, r := range raw {
		role, ok := model.ParseSupportRole(r)
		if !ok {
			return nil, ErrInvalidSupportRole
		}
		if _, dup := seen[role]; dup {
			continue
		}
		seen[role] = struct{}{}
		roles = append(roles, string(role))
	}
	return roles, nil
}
