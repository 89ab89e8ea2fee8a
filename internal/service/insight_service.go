package service

import (
	"context"
	"errors"

	"RelationServer/internal/dto"
	"RelationServer/internal/graph"
	"RelationServer/internal/repository"
	"RelationServer/model"
)

// insightServiceImpl 图谱读投影服务实现。
// 所有视图都是当前存储状态的纯函数：先拿 owner 的人脉快照，再做派生计算。
// 快照走进程内 LRU，写路径负责失效（见 SnapshotCache 注释）。
type insightServiceImpl struct {
	relRepo   repository.IRelationshipRepository
	snapshots *SnapshotCache
}

// NewInsightService 创建图谱读服务实例
func NewInsightService(relRepo repository.IRelationshipRepository, snapshots *SnapshotCache) IInsightService {
	return &insightServiceImpl{
		relRepo:   relRepo,
		snapshots: snapshots,
	}
}

// loadSnapshot 获取 owner 的人脉快照（LRU 命中则不回源）。
// 回源前先记下失效代数：回源期间该 owner 有写入提交时放弃回填，
// 防止提交前读出的旧列表盖掉写路径的失效。
func (s *insightServiceImpl) loadSnapshot(ctx context.Context, ownerUUID string) ([]*model.Relationship, error) {
	if rels, ok := s.snapshots.Get(ownerUUID); ok {
		return rels, nil
	}

	gen := s.snapshots.Generation(ownerUUID)
	rels, err := s.relRepo.GetRelationships(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	s.snapshots.SetIfCurrent(ownerUUID, gen, rels)
	return rels, nil
}

// GetPerson 单条人脉详情。单行读不走 owner 级快照，直接回源。
func (s *insightServiceImpl) GetPerson(ctx context.Context, ownerUUID string, personID int64) (*dto.RelationshipItem, error) {
	rel, err := s.relRepo.GetPerson(ctx, ownerUUID, personID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrRelationshipNotFound
		}
		return nil, err
	}
	return toRelationshipItem(rel), nil
}

// GetRelationshipGraph 全量图谱视图
func (s *insightServiceImpl) GetRelationshipGraph(ctx context.Context, ownerUUID string) (*dto.GetGraphResponse, error) {
	rels, err := s.loadSnapshot(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	circles := graph.ClassifyCircles(rels)

	interactionCount := 0
	healthSum := 0
	for _, rel := range rels {
		interactionCount += len(rel.Interactions)
		healthSum += rel.HealthScore
	}
	avgHealth := 0.0
	if len(rels) > 0 {
		avgHealth = float64(healthSum) / float64(len(rels))
	}

	return &dto.GetGraphResponse{
		Relationships: toRelationshipItems(rels),
		Summary: &dto.GraphSummary{
			RelationshipCount:  len(rels),
			InteractionCount:   interactionCount,
			AverageHealthScore: avgHealth,
			InnerCount:         len(circles.Inner.Members),
			MiddleCount:        len(circles.Middle.Members),
			OuterCount:         len(circles.Outer.Members),
		},
		Visualization: graph.BuildProjection(rels),
	}, nil
}

// GetSocialCircles 内/中/外三圈划分
func (s *insightServiceImpl) GetSocialCircles(ctx context.Context, ownerUUID string) (*dto.GetCirclesResponse, error) {
	rels, err := s.loadSnapshot(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	circles := graph.ClassifyCircles(rels)
	return &dto.GetCirclesResponse{
		InnerCircle:  toCircleItem(circles.Inner),
		MiddleCircle: toCircleItem(circles.Middle),
		OuterCircle:  toCircleItem(circles.Outer),
	}, nil
}

// GetSupportNetwork 支持网络报告
func (s *insightServiceImpl) GetSupportNetwork(ctx context.Context, ownerUUID string) (*dto.GetSupportNetworkResponse, error) {
	rels, err := s.loadSnapshot(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	network := graph.BuildSupportNetwork(rels)

	byRole := make(map[string][]*dto.RelationshipItem, len(network.ByRole))
	for role, providers := range network.ByRole {
		byRole[string(role)] = toRelationshipItems(providers)
	}

	gaps := make([]*dto.GapItem, 0, len(network.Gaps))
	for _, gap := range network.Gaps {
		gaps = append(gaps, &dto.GapItem{
			Role:           string(gap.Role),
			RoleLabel:      gap.Role.Label(),
			Recommendation: gap.Recommendation,
		})
	}

	return &dto.GetSupportNetworkResponse{ByRole: byRole, Gaps: gaps}, nil
}

// GetSocialScore 社交支柱综合分
func (s *insightServiceImpl) GetSocialScore(ctx context.Context, ownerUUID string) (*dto.GetSocialScoreResponse, error) {
	rels, err := s.loadSnapshot(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}
	return &dto.GetSocialScoreResponse{Score: graph.CalculateSocialScore(rels)}, nil
}

// toCircleItem 转换圈层
func toCircleItem(circle graph.Circle) *dto.CircleItem {
	return &dto.CircleItem{
		Name:                circle.Name,
		Description:         circle.Description,
		HealthScoreRequired: circle.HealthScoreRequired,
		Members:             toRelationshipItems(circle.Members),
	}
}
