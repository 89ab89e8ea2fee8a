package service

import (
	"context"

	"RelationServer/internal/dto"
)

// ==================== 人脉写服务接口 ====================

// IRelationService 人脉写服务接口
// 职责：新建人脉、记录交互（含健康分重算与审计事件投递）
type IRelationService interface {
	// AddPerson 为 owner 新建一条人脉记录
	AddPerson(ctx context.Context, ownerUUID string, req *dto.AddPersonRequest) (*dto.RelationshipItem, error)

	// RecordInteraction 对指定人脉记录一次交互，返回写入的交互记录
	RecordInteraction(ctx context.Context, ownerUUID string, personID int64, req *dto.RecordInteractionRequest) (*dto.InteractionItem, error)
}

// ==================== 图谱读服务接口 ====================

// IInsightService 图谱读投影服务接口
// 职责：图谱视图、圈层划分、支持网络、社交综合分；全部为只读派生计算
type IInsightService interface {
	// GetPerson 单条人脉详情（含交互序列）
	GetPerson(ctx context.Context, ownerUUID string, personID int64) (*dto.RelationshipItem, error)

	// GetRelationshipGraph 全量图谱视图（人脉列表 + 概览 + 可视化投影）
	GetRelationshipGraph(ctx context.Context, ownerUUID string) (*dto.GetGraphResponse, error)

	// GetSocialCircles 内/中/外三圈划分
	GetSocialCircles(ctx context.Context, ownerUUID string) (*dto.GetCirclesResponse, error)

	// GetSupportNetwork 支持网络报告（按角色聚合 + 缺口）
	GetSupportNetwork(ctx context.Context, ownerUUID string) (*dto.GetSupportNetworkResponse, error)

	// GetSocialScore 社交支柱综合分
	GetSocialScore(ctx context.Context, ownerUUID string) (*dto.GetSocialScoreResponse, error)
}
