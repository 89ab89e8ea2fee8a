package dto

import "RelationServer/internal/graph"

// ==================== 图谱读投影相关 DTO ====================

// GraphSummary 图谱概览统计
type GraphSummary struct {
	RelationshipCount  int     `json:"relationshipCount"`  // 人脉总数
	InteractionCount   int     `json:"interactionCount"`   // 交互总数
	AverageHealthScore float64 `json:"averageHealthScore"` // 平均健康分（无人脉时为 0）
	InnerCount         int     `json:"innerCount"`         // 内圈人数
	MiddleCount        int     `json:"middleCount"`        // 中圈人数
	OuterCount         int     `json:"outerCount"`         // 外圈人数
}

// GetGraphResponse 图谱读投影响应 DTO
type GetGraphResponse struct {
	Relationships []*RelationshipItem `json:"relationships"` // 全部人脉（创建顺序）
	Summary       *GraphSummary       `json:"summary"`       // 概览统计
	Visualization graph.Projection    `json:"visualization"` // 可视化节点与边
}

// CircleItem 圈层 DTO
type CircleItem struct {
	Name                string              `json:"name"`                // 圈层标识 inner/middle/outer
	Description         string              `json:"description"`         // 展示描述
	HealthScoreRequired int                 `json:"healthScoreRequired"` // 门槛分（仅展示用）
	Members             []*RelationshipItem `json:"members"`             // 圈层成员
}

// GetCirclesResponse 社交圈层响应 DTO
type GetCirclesResponse struct {
	InnerCircle  *CircleItem `json:"innerCircle"`  // 内圈
	MiddleCircle *CircleItem `json:"middleCircle"` // 中圈
	OuterCircle  *CircleItem `json:"outerCircle"`  // 外圈
}

// GapItem 支持角色缺口 DTO
type GapItem struct {
	Role           string `json:"role"`           // 角色标识
	RoleLabel      string `json:"roleLabel"`      // 角色展示名称
	Recommendation string `json:"recommendation"` // 补全建议
}

// GetSupportNetworkResponse 支持网络响应 DTO
// ByRole 只包含有提供者的角色，与 Gaps 对完整角色枚举互补
type GetSupportNetworkResponse struct {
	ByRole map[string][]*RelationshipItem `json:"byRole"` // 角色 -> 提供者列表
	Gaps   []*GapItem                     `json:"gaps"`   // 无人承担的角色
}

// GetSocialScoreResponse 社交支柱综合分响应 DTO
type GetSocialScoreResponse struct {
	Score int `json:"score"` // 综合分 0-10
}
