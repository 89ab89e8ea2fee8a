package repository

import (
	"context"

	"RelationServer/model"
)

// IRelationshipRepository 人脉图谱数据访问层接口
// 职责：人脉与交互记录的持久化、每 owner 列表读取、列表缓存维护
type IRelationshipRepository interface {
	// CreatePerson 创建一条人脉记录（id、初始分等字段由调用方填好）
	CreatePerson(ctx context.Context, rel *model.Relationship) error

	// GetRelationships 按创建顺序返回 owner 的全部人脉（含交互记录）；
	// owner 没有任何记录时返回空切片而非错误
	GetRelationships(ctx context.Context, ownerUUID string) ([]*model.Relationship, error)

	// GetPerson 按 owner + id 查询单条人脉（含交互记录）；
	// 不存在或不属于该 owner 时返回 ErrRecordNotFound
	GetPerson(ctx context.Context, ownerUUID string, personID int64) (*model.Relationship, error)

	// RecordInteraction 在一个事务内完成：追加交互、更新最近联系时间与
	// 累计次数、重算并落库健康分；返回更新后的人脉记录。
	// personID 不存在或不属于 ownerUUID 时返回 ErrRecordNotFound。
	RecordInteraction(ctx context.Context, ownerUUID string, inter *model.Interaction) (*model.Relationship, error)
}
