package model

import "time"

// Interaction 一次交互记录，只作为 Relationship 的附属数据存在。
// type 为自由文本（call/text/visit/email/...），刻意不做枚举约束。
type Interaction struct {
	Id              int64      `gorm:"column:id;primaryKey;comment:雪花id"`
	RelationshipId  int64      `gorm:"column:relationship_id;not null;index;comment:所属人脉id"`
	Type            string     `gorm:"column:type;type:varchar(32);not null;comment:交互类型，自由文本"`
	DurationMinutes int        `gorm:"column:duration_minutes;not null;default:30;comment:时长(分钟)"`
	QualityScore    int        `gorm:"column:quality_score;not null;default:5;comment:质量分 1-10"`
	Notes           string     `gorm:"column:notes;type:varchar(1024);comment:备注"`
	Topics          StringList `gorm:"column:topics;type:varchar(512);comment:话题标签"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime;comment:交互时间，不可变"`
}

func (Interaction) TableName() string { return "interaction" }
