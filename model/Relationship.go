package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringList JSON 编码的字符串列表字段（支持角色/话题标签）。
// 存储为 varchar，读写时 JSON 序列化，避免为小列表建关联表。
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("StringList: unsupported scan type")
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

// Relationship 一条人脉记录（Person），归属于唯一的 owner。
// 约束：health_score 只由交互记录流程写入，客户端不可直接提交；
// interactions 只追加，不删除不重排。
type Relationship struct {
	Id                     int64        `gorm:"column:id;primaryKey;comment:雪花id"`
	OwnerUuid              string       `gorm:"column:owner_uuid;type:char(36);not null;index:idx_owner_created;comment:归属用户uuid"`
	Name                   string       `gorm:"column:name;type:varchar(64);not null;comment:显示名称"`
	RelationType           RelationType `gorm:"column:relation_type;type:varchar(32);not null;comment:关系类型"`
	SupportRoles           StringList   `gorm:"column:support_roles;type:varchar(255);comment:支持角色标签"`
	Notes                  string       `gorm:"column:notes;type:varchar(1024);comment:备注"`
	ContactFrequencyTarget string       `gorm:"column:contact_frequency_target;type:varchar(32);comment:期望联系频率，仅展示用"`
	ContactCount           int          `gorm:"column:contact_count;not null;default:0;comment:累计交互次数"`
	HealthScore            int          `gorm:"column:health_score;not null;default:5;comment:健康分 0-10，派生字段"`
	LastContactAt          time.Time    `gorm:"column:last_contact_at;not null;comment:最近联系时间"`
	CreatedAt              time.Time    `gorm:"column:created_at;index:idx_owner_created;autoCreateTime"`
	UpdatedAt              time.Time    `gorm:"column:updated_at;autoUpdateTime"`

	Interactions []*Interaction `gorm:"foreignKey:RelationshipId;references:Id"`
}

func (Relationship) TableName() string { return "relationship" }

// Roles 返回去重后的支持角色集合（只保留合法枚举值）。
func (r *Relationship) Roles() []SupportRole {
	seen := make(map[SupportRole]struct{}, len(r.SupportRoles))
	roles := make([]SupportRole, 0, len(r.SupportRoles))
	for _, raw := range r.SupportRoles {
		role, ok := ParseSupportRole(raw)
		if !ok {
			continue
		}
		if _, dup := seen[role]; dup {
			continue
		}
		seen[role] = struct{}{}
		roles = append(roles, role)
	}
	return roles
}
