package dto

// ==================== 人脉写操作相关 DTO ====================

// AddPersonRequest 新建人脉请求 DTO
type AddPersonRequest struct {
	Name                   string   `json:"name" binding:"required,min=1,max=64"`              // 显示名称
	RelationshipType       string   `json:"relationshipType" binding:"required,max=32"`        // 关系类型（闭合枚举，服务层校验）
	SupportRoles           []string `json:"supportRoles" binding:"omitempty,max=6"`            // 支持角色标签
	Notes                  string   `json:"notes" binding:"omitempty,max=1024"`                // 备注
	ContactFrequencyTarget string   `json:"contactFrequencyTarget" binding:"omitempty,max=32"` // 期望联系频率，仅展示用
}

// RecordInteractionRequest 记录交互请求 DTO
// durationMinutes/qualityScore 缺省时由服务层补默认值（30 分钟 / 5 分）
type RecordInteractionRequest struct {
	Type            string   `json:"type" binding:"required,min=1,max=32"`     // 交互类型，自由文本（call/text/visit/email/...）
	DurationMinutes *int     `json:"durationMinutes" binding:"omitempty,min=0"` // 时长(分钟)
	QualityScore    *int     `json:"qualityScore" binding:"omitempty,min=1,max=10"` // 质量分 1-10
	Notes           string   `json:"notes" binding:"omitempty,max=1024"`       // 备注
	Topics          []string `json:"topics" binding:"omitempty,max=20"`        // 话题标签
}

// ==================== 人脉展示相关 DTO ====================

// InteractionItem 交互记录 DTO
type InteractionItem struct {
	Id              string   `json:"id"`              // 交互ID
	PersonId        string   `json:"personId"`        // 所属人脉ID
	Type            string   `json:"type"`            // 交互类型
	DurationMinutes int      `json:"durationMinutes"` // 时长(分钟)
	QualityScore    int      `json:"qualityScore"`    // 质量分
	Notes           string   `json:"notes"`           // 备注
	Topics          []string `json:"topics"`          // 话题标签
	Timestamp       int64    `json:"timestamp"`       // 交互时间（毫秒时间戳）
}

// RelationshipItem 人脉记录 DTO
type RelationshipItem struct {
	Id                     string             `json:"id"`                     // 人脉ID
	Name                   string             `json:"name"`                   // 显示名称
	RelationshipType       string             `json:"relationshipType"`       // 关系类型
	TypeLabel              string             `json:"typeLabel"`              // 关系类型展示名称
	TypeEmblem             string             `json:"typeEmblem"`             // 关系类型展示图标
	SupportRoles           []string           `json:"supportRoles"`           // 支持角色标签
	Notes                  string             `json:"notes"`                  // 备注
	ContactFrequencyTarget string             `json:"contactFrequencyTarget"` // 期望联系频率
	ContactCount           int                `json:"contactCount"`           // 累计交互次数
	HealthScore            int                `json:"healthScore"`            // 健康分 0-10
	LastContactAt          int64              `json:"lastContactAt"`          // 最近联系时间（毫秒时间戳）
	CreatedAt              int64              `json:"createdAt"`              // 创建时间（毫秒时间戳）
	Interactions           []*InteractionItem `json:"interactions"`           // 交互记录（插入顺序，最新在尾部）
}
