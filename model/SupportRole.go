package model

// SupportRole 支持角色标签，闭合枚举，创建时逐个校验。
// 一条人脉可以持有 0 个或多个角色。
type SupportRole string

const (
	SupportRoleEmotional    SupportRole = "emotional"    // 情感支持
	SupportRolePractical    SupportRole = "practical"    // 生活帮助
	SupportRoleHealth       SupportRole = "health"       // 健康支持
	SupportRoleFinancial    SupportRole = "financial"    // 财务支持
	SupportRoleProfessional SupportRole = "professional" // 职业支持
	SupportRoleSocial       SupportRole = "social"       // 社交陪伴
)

var supportRoleLabel = map[SupportRole]string{
	SupportRoleEmotional:    "情感支持",
	SupportRolePractical:    "生活帮助",
	SupportRoleHealth:       "健康支持",
	SupportRoleFinancial:    "财务支持",
	SupportRoleProfessional: "职业支持",
	SupportRoleSocial:       "社交陪伴",
}

// AllSupportRoles 全部合法支持角色（声明顺序固定，gap 报告按此顺序输出）。
var AllSupportRoles = []SupportRole{
	SupportRoleEmotional,
	SupportRolePractical,
	SupportRoleHealth,
	SupportRoleFinancial,
	SupportRoleProfessional,
	SupportRoleSocial,
}

// ParseSupportRole 校验并转换支持角色字符串。
func ParseSupportRole(raw string) (SupportRole, bool) {
	r := SupportRole(raw)
	_, ok := supportRoleLabel[r]
	return r, ok
}

// Label 返回支持角色的展示名称。
func (r SupportRole) Label() string {
	return supportRoleLabel[r]
}
