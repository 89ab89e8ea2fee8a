package model

// RelationType 关系类型，闭合枚举，创建时校验。
type RelationType string

const (
	RelationTypeFamily       RelationType = "family"       // 家人
	RelationTypeCloseFriend  RelationType = "close_friend" // 挚友
	RelationTypeFriend       RelationType = "friend"       // 朋友
	RelationTypeColleague    RelationType = "colleague"    // 同事
	RelationTypeMentor       RelationType = "mentor"       // 导师
	RelationTypeMentee       RelationType = "mentee"       // 学员
	RelationTypeRomantic     RelationType = "romantic"     // 伴侣
	RelationTypeAcquaintance RelationType = "acquaintance" // 点头之交
)

// RelationTypeMeta 关系类型展示元数据。
// 与枚举校验分离：改文案/图标不影响校验逻辑。
type RelationTypeMeta struct {
	Label  string // 展示名称
	Emblem string // 展示图标
}

var relationTypeMeta = map[RelationType]RelationTypeMeta{
	RelationTypeFamily:       {Label: "家人", Emblem: "👪"},
	RelationTypeCloseFriend:  {Label: "挚友", Emblem: "💖"},
	RelationTypeFriend:       {Label: "朋友", Emblem: "😊"},
	RelationTypeColleague:    {Label: "同事", Emblem: "💼"},
	RelationTypeMentor:       {Label: "导师", Emblem: "🎓"},
	RelationTypeMentee:       {Label: "学员", Emblem: "🌱"},
	RelationTypeRomantic:     {Label: "伴侣", Emblem: "❤️"},
	RelationTypeAcquaintance: {Label: "点头之交", Emblem: "👋"},
}

// AllRelationTypes 全部合法关系类型（声明顺序固定）。
var AllRelationTypes = []RelationType{
	RelationTypeFamily,
	RelationTypeCloseFriend,
	RelationTypeFriend,
	RelationTypeColleague,
	RelationTypeMentor,
	RelationTypeMentee,
	RelationTypeRomantic,
	RelationTypeAcquaintance,
}

// ParseRelationType 校验并转换关系类型字符串。
func ParseRelationType(raw string) (RelationType, bool) {
	t := RelationType(raw)
	_, ok := relationTypeMeta[t]
	return t, ok
}

// Meta 返回关系类型的展示元数据，未知类型返回零值。
func (t RelationType) Meta() RelationTypeMeta {
	return relationTypeMeta[t]
}
