package graph

import (
	"fmt"
	"math"

	"RelationServer/model"
)

// Gap 一个没有任何人承担的支持角色。
type Gap struct {
	Role           model.SupportRole
	Recommendation string
}

// SupportNetwork 支持网络报告：
// ByRole 只包含至少有一个提供者的角色；没有提供者的角色进入 Gaps。
// 两者对完整角色枚举互补且不相交。
type SupportNetwork struct {
	ByRole map[model.SupportRole][]*model.Relationship
	Gaps   []Gap
}

// BuildSupportNetwork 按声明的支持角色聚合人脉。
// 一条人脉声明了多个角色时会出现在每个角色下；纯聚合，不修改任何输入。
func BuildSupportNetwork(rels []*model.Relationship) SupportNetwork {
	byRole := make(map[model.SupportRole][]*model.Relationship)
	for _, rel := range rels {
		for _, role := range rel.Roles() {
			byRole[role] = append(byRole[role], rel)
		}
	}

	// gap 按枚举声明顺序输出，保证报告稳定
	var gaps []Gap
	for _, role := range model.AllSupportRoles {
		if len(byRole[role]) > 0 {
			continue
		}
		gaps = append(gaps, Gap{
			Role:           role,
			Recommendation: fmt.Sprintf("你的支持网络中还没有能提供%s的人，想想谁可以补上这一环", role.Label()),
		})
	}

	return SupportNetwork{ByRole: byRole, Gaps: gaps}
}

// CalculateSocialScore 计算社交支柱综合分。
// 算法：基础 5 + 规模项（>15:+3 / >10:+2 / >5:+1）
// + (平均健康分-5)/2（无人脉时记 0）
// + min(2, 覆盖角色数/3)，夹取 [0,10] 后四舍五入。
func CalculateSocialScore(rels []*model.Relationship) int {
	score := 5.0

	// 规模项
	n := len(rels)
	switch {
	case n > 15:
		score += 3
	case n > 10:
		score += 2
	case n > 5:
		score += 1
	}

	// 平均健康项（防除零）
	if n > 0 {
		sum := 0
		for _, rel := range rels {
			sum += rel.HealthScore
		}
		avg := float64(sum) / float64(n)
		score += (avg - 5) / 2
	}

	// 多样性项
	covered := len(BuildSupportNetwork(rels).ByRole)
	score += math.Min(2, float64(covered)/3)

	return clampRound(score)
}
