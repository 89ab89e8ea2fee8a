package graph

import "RelationServer/model"

// 圈层阈值：按当前健康分划分
const (
	// InnerCircleFloor 内圈门槛分
	InnerCircleFloor = 8
	// MiddleCircleFloor 中圈门槛分
	MiddleCircleFloor = 5
)

// Circle 一个圈层：静态描述 + 门槛分 + 成员列表。
type Circle struct {
	Name                string
	Description         string
	HealthScoreRequired int
	Members             []*model.Relationship
}

// Circles 三个圈层对全量人脉的一个划分：
// 每条人脉恰好落在一个圈层，不重不漏。
type Circles struct {
	Inner  Circle
	Middle Circle
	Outer  Circle
}

// ClassifyCircles 按当前健康分把人脉划分到内/中/外三圈。
//   - >= 8 内圈；
//   - 5-7 中圈；
//   - < 5  外圈。
func ClassifyCircles(rels []*model.Relationship) Circles {
	circles := Circles{
		Inner: Circle{
			Name:                "inner",
			Description:         "亲密信任的核心圈",
			HealthScoreRequired: InnerCircleFloor,
		},
		Middle: Circle{
			Name:                "middle",
			Description:         "常规往来的支持圈",
			HealthScoreRequired: MiddleCircleFloor,
		},
		Outer: Circle{
			Name:                "outer",
			Description:         "新朋友与点头之交",
			HealthScoreRequired: HealthScoreMin,
		},
	}

	for _, rel := range rels {
		switch {
		case rel.HealthScore >= InnerCircleFloor:
			circles.Inner.Members = append(circles.Inner.Members, rel)
		case rel.HealthScore >= MiddleCircleFloor:
			circles.Middle.Members = append(circles.Middle.Members, rel)
		default:
			circles.Outer.Members = append(circles.Outer.Members, rel)
		}
	}

	return circles
}
