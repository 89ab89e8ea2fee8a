package graph

import (
	"strconv"
	"time"

	"RelationServer/model"
)

// SelfNodeID 可视化中 owner 节点的固定 id。
const SelfNodeID = "self"

// Node 可视化节点。owner 节点固定满分展示，不参与计算。
type Node struct {
	Id            string     `json:"id"`
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	Emblem        string     `json:"emblem,omitempty"`
	HealthScore   int        `json:"healthScore"`
	LastContactAt *time.Time `json:"lastContactAt,omitempty"`
}

// Link 无向边：每条人脉连接到 owner 节点，label 为关系类型。
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// Projection 可视化投影，任何时刻都能从存储状态整体重建。
type Projection struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// BuildProjection 从当前人脉列表构建星型可视化投影。
func BuildProjection(rels []*model.Relationship) Projection {
	nodes := make([]Node, 0, len(rels)+1)
	links := make([]Link, 0, len(rels))

	nodes = append(nodes, Node{
		Id:          SelfNodeID,
		Name:        "我",
		Type:        SelfNodeID,
		HealthScore: HealthScoreMax,
	})

	for _, rel := range rels {
		id := strconv.FormatInt(rel.Id, 10)
		lastContact := rel.LastContactAt
		nodes = append(nodes, Node{
			Id:            id,
			Name:          rel.Name,
			Type:          string(rel.RelationType),
			Emblem:        rel.RelationType.Meta().Emblem,
			HealthScore:   rel.HealthScore,
			LastContactAt: &lastContact,
		})
		links = append(links, Link{
			Source: SelfNodeID,
			Target: id,
			Label:  string(rel.RelationType),
		})
	}

	return Projection{Nodes: nodes, Links: links}
}
