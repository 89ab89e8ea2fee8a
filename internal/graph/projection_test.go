package graph

import (
	"testing"
	"time"

	"RelationServer/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProjection(t *testing.T) {
	t.Run("empty_owner_only_self_node", func(t *testing.T) {
		proj := BuildProjection(nil)

		require.Len(t, proj.Nodes, 1)
		assert.Equal(t, SelfNodeID, proj.Nodes[0].Id)
		assert.Equal(t, HealthScoreMax, proj.Nodes[0].HealthScore)
		assert.Empty(t, proj.Links)
	})

	t.Run("star_topology", func(t *testing.T) {
		lastContact := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
		rels := []*model.Relationship{
			{
				Id:            100,
				Name:          "阿明",
				RelationType:  model.RelationTypeFamily,
				HealthScore:   9,
				LastContactAt: lastContact,
			},
			{
				Id:            200,
				Name:          "老王",
				RelationType:  model.RelationTypeColleague,
				HealthScore:   4,
				LastContactAt: lastContact,
			},
		}

		proj := BuildProjection(rels)

		require.Len(t, proj.Nodes, 3)
		require.Len(t, proj.Links, 2)

		// 每条人脉一个节点，一条指向 self 的边
		assert.Equal(t, "100", proj.Nodes[1].Id)
		assert.Equal(t, "阿明", proj.Nodes[1].Name)
		assert.Equal(t, "family", proj.Nodes[1].Type)
		assert.Equal(t, 9, proj.Nodes[1].HealthScore)
		require.NotNil(t, proj.Nodes[1].LastContactAt)
		assert.True(t, proj.Nodes[1].LastContactAt.Equal(lastContact))

		for i, link := range proj.Links {
			assert.Equal(t, SelfNodeID, link.Source)
			assert.Equal(t, proj.Nodes[i+1].Id, link.Target)
			assert.Equal(t, proj.Nodes[i+1].Type, link.Label)
		}
	})

	t.Run("rebuild_is_stable", func(t *testing.T) {
		rels := []*model.Relationship{
			{Id: 1, Name: "小李", RelationType: model.RelationTypeMentor, HealthScore: 8},
		}

		first := BuildProjection(rels)
		second := BuildProjection(rels)
		assert.Equal(t, first, second)
	})
}
