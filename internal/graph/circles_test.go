package graph

import (
	"testing"

	"RelationServer/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relWithScore(id int64, score int) *model.Relationship {
	return &model.Relationship{
		Id:           id,
		Name:         "测试人脉",
		RelationType: model.RelationTypeFriend,
		HealthScore:  score,
	}
}

func TestClassifyCircles(t *testing.T) {
	t.Run("thresholds", func(t *testing.T) {
		rels := []*model.Relationship{
			relWithScore(1, 10),
			relWithScore(2, 8),
			relWithScore(3, 7),
			relWithScore(4, 5),
			relWithScore(5, 4),
			relWithScore(6, 0),
		}

		circles := ClassifyCircles(rels)

		require.Len(t, circles.Inner.Members, 2)
		require.Len(t, circles.Middle.Members, 2)
		require.Len(t, circles.Outer.Members, 2)
		assert.Equal(t, int64(1), circles.Inner.Members[0].Id)
		assert.Equal(t, int64(2), circles.Inner.Members[1].Id)
		assert.Equal(t, int64(3), circles.Middle.Members[0].Id)
		assert.Equal(t, int64(5), circles.Outer.Members[0].Id)
	})

	t.Run("partition_is_complete_and_disjoint", func(t *testing.T) {
		// 覆盖全部分值 0-10，每条人脉恰好出现在一个圈层
		var rels []*model.Relationship
		for score := 0; score <= 10; score++ {
			rels = append(rels, relWithScore(int64(score+1), score))
		}

		circles := ClassifyCircles(rels)

		total := len(circles.Inner.Members) + len(circles.Middle.Members) + len(circles.Outer.Members)
		require.Equal(t, len(rels), total)

		seen := make(map[int64]int)
		for _, rel := range circles.Inner.Members {
			seen[rel.Id]++
		}
		for _, rel := range circles.Middle.Members {
			seen[rel.Id]++
		}
		for _, rel := range circles.Outer.Members {
			seen[rel.Id]++
		}
		for id, count := range seen {
			assert.Equal(t, 1, count, "relationship %d appears in more than one circle", id)
		}
	})

	t.Run("static_metadata", func(t *testing.T) {
		circles := ClassifyCircles(nil)

		assert.Equal(t, "inner", circles.Inner.Name)
		assert.Equal(t, InnerCircleFloor, circles.Inner.HealthScoreRequired)
		assert.Equal(t, "middle", circles.Middle.Name)
		assert.Equal(t, MiddleCircleFloor, circles.Middle.HealthScoreRequired)
		assert.Equal(t, "outer", circles.Outer.Name)
		assert.Equal(t, HealthScoreMin, circles.Outer.HealthScoreRequired)
		assert.NotEmpty(t, circles.Inner.Description)
		assert.Empty(t, circles.Inner.Members)
	})
}
