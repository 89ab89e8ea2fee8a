package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"RelationServer/internal/dto"
	"RelationServer/internal/graph"
	"RelationServer/internal/repository"
	"RelationServer/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insightTestRelationships() []*model.Relationship {
	lastContact := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return []*model.Relationship{
		{
			Id:            1,
			OwnerUuid:     "owner-1",
			Name:          "阿明",
			RelationType:  model.RelationTypeFamily,
			SupportRoles:  model.StringList{"emotional", "health"},
			HealthScore:   9,
			LastContactAt: lastContact,
			Interactions: []*model.Interaction{
				{Id: 11, RelationshipId: 1, Type: "call", QualityScore: 9, CreatedAt: lastContact},
				{Id: 12, RelationshipId: 1, Type: "visit", QualityScore: 8, CreatedAt: lastContact},
			},
		},
		{
			Id:            2,
			OwnerUuid:     "owner-1",
			Name:          "老王",
			RelationType:  model.RelationTypeColleague,
			SupportRoles:  model.StringList{"professional"},
			HealthScore:   6,
			LastContactAt: lastContact,
		},
		{
			Id:            3,
			OwnerUuid:     "owner-1",
			Name:          "小李",
			RelationType:  model.RelationTypeAcquaintance,
			HealthScore:   3,
			LastContactAt: lastContact,
		},
	}
}

func TestInsightServiceGetPerson(t *testing.T) {
	initServiceTestEnv(t)

	t.Run("returns_item_with_interactions", func(t *testing.T) {
		rel := insightTestRelationships()[0]
		svc := NewInsightService(&fakeRelationshipRepo{
			getPersonFn: func(_ context.Context, ownerUUID string, personID int64) (*model.Relationship, error) {
				assert.Equal(t, "owner-1", ownerUUID)
				assert.EqualValues(t, 1, personID)
				return rel, nil
			},
		}, newTestSnapshotCache(t))

		item, err := svc.GetPerson(context.Background(), "owner-1", 1)
		require.NoError(t, err)
		assert.Equal(t, "1", item.Id)
		assert.Equal(t, "阿明", item.Name)
		require.Len(t, item.Interactions, 2)
	})

	t.Run("not_found_mapped", func(t *testing.T) {
		svc := NewInsightService(&fakeRelationshipRepo{}, newTestSnapshotCache(t))

		item, err := svc.GetPerson(context.Background(), "owner-1", 404)
		require.Nil(t, item)
		require.ErrorIs(t, err, ErrRelationshipNotFound)
	})

	t.Run("repository_error_passthrough", func(t *testing.T) {
		svc := NewInsightService(&fakeRelationshipRepo{
			getPersonFn: func(context.Context, string, int64) (*model.Relationship, error) {
				return nil, repository.ErrDatabase
			},
		}, newTestSnapshotCache(t))

		_, err := svc.GetPerson(context.Background(), "owner-1", 1)
		require.ErrorIs(t, err, repository.ErrDatabase)
	})
}

func TestInsightServiceGetRelationshipGraph(t *testing.T) {
	initServiceTestEnv(t)

	t.Run("summary_and_visualization", func(t *testing.T) {
		svc := NewInsightService(&fakeRelationshipRepo{
			getRelationshipsFn: func(_ context.Context, ownerUUID string) ([]*model.Relationship, error) {
				assert.Equal(t, "owner-1", ownerUUID)
				return insightTestRelationships(), nil
			},
		}, newTestSnapshotCache(t))

		resp, err := svc.GetRelationshipGraph(context.Background(), "owner-1")
		require.NoError(t, err)
		require.NotNil(t, resp)

		require.Len(t, resp.Relationships, 3)
		assert.Equal(t, 3, resp.Summary.RelationshipCount)
		assert.Equal(t, 2, resp.Summary.InteractionCount)
		assert.InDelta(t, 6.0, resp.Summary.AverageHealthScore, 0.001)
		assert.Equal(t, 1, resp.Summary.InnerCount)
		assert.Equal(t, 1, resp.Summary.MiddleCount)
		assert.Equal(t, 1, resp.Summary.OuterCount)

		// self 节点 + 每条人脉一个节点，一条星型边
		require.Len(t, resp.Visualization.Nodes, 4)
		require.Len(t, resp.Visualization.Links, 3)
		assert.Equal(t, graph.SelfNodeID, resp.Visualization.Nodes[0].Id)
	})

	t.Run("empty_owner_is_not_an_error", func(t *testing.T) {
		svc := NewInsightService(&fakeRelationshipRepo{}, newTestSnapshotCache(t))

		resp, err := svc.GetRelationshipGraph(context.Background(), "owner-empty")
		require.NoError(t, err)

		assert.Empty(t, resp.Relationships)
		assert.Equal(t, 0, resp.Summary.RelationshipCount)
		assert.Zero(t, resp.Summary.AverageHealthScore)
		require.Len(t, resp.Visualization.Nodes, 1)
		assert.Empty(t, resp.Visualization.Links)
	})

	t.Run("repository_error_passthrough", func(t *testing.T) {
		svc := NewInsightService(&fakeRelationshipRepo{
			getRelationshipsFn: func(context.Context, string) ([]*model.Relationship, error) {
				return nil, repository.ErrDatabase
			},
		}, newTestSnapshotCache(t))

		resp, err := svc.GetRelationshipGraph(context.Background(), "owner-1")
		require.Nil(t, resp)
		require.ErrorIs(t, err, repository.ErrDatabase)
	})

	t.Run("snapshot_hit_skips_repository", func(t *testing.T) {
		var repoCalls int
		svc := NewInsightService(&fakeRelationshipRepo{
			getRelationshipsFn: func(context.Context, string) ([]*model.Relationship, error) {
				repoCalls++
				return insightTestRelationships(), nil
			},
		}, newTestSnapshotCache(t))

		_, err := svc.GetRelationshipGraph(context.Background(), "owner-1")
		require.NoError(t, err)
		_, err = svc.GetSocialCircles(context.Background(), "owner-1")
		require.NoError(t, err)
		_, err = svc.GetSocialScore(context.Background(), "owner-1")
		require.NoError(t, err)

		assert.Equal(t, 1, repoCalls, "快照命中后读投影不应重复回源")
	})
}

// 读方回源期间同一 owner 有写入提交时，回源拿到的是提交前的旧列表，
// 不允许回填进快照：否则旧健康分会一直被读到，直到该 owner 下一次写入。
func TestInsightServiceStaleBackfillDroppedAfterWrite(t *testing.T) {
	initServiceTestEnv(t)

	stale := insightTestRelationships()
	fresh := insightTestRelationships()
	fresh[2].HealthScore = 6
	fresh[2].ContactCount = 1

	var repoCalls int32
	entered := make(chan struct{})
	release := make(chan struct{})

	repo := &fakeRelationshipRepo{
		getRelationshipsFn: func(context.Context, string) ([]*model.Relationship, error) {
			if atomic.AddInt32(&repoCalls, 1) == 1 {
				// 第一次回源卡在写入事务提交前，返回旧状态
				close(entered)
				<-release
				return stale, nil
			}
			return fresh, nil
		},
		recordInteractionFn: func(context.Context, string, *model.Interaction) (*model.Relationship, error) {
			return fresh[2], nil
		},
	}

	snapshots := newTestSnapshotCache(t)
	insightSvc := NewInsightService(repo, snapshots)
	relationSvc := NewRelationService(repo, snapshots)

	firstRead := make(chan error, 1)
	go func() {
		_, err := insightSvc.GetSocialScore(context.Background(), "owner-1")
		firstRead <- err
	}()

	// 读方回源挂起期间完成一次写入（快照已失效）
	<-entered
	_, err := relationSvc.RecordInteraction(context.Background(), "owner-1", 3, &dto.RecordInteractionRequest{
		Type: "call",
	})
	require.NoError(t, err)

	close(release)
	require.NoError(t, <-firstRead)

	// 旧列表不得留在快照里：后续读必须重新回源拿到写入后的状态
	resp, err := insightSvc.GetSocialCircles(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, resp.MiddleCircle.Members, 2)
	assert.Empty(t, resp.OuterCircle.Members)
	assert.EqualValues(t, 2, atomic.LoadInt32(&repoCalls))
}

func TestInsightServiceGetSocialCircles(t *testing.T) {
	initServiceTestEnv(t)

	svc := NewInsightService(&fakeRelationshipRepo{
		getRelationshipsFn: func(context.Context, string) ([]*model.Relationship, error) {
			return insightTestRelationships(), nil
		},
	}, newTestSnapshotCache(t))

	resp, err := svc.GetSocialCircles(context.Background(), "owner-1")
	require.NoError(t, err)

	assert.Equal(t, "inner", resp.InnerCircle.Name)
	assert.Equal(t, graph.InnerCircleFloor, resp.InnerCircle.HealthScoreRequired)
	require.Len(t, resp.InnerCircle.Members, 1)
	assert.Equal(t, "1", resp.InnerCircle.Members[0].Id)

	require.Len(t, resp.MiddleCircle.Members, 1)
	assert.Equal(t, "2", resp.MiddleCircle.Members[0].Id)

	require.Len(t, resp.OuterCircle.Members, 1)
	assert.Equal(t, "3", resp.OuterCircle.Members[0].Id)
}

func TestInsightServiceGetSupportNetwork(t *testing.T) {
	initServiceTestEnv(t)

	svc := NewInsightService(&fakeRelationshipRepo{
		getRelationshipsFn: func(context.Context, string) ([]*model.Relationship, error) {
			return insightTestRelationships(), nil
		},
	}, newTestSnapshotCache(t))

	resp, err := svc.GetSupportNetwork(context.Background(), "owner-1")
	require.NoError(t, err)

	// 覆盖 emotional/health/professional，其余角色进缺口
	require.Len(t, resp.ByRole, 3)
	require.Len(t, resp.ByRole["emotional"], 1)
	require.Len(t, resp.ByRole["health"], 1)
	require.Len(t, resp.ByRole["professional"], 1)
	assert.Equal(t, "1", resp.ByRole["emotional"][0].Id)

	require.Len(t, resp.Gaps, len(model.AllSupportRoles)-3)
	for _, gap := range resp.Gaps {
		assert.NotContains(t, resp.ByRole, gap.Role)
		assert.NotEmpty(t, gap.RoleLabel)
		assert.NotEmpty(t, gap.Recommendation)
	}
}

func TestInsightServiceGetSocialScore(t *testing.T) {
	initServiceTestEnv(t)

	t.Run("matches_pure_calculation", func(t *testing.T) {
		rels := insightTestRelationships()
		svc := NewInsightService(&fakeRelationshipRepo{
			getRelationshipsFn: func(context.Context, string) ([]*model.Relationship, error) {
				return rels, nil
			},
		}, newTestSnapshotCache(t))

		resp, err := svc.GetSocialScore(context.Background(), "owner-1")
		require.NoError(t, err)
		assert.Equal(t, graph.CalculateSocialScore(rels), resp.Score)
		assert.GreaterOrEqual(t, resp.Score, graph.HealthScoreMin)
		assert.LessOrEqual(t, resp.Score, graph.HealthScoreMax)
	})

	t.Run("empty_owner_scores_base", func(t *testing.T) {
		svc := NewInsightService(&fakeRelationshipRepo{}, newTestSnapshotCache(t))

		resp, err := svc.GetSocialScore(context.Background(), "owner-empty")
		require.NoError(t, err)
		assert.Equal(t, 5, resp.Score)
	})
}
