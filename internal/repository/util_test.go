package repository

import (
	"errors"
	"testing"
	"time"

	"RelationServer/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRandomExpireTime(t *testing.T) {
	base := time.Hour
	for i := 0; i < 100; i++ {
		got := getRandomExpireTime(base)
		assert.GreaterOrEqual(t, got, time.Duration(float64(base)*0.9))
		assert.LessOrEqual(t, got, time.Duration(float64(base)*1.1))
	}
}

func TestIsRedisWrongType(t *testing.T) {
	assert.False(t, isRedisWrongType(nil))
	assert.False(t, isRedisWrongType(errors.New("connection refused")))
	assert.True(t, isRedisWrongType(errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")))
}

func TestRelationListCodec(t *testing.T) {
	t.Run("empty_list_round_trip", func(t *testing.T) {
		raw, err := marshalRelationList([]*model.Relationship{})
		require.NoError(t, err)

		rels, err := unmarshalRelationList(raw)
		require.NoError(t, err)
		assert.Empty(t, rels)
	})

	t.Run("interactions_preserved_in_order", func(t *testing.T) {
		now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
		in := []*model.Relationship{
			{
				Id:            1,
				OwnerUuid:     "owner-1",
				Name:          "阿明",
				RelationType:  model.RelationTypeFamily,
				SupportRoles:  model.StringList{"emotional"},
				HealthScore:   8,
				LastContactAt: now,
				Interactions: []*model.Interaction{
					{Id: 11, RelationshipId: 1, Type: "call", QualityScore: 7, CreatedAt: now},
					{Id: 12, RelationshipId: 1, Type: "visit", QualityScore: 9, CreatedAt: now},
				},
			},
		}

		raw, err := marshalRelationList(in)
		require.NoError(t, err)
		out, err := unmarshalRelationList(raw)
		require.NoError(t, err)

		require.Len(t, out, 1)
		assert.Equal(t, in[0].Id, out[0].Id)
		assert.Equal(t, in[0].HealthScore, out[0].HealthScore)
		require.Len(t, out[0].Interactions, 2)
		assert.Equal(t, int64(11), out[0].Interactions[0].Id)
		assert.Equal(t, int64(12), out[0].Interactions[1].Id)
	})

	t.Run("corrupt_payload_fails", func(t *testing.T) {
		_, err := unmarshalRelationList("{not json")
		require.Error(t, err)
	})
}
