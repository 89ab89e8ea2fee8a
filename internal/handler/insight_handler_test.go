package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"RelationServer/consts"
	"RelationServer/internal/dto"
	"RelationServer/internal/repository"
	"RelationServer/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInsightService struct {
	getPersonFn         func(context.Context, string, int64) (*dto.RelationshipItem, error)
	getGraphFn          func(context.Context, string) (*dto.GetGraphResponse, error)
	getCirclesFn        func(context.Context, string) (*dto.GetCirclesResponse, error)
	getSupportNetworkFn func(context.Context, string) (*dto.GetSupportNetworkResponse, error)
	getSocialScoreFn    func(context.Context, string) (*dto.GetSocialScoreResponse, error)
}

var _ service.IInsightService = (*fakeInsightService)(nil)

func (f *fakeInsightService) GetPerson(ctx context.Context, ownerUUID string, personID int64) (*dto.RelationshipItem, error) {
	if f.getPersonFn == nil {
		return &dto.RelationshipItem{}, nil
	}
	return f.getPersonFn(ctx, ownerUUID, personID)
}

func (f *fakeInsightService) GetRelationshipGraph(ctx context.Context, ownerUUID string) (*dto.GetGraphResponse, error) {
	if f.getGraphFn == nil {
		return &dto.GetGraphResponse{}, nil
	}
	return f.getGraphFn(ctx, ownerUUID)
}

func (f *fakeInsightService) GetSocialCircles(ctx context.Context, ownerUUID string) (*dto.GetCirclesResponse, error) {
	if f.getCirclesFn == nil {
		return &dto.GetCirclesResponse{}, nil
	}
	return f.getCirclesFn(ctx, ownerUUID)
}

func (f *fakeInsightService) GetSupportNetwork(ctx context.Context, ownerUUID string) (*dto.GetSupportNetworkResponse, error) {
	if f.getSupportNetworkFn == nil {
		return &dto.GetSupportNetworkResponse{}, nil
	}
	return f.getSupportNetworkFn(ctx, ownerUUID)
}

func (f *fakeInsightService) GetSocialScore(ctx context.Context, ownerUUID string) (*dto.GetSocialScoreResponse, error) {
	if f.getSocialScoreFn == nil {
		return &dto.GetSocialScoreResponse{}, nil
	}
	return f.getSocialScoreFn(ctx, ownerUUID)
}

func TestInsightHandlerGetPerson(t *testing.T) {
	initHandlerTestEnv()

	t.Run("success", func(t *testing.T) {
		var (
			gotOwner  string
			gotPerson int64
		)
		h := NewInsightHandler(&fakeInsightService{
			getPersonFn: func(_ context.Context, ownerUUID string, personID int64) (*dto.RelationshipItem, error) {
				gotOwner = ownerUUID
				gotPerson = personID
				return &dto.RelationshipItem{Id: "100", Name: "阿明"}, nil
			},
		})

		w := httptest.NewRecorder()
		req := newJSONRequest(t, http.MethodGet, "/api/v1/relation/person/100", "")
		c := newAuthedTestContext(w, req, "owner-1")
		c.Params = gin.Params{{Key: "personId", Value: "100"}}

		h.GetPerson(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, consts.CodeSuccess, decodeResultCode(t, w))
		assert.Equal(t, "owner-1", gotOwner)
		assert.EqualValues(t, 100, gotPerson)
	})

	t.Run("unauthorized", func(t *testing.T) {
		h := NewInsightHandler(&fakeInsightService{})

		w := httptest.NewRecorder()
		req := newJSONRequest(t, http.MethodGet, "/api/v1/relation/person/100", "")
		c := newAuthedTestContext(w, req, "")
		c.Params = gin.Params{{Key: "personId", Value: "100"}}

		h.GetPerson(c)

		assert.Equal(t, consts.CodeUnauthorized, decodeResultCode(t, w))
	})

	t.Run("invalid_person_id", func(t *testing.T) {
		h := NewInsightHandler(&fakeInsightService{})

		for _, raw := range []string{"abc", "-5", "0", ""} {
			w := httptest.NewRecorder()
			req := newJSONRequest(t, http.MethodGet, "/api/v1/relation/person/"+raw, "")
			c := newAuthedTestContext(w, req, "owner-1")
			c.Params = gin.Params{{Key: "personId", Value: raw}}

			h.GetPerson(c)

			assert.Equal(t, consts.CodeParamError, decodeResultCode(t, w), raw)
		}
	})

	t.Run("relationship_not_found", func(t *testing.T) {
		h := NewInsightHandler(&fakeInsightService{
			getPersonFn: func(context.Context, string, int64) (*dto.RelationshipItem, error) {
				return nil, service.ErrRelationshipNotFound
			},
		})

		w := httptest.NewRecorder()
		req := newJSONRequest(t, http.MethodGet, "/api/v1/relation/person/404", "")
		c := newAuthedTestContext(w, req, "owner-1")
		c.Params = gin.Params{{Key: "personId", Value: "404"}}

		h.GetPerson(c)

		assert.Equal(t, consts.CodeRelationNotFound, decodeResultCode(t, w))
	})
}

func TestInsightHandlerGetGraph(t *testing.T) {
	initHandlerTestEnv()

	t.Run("success", func(t *testing.T) {
		var gotOwner string
		h := NewInsightHandler(&fakeInsightService{
			getGraphFn: func(_ context.Context, ownerUUID string) (*dto.GetGraphResponse, error) {
				gotOwner = ownerUUID
				return &dto.GetGraphResponse{Summary: &dto.GraphSummary{RelationshipCount: 2}}, nil
			},
		})

		w := httptest.NewRecorder()
		req := newJSONRequest(t, http.MethodGet, "/api/v1/relation/graph", "")
		c := newAuthedTestContext(w, req, "owner-1")

		h.GetGraph(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, consts.CodeSuccess, decodeResultCode(t, w))
		assert.Equal(t, "owner-1", gotOwner)
	})

	t.Run("unauthorized", func(t *testing.T) {
		h := NewInsightHandler(&fakeInsightService{})

		w := httptest.NewRecorder()
		req := newJSONRequest(t, http.MethodGet, "/api/v1/relation/graph", "")
		c := newAuthedTestContext(w, req, "")

		h.GetGraph(c)

		assert.Equal(t, consts.CodeUnauthorized, decodeResultCode(t, w))
	})

	t.Run("storage_unavailable", func(t *testing.T) {
		h := NewInsightHandler(&fakeInsightService{
			getGraphFn: func(context.Context, string) (*dto.GetGraphResponse, error) {
				return nil, repository.ErrStorageUnavailable
			},
		})

		w := httptest.NewRecorder()
		req := newJSONRequest(t, http.MethodGet, "/api/v1/relation/graph", "")
		c := newAuthedTestContext(w, req, "owner-1")

		h.GetGraph(c)

		assert.Equal(t, consts.CodeServiceUnavailable, decodeResultCode(t, w))
	})
}

func TestInsightHandlerReadEndpoints(t *testing.T) {
	initHandlerTestEnv()

	t.Run("circles", func(t *testing.T) {
		h := NewInsightHandler(&fakeInsightService{
			getCirclesFn: func(context.Context, string) (*dto.GetCirclesResponse, error) {
				return &dto.GetCirclesResponse{
					InnerCircle:  &dto.CircleItem{Name: "inner"},
					MiddleCircle: &dto.CircleItem{Name: "middle"},
					OuterCircle:  &dto.CircleItem{Name: "outer"},
				}, nil
			},
		})

		w := httptest.NewRecorder()
		req := newJSONRequest(t, http.MethodGet, "/api/v1/relation/circles", "")
		c := newAuthedTestContext(w, req, "owner-1")

		h.GetCircles(c)

		require.Equal(t, consts.CodeSuccess, decodeResultCode(t, w))
	})

	t.Run("support_network", func(t *testing.T) {
		h := NewInsightHandler(&fakeInsightService{
			getSupportNetworkFn: func(context.Context, string) (*dto.GetSupportNetworkResponse, error) {
				return &dto.GetSupportNetworkResponse{
					ByRole: map[string][]*dto.RelationshipItem{"emotional": {}},
					Gaps:   []*dto.GapItem{{Role: "practical", Recommendation: "补上"}},
				}, nil
			},
		})

		w := httptest.NewRecorder()
		req := newJSONRequest(t, http.MethodGet, "/api/v1/relation/support-network", "")
		c := newAuthedTestContext(w, req, "owner-1")

		h.GetSupportNetwork(c)

		require.Equal(t, consts.CodeSuccess, decodeResultCode(t, w))
	})

	t.Run("social_score", func(t *testing.T) {
		h := NewInsightHandler(&fakeInsightService{
			getSocialScoreFn: func(context.Context, string) (*dto.GetSocialScoreResponse, error) {
				return &dto.GetSocialScoreResponse{Score: 8}, nil
			},
		})

		w := httptest.NewRecorder()
		req := newJSONRequest(t, http.MethodGet, "/api/v1/relation/social-score", "")
		c := newAuthedTestContext(w, req, "owner-1")

		h.GetSocialScore(c)

		require.Equal(t, consts.CodeSuccess, decodeResultCode(t, w))
	})

	t.Run("unauthorized_on_all", func(t *testing.T) {
		h := NewInsightHandler(&fakeInsightService{})

		endpoints := []struct {
			name   string
			target string
			call   func(*gin.Context)
		}{
			{"circles", "/api/v1/relation/circles", h.GetCircles},
			{"support_network", "/api/v1/relation/support-network", h.GetSupportNetwork},
			{"social_score", "/api/v1/relation/social-score", h.GetSocialScore},
		}
		for _, ep := range endpoints {
			w := httptest.NewRecorder()
			req := newJSONRequest(t, http.MethodGet, ep.target, "")
			c := newAuthedTestContext(w, req, "")

			ep.call(c)

			assert.Equal(t, consts.CodeUnauthorized, decodeResultCode(t, w), ep.name)
		}
	})
}
