package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"RelationServer/consts"
	"RelationServer/internal/dto"
	"RelationServer/internal/handler"
	"RelationServer/internal/service"
	"RelationServer/pkg/logger"
	"RelationServer/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var routerTestOnce sync.Once

func initRouterTestEnv(t *testing.T) {
	t.Helper()
	routerTestOnce.Do(func() {
		logger.ReplaceGlobal(zap.NewNop())
		gin.SetMode(gin.TestMode)
		util.InitJWT("router-test-secret")
	})
}

type fakeRouterRelationService struct {
	addPersonFn func(context.Context, string, *dto.AddPersonRequest) (*dto.RelationshipItem, error)
}

var _ service.IRelationService = (*fakeRouterRelationService)(nil)

func (f *fakeRouterRelationService) AddPerson(ctx context.Context, ownerUUID string, req *dto.AddPersonRequest) (*dto.RelationshipItem, error) {
	if f.addPersonFn == nil {
		return &dto.RelationshipItem{}, nil
	}
	return f.addPersonFn(ctx, ownerUUID, req)
}

func (f *fakeRouterRelationService) RecordInteraction(context.Context, string, int64, *dto.RecordInteractionRequest) (*dto.InteractionItem, error) {
	return &dto.InteractionItem{}, nil
}

type fakeRouterInsightService struct {
	getScoreFn func(context.Context, string) (*dto.GetSocialScoreResponse, error)
}

var _ service.IInsightService = (*fakeRouterInsightService)(nil)

func (f *fakeRouterInsightService) GetPerson(context.Context, string, int64) (*dto.RelationshipItem, error) {
	return &dto.RelationshipItem{}, nil
}

func (f *fakeRouterInsightService) GetRelationshipGraph(context.Context, string) (*dto.GetGraphResponse, error) {
	return &dto.GetGraphResponse{Summary: &dto.GraphSummary{}}, nil
}

func (f *fakeRouterInsightService) GetSocialCircles(context.Context, string) (*dto.GetCirclesResponse, error) {
	return &dto.GetCirclesResponse{}, nil
}

func (f *fakeRouterInsightService) GetSupportNetwork(context.Context, string) (*dto.GetSupportNetworkResponse, error) {
	return &dto.GetSupportNetworkResponse{}, nil
}

func (f *fakeRouterInsightService) GetSocialScore(ctx context.Context, ownerUUID string) (*dto.GetSocialScoreResponse, error) {
	if f.getScoreFn == nil {
		return &dto.GetSocialScoreResponse{}, nil
	}
	return f.getScoreFn(ctx, ownerUUID)
}

func newTestRouter(relSvc service.IRelationService, insightSvc service.IInsightService) *gin.Engine {
	return InitRouter(handler.NewRelationHandler(relSvc), handler.NewInsightHandler(insightSvc))
}

func TestRouterHealthAndMetrics(t *testing.T) {
	initRouterTestEnv(t)
	r := newTestRouter(&fakeRouterRelationService{}, &fakeRouterInsightService{})

	t.Run("health_is_public", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/health", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ok")
	})

	t.Run("metrics_is_public", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRouterAuthGuard(t *testing.T) {
	initRouterTestEnv(t)
	r := newTestRouter(&fakeRouterRelationService{}, &fakeRouterInsightService{})

	t.Run("missing_token_rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/relation/graph", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed_header_rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/relation/graph", nil)
		req.Header.Set("Authorization", "Token abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid_token_rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/relation/graph", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid_token_reaches_handler", func(t *testing.T) {
		token, err := util.GenerateToken("owner-1", time.Hour)
		require.NoError(t, err)

		var gotOwner string
		r := newTestRouter(&fakeRouterRelationService{}, &fakeRouterInsightService{
			getScoreFn: func(_ context.Context, ownerUUID string) (*dto.GetSocialScoreResponse, error) {
				gotOwner = ownerUUID
				return &dto.GetSocialScoreResponse{Score: 7}, nil
			},
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/relation/social-score", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "owner-1", gotOwner)

		var body struct {
			Code int `json:"code"`
			Data struct {
				Score int `json:"score"`
			} `json:"data"`
			TraceId string `json:"trace_id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, consts.CodeSuccess, body.Code)
		assert.Equal(t, 7, body.Data.Score)
		assert.NotEmpty(t, body.TraceId, "trace_id 必须随响应返回")
	})

	t.Run("person_detail_route_registered", func(t *testing.T) {
		token, err := util.GenerateToken("owner-1", time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/relation/person/100", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Code int `json:"code"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, consts.CodeSuccess, body.Code)
	})
}
