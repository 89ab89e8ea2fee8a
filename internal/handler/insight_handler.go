package handler

import (
	"strconv"

	"RelationServer/consts"
	"RelationServer/internal/middleware"
	"RelationServer/internal/service"
	"RelationServer/pkg/logger"
	"RelationServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// InsightHandler 图谱读接口处理器
// 所有接口均为只读，失败时统一走错误码映射
type InsightHandler struct {
	insightService service.IInsightService
}

// NewInsightHandler 创建图谱读接口处理器
func NewInsightHandler(insightService service.IInsightService) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
	}
}

// GetPerson 获取单条人脉接口
// @Summary 获取人脉详情
// @Description 获取指定人脉的详细信息与交互记录
// @Tags 图谱接口
// @Produce json
// @Param personId path string true "人脉 ID"
// @Success 200 {object} dto.RelationshipItem
// @Router /api/v1/relation/person/{personId} [get]
func (h *InsightHandler) GetPerson(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	ownerUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	personID, err := strconv.ParseInt(c.Param("personId"), 10, 64)
	if err != nil || personID <= 0 {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	item, err := h.insightService.GetPerson(ctx, ownerUUID, personID)
	if err != nil {
		code := mapServiceError(err)
		if !consts.IsNonServerError(code) {
			logger.Error(ctx, "获取人脉详情服务内部错误",
				logger.Int64("person_id", personID),
				logger.ErrorField("error", err),
			)
		}
		result.Fail(c, nil, code)
		return
	}

	result.Success(c, item)
}

// GetGraph 获取全量图谱接口
// @Summary 获取关系图谱
// @Description 获取当前用户的人脉列表、概览统计与可视化投影
// @Tags 图谱接口
// @Produce json
// @Success 200 {object} dto.GetGraphResponse
// @Router /api/v1/relation/graph [get]
func (h *InsightHandler) GetGraph(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	ownerUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	resp, err := h.insightService.GetRelationshipGraph(ctx, ownerUUID)
	if err != nil {
		code := mapServiceError(err)
		if !consts.IsNonServerError(code) {
			logger.Error(ctx, "获取关系图谱服务内部错误",
				logger.ErrorField("error", err),
			)
		}
		result.Fail(c, nil, code)
		return
	}

	result.Success(c, resp)
}

// GetCircles 获取社交圈层接口
// @Summary 获取社交圈层
// @Description 按健康分将人脉划分为内圈/中圈/外圈
// @Tags 图谱接口
// @Produce json
// @Success 200 {object} dto.GetCirclesResponse
// @Router /api/v1/relation/circles [get]
func (h *InsightHandler) GetCircles(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	ownerUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	resp, err := h.insightService.GetSocialCircles(ctx, ownerUUID)
	if err != nil {
		code := mapServiceError(err)
		if !consts.IsNonServerError(code) {
			logger.Error(ctx, "获取社交圈层服务内部错误",
				logger.ErrorField("error", err),
			)
		}
		result.Fail(c, nil, code)
		return
	}

	result.Success(c, resp)
}

// GetSupportNetwork 获取支持网络接口
// @Summary 获取支持网络
// @Description 按支持角色聚合人脉，并报告缺口角色
// @Tags 图谱接口
// @Produce json
// @Success 200 {object} dto.GetSupportNetworkResponse
// @Router /api/v1/relation/support-network [get]
func (h *InsightHandler) GetSupportNetwork(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	ownerUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	resp, err := h.insightService.GetSupportNetwork(ctx, ownerUUID)
	if err != nil {
		code := mapServiceError(err)
		if !consts.IsNonServerError(code) {
			logger.Error(ctx, "获取支持网络服务内部错误",
				logger.ErrorField("error", err),
			)
		}
		result.Fail(c, nil, code)
		return
	}

	result.Success(c, resp)
}

// GetSocialScore 获取社交综合分接口
// @Summary 获取社交综合分
// @Description 基于人脉规模、平均健康分与支持角色覆盖计算综合分
// @Tags 图谱接口
// @Produce json
// @Success 200 {object} dto.GetSocialScoreResponse
// @Router /api/v1/relation/social-score [get]
func (h *InsightHandler) GetSocialScore(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	ownerUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	resp, err := h.insightService.GetSocialScore(ctx, ownerUUID)
	if err != nil {
		code := mapServiceError(err)
		if !consts.IsNonServerError(code) {
			logger.Error(ctx, "获取社交综合分服务内部错误",
				logger.ErrorField("error", err),
			)
		}
		result.Fail(c, nil, code)
		return
	}

	result.Success(c, resp)
}
