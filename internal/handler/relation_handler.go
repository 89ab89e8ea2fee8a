package handler

import (
	"errors"
	"strconv"

	"RelationServer/consts"
	"RelationServer/internal/dto"
	"RelationServer/internal/middleware"
	"RelationServer/internal/repository"
	"RelationServer/internal/service"
	"RelationServer/pkg/logger"
	"RelationServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// RelationHandler 人脉写接口处理器
type RelationHandler struct {
	relationService service.IRelationService
}

// NewRelationHandler 创建人脉写接口处理器
func NewRelationHandler(relationService service.IRelationService) *RelationHandler {
	return &RelationHandler{
		relationService: relationService,
	}
}

// AddPerson 新建人脉接口
// @Summary 新建人脉
// @Description 为当前用户新建一条人脉记录
// @Tags 人脉接口
// @Accept json
// @Produce json
// @Param request body dto.AddPersonRequest true "新建人脉请求"
// @Success 200 {object} dto.RelationshipItem
// @Router /api/v1/relation/person [post]
func (h *RelationHandler) AddPerson(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	// 1. 获取当前登录用户
	ownerUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	// 2. 绑定请求数据
	var req dto.AddPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 参数错误由客户端输入导致,属于正常业务流程,不记录日志
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	// 3. 调用服务层处理业务逻辑
	item, err := h.relationService.AddPerson(ctx, ownerUUID, &req)
	if err != nil {
		code := mapServiceError(err)
		if consts.IsNonServerError(code) {
			// 业务逻辑失败（如关系类型不合法等）
			result.Fail(c, nil, code)
			return
		}

		logger.Error(ctx, "新建人脉服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, code)
		return
	}

	// 4. 返回成功响应
	result.Success(c, item)
}

// RecordInteraction 记录交互接口
// @Summary 记录交互
// @Description 对指定人脉记录一次交互，并重算健康分
// @Tags 人脉接口
// @Accept json
// @Produce json
// @Param personId path string true "人脉 ID"
// @Param request body dto.RecordInteractionRequest true "记录交互请求"
// @Success 200 {object} dto.InteractionItem
// @Router /api/v1/relation/person/{personId}/interaction [post]
func (h *RelationHandler) RecordInteraction(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	// 1. 获取当前登录用户
	ownerUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	// 2. 解析路径参数
	personID, err := strconv.ParseInt(c.Param("personId"), 10, 64)
	if err != nil || personID <= 0 {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	// 3. 绑定请求数据
	var req dto.RecordInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 参数错误由客户端输入导致,属于正常业务流程,不记录日志
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	// 4. 调用服务层处理业务逻辑
	item, err := h.relationService.RecordInteraction(ctx, ownerUUID, personID, &req)
	if err != nil {
		code := mapServiceError(err)
		if consts.IsNonServerError(code) {
			result.Fail(c, nil, code)
			return
		}

		logger.Error(ctx, "记录交互服务内部错误",
			logger.Int64("person_id", personID),
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, code)
		return
	}

	// 5. 返回成功响应
	result.Success(c, item)
}

// mapServiceError 将 Service / Repository 层错误映射为业务错误码
func mapServiceError(err error) int32 {
	switch {
	case errors.Is(err, service.ErrInvalidRelationshipType):
		return consts.CodeRelationTypeInvalid
	case errors.Is(err, service.ErrInvalidSupportRole):
		return consts.CodeSupportRoleInvalid
	case errors.Is(err, service.ErrRelationshipNotFound):
		return consts.CodeRelationNotFound
	case errors.Is(err, repository.ErrStorageUnavailable):
		return consts.CodeServiceUnavailable
	case errors.Is(err, repository.ErrDatabase), errors.Is(err, repository.ErrRedis):
		return consts.CodeStorageError
	default:
		return consts.CodeInternalError
	}
}
