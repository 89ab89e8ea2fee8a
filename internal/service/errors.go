package service

import "errors"

// ==================== Service 层业务错误 ====================
// 校验错误在任何状态变更之前同步返回（fail closed）。
// 存储层错误（repository.ErrDatabase / ErrStorageUnavailable）原样透传，
// 本层不做重试：对非幂等的追加操作重试可能产生重复交互记录。

var (
	// ErrInvalidRelationshipType 关系类型不在闭合枚举内
	ErrInvalidRelationshipType = errors.New("invalid relationship type")

	// ErrInvalidSupportRole 支持角色不在闭合枚举内
	ErrInvalidSupportRole = errors.New("invalid support role")

	// ErrRelationshipNotFound 人脉不存在或不属于当前 owner
	ErrRelationshipNotFound = errors.New("relationship not found")
)
