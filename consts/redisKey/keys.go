package rediskey

import (
	"fmt"
	"time"
)

// ==================== TTL 常量 ====================

const (
	// RelationListTTL 用户人脉列表缓存 TTL
	RelationListTTL = 1 * time.Hour
	// RelationListEmptyTTL 人脉列表空值缓存 TTL（防穿透）
	RelationListEmptyTTL = 5 * time.Minute
)

// ==================== Key 构造函数 ====================

// RelationListKey 生成用户人脉列表 Key: relation:list:{ownerUuid}
func RelationListKey(ownerUUID string) string {
	return fmt.Sprintf("relation:list:%s", ownerUUID)
}

// RateLimitIPKey 生成 IP 限流 Key: rate:limit:ip:{ip}
func RateLimitIPKey(ip string) string {
	return fmt.Sprintf("rate:limit:ip:%s", ip)
}
