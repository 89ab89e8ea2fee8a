package repository

import (
	"encoding/json"
	"math/rand"
	"strings"
	"time"

	"RelationServer/model"
)

func marshalRelationList(rels []*model.Relationship) (string, error) {
	data, err := json.Marshal(rels)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalRelationList(raw string) ([]*model.Relationship, error) {
	var rels []*model.Relationship
	if err := json.Unmarshal([]byte(raw), &rels); err != nil {
		return nil, err
	}
	return rels, nil
}

func isRedisWrongType(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "WRONGTYPE")
}

// getRandomExpireTime 生成带随机抖动的过期时间（±10%），避免缓存同时失效
func getRandomExpireTime(baseExpire time.Duration) time.Duration {
	jitterRange := float64(baseExpire) * 0.1
	jitter := time.Duration(rand.Float64()*float64(jitterRange)*2 - float64(jitterRange))
	return baseExpire + jitter
}

// getRandomBool 以给定概率返回 true（概率续期用）
func getRandomBool(probability float64) bool {
	return rand.Float64() < probability
}
