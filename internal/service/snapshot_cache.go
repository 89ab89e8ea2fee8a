package service

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"RelationServer/model"
)

// SnapshotCache owner 级人脉快照的进程内缓存。
// 读投影（图谱/圈层/支持网络）都是存储状态的纯函数，健康分只在写入时重算，
// 所以快照在下一次写入前恒有效：写路径失效即可，不需要 TTL。
// 回填用失效代数做校验：读方回源前记下 owner 的代数，回源期间发生过写入
// （代数前进）则放弃回填，否则回源拿到的旧列表会覆盖掉失效结果、
// 并在下一次写入前一直被读到。
type SnapshotCache struct {
	mu    sync.Mutex
	cache *lru.Cache[string, []*model.Relationship]
	// gens 每 owner 的失效代数，只增不减（owner 量级下这点内存可以忽略）
	gens map[string]uint64
}

// NewSnapshotCache 创建快照缓存，size 为最多缓存的 owner 数。
func NewSnapshotCache(size int) (*SnapshotCache, error) {
	c, err := lru.New[string, []*model.Relationship](size)
	if err != nil {
		return nil, err
	}
	return &SnapshotCache{cache: c, gens: make(map[string]uint64)}, nil
}

// Get 读取 owner 的人脉快照
func (s *SnapshotCache) Get(ownerUUID string) ([]*model.Relationship, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(ownerUUID)
}

// Generation 返回 owner 当前的失效代数，回源前取一次
func (s *SnapshotCache) Generation(ownerUUID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[ownerUUID]
}

// SetIfCurrent 代数未变时回填 owner 的人脉快照；
// 取 gen 之后发生过失效则丢弃本次回填，返回 false
func (s *SnapshotCache) SetIfCurrent(ownerUUID string, gen uint64, rels []*model.Relationship) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[ownerUUID] != gen {
		return false
	}
	s.cache.Add(ownerUUID, rels)
	return true
}

// Invalidate 失效 owner 的人脉快照并前进代数（任何写入成功后调用）
func (s *SnapshotCache) Invalidate(ownerUUID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens[ownerUUID]++
	s.cache.Remove(ownerUUID)
}
