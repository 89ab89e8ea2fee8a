package service

import (
	"fmt"
	"sync"
)

// keyedMutex 按 key 粒度的互斥锁。
// 用于串行化同一条人脉上的写入：追加交互 + 重算健康分必须是单写者临界区，
// 不同人脉、不同 owner 之间完全并行。
// 锁对象按 key 常驻不回收，数量与活跃人脉条数同阶。
type keyedMutex struct {
	locks sync.Map // key -> *sync.Mutex
}

// Lock 锁住指定 key，返回解锁函数。
func (k *keyedMutex) Lock(key string) func() {
	v, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// personLockKey 生成 (owner, person) 写锁 key
func personLockKey(ownerUUID string, personID int64) string {
	return fmt.Sprintf("%s:%d", ownerUUID, personID)
}
