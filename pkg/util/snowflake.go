package util

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	snowflakeNode *snowflake.Node
	snowflakeOnce sync.Once
)

// InitSnowflake 初始化雪花算法节点（进程启动时调用一次）。
// node 取值范围 0-1023，多实例部署时每个实例必须不同。
func InitSnowflake(node int64) error {
	var err error
	snowflakeOnce.Do(func() {
		snowflakeNode, err = snowflake.NewNode(node)
	})
	return err
}

// GenID 生成全局唯一 int64 ID。
// 未初始化时 panic：ID 生成是创建流程的硬依赖，启动期就应暴露配置错误。
func GenID() int64 {
	if snowflakeNode == nil {
		panic("snowflake node not initialized")
	}
	return snowflakeNode.Generate().Int64()
}
