// Package graph 人脉图谱的纯计算核心：健康分、圈层划分、支持网络、可视化投影。
// 所有函数只读输入、不持有状态，同样的存储快照加参考时间必然得到同样的结果。
package graph

import (
	"math"
	"time"

	"RelationServer/model"
)

// 健康分常量
const (
	// HealthScoreBase 基础分，也是新建人脉的默认分
	HealthScoreBase = 5.0
	// HealthScoreMin / HealthScoreMax 健康分值域
	HealthScoreMin = 0
	HealthScoreMax = 10
	// qualityWindow 质量项取最近几次交互
	qualityWindow = 3
)

// ComputeHealthScore 根据交互历史和参考时间计算健康分。
// 算法：
//  1. 基础分 5.0；
//  2. 质量项：取最近 min(3,N) 次交互的质量分均值，加 (均值-5)/2（无交互跳过）；
//  3. 时效项：距最近联系 <7 天 +2，<30 天 +1，>180 天 -2，其余 0；
//  4. 夹取到 [0,10] 后四舍五入（.5 向上）。
//
// 交互序列按插入顺序存储（最新在尾部），质量项取尾部窗口。
func ComputeHealthScore(rel *model.Relationship, now time.Time) int {
	score := HealthScoreBase

	// 质量项
	if n := len(rel.Interactions); n > 0 {
		window := qualityWindow
		if n < window {
			window = n
		}
		sum := 0
		for _, inter := range rel.Interactions[n-window:] {
			sum += inter.QualityScore
		}
		mean := float64(sum) / float64(window)
		score += (mean - 5) / 2
	}

	// 时效项
	days := now.Sub(rel.LastContactAt).Hours() / 24
	switch {
	case days < 7:
		score += 2
	case days < 30:
		score += 1
	case days > 180:
		score -= 2
	}

	return clampRound(score)
}

// clampRound 夹取到 [0,10] 并四舍五入（.5 向上）。
func clampRound(score float64) int {
	if score < HealthScoreMin {
		score = HealthScoreMin
	}
	if score > HealthScoreMax {
		score = HealthScoreMax
	}
	return int(math.Floor(score + 0.5))
}
