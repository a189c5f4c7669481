// Package leveling 经验值与等级的换算规则。
//
// 等级门槛: threshold(level) = 100 * (level-1)^2，即每一级所需经验按平方增长。
package leveling

import (
	"fmt"
	"math"
)

const (
	// XPPerMinute 每练习一分钟获得的经验值
	XPPerMinute = 1
	// BaseXP 门槛公式中的基数
	BaseXP = 100
	// MinLevel 最低等级
	MinLevel = 1
)

// LevelFromXP 根据累计经验计算等级。xp 不能为负数。
func LevelFromXP(totalXP int) int {
	if totalXP < 0 {
		panic(fmt.Sprintf("leveling: negative total xp %d", totalXP))
	}
	if totalXP < BaseXP {
		return MinLevel
	}
	return isqrt(totalXP/BaseXP) + 1
}

// LevelThreshold 到达 level 所需的累计经验。
func LevelThreshold(level int) int {
	if level < MinLevel {
		panic(fmt.Sprintf("leveling: invalid level %d", level))
	}
	n := level - 1
	return BaseXP * n * n
}

// XPForNextLevel 升到 level+1 所需的累计经验。
func XPForNextLevel(level int) int {
	return LevelThreshold(level + 1)
}

// XPToNextLevel 距离下一级还差的经验，不会返回负数
func XPToNextLevel(level, totalXP int) int {
	remaining := XPForNextLevel(level) - totalXP
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ProgressXP 当前等级内已积累的经验
func ProgressXP(level, totalXP int) int {
	return totalXP - LevelThreshold(level)
}

// Progress 展示用的等级进度
type Progress struct {
	Level         int
	TotalXP       int
	XPToNextLevel int
	ProgressXP    int
}

// ProgressFor 汇总 level/xp 的展示数据
func ProgressFor(level, totalXP int) Progress {
	return Progress{
		Level:         level,
		TotalXP:       totalXP,
		XPToNextLevel: XPToNextLevel(level, totalXP),
		ProgressXP:    ProgressXP(level, totalXP),
	}
}

// isqrt 整数平方根 floor(sqrt(n))，避免浮点在门槛附近的误差
func isqrt(n int) int {
	if n < 2 {
		return n
	}
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
