// Package points 活动积分计算与等级映射
package points

import (
	"math"
)

const (
	PerKilometer = 10
	PerMessage   = 50
	PerLike      = 5
	PerComment   = 20
)

// Activity 计分输入
type Activity struct {
	Distance      float64 // km, 所有路线之和
	Messages      int64
	LikesReceived int64
	Comments      int64
}

type Breakdown struct {
	FromMovement int64 `json:"fromMovement"`
	FromMessages int64 `json:"fromMessages"`
	FromLikes    int64 `json:"fromLikes"`
	FromComments int64 `json:"fromComments"`
	Total        int64 `json:"total"`
}

// Compute 不会失败, 非法输入按 0 计
func Compute(a Activity) Breakdown {
	b := Breakdown{
		FromMovement: movementPoints(a.Distance),
		FromMessages: PerMessage * nonNegative(a.Messages),
		FromLikes:    PerLike * nonNegative(a.LikesReceived),
		FromComments: PerComment * nonNegative(a.Comments),
	}
	b.Total = b.FromMovement + b.FromMessages + b.FromLikes + b.FromComments
	return b
}

// SumDistance 累加路线距离, 忽略非法值
func SumDistance(distances []float64) float64 {
	var sum float64
	for _, d := range distances {
		sum += sanitize(d)
	}
	return sum
}

func movementPoints(distance float64) int64 {
	scaled := sanitize(distance) * PerKilometer
	if scaled >= math.MaxInt64/2 {
		return math.MaxInt64 / 2
	}
	// 浮点累加误差, 如 0.7+0.7+0.7 得到 2.0999..., 与整数相差 1e-9 内时按整数计
	if r := math.Round(scaled); math.Abs(scaled-r) < 1e-9 {
		return int64(r)
	}
	return int64(math.Floor(scaled))
}

func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func nonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
