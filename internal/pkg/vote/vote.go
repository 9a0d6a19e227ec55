// Package vote 每个 (留言, 用户) 的赞/踩切换
package vote

import "errors"

type State string

const (
	None State = ""
	Up   State = "up"
	Down State = "down"
)

var ErrInvalidType = errors.New("vote type must be up or down")

// Counts 消息上的赞踩计数
type Counts struct {
	Likes    int
	Dislikes int
}

// Outcome 切换后的状态与计数
type Outcome struct {
	Prev   State
	Next   State
	Counts Counts
}

// Parse 校验投票类型
func Parse(s string) (State, error) {
	switch State(s) {
	case Up, Down:
		return State(s), nil
	}
	return None, ErrInvalidType
}

// Transition 重复当前投票则取消, 相反投票则切换, 计数不会小于 0
func Transition(current, submitted State, c Counts) (Outcome, error) {
	if submitted != Up && submitted != Down {
		return Outcome{}, ErrInvalidType
	}

	out := Outcome{Prev: current}
	switch current {
	case submitted:
		out.Next = None
		c = adjust(c, submitted, -1)
	case None:
		out.Next = submitted
		c = adjust(c, submitted, 1)
	default:
		out.Next = submitted
		c = adjust(c, current, -1)
		c = adjust(c, submitted, 1)
	}
	out.Counts = c
	return out, nil
}

func adjust(c Counts, s State, delta int) Counts {
	switch s {
	case Up:
		c.Likes = clamp(c.Likes + delta)
	case Down:
		c.Dislikes = clamp(c.Dislikes + delta)
	}
	return c
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
