// Package session 按时间间隔把用户路线划分为会话, 并找出每个会话中被覆盖的记录
package session

import (
	"sort"
	"time"
)

// DefaultGap 相邻两条记录间隔不超过该值视为同一会话
const DefaultGap = 30 * time.Second

type Record struct {
	ID        uint64
	UserID    string
	Timestamp time.Time
}

// Session 记录按 (Timestamp, ID) 升序, 保留最后一条
type Session struct {
	UserID  string
	Records []Record
}

func (s Session) Keep() Record {
	return s.Records[len(s.Records)-1]
}

// Superseded 除最后一条外的所有记录
func (s Session) Superseded() []Record {
	return s.Records[:len(s.Records)-1]
}

type Plan struct {
	Sessions []Session
}

type Report struct {
	Sessions               int `json:"sessions"`
	SessionsWithDuplicates int `json:"sessionsWithDuplicates"`
	Deleted                int `json:"deleted"`
}

// Build 复制并按 (UserID, Timestamp, ID) 排序, 用户变化或与上一条的间隔大于 gap 时开始新会话
func Build(records []Record, gap time.Duration) Plan {
	if gap < 0 {
		gap = 0
	}
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.UserID != b.UserID {
			return a.UserID < b.UserID
		}
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.ID < b.ID
	})

	var plan Plan
	var cur *Session
	for i, r := range sorted {
		if cur == nil || r.UserID != cur.UserID || r.Timestamp.Sub(sorted[i-1].Timestamp) > gap {
			plan.Sessions = append(plan.Sessions, Session{UserID: r.UserID})
			cur = &plan.Sessions[len(plan.Sessions)-1]
		}
		cur.Records = append(cur.Records, r)
	}
	return plan
}

// Deletions 按会话顺序返回所有被覆盖记录的 id
func (p Plan) Deletions() []uint64 {
	var ids []uint64
	for _, s := range p.Sessions {
		for _, r := range s.Superseded() {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func (p Plan) Report() Report {
	rep := Report{Sessions: len(p.Sessions)}
	for _, s := range p.Sessions {
		if n := len(s.Records) - 1; n > 0 {
			rep.SessionsWithDuplicates++
			rep.Deleted += n
		}
	}
	return rep
}
