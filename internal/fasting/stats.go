package fasting

import (
	"math"
	"time"

	"fasting-tracker/internal/models"
)

// recentWindow is the trailing period used for hours-fasted aggregation.
const recentWindow = 30 * 24 * time.Hour

// Stats is the read-side projection over a user's full session history.
type Stats struct {
	TotalSessions       int     `json:"total_sessions"`
	CompletedSessions   int     `json:"completed_sessions"`
	CompletionRate      int     `json:"completion_rate"`       // 0-100
	TotalHoursFasted    float64 `json:"total_hours_fasted"`    // 最近 30 天，保留两位小数
	RecentSessionsCount int     `json:"recent_sessions_count"` // 最近 30 天完成的次数
}

// ComputeStats derives the dashboard stats from the session history at
// instant now. 纯函数：不读全局时钟、不写任何状态；
// 脏数据（completed 却缺 end_time）按 0 小时跳过，不让整个统计失败。
func ComputeStats(sessions []models.FastingSession, now time.Time) Stats {
	var st Stats
	cutoff := now.Add(-recentWindow)

	var recentHours float64
	for i := range sessions {
		sess := &sessions[i]
		st.TotalSessions++
		if sess.Status != models.StatusCompleted {
			continue
		}
		st.CompletedSessions++

		if sess.CreatedAt.Before(cutoff) {
			continue
		}
		st.RecentSessionsCount++
		if sess.EndTime != nil && !sess.EndTime.Before(sess.StartTime) {
			recentHours += sess.EndTime.Sub(sess.StartTime).Hours()
		}
	}

	if st.TotalSessions > 0 {
		st.CompletionRate = roundHalfUp(float64(st.CompletedSessions) / float64(st.TotalSessions) * 100)
	}
	st.TotalHoursFasted = roundHalfUp2(recentHours)
	return st
}

// roundHalfUp rounds to the nearest integer, x.5 rounds up.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// roundHalfUp2 rounds to 2 decimal places with the same half-up rule.
func roundHalfUp2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}
