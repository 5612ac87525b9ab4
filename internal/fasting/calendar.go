package fasting

import (
	"time"

	"fasting-tracker/internal/models"
)

// Day statuses on the weekly calendar grid.
const (
	DayEmpty     = "empty"
	DayActive    = "active"
	DayCompleted = "completed"
	DayCancelled = "cancelled"
)

// DefaultWeekCount is the number of weeks shown on the calendar view.
const DefaultWeekCount = 8

// CalendarDay is one cell of the weekly grid.
type CalendarDay struct {
	Date       time.Time               `json:"date"`
	Label      string                  `json:"label"` // Sun / Mon / ...
	DayOfMonth int                     `json:"day_of_month"`
	Status     string                  `json:"status"`
	Sessions   []models.FastingSession `json:"sessions"` // 当天全部记录，供详情展开
	Primary    *models.FastingSession  `json:"primary,omitempty"`
}

// CalendarWeek is seven days starting on Sunday.
type CalendarWeek struct {
	WeekStart time.Time     `json:"week_start"`
	Days      []CalendarDay `json:"days"`
}

// ProjectWeeks buckets the session history onto a fixed grid of
// weekCount weeks x 7 days, Sunday first, oldest week first, ending with
// the week containing today. Sessions are bucketed by their StartTime's
// local calendar day, so a fast that crosses midnight stays on the day it
// started. Empty history yields a full grid of empty days.
// 纯函数：today 由调用方传入，这里绝不读系统时钟。
func ProjectWeeks(history []models.FastingSession, today time.Time, weekCount int) []CalendarWeek {
	if weekCount <= 0 {
		weekCount = DefaultWeekCount
	}

	// 按开始时间的自然日分桶，key 形如 2006-01-02
	byDay := make(map[string][]models.FastingSession)
	for i := range history {
		key := history[i].StartTime.Format("2006-01-02")
		byDay[key] = append(byDay[key], history[i])
	}

	// 本周的周日零点
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	currentWeekStart := midnight.AddDate(0, 0, -int(midnight.Weekday()))

	weeks := make([]CalendarWeek, 0, weekCount)
	for offset := weekCount - 1; offset >= 0; offset-- {
		start := currentWeekStart.AddDate(0, 0, -offset*7)
		week := CalendarWeek{WeekStart: start, Days: make([]CalendarDay, 0, 7)}

		for d := 0; d < 7; d++ {
			date := start.AddDate(0, 0, d)
			sessions := byDay[date.Format("2006-01-02")]

			day := CalendarDay{
				Date:       date,
				Label:      date.Weekday().String()[:3],
				DayOfMonth: date.Day(),
				Status:     DayEmpty,
				Sessions:   sessions,
			}
			if primary := primarySession(sessions); primary != nil {
				day.Primary = primary
				switch primary.Status {
				case models.StatusCompleted:
					day.Status = DayCompleted
				case models.StatusCancelled:
					day.Status = DayCancelled
				default:
					// 正在进行中的断食所在的那天
					day.Status = DayActive
				}
			}
			week.Days = append(week.Days, day)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// primarySession picks the day's representative session: the one with the
// latest StartTime, ties broken by ID so the choice is deterministic.
func primarySession(sessions []models.FastingSession) *models.FastingSession {
	var primary *models.FastingSession
	for i := range sessions {
		s := &sessions[i]
		if primary == nil ||
			s.StartTime.After(primary.StartTime) ||
			(s.StartTime.Equal(primary.StartTime) && s.ID > primary.ID) {
			primary = s
		}
	}
	return primary
}
