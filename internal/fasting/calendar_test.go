package fasting

import (
	"testing"
	"time"

	"fasting-tracker/internal/models"
)

// 2026-02-18 是周三，所在周的周日是 2026-02-15
var calToday = time.Date(2026, 2, 18, 15, 30, 0, 0, time.UTC)

func calSession(id, status string, start time.Time) models.FastingSession {
	s := models.FastingSession{
		ID:            id,
		UserID:        1,
		Protocol:      "16:8",
		DurationHours: 16,
		StartTime:     start,
		Status:        status,
		CreatedAt:     start,
	}
	if status != models.StatusActive {
		end := start.Add(16 * time.Hour)
		s.EndTime = &end
	}
	return s
}

// findDay 在网格里找某一天的格子
func findDay(t *testing.T, weeks []CalendarWeek, date time.Time) *CalendarDay {
	t.Helper()
	key := date.Format("2006-01-02")
	for wi := range weeks {
		for di := range weeks[wi].Days {
			if weeks[wi].Days[di].Date.Format("2006-01-02") == key {
				return &weeks[wi].Days[di]
			}
		}
	}
	t.Fatalf("day %s not found in grid", key)
	return nil
}

// TestProjectWeeks_GridShape 网格始终是 weekCount 周 x 7 天
func TestProjectWeeks_GridShape(t *testing.T) {
	weeks := ProjectWeeks(nil, calToday, 8)

	if len(weeks) != 8 {
		t.Fatalf("weeks = %d, want 8", len(weeks))
	}
	for wi, w := range weeks {
		if len(w.Days) != 7 {
			t.Errorf("week %d has %d days, want 7", wi, len(w.Days))
		}
		if w.Days[0].Date.Weekday() != time.Sunday {
			t.Errorf("week %d starts on %s, want Sunday", wi, w.Days[0].Date.Weekday())
		}
		for _, d := range w.Days {
			if d.Status != DayEmpty {
				t.Errorf("empty history: day %s status = %s, want empty", d.Date.Format("2006-01-02"), d.Status)
			}
		}
	}

	// 最后一周包含 today，最早一周在 7 周之前
	wantLast := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	if !weeks[7].WeekStart.Equal(wantLast) {
		t.Errorf("last WeekStart = %v, want %v", weeks[7].WeekStart, wantLast)
	}
	wantFirst := wantLast.AddDate(0, 0, -49)
	if !weeks[0].WeekStart.Equal(wantFirst) {
		t.Errorf("first WeekStart = %v, want %v", weeks[0].WeekStart, wantFirst)
	}
}

// TestProjectWeeks_DefaultWeekCount weekCount <= 0 回落到默认 8 周
func TestProjectWeeks_DefaultWeekCount(t *testing.T) {
	if got := len(ProjectWeeks(nil, calToday, 0)); got != DefaultWeekCount {
		t.Errorf("weeks = %d, want %d", got, DefaultWeekCount)
	}
	if got := len(ProjectWeeks(nil, calToday, 4)); got != 4 {
		t.Errorf("weeks = %d, want 4", got)
	}
}

// TestProjectWeeks_DayLabels 星期标签和日号
func TestProjectWeeks_DayLabels(t *testing.T) {
	weeks := ProjectWeeks(nil, calToday, 1)

	wantLabels := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	for i, d := range weeks[0].Days {
		if d.Label != wantLabels[i] {
			t.Errorf("day %d label = %q, want %q", i, d.Label, wantLabels[i])
		}
	}
	// 2026-02-15 .. 2026-02-21
	if weeks[0].Days[0].DayOfMonth != 15 || weeks[0].Days[6].DayOfMonth != 21 {
		t.Errorf("day-of-month = %d..%d, want 15..21",
			weeks[0].Days[0].DayOfMonth, weeks[0].Days[6].DayOfMonth)
	}
}

// TestProjectWeeks_DayStatuses 3 天前完成 + 今天取消的场景
func TestProjectWeeks_DayStatuses(t *testing.T) {
	threeDaysAgo := calToday.AddDate(0, 0, -3)
	history := []models.FastingSession{
		calSession("a", models.StatusCompleted, threeDaysAgo),
		calSession("b", models.StatusCancelled, calToday.Add(-2*time.Hour)),
	}

	weeks := ProjectWeeks(history, calToday, 8)

	if d := findDay(t, weeks, threeDaysAgo); d.Status != DayCompleted {
		t.Errorf("3-day-old day status = %s, want completed", d.Status)
	}
	if d := findDay(t, weeks, calToday); d.Status != DayCancelled {
		t.Errorf("today status = %s, want cancelled", d.Status)
	}
}

// TestProjectWeeks_ActiveDay 进行中的断食所在的那天标 active
func TestProjectWeeks_ActiveDay(t *testing.T) {
	history := []models.FastingSession{
		calSession("a", models.StatusActive, calToday.Add(-4*time.Hour)),
	}

	weeks := ProjectWeeks(history, calToday, 8)

	if d := findDay(t, weeks, calToday); d.Status != DayActive {
		t.Errorf("today status = %s, want active", d.Status)
	}
}

// TestProjectWeeks_PrimaryLatestStart 同一天多条记录，开始时间晚的是主记录，
// 但全部记录都保留给详情视图
func TestProjectWeeks_PrimaryLatestStart(t *testing.T) {
	day := calToday.AddDate(0, 0, -1)
	morning := time.Date(day.Year(), day.Month(), day.Day(), 8, 0, 0, 0, time.UTC)
	evening := time.Date(day.Year(), day.Month(), day.Day(), 20, 0, 0, 0, time.UTC)

	history := []models.FastingSession{
		calSession("morning", models.StatusCompleted, morning),
		calSession("evening", models.StatusCancelled, evening),
	}

	weeks := ProjectWeeks(history, calToday, 8)
	d := findDay(t, weeks, day)

	if d.Primary == nil || d.Primary.ID != "evening" {
		t.Fatalf("primary = %+v, want session %q", d.Primary, "evening")
	}
	if d.Status != DayCancelled {
		t.Errorf("day status = %s, want cancelled (from primary)", d.Status)
	}
	if len(d.Sessions) != 2 {
		t.Errorf("day sessions = %d, want 2 (all retained)", len(d.Sessions))
	}
}

// TestProjectWeeks_PrimaryTieByID 开始时间相同，用 ID 兜底保证确定性
func TestProjectWeeks_PrimaryTieByID(t *testing.T) {
	start := calToday.Add(-6 * time.Hour)
	history := []models.FastingSession{
		calSession("aaa", models.StatusCompleted, start),
		calSession("bbb", models.StatusCancelled, start),
	}

	weeks := ProjectWeeks(history, calToday, 8)
	d := findDay(t, weeks, calToday)

	if d.Primary == nil || d.Primary.ID != "bbb" {
		t.Fatalf("primary ID = %v, want bbb", d.Primary)
	}
}

// TestProjectWeeks_MidnightSpanning 跨午夜的断食按开始时间所在的那天归桶
func TestProjectWeeks_MidnightSpanning(t *testing.T) {
	yesterday := calToday.AddDate(0, 0, -1)
	lateStart := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 23, 0, 0, 0, time.UTC)

	history := []models.FastingSession{
		calSession("span", models.StatusCompleted, lateStart), // 结束在今天 15:00
	}

	weeks := ProjectWeeks(history, calToday, 8)

	if d := findDay(t, weeks, yesterday); d.Status != DayCompleted {
		t.Errorf("start day status = %s, want completed", d.Status)
	}
	if d := findDay(t, weeks, calToday); d.Status != DayEmpty {
		t.Errorf("end day status = %s, want empty (bucketed by start day)", d.Status)
	}
}

// TestProjectWeeks_OutsideGrid 早于网格范围的记录不出现
func TestProjectWeeks_OutsideGrid(t *testing.T) {
	old := calToday.AddDate(0, 0, -70)
	history := []models.FastingSession{
		calSession("ancient", models.StatusCompleted, old),
	}

	weeks := ProjectWeeks(history, calToday, 8)

	for _, w := range weeks {
		for _, d := range w.Days {
			if len(d.Sessions) != 0 {
				t.Errorf("day %s unexpectedly has sessions", d.Date.Format("2006-01-02"))
			}
		}
	}
}
