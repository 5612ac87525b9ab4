package models

import "time"

// Fasting session statuses. Completed and cancelled are terminal.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// FastingSession 表示一次断食会话。
// ActiveUserID 在进行中时等于 UserID，进入终态时置空；
// 它上面的唯一索引保证同一用户最多只有一条 active 记录
// （SQLite 的唯一索引不约束 NULL，历史记录可以任意多条）。
type FastingSession struct {
	ID            string     `gorm:"primaryKey;size:64" json:"id"` // UUID
	UserID        uint       `gorm:"index;not null" json:"user_id"`
	Protocol      string     `gorm:"size:16;not null" json:"protocol"`
	DurationHours int        `gorm:"not null" json:"duration_hours"`
	StartTime     time.Time  `gorm:"not null" json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Status        string     `gorm:"size:16;index;not null;default:active" json:"status"`
	ActiveUserID  *uint      `gorm:"uniqueIndex" json:"-"`
	CreatedAt     time.Time  `json:"created_at"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
