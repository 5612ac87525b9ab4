package fasting

import (
	"errors"
	"time"

	"fasting-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service 实现断食会话的状态机：开始 / 完成 / 取消 / 查询。
// Now 可注入固定时钟，方便测试。
type Service struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Start creates a new active session for the user.
// The check-then-create runs inside one transaction, and the unique index
// on active_user_id backstops concurrent starts that race past the check.
func (s *Service) Start(userID uint, protocol string, durationHours int) (*models.FastingSession, error) {
	hours, ok := ProtocolHours(protocol)
	if !ok || durationHours == 0 {
		return nil, ErrInvalidProtocol
	}
	// 时长必须与方案映射一致，不允许客户端另传一个值
	if durationHours != hours {
		return nil, ErrInvalidProtocol
	}

	now := s.now()
	session := &models.FastingSession{
		ID:            uuid.NewString(),
		UserID:        userID,
		Protocol:      protocol,
		DurationHours: hours,
		StartTime:     now,
		Status:        models.StatusActive,
		ActiveUserID:  &userID,
		CreatedAt:     now, // 和 StartTime 用同一个注入时钟，排序才可测
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.FastingSession{}).
			Where("user_id = ? AND status = ?", userID, models.StatusActive).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrActiveSessionExists
		}

		if err := tx.Create(session).Error; err != nil {
			// 并发 start 撞上 active_user_id 的唯一索引
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrActiveSessionExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// End completes the user's active session.
func (s *Service) End(userID uint) (*models.FastingSession, error) {
	return s.finish(userID, models.StatusCompleted)
}

// Cancel ends the user's active session without marking it completed.
func (s *Service) Cancel(userID uint) (*models.FastingSession, error) {
	return s.finish(userID, models.StatusCancelled)
}

// finish 把进行中的会话转成终态（completed / cancelled）。
// 终态不可逆：再次调用会因为找不到 active 记录返回 ErrNoActiveSession。
func (s *Service) finish(userID uint, status string) (*models.FastingSession, error) {
	var session models.FastingSession

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var active []models.FastingSession
		if err := tx.Where("user_id = ? AND status = ?", userID, models.StatusActive).
			Order("created_at DESC, id DESC").
			Find(&active).Error; err != nil {
			return err
		}
		if len(active) == 0 {
			return ErrNoActiveSession
		}
		// 不变量被破坏时写路径报错，由人工介入；读路径不受影响
		if len(active) > 1 {
			return ErrActiveSessionAnomaly
		}
		session = active[0]

		endTime := s.now()
		if endTime.Before(session.StartTime) {
			// 时钟回拨时夹住，保证 end_time >= start_time
			endTime = session.StartTime
		}

		// 终态和清空 active_user_id 在同一条 UPDATE 里完成，
		// 紧随其后的 start 不会看到假冲突
		if err := tx.Model(&session).Updates(map[string]interface{}{
			"status":         status,
			"end_time":       endTime,
			"active_user_id": nil,
		}).Error; err != nil {
			return err
		}

		session.Status = status
		session.EndTime = &endTime
		session.ActiveUserID = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetActive returns the user's active session, or (nil, nil) when there is
// none -- absence of an active fast is a normal state, not an error.
// 出现多条 active（数据异常）时选 created_at 最新的一条，读路径不报错。
func (s *Service) GetActive(userID uint) (*models.FastingSession, error) {
	var active []models.FastingSession
	if err := s.DB.Where("user_id = ? AND status = ?", userID, models.StatusActive).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&active).Error; err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, nil
	}
	return &active[0], nil
}

// History returns the user's sessions, newest first. limit <= 0 falls back
// to the default of 10.
func (s *Service) History(userID uint, limit int) ([]models.FastingSession, error) {
	if limit <= 0 {
		limit = 10
	}
	var sessions []models.FastingSession
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// Sessions returns the user's full history, oldest first, as input for the
// stats and calendar projections.
func (s *Service) Sessions(userID uint) ([]models.FastingSession, error) {
	var sessions []models.FastingSession
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}
