package repository

import (
	"context"
	"errors"

	"github.com/thitiph0n/second-brain-sub000/models"

	"gorm.io/gorm"
)

// ErrVersionConflict means a compare-and-swap update lost the race; the caller
// should re-read and retry.
var ErrVersionConflict = errors.New("version conflict")

// StreakRepository stores one streak row per user with optimistic locking:
// every update must carry the version it read, and bumps it on success.
type StreakRepository struct {
	DB *gorm.DB
}

func NewStreakRepository(db *gorm.DB) *StreakRepository {
	return &StreakRepository{DB: db}
}

// Get returns (nil, nil) when the user has no streak row yet.
func (r *StreakRepository) Get(ctx context.Context, userID uint) (*models.Streak, error) {
	var s models.Streak
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StreakRepository) Create(ctx context.Context, s *models.Streak) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

// Update writes the row iff its stored version still matches s.Version, then
// bumps the version. Returns ErrVersionConflict when another writer got there
// first.
func (r *StreakRepository) Update(ctx context.Context, s *models.Streak) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Streak{}).
		Where("user_id = ? AND version = ?", s.UserID, s.Version).
		Updates(map[string]interface{}{
			"current_streak":    s.CurrentStreak,
			"longest_streak":    s.LongestStreak,
			"last_logged_date":  s.LastLoggedDate,
			"freeze_credits":    s.FreezeCredits,
			"total_logged_days": s.TotalLoggedDays,
			"version":           s.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	s.Version++
	return nil
}
