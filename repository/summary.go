package repository

import (
	"context"
	"errors"
	"time"

	"github.com/thitiph0n/second-brain-sub000/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SummaryRepository stores the per-(user, date) nutrition aggregates.
//
// The mutating operations are single SQL statements so that two requests
// adjusting the same row concurrently cannot lose an update: creation and
// increments ride on INSERT … ON CONFLICT DO UPDATE, decrements on a plain
// UPDATE with column arithmetic.
type SummaryRepository struct {
	DB *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{DB: db}
}

// Get returns (nil, nil) when the day has no summary row.
func (r *SummaryRepository) Get(ctx context.Context, userID uint, date time.Time) (*models.DailySummary, error) {
	var s models.DailySummary
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, models.DayOf(date)).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateOrIncrement inserts a fresh summary seeded with delta and count 1, or
// atomically adds delta (and one meal) to the existing row. targetCalories is
// only written on insert; the snapshot on an existing row is left alone.
func (r *SummaryRepository) CreateOrIncrement(ctx context.Context, userID uint, date time.Time, delta models.NutritionDelta, targetCalories float64) error {
	row := models.DailySummary{
		UserID:         userID,
		Date:           models.DayOf(date),
		TotalCalories:  delta.Calories,
		TotalProteinG:  delta.ProteinG,
		TotalCarbsG:    delta.CarbsG,
		TotalFatG:      delta.FatG,
		MealCount:      1,
		TargetCalories: targetCalories,
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_calories":  gorm.Expr("daily_summaries.total_calories + EXCLUDED.total_calories"),
				"total_protein_g": gorm.Expr("daily_summaries.total_protein_g + EXCLUDED.total_protein_g"),
				"total_carbs_g":   gorm.Expr("daily_summaries.total_carbs_g + EXCLUDED.total_carbs_g"),
				"total_fat_g":     gorm.Expr("daily_summaries.total_fat_g + EXCLUDED.total_fat_g"),
				"meal_count":      gorm.Expr("daily_summaries.meal_count + 1"),
				"updated_at":      time.Now(),
			}),
		}).
		Create(&row).Error
}

// Increment adds delta and countDelta to an existing row and reports how many
// rows matched. Zero means the summary is absent and nothing happened.
func (r *SummaryRepository) Increment(ctx context.Context, userID uint, date time.Time, delta models.NutritionDelta, countDelta int) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.DailySummary{}).
		Where("user_id = ? AND date = ?", userID, models.DayOf(date)).
		Updates(map[string]interface{}{
			"total_calories":  gorm.Expr("total_calories + ?", delta.Calories),
			"total_protein_g": gorm.Expr("total_protein_g + ?", delta.ProteinG),
			"total_carbs_g":   gorm.Expr("total_carbs_g + ?", delta.CarbsG),
			"total_fat_g":     gorm.Expr("total_fat_g + ?", delta.FatG),
			"meal_count":      gorm.Expr("meal_count + ?", countDelta),
		})
	return res.RowsAffected, res.Error
}

// DeleteIfEmpty removes the row once its meal count has dropped to zero (or
// below, which correct usage never produces). Summaries are never kept at zero.
func (r *SummaryRepository) DeleteIfEmpty(ctx context.Context, userID uint, date time.Time) error {
	return r.DB.WithContext(ctx).
		Unscoped().
		Where("user_id = ? AND date = ? AND meal_count <= 0", userID, models.DayOf(date)).
		Delete(&models.DailySummary{}).Error
}

// Replace overwrites the whole row with recomputed totals (reconciliation).
func (r *SummaryRepository) Replace(ctx context.Context, s *models.DailySummary) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_calories", "total_protein_g", "total_carbs_g", "total_fat_g",
				"meal_count", "target_calories", "updated_at",
			}),
		}).
		Create(s).Error
}

func (r *SummaryRepository) Delete(ctx context.Context, userID uint, date time.Time) error {
	return r.DB.WithContext(ctx).
		Unscoped().
		Where("user_id = ? AND date = ?", userID, models.DayOf(date)).
		Delete(&models.DailySummary{}).Error
}
