package repository

import (
	"context"
	"errors"

	"github.com/thitiph0n/second-brain-sub000/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository stores one UserProfile per user.
type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

// Get returns (nil, nil) when the user has no profile yet.
func (r *ProfileRepository) Get(ctx context.Context, userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert replaces the whole profile row, derived fields included. Partial
// patches are not supported; callers recompute everything before saving.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.UserProfile) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"age", "weight_kg", "height_cm", "gender", "activity_level", "goal",
				"tdee", "target_calories", "target_protein_g", "target_carbs_g", "target_fat_g",
				"updated_at",
			}),
		}).
		Create(profile).Error
}
