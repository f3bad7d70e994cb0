package repository

import (
	"context"
	"errors"
	"time"

	"github.com/thitiph0n/second-brain-sub000/models"

	"gorm.io/gorm"
)

// MealRepository persists meals scoped to their owning user.
type MealRepository struct {
	DB *gorm.DB
}

func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{DB: db}
}

func (r *MealRepository) Insert(ctx context.Context, meal *models.Meal) error {
	return r.DB.WithContext(ctx).Create(meal).Error
}

// GetByID returns (nil, nil) when no meal matches the (id, user) pair.
func (r *MealRepository) GetByID(ctx context.Context, userID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *MealRepository) Update(ctx context.Context, meal *models.Meal) error {
	return r.DB.WithContext(ctx).Save(meal).Error
}

// Delete reports whether a row was actually removed. The delete is hard, not
// a gorm soft delete: a soft-deleted row would keep holding its client_token
// on the unique index and block a later legitimate create reusing that token.
func (r *MealRepository) Delete(ctx context.Context, userID, mealID uint) (bool, error) {
	res := r.DB.WithContext(ctx).
		Unscoped().
		Where("id = ? AND user_id = ?", mealID, userID).
		Delete(&models.Meal{})
	return res.RowsAffected > 0, res.Error
}

// ListByDay returns the meals whose logged_at falls on the given calendar day.
func (r *MealRepository) ListByDay(ctx context.Context, userID uint, day time.Time) ([]models.Meal, error) {
	start := models.DayOf(day)
	return r.ListByDateRange(ctx, userID, start, start.Add(24*time.Hour))
}

func (r *MealRepository) ListByDateRange(ctx context.Context, userID uint, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from, to).
		Order("logged_at DESC").
		Find(&meals).Error
	return meals, err
}
