package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thitiph0n/second-brain-sub000/models"
	"github.com/thitiph0n/second-brain-sub000/utils"
)

// adjustAttempts bounds the retries of a ledger/streak adjustment after the
// meal write already succeeded.
const adjustAttempts = 3

// MealRepository is the storage contract for meals.
type MealRepository interface {
	Insert(ctx context.Context, meal *models.Meal) error
	GetByID(ctx context.Context, userID, mealID uint) (*models.Meal, error)
	Update(ctx context.Context, meal *models.Meal) error
	Delete(ctx context.Context, userID, mealID uint) (bool, error)
	ListByDay(ctx context.Context, userID uint, day time.Time) ([]models.Meal, error)
	ListByDateRange(ctx context.Context, userID uint, from, to time.Time) ([]models.Meal, error)
}

// MealInput carries the caller-supplied fields of a meal. Field validation
// (enum membership, non-negative numbers) happens at the API layer before the
// engine sees the input.
type MealInput struct {
	MealType    string
	FoodName    string
	Calories    float64
	ProteinG    float64
	CarbsG      float64
	FatG        float64
	LoggedAt    time.Time
	ClientToken string
}

// BiometricsInput is a full set of profile biometrics. Profiles are always
// recomputed from a complete set, never patched field by field.
type BiometricsInput struct {
	Age           int
	WeightKg      float64
	HeightCm      float64
	Gender        string
	ActivityLevel string
	Goal          string
}

// NutritionService sequences the meal store, the daily ledger and the streak
// tracker. It is the only entry point callers use.
//
// Ordering on create is fixed: meal insert, then ledger delta, then streak.
// Ledger and streak failures after a durable meal write do not fail the
// request; they are retried and, if still failing, logged as a
// ConsistencyError for reconciliation.
type NutritionService struct {
	meals    MealRepository
	profiles ProfileRepository
	ledger   *LedgerService
	streaks  *StreakService
	log      *zap.Logger
}

func NewNutritionService(meals MealRepository, profiles ProfileRepository, ledger *LedgerService, streaks *StreakService, log *zap.Logger) *NutritionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &NutritionService{meals: meals, profiles: profiles, ledger: ledger, streaks: streaks, log: log}
}

// CreateMeal persists the meal, then folds it into the day's summary and
// advances the streak. The returned meal is valid even when an adjustment had
// to be deferred.
func (s *NutritionService) CreateMeal(ctx context.Context, userID uint, in MealInput) (*models.Meal, error) {
	token := in.ClientToken
	if token == "" {
		token = uuid.NewString()
	}
	meal := &models.Meal{
		UserID:      userID,
		MealType:    in.MealType,
		FoodName:    in.FoodName,
		Calories:    in.Calories,
		ProteinG:    in.ProteinG,
		CarbsG:      in.CarbsG,
		FatG:        in.FatG,
		LoggedAt:    in.LoggedAt,
		ClientToken: token,
	}
	if err := s.meals.Insert(ctx, meal); err != nil {
		return nil, err
	}

	s.adjust(ctx, userID, meal.Day(), "ledger create delta", func() error {
		return s.ledger.ApplyDelta(ctx, userID, meal.Day(), meal.Delta(), +1)
	})
	s.adjust(ctx, userID, meal.Day(), "streak day-logged", func() error {
		return s.streaks.OnDayLogged(ctx, userID, meal.Day())
	})
	return meal, nil
}

// UpdateMeal applies a full-field edit. When the edit moves the meal to
// another calendar day, the old day's summary gives the meal up and the new
// day's summary takes it in, both before returning. A same-day edit that
// changes the nutrition fields adjusts the summary by the field difference
// with no count change.
func (s *NutritionService) UpdateMeal(ctx context.Context, userID, mealID uint, in MealInput) (*models.Meal, error) {
	meal, err := s.meals.GetByID(ctx, userID, mealID)
	if err != nil {
		return nil, err
	}
	if meal == nil {
		return nil, ErrNotFound
	}

	oldDay := meal.Day()
	oldDelta := meal.Delta()

	meal.MealType = in.MealType
	meal.FoodName = in.FoodName
	meal.Calories = in.Calories
	meal.ProteinG = in.ProteinG
	meal.CarbsG = in.CarbsG
	meal.FatG = in.FatG
	meal.LoggedAt = in.LoggedAt
	if err := s.meals.Update(ctx, meal); err != nil {
		return nil, err
	}

	newDay := meal.Day()
	newDelta := meal.Delta()

	switch {
	case !newDay.Equal(oldDay):
		s.adjust(ctx, userID, oldDay, "ledger move-out delta", func() error {
			return s.ledger.ApplyDelta(ctx, userID, oldDay, oldDelta.Neg(), -1)
		})
		s.adjust(ctx, userID, newDay, "ledger move-in delta", func() error {
			return s.ledger.ApplyDelta(ctx, userID, newDay, newDelta, +1)
		})
	case !newDelta.Sub(oldDelta).IsZero():
		s.adjust(ctx, userID, newDay, "ledger edit delta", func() error {
			return s.ledger.ApplyDelta(ctx, userID, newDay, newDelta.Sub(oldDelta), 0)
		})
	}
	return meal, nil
}

// DeleteMeal removes the meal and subtracts it from its day's summary. The
// streak is untouched: deleting a meal never retroactively breaks a streak.
func (s *NutritionService) DeleteMeal(ctx context.Context, userID, mealID uint) error {
	meal, err := s.meals.GetByID(ctx, userID, mealID)
	if err != nil {
		return err
	}
	if meal == nil {
		return ErrNotFound
	}

	deleted, err := s.meals.Delete(ctx, userID, mealID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	s.adjust(ctx, userID, meal.Day(), "ledger delete delta", func() error {
		return s.ledger.ApplyDelta(ctx, userID, meal.Day(), meal.Delta().Neg(), -1)
	})
	return nil
}

// GetMeal fetches one meal owned by the user.
func (s *NutritionService) GetMeal(ctx context.Context, userID, mealID uint) (*models.Meal, error) {
	meal, err := s.meals.GetByID(ctx, userID, mealID)
	if err != nil {
		return nil, err
	}
	if meal == nil {
		return nil, ErrNotFound
	}
	return meal, nil
}

// ListMealsByDay returns the day's meals, newest first.
func (s *NutritionService) ListMealsByDay(ctx context.Context, userID uint, day time.Time) ([]models.Meal, error) {
	return s.meals.ListByDay(ctx, userID, day)
}

// GetDailySummary returns the aggregate for the day, or ErrNotFound when no
// meal was logged on it.
func (s *NutritionService) GetDailySummary(ctx context.Context, userID uint, date time.Time) (*models.DailySummary, error) {
	return s.ledger.GetDailySummary(ctx, userID, date)
}

func (s *NutritionService) GetStreak(ctx context.Context, userID uint) (*models.Streak, error) {
	return s.streaks.GetStreak(ctx, userID)
}

func (s *NutritionService) UseFreezeCredit(ctx context.Context, userID uint) (*models.Streak, error) {
	return s.streaks.UseFreezeCredit(ctx, userID)
}

func (s *NutritionService) ResetStreak(ctx context.Context, userID uint) (*models.Streak, error) {
	return s.streaks.ResetCurrentStreak(ctx, userID)
}

// ComputeProfile recomputes TDEE and macro targets from a full set of
// biometrics and saves the profile. Derived fields are never carried over from
// a previous write.
func (s *NutritionService) ComputeProfile(ctx context.Context, userID uint, in BiometricsInput) (*models.UserProfile, error) {
	tdee := utils.CalculateTDEE(in.WeightKg, in.HeightCm, in.Age, in.Gender, in.ActivityLevel, in.Goal)
	macros := utils.CalculateMacroTargets(in.WeightKg, tdee, in.Gender)

	profile := &models.UserProfile{
		UserID:         userID,
		Age:            in.Age,
		WeightKg:       in.WeightKg,
		HeightCm:       in.HeightCm,
		Gender:         in.Gender,
		ActivityLevel:  in.ActivityLevel,
		Goal:           in.Goal,
		TDEE:           tdee,
		TargetCalories: tdee,
		TargetProteinG: macros.ProteinG,
		TargetCarbsG:   macros.CarbsG,
		TargetFatG:     macros.FatG,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfile returns the stored profile, or ErrNotFound before the first
// submission.
func (s *NutritionService) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

// adjust retries a follow-up aggregate write a few times. When it still fails
// the ConsistencyError is logged for reconciliation and the request goes on:
// the meal itself is durable and the user should not see a failure for it.
func (s *NutritionService) adjust(ctx context.Context, userID uint, day time.Time, op string, fn func() error) {
	var err error
	for attempt := 0; attempt < adjustAttempts; attempt++ {
		if err = fn(); err == nil {
			return
		}
		if ctx.Err() != nil {
			break
		}
	}
	cerr := &ConsistencyError{Op: op, Err: err}
	s.log.Error("aggregate adjustment deferred",
		zap.Uint("user_id", userID),
		zap.Time("day", day),
		zap.String("op", op),
		zap.Error(cerr),
	)
}
