package services

import (
	"context"
	"time"

	"github.com/thitiph0n/second-brain-sub000/models"
)

// LedgerRepository is the storage contract for daily summaries. Implementations
// must make CreateOrIncrement and Increment atomic with respect to concurrent
// writers (single-statement upsert/column arithmetic, or equivalent locking).
type LedgerRepository interface {
	Get(ctx context.Context, userID uint, date time.Time) (*models.DailySummary, error)
	CreateOrIncrement(ctx context.Context, userID uint, date time.Time, delta models.NutritionDelta, targetCalories float64) error
	Increment(ctx context.Context, userID uint, date time.Time, delta models.NutritionDelta, countDelta int) (int64, error)
	DeleteIfEmpty(ctx context.Context, userID uint, date time.Time) error
	Replace(ctx context.Context, s *models.DailySummary) error
	Delete(ctx context.Context, userID uint, date time.Time) error
}

// ProfileRepository is the storage contract for user profiles.
type ProfileRepository interface {
	Get(ctx context.Context, userID uint) (*models.UserProfile, error)
	Upsert(ctx context.Context, profile *models.UserProfile) error
}

// MealReader is the slice of the meal store the ledger needs for
// reconciliation.
type MealReader interface {
	ListByDay(ctx context.Context, userID uint, day time.Time) ([]models.Meal, error)
}

// LedgerService keeps one DailySummary per (user, day) consistent with that
// day's meals by applying signed deltas, never full recomputation on the hot
// path. Reconcile is the slow path that rebuilds a row from scratch.
type LedgerService struct {
	summaries LedgerRepository
	profiles  ProfileRepository
	meals     MealReader
}

func NewLedgerService(summaries LedgerRepository, profiles ProfileRepository, meals MealReader) *LedgerService {
	return &LedgerService{summaries: summaries, profiles: profiles, meals: meals}
}

// ApplyDelta adjusts the summary for (userID, date) by delta and countDelta.
//
//   - countDelta > 0: the row is created if missing, seeded with delta and a
//     snapshot of the profile's current calorie target. The snapshot is taken
//     once, at the day's first meal, and never re-synced afterwards.
//   - countDelta <= 0: an existing row is adjusted and dropped once its meal
//     count reaches zero. A missing row is a no-op.
func (s *LedgerService) ApplyDelta(ctx context.Context, userID uint, date time.Time, delta models.NutritionDelta, countDelta int) error {
	if countDelta > 0 {
		target, err := s.currentTarget(ctx, userID)
		if err != nil {
			return err
		}
		return s.summaries.CreateOrIncrement(ctx, userID, date, delta, target)
	}

	affected, err := s.summaries.Increment(ctx, userID, date, delta, countDelta)
	if err != nil {
		return err
	}
	if affected == 0 {
		// No summary to adjust. Correct usage never gets here; swallowing it
		// keeps a redundant delete retry harmless.
		return nil
	}
	if countDelta < 0 {
		return s.summaries.DeleteIfEmpty(ctx, userID, date)
	}
	return nil
}

// GetDailySummary returns the aggregate for the day, or ErrNotFound when no
// meal was logged on it.
func (s *LedgerService) GetDailySummary(ctx context.Context, userID uint, date time.Time) (*models.DailySummary, error) {
	summary, err := s.summaries.Get(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, ErrNotFound
	}
	return summary, nil
}

// Reconcile rebuilds the summary for (userID, date) by resumming the day's
// meals, repairing any staleness left behind by a failed delta. The existing
// target snapshot is preserved; a row for a day that turns out to have no
// meals is deleted.
func (s *LedgerService) Reconcile(ctx context.Context, userID uint, date time.Time) error {
	day := models.DayOf(date)
	meals, err := s.meals.ListByDay(ctx, userID, day)
	if err != nil {
		return err
	}
	if len(meals) == 0 {
		return s.summaries.Delete(ctx, userID, day)
	}

	rebuilt := models.DailySummary{UserID: userID, Date: day, MealCount: len(meals)}
	for _, m := range meals {
		rebuilt.TotalCalories += m.Calories
		rebuilt.TotalProteinG += m.ProteinG
		rebuilt.TotalCarbsG += m.CarbsG
		rebuilt.TotalFatG += m.FatG
	}

	existing, err := s.summaries.Get(ctx, userID, day)
	if err != nil {
		return err
	}
	if existing != nil {
		rebuilt.TargetCalories = existing.TargetCalories
	} else {
		rebuilt.TargetCalories, err = s.currentTarget(ctx, userID)
		if err != nil {
			return err
		}
	}
	return s.summaries.Replace(ctx, &rebuilt)
}

func (s *LedgerService) currentTarget(ctx context.Context, userID uint) (float64, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		return 0, nil
	}
	return profile.TargetCalories, nil
}
