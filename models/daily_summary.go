package models

import (
    "time"

    "gorm.io/gorm"
)

// DailySummary is the per-user-per-day nutrition aggregate. One row exists per
// (user, date) that has at least one meal; the row is deleted outright when its
// last meal is removed, never kept at zero.
//
// Totals are maintained with signed increments as meals are created, edited,
// moved or deleted. The row can always be rebuilt by resumming the day's meals
// (see LedgerService.Reconcile).
type DailySummary struct {
    gorm.Model
    UserID uint      `gorm:"not null;uniqueIndex:uidx_summary_user_date"`
    Date   time.Time `gorm:"type:date;not null;uniqueIndex:uidx_summary_user_date"`

    TotalCalories float64
    TotalProteinG float64
    TotalCarbsG   float64
    TotalFatG     float64
    MealCount     int

    // Snapshot of the profile's target at the time of the day's first meal.
    // Later profile edits do not rewrite historical summaries.
    TargetCalories float64
}

// NutritionDelta is a signed adjustment to a day's totals.
type NutritionDelta struct {
    Calories float64
    ProteinG float64
    CarbsG   float64
    FatG     float64
}

// Neg flips the sign of every field, for removals.
func (d NutritionDelta) Neg() NutritionDelta {
    return NutritionDelta{-d.Calories, -d.ProteinG, -d.CarbsG, -d.FatG}
}

// Sub returns d − o, the adjustment that turns o's contribution into d's.
func (d NutritionDelta) Sub(o NutritionDelta) NutritionDelta {
    return NutritionDelta{d.Calories - o.Calories, d.ProteinG - o.ProteinG, d.CarbsG - o.CarbsG, d.FatG - o.FatG}
}

// IsZero reports whether the delta would change nothing.
func (d NutritionDelta) IsZero() bool {
    return d == NutritionDelta{}
}
