package models

import (
    "time"

    "gorm.io/gorm"
)

// Meal types.
const (
    MealBreakfast = "breakfast"
    MealLunch     = "lunch"
    MealDinner    = "dinner"
    MealSnack     = "snack"
)

// One logged food item. The calendar day of LoggedAt decides which
// DailySummary the meal is counted against.
type Meal struct {
    gorm.Model
    UserID   uint   `gorm:"index;not null"` // FK → users.id
    MealType string `gorm:"not null"`       // breakfast|lunch|dinner|snack
    FoodName string `gorm:"not null"`

    Calories float64 // kcal, ≥ 0
    ProteinG float64
    CarbsG   float64
    FatG     float64

    LoggedAt time.Time `gorm:"index;not null"`

    // ClientToken makes meal creation idempotent: a retried request with the
    // same token hits the unique index instead of inserting a second row and
    // re-applying the ledger delta.
    ClientToken string `gorm:"type:varchar(64);uniqueIndex"`
}

// Day returns the calendar day (midnight UTC) the meal counts against.
func (m *Meal) Day() time.Time {
    return DayOf(m.LoggedAt)
}

// Delta is the meal's contribution to its day's summary.
func (m *Meal) Delta() NutritionDelta {
    return NutritionDelta{Calories: m.Calories, ProteinG: m.ProteinG, CarbsG: m.CarbsG, FatG: m.FatG}
}

// DayOf truncates a timestamp to its calendar day in UTC.
func DayOf(t time.Time) time.Time {
    t = t.UTC()
    return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
