package models

import (
    "time"

    "gorm.io/gorm"
)

// InitialFreezeCredits is the allowance a new streak starts with.
const InitialFreezeCredits = 2

// Streak tracks consecutive days with at least one meal logged. One row per
// user, created lazily on the first log and never deleted; a "reset" only
// zeroes CurrentStreak and clears LastLoggedDate.
type Streak struct {
    gorm.Model
    UserID uint `gorm:"uniqueIndex;not null"`

    CurrentStreak   int
    LongestStreak   int // monotonic non-decreasing
    LastLoggedDate  *time.Time `gorm:"type:date"`
    FreezeCredits   int
    TotalLoggedDays int

    // Bumped on every save; repository upserts are compare-and-swap on this
    // column so concurrent day-logs for one user cannot lose an update.
    Version int `gorm:"not null;default:0"`
}
