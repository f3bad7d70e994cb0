package models

import (
    "gorm.io/gorm"
)

// Gender values accepted on a profile.
const (
    GenderMale   = "male"
    GenderFemale = "female"
    GenderOther  = "other"
)

// Activity levels, least to most active.
const (
    ActivitySedentary        = "sedentary"
    ActivityLightlyActive    = "lightly_active"
    ActivityModeratelyActive = "moderately_active"
    ActivityVeryActive       = "very_active"
    ActivityExtremelyActive  = "extremely_active"
)

const (
    GoalLoseWeight     = "lose_weight"
    GoalMaintainWeight = "maintain_weight"
    GoalGainWeight     = "gain_weight"
)

// UserProfile holds a user's biometrics plus the calorie/macro targets derived
// from them. The derived fields are recomputed in full on every write; they are
// never patched incrementally, so they always reflect the biometrics as of the
// last save.
type UserProfile struct {
    gorm.Model
    UserID        uint    `gorm:"uniqueIndex;not null"`
    Age           int     // years, 1–120 (validated at the API layer)
    WeightKg      float64
    HeightCm      float64
    Gender        string  // male|female|other
    ActivityLevel string
    Goal          string

    // Derived on every write.
    TDEE           float64
    TargetCalories float64
    TargetProteinG float64
    TargetCarbsG   float64
    TargetFatG     float64
}
