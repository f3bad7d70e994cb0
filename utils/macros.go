package utils

import "math"

// activityMultipliers maps activity level to its TDEE multiplier. Single
// source of truth for valid levels; the request schema validates against it.
var activityMultipliers = map[string]float64{
    "sedentary":         1.2,
    "lightly_active":    1.375,
    "moderately_active": 1.55,
    "very_active":       1.725,
    "extremely_active":  1.9,
}

// goalAdjustments shifts the calorie target by fitness goal.
var goalAdjustments = map[string]float64{
    "lose_weight":     -500,
    "maintain_weight": 0,
    "gain_weight":     500,
}

// ValidActivityLevel reports whether level has a multiplier.
func ValidActivityLevel(level string) bool {
    _, ok := activityMultipliers[level]
    return ok
}

// ValidGoal reports whether goal has an adjustment.
func ValidGoal(goal string) bool {
    _, ok := goalAdjustments[goal]
    return ok
}

// CalculateTDEE estimates total daily energy expenditure from biometrics using
// Mifflin-St Jeor BMR, rounded to the nearest kcal.
//
// Gender "other" uses the female constant; that is a known modeling
// simplification, not an oversight. No plausibility clamping happens here —
// input ranges are the request schema's problem, so pathological inputs yield
// pathological TDEEs.
func CalculateTDEE(weightKg, heightCm float64, age int, gender, activityLevel, goal string) float64 {
    bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
    if gender == "male" {
        bmr += 5
    } else {
        bmr -= 161
    }
    return math.Round(bmr*activityMultipliers[activityLevel] + goalAdjustments[goal])
}

// MacroTargets is the daily gram goal per macronutrient.
type MacroTargets struct {
    ProteinG float64 `json:"protein_g"`
    CarbsG   float64 `json:"carbs_g"`
    FatG     float64 `json:"fat_g"`
}

// CalculateMacroTargets splits a calorie target into protein/fat/carb grams:
// protein at 2 g/kg bodyweight, fat at 30% of calories for males and 35%
// otherwise, carbs from whatever calories remain.
//
// CarbsG is deliberately not floored at zero: a very low calorie target can
// leave fewer calories than protein+fat consume, and the negative remainder is
// surfaced as-is rather than hidden by a clamp.
func CalculateMacroTargets(weightKg, targetCalories float64, gender string) MacroTargets {
    proteinG := math.Round(weightKg * 2)

    fatRatio := 0.35
    if gender == "male" {
        fatRatio = 0.30
    }
    fatCalories := math.Round(targetCalories * fatRatio)
    fatG := math.Round(fatCalories / 9)

    proteinCalories := proteinG * 4
    carbsG := math.Round((targetCalories - proteinCalories - fatCalories) / 4)

    return MacroTargets{ProteinG: proteinG, CarbsG: carbsG, FatG: fatG}
}
