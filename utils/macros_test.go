package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTDEE(t *testing.T) {
	tests := []struct {
		name     string
		weightKg float64
		heightCm float64
		age      int
		gender   string
		activity string
		goal     string
		want     float64
	}{
		{
			// BMR = 10*70 + 6.25*175 - 5*30 + 5 = 1648.75 → round(1648.75*1.55)
			name:     "male moderate maintain",
			weightKg: 70, heightCm: 175, age: 30,
			gender: "male", activity: "moderately_active", goal: "maintain_weight",
			want: 2556,
		},
		{
			// BMR = 10*80 + 6.25*180 - 5*25 + 5 = 1805 → round(1805*1.725 + 500)
			name:     "male very active gaining",
			weightKg: 80, heightCm: 180, age: 25,
			gender: "male", activity: "very_active", goal: "gain_weight",
			want: 3614,
		},
		{
			// BMR = 10*60 + 6.25*165 - 5*40 - 161 = 1270.25
			name:     "female sedentary losing",
			weightKg: 60, heightCm: 165, age: 40,
			gender: "female", activity: "sedentary", goal: "lose_weight",
			want: 1024,
		},
		{
			// "other" uses the female constant
			name:     "other matches female",
			weightKg: 60, heightCm: 165, age: 40,
			gender: "other", activity: "sedentary", goal: "lose_weight",
			want: 1024,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTDEE(tt.weightKg, tt.heightCm, tt.age, tt.gender, tt.activity, tt.goal)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateTDEEDeterministic(t *testing.T) {
	a := CalculateTDEE(72.5, 178.3, 33, "male", "lightly_active", "maintain_weight")
	b := CalculateTDEE(72.5, 178.3, 33, "male", "lightly_active", "maintain_weight")
	require.Equal(t, a, b)
}

func TestCalculateMacroTargets(t *testing.T) {
	t.Run("bulking scenario", func(t *testing.T) {
		got := CalculateMacroTargets(80, 3614, "male")
		// protein 160g = 640 kcal, fat 30% = round(3614*0.30) = 1084 kcal → 120g,
		// carbs round((3614-640-1084)/4) = round(472.5) → 473g
		assert.Equal(t, 160.0, got.ProteinG)
		assert.Equal(t, 120.0, got.FatG)
		assert.Equal(t, 473.0, got.CarbsG)
	})

	t.Run("non-male fat ratio is 35 percent", func(t *testing.T) {
		got := CalculateMacroTargets(60, 2000, "female")
		assert.Equal(t, 120.0, got.ProteinG)
		// fat: round(2000*0.35)=700 kcal → round(700/9)=78g
		assert.Equal(t, 78.0, got.FatG)
		// carbs: round((2000-480-700)/4)=205g
		assert.Equal(t, 205.0, got.CarbsG)
	})

	t.Run("negative carbs surfaced unclamped", func(t *testing.T) {
		// 100kg lifter with an 800 kcal target: protein alone costs 800 kcal,
		// fat another 240, so the carb remainder goes negative and stays so.
		got := CalculateMacroTargets(100, 800, "male")
		assert.Equal(t, 200.0, got.ProteinG)
		assert.Less(t, got.CarbsG, 0.0)
	})
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidActivityLevel("extremely_active"))
	assert.False(t, ValidActivityLevel("couch_potato"))
	assert.True(t, ValidGoal("lose_weight"))
	assert.False(t, ValidGoal("bulk"))
}
