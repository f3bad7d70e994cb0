package controllers

import (
	"errors"
	"net/http"

	"github.com/thitiph0n/second-brain-sub000/models"
	"github.com/thitiph0n/second-brain-sub000/services"
	"github.com/thitiph0n/second-brain-sub000/utils"

	"github.com/gin-gonic/gin"
)

type profileRequest struct {
	Age           int     `json:"age" binding:"required,gte=1,lte=120"`
	WeightKg      float64 `json:"weight_kg" binding:"required,gt=0"`
	HeightCm      float64 `json:"height_cm" binding:"required,gt=0"`
	Gender        string  `json:"gender" binding:"required,oneof=male female other"`
	ActivityLevel string  `json:"activity_level" binding:"required"`
	Goal          string  `json:"goal" binding:"required"`
}

func profileResponse(p *models.UserProfile) gin.H {
	resp := gin.H{
		"age":              p.Age,
		"weight_kg":        p.WeightKg,
		"height_cm":        p.HeightCm,
		"gender":           p.Gender,
		"activity_level":   p.ActivityLevel,
		"goal":             p.Goal,
		"tdee":             p.TDEE,
		"target_calories":  p.TargetCalories,
		"target_protein_g": p.TargetProteinG,
		"target_carbs_g":   p.TargetCarbsG,
		"target_fat_g":     p.TargetFatG,
	}
	if bmi, err := utils.CalculateBMI(p.HeightCm, p.WeightKg); err == nil {
		resp["bmi"] = bmi
		resp["bmi_category"] = utils.BMICategory(bmi)
	}
	return resp
}

func GetProfile(c *gin.Context) {
	userID := c.GetUint("userID")
	profile, err := nutritionService().GetProfile(c.Request.Context(), userID)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not set"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profileResponse(profile))
}

// UpdateProfile replaces the whole profile and recomputes every derived field.
func UpdateProfile(c *gin.Context) {
	var body profileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !utils.ValidActivityLevel(body.ActivityLevel) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown activity_level"})
		return
	}
	if !utils.ValidGoal(body.Goal) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown goal"})
		return
	}

	userID := c.GetUint("userID")
	profile, err := nutritionService().ComputeProfile(c.Request.Context(), userID, services.BiometricsInput{
		Age:           body.Age,
		WeightKg:      body.WeightKg,
		HeightCm:      body.HeightCm,
		Gender:        body.Gender,
		ActivityLevel: body.ActivityLevel,
		Goal:          body.Goal,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profileResponse(profile))
}
