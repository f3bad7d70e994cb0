package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/thitiph0n/second-brain-sub000/config"
	"github.com/thitiph0n/second-brain-sub000/repository"
	"github.com/thitiph0n/second-brain-sub000/services"
	"github.com/thitiph0n/second-brain-sub000/utils"

	"github.com/gin-gonic/gin"
)

// nutritionService builds the engine on the shared DB handle. Repositories are
// cheap structs, so per-request construction is fine.
func nutritionService() *services.NutritionService {
	meals := repository.NewMealRepository(config.DB)
	profiles := repository.NewProfileRepository(config.DB)
	summaries := repository.NewSummaryRepository(config.DB)
	streaks := repository.NewStreakRepository(config.DB)

	ledger := services.NewLedgerService(summaries, profiles, meals)
	streakSvc := services.NewStreakService(streaks)
	return services.NewNutritionService(meals, profiles, ledger, streakSvc, utils.Logger)
}

type mealRequest struct {
	MealType    string    `json:"meal_type" binding:"required,oneof=breakfast lunch dinner snack"`
	FoodName    string    `json:"food_name" binding:"required"`
	Calories    float64   `json:"calories" binding:"gte=0"`
	ProteinG    float64   `json:"protein_g" binding:"gte=0"`
	CarbsG      float64   `json:"carbs_g" binding:"gte=0"`
	FatG        float64   `json:"fat_g" binding:"gte=0"`
	LoggedAt    time.Time `json:"logged_at" binding:"required"`
	ClientToken string    `json:"client_token"`
}

func (r mealRequest) toInput() services.MealInput {
	return services.MealInput{
		MealType:    r.MealType,
		FoodName:    r.FoodName,
		Calories:    r.Calories,
		ProteinG:    r.ProteinG,
		CarbsG:      r.CarbsG,
		FatG:        r.FatG,
		LoggedAt:    r.LoggedAt,
		ClientToken: r.ClientToken,
	}
}

func LogMeal(c *gin.Context) {
	var body mealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("userID")
	meal, err := nutritionService().CreateMeal(c.Request.Context(), userID, body.toInput())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func ListMeals(c *gin.Context) {
	userID := c.GetUint("userID")
	svc := nutritionService()

	day := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	meals, err := svc.ListMealsByDay(c.Request.Context(), userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

func GetMeal(c *gin.Context) {
	userID := c.GetUint("userID")
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	meal, err := nutritionService().GetMeal(c.Request.Context(), userID, uint(mealID))
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func UpdateMeal(c *gin.Context) {
	userID := c.GetUint("userID")
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	var body mealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := nutritionService().UpdateMeal(c.Request.Context(), userID, uint(mealID), body.toInput())
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func DeleteMeal(c *gin.Context) {
	userID := c.GetUint("userID")
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	err = nutritionService().DeleteMeal(c.Request.Context(), userID, uint(mealID))
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
