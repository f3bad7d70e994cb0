package controllers

import (
	"errors"
	"net/http"

	"github.com/thitiph0n/second-brain-sub000/services"

	"github.com/gin-gonic/gin"
)

func GetStreak(c *gin.Context) {
	userID := c.GetUint("userID")
	streak, err := nutritionService().GetStreak(c.Request.Context(), userID)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no streak yet"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, streak)
}

func UseFreezeCredit(c *gin.Context) {
	userID := c.GetUint("userID")
	streak, err := nutritionService().UseFreezeCredit(c.Request.Context(), userID)
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no streak yet"})
	case errors.Is(err, services.ErrInsufficientCredits):
		c.JSON(http.StatusConflict, gin.H{"error": "no freeze credits left"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, streak)
	}
}

func ResetStreak(c *gin.Context) {
	userID := c.GetUint("userID")
	streak, err := nutritionService().ResetStreak(c.Request.Context(), userID)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no streak yet"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, streak)
}
