package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/thitiph0n/second-brain-sub000/services"

	"github.com/gin-gonic/gin"
)

// GetDailySummary returns the aggregate for one day. Days with no meals have
// no summary row and report 404.
func GetDailySummary(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	userID := c.GetUint("userID")
	summary, err := nutritionService().GetDailySummary(c.Request.Context(), userID, date)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no meals logged for this day"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
