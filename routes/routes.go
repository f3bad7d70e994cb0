package routes

import (
	"time"

	"github.com/thitiph0n/second-brain-sub000/controllers"
	"github.com/thitiph0n/second-brain-sub000/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	// Public auth routes
	auth := r.Group("/auth")
	auth.Use(middlewares.RateLimitMiddleware(30))
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected routes
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/user/profile", controllers.GetProfile)
		api.PUT("/user/profile", controllers.UpdateProfile)

		meals := api.Group("/meals")
		meals.Use(middlewares.RateLimitMiddleware(120))
		{
			meals.POST("", controllers.LogMeal)
			meals.GET("", controllers.ListMeals)
			meals.GET("/:id", controllers.GetMeal)
			meals.PUT("/:id", controllers.UpdateMeal)
			meals.DELETE("/:id", controllers.DeleteMeal)
		}

		api.GET("/summary/:date", controllers.GetDailySummary)

		api.GET("/streak", controllers.GetStreak)
		api.POST("/streak/freeze", controllers.UseFreezeCredit)
		api.POST("/streak/reset", controllers.ResetStreak)
	}

	return r
}
