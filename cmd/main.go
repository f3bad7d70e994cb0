package main

import (
	"os"

	"github.com/thitiph0n/second-brain-sub000/config"
	"github.com/thitiph0n/second-brain-sub000/routes"
	"github.com/thitiph0n/second-brain-sub000/utils"
)

func main() {
	config.InitDB()
	utils.InitLogger(os.Getenv("LOG_PATH"), os.Getenv("LOG_LEVEL"))
	defer utils.Logger.Sync()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
