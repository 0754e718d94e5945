package main

import (
	"github.com/saldomental/saldo/config"
	"github.com/saldomental/saldo/models"
	"github.com/saldomental/saldo/routes"
	"github.com/saldomental/saldo/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Profile{},
		&models.UserData{},
		&models.Goal{},
		&models.MoodEntry{},
		&models.QuizResult{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
