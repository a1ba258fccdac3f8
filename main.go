package main

import (
	"context"
	"log"

	"github.com/pitchside/pitchside/config"
	_ "github.com/pitchside/pitchside/docs"
	"github.com/pitchside/pitchside/internal/live"
	"github.com/pitchside/pitchside/internal/match"
	"github.com/pitchside/pitchside/internal/team"
	"github.com/pitchside/pitchside/internal/tournament"
	"github.com/pitchside/pitchside/internal/user"
	"github.com/pitchside/pitchside/routes"
)

// @title Pitchside API
// @version 1.0
// @description Cricket tournament management with live ball-by-ball scoring.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{}, &user.Role{}, &user.UserRole{}, &user.RefreshToken{},
		&tournament.Tournament{},
		&team.Team{}, &team.Player{},
		&match.Match{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	hub := live.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	r := routes.SetupRoutes(config.DB, cfg, hub)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
