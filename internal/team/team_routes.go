package team

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pitchside/pitchside/config"
	"github.com/pitchside/pitchside/internal/middleware"
	"github.com/pitchside/pitchside/internal/tournament"
	"github.com/pitchside/pitchside/pkg/rmiddleware"
)

func RegisterTeamRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewTeamRepository(db)
	tournamentRepo := tournament.NewTournamentRepository(db)
	controller := NewTeamController(repo, tournamentRepo)

	public := router.Group("/teams")
	{
		public.GET("", controller.ListTeams)
		public.GET("/:id", controller.GetTeam)
	}

	admin := router.Group("/teams")
	admin.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db), rmiddleware.AdminMiddleware(db))
	{
		admin.POST("", controller.CreateTeam)
		admin.PUT("/:id", controller.UpdateTeam)
		admin.DELETE("/:id", controller.DeleteTeam)
		admin.POST("/:id/players", controller.AddPlayer)
		admin.PUT("/:id/players/:playerId", controller.UpdatePlayer)
		admin.DELETE("/:id/players/:playerId", controller.RemovePlayer)
	}
}
