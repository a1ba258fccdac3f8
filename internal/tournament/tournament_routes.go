package tournament

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pitchside/pitchside/config"
	"github.com/pitchside/pitchside/internal/middleware"
	"github.com/pitchside/pitchside/pkg/rmiddleware"
)

func RegisterTournamentRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewTournamentRepository(db)
	controller := NewTournamentController(repo)

	public := router.Group("/tournaments")
	{
		public.GET("", controller.ListTournaments)
		public.GET("/:id", controller.GetTournament)
	}

	admin := router.Group("/tournaments")
	admin.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db), rmiddleware.AdminMiddleware(db))
	{
		admin.POST("", controller.CreateTournament)
		admin.PUT("/:id", controller.UpdateTournament)
		admin.PATCH("/:id/status", controller.UpdateStatus)
		admin.DELETE("/:id", controller.DeleteTournament)
	}
}
