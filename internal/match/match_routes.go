package match

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pitchside/pitchside/config"
	"github.com/pitchside/pitchside/internal/middleware"
	"github.com/pitchside/pitchside/internal/team"
	"github.com/pitchside/pitchside/internal/tournament"
	"github.com/pitchside/pitchside/pkg/rmiddleware"
)

func RegisterMatchRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, broadcaster Broadcaster) {
	repo := NewMatchRepository(db)
	tournamentRepo := tournament.NewTournamentRepository(db)
	teamRepo := team.NewTeamRepository(db)
	defaults := ScoringDefaults{
		OversPerInnings:   appConfig.Scoring.OversPerInnings,
		MaxOversPerBowler: appConfig.Scoring.MaxOversPerBowler,
	}
	controller := NewMatchController(repo, tournamentRepo, teamRepo, broadcaster, defaults)

	public := router.Group("/matches")
	{
		public.GET("", controller.ListMatches)
		public.GET("/:id", controller.GetMatch)
		public.GET("/:id/scorecard", controller.GetScorecard)
	}

	admin := router.Group("/matches")
	admin.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db), rmiddleware.AdminMiddleware(db))
	{
		admin.POST("", controller.CreateMatch)
		admin.PUT("/:id/scorer", controller.AssignScorer)
		admin.DELETE("/:id", controller.DeleteMatch)
	}

	// Scoring endpoints additionally require the caller to be the assigned
	// scorer, checked in the controller against the match record.
	scoring := router.Group("/matches")
	scoring.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db), rmiddleware.ScorerOrAdminMiddleware(db))
	{
		scoring.POST("/:id/start", controller.StartMatch)
		scoring.POST("/:id/toss", controller.RecordToss)
		scoring.POST("/:id/select-players", controller.SelectPlayers)
		scoring.POST("/:id/ball", controller.RecordBall)
		scoring.POST("/:id/extra", controller.RecordExtra)
		scoring.POST("/:id/wicket", controller.RecordWicket)
		scoring.POST("/:id/new-batsman", controller.SelectNewBatsman)
		scoring.POST("/:id/change-bowler", controller.ChangeBowler)
		scoring.GET("/:id/eligible-bowlers", controller.EligibleBowlers)
		scoring.POST("/:id/undo", controller.UndoLastBall)
		scoring.POST("/:id/second-innings", controller.StartSecondInnings)
	}
}
