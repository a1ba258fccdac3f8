package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/pitchside/pitchside/config"
	"github.com/pitchside/pitchside/internal/auth"
	"github.com/pitchside/pitchside/internal/live"
	"github.com/pitchside/pitchside/internal/match"
	"github.com/pitchside/pitchside/internal/team"
	"github.com/pitchside/pitchside/internal/tournament"
)

func SetupRoutes(db *gorm.DB, appConfig *config.Config, hub *live.Hub) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{appConfig.App.FrontendURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "Pitchside API",
			"docs":    "/swagger/index.html",
			"healthy": true,
		})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, appConfig)
	tournament.RegisterTournamentRoutes(api, db, appConfig)
	team.RegisterTeamRoutes(api, db, appConfig)
	match.RegisterMatchRoutes(api, db, appConfig, hub)
	live.RegisterLiveRoutes(r.Group("/ws"), db, hub)

	return r
}
