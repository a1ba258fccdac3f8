package live

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/pitchside/pitchside/internal/match"
	"github.com/pitchside/pitchside/pkg/responses"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Spectator feed is public; origin enforcement happens at the proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RegisterLiveRoutes mounts the spectator WebSocket endpoint under /ws.
// Clients receive the current scoring snapshot on connect and every
// subsequent state change.
func RegisterLiveRoutes(router *gin.RouterGroup, db *gorm.DB, hub *Hub) {
	matchRepo := match.NewMatchRepository(db)

	router.GET("/matches/:id", func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			responses.BadRequest(c, "Invalid match ID")
			return
		}

		m, err := matchRepo.GetByID(uint(id))
		if err != nil {
			responses.InternalServerError(c, "Failed to fetch match")
			return
		}
		if m == nil {
			responses.NotFound(c, "Match")
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the HTTP error response.
			return
		}
		NewClient(hub, conn, m.ID, []byte(m.ScoringState))
	})
}
