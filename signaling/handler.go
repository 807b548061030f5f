package signaling

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Browsers connect from the portal frontends; origin policy is handled
	// at the deployment edge like the rest of the CORS config.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request and attaches the connection to the hub.
//
// Anyone who knows a roomId can join its room: the relay performs no
// ownership check against the session's doctor/patient. If that check is
// added it belongs in the lifecycle controller behind OnRoomJoin, not here.
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			hub.logger.Warn("relay: websocket upgrade failed", zap.Error(err))
			return
		}
		NewClient(hub, conn).Start()
	}
}
