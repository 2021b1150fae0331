package notification

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"laundryhub/internal/pkg/response"
)

type Handler struct {
	hub      *AdminHub
	upgrader websocket.Upgrader
}

func NewHandler(hub *AdminHub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/admin", h.ServeAdminWS)
}

// ServeAdminWS upgrades the connection and parks it in the hub until the
// client goes away. Auth and the manager gate run in middleware before
// this point.
func (h *Handler) ServeAdminWS(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws_upgrade_failed user_id=%d error=%q", userID, err)
		return
	}

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID)

	// the admin channel is push-only; reads just detect disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
