package realtime

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/you/classhub/domain"
)

// Handler upgrades HTTP requests to websocket connections on the hub
type Handler struct {
	hub      *Hub
	tokenSvc domain.TokenService
	upgrader websocket.Upgrader
}

// NewHandler creates the websocket endpoint. clientURL is the allowed
// browser origin; "*" or "" allows any origin.
func NewHandler(hub *Hub, tokenSvc domain.TokenService, clientURL string) *Handler {
	allowed := strings.TrimRight(strings.TrimSpace(clientURL), "/")
	return &Handler{
		hub:      hub,
		tokenSvc: tokenSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowed == "" || allowed == "*" {
					return true
				}
				origin := r.Header.Get("Origin")
				return origin == "" || strings.TrimRight(origin, "/") == allowed
			},
		},
	}
}

// Serve handles GET /ws. A valid ?token= joins the caller's private room;
// an invalid one is rejected before the upgrade.
func (h *Handler) Serve(c *gin.Context) {
	var userID uint
	if token := c.Query("token"); token != "" {
		claims, err := h.tokenSvc.ValidateAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		userID = claims.UserID
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WS_UPGRADE_FAILED: err=%v", err)
		return
	}

	client := newClient(h.hub, conn, userID)
	if userID != 0 {
		h.hub.Join(client, domain.UserRoom(userID))
	}

	go client.writePump()
	go client.readPump()
}
