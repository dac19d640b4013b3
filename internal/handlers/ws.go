package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jugal-ahir/ByteHackage/internal/models"
	"github.com/jugal-ahir/ByteHackage/internal/services"
	"github.com/jugal-ahir/ByteHackage/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub         *ws.Hub
	authService *services.AuthService
}

func NewWSHandler(hub *ws.Hub, authService *services.AuthService) *WSHandler {
	return &WSHandler{hub: hub, authService: authService}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type clientMessage struct {
	Type       string `json:"type"`
	RoomNumber string `json:"room_number"`
}

// HandleWebSocket godoc
// @Summary      Realtime event stream
// @Description  Authenticate via token query param, then send join-classroom / join-dashboard messages
// @Tags         websocket
// @Param        token query string true "JWT"
// @Router       /ws [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	userID, err := h.authService.ValidateToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired token"})
		return
	}
	user, err := h.authService.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "user not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddConnection(conn)
	defer h.hub.RemoveConnection(conn)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "join-classroom":
			if models.ValidRoomNumber(msg.RoomNumber) {
				h.hub.JoinRoom(msg.RoomNumber, conn)
			}
		case "join-dashboard":
			// Cross-room visibility is for coordinators and organizers only.
			if user.IsCoordinator() {
				h.hub.JoinDashboard(conn)
			}
		}
	}
}
