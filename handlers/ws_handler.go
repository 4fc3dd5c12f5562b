package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"blogapi/models"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type WebSocketHandler struct {
	hubService *services.HubService
	upgrader   websocket.Upgrader
}

// NewWebSocketHandler accepts upgrades from allowedOrigins; "*" allows any.
// Requests without an Origin header (non-browser clients) are accepted.
func NewWebSocketHandler(hubService *services.HubService, allowedOrigins []string) *WebSocketHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &WebSocketHandler{
		hubService: hubService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// @Summary Open the realtime event socket
// @Tags realtime
// @Security BearerAuth
// @Param token query string false "Bearer token for clients that cannot set headers"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} map[string]interface{}
// @Router /auth/ws [get]
func (wh *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID, ok := c.Get("user_id")
	id, isUint := userID.(uint)
	if !ok || !isUint {
		utils.Fail(c, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	conn, err := wh.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := models.NewClient(wh.hubService.GetHub(), conn, id)
	client.Hub.Register <- client

	go wh.writePump(client)
	go wh.readPump(client)
}

func (wh *WebSocketHandler) readPump(client *models.Client) {
	defer func() {
		client.Hub.Unregister <- client
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Unexpected close error for client %s: %v", client.ID, err)
			}
			return
		}

		var wsMessage models.WSMessage
		if err := json.Unmarshal(message, &wsMessage); err != nil {
			log.Printf("Error unmarshaling WebSocket message from client %s: %v", client.ID, err)
			continue
		}

		reply, ok := replyTo(client, wsMessage)
		if !ok {
			log.Printf("Unknown message type %q from client %s (user %d)", wsMessage.Type, client.ID, client.UserID)
			continue
		}

		wh.hubService.SendToClient(client, reply)
	}
}

// replyTo answers the control messages a client may send.
func replyTo(client *models.Client, msg models.WSMessage) (models.WSMessage, bool) {
	switch msg.Type {
	case models.EventClientConnect:
		return models.WSMessage{
			Type:     models.EventClientReady,
			Data:     gin.H{"client_id": client.ID, "user_id": client.UserID},
			ClientID: client.ID,
		}, true
	case models.EventPing:
		return models.WSMessage{Type: models.EventPong, Data: gin.H{"time": time.Now().UTC()}}, true
	default:
		return models.WSMessage{}, false
	}
}

func (wh *WebSocketHandler) writePump(client *models.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Error writing to client %s: %v", client.ID, err)
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
