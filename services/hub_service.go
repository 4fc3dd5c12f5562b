package services

import (
	"encoding/json"
	"log"

	"blogapi/models"
)

// HubService owns the hub maps; only Run touches them.
type HubService struct {
	hub *models.Hub
}

func NewHubService() *HubService {
	service := &HubService{hub: models.NewHub()}

	go service.Run()

	return service
}

func (h *HubService) GetHub() *models.Hub {
	return h.hub
}

func (h *HubService) Run() {
	for {
		select {
		case client := <-h.hub.Register:
			h.registerClient(client)

		case client := <-h.hub.Unregister:
			h.dropClient(client)

		case message := <-h.hub.Broadcast:
			for client := range h.hub.Clients {
				h.deliver(client, message)
			}

		case direct := <-h.hub.Direct:
			targets := append([]*models.Client(nil), h.hub.UserClients[direct.UserID]...)
			for _, client := range targets {
				h.deliver(client, direct.Payload)
			}

		case reply := <-h.hub.Reply:
			if h.hub.Clients[reply.Client] {
				h.deliver(reply.Client, reply.Payload)
			}
		}
	}
}

func (h *HubService) registerClient(client *models.Client) {
	h.hub.Clients[client] = true
	h.hub.UserClients[client.UserID] = append(h.hub.UserClients[client.UserID], client)
	log.Printf("Client %s registered for user %d", client.ID, client.UserID)
}

// dropClient removes the client from both indexes and closes Send exactly once.
func (h *HubService) dropClient(client *models.Client) {
	if _, ok := h.hub.Clients[client]; !ok {
		return
	}
	delete(h.hub.Clients, client)
	close(client.Send)

	clients := h.hub.UserClients[client.UserID]
	for i, c := range clients {
		if c == client {
			clients = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(clients) == 0 {
		delete(h.hub.UserClients, client.UserID)
	} else {
		h.hub.UserClients[client.UserID] = clients
	}
	log.Printf("Client %s unregistered for user %d", client.ID, client.UserID)
}

// deliver drops clients whose send buffer is full.
func (h *HubService) deliver(client *models.Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		h.dropClient(client)
	}
}

func (h *HubService) BroadcastToUser(userID uint, messageType string, data interface{}) {
	payload, ok := encodeMessage(messageType, data)
	if !ok {
		return
	}
	select {
	case h.hub.Direct <- models.DirectMessage{UserID: userID, Payload: payload}:
	default:
		log.Printf("Hub direct queue full, dropping %s for user %d", messageType, userID)
	}
}

func (h *HubService) BroadcastToAll(messageType string, data interface{}) {
	payload, ok := encodeMessage(messageType, data)
	if !ok {
		return
	}
	select {
	case h.hub.Broadcast <- payload:
	default:
		log.Printf("Hub broadcast queue full, dropping %s", messageType)
	}
}

// SendToClient answers a single connection. Delivery goes through Run so a
// client that was already dropped is skipped.
func (h *HubService) SendToClient(client *models.Client, message models.WSMessage) {
	payload, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling WebSocket message: %v", err)
		return
	}
	select {
	case h.hub.Reply <- models.ClientMessage{Client: client, Payload: payload}:
	default:
		log.Printf("Hub reply queue full, dropping %s for client %s", message.Type, client.ID)
	}
}

func encodeMessage(messageType string, data interface{}) ([]byte, bool) {
	payload, err := json.Marshal(models.WSMessage{Type: messageType, Data: data})
	if err != nil {
		log.Printf("Error marshaling WebSocket message: %v", err)
		return nil, false
	}
	return payload, true
}
