package models

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	EventPostPublished  = "post_published"
	EventCommentCreated = "comment_created"
	EventClientConnect  = "client_connect"
	EventClientReady    = "client_connected"
	EventPing           = "ping"
	EventPong           = "pong"
)

type Hub struct {
	Clients     map[*Client]bool
	Broadcast   chan []byte
	Direct      chan DirectMessage
	Reply       chan ClientMessage
	Register    chan *Client
	Unregister  chan *Client
	UserClients map[uint][]*Client
}

// DirectMessage is a payload addressed to every client of one user.
type DirectMessage struct {
	UserID  uint
	Payload []byte
}

// ClientMessage is a payload for one connection, such as a pong.
type ClientMessage struct {
	Client  *Client
	Payload []byte
}

type Client struct {
	ID     string
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	UserID uint
}

type WSMessage struct {
	Type     string      `json:"type"`
	Data     interface{} `json:"data"`
	ClientID string      `json:"client_id,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		Clients:     make(map[*Client]bool),
		Broadcast:   make(chan []byte, 64),
		Direct:      make(chan DirectMessage, 64),
		Reply:       make(chan ClientMessage, 64),
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
		UserClients: make(map[uint][]*Client),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uint) *Client {
	return &Client{
		ID:     uuid.New().String(),
		Hub:    hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		UserID: userID,
	}
}
