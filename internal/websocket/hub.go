package calendarws

import (
	"encoding/json"
	"log"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
)

// Hub fans calendar change notices out to every connected staff client. The
// front end refetches the affected collection when a notice arrives, so the
// payload carries only the entity kind and a timestamp.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan *ChangeNotice
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

type ChangeNotice struct {
	Type      string `json:"type"`
	Entity    string `json:"entity"`
	Timestamp string `json:"timestamp"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *ChangeNotice, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case notice := <-h.broadcast:
			h.deliver(notice)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// CalendarChanged queues a change notice without blocking the caller. If the
// hub is saturated the notice is dropped; clients resync on their next fetch
// anyway.
func (h *Hub) CalendarChanged(entity string) {
	notice := &ChangeNotice{
		Type:      "calendar_changed",
		Entity:    entity,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	select {
	case h.broadcast <- notice:
	default:
		log.Printf("calendar hub: broadcast buffer full, dropping %s notice", entity)
	}
}

func (h *Hub) deliver(notice *ChangeNotice) {
	payload, err := json.Marshal(notice)
	if err != nil {
		log.Printf("calendar hub encode notice: %v", err)
		return
	}

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// ReadPump drains inbound frames until the connection drops. Clients do not
// send application messages; the read loop exists to detect disconnects.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
