package bookingws

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
	websocket "github.com/gofiber/contrib/websocket"
)

// Hub fans booking-created events out to clients watching a slot grid. A
// topic is one (gym, resource type, day) combination; a client on the hour
// selection screen subscribes to exactly one topic and marks incoming hours
// as taken without refetching.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	announce   chan *models.Booking
}

type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	topic string
	send  chan []byte
}

type Event struct {
	Type      string `json:"type"`
	BookingID int64  `json:"booking_id"`
	GymID     int64  `json:"gym_id"`
	Resource  string `json:"resource"`
	Date      string `json:"date"`
	Hour      int    `json:"hour"`
}

// Topic builds the subscription key for one slot grid.
func Topic(gymID int64, bookingType string, day time.Time) string {
	return fmt.Sprintf("%d:%s:%s", gymID, bookingType, day.Format("2006-01-02"))
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		announce:   make(chan *models.Booking, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, topic string) *Client {
	return &Client{
		hub:   hub,
		conn:  conn,
		topic: topic,
		send:  make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.topic]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.topic] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.topic]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.topic)
			}
		case booking := <-h.announce:
			h.deliver(booking)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// AnnounceBooking queues a created booking for delivery. It never blocks the
// reservation commit path; if the hub is saturated the event is dropped and
// clients fall back to reloading on re-entry.
func (h *Hub) AnnounceBooking(booking *models.Booking) {
	select {
	case h.announce <- booking:
	default:
		log.Printf("booking feed: dropped event for booking %d", booking.ID)
	}
}

func (h *Hub) deliver(booking *models.Booking) {
	event := Event{
		Type:      "booking_created",
		BookingID: booking.ID,
		GymID:     booking.GymID,
		Resource:  booking.Type,
		Date:      booking.Start.Format("2006-01-02"),
		Hour:      booking.Start.Hour(),
	}
	encoded, err := json.Marshal(event)
	if err != nil {
		log.Printf("booking feed encode event: %v", err)
		return
	}

	topic := Topic(booking.GymID, booking.Type, booking.Start)
	set, ok := h.clients[topic]
	if !ok {
		return
	}

	for client := range set {
		select {
		case client.send <- encoded:
		default:
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, topic)
	}
}

// ReadPump drains the connection until the peer goes away. Clients do not
// send anything meaningful on this feed; a new topic means a new connection.
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
}
