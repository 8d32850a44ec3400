package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// The hub relays chat between the two participants of a live session.
// Rooms are keyed by session id; membership is verified before a client
// is handed to the hub.

type Client struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
	Conn      *websocket.Conn
}

type ChatMessage struct {
	SessionID uuid.UUID `json:"session_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Content   string    `json:"content"`
	SentAt    time.Time `json:"sent_at"`
}

var rooms = make(map[uuid.UUID]map[uuid.UUID]*websocket.Conn)
var roomsMu sync.RWMutex

var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *ChatMessage)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client %s joined session room %s", client.UserID, client.SessionID)
			roomsMu.Lock()
			if rooms[client.SessionID] == nil {
				rooms[client.SessionID] = make(map[uuid.UUID]*websocket.Conn)
			}
			rooms[client.SessionID][client.UserID] = client.Conn
			roomsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client %s left session room %s", client.UserID, client.SessionID)
			roomsMu.Lock()
			if room, ok := rooms[client.SessionID]; ok {
				if conn, ok := room[client.UserID]; ok && conn == client.Conn {
					delete(room, client.UserID)
				}
				if len(room) == 0 {
					delete(rooms, client.SessionID)
				}
			}
			roomsMu.Unlock()
		case message := <-Broadcast:
			roomsMu.RLock()
			room := rooms[message.SessionID]
			for participantID, conn := range room {
				if participantID == message.SenderID {
					continue
				}
				if err := conn.WriteJSON(message); err != nil {
					log.Printf("Error sending message to client %s: %v", participantID, err)
					conn.Close()
				}
			}
			roomsMu.RUnlock()
		}
	}
}
