package handlers

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/lunamistica/tarot_platform/database"
	"github.com/lunamistica/tarot_platform/models"
	hub "github.com/lunamistica/tarot_platform/websocket"
)

// ServeSessionWs upgrades a participant into the live chat room for one
// session. Only the session's user and tarotista are admitted.
func ServeSessionWs(conn *websocket.Conn) {
	defer conn.Close()

	sessionID, err := uuid.Parse(conn.Params("sessionId"))
	if err != nil {
		return
	}

	token, ok := conn.Locals("user").(*jwt.Token)
	if !ok {
		return
	}
	claims := token.Claims.(jwt.MapClaims)
	userID, err := uuid.Parse(claims["user_id"].(string))
	if err != nil {
		return
	}

	var sess models.Session
	if err := database.DB.First(&sess, "id = ?", sessionID).Error; err != nil {
		return
	}
	if userID != sess.UserID && userID != sess.TarotistaID {
		return
	}

	client := &hub.Client{UserID: userID, SessionID: sessionID, Conn: conn}
	hub.Register <- client
	defer func() { hub.Unregister <- client }()

	for {
		var payload struct {
			Content string `json:"content"`
		}
		if err := conn.ReadJSON(&payload); err != nil {
			break
		}
		if payload.Content == "" {
			continue
		}
		hub.Broadcast <- &hub.ChatMessage{
			SessionID: sessionID,
			SenderID:  userID,
			Content:   payload.Content,
			SentAt:    time.Now(),
		}
	}
}
