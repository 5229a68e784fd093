package server

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler upgrades the connection and attaches it to the timeline
// hub. The stream is one-way: the server pushes timeline events, clients only
// answer pings.
// @Summary Timeline websocket
// @Description Streams new_message and message_deleted events for the authenticated user
// @Tags websocket
// @Security BearerAuth
// @Router /api/ws [get]
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals("userID").(uint)
		if !ok || userID == 0 {
			_ = conn.Close()
			return
		}

		if s.hub == nil {
			// Timeline streaming requires Redis.
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "Timeline unavailable"))
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("websocket register failed for user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "Connection limit reached"))
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}
