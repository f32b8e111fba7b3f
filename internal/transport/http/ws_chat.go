package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"studybuddy-service/internal/app"
	"studybuddy-service/internal/markup"
)

// WSChatHandler serves an interactive chat session over a websocket. Unlike
// the REST endpoint, the connection keeps the user's place in a longer
// conversation without re-posting.
type WSChatHandler struct {
	service  *app.StudyService
	upgrader websocket.Upgrader
}

func NewWSChatHandler(service *app.StudyService) *WSChatHandler {
	return &WSChatHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type chatPayload struct {
	Message string `json:"message"`
	Mode    string `json:"mode"`
}

type replyPayload struct {
	Response  string `json:"response"`
	Formatted string `json:"formatted"`
	Offline   bool   `json:"offline"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and answers chat messages until the client
// hangs up. Messages on one connection are handled in order, so writes never
// interleave.
func (h *WSChatHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	user := userID(r.URL.Query().Get("userId"))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "chat":
			var payload chatPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.send(conn, outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "invalid chat payload"}})
				continue
			}
			reply, err := h.service.Chat(r.Context(), user, payload.Message, payload.Mode)
			if err != nil {
				h.send(conn, outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
				continue
			}
			h.send(conn, outboundMessage[replyPayload]{Type: "reply", Payload: replyPayload{
				Response:  reply.Text,
				Formatted: markup.Format(reply.Text),
				Offline:   reply.Offline,
			}})
		default:
			h.send(conn, outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
	}
}

func (h *WSChatHandler) send(conn *websocket.Conn, msg any) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("ws write error: %v", err)
	}
}
