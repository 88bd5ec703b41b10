package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/edustack/schoolhub/internal/response"
	"github.com/edustack/schoolhub/internal/service"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// EventsHandler streams roster change events to connected admin consoles
// over WebSocket. Events originate from the redis pub/sub channel the
// classroom service publishes on, so every server instance forwards the
// same stream.
type EventsHandler struct {
	events   *service.EventService
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(events *service.EventService, log zerolog.Logger, allowedOrigins []string) *EventsHandler {
	return &EventsHandler{
		events:   events,
		log:      log.With().Str("component", "events_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// StreamEvents godoc
// WS /api/admin/events
// Upgrades to WebSocket and forwards roster change events until the
// client disconnects.
func (h *EventsHandler) StreamEvents(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	sub := h.events.Subscribe(c.Request.Context())
	defer sub.Close()

	h.log.Info().
		Str("remote", c.ClientIP()).
		Str("request_id", response.GetRequestID(c)).
		Msg("Console connected to event stream")

	// Drain client frames so pings and close frames are processed; the
	// stream is one-way otherwise.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				sub.Close()
				return
			}
		}
	}()

	ch := sub.Channel()
	for msg := range ch {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
			h.log.Debug().Err(err).Msg("Event stream closed")
			return
		}
	}
}
