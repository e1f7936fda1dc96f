package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/sekolah-console/internal/notify"
	"github.com/stemsi/sekolah-console/internal/response"
	ws "github.com/stemsi/sekolah-console/internal/websocket"
)

// FeedHandler streams notification changes to signed-in consoles.
type FeedHandler struct {
	feed     notify.Subscriber
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewFeedHandler creates a new FeedHandler. A nil feed makes the stream
// answer 503.
func NewFeedHandler(feed notify.Subscriber, log zerolog.Logger, allowedOrigins []string) *FeedHandler {
	return &FeedHandler{
		feed:     feed,
		log:      log.With().Str("component", "feed_handler").Logger(),
		upgrader: ws.BuildUpgrader(allowedOrigins),
	}
}

// Stream godoc
// WS /ws/notifications
// Upgrades to WebSocket and forwards every notification change visible to
// the user's role until the client disconnects.
func (h *FeedHandler) Stream(c *gin.Context) {
	if h.feed == nil {
		response.Fail(c, http.StatusServiceUnavailable, response.ErrFeedUnavailable)
		return
	}
	user := currentUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrLoginRequired)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int("user_id", user.ID).Str("role", string(user.Role)).Logger()
	wsLog.Info().Msg("Feed connected")

	ctx, cancel := context.WithCancel(context.WithoutCancel(c.Request.Context()))
	defer cancel()
	events := h.feed.Subscribe(ctx)

	if err := ws.WriteTyped(conn, ws.ReadyResponse{Event: ws.EventReady, Role: string(user.Role)}); err != nil {
		return
	}

	// Only this goroutine writes; the reader asks for pongs over a channel.
	pings := make(chan struct{}, 1)
	go func() {
		defer cancel()
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Connection closed")
				}
				return
			}
			if msg.Action == ws.ActionPing {
				select {
				case pings <- struct{}{}:
				default:
				}
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-pings:
			if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
				return
			}
		case e, ok := <-events:
			if !ok {
				ws.WriteError(conn, "feed closed")
				return
			}
			if !e.Visible(user.Role) {
				continue
			}
			if err := ws.WriteTyped(conn, ws.NotificationResponse{Event: ws.EventNotification, Data: e}); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed")
				return
			}
		}
	}
}
