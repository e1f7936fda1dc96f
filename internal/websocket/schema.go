// Package websocket defines the messages exchanged on the live notification
// feed and helpers to read and write them.
package websocket

import "github.com/stemsi/sekolah-console/internal/notify"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventReady        Event = "ready"
	EventNotification Event = "notification"
	EventError        Event = "error"
	EventPong         Event = "pong"
)

// ReadyResponse is sent once the feed is subscribed.
type ReadyResponse struct {
	Event Event  `json:"event"`
	Role  string `json:"role"`
}

// NotificationResponse forwards one notification change.
type NotificationResponse struct {
	Event Event        `json:"event"`
	Data  notify.Event `json:"data"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
