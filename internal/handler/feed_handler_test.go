package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/sekolah-console/internal/apiclient"
	"github.com/stemsi/sekolah-console/internal/auth"
	"github.com/stemsi/sekolah-console/internal/config"
	"github.com/stemsi/sekolah-console/internal/middleware"
	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stemsi/sekolah-console/internal/notify"
	"github.com/stemsi/sekolah-console/internal/session"
	ws "github.com/stemsi/sekolah-console/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanSubscriber chan notify.Event

func (s chanSubscriber) Subscribe(context.Context) <-chan notify.Event { return s }

func TestFeedStreamsVisibleEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := session.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "sid", session.Record{
		Token: "tok",
		User:  model.User{ID: 5, Role: model.RoleStudent, Name: "Rina"},
	}))
	client := apiclient.New(&config.Config{BackendURL: "http://backend.invalid", APITimeout: time.Second}, zerolog.Nop())
	s, err := auth.NewManager(client, store, zerolog.Nop()).Open(ctx, "sid")
	require.NoError(t, err)

	events := make(chanSubscriber, 4)
	h := NewFeedHandler(events, zerolog.Nop(), nil)

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		c.Set(middleware.ContextKeyAuth, s)
		c.Next()
	}, h.Stream)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var ready ws.ReadyResponse
	require.NoError(t, conn.ReadJSON(&ready))
	assert.Equal(t, ws.EventReady, ready.Event)
	assert.Equal(t, "student", ready.Role)

	require.NoError(t, conn.WriteJSON(ws.RequestEnvelope{Action: ws.ActionPing}))
	var pong ws.PongResponse
	require.NoError(t, conn.ReadJSON(&pong))
	assert.Equal(t, ws.EventPong, pong.Event)

	events <- notify.Event{Type: notify.EventCreated, ID: 1, Notification: &model.Notification{ID: 1, Title: "Rapat guru", TargetRole: model.RoleTeacher}}
	events <- notify.Event{Type: notify.EventCreated, ID: 2, Notification: &model.Notification{ID: 2, Title: "Ujian", TargetRole: model.RoleStudent}}

	var got ws.NotificationResponse
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, ws.EventNotification, got.Event)
	assert.Equal(t, 2, got.Data.ID)
	assert.Equal(t, "Ujian", got.Data.Notification.Title)

	close(events)
	var closed ws.ErrorResponse
	require.NoError(t, conn.ReadJSON(&closed))
	assert.Equal(t, ws.EventError, closed.Event)
}
