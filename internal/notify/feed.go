// Package notify fans notification changes out to every connected console.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/sekolah-console/internal/config"
	"github.com/stemsi/sekolah-console/internal/model"
)

// EventType names what happened to a notification.
type EventType string

const (
	EventCreated EventType = "notification.created"
	EventUpdated EventType = "notification.updated"
	EventDeleted EventType = "notification.deleted"
)

// Event is one feed message.
type Event struct {
	Type         EventType           `json:"type"`
	Notification *model.Notification `json:"notification,omitempty"`
	ID           int                 `json:"id,omitempty"`
}

// Visible reports whether a user with role should receive e.
func (e Event) Visible(role model.Role) bool {
	if e.Notification == nil || e.Notification.TargetRole == "" {
		return true
	}
	return e.Notification.TargetRole == role || role == model.RoleAdmin
}

// Publisher announces notification changes.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Subscriber streams feed events until its context ends.
type Subscriber interface {
	Subscribe(ctx context.Context) <-chan Event
}

// Feed publishes and subscribes over a Redis channel.
type Feed struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewFeed creates a Feed on rdb.
func NewFeed(rdb *redis.Client, log zerolog.Logger) *Feed {
	return &Feed{rdb: rdb, log: log.With().Str("component", "notification_feed").Logger()}
}

func (f *Feed) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := f.rdb.Publish(ctx, config.CacheKey.NotificationChannel(), payload).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Subscribe streams events until ctx is done. Undecodable messages are skipped.
func (f *Feed) Subscribe(ctx context.Context) <-chan Event {
	pubsub := f.rdb.Subscribe(ctx, config.CacheKey.NotificationChannel())
	out := make(chan Event, 16)

	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var e Event
				if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
					f.log.Warn().Err(err).Msg("Dropping undecodable feed message")
					continue
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// Discard is a Publisher that drops every event.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }
