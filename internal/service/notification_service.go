package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/stemsi/sekolah-console/internal/apiclient"
	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stemsi/sekolah-console/internal/notify"
)

// NotificationService wraps /notifications/ and announces every successful
// change on the live feed.
type NotificationService struct {
	res       resource
	publisher notify.Publisher
	log       zerolog.Logger
}

func NewNotificationService(client *apiclient.Client, publisher notify.Publisher, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		res:       resource{client: client, path: "/notifications/"},
		publisher: publisher,
		log:       log.With().Str("component", "notification_service").Logger(),
	}
}

func (s *NotificationService) List(ctx context.Context) ([]model.Notification, error) {
	items := []model.Notification{}
	if err := s.res.list(ctx, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *NotificationService) Create(ctx context.Context, req model.NotificationRequest) (*model.Notification, error) {
	var n model.Notification
	if err := s.res.create(ctx, req, &n); err != nil {
		return nil, err
	}
	s.announce(ctx, notify.Event{Type: notify.EventCreated, Notification: &n, ID: n.ID})
	return &n, nil
}

func (s *NotificationService) Update(ctx context.Context, id int, req model.NotificationRequest) (*model.Notification, error) {
	var n model.Notification
	if err := s.res.update(ctx, id, req, &n); err != nil {
		return nil, err
	}
	s.announce(ctx, notify.Event{Type: notify.EventUpdated, Notification: &n, ID: id})
	return &n, nil
}

func (s *NotificationService) Delete(ctx context.Context, id int) error {
	if err := s.res.remove(ctx, id); err != nil {
		return err
	}
	s.announce(ctx, notify.Event{Type: notify.EventDeleted, ID: id})
	return nil
}

// announce never fails the mutation; the feed is best effort.
func (s *NotificationService) announce(ctx context.Context, e notify.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.log.Warn().Err(err).Str("type", string(e.Type)).Msg("Failed to publish notification event")
	}
}
