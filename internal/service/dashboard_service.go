package service

import (
	"context"

	"github.com/stemsi/sekolah-console/internal/hierarchy"
	"github.com/stemsi/sekolah-console/internal/model"
	"golang.org/x/sync/errgroup"
)

// DashboardData is what the dashboard shows the signed-in user.
type DashboardData struct {
	User          *model.User            `json:"user"`
	Notifications []model.Notification   `json:"notifications"`
	Banners       []model.Banner         `json:"banners"`
	Grades        []hierarchy.GradeGroup `json:"grades"`
	RegionCount   *int                   `json:"region_count,omitempty"`
}

// DashboardService assembles the dashboard from several backend lists.
type DashboardService struct {
	regions       *RegionService
	notifications *NotificationService
	banners       *BannerService
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(regions *RegionService, notifications *NotificationService, banners *BannerService) *DashboardService {
	return &DashboardService{regions: regions, notifications: notifications, banners: banners}
}

// Get fetches the lists concurrently and waits for all of them. Staff also
// get the number of regions.
func (s *DashboardService) Get(ctx context.Context, u *model.User) (*DashboardData, error) {
	data := &DashboardData{User: u, Grades: hierarchy.Tree(u)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.notifications.List(gctx)
		if err != nil {
			return err
		}
		data.Notifications = visibleNotifications(items, u)
		return nil
	})
	g.Go(func() error {
		banners, err := s.banners.List(gctx)
		if err != nil {
			return err
		}
		data.Banners = activeBanners(banners)
		return nil
	})
	if u != nil && u.Role.In(model.RoleAdmin, model.RoleTeacher) {
		g.Go(func() error {
			regions, err := s.regions.List(gctx)
			if err != nil {
				return err
			}
			n := len(regions)
			data.RegionCount = &n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func visibleNotifications(items []model.Notification, u *model.User) []model.Notification {
	out := []model.Notification{}
	for _, n := range items {
		if n.TargetRole == "" || u == nil || u.Role == model.RoleAdmin || n.TargetRole == u.Role {
			out = append(out, n)
		}
	}
	return out
}

func activeBanners(banners []model.Banner) []model.Banner {
	out := []model.Banner{}
	for _, b := range banners {
		if b.IsActive {
			out = append(out, b)
		}
	}
	return out
}
