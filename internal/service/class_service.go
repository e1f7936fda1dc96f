package service

import (
	"context"
	"strings"

	"github.com/stemsi/sekolah-console/internal/apiclient"
	"github.com/stemsi/sekolah-console/internal/model"
)

// ClassService wraps /classes/.
type ClassService struct {
	res resource
}

// NewClassService creates a new ClassService.
func NewClassService(client *apiclient.Client) *ClassService {
	return &ClassService{res: resource{client: client, path: "/classes/"}}
}

// ListByRegion lists the classes of one region.
func (s *ClassService) ListByRegion(ctx context.Context, regionID int) ([]model.Class, error) {
	classes := []model.Class{}
	if err := s.res.list(ctx, byID("region_id", regionID), &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (s *ClassService) Get(ctx context.Context, id int) (*model.Class, error) {
	var cl model.Class
	if err := s.res.get(ctx, id, &cl); err != nil {
		return nil, err
	}
	return &cl, nil
}

// Create adds a class to a region. The name is sent trimmed; the backend
// stores it as typed otherwise.
func (s *ClassService) Create(ctx context.Context, req model.ClassRequest) (*model.Class, error) {
	req.Name = strings.TrimSpace(req.Name)
	var cl model.Class
	if err := s.res.create(ctx, req, &cl); err != nil {
		return nil, err
	}
	return &cl, nil
}

func (s *ClassService) Update(ctx context.Context, id int, req model.ClassRequest) (*model.Class, error) {
	req.Name = strings.TrimSpace(req.Name)
	var cl model.Class
	if err := s.res.update(ctx, id, req, &cl); err != nil {
		return nil, err
	}
	return &cl, nil
}

func (s *ClassService) Delete(ctx context.Context, id int) error {
	return s.res.remove(ctx, id)
}
