package service

import (
	"context"

	"github.com/stemsi/sekolah-console/internal/apiclient"
	"github.com/stemsi/sekolah-console/internal/model"
)

// RegionService wraps /regions/.
type RegionService struct {
	res resource
}

// NewRegionService creates a new RegionService.
func NewRegionService(client *apiclient.Client) *RegionService {
	return &RegionService{res: resource{client: client, path: "/regions/"}}
}

func (s *RegionService) List(ctx context.Context) ([]model.Region, error) {
	regions := []model.Region{}
	if err := s.res.list(ctx, nil, &regions); err != nil {
		return nil, err
	}
	return regions, nil
}

func (s *RegionService) Get(ctx context.Context, id int) (*model.Region, error) {
	var r model.Region
	if err := s.res.get(ctx, id, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RegionService) Create(ctx context.Context, req model.RegionRequest) (*model.Region, error) {
	var r model.Region
	if err := s.res.create(ctx, req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RegionService) Update(ctx context.Context, id int, req model.RegionRequest) (*model.Region, error) {
	var r model.Region
	if err := s.res.update(ctx, id, req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RegionService) Delete(ctx context.Context, id int) error {
	return s.res.remove(ctx, id)
}
