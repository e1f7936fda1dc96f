package service

import (
	"context"
	"io"

	"github.com/stemsi/sekolah-console/internal/apiclient"
	"github.com/stemsi/sekolah-console/internal/model"
)

type BannerService struct {
	res resource
}

func NewBannerService(client *apiclient.Client) *BannerService {
	return &BannerService{res: resource{client: client, path: "/banners/"}}
}

func (s *BannerService) List(ctx context.Context) ([]model.Banner, error) {
	banners := []model.Banner{}
	if err := s.res.list(ctx, nil, &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

func (s *BannerService) Create(ctx context.Context, req model.BannerRequest) (*model.Banner, error) {
	var b model.Banner
	if err := s.res.create(ctx, req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BannerService) Update(ctx context.Context, id int, req model.BannerRequest) (*model.Banner, error) {
	var b model.Banner
	if err := s.res.update(ctx, id, req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BannerService) Delete(ctx context.Context, id int) error {
	return s.res.remove(ctx, id)
}

// UploadImage replaces the banner's image with the uploaded file.
func (s *BannerService) UploadImage(ctx context.Context, id int, fileName string, file io.Reader) (*model.Banner, error) {
	var b model.Banner
	if err := s.res.client.Upload(ctx, s.res.item(id)+"/image", nil, "file", fileName, file, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
