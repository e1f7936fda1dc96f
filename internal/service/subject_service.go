package service

import (
	"context"

	"github.com/stemsi/sekolah-console/internal/apiclient"
	"github.com/stemsi/sekolah-console/internal/model"
)

type SubjectService struct {
	res resource
}

func NewSubjectService(client *apiclient.Client) *SubjectService {
	return &SubjectService{res: resource{client: client, path: "/subjects/"}}
}

func (s *SubjectService) ListByClass(ctx context.Context, classID int) ([]model.Subject, error) {
	subjects := []model.Subject{}
	if err := s.res.list(ctx, byID("class_id", classID), &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (s *SubjectService) Get(ctx context.Context, id int) (*model.Subject, error) {
	var sub model.Subject
	if err := s.res.get(ctx, id, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *SubjectService) Create(ctx context.Context, req model.SubjectRequest) (*model.Subject, error) {
	var sub model.Subject
	if err := s.res.create(ctx, req, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *SubjectService) Update(ctx context.Context, id int, req model.SubjectRequest) (*model.Subject, error) {
	var sub model.Subject
	if err := s.res.update(ctx, id, req, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *SubjectService) Delete(ctx context.Context, id int) error {
	return s.res.remove(ctx, id)
}
