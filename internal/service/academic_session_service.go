package service

import (
	"context"

	"github.com/stemsi/sekolah-console/internal/apiclient"
	"github.com/stemsi/sekolah-console/internal/model"
)

// AcademicSessionService wraps /sessions/, the meetings of a subject.
type AcademicSessionService struct {
	res resource
}

func NewAcademicSessionService(client *apiclient.Client) *AcademicSessionService {
	return &AcademicSessionService{res: resource{client: client, path: "/sessions/"}}
}

func (s *AcademicSessionService) ListBySubject(ctx context.Context, subjectID int) ([]model.AcademicSession, error) {
	sessions := []model.AcademicSession{}
	if err := s.res.list(ctx, byID("subject_id", subjectID), &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *AcademicSessionService) Get(ctx context.Context, id int) (*model.AcademicSession, error) {
	var as model.AcademicSession
	if err := s.res.get(ctx, id, &as); err != nil {
		return nil, err
	}
	return &as, nil
}

func (s *AcademicSessionService) Create(ctx context.Context, req model.AcademicSessionRequest) (*model.AcademicSession, error) {
	var as model.AcademicSession
	if err := s.res.create(ctx, req, &as); err != nil {
		return nil, err
	}
	return &as, nil
}

func (s *AcademicSessionService) Update(ctx context.Context, id int, req model.AcademicSessionRequest) (*model.AcademicSession, error) {
	var as model.AcademicSession
	if err := s.res.update(ctx, id, req, &as); err != nil {
		return nil, err
	}
	return &as, nil
}

func (s *AcademicSessionService) Delete(ctx context.Context, id int) error {
	return s.res.remove(ctx, id)
}
