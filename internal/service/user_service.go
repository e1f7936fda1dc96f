package service

import (
	"context"
	"net/url"

	"github.com/stemsi/sekolah-console/internal/apiclient"
	"github.com/stemsi/sekolah-console/internal/model"
)

// UserService wraps /users/. Students and teachers are users filtered by role.
type UserService struct {
	res resource
}

// NewUserService creates a new UserService.
func NewUserService(client *apiclient.Client) *UserService {
	return &UserService{res: resource{client: client, path: "/users/"}}
}

// List returns users, all of them when role is empty.
func (s *UserService) List(ctx context.Context, role model.Role) ([]model.User, error) {
	var query url.Values
	if role != "" {
		query = url.Values{"role": []string{string(role)}}
	}
	users := []model.User{}
	if err := s.res.list(ctx, query, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) Create(ctx context.Context, req model.UserRequest) (*model.User, error) {
	var u model.User
	if err := s.res.create(ctx, req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserService) Update(ctx context.Context, id int, req model.UserRequest) (*model.User, error) {
	var u model.User
	if err := s.res.update(ctx, id, req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.res.remove(ctx, id)
}

// Register creates a self-service account.
func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	var u model.User
	if err := s.res.client.Post(ctx, "/users/register", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
