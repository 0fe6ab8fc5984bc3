package client

import (
	"context"
	"strings"
)

type CreateRequest struct {
	DisplayName string
	Phone       string
	Email       string
	AvatarRef   string
}

type UpdateRequest struct {
	DisplayName *string
	Phone       *string
	Email       *string
	AvatarRef   *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Client, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context, filter Filter) ([]*Client, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Client, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Client, error) {
	if strings.TrimSpace(req.DisplayName) == "" {
		return nil, ErrEmptyName
	}

	cl := &Client{
		DisplayName: strings.TrimSpace(req.DisplayName),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		AvatarRef:   req.AvatarRef,
	}

	if err := s.repo.Create(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Client, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Client, error) {
	cl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if strings.TrimSpace(*req.DisplayName) == "" {
			return nil, ErrEmptyName
		}
		cl.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.Phone != nil {
		cl.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		cl.Email = strings.TrimSpace(*req.Email)
	}
	if req.AvatarRef != nil {
		cl.AvatarRef = *req.AvatarRef
	}

	if err := s.repo.Update(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
