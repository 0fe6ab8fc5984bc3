package organization

import (
	"context"
	"errors"
	"strings"
)

type Service interface {
	Create(ctx context.Context, name, ownerStaffID string) (*Organization, error)
	GetByID(ctx context.Context, id string) (*Organization, error)
	List(ctx context.Context, filter Filter) ([]*Organization, int, error)
	AddMember(ctx context.Context, orgID, staffID, role string) error
	GetMember(ctx context.Context, orgID, staffID string) (*Member, error)
	ListMembers(ctx context.Context, orgID string) ([]*Member, error)

	// IsManagerOrAbove reports whether the staff member holds the owner or
	// admin role in the organization.
	IsManagerOrAbove(ctx context.Context, orgID, staffID string) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, name, ownerStaffID string) (*Organization, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	org := &Organization{Name: strings.TrimSpace(name)}
	if err := s.repo.Create(ctx, org); err != nil {
		return nil, err
	}

	// The creator becomes the owner.
	if ownerStaffID != "" {
		if err := s.repo.AddMember(ctx, org.ID, ownerStaffID, RoleOwner); err != nil {
			return nil, err
		}
	}
	return org, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Organization, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Organization, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) AddMember(ctx context.Context, orgID, staffID, role string) error {
	if role != RoleOwner && role != RoleAdmin && role != RoleMember {
		return ErrInvalidRole
	}
	if _, err := s.repo.GetByID(ctx, orgID); err != nil {
		return err
	}
	return s.repo.AddMember(ctx, orgID, staffID, role)
}

func (s *service) GetMember(ctx context.Context, orgID, staffID string) (*Member, error) {
	return s.repo.GetMember(ctx, orgID, staffID)
}

func (s *service) ListMembers(ctx context.Context, orgID string) ([]*Member, error) {
	return s.repo.ListMembers(ctx, orgID)
}

func (s *service) IsManagerOrAbove(ctx context.Context, orgID, staffID string) (bool, error) {
	m, err := s.repo.GetMember(ctx, orgID, staffID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return m.Role == RoleOwner || m.Role == RoleAdmin, nil
}
