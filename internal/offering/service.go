package offering

import (
	"context"
	"strings"
)

type SaveRequest struct {
	Name        string
	Description string
}

type Service interface {
	Create(ctx context.Context, kind Kind, req SaveRequest) (*Offering, error)
	GetByID(ctx context.Context, kind Kind, id string) (*Offering, error)
	List(ctx context.Context, kind Kind) ([]*Offering, error)
	Update(ctx context.Context, kind Kind, id string, req SaveRequest) (*Offering, error)
	Delete(ctx context.Context, kind Kind, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, kind Kind, req SaveRequest) (*Offering, error) {
	if kind.table() == "" {
		return nil, ErrInvalidKind
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	o := &Offering{
		Kind:        kind,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) GetByID(ctx context.Context, kind Kind, id string) (*Offering, error) {
	return s.repo.GetByID(ctx, kind, id)
}

func (s *service) List(ctx context.Context, kind Kind) ([]*Offering, error) {
	return s.repo.List(ctx, kind)
}

func (s *service) Update(ctx context.Context, kind Kind, id string, req SaveRequest) (*Offering, error) {
	if kind.table() == "" {
		return nil, ErrInvalidKind
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	o := &Offering{
		ID:          id,
		Kind:        kind,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) Delete(ctx context.Context, kind Kind, id string) error {
	return s.repo.Delete(ctx, kind, id)
}
