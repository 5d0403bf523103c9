package service

import (
	"context"
	"strings"

	"github.com/juju/errors"

	"movierentals/domain"
)

type ClientService struct {
	repo ClientRepository
}

func NewClientService(repo ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

func (s *ClientService) All(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if len(clients) == 0 {
		return nil, errors.Annotate(ErrNotFound, "no clients")
	}
	return clients, nil
}

func (s *ClientService) Add(ctx context.Context, c domain.Client) (domain.Client, error) {
	if err := domain.ValidateClient(c); err != nil {
		return domain.Client{}, err
	}
	return s.repo.Save(ctx, c)
}

func (s *ClientService) Get(ctx context.Context, id int64) (domain.Client, error) {
	return s.repo.FindOne(ctx, id)
}

func (s *ClientService) Update(ctx context.Context, c domain.Client) (domain.Client, error) {
	if _, err := s.repo.FindOne(ctx, c.ID); err != nil {
		return domain.Client{}, err
	}
	if err := domain.ValidateClient(c); err != nil {
		return domain.Client{}, err
	}
	return s.repo.Update(ctx, c)
}

func (s *ClientService) Delete(ctx context.Context, id int64) (domain.Client, error) {
	return s.repo.Delete(ctx, id)
}

// Filter returns the clients whose first or last name contains keyword,
// ignoring case.
func (s *ClientService) Filter(ctx context.Context, keyword string) ([]domain.Client, error) {
	clients, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	keyword = strings.ToLower(keyword)
	var matched []domain.Client
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.FirstName), keyword) ||
			strings.Contains(strings.ToLower(c.LastName), keyword) {
			matched = append(matched, c)
		}
	}
	if len(matched) == 0 {
		return nil, errors.Annotatef(ErrNotFound, "no client name matches %q", keyword)
	}
	return matched, nil
}
