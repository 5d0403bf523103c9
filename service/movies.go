package service

import (
	"context"
	"strings"

	"github.com/juju/errors"

	"movierentals/domain"
)

type MovieService struct {
	repo MovieRepository
}

func NewMovieService(repo MovieRepository) *MovieService {
	return &MovieService{repo: repo}
}

// All returns every movie, or ErrNotFound when there are none.
func (s *MovieService) All(ctx context.Context) ([]domain.Movie, error) {
	movies, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if len(movies) == 0 {
		return nil, errors.Annotate(ErrNotFound, "no movies")
	}
	return movies, nil
}

func (s *MovieService) Add(ctx context.Context, m domain.Movie) (domain.Movie, error) {
	if err := domain.ValidateMovie(m); err != nil {
		return domain.Movie{}, err
	}
	return s.repo.Save(ctx, m)
}

func (s *MovieService) Get(ctx context.Context, id int64) (domain.Movie, error) {
	return s.repo.FindOne(ctx, id)
}

func (s *MovieService) Update(ctx context.Context, m domain.Movie) (domain.Movie, error) {
	if _, err := s.repo.FindOne(ctx, m.ID); err != nil {
		return domain.Movie{}, err
	}
	if err := domain.ValidateMovie(m); err != nil {
		return domain.Movie{}, err
	}
	return s.repo.Update(ctx, m)
}

func (s *MovieService) Delete(ctx context.Context, id int64) (domain.Movie, error) {
	return s.repo.Delete(ctx, id)
}

// Filter returns the movies whose title contains keyword, ignoring case.
func (s *MovieService) Filter(ctx context.Context, keyword string) ([]domain.Movie, error) {
	movies, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	keyword = strings.ToLower(keyword)
	var matched []domain.Movie
	for _, m := range movies {
		if strings.Contains(strings.ToLower(m.Title), keyword) {
			matched = append(matched, m)
		}
	}
	if len(matched) == 0 {
		return nil, errors.Annotatef(ErrNotFound, "no movie title matches %q", keyword)
	}
	return matched, nil
}
