// Package service implements the movie rental business operations on top of
// the repositories in package store. Services are safe for concurrent use as
// long as their repositories are.
package service

import (
	"context"

	"movierentals/domain"
	"movierentals/store"
)

// ErrNotFound is returned when a record is missing or a query matched nothing.
const ErrNotFound = store.ErrNotFound

// ErrInvalid is returned when an entity fails validation.
const ErrInvalid = domain.ErrInvalid

type MovieRepository interface {
	FindOne(ctx context.Context, id int64) (domain.Movie, error)
	FindAll(ctx context.Context) ([]domain.Movie, error)
	Save(ctx context.Context, m domain.Movie) (domain.Movie, error)
	Update(ctx context.Context, m domain.Movie) (domain.Movie, error)
	Delete(ctx context.Context, id int64) (domain.Movie, error)
}

type ClientRepository interface {
	FindOne(ctx context.Context, id int64) (domain.Client, error)
	FindAll(ctx context.Context) ([]domain.Client, error)
	Save(ctx context.Context, c domain.Client) (domain.Client, error)
	Update(ctx context.Context, c domain.Client) (domain.Client, error)
	Delete(ctx context.Context, id int64) (domain.Client, error)
}

type RentalRepository interface {
	FindOne(ctx context.Context, id int64) (domain.Rental, error)
	FindAll(ctx context.Context) ([]domain.Rental, error)
	FindByClient(ctx context.Context, clientID int64) ([]domain.Rental, error)
	FindByMovie(ctx context.Context, movieID int64) ([]domain.Rental, error)
	Save(ctx context.Context, r domain.Rental) (domain.Rental, error)
	Update(ctx context.Context, r domain.Rental) (domain.Rental, error)
	Delete(ctx context.Context, id int64) (domain.Rental, error)
}
