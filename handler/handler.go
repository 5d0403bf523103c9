// Package handler binds every movie rentals operation name to a handler that
// decodes the request payload, calls the matching service and encodes the
// result. Any failure is answered with the operation's fixed error message;
// the cause is only logged.
package handler

import (
	"context"

	"go.uber.org/zap"

	"movierentals/domain"
	"movierentals/message"
	"movierentals/server"
)

// Error messages sent back to clients.
const (
	MoviesNotFound     = "Movies not found."
	MovieNotAdded      = "Movie not added."
	MovieNotFound      = "Movie not found."
	MovieNotUpdated    = "Movie not updated."
	MovieNotDeleted    = "Movie not deleted."
	MovieTitleNoMatch  = "No Movie title matched."
	ClientsNotFound    = "Clients not found."
	ClientNotAdded     = "Client not added."
	ClientNotFound     = "Client not found."
	ClientNotUpdated   = "Client not updated."
	ClientNotDeleted   = "Client not deleted."
	ClientNameNoMatch  = "No Client name matched."
	RentalNotFound     = "Rental not found."
	RentalsNotFound    = "Rentals not found."
	RentalNotAdded     = "Rental not added."
	RentalNotUpdated   = "Rental not updated."
	RentalNotDeleted   = "Rental not deleted."
	NoReport           = "Data not found. No report generated."
	NoReportIDNotFound = "ID not found."
)

type MovieService interface {
	All(ctx context.Context) ([]domain.Movie, error)
	Add(ctx context.Context, m domain.Movie) (domain.Movie, error)
	Get(ctx context.Context, id int64) (domain.Movie, error)
	Update(ctx context.Context, m domain.Movie) (domain.Movie, error)
	Delete(ctx context.Context, id int64) (domain.Movie, error)
	Filter(ctx context.Context, keyword string) ([]domain.Movie, error)
}

type ClientService interface {
	All(ctx context.Context) ([]domain.Client, error)
	Add(ctx context.Context, c domain.Client) (domain.Client, error)
	Get(ctx context.Context, id int64) (domain.Client, error)
	Update(ctx context.Context, c domain.Client) (domain.Client, error)
	Delete(ctx context.Context, id int64) (domain.Client, error)
	Filter(ctx context.Context, keyword string) ([]domain.Client, error)
}

type RentalService interface {
	All(ctx context.Context) ([]domain.Rental, error)
	Get(ctx context.Context, id int64) (domain.Rental, error)
	Rent(ctx context.Context, r domain.Rental) (domain.Rental, error)
	Update(ctx context.Context, r domain.Rental) (domain.Rental, error)
	Delete(ctx context.Context, id int64) (domain.Rental, error)
	MoviesByRentNumber(ctx context.Context) ([]domain.MovieRentCount, error)
	ClientsByRentNumber(ctx context.Context) ([]domain.ClientRentCount, error)
	ReportByClient(ctx context.Context, clientID int64) (domain.ClientReport, error)
	ReportByMovie(ctx context.Context, movieID int64) (domain.MovieReport, error)
}

// operation computes the success payload for a request payload.
type operation func(ctx context.Context, payload string) (string, error)

type table struct {
	handlers server.Handlers
	logger   *zap.Logger
}

// add registers op under name, replying failure whenever op returns an error.
func (t *table) add(name, failure string, op operation) {
	t.handlers.Register(name, func(ctx context.Context, req *message.Message) *message.Message {
		out, err := op(ctx, req.Payload)
		if err != nil {
			t.logger.Debug("operation failed",
				zap.String("operation", name),
				zap.String("payload", req.Payload),
				zap.Error(err))
			return message.NewError(failure)
		}
		return message.NewOK(out)
	})
}

// New returns the handler table for all movie rentals operations.
func New(movies MovieService, clients ClientService, rentals RentalService, logger *zap.Logger) server.Handlers {
	t := &table{handlers: server.Handlers{}, logger: logger}
	addMovieHandlers(t, movies)
	addClientHandlers(t, clients)
	addRentalHandlers(t, rentals)
	return t.handlers
}
