package service

import (
	"context"
	"sort"

	"github.com/juju/errors"

	"movierentals/domain"
)

// RentalService manages rental transactions and the reports built from them.
// It reads movies and clients to check references and to fill in reports.
type RentalService struct {
	rentals RentalRepository
	movies  MovieRepository
	clients ClientRepository
}

func NewRentalService(rentals RentalRepository, movies MovieRepository, clients ClientRepository) *RentalService {
	return &RentalService{rentals: rentals, movies: movies, clients: clients}
}

func (s *RentalService) All(ctx context.Context) ([]domain.Rental, error) {
	rentals, err := s.rentals.FindAll(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if len(rentals) == 0 {
		return nil, errors.Annotate(ErrNotFound, "no rentals")
	}
	return rentals, nil
}

func (s *RentalService) Get(ctx context.Context, id int64) (domain.Rental, error) {
	return s.rentals.FindOne(ctx, id)
}

// Rent records a new rental. The movie and the client must exist.
func (s *RentalService) Rent(ctx context.Context, r domain.Rental) (domain.Rental, error) {
	if err := s.validate(ctx, r); err != nil {
		return domain.Rental{}, err
	}
	return s.rentals.Save(ctx, r)
}

func (s *RentalService) Update(ctx context.Context, r domain.Rental) (domain.Rental, error) {
	if _, err := s.rentals.FindOne(ctx, r.ID); err != nil {
		return domain.Rental{}, err
	}
	if err := s.validate(ctx, r); err != nil {
		return domain.Rental{}, err
	}
	return s.rentals.Update(ctx, r)
}

func (s *RentalService) Delete(ctx context.Context, id int64) (domain.Rental, error) {
	return s.rentals.Delete(ctx, id)
}

func (s *RentalService) validate(ctx context.Context, r domain.Rental) error {
	if err := domain.ValidateRental(r); err != nil {
		return err
	}
	if _, err := s.movies.FindOne(ctx, r.MovieID); err != nil {
		return errors.Annotate(err, "rental movie")
	}
	if _, err := s.clients.FindOne(ctx, r.ClientID); err != nil {
		return errors.Annotate(err, "rental client")
	}
	return nil
}

// MoviesByRentNumber counts rentals per movie, most rented first. Ties are
// ordered by movie id.
func (s *RentalService) MoviesByRentNumber(ctx context.Context) ([]domain.MovieRentCount, error) {
	rentals, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[int64]int)
	for _, r := range rentals {
		counts[r.MovieID]++
	}
	rows := make([]domain.MovieRentCount, 0, len(counts))
	for id, n := range counts {
		m, err := s.movies.FindOne(ctx, id)
		if err != nil {
			return nil, errors.Annotate(err, "movies by rent number")
		}
		rows = append(rows, domain.MovieRentCount{Movie: m, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Movie.ID < rows[j].Movie.ID
	})
	return rows, nil
}

// ClientsByRentNumber counts rentals per client, most active first. Ties are
// ordered by client id.
func (s *RentalService) ClientsByRentNumber(ctx context.Context) ([]domain.ClientRentCount, error) {
	rentals, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[int64]int)
	for _, r := range rentals {
		counts[r.ClientID]++
	}
	rows := make([]domain.ClientRentCount, 0, len(counts))
	for id, n := range counts {
		c, err := s.clients.FindOne(ctx, id)
		if err != nil {
			return nil, errors.Annotate(err, "clients by rent number")
		}
		rows = append(rows, domain.ClientRentCount{Client: c, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Client.ID < rows[j].Client.ID
	})
	return rows, nil
}

// ReportByClient lists what one client rented, when, and for how much.
// A client with no rentals gets an empty report.
func (s *RentalService) ReportByClient(ctx context.Context, clientID int64) (domain.ClientReport, error) {
	c, err := s.clients.FindOne(ctx, clientID)
	if err != nil {
		return domain.ClientReport{}, err
	}
	rentals, err := s.rentals.FindByClient(ctx, clientID)
	if err != nil {
		return domain.ClientReport{}, errors.Trace(err)
	}
	report := domain.ClientReport{Client: c}
	seen := make(map[int64]domain.Movie)
	for _, r := range rentals {
		m, ok := seen[r.MovieID]
		if !ok {
			if m, err = s.movies.FindOne(ctx, r.MovieID); err != nil {
				return domain.ClientReport{}, errors.Annotatef(err, "report for client %d", clientID)
			}
			seen[r.MovieID] = m
		}
		report.Movies = append(report.Movies, m)
		report.RentalDates = append(report.RentalDates, r.RentalDate)
		report.TotalCharges += r.RentalCharge
		report.Count++
	}
	return report, nil
}

// ReportByMovie lists who rented one movie, when, and for how much.
func (s *RentalService) ReportByMovie(ctx context.Context, movieID int64) (domain.MovieReport, error) {
	m, err := s.movies.FindOne(ctx, movieID)
	if err != nil {
		return domain.MovieReport{}, err
	}
	rentals, err := s.rentals.FindByMovie(ctx, movieID)
	if err != nil {
		return domain.MovieReport{}, errors.Trace(err)
	}
	report := domain.MovieReport{Movie: m}
	seen := make(map[int64]domain.Client)
	for _, r := range rentals {
		c, ok := seen[r.ClientID]
		if !ok {
			if c, err = s.clients.FindOne(ctx, r.ClientID); err != nil {
				return domain.MovieReport{}, errors.Annotatef(err, "report for movie %d", movieID)
			}
			seen[r.ClientID] = c
		}
		report.Clients = append(report.Clients, c)
		report.RentalDates = append(report.RentalDates, r.RentalDate)
		report.TotalCharges += r.RentalCharge
		report.Count++
	}
	return report, nil
}
