package store

import (
	"context"
	"database/sql"

	"github.com/juju/errors"

	"movierentals/domain"
)

const rentalColumns = "id, movie_id, client_id, rental_charge, rental_date, due_date"

type RentalRepository struct {
	db *sql.DB
}

func scanRental(row scanner) (domain.Rental, error) {
	var r domain.Rental
	err := row.Scan(&r.ID, &r.MovieID, &r.ClientID, &r.RentalCharge, &r.RentalDate, &r.DueDate)
	return r, err
}

func (r *RentalRepository) FindOne(ctx context.Context, id int64) (domain.Rental, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+rentalColumns+" FROM rentals WHERE id = ?", id)
	rental, err := scanRental(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Rental{}, errors.Annotatef(ErrNotFound, "rental %d", id)
	}
	return rental, errors.Trace(err)
}

// FindAll returns every rental ordered by rental date, then id.
func (r *RentalRepository) FindAll(ctx context.Context) ([]domain.Rental, error) {
	return r.query(ctx, "SELECT "+rentalColumns+" FROM rentals ORDER BY rental_date, id")
}

// FindByClient returns the rentals of one client ordered by rental date.
func (r *RentalRepository) FindByClient(ctx context.Context, clientID int64) ([]domain.Rental, error) {
	return r.query(ctx, "SELECT "+rentalColumns+" FROM rentals WHERE client_id = ? ORDER BY rental_date, id", clientID)
}

// FindByMovie returns the rentals of one movie ordered by rental date.
func (r *RentalRepository) FindByMovie(ctx context.Context, movieID int64) ([]domain.Rental, error) {
	return r.query(ctx, "SELECT "+rentalColumns+" FROM rentals WHERE movie_id = ? ORDER BY rental_date, id", movieID)
}

func (r *RentalRepository) query(ctx context.Context, query string, args ...any) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, errors.Trace(err)
		}
		rentals = append(rentals, rental)
	}
	return rentals, errors.Trace(rows.Err())
}

func (r *RentalRepository) Save(ctx context.Context, rental domain.Rental) (domain.Rental, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO rentals (movie_id, client_id, rental_charge, rental_date, due_date) VALUES (?, ?, ?, ?, ?)",
		rental.MovieID, rental.ClientID, rental.RentalCharge, rental.RentalDate.UTC(), rental.DueDate.UTC())
	if err != nil {
		return domain.Rental{}, errors.Annotate(err, "inserting rental")
	}
	if rental.ID, err = res.LastInsertId(); err != nil {
		return domain.Rental{}, errors.Trace(err)
	}
	return rental, nil
}

func (r *RentalRepository) Update(ctx context.Context, rental domain.Rental) (domain.Rental, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE rentals SET movie_id = ?, client_id = ?, rental_charge = ?, rental_date = ?, due_date = ? WHERE id = ?",
		rental.MovieID, rental.ClientID, rental.RentalCharge, rental.RentalDate.UTC(), rental.DueDate.UTC(), rental.ID)
	if err != nil {
		return domain.Rental{}, errors.Annotatef(err, "updating rental %d", rental.ID)
	}
	return rental, affected(res, "rental", rental.ID)
}

func (r *RentalRepository) Delete(ctx context.Context, id int64) (domain.Rental, error) {
	rental, err := r.FindOne(ctx, id)
	if err != nil {
		return domain.Rental{}, err
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM rentals WHERE id = ?", id)
	if err != nil {
		return domain.Rental{}, errors.Annotatef(err, "deleting rental %d", id)
	}
	return rental, affected(res, "rental", id)
}
