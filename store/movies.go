package store

import (
	"context"
	"database/sql"

	"github.com/juju/errors"

	"movierentals/domain"
)

const movieColumns = "id, title, year, genre, age_restriction, rental_price, available"

type MovieRepository struct {
	db *sql.DB
}

func scanMovie(row scanner) (domain.Movie, error) {
	var m domain.Movie
	var genre, age string
	err := row.Scan(&m.ID, &m.Title, &m.Year, &genre, &age, &m.RentalPrice, &m.Available)
	if err != nil {
		return domain.Movie{}, err
	}
	m.Genre = domain.Genre(genre)
	m.AgeRestriction = domain.AgeRestriction(age)
	return m, nil
}

// FindOne returns the movie with the given id.
func (r *MovieRepository) FindOne(ctx context.Context, id int64) (domain.Movie, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+movieColumns+" FROM movies WHERE id = ?", id)
	m, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Movie{}, errors.Annotatef(ErrNotFound, "movie %d", id)
	}
	return m, errors.Trace(err)
}

// FindAll returns every movie ordered by id.
func (r *MovieRepository) FindAll(ctx context.Context) ([]domain.Movie, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+movieColumns+" FROM movies ORDER BY id")
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer rows.Close()

	var movies []domain.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, errors.Trace(err)
		}
		movies = append(movies, m)
	}
	return movies, errors.Trace(rows.Err())
}

// Save inserts m and returns it with its new id.
func (r *MovieRepository) Save(ctx context.Context, m domain.Movie) (domain.Movie, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO movies (title, year, genre, age_restriction, rental_price, available) VALUES (?, ?, ?, ?, ?, ?)",
		m.Title, m.Year, string(m.Genre), string(m.AgeRestriction), m.RentalPrice, m.Available)
	if err != nil {
		return domain.Movie{}, errors.Annotate(err, "inserting movie")
	}
	if m.ID, err = res.LastInsertId(); err != nil {
		return domain.Movie{}, errors.Trace(err)
	}
	return m, nil
}

// Update overwrites the movie with m.ID.
func (r *MovieRepository) Update(ctx context.Context, m domain.Movie) (domain.Movie, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE movies SET title = ?, year = ?, genre = ?, age_restriction = ?, rental_price = ?, available = ? WHERE id = ?",
		m.Title, m.Year, string(m.Genre), string(m.AgeRestriction), m.RentalPrice, m.Available, m.ID)
	if err != nil {
		return domain.Movie{}, errors.Annotatef(err, "updating movie %d", m.ID)
	}
	return m, affected(res, "movie", m.ID)
}

// Delete removes the movie and returns it as it was.
func (r *MovieRepository) Delete(ctx context.Context, id int64) (domain.Movie, error) {
	m, err := r.FindOne(ctx, id)
	if err != nil {
		return domain.Movie{}, err
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id)
	if err != nil {
		return domain.Movie{}, errors.Annotatef(err, "deleting movie %d", id)
	}
	return m, affected(res, "movie", id)
}
