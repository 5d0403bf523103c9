package store

import (
	"context"
	"database/sql"

	"github.com/juju/errors"

	"movierentals/domain"
)

const clientColumns = "id, first_name, last_name, date_of_birth, email, subscribe"

type ClientRepository struct {
	db *sql.DB
}

func scanClient(row scanner) (domain.Client, error) {
	var c domain.Client
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.DateOfBirth, &c.Email, &c.Subscribe)
	return c, err
}

func (r *ClientRepository) FindOne(ctx context.Context, id int64) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+clientColumns+" FROM clients WHERE id = ?", id)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Client{}, errors.Annotatef(ErrNotFound, "client %d", id)
	}
	return c, errors.Trace(err)
}

func (r *ClientRepository) FindAll(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+clientColumns+" FROM clients ORDER BY id")
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, errors.Trace(err)
		}
		clients = append(clients, c)
	}
	return clients, errors.Trace(rows.Err())
}

func (r *ClientRepository) Save(ctx context.Context, c domain.Client) (domain.Client, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO clients (first_name, last_name, date_of_birth, email, subscribe) VALUES (?, ?, ?, ?, ?)",
		c.FirstName, c.LastName, c.DateOfBirth, c.Email, c.Subscribe)
	if err != nil {
		return domain.Client{}, errors.Annotate(err, "inserting client")
	}
	if c.ID, err = res.LastInsertId(); err != nil {
		return domain.Client{}, errors.Trace(err)
	}
	return c, nil
}

func (r *ClientRepository) Update(ctx context.Context, c domain.Client) (domain.Client, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE clients SET first_name = ?, last_name = ?, date_of_birth = ?, email = ?, subscribe = ? WHERE id = ?",
		c.FirstName, c.LastName, c.DateOfBirth, c.Email, c.Subscribe, c.ID)
	if err != nil {
		return domain.Client{}, errors.Annotatef(err, "updating client %d", c.ID)
	}
	return c, affected(res, "client", c.ID)
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) (domain.Client, error) {
	c, err := r.FindOne(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM clients WHERE id = ?", id)
	if err != nil {
		return domain.Client{}, errors.Annotatef(err, "deleting client %d", id)
	}
	return c, affected(res, "client", id)
}
