package client

import (
	"movierentals/codec"
	"movierentals/domain"
	"movierentals/message"
)

// Movies

func (c *Client) GetAllMovies() *Future {
	return c.Submit(message.OpGetAllMovies, "")
}

func (c *Client) AddMovie(m domain.Movie) *Future {
	return c.Submit(message.OpAddMovie, codec.FormatNewMovie(m))
}

func (c *Client) GetMovieByID(id int64) *Future {
	return c.Submit(message.OpGetMovieByID, codec.FormatID(id))
}

func (c *Client) UpdateMovie(m domain.Movie) *Future {
	return c.Submit(message.OpUpdateMovie, codec.FormatMovie(m))
}

func (c *Client) DeleteMovieByID(id int64) *Future {
	return c.Submit(message.OpDeleteMovieByID, codec.FormatID(id))
}

func (c *Client) FilterMoviesByKeyword(keyword string) *Future {
	return c.Submit(message.OpFilterMoviesByKeyword, keyword)
}

// Clients

func (c *Client) GetAllClients() *Future {
	return c.Submit(message.OpGetAllClients, "")
}

func (c *Client) AddClient(cl domain.Client) *Future {
	return c.Submit(message.OpAddClient, codec.FormatNewClient(cl))
}

func (c *Client) GetClientByID(id int64) *Future {
	return c.Submit(message.OpGetClientByID, codec.FormatID(id))
}

func (c *Client) UpdateClient(cl domain.Client) *Future {
	return c.Submit(message.OpUpdateClient, codec.FormatClient(cl))
}

func (c *Client) DeleteClientByID(id int64) *Future {
	return c.Submit(message.OpDeleteClientByID, codec.FormatID(id))
}

func (c *Client) FilterClientsByKeyword(keyword string) *Future {
	return c.Submit(message.OpFilterClientsByKeyword, keyword)
}

// Rentals and reports

func (c *Client) GetAllRentals() *Future {
	return c.Submit(message.OpGetAllRentals, "")
}

func (c *Client) GetRentalByID(id int64) *Future {
	return c.Submit(message.OpGetRentalByID, codec.FormatID(id))
}

func (c *Client) RentAMovie(r domain.Rental) *Future {
	return c.Submit(message.OpRentAMovie, codec.FormatNewRental(r))
}

func (c *Client) UpdateRentalTransaction(r domain.Rental) *Future {
	return c.Submit(message.OpUpdateRentalTransaction, codec.FormatRental(r))
}

func (c *Client) DeleteMovieRental(id int64) *Future {
	return c.Submit(message.OpDeleteMovieRental, codec.FormatID(id))
}

func (c *Client) MoviesByRentNumber() *Future {
	return c.Submit(message.OpMoviesByRentNumber, "")
}

func (c *Client) ClientsByRentNumber() *Future {
	return c.Submit(message.OpClientsByRentNumber, "")
}

func (c *Client) GenerateReportByClient(clientID int64) *Future {
	return c.Submit(message.OpGenerateReportByClient, codec.FormatID(clientID))
}

func (c *Client) GenerateReportByMovie(movieID int64) *Future {
	return c.Submit(message.OpGenerateReportByMovie, codec.FormatID(movieID))
}
