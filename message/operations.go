package message

// Operation names understood by the movie rentals server.
const (
	OpGetAllMovies          = "getAllMovies"
	OpAddMovie              = "addMovie"
	OpGetMovieByID          = "getMovieById"
	OpUpdateMovie           = "updateMovie"
	OpDeleteMovieByID       = "deleteMovieById"
	OpFilterMoviesByKeyword = "filterMoviesByKeyword"

	OpGetAllClients          = "getAllClients"
	OpAddClient              = "addClient"
	OpGetClientByID          = "getClientById"
	OpUpdateClient           = "updateClient"
	OpDeleteClientByID       = "deleteClientById"
	OpFilterClientsByKeyword = "filterClientsByKeyword"

	OpGetAllRentals           = "getAllRentals"
	OpGetRentalByID           = "getRentalById"
	OpRentAMovie              = "rentAMovie"
	OpUpdateRentalTransaction = "updateRentalTransaction"
	OpDeleteMovieRental       = "deleteMovieRental"
	OpMoviesByRentNumber      = "moviesByRentNumber"
	OpClientsByRentNumber     = "clientsByRentNumber"
	OpGenerateReportByClient  = "generateReportByClient"
	OpGenerateReportByMovie   = "generateReportByMovie"
)

// Operations lists every operation name above.
var Operations = []string{
	OpGetAllMovies, OpAddMovie, OpGetMovieByID, OpUpdateMovie, OpDeleteMovieByID, OpFilterMoviesByKeyword,
	OpGetAllClients, OpAddClient, OpGetClientByID, OpUpdateClient, OpDeleteClientByID, OpFilterClientsByKeyword,
	OpGetAllRentals, OpGetRentalByID, OpRentAMovie, OpUpdateRentalTransaction, OpDeleteMovieRental,
	OpMoviesByRentNumber, OpClientsByRentNumber, OpGenerateReportByClient, OpGenerateReportByMovie,
}
