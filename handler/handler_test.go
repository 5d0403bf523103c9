package handler

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"movierentals/message"
	"movierentals/server"
	"movierentals/service"
	"movierentals/store"
)

func newHandlers(t *testing.T) server.Handlers {
	t.Helper()
	st, err := store.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return New(
		service.NewMovieService(st.Movies),
		service.NewClientService(st.Clients),
		service.NewRentalService(st.Rentals, st.Movies, st.Clients),
		zaptest.NewLogger(t))
}

// call runs one operation and returns the response.
func call(t *testing.T, h server.Handlers, op, payload string) *message.Message {
	t.Helper()
	fn, ok := h[op]
	if !ok {
		t.Fatalf("no handler for %s", op)
	}
	resp := fn(context.Background(), message.NewRequest(op, payload))
	if resp == nil {
		t.Fatalf("%s: nil response", op)
	}
	return resp
}

func expectOK(t *testing.T, resp *message.Message, payload string) {
	t.Helper()
	if resp.Operation != message.StatusOK {
		t.Fatalf("expect %q, got %v", message.StatusOK, resp)
	}
	if resp.Payload != payload {
		t.Fatalf("expect payload %q, got %q", payload, resp.Payload)
	}
}

func expectError(t *testing.T, resp *message.Message, description string) {
	t.Helper()
	if resp.Operation != message.StatusError {
		t.Fatalf("expect %q, got %v", message.StatusError, resp)
	}
	if resp.Payload != description {
		t.Fatalf("expect %q, got %q", description, resp.Payload)
	}
}

func TestAllOperationsRegistered(t *testing.T) {
	h := newHandlers(t)
	if len(h) != len(message.Operations) {
		t.Fatalf("expect %d handlers, got %d", len(message.Operations), len(h))
	}
	for _, op := range message.Operations {
		if _, ok := h[op]; !ok {
			t.Fatalf("missing handler for %s", op)
		}
	}
}

func TestMovieOperations(t *testing.T) {
	h := newHandlers(t)

	expectError(t, call(t, h, message.OpGetAllMovies, ""), MoviesNotFound)
	expectError(t, call(t, h, message.OpGetMovieByID, "1"), MovieNotFound)

	expectOK(t, call(t, h, message.OpAddMovie, "Matrix,1999,ACTION,R,3.50,true"), "1,Matrix,1999,ACTION,R,3.50,true")
	expectOK(t, call(t, h, message.OpAddMovie, "Alien,1979,HORROR,R,2,false"), "2,Alien,1979,HORROR,R,2.00,false")
	expectError(t, call(t, h, message.OpAddMovie, "Matrix,1999"), MovieNotAdded)
	expectError(t, call(t, h, message.OpAddMovie, "Matrix,1999,WESTERNISH,R,3.50,true"), MovieNotAdded)

	expectOK(t, call(t, h, message.OpGetAllMovies, ""),
		"1,Matrix,1999,ACTION,R,3.50,true;2,Alien,1979,HORROR,R,2.00,false;")
	expectOK(t, call(t, h, message.OpGetMovieByID, "2"), "2,Alien,1979,HORROR,R,2.00,false")
	expectError(t, call(t, h, message.OpGetMovieByID, "two"), MovieNotFound)

	expectOK(t, call(t, h, message.OpUpdateMovie, "2,Aliens,1986,ACTION,R,2.50,true"), "2,Aliens,1986,ACTION,R,2.50,true")
	expectError(t, call(t, h, message.OpUpdateMovie, "9,Aliens,1986,ACTION,R,2.50,true"), MovieNotUpdated)

	expectOK(t, call(t, h, message.OpFilterMoviesByKeyword, "alien"), "2,Aliens,1986,ACTION,R,2.50,true;")
	expectError(t, call(t, h, message.OpFilterMoviesByKeyword, "predator"), MovieTitleNoMatch)

	expectOK(t, call(t, h, message.OpDeleteMovieByID, "1"), "1,Matrix,1999,ACTION,R,3.50,true")
	expectError(t, call(t, h, message.OpDeleteMovieByID, "1"), MovieNotDeleted)
}

func TestClientOperations(t *testing.T) {
	h := newHandlers(t)

	expectError(t, call(t, h, message.OpGetAllClients, ""), ClientsNotFound)

	expectOK(t, call(t, h, message.OpAddClient, "Ada,Lovelace,1815-12-10,ada@example.com,true"),
		"1,Ada,Lovelace,1815-12-10,ada@example.com,true")
	expectError(t, call(t, h, message.OpAddClient, "Ada,Lovelace,yesterday,ada@example.com,true"), ClientNotAdded)

	expectOK(t, call(t, h, message.OpGetAllClients, ""), "1,Ada,Lovelace,1815-12-10,ada@example.com,true;")
	expectOK(t, call(t, h, message.OpGetClientByID, "1"), "1,Ada,Lovelace,1815-12-10,ada@example.com,true")
	expectError(t, call(t, h, message.OpGetClientByID, "5"), ClientNotFound)

	expectOK(t, call(t, h, message.OpUpdateClient, "1,Ada,King,1815-12-10,ada@example.com,false"),
		"1,Ada,King,1815-12-10,ada@example.com,false")
	expectError(t, call(t, h, message.OpUpdateClient, "1,Ada"), ClientNotUpdated)

	expectOK(t, call(t, h, message.OpFilterClientsByKeyword, "kin"), "1,Ada,King,1815-12-10,ada@example.com,false;")
	expectError(t, call(t, h, message.OpFilterClientsByKeyword, "babbage"), ClientNameNoMatch)

	expectOK(t, call(t, h, message.OpDeleteClientByID, "1"), "1,Ada,King,1815-12-10,ada@example.com,false")
	expectError(t, call(t, h, message.OpDeleteClientByID, "1"), ClientNotDeleted)
}

func TestRentalOperations(t *testing.T) {
	h := newHandlers(t)

	expectError(t, call(t, h, message.OpGetAllRentals, ""), RentalsNotFound)
	expectError(t, call(t, h, message.OpMoviesByRentNumber, ""), NoReport)
	expectError(t, call(t, h, message.OpClientsByRentNumber, ""), NoReport)
	expectError(t, call(t, h, message.OpGenerateReportByClient, "1"), NoReportIDNotFound)
	expectError(t, call(t, h, message.OpGenerateReportByMovie, "1"), NoReportIDNotFound)

	call(t, h, message.OpAddMovie, "Matrix,1999,ACTION,R,3.50,true")
	call(t, h, message.OpAddClient, "Ada,Lovelace,1815-12-10,ada@example.com,true")

	const rentalDate = "2024-03-01T10:00:00.000000000"
	const dueDate = "2024-03-08T10:00:00.000000000"
	rental := "1,1,1,3.50," + rentalDate + "," + dueDate

	expectError(t, call(t, h, message.OpRentAMovie, "1,7,3.50,"+rentalDate+","+dueDate), RentalNotAdded)
	expectError(t, call(t, h, message.OpRentAMovie, "1,1,3.50,"+dueDate+","+rentalDate), RentalNotAdded)
	expectOK(t, call(t, h, message.OpRentAMovie, "1,1,3.5,2024-03-01T10:00:00,"+dueDate), rental)

	expectOK(t, call(t, h, message.OpGetAllRentals, ""), rental+";")
	expectOK(t, call(t, h, message.OpGetRentalByID, "1"), rental)
	expectError(t, call(t, h, message.OpGetRentalByID, "2"), RentalNotFound)

	updated := "1,1,1,4.00," + rentalDate + "," + dueDate
	expectOK(t, call(t, h, message.OpUpdateRentalTransaction, updated), updated)
	expectError(t, call(t, h, message.OpUpdateRentalTransaction, "2,1,1,4.00,"+rentalDate+","+dueDate), RentalNotUpdated)

	movie := "1,Matrix,1999,ACTION,R,3.50,true"
	client := "1,Ada,Lovelace,1815-12-10,ada@example.com,true"
	expectOK(t, call(t, h, message.OpMoviesByRentNumber, ""), movie+",1;")
	expectOK(t, call(t, h, message.OpClientsByRentNumber, ""), client+",1;")
	expectOK(t, call(t, h, message.OpGenerateReportByClient, "1"),
		client+";"+strings.ReplaceAll(movie, ",", ":")+",;4.00;"+rentalDate+",;1")
	expectOK(t, call(t, h, message.OpGenerateReportByMovie, "1"),
		movie+";"+strings.ReplaceAll(client, ",", ":")+",;4.00;"+rentalDate+",;1")

	expectOK(t, call(t, h, message.OpDeleteMovieRental, "1"), updated)
	expectError(t, call(t, h, message.OpDeleteMovieRental, "1"), RentalNotDeleted)

	// a client without rentals still gets a report
	expectOK(t, call(t, h, message.OpGenerateReportByClient, "1"), client+";;0.00;;0")
}
