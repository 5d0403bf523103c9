package handler

import (
	"context"

	"movierentals/codec"
	"movierentals/message"
)

func addRentalHandlers(t *table, rentals RentalService) {
	t.add(message.OpGetAllRentals, RentalsNotFound, func(ctx context.Context, _ string) (string, error) {
		all, err := rentals.All(ctx)
		if err != nil {
			return "", err
		}
		return codec.FormatRentals(all), nil
	})

	t.add(message.OpGetRentalByID, RentalNotFound, func(ctx context.Context, payload string) (string, error) {
		id, err := codec.ParseID(payload)
		if err != nil {
			return "", err
		}
		r, err := rentals.Get(ctx, id)
		if err != nil {
			return "", err
		}
		return codec.FormatRental(r), nil
	})

	t.add(message.OpRentAMovie, RentalNotAdded, func(ctx context.Context, payload string) (string, error) {
		r, err := codec.ParseNewRental(payload)
		if err != nil {
			return "", err
		}
		if r, err = rentals.Rent(ctx, r); err != nil {
			return "", err
		}
		return codec.FormatRental(r), nil
	})

	t.add(message.OpUpdateRentalTransaction, RentalNotUpdated, func(ctx context.Context, payload string) (string, error) {
		r, err := codec.ParseRental(payload)
		if err != nil {
			return "", err
		}
		if r, err = rentals.Update(ctx, r); err != nil {
			return "", err
		}
		return codec.FormatRental(r), nil
	})

	t.add(message.OpDeleteMovieRental, RentalNotDeleted, func(ctx context.Context, payload string) (string, error) {
		id, err := codec.ParseID(payload)
		if err != nil {
			return "", err
		}
		r, err := rentals.Delete(ctx, id)
		if err != nil {
			return "", err
		}
		return codec.FormatRental(r), nil
	})

	t.add(message.OpMoviesByRentNumber, NoReport, func(ctx context.Context, _ string) (string, error) {
		rows, err := rentals.MoviesByRentNumber(ctx)
		if err != nil {
			return "", err
		}
		return codec.FormatMovieRentCounts(rows), nil
	})

	t.add(message.OpClientsByRentNumber, NoReport, func(ctx context.Context, _ string) (string, error) {
		rows, err := rentals.ClientsByRentNumber(ctx)
		if err != nil {
			return "", err
		}
		return codec.FormatClientRentCounts(rows), nil
	})

	t.add(message.OpGenerateReportByClient, NoReportIDNotFound, func(ctx context.Context, payload string) (string, error) {
		id, err := codec.ParseID(payload)
		if err != nil {
			return "", err
		}
		report, err := rentals.ReportByClient(ctx, id)
		if err != nil {
			return "", err
		}
		return codec.FormatClientReport(report), nil
	})

	t.add(message.OpGenerateReportByMovie, NoReportIDNotFound, func(ctx context.Context, payload string) (string, error) {
		id, err := codec.ParseID(payload)
		if err != nil {
			return "", err
		}
		report, err := rentals.ReportByMovie(ctx, id)
		if err != nil {
			return "", err
		}
		return codec.FormatMovieReport(report), nil
	})
}
