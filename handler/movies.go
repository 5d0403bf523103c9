package handler

import (
	"context"

	"movierentals/codec"
	"movierentals/message"
)

func addMovieHandlers(t *table, movies MovieService) {
	t.add(message.OpGetAllMovies, MoviesNotFound, func(ctx context.Context, _ string) (string, error) {
		all, err := movies.All(ctx)
		if err != nil {
			return "", err
		}
		return codec.FormatMovies(all), nil
	})

	t.add(message.OpAddMovie, MovieNotAdded, func(ctx context.Context, payload string) (string, error) {
		m, err := codec.ParseNewMovie(payload)
		if err != nil {
			return "", err
		}
		if m, err = movies.Add(ctx, m); err != nil {
			return "", err
		}
		return codec.FormatMovie(m), nil
	})

	t.add(message.OpGetMovieByID, MovieNotFound, func(ctx context.Context, payload string) (string, error) {
		id, err := codec.ParseID(payload)
		if err != nil {
			return "", err
		}
		m, err := movies.Get(ctx, id)
		if err != nil {
			return "", err
		}
		return codec.FormatMovie(m), nil
	})

	t.add(message.OpUpdateMovie, MovieNotUpdated, func(ctx context.Context, payload string) (string, error) {
		m, err := codec.ParseMovie(payload)
		if err != nil {
			return "", err
		}
		if m, err = movies.Update(ctx, m); err != nil {
			return "", err
		}
		return codec.FormatMovie(m), nil
	})

	t.add(message.OpDeleteMovieByID, MovieNotDeleted, func(ctx context.Context, payload string) (string, error) {
		id, err := codec.ParseID(payload)
		if err != nil {
			return "", err
		}
		m, err := movies.Delete(ctx, id)
		if err != nil {
			return "", err
		}
		return codec.FormatMovie(m), nil
	})

	t.add(message.OpFilterMoviesByKeyword, MovieTitleNoMatch, func(ctx context.Context, keyword string) (string, error) {
		matched, err := movies.Filter(ctx, keyword)
		if err != nil {
			return "", err
		}
		return codec.FormatMovies(matched), nil
	})
}
