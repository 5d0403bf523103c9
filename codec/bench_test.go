package codec

import (
	"fmt"
	"testing"

	"movierentals/domain"
)

func benchMovies(n int) []domain.Movie {
	movies := make([]domain.Movie, n)
	for i := range movies {
		movies[i] = domain.Movie{
			ID:             int64(i + 1),
			Title:          fmt.Sprintf("Movie %d", i),
			Year:           2000 + i%20,
			Genre:          domain.GenreDrama,
			AgeRestriction: domain.AgePG13,
			RentalPrice:    2.5,
			Available:      i%2 == 0,
		}
	}
	return movies
}

func BenchmarkFormatMovies(b *testing.B) {
	movies := benchMovies(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FormatMovies(movies)
	}
}

func BenchmarkParseMovies(b *testing.B) {
	payload := FormatMovies(benchMovies(100))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseMovies(payload); err != nil {
			b.Fatal(err)
		}
	}
}
