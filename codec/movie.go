package codec

import (
	"strings"

	"github.com/juju/errors"

	"movierentals/domain"
)

func movieFields(m domain.Movie) []string {
	return []string{
		m.Title,
		FormatID(int64(m.Year)),
		string(m.Genre),
		string(m.AgeRestriction),
		formatMoney(m.RentalPrice),
		boolString(m.Available),
	}
}

// FormatMovie formats id,title,year,genre,age,price,available.
func FormatMovie(m domain.Movie) string {
	return FormatID(m.ID) + FieldSep + strings.Join(movieFields(m), FieldSep)
}

// FormatNewMovie formats a movie without its id, as sent by addMovie.
func FormatNewMovie(m domain.Movie) string {
	return strings.Join(movieFields(m), FieldSep)
}

// FormatMovies formats a list of movies, each followed by RecordSep.
func FormatMovies(movies []domain.Movie) string {
	var sb strings.Builder
	for _, m := range movies {
		sb.WriteString(FormatMovie(m))
		sb.WriteString(RecordSep)
	}
	return sb.String()
}

// ParseMovie parses the output of FormatMovie.
func ParseMovie(s string) (domain.Movie, error) {
	parts, err := fields(s, FieldSep, 7, "movie")
	if err != nil {
		return domain.Movie{}, err
	}
	p := &fieldParser{what: "movie"}
	id := p.int64(parts[0])
	m, err := parseMovieFields(parts[1:], p)
	m.ID = id
	return m, err
}

// ParseNewMovie parses the output of FormatNewMovie.
func ParseNewMovie(s string) (domain.Movie, error) {
	parts, err := fields(s, FieldSep, 6, "movie")
	if err != nil {
		return domain.Movie{}, err
	}
	return parseMovieFields(parts, &fieldParser{what: "movie"})
}

// ParseMovies parses the output of FormatMovies.
func ParseMovies(s string) ([]domain.Movie, error) {
	var movies []domain.Movie
	for _, r := range records(s) {
		m, err := ParseMovie(r)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, nil
}

func parseMovieFields(parts []string, p *fieldParser) (domain.Movie, error) {
	m := domain.Movie{
		Title:       parts[0],
		Year:        p.int(parts[1]),
		RentalPrice: p.float(parts[4]),
		Available:   p.bool(parts[5]),
	}
	if p.err != nil {
		return domain.Movie{}, p.err
	}
	var err error
	if m.Genre, err = domain.ParseGenre(parts[2]); err != nil {
		return domain.Movie{}, errors.Annotate(ErrMalformed, err.Error())
	}
	if m.AgeRestriction, err = domain.ParseAgeRestriction(parts[3]); err != nil {
		return domain.Movie{}, errors.Annotate(ErrMalformed, err.Error())
	}
	return m, nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
