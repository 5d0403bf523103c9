// Package domain holds the catalog entities exchanged by movierentals:
// movies, clients and rental transactions, plus the report shapes built
// from them.
package domain

import (
	"strings"
	"time"

	"github.com/juju/errors"
)

// ErrInvalid is returned by the validators and enum parsers.
const ErrInvalid = errors.ConstError("invalid entity")

// Genre is the movie genre.
type Genre string

const (
	GenreAction      Genre = "ACTION"
	GenreAdventure   Genre = "ADVENTURE"
	GenreAnimation   Genre = "ANIMATION"
	GenreComedy      Genre = "COMEDY"
	GenreDocumentary Genre = "DOCUMENTARY"
	GenreDrama       Genre = "DRAMA"
	GenreFantasy     Genre = "FANTASY"
	GenreHorror      Genre = "HORROR"
	GenreRomance     Genre = "ROMANCE"
	GenreSciFi       Genre = "SCI_FI"
	GenreThriller    Genre = "THRILLER"
)

var genres = []Genre{
	GenreAction, GenreAdventure, GenreAnimation, GenreComedy, GenreDocumentary,
	GenreDrama, GenreFantasy, GenreHorror, GenreRomance, GenreSciFi, GenreThriller,
}

// ParseGenre parses s case-insensitively.
func ParseGenre(s string) (Genre, error) {
	g := Genre(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range genres {
		if g == known {
			return g, nil
		}
	}
	return "", errors.Annotatef(ErrInvalid, "unknown genre %q", s)
}

// AgeRestriction is the movie's audience rating.
type AgeRestriction string

const (
	AgeG    AgeRestriction = "G"
	AgePG   AgeRestriction = "PG"
	AgePG13 AgeRestriction = "PG13"
	AgeR    AgeRestriction = "R"
	AgeNC17 AgeRestriction = "NC17"
)

var ageRestrictions = []AgeRestriction{AgeG, AgePG, AgePG13, AgeR, AgeNC17}

// ParseAgeRestriction parses s case-insensitively.
func ParseAgeRestriction(s string) (AgeRestriction, error) {
	a := AgeRestriction(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range ageRestrictions {
		if a == known {
			return a, nil
		}
	}
	return "", errors.Annotatef(ErrInvalid, "unknown age restriction %q", s)
}

type Movie struct {
	ID             int64
	Title          string
	Year           int
	Genre          Genre
	AgeRestriction AgeRestriction
	RentalPrice    float64
	Available      bool
}

type Client struct {
	ID          int64
	FirstName   string
	LastName    string
	DateOfBirth string
	Email       string
	Subscribe   bool
}

type Rental struct {
	ID           int64
	MovieID      int64
	ClientID     int64
	RentalCharge float64
	RentalDate   time.Time
	DueDate      time.Time
}

// MovieRentCount is one row of the movies-by-rent-number report.
type MovieRentCount struct {
	Movie Movie
	Count int
}

// ClientRentCount is one row of the clients-by-rent-number report.
type ClientRentCount struct {
	Client Client
	Count  int
}

// ClientReport lists every rental made by one client.
type ClientReport struct {
	Client       Client
	Movies       []Movie
	TotalCharges float64
	RentalDates  []time.Time
	Count        int
}

// MovieReport lists every rental of one movie.
type MovieReport struct {
	Movie        Movie
	Clients      []Client
	TotalCharges float64
	RentalDates  []time.Time
	Count        int
}
