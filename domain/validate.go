package domain

import (
	"strings"
	"time"

	"github.com/juju/errors"
)

// Oldest release year accepted for a movie.
const firstMovieYear = 1888

const dateOfBirthLayout = "2006-01-02"

// reserved are the payload delimiters; text fields must not contain them.
const reserved = ",;:\r\n"

func checkText(what, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.Annotatef(ErrInvalid, "%s must not be empty", what)
	}
	if strings.ContainsAny(value, reserved) {
		return errors.Annotatef(ErrInvalid, "%s %q contains a reserved character", what, value)
	}
	return nil
}

// ValidateMovie checks the fields of m, ignoring its ID.
func ValidateMovie(m Movie) error {
	if err := checkText("movie title", m.Title); err != nil {
		return err
	}
	if m.Year < firstMovieYear || m.Year > time.Now().Year()+5 {
		return errors.Annotatef(ErrInvalid, "movie year %d out of range", m.Year)
	}
	if _, err := ParseGenre(string(m.Genre)); err != nil {
		return err
	}
	if _, err := ParseAgeRestriction(string(m.AgeRestriction)); err != nil {
		return err
	}
	if m.RentalPrice < 0 {
		return errors.Annotatef(ErrInvalid, "rental price %.2f is negative", m.RentalPrice)
	}
	return nil
}

// ValidateClient checks the fields of c, ignoring its ID.
func ValidateClient(c Client) error {
	if err := checkText("first name", c.FirstName); err != nil {
		return err
	}
	if err := checkText("last name", c.LastName); err != nil {
		return err
	}
	if _, err := time.Parse(dateOfBirthLayout, c.DateOfBirth); err != nil {
		return errors.Annotatef(ErrInvalid, "date of birth %q is not yyyy-mm-dd", c.DateOfBirth)
	}
	at := strings.Index(c.Email, "@")
	if at <= 0 || at == len(c.Email)-1 || strings.ContainsAny(c.Email, " "+reserved) {
		return errors.Annotatef(ErrInvalid, "email %q is not valid", c.Email)
	}
	return nil
}

// ValidateRental checks the fields of r, ignoring its ID. It does not check
// that the referenced movie and client exist.
func ValidateRental(r Rental) error {
	if r.MovieID <= 0 || r.ClientID <= 0 {
		return errors.Annotate(ErrInvalid, "rental must reference a movie and a client")
	}
	if r.RentalCharge < 0 {
		return errors.Annotatef(ErrInvalid, "rental charge %.2f is negative", r.RentalCharge)
	}
	if r.RentalDate.IsZero() || r.DueDate.IsZero() {
		return errors.Annotate(ErrInvalid, "rental dates must be set")
	}
	if r.DueDate.Before(r.RentalDate) {
		return errors.Annotate(ErrInvalid, "due date is before rental date")
	}
	return nil
}
