package codec

import (
	"strings"

	"movierentals/domain"
)

func rentalFields(r domain.Rental) []string {
	return []string{
		FormatID(r.MovieID),
		FormatID(r.ClientID),
		formatMoney(r.RentalCharge),
		FormatTime(r.RentalDate),
		FormatTime(r.DueDate),
	}
}

// FormatRental formats id,movieId,clientId,charge,rentalDate,dueDate.
func FormatRental(r domain.Rental) string {
	return FormatID(r.ID) + FieldSep + strings.Join(rentalFields(r), FieldSep)
}

// FormatNewRental formats a rental without its id, as sent by rentAMovie.
func FormatNewRental(r domain.Rental) string {
	return strings.Join(rentalFields(r), FieldSep)
}

func FormatRentals(rentals []domain.Rental) string {
	var sb strings.Builder
	for _, r := range rentals {
		sb.WriteString(FormatRental(r))
		sb.WriteString(RecordSep)
	}
	return sb.String()
}

func ParseRental(s string) (domain.Rental, error) {
	parts, err := fields(s, FieldSep, 6, "rental")
	if err != nil {
		return domain.Rental{}, err
	}
	p := &fieldParser{what: "rental"}
	r := parseRentalFields(parts[1:], p)
	r.ID = p.int64(parts[0])
	if p.err != nil {
		return domain.Rental{}, p.err
	}
	return r, nil
}

func ParseNewRental(s string) (domain.Rental, error) {
	parts, err := fields(s, FieldSep, 5, "rental")
	if err != nil {
		return domain.Rental{}, err
	}
	p := &fieldParser{what: "rental"}
	r := parseRentalFields(parts, p)
	if p.err != nil {
		return domain.Rental{}, p.err
	}
	return r, nil
}

func ParseRentals(s string) ([]domain.Rental, error) {
	var rentals []domain.Rental
	for _, rec := range records(s) {
		r, err := ParseRental(rec)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, r)
	}
	return rentals, nil
}

func parseRentalFields(parts []string, p *fieldParser) domain.Rental {
	return domain.Rental{
		MovieID:      p.int64(parts[0]),
		ClientID:     p.int64(parts[1]),
		RentalCharge: p.float(parts[2]),
		RentalDate:   p.time(parts[3]),
		DueDate:      p.time(parts[4]),
	}
}
