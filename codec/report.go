package codec

import (
	"strconv"
	"strings"
	"time"

	"movierentals/domain"
)

// FormatMovieRentCounts formats each movie followed by its rent count:
// id,title,year,genre,age,price,available,count;
func FormatMovieRentCounts(rows []domain.MovieRentCount) string {
	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(FormatMovie(row.Movie))
		sb.WriteString(FieldSep)
		sb.WriteString(strconv.Itoa(row.Count))
		sb.WriteString(RecordSep)
	}
	return sb.String()
}

// FormatClientRentCounts formats each client followed by its rent count.
func FormatClientRentCounts(rows []domain.ClientRentCount) string {
	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(FormatClient(row.Client))
		sb.WriteString(FieldSep)
		sb.WriteString(strconv.Itoa(row.Count))
		sb.WriteString(RecordSep)
	}
	return sb.String()
}

// FormatClientReport lays a client report out in five ';'-separated sections:
//
//	client;movie,movie,;totalCharges;date,date,;count
//
// where each movie is written with its fields joined by SubSep.
func FormatClientReport(r domain.ClientReport) string {
	var sb strings.Builder
	sb.WriteString(FormatClient(r.Client))
	sb.WriteString(RecordSep)
	for _, m := range r.Movies {
		sb.WriteString(strings.ReplaceAll(FormatMovie(m), FieldSep, SubSep))
		sb.WriteString(FieldSep)
	}
	writeReportTail(&sb, r.TotalCharges, r.RentalDates, r.Count)
	return sb.String()
}

// FormatMovieReport is FormatClientReport with the roles of movie and client
// swapped.
func FormatMovieReport(r domain.MovieReport) string {
	var sb strings.Builder
	sb.WriteString(FormatMovie(r.Movie))
	sb.WriteString(RecordSep)
	for _, c := range r.Clients {
		sb.WriteString(strings.ReplaceAll(FormatClient(c), FieldSep, SubSep))
		sb.WriteString(FieldSep)
	}
	writeReportTail(&sb, r.TotalCharges, r.RentalDates, r.Count)
	return sb.String()
}

func writeReportTail(sb *strings.Builder, total float64, dates []time.Time, count int) {
	sb.WriteString(RecordSep)
	sb.WriteString(formatMoney(total))
	sb.WriteString(RecordSep)
	for _, d := range dates {
		sb.WriteString(FormatTime(d))
		sb.WriteString(FieldSep)
	}
	sb.WriteString(RecordSep)
	sb.WriteString(strconv.Itoa(count))
}
