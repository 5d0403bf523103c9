// Package codec serializes domain records into request and response payloads.
//
// The format is positional and does not escape anything:
//
//	field,field,field        one record
//	record;record;           a list, every record followed by ';'
//	sub:sub:sub              one element of a nested list inside a report
//
// Values must therefore not contain ',', ';', ':' or line terminators. The
// domain validators reject such values where they could appear.
package codec

import (
	"strconv"
	"strings"
	"time"

	"github.com/juju/errors"
)

// ErrMalformed is returned when a payload does not have the expected shape.
const ErrMalformed = errors.ConstError("malformed payload")

const (
	FieldSep  = ","
	RecordSep = ";"
	SubSep    = ":"
)

// TimeLayout is the rental timestamp format, nanosecond precision.
const TimeLayout = "2006-01-02T15:04:05.000000000"

// ParseID parses a record identifier.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.Annotatef(ErrMalformed, "id %q", s)
	}
	return id, nil
}

// FormatID formats a record identifier.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// FormatTime formats t with TimeLayout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTime accepts timestamps with or without fractional seconds.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02T15:04:05", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errors.Annotatef(ErrMalformed, "timestamp %q", s)
	}
	return t, nil
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// fields splits a record and checks its arity.
func fields(record, sep string, want int, what string) ([]string, error) {
	parts := strings.Split(record, sep)
	if len(parts) != want {
		return nil, errors.Annotatef(ErrMalformed, "%s: expect %d fields, got %d", what, want, len(parts))
	}
	return parts, nil
}

// records splits a list payload into its records, dropping the empty tail
// left by the trailing separator.
func records(payload string) []string {
	var out []string
	for _, r := range strings.Split(payload, RecordSep) {
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}

type fieldParser struct {
	what string
	err  error
}

func (p *fieldParser) int64(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil && p.err == nil {
		p.err = errors.Annotatef(ErrMalformed, "%s: integer %q", p.what, s)
	}
	return v
}

func (p *fieldParser) int(s string) int {
	return int(p.int64(s))
}

func (p *fieldParser) float(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && p.err == nil {
		p.err = errors.Annotatef(ErrMalformed, "%s: number %q", p.what, s)
	}
	return v
}

func (p *fieldParser) bool(s string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil && p.err == nil {
		p.err = errors.Annotatef(ErrMalformed, "%s: boolean %q", p.what, s)
	}
	return v
}

func (p *fieldParser) time(s string) time.Time {
	v, err := ParseTime(s)
	if err != nil && p.err == nil {
		p.err = errors.Annotate(err, p.what)
	}
	return v
}
