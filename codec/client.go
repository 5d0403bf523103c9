package codec

import (
	"strings"

	"movierentals/domain"
)

func clientFields(c domain.Client) []string {
	return []string{c.FirstName, c.LastName, c.DateOfBirth, c.Email, boolString(c.Subscribe)}
}

// FormatClient formats id,first,last,dateOfBirth,email,subscribe.
func FormatClient(c domain.Client) string {
	return FormatID(c.ID) + FieldSep + strings.Join(clientFields(c), FieldSep)
}

// FormatNewClient formats a client without its id, as sent by addClient.
func FormatNewClient(c domain.Client) string {
	return strings.Join(clientFields(c), FieldSep)
}

func FormatClients(clients []domain.Client) string {
	var sb strings.Builder
	for _, c := range clients {
		sb.WriteString(FormatClient(c))
		sb.WriteString(RecordSep)
	}
	return sb.String()
}

func ParseClient(s string) (domain.Client, error) {
	parts, err := fields(s, FieldSep, 6, "client")
	if err != nil {
		return domain.Client{}, err
	}
	p := &fieldParser{what: "client"}
	id := p.int64(parts[0])
	c := parseClientFields(parts[1:], p)
	c.ID = id
	if p.err != nil {
		return domain.Client{}, p.err
	}
	return c, nil
}

func ParseNewClient(s string) (domain.Client, error) {
	parts, err := fields(s, FieldSep, 5, "client")
	if err != nil {
		return domain.Client{}, err
	}
	p := &fieldParser{what: "client"}
	c := parseClientFields(parts, p)
	if p.err != nil {
		return domain.Client{}, p.err
	}
	return c, nil
}

func ParseClients(s string) ([]domain.Client, error) {
	var clients []domain.Client
	for _, r := range records(s) {
		c, err := ParseClient(r)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, nil
}

func parseClientFields(parts []string, p *fieldParser) domain.Client {
	return domain.Client{
		FirstName:   parts[0],
		LastName:    parts[1],
		DateOfBirth: parts[2],
		Email:       parts[3],
		Subscribe:   p.bool(parts[4]),
	}
}
