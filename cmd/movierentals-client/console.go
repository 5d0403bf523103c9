package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/juju/errors"

	"movierentals/client"
	"movierentals/codec"
	"movierentals/domain"
)

// errBack leaves the current menu.
const errBack = errors.ConstError("back")

// lineReader is the part of *readline.Instance the console uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

type console struct {
	rl     lineReader
	client *client.Client
	out    io.Writer
	errOut io.Writer
}

func newConsole(rl lineReader, c *client.Client, out, errOut io.Writer) *console {
	return &console{rl: rl, client: c, out: out, errOut: errOut}
}

type menuItem struct {
	label  string
	action func() error
}

// Run shows the main menu until the user exits or input ends.
func (c *console) Run() error {
	err := c.menu("MENU", []menuItem{
		{"Movies Menu", c.moviesMenu},
		{"Clients Menu", c.clientsMenu},
		{"Rent Movie & Reports Menu", c.rentalsMenu},
	})
	if errors.Is(err, errBack) {
		return nil
	}
	return err
}

// menu prints the numbered items and runs the chosen one until option 0 or
// end of input, both reported as errBack.
func (c *console) menu(title string, items []menuItem) error {
	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, title)
		fmt.Fprintln(c.out, strings.Repeat("=", 50))
		for i, item := range items {
			fmt.Fprintf(c.out, "%d. %s\n", i+1, item.label)
		}
		if title == "MENU" {
			fmt.Fprintln(c.out, "0. Exit")
		} else {
			fmt.Fprintln(c.out, "0. Back")
		}

		line, err := c.ask("Enter your option: ")
		if err != nil {
			return err
		}
		choice, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(c.errOut, "Invalid input. Please enter a valid number.")
			continue
		}
		if choice == 0 {
			return errBack
		}
		if choice < 0 || choice > len(items) {
			fmt.Fprintln(c.errOut, "Unsupported command.")
			continue
		}
		// errBack from an action cancels it and redraws this menu
		if err := items[choice-1].action(); err != nil && !errors.Is(err, errBack) {
			fmt.Fprintln(c.errOut, err)
		}
	}
}

// ask reads one trimmed line. End of input and Ctrl-C become errBack.
func (c *console) ask(prompt string) (string, error) {
	c.rl.SetPrompt(prompt)
	line, err := c.rl.Readline()
	if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
		return "", errBack
	}
	if err != nil {
		return "", errors.Trace(err)
	}
	return strings.TrimSpace(line), nil
}

// askValue repeats the prompt until parse accepts the input.
func askValue[T any](c *console, prompt, invalid string, parse func(string) (T, error)) (T, error) {
	for {
		line, err := c.ask(prompt)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(line)
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(c.errOut, invalid)
	}
}

func (c *console) askID(what string) (int64, error) {
	return askValue(c, "Enter the ID of the "+what+": ", "Invalid input. Please enter a valid (long) ID.", codec.ParseID)
}

func (c *console) askFloat(prompt string) (float64, error) {
	return askValue(c, prompt, "Invalid input. Please enter a valid (float) amount.", func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

func (c *console) askBool(prompt string) (bool, error) {
	return askValue(c, prompt, "Invalid input. Please enter 'true' or 'false'.", strconv.ParseBool)
}

func (c *console) askTime(prompt string) (time.Time, error) {
	return askValue(c, prompt, "Invalid input. Please enter a date as yyyy-MM-ddTHH:mm:ss.", codec.ParseTime)
}

// show waits for f and prints its records one per line, or the server's
// error description.
func (c *console) show(f *client.Future, success string) error {
	payload, err := f.Get()
	var be *client.BusinessError
	if errors.As(err, &be) {
		fmt.Fprintln(c.errOut, be.Message)
		return nil
	}
	if err != nil {
		return errors.Annotate(err, "Response not returned")
	}
	if success != "" {
		fmt.Fprintln(c.out, success)
	}
	for _, rec := range strings.Split(payload, ";") {
		if rec != "" {
			fmt.Fprintln(c.out, rec)
		}
	}
	return nil
}

// Movies

func (c *console) moviesMenu() error {
	return c.menu("MOVIES MENU", []menuItem{
		{"Add Movie", c.addMovie},
		{"Print Movie", c.printMovie},
		{"Print All Movies", c.printAllMovies},
		{"Update Movie", c.updateMovie},
		{"Delete Movie", c.deleteMovie},
		{"Filter Movies by Keyword", c.filterMovies},
	})
}

func (c *console) readMovie() (domain.Movie, error) {
	var m domain.Movie
	var err error
	if m.Title, err = c.ask("Enter the movie title: "); err != nil {
		return m, err
	}
	if m.Year, err = askValue(c, "Enter the year of the movie: ", "Invalid input. Please enter a valid (int) year.", strconv.Atoi); err != nil {
		return m, err
	}
	if m.Genre, err = askValue(c, "Enter the genre of the movie: ", "Invalid input. Please enter a valid Movie genre.", domain.ParseGenre); err != nil {
		return m, err
	}
	if m.AgeRestriction, err = askValue(c, "Enter the age restrictions of the movie(G/PG/PG13/R/NC17): ",
		"Invalid input. Please enter a valid Movie age restriction.", domain.ParseAgeRestriction); err != nil {
		return m, err
	}
	if m.RentalPrice, err = c.askFloat("Enter the price for rent of the Movie: "); err != nil {
		return m, err
	}
	m.Available, err = c.askBool("Is it available for rent?(true/false): ")
	return m, err
}

func (c *console) addMovie() error {
	m, err := c.readMovie()
	if err != nil {
		return err
	}
	return c.show(c.client.AddMovie(m), "Movie saved successfully:")
}

func (c *console) printMovie() error {
	id, err := c.askID("Movie")
	if err != nil {
		return err
	}
	return c.show(c.client.GetMovieByID(id), "")
}

func (c *console) printAllMovies() error {
	return c.show(c.client.GetAllMovies(), "")
}

func (c *console) updateMovie() error {
	id, err := c.askID("Movie")
	if err != nil {
		return err
	}
	m, err := c.readMovie()
	if err != nil {
		return err
	}
	m.ID = id
	return c.show(c.client.UpdateMovie(m), "Movie updated successfully.")
}

func (c *console) deleteMovie() error {
	id, err := c.askID("Movie")
	if err != nil {
		return err
	}
	return c.show(c.client.DeleteMovieByID(id), "Movie was successfully deleted.")
}

func (c *console) filterMovies() error {
	keyword, err := c.ask("Enter the filter keyword: ")
	if err != nil {
		return err
	}
	return c.show(c.client.FilterMoviesByKeyword(keyword), "")
}

// Clients

func (c *console) clientsMenu() error {
	return c.menu("CLIENTS MENU", []menuItem{
		{"Add Client", c.addClient},
		{"Print Client", c.printClient},
		{"Print All Clients", c.printAllClients},
		{"Update Client", c.updateClient},
		{"Delete Client", c.deleteClient},
		{"Filter Client", c.filterClients},
	})
}

func (c *console) readClient() (domain.Client, error) {
	var cl domain.Client
	var err error
	if cl.FirstName, err = c.ask("Enter firstName: "); err != nil {
		return cl, err
	}
	if cl.LastName, err = c.ask("Enter lastName: "); err != nil {
		return cl, err
	}
	if cl.DateOfBirth, err = c.ask("Enter dateOfBirth (yyyy-MM-dd): "); err != nil {
		return cl, err
	}
	if cl.Email, err = c.ask("Enter email: "); err != nil {
		return cl, err
	}
	cl.Subscribe, err = c.askBool("Do you want to subscribe?(true/false): ")
	return cl, err
}

func (c *console) addClient() error {
	cl, err := c.readClient()
	if err != nil {
		return err
	}
	return c.show(c.client.AddClient(cl), "Client saved successfully.")
}

func (c *console) printClient() error {
	id, err := c.askID("Client")
	if err != nil {
		return err
	}
	return c.show(c.client.GetClientByID(id), "")
}

func (c *console) printAllClients() error {
	return c.show(c.client.GetAllClients(), "")
}

func (c *console) updateClient() error {
	id, err := c.askID("Client")
	if err != nil {
		return err
	}
	cl, err := c.readClient()
	if err != nil {
		return err
	}
	cl.ID = id
	return c.show(c.client.UpdateClient(cl), "Client updated successfully.")
}

func (c *console) deleteClient() error {
	id, err := c.askID("Client")
	if err != nil {
		return err
	}
	return c.show(c.client.DeleteClientByID(id), "Client was deleted successfully.")
}

func (c *console) filterClients() error {
	keyword, err := c.ask("Enter the filter keyword: ")
	if err != nil {
		return err
	}
	return c.show(c.client.FilterClientsByKeyword(keyword), "")
}

// Rentals and reports

func (c *console) rentalsMenu() error {
	return c.menu("RENT & REPORTS MENU", []menuItem{
		{"Print a rent transaction by ID", c.printRental},
		{"Print all rent transactions", c.printAllRentals},
		{"Rent a Movie", c.rentMovie},
		{"Update a Rent Transaction", c.updateRental},
		{"Delete a Rent Transaction", c.deleteRental},
		{"Print Movies by Rent Counter", c.moviesByRentNumber},
		{"Print Clients by Rent Counter", c.clientsByRentNumber},
		{"Print Client Rent Report by ID", c.clientReport},
		{"Print Movie Rent Report by ID", c.movieReport},
	})
}

func (c *console) readRental() (domain.Rental, error) {
	var r domain.Rental
	var err error
	if r.MovieID, err = c.askID("Movie"); err != nil {
		return r, err
	}
	if r.ClientID, err = c.askID("Client"); err != nil {
		return r, err
	}
	if r.RentalCharge, err = c.askFloat("Enter the rental charge: "); err != nil {
		return r, err
	}
	if r.RentalDate, err = c.askTime("Enter the rental date (yyyy-MM-ddTHH:mm:ss): "); err != nil {
		return r, err
	}
	r.DueDate, err = c.askTime("Enter the due date (yyyy-MM-ddTHH:mm:ss): ")
	return r, err
}

func (c *console) printRental() error {
	id, err := c.askID("Rent Transaction")
	if err != nil {
		return err
	}
	return c.show(c.client.GetRentalByID(id), "")
}

func (c *console) printAllRentals() error {
	return c.show(c.client.GetAllRentals(), "")
}

func (c *console) rentMovie() error {
	r, err := c.readRental()
	if err != nil {
		return err
	}
	return c.show(c.client.RentAMovie(r), "Movie rented successfully:")
}

func (c *console) updateRental() error {
	id, err := c.askID("Rent Transaction")
	if err != nil {
		return err
	}
	r, err := c.readRental()
	if err != nil {
		return err
	}
	r.ID = id
	return c.show(c.client.UpdateRentalTransaction(r), "Rental updated successfully.")
}

func (c *console) deleteRental() error {
	id, err := c.askID("Rent Transaction")
	if err != nil {
		return err
	}
	return c.show(c.client.DeleteMovieRental(id), "Rental successfully deleted.")
}

func (c *console) moviesByRentNumber() error {
	return c.show(c.client.MoviesByRentNumber(), "")
}

func (c *console) clientsByRentNumber() error {
	return c.show(c.client.ClientsByRentNumber(), "")
}

// Labels for the five sections of a rent report payload.
var clientReportLabels = []string{"Client information", "List of rented Movies", "Total Charges: $", "Rent Dates List", "Total Number of Rents"}
var movieReportLabels = []string{"Movie information", "List of Clients", "Total Charges: $", "Rent Dates List", "Total number of rents"}

func (c *console) clientReport() error {
	id, err := c.askID("Client")
	if err != nil {
		return err
	}
	return c.showReport(c.client.GenerateReportByClient(id), fmt.Sprintf("CLIENT #%d RENT REPORT", id), clientReportLabels)
}

func (c *console) movieReport() error {
	id, err := c.askID("Movie")
	if err != nil {
		return err
	}
	return c.showReport(c.client.GenerateReportByMovie(id), fmt.Sprintf("MOVIE #%d RENT REPORT", id), movieReportLabels)
}

func (c *console) showReport(f *client.Future, title string, labels []string) error {
	payload, err := f.Get()
	var be *client.BusinessError
	if errors.As(err, &be) {
		fmt.Fprintln(c.errOut, be.Message)
		return nil
	}
	if err != nil {
		return errors.Annotate(err, "Response not returned")
	}
	sections := strings.SplitN(payload, ";", len(labels))
	if len(sections) != len(labels) {
		return errors.Annotatef(codec.ErrMalformed, "report %q", payload)
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, title)
	fmt.Fprintln(c.out, strings.Repeat("*", 50))
	for i, label := range labels {
		value := strings.TrimSuffix(sections[i], ",")
		if strings.HasSuffix(label, "$") {
			fmt.Fprintln(c.out, label+value)
			continue
		}
		fmt.Fprintf(c.out, "%s: %s\n", label, strings.ReplaceAll(value, ",", ", "))
	}
	return nil
}
