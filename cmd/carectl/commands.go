package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/ports"
	"github.com/carepoint/appointment-portal/internal/core/service"
	"github.com/carepoint/appointment-portal/internal/infrastructure/gateway"
	"github.com/carepoint/appointment-portal/internal/pkg/config"
	"github.com/carepoint/appointment-portal/internal/pkg/validation"
)

type app struct {
	session      *service.Session
	appointments *service.AppointmentBoard
	search       *service.DoctorSearch
	booking      *service.BookingFlow

	out io.Writer
	in  *bufio.Reader
}

func newApp(ctx context.Context, backend config.BackendConfig, store ports.ClientStorage, log zerolog.Logger) (*app, error) {
	auth := gateway.NewAuthGateway(gateway.NewClient("auth", backend.AuthBaseURL, gateway.WithLogger(log)))
	session := service.NewSession(auth, store, service.WithLogger(log))
	if err := session.Restore(ctx); err != nil {
		return nil, err
	}

	client := gateway.NewClient("api", backend.APIBaseURL, gateway.WithTokens(session), gateway.WithLogger(log))
	appointments := gateway.NewAppointmentGateway(client)
	doctors := gateway.NewDoctorGateway(client)

	return &app{
		session:      session,
		appointments: service.NewAppointmentBoard(appointments, log),
		search:       service.NewDoctorSearch(doctors, log),
		booking:      service.NewBookingFlow(appointments, doctors, log),
	}, nil
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	}

	if !a.session.IsAuthenticated(ctx) {
		return domain.ErrNotAuthenticated
	}
	switch cmd {
	case "search":
		return a.searchDoctors(ctx, args)
	case "book":
		return a.book(ctx, args)
	case "list":
		return a.list(ctx)
	case "cancel":
		return a.cancel(ctx, args)
	case "reschedule":
		return a.reschedule(ctx, args)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		p, err := a.prompt("Password: ")
		if err != nil {
			return err
		}
		*password = p
	}

	resp, err := a.session.Login(ctx, domain.Credentials{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	if resp == nil || resp.AccessToken == "" || !a.session.IsAuthenticated(ctx) {
		msg := "Login failed. Please check your credentials."
		if resp != nil && resp.Message != "" {
			msg = resp.Message
		}
		return errors.New(msg)
	}

	id := a.session.CurrentIdentity(ctx)
	fmt.Fprintf(a.out, "Logged in as %s (%s).\n", id.Email, id.Role)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	id := a.session.CurrentIdentity(ctx)
	if !a.session.IsAuthenticated(ctx) || id == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s), id %d\n", id.Email, id.Role, id.ID)
	return nil
}

func (a *app) searchDoctors(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	var c domain.SearchCriteria
	fs.StringVar(&c.Specialization, "specialization", "", "specialization")
	fs.StringVar(&c.Location, "location", "", "location")
	fs.Float64Var(&c.MinRating, "min-rating", 0, "minimum rating (0-5)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	view, err := a.search.Search(ctx, c)
	if err != nil {
		return err
	}
	if view.Info != "" {
		fmt.Fprintln(a.out, view.Info)
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSPECIALIZATION\tLOCATION\tRATING\tOPEN SLOTS")
	for _, r := range view.Results {
		days := make([]string, 0, len(r.Dates))
		for _, d := range r.Dates {
			days = append(days, fmt.Sprintf("%s:%d", d, r.OpenSlots[d]))
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.1f\t%s\n",
			r.ID, r.FullName, r.Specialization, r.Location, r.Rating, strings.Join(days, " "))
	}
	return tw.Flush()
}

func (a *app) book(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ContinueOnError)
	var in service.BookingInput
	fs.Int64Var(&in.DoctorID, "doctor", 0, "doctor id")
	fs.StringVar(&in.Date, "date", "", "YYYY-MM-DD")
	fs.StringVar(&in.StartTime, "time", "", "HH:mm")
	yes := fs.Bool("waitlist", false, "join the waitlist without asking if the slot is taken")
	if err := fs.Parse(args); err != nil {
		return err
	}

	view, err := a.booking.AttemptBook(ctx, in)
	if err != nil {
		return err
	}
	if view.State == service.BookingConfirmed {
		if view.Confirmation != nil && view.Confirmation.Message != "" {
			fmt.Fprintln(a.out, view.Confirmation.Message)
		} else {
			fmt.Fprintln(a.out, "Appointment booked.")
		}
		return nil
	}

	// Conflicted: the only way forward is the waitlist.
	fmt.Fprintln(a.out, view.ConflictMessage)
	if !*yes {
		answer, err := a.prompt(fmt.Sprintf("Join the waitlist for %s? [y/N] ", in.Date))
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			return nil
		}
	}

	view, err = a.booking.JoinWaitlist(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, view.WaitlistMessage)
	return nil
}

func (a *app) list(ctx context.Context) error {
	items, err := a.appointments.Load(ctx)
	if err != nil {
		return err
	}
	return a.printAppointments(items)
}

func (a *app) cancel(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: carectl cancel <appointment-id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	items, err := a.appointments.Cancel(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Appointment cancelled successfully.")
	return a.printAppointments(items)
}

func (a *app) reschedule(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: carectl reschedule <appointment-id> <YYYY-MM-DDTHH:mm>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	items, err := a.appointments.Reschedule(ctx, id, args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Appointment rescheduled successfully.")
	return a.printAppointments(items)
}

func (a *app) printAppointments(items []domain.Appointment) error {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No appointments.")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDOCTOR\tWHEN\tSTATUS")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", it.ID, it.DoctorName, it.AppointmentDateTime, it.Status)
	}
	return tw.Flush()
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid appointment id %q", s)
	}
	return id, nil
}

// describe renders err for the terminal.
func describe(err error) string {
	var ve *validation.Error
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, domain.ErrNotAuthenticated):
		return "not logged in, run: carectl login -email <email>"
	}
	if status, msg, ok := domain.StatusOf(err); ok {
		if msg == "" {
			return fmt.Sprintf("backend returned %d", status)
		}
		return msg
	}
	return err.Error()
}
