// Command bookctl checks free slots and books appointments against a running server.
//
//	bookctl slots -date 2025-03-10
//	bookctl book -date 2025-03-10 -hour 14 -type cleaning -details "Full interior"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/kelleauto/dealership-backend/internal/booking"
	"github.com/kelleauto/dealership-backend/internal/client"
)

const usage = `usage: bookctl <command> [flags]

commands:
  slots   show the bookable hours of a date
  book    book one hour of a date
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "bookctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return errors.New("missing command")
	}

	switch args[0] {
	case "slots":
		return runSlots(ctx, args[1:], out)
	case "book":
		return runBook(ctx, args[1:], out)
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	}
	return fmt.Errorf("unknown command %q", args[0])
}

func defaultServer() string {
	if s := os.Getenv("BOOKCTL_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

func newClient(server string, timeout time.Duration) *client.Client {
	if timeout <= 0 {
		return client.New(server)
	}
	return client.New(server, client.WithHTTPClient(&http.Client{Timeout: timeout}))
}

func runSlots(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("slots", flag.ContinueOnError)
	server := fs.String("server", defaultServer(), "server base URL")
	date := fs.String("date", "", "date as YYYY-MM-DD")
	timeout := fs.Duration("timeout", 0, "request timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c := newClient(*server, *timeout)
	s := booking.NewSession(c, c)
	if err := s.PickDate(ctx, *date); err != nil {
		return err
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("check slots: %w", err)
	}

	printSlots(out, s)
	return nil
}

func runBook(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("book", flag.ContinueOnError)
	server := fs.String("server", defaultServer(), "server base URL")
	date := fs.String("date", "", "date as YYYY-MM-DD")
	hour := fs.Int("hour", -1, "hour of day, e.g. 14")
	kind := fs.String("type", string(booking.TypeGeneral), "sales, cleaning, service or general")
	details := fs.String("details", "", "what the appointment is for")
	name := fs.String("name", "", "contact name")
	phone := fs.String("phone", "", "contact phone number")
	timeout := fs.Duration("timeout", 0, "request timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c := newClient(*server, *timeout)
	s := booking.NewSession(c, c)
	if err := s.PickDate(ctx, *date); err != nil {
		return err
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("check slots: %w", err)
	}

	if !s.PickHour(*hour) {
		printSlots(out, s)
		return fmt.Errorf("%02d:00 on %s cannot be booked", *hour, *date)
	}

	b, err := s.Submit(ctx, booking.Form{
		Type:         booking.Type(*kind),
		Details:      *details,
		ContactName:  optional(*name),
		ContactPhone: optional(*phone),
	})
	if err != nil {
		if errors.Is(err, booking.ErrSlotTaken) {
			printSlots(out, s)
		}
		return fmt.Errorf("booking failed: %w", err)
	}

	fmt.Fprintf(out, "booked %s (%s) at %s\n", b.ID, b.Type, b.AppointmentTime)
	return nil
}

func printSlots(out io.Writer, s *booking.Session) {
	fmt.Fprintf(out, "%s\n", s.Date())
	for _, slot := range s.Slots() {
		status := "free"
		if !slot.Available {
			status = "booked"
		}
		fmt.Fprintf(out, "  %s  %s\n", slot.Label(), status)
	}
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
