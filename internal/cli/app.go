// Package cli implements the bdvail terminal client: one subcommand per app
// screen.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"

	"bdvail/internal/api"
	"bdvail/internal/config"
	"bdvail/internal/prefs"
	"bdvail/internal/projectors"
	"bdvail/internal/repositories"
)

// App wires the projectors over one transport, one route repository and one
// booking repository.
type App struct {
	Out io.Writer
	Err io.Writer

	Routes  *projectors.RoutesProjector
	Booking *projectors.BookingProjector
	Trips   *projectors.TripsProjector
	Support *projectors.SupportProjector

	BookingRepo repositories.BookingRepository
	Prefs       *prefs.Store
	BaseURL     string
}

// Options carries the settings New needs from the environment.
type Options struct {
	Policy  projectors.BookingPolicy
	Prefs   *prefs.Store
	BaseURL string
}

func New(t api.Transport, opts Options, out, errOut io.Writer) *App {
	routes := repositories.NewRoutesRepository(t)
	bookings := repositories.NewBookingRepository(t)
	return &App{
		Out:         out,
		Err:         errOut,
		Routes:      projectors.NewRoutesProjector(routes),
		Booking:     projectors.NewBookingProjector(bookings, opts.Policy),
		Trips:       projectors.NewTripsProjector(bookings),
		Support:     projectors.NewSupportProjector(bookings),
		BookingRepo: bookings,
		Prefs:       opts.Prefs,
		BaseURL:     opts.BaseURL,
	}
}

// PolicyFromEnv builds the booking policy from BDVAIL_CONTACT_RULE and
// BDVAIL_REQUIRE_TIME.
func PolicyFromEnv(env config.Env) (projectors.BookingPolicy, error) {
	return projectors.NewBookingPolicy(env.ContactRule, env.RequireTime)
}

type command struct {
	summary string
	run     func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"home":     {"show the home screen", (*App).home},
	"routes":   {"list available routes", (*App).routes},
	"book":     {"book a transfer", (*App).book},
	"trips":    {"show your bookings", (*App).trips},
	"support":  {"contact support", (*App).support},
	"settings": {"show or change your details", (*App).settings},
	"ticket":   {"save a booking confirmation as PDF", (*App).ticket},
}

// errFailed marks a failure already reported to the user.
var errFailed = errors.New("failed")

// Run executes one subcommand and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	name := "home"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}
	if name == "help" || name == "-h" || name == "--help" {
		a.usage()
		return 0
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(a.Err, "unknown command %q\n\n", name)
		a.usage()
		return 2
	}

	err := cmd.run(a, ctx, args)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errFailed):
		return 1
	default:
		fmt.Fprintln(a.Err, "error:", err)
		return 1
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.Err, "usage: bdvail <command> [flags]")
	fmt.Fprintln(a.Err)
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(a.Err, "  %-9s %s\n", n, commands[n].summary)
	}
}

func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("bdvail "+name, flag.ContinueOnError)
	fs.SetOutput(a.Err)
	return fs
}

func (a *App) loadPrefs() prefs.Preferences {
	if a.Prefs == nil {
		return prefs.Defaults()
	}
	p, err := a.Prefs.Load()
	if err != nil {
		fmt.Fprintln(a.Err, "warning:", err)
		return prefs.Defaults()
	}
	return p
}

// fail prints a failed result's message.
func (a *App) fail(msg string) error {
	fmt.Fprintln(a.Err, msg)
	return errFailed
}
