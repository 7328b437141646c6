package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"bdvail/internal/domain/models"
	"bdvail/internal/projectors"
	"bdvail/internal/services"
	"bdvail/internal/utils"
)

const defaultMaxPassengers = 8

func (a *App) home(ctx context.Context, args []string) error {
	fs := a.flags("home")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p := a.loadPrefs()
	fmt.Fprintf(a.Out, "BDVail Transfers%s\n", greeting(p.Name))
	fmt.Fprintln(a.Out, "Private transfers to and from Vail.")
	fmt.Fprintln(a.Out)
	fmt.Fprintln(a.Out, "  bdvail routes     browse routes")
	fmt.Fprintln(a.Out, "  bdvail book       book a transfer")
	fmt.Fprintln(a.Out, "  bdvail trips      my trips")
	fmt.Fprintln(a.Out, "  bdvail support    contact us")
	fmt.Fprintln(a.Out, "  bdvail settings   my details")
	if a.BaseURL != "" {
		fmt.Fprintln(a.Out)
		fmt.Fprintln(a.Out, "server:", a.BaseURL)
	}
	return nil
}

func greeting(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return ", welcome back " + name
	}
	return ""
}

func (a *App) routes(ctx context.Context, args []string) error {
	fs := a.flags("routes")
	refresh := fs.Bool("refresh", false, "bypass the route cache")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st := a.Routes.Load(ctx, *refresh)
	if st.Result.Outcome != projectors.Success {
		return a.fail(st.Result.Message)
	}
	renderRoutes(a.Out, st.Result.Value)
	return nil
}

// ClampPassengers keeps the form's passenger count within [1, max].
func ClampPassengers(n, max int) int {
	if max < 1 {
		max = defaultMaxPassengers
	}
	if n < 1 {
		return 1
	}
	if n > max {
		return max
	}
	return n
}

func (a *App) book(ctx context.Context, args []string) error {
	p := a.loadPrefs()

	fs := a.flags("book")
	routeID := fs.Int64("route-id", 0, "route id from `bdvail routes` (0 for a custom route)")
	var req models.BookingRequest
	fs.StringVar(&req.RouteName, "route", "", "route name for a custom route")
	fs.StringVar(&req.PickupLocation, "pickup", "", "pickup location")
	fs.StringVar(&req.DropoffLocation, "dropoff", "", "dropoff location")
	fs.StringVar(&req.Date, "date", "", "date, YYYY-MM-DD")
	fs.StringVar(&req.Time, "time", "", "pickup time, HH:MM")
	fs.IntVar(&req.Passengers, "passengers", 1, "number of passengers")
	fs.IntVar(&req.ChildSeats, "child-seats", 0, "child seats needed")
	fs.IntVar(&req.Luggage, "luggage", 0, "pieces of luggage")
	fs.StringVar(&req.FlightNumber, "flight", "", "flight number")
	fs.StringVar(&req.Name, "name", p.Name, "your name")
	fs.StringVar(&req.Phone, "phone", p.Phone, "your phone")
	fs.StringVar(&req.Email, "email", "", "your email")
	fs.StringVar(&req.Comment, "comment", "", "anything the driver should know")
	maxPassengers := fs.Int("max-passengers", defaultMaxPassengers, "upper bound for --passengers")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *routeID > 0 {
		id := *routeID
		req.RouteID = &id
		if st := a.Routes.Load(ctx, false); st.Result.Outcome != projectors.Success {
			fmt.Fprintf(a.Err, "warning: route details were not filled in: %s\n", st.Result.Message)
		} else if r, ok := a.Routes.GetRouteByID(id); ok {
			req.RouteName = utils.FirstNonBlank(req.RouteName, r.Name)
			req.PickupLocation = utils.FirstNonBlank(req.PickupLocation, r.From)
			req.DropoffLocation = utils.FirstNonBlank(req.DropoffLocation, r.To)
		} else {
			fmt.Fprintf(a.Err, "warning: route details were not filled in: route #%d not found.\n", id)
		}
	}
	req.Passengers = ClampPassengers(req.Passengers, *maxPassengers)
	req.ChildSeats = max(req.ChildSeats, 0)
	req.Luggage = max(req.Luggage, 0)

	st := a.Booking.Submit(ctx, req)
	if st.Result.Outcome != projectors.Success {
		return a.fail(st.Result.Message)
	}

	if a.Prefs != nil {
		if _, err := a.Prefs.UpdateNameAndPhone(req.Name, req.Phone); err != nil {
			fmt.Fprintln(a.Err, "warning: could not save your details:", err)
		}
	}

	resp := st.Result.Value
	if resp.BookingID != nil {
		fmt.Fprintf(a.Out, "Booking #%d created.\n", *resp.BookingID)
	} else {
		fmt.Fprintln(a.Out, "Booking created.")
	}
	if msg := strings.TrimSpace(resp.Message); msg != "" {
		fmt.Fprintln(a.Out, msg)
	}
	fmt.Fprintln(a.Out, "We will confirm your transfer shortly.")
	return nil
}

func (a *App) trips(ctx context.Context, args []string) error {
	p := a.loadPrefs()

	fs := a.flags("trips")
	phone := fs.String("phone", p.Phone, "phone used when booking")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st := a.Trips.Load(ctx, *phone)
	if st.Result.Outcome != projectors.Success {
		return a.fail(st.Result.Message)
	}
	renderTrips(a.Out, st.Result.Value)
	return nil
}

func (a *App) support(ctx context.Context, args []string) error {
	p := a.loadPrefs()

	fs := a.flags("support")
	var req models.SupportRequest
	fs.StringVar(&req.Name, "name", p.Name, "your name")
	fs.StringVar(&req.Phone, "phone", p.Phone, "your phone")
	fs.StringVar(&req.Email, "email", "", "your email")
	fs.StringVar(&req.Subject, "subject", "", "subject")
	fs.StringVar(&req.Message, "message", "", "your message")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if req.Message == "" && fs.NArg() > 0 {
		req.Message = strings.Join(fs.Args(), " ")
	}

	st := a.Support.Send(ctx, req)
	if st.Result.Outcome != projectors.Success {
		return a.fail(st.Result.Message)
	}
	fmt.Fprintln(a.Out, utils.Safe(st.Result.Value.Message, "Message sent."))
	return nil
}

func (a *App) settings(ctx context.Context, args []string) error {
	fs := a.flags("settings")
	name := fs.String("name", "", "set your name")
	phone := fs.String("phone", "", "set your phone")
	lang := fs.String("language", "", "set the language code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if a.Prefs == nil {
		return fmt.Errorf("preferences are not configured")
	}

	p, err := a.Prefs.Load()
	if err != nil {
		return err
	}
	if *name != "" || *phone != "" {
		p, err = a.Prefs.UpdateNameAndPhone(utils.FirstNonBlank(*name, p.Name), utils.FirstNonBlank(*phone, p.Phone))
		if err != nil {
			return err
		}
	}
	if *lang != "" {
		if p, err = a.Prefs.UpdateLanguage(*lang); err != nil {
			return err
		}
	}

	fmt.Fprintf(a.Out, "name:     %s\n", utils.Safe(p.Name, "-"))
	fmt.Fprintf(a.Out, "phone:    %s\n", utils.Safe(p.Phone, "-"))
	fmt.Fprintf(a.Out, "language: %s\n", p.Language)
	fmt.Fprintf(a.Out, "file:     %s\n", a.Prefs.Path())
	return nil
}

func (a *App) ticket(ctx context.Context, args []string) error {
	p := a.loadPrefs()

	fs := a.flags("ticket")
	id := fs.Int64("id", 0, "booking id")
	phone := fs.String("phone", p.Phone, "phone used when booking")
	out := fs.String("o", "", "output file (default: generated name in the current directory)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	docs := services.DocsService{Loader: services.TripsLoader(a.BookingRepo, p.Name, *phone)}
	pdf, filename, err := docs.GenerateTicket(ctx, *id)
	if err != nil {
		return err
	}
	if *out != "" {
		filename = *out
	}
	if err := os.WriteFile(filename, pdf, 0o644); err != nil {
		return fmt.Errorf("write ticket: %w", err)
	}
	fmt.Fprintln(a.Out, "Ticket saved to", filename)
	return nil
}
