package cli

import (
	"fmt"
	"io"
	"strings"

	"bdvail/internal/domain/models"
	"bdvail/internal/projectors"
	"bdvail/internal/utils"
)

// RouteTitle is "from → to" when both ends are known, else the route name.
func RouteTitle(r models.Route) string {
	from, to := strings.TrimSpace(r.From), strings.TrimSpace(r.To)
	if from != "" && to != "" {
		return from + " → " + to
	}
	return strings.TrimSpace(r.Name)
}

// RouteSubtitle joins the name, the starting price and the duration.
func RouteSubtitle(r models.Route) string {
	parts := []string{strings.TrimSpace(r.Name)}
	if r.BasePrice > 0 {
		parts = append(parts, "from "+utils.FormatPrice(r.BasePrice, r.Currency))
	}
	if d := utils.FormatDuration(r.DurationMinutes); d != "" {
		parts = append(parts, d)
	}
	return strings.Join(parts, " · ")
}

func renderRoutes(w io.Writer, routes []models.Route) {
	for _, r := range routes {
		fmt.Fprintf(w, "#%-4d %s\n      %s\n", r.ID, RouteTitle(r), RouteSubtitle(r))
	}
}

func renderTrip(w io.Writer, b models.Booking) {
	when := strings.TrimSpace(utils.DateOnly(b.Date) + " " + utils.TimeHM(b.Time))
	fmt.Fprintf(w, "  #%-5d %-10s %s\n", b.ID, b.Status.Label(), utils.Safe(b.RouteName, "Custom route"))
	fmt.Fprintf(w, "         %s → %s\n", utils.Safe(b.PickupLocation, "-"), utils.Safe(b.DropoffLocation, "-"))
	fmt.Fprintf(w, "         %s, %d passenger(s)\n", utils.Safe(when, "-"), b.Passengers)
}

func renderTrips(w io.Writer, bookings []models.Booking) {
	g := projectors.GroupTrips(bookings)
	section := func(title string, list []models.Booking) {
		fmt.Fprintf(w, "%s (%d)\n", title, len(list))
		if len(list) == 0 {
			fmt.Fprintln(w, "  nothing here yet")
		}
		for _, b := range list {
			renderTrip(w, b)
		}
	}
	section("Upcoming", g.Upcoming)
	section("History", g.History)
	if len(g.Other) > 0 {
		section("Other", g.Other)
	}
}
