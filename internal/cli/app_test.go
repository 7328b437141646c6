package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"bdvail/internal/api/apitest"
	"bdvail/internal/config"
	"bdvail/internal/domain"
	"bdvail/internal/domain/models"
	"bdvail/internal/prefs"
	"bdvail/internal/projectors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cliRoutes = []models.Route{
	{ID: 1, Name: "Denver Airport to Vail", From: "Denver International Airport", To: "Vail, CO", BasePrice: 189, Currency: "USD", DurationMinutes: 150},
	{ID: 4, Name: "Custom transfer"},
}

type harness struct {
	app  *App
	fake *apitest.Fake
	out  *bytes.Buffer
	err  *bytes.Buffer
}

func newHarness(t *testing.T, fake *apitest.Fake) *harness {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	store := prefs.NewStore(filepath.Join(t.TempDir(), "preferences.yaml"))
	app := New(fake, Options{Policy: projectors.DefaultBookingPolicy(), Prefs: store, BaseURL: "http://localhost:8080/"}, out, errOut)
	return &harness{app: app, fake: fake, out: out, err: errOut}
}

func (h *harness) run(args ...string) int {
	return h.app.Run(context.Background(), args)
}

func TestRouteTitleAndSubtitle(t *testing.T) {
	assert.Equal(t, "Denver International Airport → Vail, CO", RouteTitle(cliRoutes[0]))
	assert.Equal(t, "Denver Airport to Vail · from 189 USD · 2h 30m", RouteSubtitle(cliRoutes[0]))
	assert.Equal(t, "Custom transfer", RouteTitle(cliRoutes[1]))
	assert.Equal(t, "Custom transfer", RouteSubtitle(cliRoutes[1]))
}

func TestClampPassengers(t *testing.T) {
	assert.Equal(t, 1, ClampPassengers(0, 8))
	assert.Equal(t, 1, ClampPassengers(-4, 8))
	assert.Equal(t, 5, ClampPassengers(5, 8))
	assert.Equal(t, 8, ClampPassengers(12, 8))
	assert.Equal(t, 8, ClampPassengers(12, 0))
}

func TestRoutesCommand(t *testing.T) {
	h := newHarness(t, &apitest.Fake{Routes: cliRoutes})

	require.Equal(t, 0, h.run("routes"))
	assert.Contains(t, h.out.String(), "Denver International Airport → Vail, CO")
	assert.Contains(t, h.out.String(), "from 189 USD")
}

func TestRoutesCommandEmpty(t *testing.T) {
	h := newHarness(t, &apitest.Fake{})

	assert.Equal(t, 1, h.run("routes"))
	assert.Contains(t, h.err.String(), "No routes available yet.")
}

func TestBookCommandSavesContact(t *testing.T) {
	fake := &apitest.Fake{Routes: cliRoutes, BookingResp: models.BookingResponse{Success: true, BookingID: apitest.ID(101)}}
	h := newHarness(t, fake)

	code := h.run("book", "--route-id", "1", "--date", "2026-12-20", "--time", "14:30",
		"--passengers", "20", "--name", "Dana", "--phone", "555")

	require.Equal(t, 0, code, h.err.String())
	assert.Contains(t, h.out.String(), "Booking #101 created.")
	assert.Equal(t, 8, fake.LastBooking.Passengers)
	assert.Equal(t, "Denver International Airport", fake.LastBooking.PickupLocation)
	assert.Equal(t, "Denver Airport to Vail", fake.LastBooking.RouteName)
	require.NotNil(t, fake.LastBooking.RouteID)
	assert.Equal(t, int64(1), *fake.LastBooking.RouteID)

	p, err := h.app.Prefs.Load()
	require.NoError(t, err)
	assert.Equal(t, "Dana", p.Name)
	assert.Equal(t, "555", p.Phone)
}

func TestBookCommandWarnsWhenRoutesUnavailable(t *testing.T) {
	fake := &apitest.Fake{
		RoutesErr:   domain.TransportError{StatusCode: 503, Msg: "Maintenance in progress"},
		BookingResp: models.BookingResponse{Success: true, BookingID: apitest.ID(102)},
	}
	h := newHarness(t, fake)

	code := h.run("book", "--route-id", "1", "--pickup", "Vail", "--dropoff", "Avon",
		"--date", "2026-12-20", "--time", "09:00", "--name", "Dana", "--phone", "555")

	require.Equal(t, 0, code, h.err.String())
	assert.Contains(t, h.err.String(), "warning: route details were not filled in: Maintenance in progress (HTTP 503)")
	assert.Empty(t, fake.LastBooking.RouteName)
	assert.Equal(t, "Vail", fake.LastBooking.PickupLocation)
}

func TestBookCommandWarnsOnUnknownRoute(t *testing.T) {
	fake := &apitest.Fake{Routes: cliRoutes, BookingResp: models.BookingResponse{Success: true, BookingID: apitest.ID(103)}}
	h := newHarness(t, fake)

	code := h.run("book", "--route-id", "99", "--pickup", "Vail", "--dropoff", "Avon",
		"--date", "2026-12-20", "--time", "09:00", "--name", "Dana", "--phone", "555")

	require.Equal(t, 0, code, h.err.String())
	assert.Contains(t, h.err.String(), "warning: route details were not filled in: route #99 not found.")
}

func TestBookCommandRejected(t *testing.T) {
	fake := &apitest.Fake{BookingResp: models.BookingResponse{Success: false, Message: "Slot unavailable"}}
	h := newHarness(t, fake)

	code := h.run("book", "--pickup", "Vail", "--dropoff", "Avon", "--date", "2026-12-20", "--time", "09:00",
		"--name", "Dana", "--phone", "555")

	assert.Equal(t, 1, code)
	assert.Contains(t, h.err.String(), "Slot unavailable")
	p, _ := h.app.Prefs.Load()
	assert.Empty(t, p.Phone, "details are saved only after a successful booking")
}

func TestBookCommandValidation(t *testing.T) {
	fake := &apitest.Fake{}
	h := newHarness(t, fake)

	assert.Equal(t, 1, h.run("book", "--dropoff", "Avon"))
	assert.Contains(t, h.err.String(), "Pickup location is required.")
	_, calls, _, _ := fake.Calls()
	assert.Zero(t, calls)
}

func TestTripsCommandUsesSavedPhone(t *testing.T) {
	fake := &apitest.Fake{Bookings: []models.Booking{
		{ID: 12, RouteName: "Eagle Shuttle", Date: "2026-12-22", Time: "09:00", Passengers: 1, Status: domain.StatusConfirmed},
		{ID: 9, RouteName: "Airport Express", Date: "2025-03-02", Time: "10:00", Passengers: 3, Status: domain.StatusCompleted},
		{ID: 7, Date: "2025-01-01", Passengers: 1, Status: domain.Status("on_hold")},
	}}
	h := newHarness(t, fake)
	_, err := h.app.Prefs.UpdateNameAndPhone("Dana", "555")
	require.NoError(t, err)

	require.Equal(t, 0, h.run("trips"))
	assert.Equal(t, "555", fake.LastPhone)
	out := h.out.String()
	assert.Contains(t, out, "Upcoming (1)")
	assert.Contains(t, out, "History (1)")
	assert.Contains(t, out, "Other (1)")
	assert.Contains(t, out, "ON_HOLD")
}

func TestTripsCommandWithoutPhone(t *testing.T) {
	fake := &apitest.Fake{}
	h := newHarness(t, fake)

	assert.Equal(t, 1, h.run("trips"))
	assert.Contains(t, h.err.String(), "Phone is required to fetch bookings.")
}

func TestSupportCommand(t *testing.T) {
	fake := &apitest.Fake{SupportResp: models.ApiResponse{Success: true, Message: "Support request received."}}
	h := newHarness(t, fake)

	require.Equal(t, 0, h.run("support", "--name", "Dana", "--email", "dana@example.com", "Need", "a", "child", "seat"))
	assert.Equal(t, "Need a child seat", fake.LastSupport.Message)
	assert.Contains(t, h.out.String(), "Support request received.")
}

func TestSettingsCommand(t *testing.T) {
	h := newHarness(t, &apitest.Fake{})

	require.Equal(t, 0, h.run("settings", "--name", "Dana", "--language", "ru"))
	out := h.out.String()
	assert.Contains(t, out, "name:     Dana")
	assert.Contains(t, out, "language: ru")
}

func TestTicketCommand(t *testing.T) {
	fake := &apitest.Fake{Bookings: []models.Booking{{ID: 101, RouteName: "Airport Express", Passengers: 2, Status: domain.StatusPending}}}
	h := newHarness(t, fake)
	dst := filepath.Join(t.TempDir(), "ticket.pdf")

	require.Equal(t, 0, h.run("ticket", "--id", "101", "--phone", "555", "-o", dst), h.err.String())
	raw, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	assert.Equal(t, 1, h.run("ticket", "--id", "7", "--phone", "555"))
	assert.Contains(t, h.err.String(), "booking #7 not found")
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t, &apitest.Fake{})

	assert.Equal(t, 2, h.run("fly"))
	assert.Contains(t, h.err.String(), "usage: bdvail")
	assert.Equal(t, 0, h.run())
	assert.Contains(t, h.out.String(), "BDVail Transfers")
}

func TestPolicyFromEnv(t *testing.T) {
	p, err := PolicyFromEnv(config.Env{ContactRule: "phone_or_email", RequireTime: false})
	require.NoError(t, err)
	assert.Equal(t, projectors.BookingPolicy{Contact: projectors.ContactPhoneOrEmail}, p)

	_, err = PolicyFromEnv(config.Env{ContactRule: "pigeon"})
	assert.Error(t, err)
}
