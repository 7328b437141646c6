package router

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bdvail/internal/api"
	intconfig "bdvail/internal/config"
	"bdvail/internal/domain"
	"bdvail/internal/domain/models"
	h "bdvail/internal/http/handlers"
	"bdvail/internal/http/middleware"
	"bdvail/internal/projectors"
	"bdvail/internal/services"
	"bdvail/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type sandbox struct {
	srv     *httptest.Server
	client  *api.Client
	mock    sqlmock.Sqlmock
	metrics *middleware.Metrics
}

func newSandbox(t *testing.T) *sandbox {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(reg)
	app := appFor(db, metrics)

	r := NewRouter(intconfig.Env{}, Deps{App: app, Gatherer: reg})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL, 5*time.Second)
	require.NoError(t, err)
	return &sandbox{srv: srv, client: client, mock: mock, metrics: metrics}
}

func appFor(db *sql.DB, metrics *middleware.Metrics) h.App {
	return h.App{
		Routes: storage.RouteStore{DB: db},
		Bookings: services.BookingService{
			Routes:   storage.RouteStore{DB: db},
			Bookings: storage.BookingStore{DB: db},
			Policy:   projectors.DefaultBookingPolicy(),
		},
		Support: services.SupportService{Tickets: storage.SupportStore{DB: db}},
		Metrics: metrics,
	}
}

func TestRoutesEndpoint(t *testing.T) {
	sb := newSandbox(t)
	sb.mock.ExpectQuery("FROM app_routes WHERE active = 1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "from_location", "to_location", "base_price", "currency", "duration_minutes"}).
			AddRow(1, "Denver Airport to Vail", "Denver International Airport", "Vail, CO", 189.0, "USD", 150))

	routes, err := sb.client.ListRoutes(context.Background())

	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "Vail, CO", routes[0].To)
	assert.Equal(t, 150, routes[0].DurationMinutes)
}

func TestBookingEndpointRoundTrip(t *testing.T) {
	sb := newSandbox(t)
	sb.mock.ExpectExec("INSERT INTO app_bookings").
		WithArgs(nil, "Custom", "Lionshead", "Minturn", "2026-12-24", "10:15", 4, 1, 3,
			"UA 123", "Dana", "555", "555", nil, nil, "pending").
		WillReturnResult(sqlmock.NewResult(101, 1))

	resp, err := sb.client.CreateBooking(context.Background(), models.BookingRequest{
		RouteName:       "Custom",
		PickupLocation:  "Lionshead",
		DropoffLocation: "Minturn",
		Date:            "2026-12-24",
		Time:            "10:15",
		Passengers:      4,
		ChildSeats:      1,
		Luggage:         3,
		FlightNumber:    "UA 123",
		Name:            "Dana",
		Phone:           "555",
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.BookingID)
	assert.Equal(t, int64(101), *resp.BookingID)
	assert.Equal(t, 1.0, testutil.ToFloat64(sb.metrics.BookingsCreated()))
	assert.NoError(t, sb.mock.ExpectationsWereMet())
}

func TestBookingEndpointBusinessRejection(t *testing.T) {
	sb := newSandbox(t)

	resp, err := sb.client.CreateBooking(context.Background(), models.BookingRequest{
		PickupLocation: "Lionshead", DropoffLocation: "Minturn", Date: "2026-12-24", Time: "10:15", Passengers: 1, Name: "Dana",
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Phone is required.", resp.Message)
	assert.Nil(t, resp.BookingID)
	assert.Zero(t, testutil.ToFloat64(sb.metrics.BookingsCreated()))
}

func TestBookingsEndpointRequiresPhone(t *testing.T) {
	sb := newSandbox(t)

	_, err := sb.client.ListBookings(context.Background(), "  ")

	require.Error(t, err)
	assert.True(t, domain.IsTransport(err))
	assert.Equal(t, "Phone is required to fetch bookings. (HTTP 400)", err.Error())
}

func TestBookingsEndpointListsByPhone(t *testing.T) {
	sb := newSandbox(t)
	sb.mock.ExpectQuery("FROM app_bookings").WithArgs("+15550100").
		WillReturnRows(sqlmock.NewRows([]string{"id", "route_name", "pickup_location", "dropoff_location", "trip_date", "trip_time", "passengers", "status"}).
			AddRow(5, "Eagle Airport to Vail", "EGE", "Vail", "2026-12-22", "09:00", 2, "confirmed"))

	out, err := sb.client.ListBookings(context.Background(), "+1 555 0100")

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, domain.StatusConfirmed, out[0].Status)
}

func TestSupportEndpoint(t *testing.T) {
	sb := newSandbox(t)
	sb.mock.ExpectExec("INSERT INTO app_support_tickets").
		WithArgs("Dana", nil, "dana@example.com", "Support request", "Need a child seat").
		WillReturnResult(sqlmock.NewResult(3, 1))

	resp, err := sb.client.SendSupport(context.Background(), models.SupportRequest{
		Name: "Dana", Email: "dana@example.com", Message: "Need a child seat",
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Support request received.", resp.Message)
	assert.Equal(t, 1.0, testutil.ToFloat64(sb.metrics.SupportTickets()))
}

func TestStorageFailureIs500(t *testing.T) {
	sb := newSandbox(t)
	sb.mock.ExpectQuery("FROM app_routes").WillReturnError(sql.ErrConnDone)

	_, err := sb.client.ListRoutes(context.Background())

	require.Error(t, err)
	assert.Equal(t, "Internal server error. (HTTP 500)", err.Error())
}

func TestHealthMetricsAndNoRoute(t *testing.T) {
	sb := newSandbox(t)

	res, err := http.Get(sb.srv.URL + "/health")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))

	res, err = http.Get(sb.srv.URL + "/wp-json/bdvail/v1/app/nothing")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, err = http.Get(sb.srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.True(t, strings.Contains(string(body), `bdvail_sandbox_http_requests_total{method="GET",path="/health",status="200"} 1`))
}

func TestHealthReportsDatabaseDown(t *testing.T) {
	r := NewRouter(intconfig.Env{}, Deps{Ping: func(context.Context) error { return sql.ErrConnDone }})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
}
