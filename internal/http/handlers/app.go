package handlers

import (
	"net/http"

	"bdvail/internal/domain/models"
	"bdvail/internal/http/middleware"
	"bdvail/internal/services"
	"bdvail/internal/storage"

	"github.com/gin-gonic/gin"
)

// App serves the mobile app endpoints.
type App struct {
	Routes   storage.RouteStore
	Bookings services.BookingService
	Support  services.SupportService
	Metrics  *middleware.Metrics
}

// ListRoutes answers GET app/routes with a bare JSON array.
func (a App) ListRoutes(c *gin.Context) {
	routes, err := a.Routes.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

// CreateBooking answers POST app/booking. Business rejections are a 200
// with success=false.
func (a App) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := a.Bookings
	svc.RequestID = middleware.GetRequestID(c)
	resp, err := svc.Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if resp.Success {
		a.Metrics.IncBookingCreated()
	}
	c.JSON(http.StatusOK, resp)
}

// ListBookings answers GET app/bookings?phone=.
func (a App) ListBookings(c *gin.Context) {
	bookings, err := a.Bookings.ListByPhone(c.Request.Context(), c.Query("phone"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// SendSupport answers POST app/support.
func (a App) SendSupport(c *gin.Context) {
	var req models.SupportRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := a.Support
	svc.RequestID = middleware.GetRequestID(c)
	resp, err := svc.Submit(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if resp.Success {
		a.Metrics.IncSupportTicket()
	}
	c.JSON(http.StatusOK, resp)
}
