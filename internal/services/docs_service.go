package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"bdvail/internal/domain"
	"bdvail/internal/domain/models"
	"bdvail/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the booking confirmation ticket.
type DocsService struct {
	RequestID string
	Loader    func(ctx context.Context, bookingID int64) (TicketData, error)
	Now       func() time.Time
}

// TicketData is everything printed on a ticket.
type TicketData struct {
	BookingID       int64
	RouteName       string
	PickupLocation  string
	DropoffLocation string
	Date            string
	Time            string
	Passengers      int
	Status          domain.Status
	PassengerName   string
	PassengerPhone  string
}

// BookingLister is the trips query the ticket loader reads through.
type BookingLister interface {
	GetBookings(ctx context.Context, phone string) ([]models.Booking, error)
}

// TripsLoader finds a booking among the trips listed for phone. A booking
// that is not listed yields domain.NotFoundError.
func TripsLoader(repo BookingLister, name, phone string) func(context.Context, int64) (TicketData, error) {
	return func(ctx context.Context, bookingID int64) (TicketData, error) {
		if utils.IsBlank(phone) {
			return TicketData{}, domain.ValidationError{Field: "phone", Msg: "Phone is required to fetch bookings."}
		}
		bookings, err := repo.GetBookings(ctx, strings.TrimSpace(phone))
		if err != nil {
			return TicketData{}, err
		}
		for _, b := range bookings {
			if b.ID != bookingID {
				continue
			}
			return TicketData{
				BookingID:       b.ID,
				RouteName:       b.RouteName,
				PickupLocation:  b.PickupLocation,
				DropoffLocation: b.DropoffLocation,
				Date:            b.Date,
				Time:            b.Time,
				Passengers:      b.Passengers,
				Status:          b.Status,
				PassengerName:   name,
				PassengerPhone:  phone,
			}, nil
		}
		return TicketData{}, domain.NotFoundError{Resource: fmt.Sprintf("booking #%d", bookingID)}
	}
}

// GenerateTicket returns the PDF bytes and a suggested file name.
func (s DocsService) GenerateTicket(ctx context.Context, bookingID int64) ([]byte, string, error) {
	if bookingID <= 0 {
		return nil, "", domain.ValidationError{Field: "id", Msg: "booking id must be positive"}
	}
	if s.Loader == nil {
		return nil, "", domain.InternalError{Msg: "ticket loader not configured"}
	}
	data, err := s.Loader(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_ticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildTicketPDF(data, s.now())
}

func (s DocsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func buildTicketPDF(d TicketData, issued time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("BDVail Transfers booking", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BDVail Transfers")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 13)
	pdf.Cell(0, 8, "Booking confirmation")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking code : BDV-%06d", d.BookingID),
		fmt.Sprintf("Status       : %s", utils.Safe(d.Status.Label(), "-")),
		fmt.Sprintf("Route        : %s", utils.Safe(d.RouteName, "-")),
		fmt.Sprintf("Pickup       : %s", utils.Safe(d.PickupLocation, "-")),
		fmt.Sprintf("Dropoff      : %s", utils.Safe(d.DropoffLocation, "-")),
		fmt.Sprintf("Date / time  : %s %s", utils.Safe(utils.DateOnly(d.Date), "-"), utils.Safe(utils.TimeHM(d.Time), "")),
		fmt.Sprintf("Passengers   : %d", d.Passengers),
		fmt.Sprintf("Name         : %s", utils.Safe(d.PassengerName, "-")),
		fmt.Sprintf("Phone        : %s", utils.Safe(d.PassengerPhone, "-")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please show this confirmation to your driver. Issued "+issued.Format("2006-01-02 15:04")+".", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "render ticket", Err: err}
	}

	filename := fmt.Sprintf("BDVAIL_%d_%s.pdf", d.BookingID, safeFilenamePart(d.PassengerName))
	return buf.Bytes(), filename, nil
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
