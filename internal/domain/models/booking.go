package models

import "bdvail/internal/domain"

// BookingRequest is what the app posts when a passenger books a transfer.
// Date is "2006-01-02", Time is "15:04".
type BookingRequest struct {
	RouteID         *int64 `json:"routeId,omitempty"`
	RouteName       string `json:"routeName,omitempty"`
	PickupLocation  string `json:"pickupLocation"`
	DropoffLocation string `json:"dropoffLocation"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Passengers      int    `json:"passengers"`
	ChildSeats      int    `json:"childSeats"`
	Luggage         int    `json:"luggage"`
	FlightNumber    string `json:"flightNumber,omitempty"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email,omitempty"`
	Comment         string `json:"comment,omitempty"`
}

// BookingResponse answers a booking request. BookingID is set only when
// Success is true.
type BookingResponse struct {
	Success   bool   `json:"success"`
	BookingID *int64 `json:"bookingId,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Booking is an existing booking as listed on the "My trips" screen.
type Booking struct {
	ID              int64         `json:"id"`
	RouteName       string        `json:"routeName"`
	PickupLocation  string        `json:"pickupLocation"`
	DropoffLocation string        `json:"dropoffLocation"`
	Date            string        `json:"date"`
	Time            string        `json:"time"`
	Passengers      int           `json:"passengers"`
	Status          domain.Status `json:"status"`
}
