package projectors

import (
	"fmt"
	"strings"

	"bdvail/internal/domain"
	"bdvail/internal/domain/models"
	"bdvail/internal/utils"
)

const (
	msgPickupRequired   = "Pickup location is required."
	msgDropoffRequired  = "Dropoff location is required."
	msgDateRequired     = "Date is required."
	msgTimeRequired     = "Time is required."
	msgPassengersMin    = "Passengers must be greater than 0."
	msgNameRequired     = "Name is required."
	msgPhoneRequired    = "Phone is required."
	msgMessageRequired  = "Message is required."
	msgContactRequired  = "Please provide at least phone or email so we can contact you."
	msgTripPhoneMissing = "Phone is required to fetch bookings."
)

// ContactRule decides which contact details a booking must carry.
type ContactRule int

const (
	// ContactPhone requires a phone number.
	ContactPhone ContactRule = iota
	// ContactPhoneOrEmail accepts either a phone number or an email.
	ContactPhoneOrEmail
)

func (r ContactRule) String() string {
	if r == ContactPhoneOrEmail {
		return "phone_or_email"
	}
	return "phone"
}

func ParseContactRule(s string) (ContactRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "phone":
		return ContactPhone, nil
	case "phone_or_email", "phone-or-email", "either":
		return ContactPhoneOrEmail, nil
	default:
		return ContactPhone, fmt.Errorf("unknown contact rule %q", s)
	}
}

// BookingPolicy holds the booking checks that differ between app
// revisions.
type BookingPolicy struct {
	Contact     ContactRule
	RequireTime bool
}

// DefaultBookingPolicy requires a phone and a pickup time.
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{Contact: ContactPhone, RequireTime: true}
}

// NewBookingPolicy builds a policy from a contact rule name and the
// time requirement. An unknown rule yields the default policy and an error.
func NewBookingPolicy(contactRule string, requireTime bool) (BookingPolicy, error) {
	rule, err := ParseContactRule(contactRule)
	if err != nil {
		return DefaultBookingPolicy(), err
	}
	return BookingPolicy{Contact: rule, RequireTime: requireTime}, nil
}

// ValidateBooking checks the required fields in form order and returns the
// first problem.
func ValidateBooking(req models.BookingRequest, policy BookingPolicy) error {
	switch {
	case utils.IsBlank(req.PickupLocation):
		return domain.ValidationError{Field: "pickupLocation", Msg: msgPickupRequired}
	case utils.IsBlank(req.DropoffLocation):
		return domain.ValidationError{Field: "dropoffLocation", Msg: msgDropoffRequired}
	case utils.IsBlank(req.Date):
		return domain.ValidationError{Field: "date", Msg: msgDateRequired}
	case policy.RequireTime && utils.IsBlank(req.Time):
		return domain.ValidationError{Field: "time", Msg: msgTimeRequired}
	case req.Passengers <= 0:
		return domain.ValidationError{Field: "passengers", Msg: msgPassengersMin}
	case utils.IsBlank(req.Name):
		return domain.ValidationError{Field: "name", Msg: msgNameRequired}
	}

	switch policy.Contact {
	case ContactPhoneOrEmail:
		if utils.IsBlank(req.Phone) && utils.IsBlank(req.Email) {
			return domain.ValidationError{Field: "phone", Msg: msgContactRequired}
		}
	default:
		if utils.IsBlank(req.Phone) {
			return domain.ValidationError{Field: "phone", Msg: msgPhoneRequired}
		}
	}
	// route id/name are optional: custom routes are allowed
	return nil
}

func ValidateSupport(req models.SupportRequest) error {
	switch {
	case utils.IsBlank(req.Name):
		return domain.ValidationError{Field: "name", Msg: msgNameRequired}
	case utils.IsBlank(req.Message):
		return domain.ValidationError{Field: "message", Msg: msgMessageRequired}
	case utils.IsBlank(req.Phone) && utils.IsBlank(req.Email):
		return domain.ValidationError{Field: "contact", Msg: msgContactRequired}
	}
	return nil
}

func ValidateTripPhone(phone string) error {
	if utils.IsBlank(phone) {
		return domain.ValidationError{Field: "phone", Msg: msgTripPhoneMissing}
	}
	return nil
}
