package projectors

import (
	"context"
	"strings"

	"bdvail/internal/domain/models"
)

const msgTripsTransport = "Failed to load bookings."

type BookingLister interface {
	GetBookings(ctx context.Context, phone string) ([]models.Booking, error)
}

// TripsState carries the bookings of the last phone; Key is that phone.
type TripsState = State[[]models.Booking]

// TripsProjector drives the "My trips" screen.
type TripsProjector struct {
	repo  BookingLister
	store *Store[TripsState]
}

func NewTripsProjector(repo BookingLister) *TripsProjector {
	return &TripsProjector{repo: repo, store: NewStore(TripsState{})}
}

func (p *TripsProjector) State() TripsState { return p.store.Get() }

func (p *TripsProjector) Subscribe() (<-chan TripsState, func()) { return p.store.Subscribe() }

// Load fetches the bookings made with phone. A blank phone fails locally.
// The phone is recorded before the call resolves so Refresh can reuse it
// even when this load fails.
func (p *TripsProjector) Load(ctx context.Context, phone string) TripsState {
	phone = strings.TrimSpace(phone)
	return run(ctx, p.store, attempt[[]models.Booking]{
		name:     "list bookings",
		key:      phone,
		validate: func() error { return ValidateTripPhone(phone) },
		call: func(ctx context.Context) ([]models.Booking, error) {
			return p.repo.GetBookings(ctx, phone)
		},
		project: func(b []models.Booking) Result[[]models.Booking] {
			if b == nil {
				b = []models.Booking{}
			}
			return succeeded(b)
		},
		transportFallback: msgTripsTransport,
	})
}

// Refresh reloads with the last used phone. Without one it does nothing.
func (p *TripsProjector) Refresh(ctx context.Context) TripsState {
	last := p.store.Get().Key
	if strings.TrimSpace(last) == "" {
		return p.store.Get()
	}
	return p.Load(ctx, last)
}

func (p *TripsProjector) Reset() {
	p.store.Supersede(TripsState{})
}

// TripGroups splits bookings the way the trips screen tabs them.
type TripGroups struct {
	Upcoming []models.Booking
	History  []models.Booking
	// Other holds statuses this client does not know.
	Other []models.Booking
}

func GroupTrips(bookings []models.Booking) TripGroups {
	var g TripGroups
	for _, b := range bookings {
		switch {
		case b.Status.Upcoming():
			g.Upcoming = append(g.Upcoming, b)
		case b.Status.Past():
			g.History = append(g.History, b)
		default:
			g.Other = append(g.Other, b)
		}
	}
	return g
}
