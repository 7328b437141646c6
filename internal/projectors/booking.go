package projectors

import (
	"context"

	"bdvail/internal/domain/models"
)

const (
	msgBookingRejected  = "Failed to create booking."
	msgBookingTransport = "Network error while creating booking."
)

type BookingCreator interface {
	CreateBooking(ctx context.Context, req models.BookingRequest) (models.BookingResponse, error)
}

type BookingState = State[models.BookingResponse]

// BookingProjector drives the booking form: validate, submit, expose the
// outcome.
type BookingProjector struct {
	repo   BookingCreator
	policy BookingPolicy
	store  *Store[BookingState]
}

func NewBookingProjector(repo BookingCreator, policy BookingPolicy) *BookingProjector {
	return &BookingProjector{
		repo:   repo,
		policy: policy,
		store:  NewStore(BookingState{}),
	}
}

func (p *BookingProjector) State() BookingState { return p.store.Get() }

func (p *BookingProjector) Subscribe() (<-chan BookingState, func()) { return p.store.Subscribe() }

func (p *BookingProjector) Policy() BookingPolicy { return p.policy }

// Reset returns the form to idle, e.g. after leaving the success screen.
// An in-flight submission is dropped when it resolves.
func (p *BookingProjector) Reset() {
	p.store.Supersede(BookingState{})
}

// Submit validates req and, when it passes, creates the booking. It blocks
// until the call resolves.
func (p *BookingProjector) Submit(ctx context.Context, req models.BookingRequest) BookingState {
	return run(ctx, p.store, attempt[models.BookingResponse]{
		name:     "create booking",
		validate: func() error { return ValidateBooking(req, p.policy) },
		call: func(ctx context.Context) (models.BookingResponse, error) {
			return p.repo.CreateBooking(ctx, req)
		},
		project: func(resp models.BookingResponse) Result[models.BookingResponse] {
			if !resp.Success {
				return rejected[models.BookingResponse]("create booking", resp.Message, msgBookingRejected)
			}
			return succeeded(resp)
		},
		transportFallback: msgBookingTransport,
	})
}
