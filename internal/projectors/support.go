package projectors

import (
	"context"

	"bdvail/internal/domain/models"
)

const (
	msgSupportRejected  = "Failed to send support request."
	msgSupportTransport = "Network error while sending support request."
)

type SupportSender interface {
	SendSupport(ctx context.Context, req models.SupportRequest) (models.ApiResponse, error)
}

type SupportState = State[models.ApiResponse]

// SupportProjector drives the support form.
type SupportProjector struct {
	repo  SupportSender
	store *Store[SupportState]
}

func NewSupportProjector(repo SupportSender) *SupportProjector {
	return &SupportProjector{repo: repo, store: NewStore(SupportState{})}
}

func (p *SupportProjector) State() SupportState { return p.store.Get() }

func (p *SupportProjector) Subscribe() (<-chan SupportState, func()) { return p.store.Subscribe() }

func (p *SupportProjector) Reset() {
	p.store.Supersede(SupportState{})
}

// Send validates req and, when it passes, submits it.
func (p *SupportProjector) Send(ctx context.Context, req models.SupportRequest) SupportState {
	return run(ctx, p.store, attempt[models.ApiResponse]{
		name:     "send support",
		validate: func() error { return ValidateSupport(req) },
		call: func(ctx context.Context) (models.ApiResponse, error) {
			return p.repo.SendSupport(ctx, req)
		},
		project: func(resp models.ApiResponse) Result[models.ApiResponse] {
			if !resp.Success {
				return rejected[models.ApiResponse]("send support", resp.Message, msgSupportRejected)
			}
			return succeeded(resp)
		},
		transportFallback: msgSupportTransport,
	})
}
