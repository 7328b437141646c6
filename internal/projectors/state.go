package projectors

import (
	"strings"
	"sync"

	"bdvail/internal/domain"
	"bdvail/internal/utils"
)

type Outcome int

const (
	Unset Outcome = iota
	Success
	Failure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unset"
	}
}

// Result is the outcome of one attempt. Value is meaningful on Success;
// Message and Err on Failure.
type Result[T any] struct {
	Outcome Outcome
	Value   T
	Message string
	Err     error
}

func succeeded[T any](v T) Result[T] {
	return Result[T]{Outcome: Success, Value: v}
}

// failed derives the user-visible message from err, or fallback when err
// says nothing.
func failed[T any](err error, fallback string) Result[T] {
	msg := ""
	if err != nil {
		msg = strings.TrimSpace(err.Error())
	}
	if msg == "" {
		msg = fallback
	}
	return Result[T]{Outcome: Failure, Message: msg, Err: err}
}

// rejected is the failure for a business rejection: the server's message,
// or fallback when it sent none.
func rejected[T any](op, serverMsg, fallback string) Result[T] {
	msg := utils.FirstNonBlank(serverMsg, fallback)
	return Result[T]{Outcome: Failure, Message: msg, Err: domain.RejectedError{Op: op, Msg: msg}}
}

// State is what a screen renders.
type State[T any] struct {
	InProgress bool
	Result     Result[T]
	// Key is the query key of the latest attempt (the phone for trip
	// listing). It is recorded when the attempt starts.
	Key string
}

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseInFlight  Phase = "in_flight"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

func (s State[T]) Phase() Phase {
	switch {
	case s.InProgress:
		return PhaseInFlight
	case s.Result.Outcome == Success:
		return PhaseSucceeded
	case s.Result.Outcome == Failure:
		return PhaseFailed
	default:
		return PhaseIdle
	}
}

// Store holds one state value. Every attempt takes a generation token when
// it starts; a result is applied only while its token is still the newest,
// so a call that resolves after a newer attempt began is dropped instead of
// overwriting that attempt's state.
type Store[S any] struct {
	mu   sync.Mutex
	val  S
	gen  uint64
	subs map[int]chan S
	next int
}

func NewStore[S any](initial S) *Store[S] {
	return &Store[S]{val: initial, subs: map[int]chan S{}}
}

// Get returns the current value.
func (s *Store[S]) Get() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val
}

// Subscribe returns a channel that always holds the latest value: the
// current one is delivered immediately and stale undelivered values are
// replaced. Call cancel to stop and close the channel.
func (s *Store[S]) Subscribe() (<-chan S, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	ch := make(chan S, 1)
	ch <- s.val
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Supersede starts a new attempt: v replaces the state and every older
// token becomes stale. It returns the new attempt's token.
func (s *Store[S]) Supersede(v S) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.setLocked(v)
	return s.gen
}

// Commit applies v if token is still the newest. It reports whether v was
// applied.
func (s *Store[S]) Commit(token uint64, v S) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.gen {
		return false
	}
	s.setLocked(v)
	return true
}

func (s *Store[S]) setLocked(v S) {
	s.val = v
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}
