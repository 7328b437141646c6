package projectors

import (
	"context"

	"bdvail/internal/domain"
	"bdvail/internal/utils"

	"github.com/sirupsen/logrus"
)

// attempt describes one request/state cycle.
type attempt[T any] struct {
	name     string
	key      string
	validate func() error
	call     func(ctx context.Context) (T, error)
	// project maps a completed call to a result. Errors from call never
	// reach it.
	project func(T) Result[T]
	// transportFallback is shown when the call error has no text.
	transportFallback string
}

// run executes a: validation failure settles immediately without a remote
// call; otherwise the in-flight state is published, the call runs once and
// its result is committed unless a newer attempt started meanwhile. It
// returns the store's state after the attempt settles.
func run[T any](ctx context.Context, store *Store[State[T]], a attempt[T]) State[T] {
	log := utils.Log.WithFields(logrus.Fields{"module": "projector", "action": a.name})

	if a.validate != nil {
		if err := a.validate(); err != nil {
			store.Supersede(State[T]{Result: failed[T](err, err.Error())})
			log.WithError(err).Debug("validation failed")
			return store.Get()
		}
	}

	token := store.Supersede(State[T]{InProgress: true, Key: a.key})

	var res Result[T]
	v, err := a.call(ctx)
	if err != nil {
		res = failed[T](err, a.transportFallback)
		if !domain.IsTransport(err) && !domain.IsInternal(err) {
			res.Err = domain.TransportError{Op: a.name, Err: err}
		}
	} else {
		res = a.project(v)
	}

	if !store.Commit(token, State[T]{Result: res, Key: a.key}) {
		log.Debug("result dropped: superseded by a newer attempt")
	} else if res.Outcome == Failure {
		log.WithField("reason", res.Message).Info("request failed")
	}
	return store.Get()
}
