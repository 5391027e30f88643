package session

import (
	"context"
	"sync"

	"github.com/idlab-discover/aqpredict-cli/internal/apperr"
	"github.com/idlab-discover/aqpredict-cli/internal/aqi"
	"github.com/idlab-discover/aqpredict-cli/internal/predictor"
)

// Observer is called after every transition with the previous and new state.
type Observer func(from, to State)

// Controller owns the view state of one session. It is the only holder of
// mutable session state.
//
// Transitions are checked and set under a mutex; the lock is never held
// while a request is in flight. There is no cancellation and no timeout:
// once Run has started, the state stays Submitting until the client returns.
type Controller struct {
	client predictor.Client

	mu        sync.Mutex
	state     State
	running   bool // a Run call owns the current Submitting cycle
	observers []Observer
}

// New returns a Controller in Idle.
func New(client predictor.Client) *Controller {
	c := &Controller{client: client, state: idle()}
	c.OnChange(logTransition)
	return c
}

// OnChange registers an observer.
func (c *Controller) OnChange(fn Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Begin moves the session from Idle, Success or Failure to Submitting,
// discarding any held prediction or error. It reports false, and changes
// nothing, while a request is already in flight.
func (c *Controller) Begin() bool {
	return c.transition(func(cur State) (State, bool) {
		if cur.Phase == Submitting {
			return cur, false
		}
		c.running = false
		return submitting(), true
	})
}

// Run issues exactly one prediction request and records its outcome.
// It must follow a successful Begin, and only the first Run of a cycle calls
// the client; any other call returns the current state.
func (c *Controller) Run(ctx context.Context, r aqi.Readings) State {
	if !c.claim() {
		logger.Warn().Msg("run without begin ignored")
		return c.State()
	}

	pred, err := c.client.Predict(ctx, r)

	next := success(pred)
	if err != nil {
		next = failure(err.Error())
	} else if pred == nil {
		next = failure(predictor.DefaultMessage(predictor.PathPredict))
	}
	recorded := c.transition(func(cur State) (State, bool) {
		if cur.Phase != Submitting {
			return cur, false
		}
		c.running = false
		return next, true
	})
	if !recorded {
		return c.State()
	}
	return next
}

// Submit runs Begin and Run. While another submission is in flight it
// returns the unchanged state and apperr.ErrInFlight without calling the
// client. Prediction failures are not errors: they land in Failure.
func (c *Controller) Submit(ctx context.Context, r aqi.Readings) (State, error) {
	if !c.Begin() {
		return c.State(), apperr.ErrInFlight
	}
	return c.Run(ctx, r), nil
}

// Reset returns to Idle from Success or Failure. From Idle or Submitting it
// does nothing.
func (c *Controller) Reset() State {
	c.transition(func(cur State) (State, bool) {
		switch cur.Phase {
		case Success, Failure:
			return idle(), true
		default:
			return cur, false
		}
	})
	return c.State()
}

// DismissError returns to Idle from Failure. In any other state it does
// nothing.
func (c *Controller) DismissError() State {
	c.transition(func(cur State) (State, bool) {
		if cur.Phase != Failure {
			return cur, false
		}
		return idle(), true
	})
	return c.State()
}

// claim reserves the current Submitting cycle for one Run call.
func (c *Controller) claim() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != Submitting || c.running {
		return false
	}
	c.running = true
	return true
}

// transition applies fn atomically and notifies observers outside the lock
// when the state changed.
func (c *Controller) transition(fn func(State) (State, bool)) bool {
	c.mu.Lock()
	from := c.state
	to, changed := fn(from)
	if !changed {
		c.mu.Unlock()
		return false
	}
	c.state = to
	observers := append([]Observer(nil), c.observers...)
	c.mu.Unlock()

	for _, o := range observers {
		o(from, to)
	}
	return true
}
