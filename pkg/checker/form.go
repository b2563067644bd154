// Package checker holds the price checker form: the input text, the last
// price result and the lifecycle of the one check that may be in flight.
package checker

import (
	"context"
	"strings"
	"sync"
)

type Form struct {
	fetcher  Fetcher
	notifier Notifier

	mu    *sync.Mutex
	input string
	price *string
	state State
}

func NewForm(fetcher Fetcher, notifier Notifier) *Form {
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}
	return &Form{
		fetcher:  fetcher,
		notifier: notifier,
		mu:       &sync.Mutex{},
		state:    StateIdle,
	}
}

// SetInput replaces the input text. Any string is accepted.
func (f *Form) SetInput(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input = s
}

func (f *Form) Input() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

// Price returns the last price result, if any.
func (f *Form) Price() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.price == nil {
		return "", false
	}
	return *f.price, true
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form) Loading() bool {
	return f.State() == StateLoading
}

func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := Snapshot{
		Input:   f.input,
		Loading: f.state == StateLoading,
	}
	if f.price != nil {
		s.Price = *f.price
		s.HasPrice = true
	}
	return s
}

// Begin starts a check. It returns the raw input to send to the endpoint.
//
// Blank input is reported to the user and leaves the state untouched. A form
// that is already loading refuses with ErrCheckInFlight.
func (f *Form) Begin() (string, error) {
	f.mu.Lock()
	if f.state == StateLoading {
		f.mu.Unlock()
		return "", ErrCheckInFlight
	}
	if strings.TrimSpace(f.input) == "" {
		f.mu.Unlock()
		f.notifier.Notify(MsgEmptyInput)
		return "", ErrEmptyInput
	}

	f.state = StateLoading
	f.price = nil
	productURL := f.input
	f.mu.Unlock()

	return productURL, nil
}

// Settle completes the check started by Begin. It is a no-op when no check is in flight.
func (f *Form) Settle(res Result, err error) {
	f.mu.Lock()
	if f.state != StateLoading {
		f.mu.Unlock()
		return
	}
	if err == nil {
		price := res.Price
		if price == "" {
			price = NoPriceFound
		}
		f.price = &price
	}
	f.mu.Unlock()

	// the notification is shown while still loading; idle is always the last transition
	if err != nil {
		f.notifier.Notify(MsgFetchFailed)
	}

	f.mu.Lock()
	f.state = StateIdle
	f.mu.Unlock()
}

// Check runs a whole check synchronously. The returned error has already been
// shown to the user through the notifier.
func (f *Form) Check(ctx context.Context) error {
	productURL, err := f.Begin()
	if err != nil {
		return err
	}

	res, err := f.fetcher.FetchPrice(ctx, productURL)
	f.Settle(res, err)
	return err
}
