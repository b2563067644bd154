package checker

import (
	"context"
	"errors"
)

const (
	// NoPriceFound is stored as the price result when the endpoint answers without a price.
	NoPriceFound = "No price found"

	MsgEmptyInput  = "Please enter a product URL"
	MsgFetchFailed = "Error fetching price"
)

var (
	ErrEmptyInput    = errors.New("product URL is empty")
	ErrCheckInFlight = errors.New("a price check is already in flight")
)

// State is the lifecycle of a single check.
type State int

const (
	StateIdle State = iota
	StateLoading
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Result is what the price endpoint answered. An empty Price means no price was found.
type Result struct {
	Price string
}

// Fetcher asks the remote service for the price of productURL.
type Fetcher interface {
	FetchPrice(ctx context.Context, productURL string) (Result, error)
}

type FetcherFunc func(ctx context.Context, productURL string) (Result, error)

func (f FetcherFunc) FetchPrice(ctx context.Context, productURL string) (Result, error) {
	return f(ctx, productURL)
}

// Notifier shows a blocking message to the user.
type Notifier interface {
	Notify(message string)
}

type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) {
	f(message)
}

// Snapshot is a read-only copy of the form state, handed to renderers.
type Snapshot struct {
	Input    string
	Price    string
	HasPrice bool
	Loading  bool
}
