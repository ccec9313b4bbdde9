package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateSlot      = errors.New("slot already booked")
	ErrProviderNotFound   = errors.New("provider not found")
	ErrLedgerNotHydrated  = errors.New("booking ledger not hydrated")
	ErrSlotUnavailable    = errors.New("slot not offered by provider on date")
	ErrInvalidTimeFormat  = errors.New("invalid time format")
	ErrInvalidDate        = errors.New("invalid date")
	ErrProviderFeedFailed = errors.New("provider feed fetch failed")
)

// FormatError reports a time or date string that could not be parsed.
// It is local to a single availability window.
type FormatError struct {
	Value string
	Err   error
}

func NewFormatError(value string, err error) *FormatError {
	return &FormatError{Value: value, Err: err}
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err.Error(), e.Value)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// FetchError reports a failed provider feed request.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrProviderFeedFailed, e.Err}
	}
	return []error{ErrProviderFeedFailed}
}
