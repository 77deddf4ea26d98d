// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInsufficientSamples = errors.New("insufficient samples in rolling window")
	ErrDegenerateDomain    = errors.New("degenerate price domain")
	ErrFeedDisconnected    = errors.New("live feed disconnected")
	ErrUnknownTimeframe    = errors.New("unknown timeframe")
	ErrConnectionFailed    = errors.New("connection failed")
	ErrTimeout             = errors.New("operation timed out")
	ErrConfigInvalid       = errors.New("invalid configuration")
	ErrDataNotFound        = errors.New("data not found")
	ErrDatabaseError       = errors.New("database error")
)

// InvalidStrategyError represents a strategy-authoring validation failure.
// It is the only error class surfaced to the user interactively; it blocks
// the save that produced it.
type InvalidStrategyError struct {
	StrategyType string
	Field        string
	Value        interface{}
	Reason       string
}

func (e *InvalidStrategyError) Error() string {
	return fmt.Sprintf("invalid %s strategy: %s (%v): %s", e.StrategyType, e.Field, e.Value, e.Reason)
}

// NewInvalidStrategyError creates a new InvalidStrategyError.
func NewInvalidStrategyError(strategyType, field string, value interface{}, reason string) *InvalidStrategyError {
	return &InvalidStrategyError{
		StrategyType: strategyType,
		Field:        field,
		Value:        value,
		Reason:       reason,
	}
}

// FeedError represents an error from the live tick feed.
type FeedError struct {
	URL string
	Op  string
	Err error
}

func (e *FeedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("feed error [%s] %s: %v", e.URL, e.Op, e.Err)
	}
	return fmt.Sprintf("feed error [%s] %s", e.URL, e.Op)
}

func (e *FeedError) Unwrap() error {
	return e.Err
}

// NewFeedError creates a new FeedError.
func NewFeedError(url, op string, err error) *FeedError {
	return &FeedError{URL: url, Op: op, Err: err}
}

// StoreError represents an error from the candle store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
