package simtrade

import (
	"errors"
	"fmt"
)

// ErrValidation is the base of every error caused by an invalid request. A
// session is never modified when an operation fails with it.
var ErrValidation = errors.New("invalid request")

var (
	ErrInsufficientFunds   = fmt.Errorf("%w: insufficient funds", ErrValidation)
	ErrInsufficientShares  = fmt.Errorf("%w: insufficient shares", ErrValidation)
	ErrInvalidShareAmount  = fmt.Errorf("%w: share amount must be greater than 0", ErrValidation)
	ErrInvalidStartingCash = fmt.Errorf("%w: starting cash must be greater than 0", ErrValidation)
	ErrNotTradingDay       = fmt.Errorf("%w: not a trading day", ErrValidation)
	ErrInvalidAdvance      = fmt.Errorf("%w: advance count must be at least 1", ErrValidation)
	ErrInvalidName         = fmt.Errorf("%w: invalid game name", ErrValidation)
)

var (
	// ErrNoMoreData is returned when advancing past the last trading day.
	ErrNoMoreData = errors.New("cannot advance date further: reached end of available data")
	// ErrNoPrice is returned when a trade is requested on a date without a price.
	ErrNoPrice = errors.New("no price data available for current date")
	// ErrGameNotActive is returned when trading or advancing a paused or ended game.
	ErrGameNotActive = errors.New("game is not active")
	// ErrGameEnded is returned for any transition out of an ended game.
	ErrGameEnded = errors.New("game has ended")
)

// DataFormatError reports a raw price row that cannot be normalized.
// No series is produced when one occurs.
type DataFormatError struct {
	Row   int    // zero based index in the input rows, -1 for the whole input
	Field string // empty when the error is not about a single field
	Value string
	Err   error
}

func (e *DataFormatError) Error() string {
	switch {
	case e.Row < 0:
		return fmt.Sprintf("invalid price data: %v", e.Err)
	case e.Field == "":
		return fmt.Sprintf("invalid price data at row %d: %v", e.Row, e.Err)
	default:
		return fmt.Sprintf("invalid price data at row %d: field %s=%q: %v", e.Row, e.Field, e.Value, e.Err)
	}
}

func (e *DataFormatError) Unwrap() error { return e.Err }
