package slotsort

import (
	"errors"
	"fmt"
)

var ErrInvalidRange = errors.New("invalid sort range")

// RangeError is returned by Sort before any slot is touched when to < from.
type RangeError struct {
	From int
	To   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: 'to' must be >= 'from', got from=%d and to=%d", ErrInvalidRange, e.From, e.To)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}
