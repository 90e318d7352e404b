package book

import "errors"

var (
	ErrUnknownVenue    = errors.New("unknown venue")
	ErrUnknownSide     = errors.New("unknown side")
	ErrPriceOutOfRange = errors.New("price out of range")
	ErrDuplicateOrder  = errors.New("duplicate order id")
	ErrBadEvent        = errors.New("malformed event")
)
