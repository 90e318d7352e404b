package feed

import "errors"

var (
	errUnknownEventKind = errors.New("unknown event kind")
	errMissingSymbol    = errors.New("event missing symbol")
)
