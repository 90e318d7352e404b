package fixgateway

import (
	"github.com/quickfixgo/quickfix"
)

type FixGatewayConfig struct {
	ConfigFilepath string
}

// MDSubscription tracks one session's standing market-data subscription for
// a symbol.
type MDSubscription struct {
	SessionID quickfix.SessionID
	MDReqID   string
	Symbol    string
}
