// Package errors defines the unified error values shared across SDK sub-packages.
package errors

import "errors"

var (
	// ErrUnknownFeeToken is returned when a fee or unlock asset references a token
	// that is absent from the supplied balance list. This is a configuration bug,
	// not a user error, and must not be retried.
	ErrUnknownFeeToken = errors.New("unknown fee token")

	// ErrTokenNotFound is returned by registry lookups for unlisted tokens.
	ErrTokenNotFound = errors.New("token not found in known tokens")

	// ErrInsufficientOrders is raised by call sites that require a fully fillable
	// amount. The matcher itself only reports the shortfall; see orders.MatchResult.
	ErrInsufficientOrders = errors.New("there are no enough orders to fill this amount")

	// ErrInvalidAssetData is returned when asset data bytes cannot be decoded as an
	// ERC20 asset reference.
	ErrInvalidAssetData = errors.New("invalid asset data")

	// ErrInvalidSubscription is returned for malformed WebSocket subscriptions.
	ErrInvalidSubscription = errors.New("invalid subscription")

	// ErrExecutionDisabled is returned when live submission is attempted while the
	// trader runs in dry-run mode.
	ErrExecutionDisabled = errors.New("execution disabled")
)
