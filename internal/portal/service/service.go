// Package service holds the portal's business logic. Each component of the
// core (identity, organizations, memberships, invitations, documents,
// threads) gets one service struct over the store; HTTP handlers and tests
// are the only callers.
package service

import "errors"

// ErrInvalidState reports a state-machine guard violation (resolving a
// resolved thread, cancelling an accepted invitation). Unlike validation
// errors it is not retryable: the precondition cannot become true again.
var ErrInvalidState = errors.New("invalid state for operation")
