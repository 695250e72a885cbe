package ssp

import (
	"github.com/pkg/errors"

	"github.com/rigado/bredr/linux/hci"
)

// Resolution errors delivered to InitiatePairing callbacks and the
// permanent status callback. Use errors.Cause to classify a wrapped
// failure.
var (
	// ErrNotSupported reports a controller event that arrived outside
	// the state expecting it.
	ErrNotSupported = errors.New("pairing event not supported in current state")

	// ErrNotReady reports that no pairing delegate is available. The
	// state machine returns to idle; a later attempt may succeed.
	ErrNotReady = errors.New("no pairing delegate available")

	// ErrCanceled reports a request submitted after pairing on this
	// link permanently failed.
	ErrCanceled = errors.New("pairing canceled")

	// ErrInsufficientSecurity reports a negotiated or stored key that
	// does not meet a caller's requirements, or a controller-reported
	// authentication property that contradicts the local prediction.
	ErrInsufficientSecurity = errors.New("insufficient security")

	// ErrPairingFailed is the generic procedure failure; controller
	// statuses wrap it.
	ErrPairingFailed = errors.New("pairing failed")

	// ErrLinkDisconnected reports teardown of the link while requests
	// were outstanding.
	ErrLinkDisconnected = errors.New("link disconnected")
)

// statusErr converts a non-success controller status into a resolution
// error carrying the status text.
func statusErr(status hci.ErrCode) error {
	return errors.Wrapf(ErrPairingFailed, "controller status: %s", status)
}
