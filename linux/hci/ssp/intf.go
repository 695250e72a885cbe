package ssp

import (
	"github.com/rigado/bredr"
	"github.com/rigado/bredr/linux/hci"
)

// LinkOwner is the connection object owning exactly one PairingState.
// It supplies the controller command surface the state machine needs
// and the identity of the link.
type LinkOwner interface {
	// SendAuthenticationRequest issues the Authentication Requested
	// command for this link. Fire and forget; the outcome arrives as
	// link key / IO capability events.
	SendAuthenticationRequest() error

	// StartEncryption issues Set Connection Encryption. Returns false
	// if the request could not even be started.
	StartEncryption() bool

	// SetLinkKey stores the link's current key slot.
	SetLinkKey(key hci.LinkKey, keyType hci.LinkKeyType)

	// LinkKeyType returns the type of the link's current key, if one
	// has been negotiated.
	LinkKeyType() (hci.LinkKeyType, bool)

	// Handle identifies the link for logging and the status callback.
	Handle() uint16

	// PeerAddr is the peer's BD_ADDR.
	PeerAddr() bredr.Addr
}

// StatusCallback is the permanent per-link notification supplied at
// construction, invoked on every procedure resolution. err is nil on
// success.
type StatusCallback func(handle uint16, err error)

// ResultCallback resolves one InitiatePairing request. Invoked exactly
// once per request.
type ResultCallback func(err error)

// DelegateProvider returns the currently attached pairing delegate, or
// nil if none is available right now.
type DelegateProvider func() bredr.PairingDelegate
