package bredr

// PairingDelegate surfaces Secure Simple Pairing prompts to a user and
// returns answers asynchronously. All replies may arrive after the
// triggering call has returned; the stack never blocks on them.
//
// A delegate may be absent at any given moment (no UI attached). The
// pairing engine treats absence as a recoverable "not ready" condition,
// not an error in the delegate contract.
type PairingDelegate interface {
	// IOCapability reports the local device's current input/output
	// ability. Consulted once per pairing procedure.
	IOCapability() IOCapability

	// DisplayPasskey shows a 6-digit passkey for the peer to enter on
	// its side. confirm is invoked once the display is acknowledged;
	// it is safe to ignore for display-only flows.
	DisplayPasskey(peer Addr, passkey uint32, confirm func(ok bool))

	// ConfirmPasskey shows a 6-digit passkey for numeric comparison and
	// asks whether it matches the one shown on the peer.
	ConfirmPasskey(peer Addr, passkey uint32, confirm func(ok bool))

	// RequestConsent asks for bare yes/no consent to pair with the peer.
	RequestConsent(peer Addr, confirm func(ok bool))

	// RequestPasskey asks the user to type the passkey shown on the
	// peer. A negative reply rejects the pairing.
	RequestPasskey(peer Addr, respond func(passkey int64))

	// PairingComplete reports the outcome of a pairing procedure.
	// err is nil on success.
	PairingComplete(peer Addr, err error)
}
