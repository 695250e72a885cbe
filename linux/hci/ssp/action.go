package ssp

import (
	"github.com/rigado/bredr"
	"github.com/rigado/bredr/linux/hci"
)

// PairingAction is the user-interaction flow selected for one pairing
// procedure from both sides' IO capabilities.
type PairingAction int

const (
	// ActionAutomatic pairs without user interaction.
	ActionAutomatic PairingAction = iota

	// ActionGetConsent asks the user for bare yes/no consent.
	ActionGetConsent

	// ActionDisplayPasskey shows a passkey the peer will enter.
	ActionDisplayPasskey

	// ActionComparePasskey shows a passkey for numeric comparison
	// against the peer's display.
	ActionComparePasskey

	// ActionRequestPasskey asks the user to enter the passkey shown on
	// the peer.
	ActionRequestPasskey
)

var actionStrings = map[PairingAction]string{
	ActionAutomatic:      "automatic",
	ActionGetConsent:     "get consent",
	ActionDisplayPasskey: "display passkey",
	ActionComparePasskey: "compare passkey",
	ActionRequestPasskey: "request passkey",
}

func (a PairingAction) String() string {
	if s, ok := actionStrings[a]; ok {
		return s
	}
	return "unknown"
}

// PairingEvent is the on-link user-interaction event the controller is
// expected to deliver for the selected association model.
type PairingEvent int

const (
	EventUserConfirmationRequest PairingEvent = iota
	EventUserPasskeyRequest
	EventUserPasskeyNotification
)

func (e PairingEvent) String() string {
	switch e {
	case EventUserConfirmationRequest:
		return "user confirmation request"
	case EventUserPasskeyRequest:
		return "user passkey request"
	case EventUserPasskeyNotification:
		return "user passkey notification"
	default:
		return "unknown"
	}
}

// SelectInitiatorAction picks the association model for the initiating
// side. Checks are ordered; the first match wins
// [Vol 3, Part C, 5.2.2.6, Table 5.7 as approximated by this host].
func SelectInitiatorAction(initiator, responder bredr.IOCapability) PairingAction {
	if initiator == bredr.IOCapNoInputNoOutput {
		return ActionAutomatic
	}
	if responder == bredr.IOCapNoInputNoOutput {
		if initiator == bredr.IOCapDisplayYesNo {
			return ActionGetConsent
		}
		return ActionAutomatic
	}
	if initiator == bredr.IOCapKeyboardOnly {
		return ActionRequestPasskey
	}
	if responder == bredr.IOCapDisplayOnly {
		if initiator == bredr.IOCapDisplayYesNo {
			return ActionComparePasskey
		}
		return ActionAutomatic
	}
	return ActionDisplayPasskey
}

// SelectResponderAction picks the association model for the responding
// side. Mostly the initiator table with the arguments swapped, with two
// asymmetric cases.
func SelectResponderAction(initiator, responder bredr.IOCapability) PairingAction {
	if initiator == bredr.IOCapNoInputNoOutput && responder == bredr.IOCapKeyboardOnly {
		return ActionGetConsent
	}
	if initiator == bredr.IOCapDisplayYesNo && responder == bredr.IOCapDisplayYesNo {
		return ActionComparePasskey
	}
	return SelectInitiatorAction(responder, initiator)
}

// SelectExpectedEvent predicts which pairing event the controller will
// deliver to the local host for the given capability pair.
func SelectExpectedEvent(local, peer bredr.IOCapability) PairingEvent {
	if local == bredr.IOCapNoInputNoOutput || peer == bredr.IOCapNoInputNoOutput {
		return EventUserConfirmationRequest
	}
	if local == bredr.IOCapKeyboardOnly {
		return EventUserPasskeyRequest
	}
	if peer == bredr.IOCapKeyboardOnly {
		return EventUserPasskeyNotification
	}
	return EventUserConfirmationRequest
}

// IsAuthenticated predicts whether the association model for the given
// capability pair yields a MITM-protected key. Symmetric in its
// arguments.
func IsAuthenticated(local, peer bredr.IOCapability) bool {
	if local == bredr.IOCapNoInputNoOutput || peer == bredr.IOCapNoInputNoOutput {
		return false
	}
	if local == bredr.IOCapDisplayYesNo && peer == bredr.IOCapDisplayYesNo {
		return true
	}
	if local == bredr.IOCapKeyboardOnly || peer == bredr.IOCapKeyboardOnly {
		return true
	}
	return false
}

// InitiatorAuthRequirements computes the Authentication_Requirements
// parameter for the IO Capability Request Reply when initiating. Peer
// capabilities are unknown at that point, so the host asks for MITM
// protection whenever it could possibly be delivered.
func InitiatorAuthRequirements(local bredr.IOCapability) hci.AuthRequirements {
	if local == bredr.IOCapNoInputNoOutput {
		return hci.AuthReqGeneralBonding
	}
	return hci.AuthReqMITMGeneralBonding
}

// ResponderAuthRequirements computes the same parameter for the
// responding side, where both capabilities are already known.
func ResponderAuthRequirements(local, peer bredr.IOCapability) hci.AuthRequirements {
	if IsAuthenticated(local, peer) {
		return hci.AuthReqMITMGeneralBonding
	}
	return hci.AuthReqGeneralBonding
}
