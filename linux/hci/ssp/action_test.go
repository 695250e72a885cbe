package ssp

import (
	"testing"

	"github.com/rigado/bredr"
	"github.com/rigado/bredr/linux/hci"
)

var allCaps = []bredr.IOCapability{
	bredr.IOCapDisplayOnly,
	bredr.IOCapDisplayYesNo,
	bredr.IOCapKeyboardOnly,
	bredr.IOCapNoInputNoOutput,
}

func TestSelectInitiatorAction(t *testing.T) {
	tests := []struct {
		initiator, responder bredr.IOCapability
		want                 PairingAction
	}{
		{bredr.IOCapDisplayOnly, bredr.IOCapDisplayOnly, ActionAutomatic},
		{bredr.IOCapDisplayOnly, bredr.IOCapDisplayYesNo, ActionDisplayPasskey},
		{bredr.IOCapDisplayOnly, bredr.IOCapKeyboardOnly, ActionDisplayPasskey},
		{bredr.IOCapDisplayOnly, bredr.IOCapNoInputNoOutput, ActionAutomatic},

		{bredr.IOCapDisplayYesNo, bredr.IOCapDisplayOnly, ActionComparePasskey},
		{bredr.IOCapDisplayYesNo, bredr.IOCapDisplayYesNo, ActionDisplayPasskey},
		{bredr.IOCapDisplayYesNo, bredr.IOCapKeyboardOnly, ActionDisplayPasskey},
		{bredr.IOCapDisplayYesNo, bredr.IOCapNoInputNoOutput, ActionGetConsent},

		{bredr.IOCapKeyboardOnly, bredr.IOCapDisplayOnly, ActionRequestPasskey},
		{bredr.IOCapKeyboardOnly, bredr.IOCapDisplayYesNo, ActionRequestPasskey},
		{bredr.IOCapKeyboardOnly, bredr.IOCapKeyboardOnly, ActionRequestPasskey},
		{bredr.IOCapKeyboardOnly, bredr.IOCapNoInputNoOutput, ActionAutomatic},

		{bredr.IOCapNoInputNoOutput, bredr.IOCapDisplayOnly, ActionAutomatic},
		{bredr.IOCapNoInputNoOutput, bredr.IOCapDisplayYesNo, ActionAutomatic},
		{bredr.IOCapNoInputNoOutput, bredr.IOCapKeyboardOnly, ActionAutomatic},
		{bredr.IOCapNoInputNoOutput, bredr.IOCapNoInputNoOutput, ActionAutomatic},
	}

	for _, tc := range tests {
		got := SelectInitiatorAction(tc.initiator, tc.responder)
		if got != tc.want {
			t.Errorf("SelectInitiatorAction(%s, %s) = %s, want %s",
				tc.initiator, tc.responder, got, tc.want)
		}
	}
}

func TestSelectResponderAction(t *testing.T) {
	tests := []struct {
		initiator, responder bredr.IOCapability
		want                 PairingAction
	}{
		{bredr.IOCapDisplayOnly, bredr.IOCapDisplayOnly, ActionAutomatic},
		{bredr.IOCapDisplayOnly, bredr.IOCapDisplayYesNo, ActionComparePasskey},
		{bredr.IOCapDisplayOnly, bredr.IOCapKeyboardOnly, ActionRequestPasskey},
		{bredr.IOCapDisplayOnly, bredr.IOCapNoInputNoOutput, ActionAutomatic},

		{bredr.IOCapDisplayYesNo, bredr.IOCapDisplayOnly, ActionDisplayPasskey},
		{bredr.IOCapDisplayYesNo, bredr.IOCapDisplayYesNo, ActionComparePasskey},
		{bredr.IOCapDisplayYesNo, bredr.IOCapKeyboardOnly, ActionRequestPasskey},
		{bredr.IOCapDisplayYesNo, bredr.IOCapNoInputNoOutput, ActionAutomatic},

		{bredr.IOCapKeyboardOnly, bredr.IOCapDisplayOnly, ActionDisplayPasskey},
		{bredr.IOCapKeyboardOnly, bredr.IOCapDisplayYesNo, ActionDisplayPasskey},
		{bredr.IOCapKeyboardOnly, bredr.IOCapKeyboardOnly, ActionRequestPasskey},
		{bredr.IOCapKeyboardOnly, bredr.IOCapNoInputNoOutput, ActionAutomatic},

		{bredr.IOCapNoInputNoOutput, bredr.IOCapDisplayOnly, ActionAutomatic},
		{bredr.IOCapNoInputNoOutput, bredr.IOCapDisplayYesNo, ActionGetConsent},
		{bredr.IOCapNoInputNoOutput, bredr.IOCapKeyboardOnly, ActionGetConsent},
		{bredr.IOCapNoInputNoOutput, bredr.IOCapNoInputNoOutput, ActionAutomatic},
	}

	for _, tc := range tests {
		got := SelectResponderAction(tc.initiator, tc.responder)
		if got != tc.want {
			t.Errorf("SelectResponderAction(%s, %s) = %s, want %s",
				tc.initiator, tc.responder, got, tc.want)
		}
	}
}

func TestSelectExpectedEvent(t *testing.T) {
	tests := []struct {
		local, peer bredr.IOCapability
		want        PairingEvent
	}{
		{bredr.IOCapNoInputNoOutput, bredr.IOCapKeyboardOnly, EventUserConfirmationRequest},
		{bredr.IOCapKeyboardOnly, bredr.IOCapNoInputNoOutput, EventUserConfirmationRequest},
		{bredr.IOCapKeyboardOnly, bredr.IOCapDisplayOnly, EventUserPasskeyRequest},
		{bredr.IOCapKeyboardOnly, bredr.IOCapKeyboardOnly, EventUserPasskeyRequest},
		{bredr.IOCapDisplayOnly, bredr.IOCapKeyboardOnly, EventUserPasskeyNotification},
		{bredr.IOCapDisplayYesNo, bredr.IOCapKeyboardOnly, EventUserPasskeyNotification},
		{bredr.IOCapDisplayYesNo, bredr.IOCapDisplayYesNo, EventUserConfirmationRequest},
		{bredr.IOCapDisplayOnly, bredr.IOCapDisplayOnly, EventUserConfirmationRequest},
	}

	for _, tc := range tests {
		got := SelectExpectedEvent(tc.local, tc.peer)
		if got != tc.want {
			t.Errorf("SelectExpectedEvent(%s, %s) = %s, want %s",
				tc.local, tc.peer, got, tc.want)
		}
	}
}

func TestIsAuthenticatedSymmetric(t *testing.T) {
	for _, a := range allCaps {
		for _, b := range allCaps {
			if IsAuthenticated(a, b) != IsAuthenticated(b, a) {
				t.Errorf("IsAuthenticated(%s, %s) not symmetric", a, b)
			}
		}
	}
}

func TestIsAuthenticated(t *testing.T) {
	tests := []struct {
		local, peer bredr.IOCapability
		want        bool
	}{
		{bredr.IOCapNoInputNoOutput, bredr.IOCapKeyboardOnly, false},
		{bredr.IOCapNoInputNoOutput, bredr.IOCapDisplayYesNo, false},
		{bredr.IOCapDisplayYesNo, bredr.IOCapDisplayYesNo, true},
		{bredr.IOCapKeyboardOnly, bredr.IOCapDisplayOnly, true},
		{bredr.IOCapDisplayOnly, bredr.IOCapKeyboardOnly, true},
		{bredr.IOCapKeyboardOnly, bredr.IOCapKeyboardOnly, true},
		{bredr.IOCapDisplayOnly, bredr.IOCapDisplayOnly, false},
		{bredr.IOCapDisplayOnly, bredr.IOCapDisplayYesNo, false},
	}

	for _, tc := range tests {
		if got := IsAuthenticated(tc.local, tc.peer); got != tc.want {
			t.Errorf("IsAuthenticated(%s, %s) = %v, want %v", tc.local, tc.peer, got, tc.want)
		}
	}
}

func TestAuthRequirements(t *testing.T) {
	if got := InitiatorAuthRequirements(bredr.IOCapNoInputNoOutput); got != hci.AuthReqGeneralBonding {
		t.Errorf("InitiatorAuthRequirements(NoInputNoOutput) = %s", got)
	}
	for _, c := range allCaps {
		if c == bredr.IOCapNoInputNoOutput {
			continue
		}
		if got := InitiatorAuthRequirements(c); got != hci.AuthReqMITMGeneralBonding {
			t.Errorf("InitiatorAuthRequirements(%s) = %s", c, got)
		}
	}

	for _, a := range allCaps {
		for _, b := range allCaps {
			got := ResponderAuthRequirements(a, b)
			want := hci.AuthReqGeneralBonding
			if IsAuthenticated(a, b) {
				want = hci.AuthReqMITMGeneralBonding
			}
			if got != want {
				t.Errorf("ResponderAuthRequirements(%s, %s) = %s, want %s", a, b, got, want)
			}
		}
	}
}
