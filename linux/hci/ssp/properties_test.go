package ssp

import (
	"testing"

	"github.com/rigado/bredr/linux/hci"
)

func TestPropertiesFromKeyType(t *testing.T) {
	tests := []struct {
		keyType hci.LinkKeyType
		want    SecurityProperties
	}{
		{hci.KeyTypeCombination, SecurityProperties{}},
		{hci.KeyTypeLocalUnit, SecurityProperties{}},
		{hci.KeyTypeRemoteUnit, SecurityProperties{}},
		{hci.KeyTypeChangedCombination, SecurityProperties{}},
		{hci.KeyTypeUnauthenticatedP192, SecurityProperties{EncryptionKeySize: 16}},
		{hci.KeyTypeAuthenticatedP192, SecurityProperties{EncryptionKeySize: 16, Authenticated: true}},
		{hci.KeyTypeUnauthenticatedP256, SecurityProperties{EncryptionKeySize: 16, SecureConnections: true}},
		{hci.KeyTypeAuthenticatedP256, SecurityProperties{EncryptionKeySize: 16, Authenticated: true, SecureConnections: true}},
	}

	for _, tc := range tests {
		if got := PropertiesFromKeyType(tc.keyType); got != tc.want {
			t.Errorf("PropertiesFromKeyType(%s) = %+v, want %+v", tc.keyType, got, tc.want)
		}
	}
}

func TestPropertiesMeets(t *testing.T) {
	none := SecurityProperties{}
	unauth := SecurityProperties{EncryptionKeySize: 16}
	auth := SecurityProperties{EncryptionKeySize: 16, Authenticated: true}
	authSC := SecurityProperties{EncryptionKeySize: 16, Authenticated: true, SecureConnections: true}

	tests := []struct {
		props SecurityProperties
		req   SecurityRequirements
		want  bool
	}{
		{none, SecurityRequirements{}, false},
		{unauth, SecurityRequirements{}, true},
		{unauth, SecurityRequirements{Authentication: true}, false},
		{auth, SecurityRequirements{Authentication: true}, true},
		{auth, SecurityRequirements{SecureConnections: true}, false},
		{auth, SecurityRequirements{Authentication: true, SecureConnections: true}, false},
		{authSC, SecurityRequirements{Authentication: true, SecureConnections: true}, true},
		{authSC, SecurityRequirements{}, true},
	}

	for _, tc := range tests {
		if got := tc.props.Meets(tc.req); got != tc.want {
			t.Errorf("%+v meets %+v = %v, want %v", tc.props, tc.req, got, tc.want)
		}
	}
}
