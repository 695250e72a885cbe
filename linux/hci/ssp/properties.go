package ssp

import "github.com/rigado/bredr/linux/hci"

// SecurityRequirements is the minimum a caller of InitiatePairing
// demands of the link. Immutable for the lifetime of the request.
type SecurityRequirements struct {
	Authentication    bool
	SecureConnections bool
}

// SecurityProperties describes the strength of a negotiated link key.
type SecurityProperties struct {
	EncryptionKeySize uint8
	Authenticated     bool
	SecureConnections bool
}

// HasSecurity reports whether the key provides any protection at all.
// Legacy (pre-SSP) key types yield properties with no security.
func (p SecurityProperties) HasSecurity() bool {
	return p.EncryptionKeySize > 0
}

// Meets reports whether a key with these properties satisfies req.
func (p SecurityProperties) Meets(req SecurityRequirements) bool {
	if !p.HasSecurity() {
		return false
	}
	if req.Authentication && !p.Authenticated {
		return false
	}
	if req.SecureConnections && !p.SecureConnections {
		return false
	}
	return true
}

// PropertiesFromKeyType derives the security properties implied by a
// controller-reported link key type. Debug combination keys must be
// filtered out by the caller before this point.
func PropertiesFromKeyType(t hci.LinkKeyType) SecurityProperties {
	switch t {
	case hci.KeyTypeUnauthenticatedP192:
		return SecurityProperties{EncryptionKeySize: hci.LinkKeySize}
	case hci.KeyTypeAuthenticatedP192:
		return SecurityProperties{EncryptionKeySize: hci.LinkKeySize, Authenticated: true}
	case hci.KeyTypeUnauthenticatedP256:
		return SecurityProperties{EncryptionKeySize: hci.LinkKeySize, SecureConnections: true}
	case hci.KeyTypeAuthenticatedP256:
		return SecurityProperties{EncryptionKeySize: hci.LinkKeySize, Authenticated: true, SecureConnections: true}
	default:
		// Combination, unit, and changed-combination keys carry no
		// SSP guarantees.
		return SecurityProperties{}
	}
}
