package hci

// Link key types reported by Link Key Notification [Vol 4, Part E, 7.7.24].
type LinkKeyType byte

const (
	KeyTypeCombination         LinkKeyType = 0x00
	KeyTypeLocalUnit           LinkKeyType = 0x01
	KeyTypeRemoteUnit          LinkKeyType = 0x02
	KeyTypeDebugCombination    LinkKeyType = 0x03
	KeyTypeUnauthenticatedP192 LinkKeyType = 0x04
	KeyTypeAuthenticatedP192   LinkKeyType = 0x05
	KeyTypeChangedCombination  LinkKeyType = 0x06
	KeyTypeUnauthenticatedP256 LinkKeyType = 0x07
	KeyTypeAuthenticatedP256   LinkKeyType = 0x08
)

var keyTypeStrings = map[LinkKeyType]string{
	KeyTypeCombination:         "combination",
	KeyTypeLocalUnit:           "local unit",
	KeyTypeRemoteUnit:          "remote unit",
	KeyTypeDebugCombination:    "debug combination",
	KeyTypeUnauthenticatedP192: "unauthenticated combination P-192",
	KeyTypeAuthenticatedP192:   "authenticated combination P-192",
	KeyTypeChangedCombination:  "changed combination",
	KeyTypeUnauthenticatedP256: "unauthenticated combination P-256",
	KeyTypeAuthenticatedP256:   "authenticated combination P-256",
}

func (t LinkKeyType) String() string {
	if s, ok := keyTypeStrings[t]; ok {
		return s
	}
	return "unknown"
}

// LinkKeySize is the size of a BR/EDR link key in bytes.
const LinkKeySize = 16

// LinkKey is the long-term symmetric key of a BR/EDR link.
type LinkKey [LinkKeySize]byte

// AuthRequirements is the Authentication_Requirements parameter of the
// IO Capability Request Reply command [Vol 4, Part E, 7.1.29].
type AuthRequirements byte

const (
	AuthReqGeneralBonding     AuthRequirements = 0x04
	AuthReqMITMGeneralBonding AuthRequirements = 0x05
)

func (a AuthRequirements) String() string {
	switch a {
	case AuthReqGeneralBonding:
		return "general bonding"
	case AuthReqMITMGeneralBonding:
		return "MITM protection, general bonding"
	default:
		return "unknown"
	}
}
