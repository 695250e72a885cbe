package hci

import "fmt"

// ErrCode is a controller status code [Vol 1, Part F]. The zero value
// means success; any other value is an error.
type ErrCode byte

const (
	StatusSuccess                  ErrCode = 0x00
	StatusUnknownCommand           ErrCode = 0x01
	StatusUnknownConnectionID      ErrCode = 0x02
	StatusAuthenticationFailure    ErrCode = 0x05
	StatusPinOrKeyMissing          ErrCode = 0x06
	StatusConnectionTimeout        ErrCode = 0x08
	StatusCommandDisallowed        ErrCode = 0x0C
	StatusUnsupportedFeature       ErrCode = 0x11
	StatusRemoteUserTerminated     ErrCode = 0x13
	StatusPairingNotAllowed        ErrCode = 0x18
	StatusUnspecifiedError         ErrCode = 0x1F
	StatusSimplePairingNotSupported ErrCode = 0x37
	StatusInsufficientSecurity     ErrCode = 0x2F
)

var errCodeStrings = map[ErrCode]string{
	StatusSuccess:                   "success",
	StatusUnknownCommand:            "unknown HCI command",
	StatusUnknownConnectionID:       "unknown connection identifier",
	StatusAuthenticationFailure:     "authentication failure",
	StatusPinOrKeyMissing:           "PIN or key missing",
	StatusConnectionTimeout:         "connection timeout",
	StatusCommandDisallowed:         "command disallowed",
	StatusUnsupportedFeature:        "unsupported feature or parameter value",
	StatusRemoteUserTerminated:      "remote user terminated connection",
	StatusPairingNotAllowed:         "pairing not allowed",
	StatusUnspecifiedError:          "unspecified error",
	StatusSimplePairingNotSupported: "secure simple pairing not supported by host",
	StatusInsufficientSecurity:      "insufficient security",
}

func (e ErrCode) Success() bool {
	return e == StatusSuccess
}

func (e ErrCode) String() string {
	if s, ok := errCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("status 0x%02X", byte(e))
}

// Error implements the error interface so a non-success status can be
// propagated directly.
func (e ErrCode) Error() string {
	return e.String()
}
