package connection

import "github.com/rigado/bredr/linux/hci"

// Commander is the controller command surface the connection needs for
// pairing. The transport behind it owns all byte-level HCI encoding.
type Commander interface {
	AuthenticationRequested(handle uint16) error
	SetConnectionEncryption(handle uint16) error

	LinkKeyRequestReply(addr [6]byte, key hci.LinkKey) error
	LinkKeyRequestNegativeReply(addr [6]byte) error

	IOCapabilityRequestReply(addr [6]byte, ioCap, authReq byte) error
	IOCapabilityRequestNegativeReply(addr [6]byte, reason hci.ErrCode) error

	UserConfirmationRequestReply(addr [6]byte) error
	UserConfirmationRequestNegativeReply(addr [6]byte) error

	UserPasskeyRequestReply(addr [6]byte, passkey uint32) error
	UserPasskeyRequestNegativeReply(addr [6]byte) error
}
