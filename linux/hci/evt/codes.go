package evt

// BR/EDR event codes handled by the pairing layer [Vol 4, Part E, 7.7].
const (
	AuthenticationCompleteCode  = 0x06
	EncryptionChangeCode        = 0x08
	LinkKeyRequestCode          = 0x17
	LinkKeyNotificationCode     = 0x18
	IOCapabilityRequestCode     = 0x31
	IOCapabilityResponseCode    = 0x32
	UserConfirmationRequestCode = 0x33
	UserPasskeyRequestCode      = 0x34
	SimplePairingCompleteCode   = 0x36
	UserPasskeyNotificationCode = 0x3B
)

type AuthenticationComplete []byte
type EncryptionChange []byte
type LinkKeyRequest []byte
type LinkKeyNotification []byte
type IOCapabilityRequest []byte
type IOCapabilityResponse []byte
type UserConfirmationRequest []byte
type UserPasskeyRequest []byte
type SimplePairingComplete []byte
type UserPasskeyNotification []byte
