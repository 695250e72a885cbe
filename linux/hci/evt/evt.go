package evt

func (e AuthenticationComplete) Status() uint8 {
	v, _ := e.StatusWErr()
	return v
}

func (e AuthenticationComplete) ConnectionHandle() uint16 {
	v, _ := e.ConnectionHandleWErr()
	return v
}

func (e EncryptionChange) Status() uint8 {
	v, _ := e.StatusWErr()
	return v
}

func (e EncryptionChange) ConnectionHandle() uint16 {
	v, _ := e.ConnectionHandleWErr()
	return v
}

func (e EncryptionChange) EncryptionEnabled() uint8 {
	v, _ := e.EncryptionEnabledWErr()
	return v
}

func (e LinkKeyRequest) Address() [6]byte {
	v, _ := e.AddressWErr()
	return v
}

func (e LinkKeyNotification) Address() [6]byte {
	v, _ := e.AddressWErr()
	return v
}

func (e LinkKeyNotification) LinkKey() [16]byte {
	v, _ := e.LinkKeyWErr()
	return v
}

func (e LinkKeyNotification) KeyType() uint8 {
	v, _ := e.KeyTypeWErr()
	return v
}

func (e IOCapabilityRequest) Address() [6]byte {
	v, _ := e.AddressWErr()
	return v
}

func (e IOCapabilityResponse) Address() [6]byte {
	v, _ := e.AddressWErr()
	return v
}

func (e IOCapabilityResponse) IOCapability() uint8 {
	v, _ := e.IOCapabilityWErr()
	return v
}

func (e IOCapabilityResponse) OOBDataPresent() uint8 {
	v, _ := e.OOBDataPresentWErr()
	return v
}

func (e IOCapabilityResponse) AuthRequirements() uint8 {
	v, _ := e.AuthRequirementsWErr()
	return v
}

func (e UserConfirmationRequest) Address() [6]byte {
	v, _ := e.AddressWErr()
	return v
}

func (e UserConfirmationRequest) NumericValue() uint32 {
	v, _ := e.NumericValueWErr()
	return v
}

func (e UserPasskeyRequest) Address() [6]byte {
	v, _ := e.AddressWErr()
	return v
}

func (e SimplePairingComplete) Status() uint8 {
	v, _ := e.StatusWErr()
	return v
}

func (e SimplePairingComplete) Address() [6]byte {
	v, _ := e.AddressWErr()
	return v
}

func (e UserPasskeyNotification) Address() [6]byte {
	v, _ := e.AddressWErr()
	return v
}

func (e UserPasskeyNotification) Passkey() uint32 {
	v, _ := e.PasskeyWErr()
	return v
}
