package evt

import (
	"encoding/binary"
	"fmt"
)

// Addresses are in wire order (LSB first) exactly as the controller
// reports them.

func (e AuthenticationComplete) StatusWErr() (uint8, error) {
	return getByte(e, 0, 0xff)
}
func (e AuthenticationComplete) ConnectionHandleWErr() (uint16, error) {
	return getUint16LE(e, 1, 0xffff)
}

func (e EncryptionChange) StatusWErr() (uint8, error) {
	return getByte(e, 0, 0xff)
}
func (e EncryptionChange) ConnectionHandleWErr() (uint16, error) {
	return getUint16LE(e, 1, 0xffff)
}
func (e EncryptionChange) EncryptionEnabledWErr() (uint8, error) {
	return getByte(e, 3, 0)
}

func (e LinkKeyRequest) AddressWErr() ([6]byte, error) {
	return getAddr(e, 0)
}

func (e LinkKeyNotification) AddressWErr() ([6]byte, error) {
	return getAddr(e, 0)
}
func (e LinkKeyNotification) LinkKeyWErr() ([16]byte, error) {
	var k [16]byte
	b, err := getBytes(e, 6, 16)
	if err != nil {
		return k, err
	}
	copy(k[:], b)
	return k, nil
}
func (e LinkKeyNotification) KeyTypeWErr() (uint8, error) {
	return getByte(e, 22, 0xff)
}

func (e IOCapabilityRequest) AddressWErr() ([6]byte, error) {
	return getAddr(e, 0)
}

func (e IOCapabilityResponse) AddressWErr() ([6]byte, error) {
	return getAddr(e, 0)
}
func (e IOCapabilityResponse) IOCapabilityWErr() (uint8, error) {
	return getByte(e, 6, 0xff)
}
func (e IOCapabilityResponse) OOBDataPresentWErr() (uint8, error) {
	return getByte(e, 7, 0)
}
func (e IOCapabilityResponse) AuthRequirementsWErr() (uint8, error) {
	return getByte(e, 8, 0)
}

func (e UserConfirmationRequest) AddressWErr() ([6]byte, error) {
	return getAddr(e, 0)
}
func (e UserConfirmationRequest) NumericValueWErr() (uint32, error) {
	return getUint32LE(e, 6, 0)
}

func (e UserPasskeyRequest) AddressWErr() ([6]byte, error) {
	return getAddr(e, 0)
}

func (e SimplePairingComplete) StatusWErr() (uint8, error) {
	return getByte(e, 0, 0xff)
}
func (e SimplePairingComplete) AddressWErr() ([6]byte, error) {
	return getAddr(e, 1)
}

func (e UserPasskeyNotification) AddressWErr() ([6]byte, error) {
	return getAddr(e, 0)
}
func (e UserPasskeyNotification) PasskeyWErr() (uint32, error) {
	return getUint32LE(e, 6, 0)
}

func getAddr(b []byte, i int) ([6]byte, error) {
	var a [6]byte
	bb, err := getBytes(b, i, 6)
	if err != nil {
		return a, err
	}
	copy(a[:], bb)
	return a, nil
}

func getByte(b []byte, i int, def byte) (byte, error) {
	bb, err := getBytes(b, i, 1)
	if err != nil {
		return def, err
	}
	return bb[0], nil
}

func getUint16LE(b []byte, i int, def uint16) (uint16, error) {
	bb, err := getBytes(b, i, 2)
	if err != nil {
		return def, err
	}
	return binary.LittleEndian.Uint16(bb), nil
}

func getUint32LE(b []byte, i int, def uint32) (uint32, error) {
	bb, err := getBytes(b, i, 4)
	if err != nil {
		return def, err
	}
	return binary.LittleEndian.Uint32(bb), nil
}

func getBytes(bytes []byte, start int, count int) ([]byte, error) {
	if bytes == nil || start >= len(bytes) {
		return nil, fmt.Errorf("index error")
	}

	if count < 0 {
		return bytes[start:], nil
	}

	end := start + count
	//end is non-inclusive
	if end > len(bytes) {
		return nil, fmt.Errorf("index error")
	}

	return bytes[start:end], nil
}
