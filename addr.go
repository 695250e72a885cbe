package bredr

import (
	"encoding/hex"
	"strings"
)

// Addr is a BR/EDR device address (BD_ADDR).
type Addr interface {
	String() string
	Bytes() []byte
}

// NewAddr creates an Addr from a string such as "00:1a:7d:da:71:13".
func NewAddr(s string) Addr {
	return addr(strings.ToLower(s))
}

type addr string

func (a addr) String() string {
	return string(a)
}

// Bytes returns the address in MSB-first order. A malformed address
// yields a nil slice.
func (a addr) Bytes() []byte {
	hexStr := strings.Replace(a.String(), ":", "", -1)

	out, err := hex.DecodeString(hexStr)
	if err != nil {
		GetLogger().Errorf("error decoding address %v: %v", a.String(), err)
		return nil
	}

	return out
}
