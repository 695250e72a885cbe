package bredr

import (
	"bytes"
	"testing"
)

func TestAddrBytes(t *testing.T) {
	a := NewAddr("00:1A:7D:DA:71:13")

	if a.String() != "00:1a:7d:da:71:13" {
		t.Fatalf("string = %s, want lowercased form", a.String())
	}

	want := []byte{0x00, 0x1A, 0x7D, 0xDA, 0x71, 0x13}
	if !bytes.Equal(a.Bytes(), want) {
		t.Fatalf("bytes = %x, want %x", a.Bytes(), want)
	}
}

func TestAddrBytesMalformed(t *testing.T) {
	if b := NewAddr("not an address").Bytes(); b != nil {
		t.Fatalf("bytes = %x, want nil for a malformed address", b)
	}
}

func TestIOCapabilityValid(t *testing.T) {
	for c := IOCapability(0); c <= IOCapNoInputNoOutput; c++ {
		if !c.Valid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if IOCapability(0x04).Valid() {
		t.Error("reserved value 0x04 should be invalid")
	}
}
