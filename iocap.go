package bredr

// IOCapability is a device's declared input/output ability, exchanged
// during Secure Simple Pairing to select the association model
// [Vol 3, Part C, 5.2.2.5].
type IOCapability byte

const (
	IOCapDisplayOnly     IOCapability = 0x00
	IOCapDisplayYesNo    IOCapability = 0x01
	IOCapKeyboardOnly    IOCapability = 0x02
	IOCapNoInputNoOutput IOCapability = 0x03
)

func (c IOCapability) Valid() bool {
	return c <= IOCapNoInputNoOutput
}

func (c IOCapability) String() string {
	switch c {
	case IOCapDisplayOnly:
		return "DisplayOnly"
	case IOCapDisplayYesNo:
		return "DisplayYesNo"
	case IOCapKeyboardOnly:
		return "KeyboardOnly"
	case IOCapNoInputNoOutput:
		return "NoInputNoOutput"
	default:
		return "Reserved"
	}
}
