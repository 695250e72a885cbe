package connection

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/rigado/bredr"
	"github.com/rigado/bredr/linux/hci"
	"github.com/rigado/bredr/linux/hci/evt"
	"github.com/rigado/bredr/linux/hci/ssp"
	"github.com/rigado/bredr/sliceops"
)

// Conn is one BR/EDR ACL link. It owns the link's PairingState,
// forwards controller events to it, and turns its replies into
// controller commands. All methods must run on the sequencing context
// that owns the link.
type Conn struct {
	cmd    Commander
	handle uint16

	// peer address in wire order (LSB first) and host form
	peerWire [6]byte
	peer     bredr.Addr

	keyType    hci.LinkKeyType
	hasLinkKey bool
	linkKey    hci.LinkKey

	pairing *ssp.PairingState

	log bredr.Logger
}

// New creates a connection for an established ACL link. peerWire is
// the BD_ADDR as reported by the controller (LSB first). status is
// invoked on every pairing resolution for this link.
func New(cmd Commander, handle uint16, peerWire [6]byte,
	store hci.KeyStore, delegate ssp.DelegateProvider, status ssp.StatusCallback) *Conn {

	c := &Conn{
		cmd:      cmd,
		handle:   handle,
		peerWire: peerWire,
		peer:     wireToAddr(peerWire),
		log: bredr.GetLogger().ChildLogger(map[string]interface{}{
			"handle": handle,
		}),
	}
	c.pairing = ssp.NewPairingState(c, store, delegate, status)

	return c
}

// Pair asks for this link to reach at least req. cb is invoked exactly
// once with the outcome.
func (c *Conn) Pair(req ssp.SecurityRequirements, cb ssp.ResultCallback) {
	c.pairing.InitiatePairing(req, cb)
}

// PairingState exposes the link's pairing engine for tests and for
// stack layers that only consult whether pairing completed.
func (c *Conn) PairingState() *ssp.PairingState {
	return c.pairing
}

// Close tears the link down, resolving any outstanding pairing
// requests with a link-disconnected failure.
func (c *Conn) Close() {
	c.pairing.Close()
}

// HandleEvent dispatches one controller event payload (without the
// code/length header) to the pairing engine.
func (c *Conn) HandleEvent(code byte, p []byte) error {
	switch code {
	case evt.LinkKeyRequestCode:
		return c.handleLinkKeyRequest(evt.LinkKeyRequest(p))
	case evt.LinkKeyNotificationCode:
		return c.handleLinkKeyNotification(evt.LinkKeyNotification(p))
	case evt.IOCapabilityRequestCode:
		return c.handleIOCapabilityRequest(evt.IOCapabilityRequest(p))
	case evt.IOCapabilityResponseCode:
		return c.handleIOCapabilityResponse(evt.IOCapabilityResponse(p))
	case evt.UserConfirmationRequestCode:
		return c.handleUserConfirmationRequest(evt.UserConfirmationRequest(p))
	case evt.UserPasskeyRequestCode:
		return c.handleUserPasskeyRequest(evt.UserPasskeyRequest(p))
	case evt.UserPasskeyNotificationCode:
		return c.handleUserPasskeyNotification(evt.UserPasskeyNotification(p))
	case evt.SimplePairingCompleteCode:
		return c.handleSimplePairingComplete(evt.SimplePairingComplete(p))
	case evt.AuthenticationCompleteCode:
		return c.handleAuthenticationComplete(evt.AuthenticationComplete(p))
	case evt.EncryptionChangeCode:
		return c.handleEncryptionChange(evt.EncryptionChange(p))
	default:
		return errors.Errorf("unhandled event code 0x%02X", code)
	}
}

func (c *Conn) handleLinkKeyRequest(e evt.LinkKeyRequest) error {
	addr, err := e.AddressWErr()
	if err != nil {
		return errors.Wrap(err, "link key request")
	}
	if addr != c.peerWire {
		return errors.Errorf("link key request for foreign address %x", addr)
	}

	if k := c.pairing.OnLinkKeyRequest(c.peer); k != nil {
		return c.cmd.LinkKeyRequestReply(addr, *k)
	}
	return c.cmd.LinkKeyRequestNegativeReply(addr)
}

func (c *Conn) handleLinkKeyNotification(e evt.LinkKeyNotification) error {
	addr, err := e.AddressWErr()
	if err != nil {
		return errors.Wrap(err, "link key notification")
	}
	if addr != c.peerWire {
		return errors.Errorf("link key notification for foreign address %x", addr)
	}
	key, err := e.LinkKeyWErr()
	if err != nil {
		return errors.Wrap(err, "link key notification")
	}
	keyType, err := e.KeyTypeWErr()
	if err != nil {
		return errors.Wrap(err, "link key notification")
	}

	c.pairing.OnLinkKeyNotification(hci.LinkKey(key), hci.LinkKeyType(keyType))
	return nil
}

func (c *Conn) handleIOCapabilityRequest(e evt.IOCapabilityRequest) error {
	addr, err := e.AddressWErr()
	if err != nil {
		return errors.Wrap(err, "io capability request")
	}
	if addr != c.peerWire {
		return errors.Errorf("io capability request for foreign address %x", addr)
	}

	if reply := c.pairing.OnIOCapabilityRequest(); reply != nil {
		return c.cmd.IOCapabilityRequestReply(addr, byte(reply.IOCap), byte(reply.AuthReq))
	}
	return c.cmd.IOCapabilityRequestNegativeReply(addr, hci.StatusPairingNotAllowed)
}

func (c *Conn) handleIOCapabilityResponse(e evt.IOCapabilityResponse) error {
	addr, err := e.AddressWErr()
	if err != nil {
		return errors.Wrap(err, "io capability response")
	}
	if addr != c.peerWire {
		return errors.Errorf("io capability response for foreign address %x", addr)
	}
	ioCap, err := e.IOCapabilityWErr()
	if err != nil {
		return errors.Wrap(err, "io capability response")
	}
	peerCap := bredr.IOCapability(ioCap)
	if !peerCap.Valid() {
		return errors.Errorf("reserved peer io capability 0x%02X", ioCap)
	}

	c.pairing.OnIOCapabilityResponse(peerCap)
	return nil
}

func (c *Conn) handleUserConfirmationRequest(e evt.UserConfirmationRequest) error {
	addr, err := e.AddressWErr()
	if err != nil {
		return errors.Wrap(err, "user confirmation request")
	}
	if addr != c.peerWire {
		return errors.Errorf("user confirmation request for foreign address %x", addr)
	}
	value, err := e.NumericValueWErr()
	if err != nil {
		return errors.Wrap(err, "user confirmation request")
	}

	c.pairing.OnUserConfirmationRequest(value, func(accept bool) {
		var err error
		if accept {
			err = c.cmd.UserConfirmationRequestReply(addr)
		} else {
			err = c.cmd.UserConfirmationRequestNegativeReply(addr)
		}
		if err != nil {
			c.log.Errorf("user confirmation reply: %v", err)
		}
	})
	return nil
}

func (c *Conn) handleUserPasskeyRequest(e evt.UserPasskeyRequest) error {
	addr, err := e.AddressWErr()
	if err != nil {
		return errors.Wrap(err, "user passkey request")
	}
	if addr != c.peerWire {
		return errors.Errorf("user passkey request for foreign address %x", addr)
	}

	c.pairing.OnUserPasskeyRequest(func(passkey uint32, ok bool) {
		var err error
		if ok {
			err = c.cmd.UserPasskeyRequestReply(addr, passkey)
		} else {
			err = c.cmd.UserPasskeyRequestNegativeReply(addr)
		}
		if err != nil {
			c.log.Errorf("user passkey reply: %v", err)
		}
	})
	return nil
}

func (c *Conn) handleUserPasskeyNotification(e evt.UserPasskeyNotification) error {
	addr, err := e.AddressWErr()
	if err != nil {
		return errors.Wrap(err, "user passkey notification")
	}
	if addr != c.peerWire {
		return errors.Errorf("user passkey notification for foreign address %x", addr)
	}
	passkey, err := e.PasskeyWErr()
	if err != nil {
		return errors.Wrap(err, "user passkey notification")
	}

	c.pairing.OnUserPasskeyNotification(passkey)
	return nil
}

func (c *Conn) handleSimplePairingComplete(e evt.SimplePairingComplete) error {
	status, err := e.StatusWErr()
	if err != nil {
		return errors.Wrap(err, "simple pairing complete")
	}
	addr, err := e.AddressWErr()
	if err != nil {
		return errors.Wrap(err, "simple pairing complete")
	}
	if addr != c.peerWire {
		return errors.Errorf("simple pairing complete for foreign address %x", addr)
	}

	c.pairing.OnSimplePairingComplete(hci.ErrCode(status))
	return nil
}

func (c *Conn) handleAuthenticationComplete(e evt.AuthenticationComplete) error {
	status, err := e.StatusWErr()
	if err != nil {
		return errors.Wrap(err, "authentication complete")
	}
	handle, err := e.ConnectionHandleWErr()
	if err != nil {
		return errors.Wrap(err, "authentication complete")
	}
	if handle != c.handle {
		return errors.Errorf("authentication complete for foreign handle 0x%04X", handle)
	}

	c.pairing.OnAuthenticationComplete(hci.ErrCode(status))
	return nil
}

func (c *Conn) handleEncryptionChange(e evt.EncryptionChange) error {
	status, err := e.StatusWErr()
	if err != nil {
		return errors.Wrap(err, "encryption change")
	}
	handle, err := e.ConnectionHandleWErr()
	if err != nil {
		return errors.Wrap(err, "encryption change")
	}
	if handle != c.handle {
		return errors.Errorf("encryption change for foreign handle 0x%04X", handle)
	}
	enabled, err := e.EncryptionEnabledWErr()
	if err != nil {
		return errors.Wrap(err, "encryption change")
	}

	c.pairing.OnEncryptionChange(hci.ErrCode(status), enabled != 0)
	return nil
}

// ssp.LinkOwner implementation.

func (c *Conn) SendAuthenticationRequest() error {
	return c.cmd.AuthenticationRequested(c.handle)
}

func (c *Conn) StartEncryption() bool {
	if err := c.cmd.SetConnectionEncryption(c.handle); err != nil {
		c.log.Errorf("set connection encryption: %v", err)
		return false
	}
	return true
}

func (c *Conn) SetLinkKey(key hci.LinkKey, keyType hci.LinkKeyType) {
	c.linkKey = key
	c.keyType = keyType
	c.hasLinkKey = true
}

func (c *Conn) LinkKeyType() (hci.LinkKeyType, bool) {
	return c.keyType, c.hasLinkKey
}

func (c *Conn) Handle() uint16 {
	return c.handle
}

func (c *Conn) PeerAddr() bredr.Addr {
	return c.peer
}

// wireToAddr converts an LSB-first BD_ADDR to its host form.
func wireToAddr(b [6]byte) bredr.Addr {
	msb := sliceops.SwapBuf(b[:])
	return bredr.NewAddr(fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		msb[0], msb[1], msb[2], msb[3], msb[4], msb[5]))
}
