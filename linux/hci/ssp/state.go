package ssp

import (
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/rigado/bredr"
	"github.com/rigado/bredr/linux/hci"
)

// State is the pairing state machine's current position. Idle is the
// resting state between procedures; Failed is sticky until the link is
// torn down.
type State int

const (
	StateIdle State = iota
	StateInitiatorWaitLinkKeyRequest
	StateInitiatorWaitIOCapRequest
	StateInitiatorWaitIOCapResponse
	StateResponderWaitIOCapRequest
	StateWaitUserConfirmationRequest
	StateWaitUserPasskeyRequest
	StateWaitUserPasskeyNotification
	StateWaitPairingComplete
	StateWaitLinkKey
	StateInitiatorWaitAuthComplete
	StateWaitEncryption
	StateFailed
)

var stateStrings = map[State]string{
	StateIdle:                        "idle",
	StateInitiatorWaitLinkKeyRequest: "initiator wait link key request",
	StateInitiatorWaitIOCapRequest:   "initiator wait io capability request",
	StateInitiatorWaitIOCapResponse:  "initiator wait io capability response",
	StateResponderWaitIOCapRequest:   "responder wait io capability request",
	StateWaitUserConfirmationRequest: "wait user confirmation request",
	StateWaitUserPasskeyRequest:      "wait user passkey request",
	StateWaitUserPasskeyNotification: "wait user passkey notification",
	StateWaitPairingComplete:         "wait pairing complete",
	StateWaitLinkKey:                 "wait link key",
	StateInitiatorWaitAuthComplete:   "initiator wait authentication complete",
	StateWaitEncryption:              "wait encryption",
	StateFailed:                      "failed",
}

func (s State) String() string {
	if v, ok := stateStrings[s]; ok {
		return v
	}
	return "unknown"
}

// waitStateFor maps the expected pairing event to the wait state that
// accepts it.
func waitStateFor(e PairingEvent) State {
	switch e {
	case EventUserPasskeyRequest:
		return StateWaitUserPasskeyRequest
	case EventUserPasskeyNotification:
		return StateWaitUserPasskeyNotification
	default:
		return StateWaitUserConfirmationRequest
	}
}

// IOCapabilityReply is the host's answer to an IO Capability Request
// event, fed into the IO Capability Request Reply command.
type IOCapabilityReply struct {
	IOCap   bredr.IOCapability
	AuthReq hci.AuthRequirements
}

// PairingState drives Secure Simple Pairing for one BR/EDR link. One
// instance exists per link for the link's entire lifetime; all entry
// points must be invoked from the single sequencing context that owns
// the link. Delegate replies arrive asynchronously on that same
// context and are dropped if the session they were issued for is gone.
type PairingState struct {
	link     LinkOwner
	store    hci.KeyStore
	delegate DelegateProvider
	statusCB StatusCallback

	state   State
	pairing *pairing
	queue   requestQueue

	lastSessionID uint64

	log bredr.Logger
}

// NewPairingState creates the pairing engine for one link. store and
// delegate may yield nothing; status is invoked on every procedure
// resolution including teardown.
func NewPairingState(link LinkOwner, store hci.KeyStore, delegate DelegateProvider, status StatusCallback) *PairingState {
	return &PairingState{
		link:     link,
		store:    store,
		delegate: delegate,
		statusCB: status,
		state:    StateIdle,
		log: bredr.GetLogger().ChildLogger(map[string]interface{}{
			"handle": link.Handle(),
		}),
	}
}

// CurrentState is exposed for the link owner's bookkeeping and tests.
func (s *PairingState) CurrentState() State {
	return s.state
}

// InitiatePairing asks for this link to reach at least req. Callable in
// any state; concurrent callers coalesce onto one in-flight procedure
// and each receive exactly one callback.
func (s *PairingState) InitiatePairing(req SecurityRequirements, cb ResultCallback) {
	if s.state == StateFailed {
		cb(ErrCanceled)
		return
	}

	if s.pairing != nil {
		// a procedure is in flight; ride along
		s.queue.push(pairingRequest{requirements: req, callback: cb})
		return
	}

	if kt, ok := s.link.LinkKeyType(); ok && PropertiesFromKeyType(kt).Meets(req) {
		s.log.Debugf("existing %s key already meets requirements", kt)
		statusCB := s.statusCB
		handle := s.link.Handle()
		cb(nil)
		if statusCB != nil {
			statusCB(handle, nil)
		}
		return
	}

	s.queue.push(pairingRequest{requirements: req, callback: cb})
	s.startPairingRound(req)
}

// OnLinkKeyRequest answers the controller's Link Key Request event. A
// nil return means "no key" and makes the controller run SSP.
func (s *PairingState) OnLinkKeyRequest(addr bredr.Addr) *hci.LinkKey {
	if s.state == StateFailed {
		return nil
	}
	if s.state != StateIdle && s.state != StateInitiatorWaitLinkKeyRequest {
		s.onUnexpectedEvent("link key request")
		return nil
	}

	stored := s.findStoredKey(addr)

	if s.state == StateIdle {
		// peer-initiated authentication with no local procedure;
		// return whatever we have without a transition
		if stored == nil {
			return nil
		}
		k := stored.Key()
		return &k
	}

	if stored != nil && PropertiesFromKeyType(stored.Type()).Meets(s.pairing.preferred) {
		// skip SSP and re-authenticate with the bonded key
		k := stored.Key()
		s.link.SetLinkKey(k, stored.Type())
		s.state = StateInitiatorWaitAuthComplete
		return &k
	}

	// no key, or not strong enough: force a fresh SSP round
	s.state = StateInitiatorWaitIOCapRequest
	return nil
}

// OnIOCapabilityRequest answers the IO Capability Request event. A nil
// return means no delegate is attached and the request must be
// rejected on the wire.
func (s *PairingState) OnIOCapabilityRequest() *IOCapabilityReply {
	if s.state == StateFailed {
		return nil
	}
	if s.state != StateInitiatorWaitIOCapRequest && s.state != StateResponderWaitIOCapRequest {
		s.onUnexpectedEvent("io capability request")
		return nil
	}

	d := s.delegateOrNil()
	if d == nil {
		s.notReady()
		return nil
	}

	p := s.pairing
	p.localCap = d.IOCapability()

	if p.initiator {
		s.state = StateInitiatorWaitIOCapResponse
		return &IOCapabilityReply{
			IOCap:   p.localCap,
			AuthReq: InitiatorAuthRequirements(p.localCap),
		}
	}

	p.computePairingData()
	s.log.Debugf("responder pairing: action '%s', expecting '%s'", p.action, p.expectedEvent)
	s.state = waitStateFor(p.expectedEvent)
	return &IOCapabilityReply{
		IOCap:   p.localCap,
		AuthReq: ResponderAuthRequirements(p.localCap, p.peerCap),
	}
}

// OnIOCapabilityResponse records the peer's IO capability. In Idle it
// begins a peer-initiated procedure with the local host as responder.
func (s *PairingState) OnIOCapabilityResponse(peerCap bredr.IOCapability) {
	if s.state == StateFailed {
		return
	}

	switch s.state {
	case StateIdle:
		p := s.newPairing(false)
		p.peerCap = peerCap
		// the responder never unilaterally demands stronger security
		p.preferred = SecurityRequirements{}
		s.pairing = p
		s.state = StateResponderWaitIOCapRequest
	case StateInitiatorWaitIOCapResponse:
		p := s.pairing
		p.peerCap = peerCap
		p.computePairingData()
		s.log.Debugf("initiator pairing: action '%s', expecting '%s'", p.action, p.expectedEvent)
		s.state = waitStateFor(p.expectedEvent)
	default:
		s.onUnexpectedEvent("io capability response")
	}
}

// OnUserConfirmationRequest dispatches the confirmation prompt for the
// selected association model. reply answers the controller; it may be
// invoked after this call returns.
func (s *PairingState) OnUserConfirmationRequest(value uint32, reply func(accept bool)) {
	if s.state == StateFailed {
		reply(false)
		return
	}
	if s.state != StateWaitUserConfirmationRequest {
		reply(false)
		s.onUnexpectedEvent("user confirmation request")
		return
	}

	p := s.pairing
	peer := s.link.PeerAddr()
	s.state = StateWaitPairingComplete

	switch p.action {
	case ActionAutomatic:
		reply(true)
	case ActionGetConsent:
		d := s.delegateOrNil()
		if d == nil {
			reply(false)
			s.notReady()
			return
		}
		d.RequestConsent(peer, s.guardBool(p.id, reply))
	case ActionComparePasskey:
		d := s.delegateOrNil()
		if d == nil {
			reply(false)
			s.notReady()
			return
		}
		d.ConfirmPasskey(peer, value, s.guardBool(p.id, reply))
	case ActionDisplayPasskey:
		d := s.delegateOrNil()
		if d == nil {
			reply(false)
			s.notReady()
			return
		}
		d.DisplayPasskey(peer, value, s.guardBool(p.id, reply))
	default:
		// a passkey-entry model never produces a confirmation request
		reply(false)
		s.onUnexpectedEvent("user confirmation request with passkey entry model")
	}
}

// OnUserPasskeyRequest asks the delegate to collect the passkey shown
// on the peer. reply answers the controller; ok=false rejects.
func (s *PairingState) OnUserPasskeyRequest(reply func(passkey uint32, ok bool)) {
	if s.state == StateFailed {
		reply(0, false)
		return
	}
	if s.state != StateWaitUserPasskeyRequest {
		reply(0, false)
		s.onUnexpectedEvent("user passkey request")
		return
	}

	d := s.delegateOrNil()
	if d == nil {
		reply(0, false)
		s.notReady()
		return
	}

	p := s.pairing
	s.state = StateWaitPairingComplete
	d.RequestPasskey(s.link.PeerAddr(), s.guardPasskey(p.id, func(passkey int64) {
		if passkey < 0 {
			reply(0, false)
			return
		}
		reply(uint32(passkey), true)
	}))
}

// OnUserPasskeyNotification shows the controller-generated passkey for
// the peer to enter. No reply goes back to the controller.
func (s *PairingState) OnUserPasskeyNotification(passkey uint32) {
	if s.state == StateFailed {
		return
	}
	if s.state != StateWaitUserPasskeyNotification {
		s.onUnexpectedEvent("user passkey notification")
		return
	}

	d := s.delegateOrNil()
	if d == nil {
		s.notReady()
		return
	}

	p := s.pairing
	s.state = StateWaitPairingComplete
	d.DisplayPasskey(s.link.PeerAddr(), passkey, s.guardBool(p.id, func(bool) {}))
}

// OnSimplePairingComplete processes the Simple Pairing Complete event.
// A non-success status aborts the procedure from any pairing-active
// state; the controller may give up early.
func (s *PairingState) OnSimplePairingComplete(status hci.ErrCode) {
	if s.state == StateFailed {
		return
	}

	if !status.Success() {
		if s.pairing == nil {
			s.onUnexpectedEvent("simple pairing complete")
			return
		}
		s.log.Infof("pairing failed: %s", status)
		if d := s.delegateOrNil(); d != nil {
			d.PairingComplete(s.link.PeerAddr(), statusErr(status))
		}
		s.failWith(statusErr(status))
		return
	}

	if s.state != StateWaitPairingComplete {
		s.onUnexpectedEvent("simple pairing complete")
		return
	}

	if d := s.delegateOrNil(); d != nil {
		d.PairingComplete(s.link.PeerAddr(), nil)
	}
	s.state = StateWaitLinkKey
}

// OnLinkKeyNotification accepts the negotiated key, cross-checking the
// controller's claim of authentication against the local prediction.
// Debug combination keys indicate a misconfigured controller and are a
// fatal precondition violation.
func (s *PairingState) OnLinkKeyNotification(key hci.LinkKey, keyType hci.LinkKeyType) {
	if keyType == hci.KeyTypeDebugCombination {
		s.log.Errorf("controller reported a debug combination link key")
		panic("ssp: debug combination link key reported by controller")
	}

	if s.state == StateFailed {
		return
	}

	if s.state == StateIdle && keyType == hci.KeyTypeChangedCombination {
		// mid-session key rotation with no active procedure
		if _, ok := s.link.LinkKeyType(); !ok {
			s.log.Warnf("changed combination key with no key to change")
			s.failWith(ErrInsufficientSecurity)
			return
		}
		s.link.SetLinkKey(key, keyType)
		s.saveStoredKey(key, keyType)
		return
	}

	if s.state != StateWaitLinkKey {
		s.onUnexpectedEvent("link key notification")
		return
	}

	p := s.pairing
	props := PropertiesFromKeyType(keyType)
	p.properties = &props

	if !props.HasSecurity() {
		s.log.Warnf("link key of type '%s' provides no security", keyType)
		s.failWith(ErrInsufficientSecurity)
		return
	}
	if props.Authenticated != p.authenticated {
		// the controller and host disagree about what just happened
		s.log.Warnf("link key authenticated=%v but pairing predicted %v",
			props.Authenticated, p.authenticated)
		s.failWith(ErrInsufficientSecurity)
		return
	}

	s.link.SetLinkKey(key, keyType)
	s.saveStoredKey(key, keyType)

	if p.initiator {
		s.state = StateInitiatorWaitAuthComplete
		return
	}
	s.enableEncryption()
}

// OnAuthenticationComplete processes the Authentication Complete event
// for an initiator. A non-success status aborts from any state.
func (s *PairingState) OnAuthenticationComplete(status hci.ErrCode) {
	if s.state == StateFailed {
		return
	}
	if !status.Success() {
		s.log.Infof("authentication failed: %s", status)
		s.failWith(statusErr(status))
		return
	}
	if s.state != StateInitiatorWaitAuthComplete {
		s.onUnexpectedEvent("authentication complete")
		return
	}
	s.enableEncryption()
}

// OnEncryptionChange finishes the procedure. Encryption change events
// can legitimately fire at any time on an encrypted link, so anything
// outside WaitEncryption is ignored outright.
func (s *PairingState) OnEncryptionChange(status hci.ErrCode, enabled bool) {
	if s.state != StateWaitEncryption {
		s.log.Debugf("ignoring encryption change in state '%s'", s.state)
		return
	}

	if !status.Success() {
		s.failWith(statusErr(status))
		return
	}
	if !enabled {
		// encryption must never be silently disabled once established
		s.failWith(errors.Wrap(ErrPairingFailed, "controller disabled encryption"))
		return
	}

	s.resolveOnSuccess()
}

// Close tears the pairing engine down with its link, resolving any
// still-queued requests and notifying the status callback.
func (s *PairingState) Close() {
	s.pairing = nil
	s.state = StateFailed
	s.resolveAll(ErrLinkDisconnected)
}

func (s *PairingState) newPairing(initiator bool) *pairing {
	s.lastSessionID++
	return &pairing{id: s.lastSessionID, initiator: initiator}
}

// startPairingRound begins a new initiator procedure for req. The
// request authentication command is sent exactly once per round.
func (s *PairingState) startPairingRound(req SecurityRequirements) {
	p := s.newPairing(true)
	p.preferred = req
	s.pairing = p
	s.state = StateInitiatorWaitLinkKeyRequest
	if err := s.link.SendAuthenticationRequest(); err != nil {
		// fire and forget; a transport that cannot even queue the
		// command will surface as a link failure upstream
		s.log.Warnf("authentication request: %v", err)
	}
}

// enableEncryption asks the link to start encryption, failing the
// procedure if the request cannot be started at all.
func (s *PairingState) enableEncryption() {
	if !s.link.StartEncryption() {
		s.failWith(errors.Wrap(ErrPairingFailed, "failed to start encryption"))
		return
	}
	s.state = StateWaitEncryption
}

func (s *PairingState) onUnexpectedEvent(name string) {
	s.log.Warnf("unexpected %s in state '%s'", name, s.state)
	s.failWith(ErrNotSupported)
}

// notReady resets to Idle rather than Failed so a retry can succeed
// once a delegate is attached.
func (s *PairingState) notReady() {
	s.pairing = nil
	s.state = StateIdle
	s.resolveAll(ErrNotReady)
}

// failWith enters the sticky Failed state and resolves everything
// outstanding with err.
func (s *PairingState) failWith(err error) {
	s.pairing = nil
	s.state = StateFailed
	s.resolveAll(err)
}

// resolveAll drains the queue and then notifies. Queue contents and
// anything else needed for notification are extracted before any
// callback runs; callbacks may destroy this PairingState.
func (s *PairingState) resolveAll(err error) {
	requests := s.queue.drain()
	statusCB := s.statusCB
	handle := s.link.Handle()

	for _, r := range requests {
		r.callback(err)
	}
	if statusCB != nil {
		statusCB(handle, err)
	}
}

// resolveOnSuccess applies the resolution rules after encryption comes
// up. With a fresh key every request resolves now, each against its
// own requirements. With a reused key only the satisfied requests
// resolve, and a new round starts for the rest.
func (s *PairingState) resolveOnSuccess() {
	p := s.pairing
	s.pairing = nil
	s.state = StateIdle

	statusCB := s.statusCB
	handle := s.link.Handle()

	var ok, insufficient []pairingRequest

	if p.properties != nil {
		for _, r := range s.queue.drain() {
			if p.properties.Meets(r.requirements) {
				ok = append(ok, r)
			} else {
				insufficient = append(insufficient, r)
			}
		}
	} else {
		var props SecurityProperties
		if kt, has := s.link.LinkKeyType(); has {
			props = PropertiesFromKeyType(kt)
		}
		ok = s.queue.drainSatisfied(props)
		if !s.queue.empty() {
			// some callers still want more than the old key delivers
			s.startPairingRound(s.queue.mergedRequirements())
		}
	}

	for _, r := range ok {
		r.callback(nil)
	}
	for _, r := range insufficient {
		r.callback(ErrInsufficientSecurity)
	}
	if statusCB != nil {
		statusCB(handle, nil)
	}
}

func (s *PairingState) delegateOrNil() bredr.PairingDelegate {
	if s.delegate == nil {
		return nil
	}
	return s.delegate()
}

func (s *PairingState) findStoredKey(addr bredr.Addr) hci.StoredKey {
	if s.store == nil {
		return nil
	}
	k, err := s.store.Find(hex.EncodeToString(addr.Bytes()))
	if err != nil {
		return nil
	}
	return k
}

func (s *PairingState) saveStoredKey(key hci.LinkKey, keyType hci.LinkKeyType) {
	if s.store == nil {
		return
	}
	addr := hex.EncodeToString(s.link.PeerAddr().Bytes())
	if err := s.store.Save(addr, hci.NewStoredKey(key, keyType)); err != nil {
		s.log.Warnf("failed to save link key for %s: %v", addr, err)
	}
}

// guardBool wraps a delegate boolean reply so that a reply issued for
// a session that no longer exists is dropped instead of touching a
// dead procedure.
func (s *PairingState) guardBool(id uint64, f func(bool)) func(bool) {
	return func(ok bool) {
		if s.pairing == nil || s.pairing.id != id {
			s.log.Debugf("dropping stale pairing reply for session %d", id)
			return
		}
		f(ok)
	}
}

func (s *PairingState) guardPasskey(id uint64, f func(int64)) func(int64) {
	return func(passkey int64) {
		if s.pairing == nil || s.pairing.id != id {
			s.log.Debugf("dropping stale passkey reply for session %d", id)
			return
		}
		f(passkey)
	}
}
