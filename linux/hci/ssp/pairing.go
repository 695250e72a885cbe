package ssp

import "github.com/rigado/bredr"

// pairing is the ephemeral record of one in-flight SSP procedure. It
// exists from the moment the first IO capability becomes known until
// the procedure resolves.
type pairing struct {
	// id tags this session; delegate callbacks capture it and drop
	// their reply if the session has since been replaced.
	id uint64

	initiator bool

	localCap bredr.IOCapability
	peerCap  bredr.IOCapability

	// preferred is only meaningful for the initiator; a responder
	// never demands stronger security than the peer offers.
	preferred SecurityRequirements

	action        PairingAction
	expectedEvent PairingEvent
	authenticated bool

	// properties is set only once a link key notification has been
	// received. Its absence after success distinguishes a pure
	// re-authentication with an existing key from a fresh negotiation.
	properties *SecurityProperties
}

// computePairingData fills in the derived fields once both IO
// capabilities are known.
func (p *pairing) computePairingData() {
	if p.initiator {
		p.action = SelectInitiatorAction(p.localCap, p.peerCap)
		p.expectedEvent = SelectExpectedEvent(p.localCap, p.peerCap)
	} else {
		p.action = SelectResponderAction(p.peerCap, p.localCap)
		p.expectedEvent = SelectExpectedEvent(p.localCap, p.peerCap)
	}
	p.authenticated = IsAuthenticated(p.localCap, p.peerCap)
}

// pairingRequest is one outstanding caller of InitiatePairing.
type pairingRequest struct {
	requirements SecurityRequirements
	callback     ResultCallback
}

// requestQueue holds outstanding requests in insertion order. Callers
// must drain the queue into a local slice before invoking any
// callback; callbacks may destroy the queue's owner.
type requestQueue struct {
	requests []pairingRequest
}

func (q *requestQueue) push(r pairingRequest) {
	q.requests = append(q.requests, r)
}

func (q *requestQueue) empty() bool {
	return len(q.requests) == 0
}

// drain removes and returns all queued requests.
func (q *requestQueue) drain() []pairingRequest {
	rr := q.requests
	q.requests = nil
	return rr
}

// drainSatisfied removes and returns the requests met by props,
// preserving insertion order of both partitions.
func (q *requestQueue) drainSatisfied(props SecurityProperties) []pairingRequest {
	var met, unmet []pairingRequest
	for _, r := range q.requests {
		if props.Meets(r.requirements) {
			met = append(met, r)
		} else {
			unmet = append(unmet, r)
		}
	}
	q.requests = unmet
	return met
}

// mergedRequirements ORs together the requirement bits of every queued
// request. Used to pick the preferred security of an automatic retry
// round.
func (q *requestQueue) mergedRequirements() SecurityRequirements {
	var req SecurityRequirements
	for _, r := range q.requests {
		req.Authentication = req.Authentication || r.requirements.Authentication
		req.SecureConnections = req.SecureConnections || r.requirements.SecureConnections
	}
	return req
}
