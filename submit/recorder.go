// Package submit models the outbound-submission boundary of the RSVP form.
//
// The harness has no direct hook into the form's validation logic, so it
// infers acceptance or rejection purely from whether the form attempted a
// network call to the submission endpoint. The Recorder is the injectable
// capability that makes that observation: the browser driver consults it for
// every outbound request and acts on the decision it returns.
package submit

import (
	"strings"
	"sync"
)

// Decision is what should happen to one outbound request.
type Decision int

const (
	// Ignore means the request does not target the submission endpoint and
	// must pass through untouched.
	Ignore Decision = iota
	// ShortCircuit means the request targets the submission endpoint but must
	// be answered with a synthetic empty 200 response, performing no real I/O.
	ShortCircuit
	// PassThrough means the request targets the submission endpoint and the
	// real network call is currently allowed, so it must be forwarded as-is.
	PassThrough
)

// Recorder observes outbound requests and classifies the ones that target the
// submission endpoint. The test driver resets it at the start of every
// iteration; the browser's request interceptor calls Observe from its own
// goroutine, so all state is lock-guarded.
type Recorder struct {
	marker    string
	lock      sync.Mutex
	called    bool
	allowReal bool
}

// NewRecorder creates a Recorder that treats any URL containing the marker
// substring as a call to the submission endpoint.
func NewRecorder(marker string) *Recorder {
	return &Recorder{marker: marker}
}

// BeginIteration clears the call-observed flag and revokes permission for
// real submissions. The driver calls this before every test case.
func (r *Recorder) BeginIteration() {
	r.lock.Lock()
	r.called = false
	r.allowReal = false
	r.lock.Unlock()
}

// AllowReal grants or revokes permission for a real submission to go out on
// the wire. The driver sets this just before triggering the form's submit,
// and only for cases that expect an accepted submission.
func (r *Recorder) AllowReal(allow bool) {
	r.lock.Lock()
	r.allowReal = allow
	r.lock.Unlock()
}

// Called reports whether a submission call was observed since the last
// BeginIteration.
func (r *Recorder) Called() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.called
}

// Observe classifies one outbound request by URL. Requests to the submission
// endpoint are recorded; everything else is ignored.
func (r *Recorder) Observe(url string) Decision {
	if !strings.Contains(url, r.marker) {
		return Ignore
	}
	r.lock.Lock()
	r.called = true
	allow := r.allowReal
	r.lock.Unlock()
	if allow {
		return PassThrough
	}
	return ShortCircuit
}
