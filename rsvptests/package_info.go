// Package rsvptests contains the RSVP form contract tests themselves and
// their supporting API.
//
// Test harness infrastructure that is not specific to the RSVP form, such as
// test contexts, filtering, and result accumulation, is in the lower-level
// framework package. The actual mutation of the live form is behind the
// form.Driver interface, and the observation of submission attempts is
// behind the submit.Recorder.
package rsvptests
