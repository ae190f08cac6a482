package rsvptests

import (
	"github.com/rsvpweb/rsvp-contract-tests/form"
	"github.com/rsvpweb/rsvp-contract-tests/framework"
	"github.com/rsvpweb/rsvp-contract-tests/submit"
)

// Env holds the collaborators a test run drives: the form driver, the
// submission recorder, and whether real submissions are permitted at all.
// Unless Live is set, even cases that expect acceptance are short-circuited
// at the network boundary, because a real submission has an observable effect
// on the spreadsheet behind the deployed endpoint.
type Env struct {
	Driver   form.Driver
	Recorder *submit.Recorder
	Live     bool
}

// T represents a test in the RSVP suite.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner, and with some extra
// features such as debug logging that are convenient for our use case. Those
// features are provided by our lower-level framework package.
//
// To make test assertions, you can use the assert and require packages,
// passing the *T as if it were a *testing.T.
type T struct {
	context *framework.Context
	env     Env
}

// Errorf is called by assertions to log a test failure. It does not cause an
// immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately
// exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// Debug logs some debug output for the test. The output will be passed to the
// test logger at the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) DebugLogger() framework.Logger {
	return t.context.DebugLogger()
}
