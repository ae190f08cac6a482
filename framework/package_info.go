// Package framework contains the low-level test harness infrastructure that is
// not specific to the RSVP form domain.
//
// The general model is:
//
// 1. There is a notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to
// accumulate success/failure results.
//
// 2. Tests can be selected or excluded with regex filters, and each test can
// accumulate debug output that is only shown when the test logger asks for it.
//
// 3. Results are accumulated across the whole run and printed at the end.
//
// The domain-specific code that knows what is being tested - which form fields
// to populate, how to observe a submission attempt - lives in the higher-level
// rsvptests package.
package framework
