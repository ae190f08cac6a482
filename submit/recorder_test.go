package submit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMarker = "script.google.com/macros"
const submissionURL = "https://script.google.com/macros/s/ABC123/exec"

func TestObserveIgnoresUnrelatedURLs(t *testing.T) {
	r := NewRecorder(testMarker)
	r.BeginIteration()

	assert.Equal(t, Ignore, r.Observe("https://fonts.example.com/style.css"))
	assert.False(t, r.Called(), "unrelated URL should not count as a submission call")
}

func TestObserveShortCircuitsSubmissionByDefault(t *testing.T) {
	r := NewRecorder(testMarker)
	r.BeginIteration()

	assert.Equal(t, ShortCircuit, r.Observe(submissionURL))
	assert.True(t, r.Called())
}

func TestObservePassesThroughWhenRealAllowed(t *testing.T) {
	r := NewRecorder(testMarker)
	r.BeginIteration()
	r.AllowReal(true)

	assert.Equal(t, PassThrough, r.Observe(submissionURL))
	assert.True(t, r.Called())
}

func TestBeginIterationResetsBothFlags(t *testing.T) {
	r := NewRecorder(testMarker)
	r.AllowReal(true)
	r.Observe(submissionURL)
	require.True(t, r.Called())

	r.BeginIteration()

	assert.False(t, r.Called())
	assert.Equal(t, ShortCircuit, r.Observe(submissionURL), "allow-real must not carry over between iterations")
}

// Simulates the browser side of the boundary: deliver the request for real
// only when the recorder says PassThrough. This mirrors what the hijack
// handler in the form package does.
func deliverIfAllowed(t *testing.T, r *Recorder, url string) {
	if r.Observe(url) == PassThrough {
		resp, err := http.Get(url)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}
}

func TestRejectedIterationNeverReachesTheRealEndpoint(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	server := httptest.NewServer(handler)
	defer server.Close()

	r := NewRecorder(server.URL)
	r.BeginIteration()

	deliverIfAllowed(t, r, server.URL+"/exec")

	assert.True(t, r.Called())
	assert.Equal(t, 0, len(requestsCh), "short-circuited submission must not perform real I/O")
}

func TestAcceptedIterationReachesTheRealEndpointExactlyOnce(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	server := httptest.NewServer(handler)
	defer server.Close()

	r := NewRecorder(server.URL)
	r.BeginIteration()
	r.AllowReal(true)

	deliverIfAllowed(t, r, server.URL+"/exec")
	deliverIfAllowed(t, r, "https://unrelated.example.com/analytics")

	assert.True(t, r.Called())
	assert.Equal(t, 1, len(requestsCh))
}
