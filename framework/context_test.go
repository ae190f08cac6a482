package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	started  []string
	finished []string
	failed   []string
	skipped  []string
	errors   []error
}

func (l *recordingTestLogger) TestStarted(id TestID) { l.started = append(l.started, id.String()) }
func (l *recordingTestLogger) TestError(id TestID, err error) {
	l.errors = append(l.errors, err)
}
func (l *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	l.finished = append(l.finished, id.String())
	if failed {
		l.failed = append(l.failed, id.String())
	}
}
func (l *recordingTestLogger) TestSkipped(id TestID, reason string) {
	l.skipped = append(l.skipped, id.String())
}

func TestRunAccumulatesResultsPerSubtest(t *testing.T) {
	logger := &recordingTestLogger{}

	results := Run(nil, logger, func(c *Context) {
		c.Run("passes", func(c *Context) {})
		c.Run("fails", func(c *Context) {
			c.Errorf("something went wrong")
		})
		c.Run("also passes", func(c *Context) {})
	})

	require.Len(t, results.Failures, 1)
	assert.Equal(t, "fails", results.Failures[0].TestID.String())
	assert.False(t, results.OK())
	require.Len(t, results.Tests, 3)
	assert.Equal(t, 2, results.Passed())

	assert.Equal(t, []string{"passes", "fails", "also passes"}, logger.started)
	assert.Equal(t, []string{"fails"}, logger.failed)
}

func TestFailNowStopsTestButNotRun(t *testing.T) {
	logger := &recordingTestLogger{}
	reachedAfterFailNow := false
	ranNextTest := false

	results := Run(nil, logger, func(c *Context) {
		c.Run("fails fast", func(c *Context) {
			c.Errorf("fatal problem")
			c.FailNow()
			reachedAfterFailNow = true
		})
		c.Run("still runs", func(c *Context) {
			ranNextTest = true
		})
	})

	assert.False(t, reachedAfterFailNow)
	assert.True(t, ranNextTest)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "fails fast", results.Failures[0].TestID.String())
}

func TestUnexpectedPanicIsRecordedAsFailure(t *testing.T) {
	logger := &recordingTestLogger{}

	results := Run(nil, logger, func(c *Context) {
		c.Run("panics", func(c *Context) {
			panic(errors.New("boom"))
		})
	})

	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "boom")
}

func TestSkipWithReasonIsReportedAndNotCounted(t *testing.T) {
	logger := &recordingTestLogger{}

	results := Run(nil, logger, func(c *Context) {
		c.Run("skipped", func(c *Context) {
			c.SkipWithReason("not applicable here")
		})
	})

	assert.True(t, results.OK())
	assert.Equal(t, []string{"skipped"}, logger.skipped)
}

func TestFilterExcludesTests(t *testing.T) {
	logger := &recordingTestLogger{}
	ran := []string{}

	filter := func(id TestID) bool { return id.String() != "excluded" }

	Run(filter, logger, func(c *Context) {
		c.Run("included", func(c *Context) { ran = append(ran, "included") })
		c.Run("excluded", func(c *Context) { ran = append(ran, "excluded") })
	})

	assert.Equal(t, []string{"included"}, ran)
	assert.Equal(t, []string{"excluded"}, logger.skipped)
}

func TestSubtestIDsDoNotAliasEachOther(t *testing.T) {
	var ids []string

	Run(nil, &recordingTestLogger{}, func(c *Context) {
		c.Run("parent", func(c *Context) {
			c.Run("first child", func(c *Context) { ids = append(ids, c.ID().String()) })
			c.Run("second child", func(c *Context) { ids = append(ids, c.ID().String()) })
		})
	})

	assert.Equal(t, []string{"parent/first child", "parent/second child"}, ids)
}

func TestDebugOutputIsCaptured(t *testing.T) {
	var captured CapturedOutput

	logger := &capturingFinishLogger{onFinish: func(out CapturedOutput) { captured = out }}
	Run(nil, logger, func(c *Context) {
		c.Run("has debug output", func(c *Context) {
			c.Debug("detail %d", 1)
			c.Debug("detail %d", 2)
		})
	})

	require.Len(t, captured, 2)
	assert.Equal(t, "detail 1", captured[0].Message)
	assert.Equal(t, "detail 2", captured[1].Message)
}

type capturingFinishLogger struct {
	onFinish func(CapturedOutput)
}

func (l *capturingFinishLogger) TestStarted(TestID)      {}
func (l *capturingFinishLogger) TestError(TestID, error) {}
func (l *capturingFinishLogger) TestFinished(id TestID, failed bool, out CapturedOutput) {
	l.onFinish(out)
}
func (l *capturingFinishLogger) TestSkipped(TestID, string) {}
