package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Passed returns the number of tests that ran and did not fail.
func (r Results) Passed() int {
	return len(r.Tests) - len(r.Failures)
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// PrintResults writes the end-of-run report: the list of failed tests if there
// were any, a summary line, and a closing note when everything passed.
func PrintResults(dest io.Writer, results Results) {
	fmt.Fprintln(dest)
	if len(results.Failures) > 0 {
		color.New(color.FgRed).Fprintf(dest, "FAILED TESTS (%d):\n", len(results.Failures))
		for _, f := range results.Failures {
			fmt.Fprintf(dest, "  * %s\n", f.TestID)
			for _, err := range f.Errors {
				for _, line := range strings.Split(err.Error(), "\n") {
					fmt.Fprintf(dest, "      %s\n", line)
				}
			}
		}
		fmt.Fprintln(dest)
	}

	fmt.Fprintf(dest, "Results: %d passed, %d failed, %d total\n",
		results.Passed(), len(results.Failures), len(results.Tests))

	if results.OK() && len(results.Tests) > 0 {
		color.New(color.FgGreen).Fprintln(dest,
			"All tests passed. The form's client-side behavior matches every expectation in the test table.")
	}
}
