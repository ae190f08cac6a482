package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/rsvpweb/rsvp-contract-tests/framework"
)

type commandParams struct {
	pageURL   string
	casesPath string
	marker    string
	live      bool
	headless  bool
	filters   framework.RegexFilters
	debug     bool
	debugAll  bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.pageURL, "url", "", "URL of the RSVP page under test")
	fs.StringVar(&c.casesPath, "cases", defaultCasesPath, "path of the test case table")
	fs.StringVar(&c.marker, "marker", defaultMarker, "substring identifying the submission endpoint URL")
	fs.BoolVar(&c.live, "live", false, "allow real submissions for cases that expect acceptance")
	fs.BoolVar(&c.headless, "headless", true, "run the browser headless")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.pageURL == "" {
		fmt.Fprintln(os.Stderr, "-url is required")
		fs.Usage()
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand builds a shell command that reruns only the tests that failed.
func rerunCommand(params commandParams, results framework.Results) string {
	var b commandBuilder
	b.add(os.Args[0], "-url", params.pageURL)
	if params.casesPath != defaultCasesPath {
		b.add("-cases", params.casesPath)
	}
	if params.marker != defaultMarker {
		b.add("-marker", params.marker)
	}
	if params.live {
		b.add("-live")
	}
	var patterns []string
	for _, f := range results.Failures {
		patterns = append(patterns, "^"+regexp.QuoteMeta(f.TestID.String())+"$")
	}
	b.add("-run", strings.Join(patterns, "|"))
	return b.String()
}
