package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"

	"github.com/rsvpweb/rsvp-contract-tests/cases"
	"github.com/rsvpweb/rsvp-contract-tests/form"
	"github.com/rsvpweb/rsvp-contract-tests/framework"
	"github.com/rsvpweb/rsvp-contract-tests/rsvptests"
	"github.com/rsvpweb/rsvp-contract-tests/submit"
)

const defaultCasesPath = "testdata/rsvp_cases.csv"
const defaultMarker = "script.google.com/macros"
const pageReadyTimeout = time.Second * 10

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	diagLogger := framework.NullLogger()
	if params.debugAll {
		handler := tint.NewHandler(colorable.NewColorableStdout(), &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.TimeOnly,
		})
		diagLogger = framework.SlogLogger(slog.New(handler))
	}

	testCases, err := cases.Load(params.casesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	if err := form.AwaitPageReady(params.pageURL, pageReadyTimeout, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "RSVP page error: %s\n", err)
		os.Exit(1)
	}

	recorder := submit.NewRecorder(params.marker)
	driver, err := form.NewBrowserDriver(
		params.pageURL,
		form.DefaultSelectors(),
		recorder,
		params.headless,
		diagLogger,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Browser error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)
	if params.live {
		color.New(color.FgYellow).Println(
			"Live mode: cases that expect acceptance will perform a REAL submission to the deployed endpoint.")
		fmt.Println()
	}

	fmt.Printf("Running %d test cases from %s\n", len(testCases), params.casesPath)

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	env := rsvptests.Env{Driver: driver, Recorder: recorder, Live: params.live}
	results := rsvptests.RunTestSuite(env, testCases, params.filters.AsFilter, testLogger)

	if err := driver.Close(); err != nil {
		diagLogger.Printf("error closing browser: %s", err)
	}

	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To rerun only the failed tests:")
		fmt.Printf("  %s\n", rerunCommand(params, results))
		os.Exit(1)
	}
}
