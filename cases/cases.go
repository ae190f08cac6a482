// Package cases loads the table of RSVP form test cases that drives a test run.
//
// The table is a comma-separated text file whose first line names the columns.
// The quoting rules are deliberately simpler than RFC 4180: a double quote
// toggles an "inside literal" mode so that commas inside a quoted span do not
// split the field, quote characters themselves are stripped, and there is no
// escaped-quote syntax. This matches the format the RSVP test tables have
// always been written in.
package cases

import (
	"fmt"
	"os"
	"strings"
)

// Expectation is the outcome a test case expects from the form: either the
// form accepts the input and attempts a submission, or it rejects the input
// and no submission occurs.
type Expectation string

const (
	ExpectAccept Expectation = "accept"
	ExpectReject Expectation = "reject"
)

// TestCase is one row of the test table. Description and Expect are always
// set; every other field defaults to the empty string, which the driver
// treats as "leave this control blank".
type TestCase struct {
	Description   string
	Expect        Expectation
	Name          string
	Email         string
	Attending     string
	GuestNames    string
	Dietary       string
	Song          string
	Advice        string
	FunFact       string
	OtherQuestion string
	Taxi          string
}

// Load reads and parses a test table file. A failure here is fatal to the
// whole run: no tests are attempted if the table cannot be read.
func Load(path string) ([]TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		wd, _ := os.Getwd()
		return nil, fmt.Errorf("could not read test case table %q: %w (working directory is %q - run the harness from the repository root or pass -cases)", path, err, wd)
	}
	return ParseTable(string(data)), nil
}

// ParseTable parses the table text into test cases. The first line is the
// header row; column order in the header determines which value maps to which
// TestCase field. Rows shorter than the header yield empty-string defaults for
// the missing trailing columns, and unknown header names are ignored.
func ParseTable(text string) []TestCase {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 || lines[0] == "" {
		return nil
	}
	headers := splitRow(lines[0])

	var cases []TestCase
	for _, line := range lines[1:] {
		values := splitRow(line)
		tc := TestCase{Expect: ExpectReject}
		for i, header := range headers {
			var value string
			if i < len(values) {
				value = values[i]
			}
			tc.setField(header, value)
		}
		cases = append(cases, tc)
	}
	return cases
}

// splitRow splits one line on commas, except inside a double-quoted span.
// Quotes toggle the literal mode and are stripped from the output; every
// field is whitespace-trimmed.
func splitRow(line string) []string {
	var fields []string
	var current strings.Builder
	inLiteral := false
	for _, r := range line {
		switch {
		case r == '"':
			inLiteral = !inLiteral
		case r == ',' && !inLiteral:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

func (tc *TestCase) setField(header, value string) {
	switch strings.ToLower(header) {
	case "description":
		tc.Description = value
	case "expect":
		if value != "" {
			tc.Expect = Expectation(strings.ToLower(value))
		}
	case "name":
		tc.Name = value
	case "email":
		tc.Email = value
	case "attending":
		tc.Attending = value
	case "guestnames":
		tc.GuestNames = value
	case "dietary":
		tc.Dietary = value
	case "song":
		tc.Song = value
	case "advice":
		tc.Advice = value
	case "funfact":
		tc.FunFact = value
	case "otherquestion":
		tc.OtherQuestion = value
	case "taxi":
		tc.Taxi = value
	}
}
