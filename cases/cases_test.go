package cases

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTableQuotedCommaRoundTrip(t *testing.T) {
	table := "description,expect,name\n" +
		`"Basic, valid",accept,"Jane Doe"`

	cases := ParseTable(table)

	require.Len(t, cases, 1)
	assert.Equal(t, "Basic, valid", cases[0].Description)
	assert.Equal(t, ExpectAccept, cases[0].Expect)
	assert.Equal(t, "Jane Doe", cases[0].Name)
}

func TestParseTableMissingTrailingColumnsDefaultToEmpty(t *testing.T) {
	table := "description,expect,name,email\nTest1,reject,Bob"

	cases := ParseTable(table)

	require.Len(t, cases, 1)
	assert.Equal(t, "Test1", cases[0].Description)
	assert.Equal(t, ExpectReject, cases[0].Expect)
	assert.Equal(t, "Bob", cases[0].Name)
	assert.Equal(t, "", cases[0].Email)
}

func TestParseTableExpectDefaultsToReject(t *testing.T) {
	t.Run("column absent", func(t *testing.T) {
		cases := ParseTable("description,name\nNo expectation,Alice")
		require.Len(t, cases, 1)
		assert.Equal(t, ExpectReject, cases[0].Expect)
	})

	t.Run("value empty", func(t *testing.T) {
		cases := ParseTable("description,expect,name\nEmpty expectation,,Alice")
		require.Len(t, cases, 1)
		assert.Equal(t, ExpectReject, cases[0].Expect)
	})
}

func TestParseTableTrimsWhitespaceAndBlankTrailingLines(t *testing.T) {
	table := " description , expect , name \n First case , accept , Jane \n\n\n"

	cases := ParseTable(table)

	require.Len(t, cases, 1)
	assert.Equal(t, "First case", cases[0].Description)
	assert.Equal(t, ExpectAccept, cases[0].Expect)
	assert.Equal(t, "Jane", cases[0].Name)
}

func TestParseTableHandlesWindowsLineEndings(t *testing.T) {
	table := "description,expect,name\r\nCRLF case,accept,Jane\r\n"

	cases := ParseTable(table)

	require.Len(t, cases, 1)
	assert.Equal(t, "CRLF case", cases[0].Description)
	assert.Equal(t, "Jane", cases[0].Name)
}

func TestParseTableMapsAllKnownColumns(t *testing.T) {
	table := "description,expect,name,email,attending,guestnames,dietary,song,advice,funfact,otherquestion,taxi\n" +
		`Full row,accept,Jane,jane@example.com,yes,"Bob, Sue",vegan,Song A,Be kind,Juggles,None,no`

	cases := ParseTable(table)

	require.Len(t, cases, 1)
	tc := cases[0]
	assert.Equal(t, "Jane", tc.Name)
	assert.Equal(t, "jane@example.com", tc.Email)
	assert.Equal(t, "yes", tc.Attending)
	assert.Equal(t, "Bob, Sue", tc.GuestNames)
	assert.Equal(t, "vegan", tc.Dietary)
	assert.Equal(t, "Song A", tc.Song)
	assert.Equal(t, "Be kind", tc.Advice)
	assert.Equal(t, "Juggles", tc.FunFact)
	assert.Equal(t, "None", tc.OtherQuestion)
	assert.Equal(t, "no", tc.Taxi)
}

func TestParseTableIgnoresUnknownColumns(t *testing.T) {
	cases := ParseTable("description,expect,unknowncolumn\nHas extra,accept,whatever")

	require.Len(t, cases, 1)
	assert.Equal(t, "Has extra", cases[0].Description)
	assert.Equal(t, ExpectAccept, cases[0].Expect)
}

func TestParseTableEmptyInput(t *testing.T) {
	assert.Nil(t, ParseTable(""))
	assert.Nil(t, ParseTable("description,expect\n"))
}

func TestLoadReadsTableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.csv")
	require.NoError(t, os.WriteFile(path, []byte("description,expect,name\nFrom file,accept,Jane\n"), 0600))

	cases, err := Load(path)

	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "From file", cases[0].Description)
}

func TestLoadFailureNamesPathAndWorkingDirectory(t *testing.T) {
	_, err := Load("no-such-table.csv")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-table.csv")
	assert.Contains(t, err.Error(), "working directory")
}
