package assert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayeah/fileaddr"
)

// Assert is a wrapper around assert.Assertions and testing.T
type Assert struct {
	*assert.Assertions
	T *testing.T
}

// New creates a new Assert object
func New(t *testing.T) *Assert {
	return &Assert{
		Assertions: assert.New(t),
		T:          t,
	}
}

// EqualToFixture compares result with the fixture file
// fixtures/<a.T.Name()>_<fixtureName>.txt.
// If GEN_FIXTURE=true is set, it writes result to the fixture file and passes the test.
func (a *Assert) EqualToFixture(fixtureName string, result string) {
	fixturePath := filepath.Join("fixtures", fmt.Sprintf("%s_%s.txt", a.T.Name(), fixtureName))

	if os.Getenv("GEN_FIXTURE") == "true" {
		err := os.MkdirAll(filepath.Dir(fixturePath), 0755)
		a.NoError(err, "Failed to create fixture directory")
		err = os.WriteFile(fixturePath, []byte(result), 0644)
		a.NoError(err, "Failed to write fixture file")
		return
	}

	expected, err := os.ReadFile(fixturePath)
	a.NoError(err, "Failed to read fixture file")
	a.Equal(string(expected), result, "Result does not match fixture")
}

// CSVFile writes header and rows to name under the test's temp dir and
// returns its path.
func (a *Assert) CSVFile(name string, header []string, rows ...[]string) string {
	a.T.Helper()
	path := filepath.Join(a.T.TempDir(), name)
	var b strings.Builder
	book := &fileaddr.AddressBook{Header: header, Rows: rows}
	require.NoError(a.T, book.Write(&b))
	require.NoError(a.T, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

// BookRows loads the address book at path and returns its rows.
func (a *Assert) BookRows(path string) [][]string {
	a.T.Helper()
	book, err := fileaddr.LoadAddressBook(path)
	require.NoError(a.T, err)
	return book.Rows
}
