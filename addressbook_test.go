package fileaddr_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hayeah/fileaddr"
)

func createTestDirectory(t *testing.T, files map[string]string) (string, error) {
	t.Helper()
	tempDir := t.TempDir()

	for relPath, content := range files {
		path := filepath.Join(tempDir, relPath)
		dir := filepath.Dir(path)

		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return "", err
		}
		err = os.WriteFile(path, []byte(content), 0644)
		if err != nil {
			return "", err
		}
	}
	return tempDir, nil
}

func TestParseSize(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(1.5, fileaddr.ParseSize("1.5"))
	assert.Equal(2.0, fileaddr.ParseSize(" 2 "))
	assert.Equal(0.0, fileaddr.ParseSize("N/A"))
	assert.Equal(0.0, fileaddr.ParseSize(""))
	assert.Equal(0.0, fileaddr.ParseSize("NaN"))
	assert.Equal(0.0, fileaddr.ParseSize("Inf"))
}

func TestSizeMB(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0.0, fileaddr.SizeMB(0))
	assert.Equal(1.0, fileaddr.SizeMB(1024*1024))
	assert.Equal(0.01, fileaddr.SizeMB(10*1024))
	assert.Equal(2.5, fileaddr.SizeMB(5*512*1024))
}

func TestReadAddressBook(t *testing.T) {
	assert := assert.New(t)

	input := strings.Join([]string{
		"File Path,Size (MB)",
		"a/b/x.txt,1.0",
		"missing-size",
		"a/c.txt,N/A",
		" ,4",
		`"with,comma.txt",0.25,extra`,
	}, "\n") + "\n"

	book, err := fileaddr.ReadAddressBook(strings.NewReader(input))
	assert.NoError(err)
	assert.Equal([]string{"File Path", "Size (MB)"}, book.Header)
	assert.Len(book.Rows, 5, "malformed rows are kept verbatim")

	assert.Equal([]fileaddr.Record{
		{Path: "a/b/x.txt", SizeMB: 1.0},
		{Path: "a/c.txt", SizeMB: 0},
		{Path: "with,comma.txt", SizeMB: 0.25},
	}, book.Records())
}

func TestReadAddressBook_Empty(t *testing.T) {
	assert := assert.New(t)

	book, err := fileaddr.ReadAddressBook(strings.NewReader(""))
	assert.NoError(err)
	assert.Nil(book.Header)
	assert.Empty(book.Records())
}

func TestLoadAddressBook_NoPath(t *testing.T) {
	_, err := fileaddr.LoadAddressBook("")
	assert.ErrorIs(t, err, fileaddr.ErrNoBook)
}

func TestAddressBook_WriteRoundTrip(t *testing.T) {
	assert := assert.New(t)

	input := "File Path,Size (MB)\na/b/x.txt,1.0\n\"with,comma.txt\",0.25,extra\nlonely\n"
	book, err := fileaddr.ReadAddressBook(strings.NewReader(input))
	assert.NoError(err)

	var out strings.Builder
	assert.NoError(book.Write(&out))
	assert.Equal(input, out.String())
}

func TestNewAddressBook(t *testing.T) {
	assert := assert.New(t)

	book := fileaddr.NewAddressBook([]fileaddr.Record{{Path: "/x", SizeMB: 1.25}, {Path: "/y", SizeMB: 0}})
	assert.Equal(fileaddr.DefaultHeader, book.Header)
	assert.Equal([][]string{{"/x", "1.25"}, {"/y", "0"}}, book.Rows)
}

func TestAddressBook_KeepsCRLF(t *testing.T) {
	assert := assert.New(t)

	input := "File Path,Size (MB)\r\na/b/x.txt,1.0\r\na/c.txt,3.0\r\n"
	book, err := fileaddr.ReadAddressBook(strings.NewReader(input))
	assert.NoError(err)
	assert.True(book.CRLF)
	assert.Equal([][]string{{"a/b/x.txt", "1.0"}, {"a/c.txt", "3.0"}}, book.Rows)

	var out strings.Builder
	assert.NoError(book.Write(&out))
	assert.Equal(input, out.String())

	book, err = fileaddr.ReadAddressBook(strings.NewReader("File Path,Size (MB)\na/c.txt,3.0\n"))
	assert.NoError(err)
	assert.False(book.CRLF)
}
