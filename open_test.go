package fileaddr_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hayeah/fileaddr"
)

func TestOpenCommand(t *testing.T) {
	assert := assert.New(t)

	cmd := fileaddr.OpenCommand("windows", `C:\a b\x.txt`)
	assert.Equal([]string{"rundll32", "url.dll,FileProtocolHandler", `C:\a b\x.txt`}, cmd.Args)

	cmd = fileaddr.OpenCommand("darwin", "/tmp/x.txt")
	assert.Equal([]string{"open", "/tmp/x.txt"}, cmd.Args)

	cmd = fileaddr.OpenCommand("linux", "/tmp/x.txt")
	assert.Equal([]string{"xdg-open", "/tmp/x.txt"}, cmd.Args)
}

func TestOpen_MissingFile(t *testing.T) {
	err := fileaddr.Open(filepath.Join(t.TempDir(), "gone.txt"))
	assert.ErrorContains(t, err, "failed to open file")
}
