package fileaddr

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultHeader is the header row written by the scanner.
var DefaultHeader = []string{"File Path", "Size (MB)"}

// ErrNoBook is returned when no address book path was configured.
var ErrNoBook = errors.New("no address book specified")

// AddressBook is the parsed content of an address book CSV. The header and
// every row are kept verbatim so that rewriting the file preserves columns
// the tool does not interpret.
type AddressBook struct {
	Header []string
	Rows   [][]string
	// CRLF is set when the book was read with \r\n line endings, so that a
	// rewrite keeps them.
	CRLF bool
}

// ReadAddressBook parses an address book. The first row is taken as the
// header. Rows may have any number of fields.
func ReadAddressBook(r io.Reader) (*AddressBook, error) {
	br := bufio.NewReader(r)
	book := &AddressBook{CRLF: hasCRLF(br)}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read address book: %w", err)
		}
		if book.Header == nil {
			book.Header = row
			continue
		}
		book.Rows = append(book.Rows, row)
	}
	return book, nil
}

// LoadAddressBook reads the address book at path.
func LoadAddressBook(path string) (*AddressBook, error) {
	if path == "" {
		return nil, ErrNoBook
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open address book: %w", err)
	}
	defer f.Close()
	return ReadAddressBook(f)
}

// NewAddressBook builds an address book with the default header from records.
func NewAddressBook(records []Record) *AddressBook {
	book := &AddressBook{Header: append([]string(nil), DefaultHeader...)}
	for _, rec := range records {
		book.Rows = append(book.Rows, []string{rec.Path, FormatSize(rec.SizeMB)})
	}
	return book
}

// Records returns the rows that describe an address. Rows without a size
// column or with an empty path are skipped.
func (b *AddressBook) Records() []Record {
	records := make([]Record, 0, len(b.Rows))
	for _, row := range b.Rows {
		if len(row) < 2 {
			continue
		}
		path := strings.TrimSpace(row[0])
		if path == "" {
			continue
		}
		records = append(records, Record{Path: path, SizeMB: ParseSize(row[1])})
	}
	return records
}

// Write encodes the header and rows as CSV.
func (b *AddressBook) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = b.CRLF
	if b.Header != nil {
		if err := cw.Write(b.Header); err != nil {
			return err
		}
	}
	if err := cw.WriteAll(b.Rows); err != nil {
		return fmt.Errorf("failed to write address book: %w", err)
	}
	return nil
}

// hasCRLF reports whether the first line of r ends in \r\n, without
// consuming any input.
func hasCRLF(r *bufio.Reader) bool {
	for n := 64; ; n *= 2 {
		buf, err := r.Peek(n)
		if i := bytes.IndexByte(buf, '\n'); i >= 0 {
			return i > 0 && buf[i-1] == '\r'
		}
		if err != nil {
			return false
		}
	}
}

// rowPath is the path field of a row as it is compared on delete.
func rowPath(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return strings.TrimSpace(row[0])
}
