package flatfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ParseError reports a row that could not be decoded under the expected delimiter.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s line %d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Options controls how a flat file is decoded.
type Options struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
	// LazyQuotes accepts bare quotes inside unquoted fields, as needed for
	// rows that carry a raw JSON blob.
	LazyQuotes bool
	// Keep, when set, drops every row for which it returns false.
	Keep func(row []string) bool
}

func newReader(r io.Reader, opts Options) *csv.Reader {
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = opts.LazyQuotes
	return cr
}

func parseError(path string, err error) *ParseError {
	line := 0
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		line = perr.Line
	}
	return &ParseError{Path: path, Line: line, Err: err}
}

// StreamRows calls fn for every kept row in file order without materialising
// the file. line is the physical line the row starts on. The row slice passed to
// fn is only valid for the duration of the call.
// Nothing is cached: each call re-opens and re-parses the file. A missing file
// yields an error matching fs.ErrNotExist; an undecodable row yields a *ParseError.
func StreamRows(path string, opts Options, fn func(line int, row []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	cr := newReader(f, opts)
	cr.ReuseRecord = true

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return parseError(path, err)
		}
		if opts.Keep != nil && !opts.Keep(row) {
			continue
		}
		line, _ := cr.FieldPos(0)
		if err := fn(line, row); err != nil {
			return err
		}
	}
}
