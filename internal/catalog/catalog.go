// Package catalog loads book seed files: gzipped JSON lines, one book per line.
package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/KhashayarRezaei/bookverse/internal/model"

	"github.com/shopspring/decimal"
)

// Loader defines the interface for loading catalog seed files.
type Loader interface {
	// Load reads a gzipped JSON-lines file and returns the books it describes.
	Load(ctx context.Context, path string) ([]model.Book, error)
}

// record is one line of a seed file.
type record struct {
	Title  string          `json:"title"`
	Author string          `json:"author"`
	ISBN   string          `json:"isbn"`
	Price  decimal.Decimal `json:"price"`
}

func (r record) validate() error {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return fmt.Errorf("title is required")
	case strings.TrimSpace(r.ISBN) == "":
		return fmt.Errorf("isbn is required")
	case r.Price.IsNegative():
		return fmt.Errorf("price must not be negative")
	}
	return nil
}

// checkEvery is how many lines are read between context checks.
const checkEvery = 10_000

// decode reads gzipped JSON lines from r. Blank lines are skipped and a later
// line with the same ISBN replaces an earlier one.
func decode(ctx context.Context, r io.Reader) ([]model.Book, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	var books []model.Book
	index := make(map[string]int)

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := rec.validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		book := model.Book{
			Title:  strings.TrimSpace(rec.Title),
			Author: strings.TrimSpace(rec.Author),
			ISBN:   strings.TrimSpace(rec.ISBN),
			Price:  rec.Price.Round(2),
		}
		if i, ok := index[book.ISBN]; ok {
			books[i] = book
			continue
		}
		index[book.ISBN] = len(books)
		books = append(books, book)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	return books, nil
}
