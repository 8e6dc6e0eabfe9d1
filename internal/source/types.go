package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor JSONL.
var ErrUnsupportedFormat = errors.New("unsupported ledger format")

// Format is a ledger file encoding.
type Format string

const (
	CSV   Format = "csv"
	JSONL Format = "jsonl"
)

// ParseFormat resolves a format name as given on the command line.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return CSV, nil
	case "jsonl", "ndjson":
		return JSONL, nil
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnsupportedFormat)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%s: no extension: %w", path, ErrUnsupportedFormat)
	}
	return ParseFormat(ext)
}

// RawRecord is one transaction as it appears in an import file. Amount
// accepts JSON numbers and strings, with decimals.
type RawRecord struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
	Category  string          `json:"category"`
	CreatedAt string          `json:"createdAt"`
	Note      string          `json:"note,omitempty"`
	Intent    string          `json:"intent,omitempty"`
}

// DiscoveredFile is an importable ledger file found on disk.
type DiscoveredFile struct {
	Path   string
	Format Format
}
