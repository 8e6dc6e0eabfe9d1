// Package source reads and writes ledger files for import and export.
package source

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/theirongolddev/wisespend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParseResult holds the output of parsing one ledger file.
type ParseResult struct {
	Transactions []model.Transaction
	ParseErrors  int
	Err          error
}

// timeLayouts are tried in order for created-at values.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006",
}

// ParseFile reads a discovered file. Malformed records are counted in
// ParseErrors and skipped; only I/O and header problems set Err.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()
	return Parse(f, df.Format)
}

// Parse decodes a ledger stream in the given format.
func Parse(r io.Reader, format Format) ParseResult {
	switch format {
	case CSV:
		return parseCSV(r)
	case JSONL:
		return parseJSONL(r)
	}
	return ParseResult{Err: fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)}
}

func parseJSONL(r io.Reader) ParseResult {
	var res ParseResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec RawRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			res.ParseErrors++
			continue
		}
		tx, err := rec.Transaction()
		if err != nil {
			res.ParseErrors++
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}
	res.Err = scanner.Err()
	return res
}

// csvColumns maps accepted header spellings to RawRecord fields.
var csvColumns = map[string]string{
	"id":         "id",
	"amount":     "amount",
	"type":       "type",
	"category":   "category",
	"createdat":  "createdAt",
	"created_at": "createdAt",
	"date":       "createdAt",
	"note":       "note",
	"intent":     "intent",
}

func parseCSV(r io.Reader) ParseResult {
	var res ParseResult

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return res
		}
		return ParseResult{Err: fmt.Errorf("reading csv header: %w", err)}
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		if field, ok := csvColumns[strings.ToLower(strings.TrimSpace(h))]; ok {
			index[field] = i
		}
	}
	if _, ok := index["amount"]; !ok {
		return ParseResult{Err: errors.New("csv header has no amount column")}
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.ParseErrors++
			continue
		}
		get := func(field string) string {
			i, ok := index[field]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		amount, err := parseDecimal(get("amount"))
		if err != nil {
			res.ParseErrors++
			continue
		}
		rec := RawRecord{
			ID:        get("id"),
			Amount:    amount,
			Type:      get("type"),
			Category:  get("category"),
			CreatedAt: get("createdAt"),
			Note:      get("note"),
			Intent:    get("intent"),
		}
		tx, err := rec.Transaction()
		if err != nil {
			res.ParseErrors++
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}
	return res
}

// Transaction validates the record and converts it. Amounts are rounded to
// whole units and made non-negative; a negative amount without an explicit
// type is read as an expense. Missing IDs get a fresh UUID.
func (rec RawRecord) Transaction() (model.Transaction, error) {
	createdAt, err := ParseTime(rec.CreatedAt)
	if err != nil {
		return model.Transaction{}, err
	}

	var txType model.TxType
	switch strings.ToLower(strings.TrimSpace(rec.Type)) {
	case "", "expense", "debit":
		txType = model.Expense
	case "income", "credit":
		txType = model.Income
	default:
		return model.Transaction{}, fmt.Errorf("unknown transaction type %q", rec.Type)
	}

	id := strings.TrimSpace(rec.ID)
	if id == "" {
		id = uuid.NewString()
	}

	var intent model.Intent
	if txType == model.Expense {
		intent = parseIntent(rec.Intent)
	}

	return model.Transaction{
		ID:        id,
		Amount:    rec.Amount.Abs().Round(0).IntPart(),
		Type:      txType,
		Category:  model.NormalizeCategory(rec.Category),
		CreatedAt: createdAt,
		Note:      strings.TrimSpace(rec.Note),
		Intent:    intent,
	}, nil
}

func parseIntent(s string) model.Intent {
	for _, in := range []model.Intent{model.IntentEssential, model.IntentComfort, model.IntentImpulse} {
		if strings.EqualFold(string(in), strings.TrimSpace(s)) {
			return in
		}
	}
	return ""
}

// ParseTime reads a timestamp in any of the accepted import layouts, in the
// local zone unless the value carries an offset.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("missing createdAt")
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// ParseAmount reads a user-entered amount such as "1,500" or "249.50" and
// rounds it to whole units.
func ParseAmount(s string) (int64, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %q is negative", s)
	}
	return d.Round(0).IntPart(), nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
}
