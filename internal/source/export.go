package source

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/theirongolddev/wisespend/internal/model"
)

var csvHeader = []string{"id", "amount", "type", "category", "createdAt", "note", "intent"}

// Write encodes txs in the given format.
func Write(w io.Writer, format Format, txs []model.Transaction) error {
	switch format {
	case CSV:
		return WriteCSV(w, txs)
	case JSONL:
		return WriteJSONL(w, txs)
	}
	return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
}

// WriteCSV writes a header row followed by one row per transaction.
func WriteCSV(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, tx := range txs {
		row := []string{
			tx.ID,
			strconv.FormatInt(tx.Amount, 10),
			string(tx.Type),
			string(tx.Category),
			tx.CreatedAt.Format(time.RFC3339),
			tx.Note,
			string(tx.Intent),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSONL writes one JSON object per line.
func WriteJSONL(w io.Writer, txs []model.Transaction) error {
	enc := json.NewEncoder(w)
	for _, tx := range txs {
		if err := enc.Encode(tx); err != nil {
			return fmt.Errorf("encoding %s: %w", tx.ID, err)
		}
	}
	return nil
}
