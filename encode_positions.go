package cartera

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/cartera/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// MarshalJSON writes the record with a stable field order.
func (p RawPosition) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("ticker", p.Ticker)
	w.Optional("name", p.Name)
	w.Append("type", p.Type)
	w.Append("quantity", p.Quantity)
	w.Append("price", p.Cost.value)
	w.Append("currency", p.Cost.cur)
	w.Append("date", p.Date)
	w.Optional("favorite", p.Favorite)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a record. Type labels are normalized, "accion" reads as
// Stock.
func (p *RawPosition) UnmarshalJSON(b []byte) error {
	var temp struct {
		ID       string          `json:"id"`
		Ticker   string          `json:"ticker"`
		Name     string          `json:"name"`
		Type     AssetType       `json:"type"`
		Quantity Quantity        `json:"quantity"`
		Price    decimal.Decimal `json:"price"`
		Currency Currency        `json:"currency"`
		Date     date.Date       `json:"date"`
		Favorite bool            `json:"favorite"`
	}
	if err := json.Unmarshal(b, &temp); err != nil {
		return err
	}
	*p = RawPosition{
		ID:       temp.ID,
		Ticker:   temp.Ticker,
		Name:     temp.Name,
		Type:     temp.Type,
		Quantity: temp.Quantity,
		Cost:     M(temp.Price, temp.Currency),
		Date:     temp.Date,
		Favorite: temp.Favorite,
	}
	return nil
}

// DecodePositions decodes records from a stream of JSONL data, one record
// per line. Records are returned in file order, they are not validated.
func DecodePositions(r io.Reader) ([]RawPosition, error) {
	var positions []RawPosition
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var p RawPosition
		if err := json.Unmarshal(lineBytes, &p); err != nil {
			return nil, fmt.Errorf("line %d: cannot decode position %q: %w", line, string(lineBytes), err)
		}
		positions = append(positions, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return positions, nil
}

// EncodePosition writes a single record as one JSON line.
func EncodePosition(w io.Writer, p RawPosition) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("cannot encode position %s: %w", p.ID, err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// EncodePositions writes all records, one JSON line each.
func EncodePositions(w io.Writer, positions []RawPosition) error {
	for _, p := range positions {
		if err := EncodePosition(w, p); err != nil {
			return err
		}
	}
	return nil
}

// LoadPositions reads the records of a JSONL file. A missing file holds no
// records.
func LoadPositions(filename string) ([]RawPosition, error) {
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	positions, err := DecodePositions(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", filename, err)
	}
	return positions, nil
}

// SavePositions replaces the content of filename with positions. The file is
// written next to its final location and renamed, so it is never left half
// written.
func SavePositions(filename string, positions []RawPosition) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if err := EncodePositions(w, positions); err != nil {
		tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}

// AppendPosition appends a single record to filename, creating it if needed.
func AppendPosition(filename string, p RawPosition) error {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if err := EncodePosition(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
