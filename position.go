package cartera

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/cartera/date"
	"github.com/google/uuid"
)

// RawPosition is one purchase record, as persisted.
type RawPosition struct {
	ID       string
	Ticker   string
	Name     string
	Type     AssetType
	Quantity Quantity
	Cost     Money // per unit, in the currency it was paid in
	Date     date.Date
	Favorite bool
}

// NewPosition returns a purchase record with a fresh ID.
func NewPosition(t AssetType, ticker, name string, quantity Quantity, cost Money, on date.Date) RawPosition {
	return RawPosition{
		ID:       uuid.NewString(),
		Ticker:   strings.ToUpper(strings.TrimSpace(ticker)),
		Name:     strings.TrimSpace(name),
		Type:     t,
		Quantity: quantity,
		Cost:     cost,
		Date:     on,
	}
}

// Key returns the asset key of the record.
func (p RawPosition) Key() AssetKey { return KeyOf(p.Type, p.Ticker) }

// contributes reports whether p carries a usable quantity and cost. Records
// that do not contribute nothing to weighted averages.
func (p RawPosition) contributes() bool {
	return p.Quantity.IsPositive() && p.Cost.IsPositive()
}

// Validate returns an error with all the validation failures of p.
func (p RawPosition) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Ticker) == "" {
		errs = append(errs, errors.New("ticker is required"))
	}
	if !p.Type.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %d", ErrUnknownAssetType, int(p.Type)))
	}
	if !p.Quantity.IsPositive() {
		errs = append(errs, fmt.Errorf("quantity must be positive, got %v", p.Quantity))
	} else if (p.Type == Stock || p.Type == DepositaryReceipt) && !p.Quantity.IsInteger() {
		errs = append(errs, fmt.Errorf("%s quantity must be a whole number, got %v", p.Type, p.Quantity))
	}
	if !p.Cost.IsPositive() {
		errs = append(errs, fmt.Errorf("purchase price must be positive, got %v", p.Cost.value))
	}
	if _, err := ParseCurrency(string(p.Cost.cur)); err != nil {
		errs = append(errs, err)
	}
	if p.Date.IsZero() {
		errs = append(errs, errors.New("purchase date is required"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w %s %q: %w", ErrInvalidPosition, p.ID, p.Ticker, errors.Join(errs...))
}

// SplitValid separates valid records from invalid ones. The returned error
// joins the validation failures of all the invalid records.
func SplitValid(positions []RawPosition) (valid []RawPosition, err error) {
	var errs []error
	valid = make([]RawPosition, 0, len(positions))
	for _, p := range positions {
		if e := p.Validate(); e != nil {
			errs = append(errs, e)
			continue
		}
		valid = append(valid, p)
	}
	return valid, errors.Join(errs...)
}

// FindPosition returns the index of the record whose ID is id, or starts with
// id when it is an unambiguous prefix.
func FindPosition(positions []RawPosition, id string) (int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	found := -1
	for i, p := range positions {
		if p.ID == id {
			return i, nil
		}
		if strings.HasPrefix(p.ID, id) {
			if found >= 0 {
				return -1, fmt.Errorf("%w: %q", ErrAmbiguousID, id)
			}
			found = i
		}
	}
	if found < 0 {
		return -1, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return found, nil
}
