package cartera

import "errors"

var (
	ErrInvalidPosition  = errors.New("invalid position")
	ErrUnknownAssetType = errors.New("unknown asset type")
	ErrUnknownCurrency  = errors.New("unknown currency")
	ErrUnknownSortMode  = errors.New("unknown sort mode")
	ErrNotFound         = errors.New("position not found")
	ErrAmbiguousID      = errors.New("ambiguous position id")
)
