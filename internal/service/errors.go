package service

import (
	"errors"
	"fmt"

	"go-stock-ledger/internal/model"
)

var (
	ErrPartNotFound    = errors.New("part number not found")
	ErrNoStock         = errors.New("no stock registered")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrEmptyPartNumber = errors.New("part number is required")
)

// DuplicatePartError is returned when registering a part number that already
// exists. Existing is the record currently stored under that number.
type DuplicatePartError struct {
	Existing model.StockRecord
}

func (e *DuplicatePartError) Error() string {
	return fmt.Sprintf("part number %q (%s) already exists", e.Existing.PartNumber, e.Existing.Name)
}

type InsufficientStockError struct {
	Record    model.StockRecord
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for part %q (%s): %d %s available, %d requested",
		e.Record.PartNumber, e.Record.Name, e.Record.Quantity, e.Record.Unit, e.Requested)
}
