package model

import (
	"strings"
	"unicode/utf8"
)

// PartNumberMaxLen is the maximum number of characters kept from a part number.
const PartNumberMaxLen = 6

// StockRecord is one row of the inventory table, keyed by PartNumber.
type StockRecord struct {
	PartNumber string `json:"part_number"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Unit       string `json:"unit"`
}

// NormalizePartNumber trims surrounding whitespace and cuts a part number down
// to PartNumberMaxLen characters.
func NormalizePartNumber(partNumber string) string {
	partNumber = strings.TrimSpace(partNumber)
	if utf8.RuneCountInString(partNumber) <= PartNumberMaxLen {
		return partNumber
	}
	return string([]rune(partNumber)[:PartNumberMaxLen])
}
