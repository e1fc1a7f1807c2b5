package model

import "time"

type Operation string

const (
	OpInbound  Operation = "inbound"
	OpOutbound Operation = "outbound"
)

// TimestampLayout is the on-disk format of HistoryEntry.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// HistoryEntry records a single stock movement.
type HistoryEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	Operation  Operation `json:"operation"`
	PartNumber string    `json:"part_number"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	Unit       string    `json:"unit"`
}

// Valid reports whether op is one of the known operations.
func (op Operation) Valid() bool {
	return op == OpInbound || op == OpOutbound
}
