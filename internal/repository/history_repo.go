package repository

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"go-stock-ledger/internal/model"

	"go.uber.org/zap"
)

// HistoryColumns is the header of the history file.
var HistoryColumns = []string{"timestamp", "operation", "part_number", "name", "quantity", "unit"}

// DefaultRetention is how long history entries are kept.
const DefaultRetention = 14 * 24 * time.Hour

type HistoryRepository interface {
	// Append prunes entries older than the retention window, then adds a new
	// entry stamped with the current time and rewrites the log.
	Append(op model.Operation, partNumber, name string, quantity int, unit string) (*model.HistoryEntry, error)
	FindAll() ([]model.HistoryEntry, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
}

// StockMovementData untuk chart data
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

type historyRepo struct {
	file      csvFile
	retention time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func NewHistoryRepo(path string, retention time.Duration, logger *zap.Logger) HistoryRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &historyRepo{
		file:      csvFile{path: path, header: HistoryColumns},
		retention: retention,
		now:       time.Now,
		logger:    logger,
	}
}

func (r *historyRepo) Append(op model.Operation, partNumber, name string, quantity int, unit string) (*model.HistoryEntry, error) {
	rows, err := r.file.read()
	if err != nil {
		return nil, err
	}

	now := r.now()
	rows = r.prune(rows, now.Add(-r.retention))

	entry := model.HistoryEntry{
		Timestamp:  now.Truncate(time.Second),
		Operation:  op,
		PartNumber: partNumber,
		Name:       name,
		Quantity:   quantity,
		Unit:       unit,
	}
	rows = append(rows, []string{
		now.Format(model.TimestampLayout),
		string(op),
		partNumber,
		name,
		strconv.Itoa(quantity),
		unit,
	})

	if err := r.file.write(rows); err != nil {
		return nil, err
	}
	return &entry, nil
}

// prune drops rows stamped before cutoff. If any timestamp cannot be parsed the
// rows are returned untouched and the failure is logged.
func (r *historyRepo) prune(rows [][]string, cutoff time.Time) [][]string {
	kept := make([][]string, 0, len(rows))
	for i, row := range rows {
		ts, err := parseTimestamp(row[0])
		if err != nil {
			r.logger.Error("history timestamp could not be parsed, pruning skipped",
				zap.String("path", r.file.path),
				zap.Int("line", i+2),
				zap.String("value", row[0]),
				zap.Error(err))
			return rows
		}
		if ts.Before(cutoff) {
			continue
		}
		kept = append(kept, row)
	}

	if dropped := len(rows) - len(kept); dropped > 0 {
		r.logger.Info("history pruned", zap.Int("dropped", dropped), zap.Time("cutoff", cutoff))
	}
	return kept
}

func (r *historyRepo) FindAll() ([]model.HistoryEntry, error) {
	rows, err := r.file.read()
	if err != nil {
		return nil, err
	}

	entries := make([]model.HistoryEntry, 0, len(rows))
	for i, row := range rows {
		entry, err := parseHistoryRow(row)
		if err != nil {
			r.logger.Warn("skip malformed history row", zap.Int("line", i+2), zap.Strings("row", row), zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *historyRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	entries, err := r.FindAll()
	if err != nil {
		return nil, err
	}

	// Aggregate per hari, urut tanggal naik
	results := []StockMovementData{}
	index := map[string]int{}
	for _, e := range entries {
		if e.Timestamp.Before(startDate) || e.Timestamp.After(endDate) {
			continue
		}
		day := e.Timestamp.Format("2006-01-02")
		i, ok := index[day]
		if !ok {
			i = len(results)
			index[day] = i
			results = append(results, StockMovementData{Date: day})
		}
		switch e.Operation {
		case model.OpInbound:
			results[i].Inbound += e.Quantity
		case model.OpOutbound:
			results[i].Outbound += e.Quantity
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Date < results[j].Date })
	return results, nil
}

func parseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(model.TimestampLayout, s, time.Local)
}

func parseHistoryRow(row []string) (model.HistoryEntry, error) {
	ts, err := parseTimestamp(row[0])
	if err != nil {
		return model.HistoryEntry{}, err
	}
	op := model.Operation(row[1])
	if !op.Valid() {
		return model.HistoryEntry{}, fmt.Errorf("unknown operation %q", row[1])
	}
	qty, err := strconv.Atoi(row[4])
	if err != nil {
		return model.HistoryEntry{}, err
	}
	return model.HistoryEntry{
		Timestamp:  ts,
		Operation:  op,
		PartNumber: row[2],
		Name:       row[3],
		Quantity:   qty,
		Unit:       row[5],
	}, nil
}
