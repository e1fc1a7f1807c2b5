package repository

import (
	"strconv"

	"go-stock-ledger/internal/model"

	"go.uber.org/zap"
)

// StockColumns is the header of the inventory file.
var StockColumns = []string{"part_number", "name", "quantity", "unit"}

type StockRepository interface {
	// FindAll loads the whole table. A missing or empty file yields no rows.
	// A row whose quantity is not a non-negative integer is kept with quantity 0.
	FindAll() ([]model.StockRecord, error)
	// SaveAll rewrites the whole table.
	SaveAll(records []model.StockRecord) error
}

type stockRepo struct {
	file   csvFile
	logger *zap.Logger
}

func NewStockRepo(path string, logger *zap.Logger) StockRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &stockRepo{
		file:   csvFile{path: path, header: StockColumns},
		logger: logger,
	}
}

func (r *stockRepo) FindAll() ([]model.StockRecord, error) {
	rows, err := r.file.read()
	if err != nil {
		return nil, err
	}

	records := make([]model.StockRecord, 0, len(rows))
	for i, row := range rows {
		qty, err := strconv.Atoi(row[2])
		if err != nil || qty < 0 {
			r.logger.Warn("invalid quantity in inventory row, using 0",
				zap.String("path", r.file.path),
				zap.Int("line", i+2),
				zap.String("part_number", row[0]),
				zap.String("value", row[2]))
			qty = 0
		}
		records = append(records, model.StockRecord{
			PartNumber: row[0],
			Name:       row[1],
			Quantity:   qty,
			Unit:       row[3],
		})
	}
	return records, nil
}

func (r *stockRepo) SaveAll(records []model.StockRecord) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{rec.PartNumber, rec.Name, strconv.Itoa(rec.Quantity), rec.Unit})
	}
	if err := r.file.write(rows); err != nil {
		return err
	}
	r.logger.Debug("inventory saved", zap.String("path", r.file.path), zap.Int("records", len(records)))
	return nil
}
