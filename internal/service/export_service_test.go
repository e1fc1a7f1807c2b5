package service

import (
	"path/filepath"
	"testing"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportStocks(t *testing.T) {
	dir := t.TempDir()
	stock := repository.NewStockRepo(filepath.Join(dir, "inventory.csv"), nil)
	history := repository.NewHistoryRepo(filepath.Join(dir, "history.csv"), 0, nil)
	require.NoError(t, stock.SaveAll([]model.StockRecord{
		{PartNumber: "A001", Name: "Pen", Quantity: 3, Unit: "box"},
	}))

	buf, err := NewExportService(stock, history).ExportStocks()
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(StockSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"part_number", "name", "quantity", "unit"},
		{"A001", "Pen", "3", "box"},
	}, rows)
}

func TestExportHistory(t *testing.T) {
	dir := t.TempDir()
	stock := repository.NewStockRepo(filepath.Join(dir, "inventory.csv"), nil)
	history := repository.NewHistoryRepo(filepath.Join(dir, "history.csv"), 0, nil)
	entry, err := history.Append(model.OpOutbound, "A001", "Pen", 2, "box")
	require.NoError(t, err)

	buf, err := NewExportService(stock, history).ExportHistory()
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(HistorySheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"timestamp", "operation", "part_number", "name", "quantity", "unit"}, rows[0])
	assert.Equal(t, []string{entry.Timestamp.Format(model.TimestampLayout), "outbound", "A001", "Pen", "2", "box"}, rows[1])
}
