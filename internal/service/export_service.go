package service

import (
	"bytes"
	"fmt"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"

	"github.com/xuri/excelize/v2"
)

const (
	StockSheet   = "Stock"
	HistorySheet = "History"
)

// ExportService renders the inventory and its history as xlsx workbooks.
type ExportService interface {
	ExportStocks() (*bytes.Buffer, error)
	ExportHistory() (*bytes.Buffer, error)
}

type exportService struct {
	stockRepo   repository.StockRepository
	historyRepo repository.HistoryRepository
}

func NewExportService(sRepo repository.StockRepository, hRepo repository.HistoryRepository) ExportService {
	return &exportService{stockRepo: sRepo, historyRepo: hRepo}
}

func (s *exportService) ExportStocks() (*bytes.Buffer, error) {
	records, err := s.stockRepo.FindAll()
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []interface{}{rec.PartNumber, rec.Name, rec.Quantity, rec.Unit})
	}
	return writeWorkbook(StockSheet, repository.StockColumns, rows)
}

func (s *exportService) ExportHistory() (*bytes.Buffer, error) {
	entries, err := s.historyRepo.FindAll()
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []interface{}{
			e.Timestamp.Format(model.TimestampLayout),
			string(e.Operation),
			e.PartNumber,
			e.Name,
			e.Quantity,
			e.Unit,
		})
	}
	return writeWorkbook(HistorySheet, repository.HistoryColumns, rows)
}

func writeWorkbook(sheetName string, columns []string, rows [][]interface{}) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
