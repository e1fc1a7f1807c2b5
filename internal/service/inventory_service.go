package service

import (
	"fmt"
	"sync"

	"go-stock-ledger/internal/metrics"
	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"

	"go.uber.org/zap"
)

// Notifier receives stock events for connected clients.
type Notifier interface {
	Publish(payload interface{})
}

type InventoryService interface {
	GetAllStocks() ([]model.StockRecord, error)
	GetStock(partNumber string) (*model.StockRecord, error)
	RegisterStock(partNumber, name, unit, actor string) (*model.StockRecord, error)
	RecordInbound(partNumber string, quantity int, actor string) (*model.StockRecord, error)
	RecordOutbound(partNumber string, quantity int, actor string) (*model.StockRecord, error)
	DeleteStock(partNumber, actor string) (*model.StockRecord, error)
	GetHistory() ([]model.HistoryEntry, error)
}

type inventoryService struct {
	stockRepo   repository.StockRepository
	historyRepo repository.HistoryRepository
	notifier    Notifier
	logger      *zap.Logger

	// serializes load -> mutate -> save cycles within the process
	mu sync.Mutex
}

func NewInventoryService(sRepo repository.StockRepository, hRepo repository.HistoryRepository, notifier Notifier, logger *zap.Logger) InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &inventoryService{
		stockRepo:   sRepo,
		historyRepo: hRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetAllStocks returns ErrNoStock alongside an empty slice when nothing is registered.
func (s *inventoryService) GetAllStocks() ([]model.StockRecord, error) {
	records, err := s.stockRepo.FindAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []model.StockRecord{}, ErrNoStock
	}
	return records, nil
}

func (s *inventoryService) GetStock(partNumber string) (*model.StockRecord, error) {
	partNumber = model.NormalizePartNumber(partNumber)
	records, err := s.stockRepo.FindAll()
	if err != nil {
		return nil, err
	}
	i := indexOf(records, partNumber)
	if i < 0 {
		return nil, ErrPartNotFound
	}
	rec := records[i]
	return &rec, nil
}

func (s *inventoryService) RegisterStock(partNumber, name, unit, actor string) (*model.StockRecord, error) {
	partNumber = model.NormalizePartNumber(partNumber)
	if partNumber == "" {
		return nil, ErrEmptyPartNumber
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.stockRepo.FindAll()
	if err != nil {
		return nil, err
	}

	// 1. Cek Duplikasi part number
	if i := indexOf(records, partNumber); i >= 0 {
		metrics.ObserveRejected("duplicate")
		s.logger.Warn("registration rejected, part number exists",
			zap.String("part_number", partNumber),
			zap.String("existing_name", records[i].Name),
			zap.String("actor", actor))
		return nil, &DuplicatePartError{Existing: records[i]}
	}

	// 2. Simpan dengan quantity awal 0
	rec := model.StockRecord{PartNumber: partNumber, Name: name, Quantity: 0, Unit: unit}
	records = append(records, rec)
	if err := s.stockRepo.SaveAll(records); err != nil {
		return nil, err
	}
	metrics.SetRecordCount(len(records))

	s.logger.Info("stock registered",
		zap.String("part_number", rec.PartNumber),
		zap.String("name", rec.Name),
		zap.String("unit", rec.Unit),
		zap.String("actor", actor))

	s.publish("stock_registered", rec, nil, actor,
		fmt.Sprintf("%s registered %s %q (unit: %s)", actor, rec.PartNumber, rec.Name, rec.Unit))

	return &rec, nil
}

func (s *inventoryService) RecordInbound(partNumber string, quantity int, actor string) (*model.StockRecord, error) {
	return s.recordMovement(model.OpInbound, partNumber, quantity, actor)
}

func (s *inventoryService) RecordOutbound(partNumber string, quantity int, actor string) (*model.StockRecord, error) {
	return s.recordMovement(model.OpOutbound, partNumber, quantity, actor)
}

func (s *inventoryService) recordMovement(op model.Operation, partNumber string, quantity int, actor string) (*model.StockRecord, error) {
	partNumber = model.NormalizePartNumber(partNumber)
	if quantity <= 0 {
		metrics.ObserveRejected("invalid_quantity")
		return nil, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.stockRepo.FindAll()
	if err != nil {
		return nil, err
	}

	i := indexOf(records, partNumber)
	if i < 0 {
		metrics.ObserveRejected("not_found")
		s.logger.Warn("movement rejected, part number not registered",
			zap.String("operation", string(op)),
			zap.String("part_number", partNumber),
			zap.String("actor", actor))
		return nil, ErrPartNotFound
	}

	// Hitung Logic Stok
	oldQty := records[i].Quantity
	switch op {
	case model.OpInbound:
		records[i].Quantity += quantity
	case model.OpOutbound:
		if records[i].Quantity < quantity {
			metrics.ObserveRejected("insufficient_stock")
			s.logger.Warn("outbound rejected, insufficient stock",
				zap.String("part_number", partNumber),
				zap.String("name", records[i].Name),
				zap.Int("available", records[i].Quantity),
				zap.Int("requested", quantity),
				zap.String("actor", actor))
			return nil, &InsufficientStockError{Record: records[i], Requested: quantity}
		}
		records[i].Quantity -= quantity
	}

	if err := s.stockRepo.SaveAll(records); err != nil {
		return nil, err
	}

	rec := records[i]
	entry, err := s.historyRepo.Append(op, rec.PartNumber, rec.Name, quantity, rec.Unit)
	if err != nil {
		s.logger.Error("stock saved but history append failed",
			zap.String("operation", string(op)),
			zap.String("part_number", rec.PartNumber),
			zap.Error(err))
		return nil, fmt.Errorf("record history: %w", err)
	}
	metrics.ObserveMovement(string(op), quantity)

	s.logger.Info("stock movement recorded",
		zap.String("operation", string(op)),
		zap.String("part_number", rec.PartNumber),
		zap.Int("quantity", quantity),
		zap.String("unit", rec.Unit),
		zap.Int("old_quantity", oldQty),
		zap.Int("new_quantity", rec.Quantity),
		zap.String("actor", actor))

	verb := "received"
	if op == model.OpOutbound {
		verb = "issued"
	}
	s.publish("stock_"+string(op), rec, entry, actor,
		fmt.Sprintf("%s %s %d %s of %q", actor, verb, quantity, rec.Unit, rec.Name))

	return &rec, nil
}

func (s *inventoryService) DeleteStock(partNumber, actor string) (*model.StockRecord, error) {
	partNumber = model.NormalizePartNumber(partNumber)

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.stockRepo.FindAll()
	if err != nil {
		return nil, err
	}

	var removed *model.StockRecord
	kept := make([]model.StockRecord, 0, len(records))
	for _, rec := range records {
		if rec.PartNumber == partNumber {
			r := rec
			removed = &r
			continue
		}
		kept = append(kept, rec)
	}

	if removed == nil {
		metrics.ObserveRejected("not_found")
		s.logger.Warn("delete rejected, part number not registered",
			zap.String("part_number", partNumber),
			zap.String("actor", actor))
		return nil, ErrPartNotFound
	}

	if err := s.stockRepo.SaveAll(kept); err != nil {
		return nil, err
	}
	metrics.SetRecordCount(len(kept))

	s.logger.Info("stock deleted",
		zap.String("part_number", removed.PartNumber),
		zap.String("name", removed.Name),
		zap.String("actor", actor))

	s.publish("stock_deleted", *removed, nil, actor,
		fmt.Sprintf("%s deleted %s %q", actor, removed.PartNumber, removed.Name))

	return removed, nil
}

func (s *inventoryService) GetHistory() ([]model.HistoryEntry, error) {
	return s.historyRepo.FindAll()
}

func (s *inventoryService) publish(action string, rec model.StockRecord, entry *model.HistoryEntry, actor, message string) {
	if s.notifier == nil {
		return
	}
	payload := map[string]interface{}{
		"type":    "stock_update",
		"action":  action,
		"stock":   rec,
		"actor":   actor,
		"message": message,
	}
	if entry != nil {
		payload["history"] = entry
	}
	s.notifier.Publish(payload)
}

func indexOf(records []model.StockRecord, partNumber string) int {
	for i, rec := range records {
		if rec.PartNumber == partNumber {
			return i
		}
	}
	return -1
}
