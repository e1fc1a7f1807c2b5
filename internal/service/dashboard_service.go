package service

import (
	"time"

	"go-stock-ledger/internal/repository"
)

// DashboardStats untuk overview stats
type DashboardStats struct {
	TotalItems        int `json:"total_items"`
	TotalQuantity     int `json:"total_quantity"`
	LowStockCount     int `json:"low_stock_count"`
	LowStockThreshold int `json:"low_stock_threshold"`
	HistoryEntries    int `json:"history_entries"`
}

type DashboardService interface {
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	GetDashboardStats() (*DashboardStats, error)
}

type dashboardService struct {
	stockRepo         repository.StockRepository
	historyRepo       repository.HistoryRepository
	lowStockThreshold int
	now               func() time.Time
}

func NewDashboardService(sRepo repository.StockRepository, hRepo repository.HistoryRepository, lowStockThreshold int) DashboardService {
	return &dashboardService{
		stockRepo:         sRepo,
		historyRepo:       hRepo,
		lowStockThreshold: lowStockThreshold,
		now:               time.Now,
	}
}

func (s *dashboardService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := s.now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.historyRepo.GetStockMovement(startDate, endDate)
}

// GetDashboardStats counts items below the low-stock threshold (strictly less).
func (s *dashboardService) GetDashboardStats() (*DashboardStats, error) {
	records, err := s.stockRepo.FindAll()
	if err != nil {
		return nil, err
	}
	history, err := s.historyRepo.FindAll()
	if err != nil {
		return nil, err
	}

	stats := DashboardStats{
		TotalItems:        len(records),
		LowStockThreshold: s.lowStockThreshold,
		HistoryEntries:    len(history),
	}
	for _, rec := range records {
		stats.TotalQuantity += rec.Quantity
		if rec.Quantity < s.lowStockThreshold {
			stats.LowStockCount++
		}
	}
	return &stats, nil
}
