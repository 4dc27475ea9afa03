package store

import (
	"github.com/tyabase/FreshDeliverySystem/internal/models"
)

type OrderStatistics struct {
	Total       int     `json:"total"`
	Pending     int     `json:"pending"`
	Accepted    int     `json:"accepted"`
	Delivering  int     `json:"delivering"`
	Completed   int     `json:"completed"`
	Cancelled   int     `json:"cancelled"`
	TotalAmount float64 `json:"total_amount"`
}

type ProductStatistics struct {
	Total      int `json:"total"`
	InStock    int `json:"in_stock"`
	OutOfStock int `json:"out_of_stock"`
	LowStock   int `json:"low_stock"`
}

func (s *Store) OrderStatistics() OrderStatistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats OrderStatistics
	for _, o := range s.orders {
		stats.Total++
		stats.TotalAmount += o.TotalAmount
		switch o.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusAccepted:
			stats.Accepted++
		case models.StatusDelivering:
			stats.Delivering++
		case models.StatusCompleted:
			stats.Completed++
		case models.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}

func (s *Store) ProductStatistics(lowStockThreshold int) ProductStatistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats ProductStatistics
	for _, p := range s.products {
		stats.Total++
		switch {
		case p.Stock == 0:
			stats.OutOfStock++
		default:
			stats.InStock++
			if p.Stock <= lowStockThreshold {
				stats.LowStock++
			}
		}
	}
	return stats
}
