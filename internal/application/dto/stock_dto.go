package dto

import "time"

// StockResponse salida de una fila de stock.
type StockResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	LocationID string    `json:"location_id"`
	Quantity   int       `json:"quantity"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StockListResponse lista paginada de stock.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// RecordStockCountRequest body para POST /api/stocks/counts.
type RecordStockCountRequest struct {
	ProductID      string `json:"product_id"`
	LocationID     string `json:"location_id"`
	ActualQuantity int    `json:"actual_quantity"`
	UserID         string `json:"user_id"`
}

// StockCountResponse salida de un conteo físico.
type StockCountResponse struct {
	ID               string    `json:"id"`
	StockID          string    `json:"stock_id"`
	ProductID        string    `json:"product_id"`
	LocationID       string    `json:"location_id"`
	ExpectedQuantity int       `json:"expected_quantity"`
	ActualQuantity   int       `json:"actual_quantity"`
	Difference       int       `json:"difference"`
	CountedBy        string    `json:"counted_by"`
	CountedAt        time.Time `json:"counted_at"`
}

// StockCountListResponse lista paginada de conteos.
type StockCountListResponse struct {
	Items []StockCountResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
