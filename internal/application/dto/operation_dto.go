package dto

import "time"

// CreateOperationRequest body para POST /api/operations.
type CreateOperationRequest struct {
	OperationType string `json:"operation_type"`
	UserID        string `json:"user_id"`
	DocumentID    string `json:"document_id"`
}

// OperationResponse salida de una operación. Details solo se incluye en el detalle por ID.
type OperationResponse struct {
	ID             string                    `json:"id"`
	OperationType  string                    `json:"operation_type"`
	Status         string                    `json:"status"`
	UserID         string                    `json:"user_id"`
	Username       string                    `json:"username,omitempty"`
	DocumentID     string                    `json:"document_id"`
	DocumentNumber string                    `json:"document_number,omitempty"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at"`
	Details        []OperationDetailResponse `json:"details,omitempty"`
}

// OperationListResponse lista paginada de operaciones.
type OperationListResponse struct {
	Items []OperationResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// CreateOperationDetailRequest body para POST /api/operation-details.
// Producto por SKU y ubicaciones por nombre (claves de negocio).
type CreateOperationDetailRequest struct {
	OperationID      string `json:"operation_id"`
	SKU              string `json:"sku"`
	Quantity         int    `json:"quantity"`
	FromLocationName string `json:"from_location_name,omitempty"`
	ToLocationName   string `json:"to_location_name,omitempty"`
}

// UpdateOperationDetailRequest actualización parcial: nil = no cambia.
// Un nombre de ubicación vacío ("") quita la ubicación.
type UpdateOperationDetailRequest struct {
	SKU              *string `json:"sku"`
	Quantity         *int    `json:"quantity"`
	FromLocationName *string `json:"from_location_name"`
	ToLocationName   *string `json:"to_location_name"`
}

// OperationDetailResponse salida de una línea de operación.
type OperationDetailResponse struct {
	ID               string    `json:"id"`
	OperationID      string    `json:"operation_id"`
	ProductID        string    `json:"product_id"`
	SKU              string    `json:"sku,omitempty"`
	Quantity         int       `json:"quantity"`
	FromLocationID   string    `json:"from_location_id,omitempty"`
	FromLocationName string    `json:"from_location_name,omitempty"`
	ToLocationID     string    `json:"to_location_id,omitempty"`
	ToLocationName   string    `json:"to_location_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// OperationDetailListResponse lista paginada de líneas.
type OperationDetailListResponse struct {
	Items []OperationDetailResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
